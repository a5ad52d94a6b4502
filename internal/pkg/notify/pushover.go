package notify

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bgordon/recollect-notify/internal/pkg/config"
)

const pushoverEndpoint = "https://api.pushover.net/1/messages.json"

type Pushover struct {
	Log    *logrus.Entry
	Config config.Pushover
	HTTP   HTTPClient

	// Endpoint overrides the production API endpoint, used by tests.
	Endpoint string
}

func (p *Pushover) Name() string {
	return "pushover"
}

func (p *Pushover) Enabled() bool {
	return p.Config.Enabled
}

func (p *Pushover) Send(message string) error {
	endpoint := p.Endpoint
	if endpoint == "" {
		endpoint = pushoverEndpoint
	}

	form := url.Values{}
	form.Set("token", p.Config.APIToken)
	form.Set("user", p.Config.UserKey)
	form.Set("title", Title)
	form.Set("message", message)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("error creating http request %w", err)
	}

	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("error performing http request %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("error status code is not 2xx, got %d", resp.StatusCode)
	}

	return nil
}
