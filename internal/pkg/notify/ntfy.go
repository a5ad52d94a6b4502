package notify

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bgordon/recollect-notify/internal/pkg/config"
)

const ntfyBaseURL = "https://ntfy.sh"

type Ntfy struct {
	Log    *logrus.Entry
	Config config.Ntfy
	HTTP   HTTPClient

	// BaseURL overrides the production host, used by tests and self-hosted
	// ntfy servers.
	BaseURL string
}

func (n *Ntfy) Name() string {
	return "ntfy"
}

func (n *Ntfy) Enabled() bool {
	return n.Config.Enabled
}

func (n *Ntfy) Send(message string) error {
	baseURL := n.BaseURL
	if baseURL == "" {
		baseURL = ntfyBaseURL
	}

	endpoint := fmt.Sprintf("%s/%s", baseURL, n.Config.Topic)

	req, err := http.NewRequest(http.MethodPost, endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("error creating http request %w", err)
	}

	req.Header.Add("Title", Title)
	req.Header.Add("Priority", "default")
	req.Header.Add("Tags", "trash,recycle")

	resp, err := n.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("error performing http request %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("error status code is not 2xx, got %d", resp.StatusCode)
	}

	return nil
}
