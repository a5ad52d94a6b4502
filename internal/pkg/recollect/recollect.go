package recollect

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bgordon/recollect-notify/internal/pkg/calendar"
)

const (
	defaultBaseURL = "https://api.recollect.net"

	placeHeaderKey  = "X-Recollect-Place"
	localeHeaderKey = "X-Recollect-Locale"
	localeValue     = "en-US"

	userAgentValue = "Mozilla/5.0"
)

// HTTPClient is the subset of http.Client the calendar client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	PlaceID   string
	ServiceID string

	// BaseURL overrides the production API host, used by tests.
	BaseURL string
}

type Client struct {
	Log    *logrus.Entry
	Config Config
	HTTP   HTTPClient

	// Now injects the clock, defaults to time.Now.
	Now func() time.Time
}

// Events fetches the collection events for the seven days starting today.
// Any transport error or non-2xx status is returned as an error; the caller
// treats that as "no notification possible this run", not a fatal condition.
func (client *Client) Events() (*calendar.Response, error) {
	now := client.now()

	params := url.Values{}
	params.Set("nomerge", "1")
	params.Set("hide", "reminder_only")
	params.Set("after", now.Format(calendar.DayFormat))
	params.Set("before", now.AddDate(0, 0, 7).Format(calendar.DayFormat))
	params.Set("locale", localeValue)
	params.Set("include_message", "email")

	baseURL := client.Config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	apiEndpoint := fmt.Sprintf("%s/api/places/%s/services/%s/events?%s",
		baseURL,
		client.Config.PlaceID,
		client.Config.ServiceID,
		params.Encode(),
	)

	req, err := http.NewRequest(http.MethodGet, apiEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request %w", err)
	}

	req.Header.Add("User-Agent", userAgentValue)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add(placeHeaderKey, fmt.Sprintf("%s:%s", client.Config.PlaceID, client.Config.ServiceID))
	req.Header.Add(localeHeaderKey, localeValue)

	resp, err := client.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing http request %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("error status code is not 2xx, got %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body %w", err)
	}

	events := &calendar.Response{}

	err = json.Unmarshal(body, events)
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling http response body %w", err)
	}

	return events, nil
}

func (client *Client) now() time.Time {
	if client.Now != nil {
		return client.Now()
	}

	return time.Now()
}
