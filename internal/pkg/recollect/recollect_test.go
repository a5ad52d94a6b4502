package recollect_test

import (
	"errors"
	"net/http"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/bgordon/recollect-notify/internal/pkg/calendar"
	"github.com/bgordon/recollect-notify/internal/pkg/recollect"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
}

func TestClient_Events(t *testing.T) {
	tests := []struct {
		name    string
		http    recollect.HTTPClient
		want    *calendar.Response
		wantErr bool
	}{
		{
			name: "success",
			http: newMockClient(func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       mustLoadJSONFile(t, "testdata/events-response.json"),
				}, nil
			}),
			want: &calendar.Response{
				Events: []calendar.Event{
					{
						Day: "2026-03-15",
						Flags: []calendar.Flag{
							{Subject: "Garbage"},
							{Subject: "Recycling"},
							{Subject: "Garbage"},
						},
					},
					{
						Day:   "2026-03-18",
						Flags: []calendar.Flag{{Subject: "Yard Waste"}},
					},
				},
			},
			wantErr: false,
		},
		{
			name: "non 200 response status",
			http: newMockClient(func(req *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusNotFound,
					Body:       http.NoBody,
				}, nil
			}),
			want:    nil,
			wantErr: true,
		},
		{
			name: "transport error",
			http: newMockClient(func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			}),
			want:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			client := &recollect.Client{
				Config: recollect.Config{PlaceID: "ABC-123", ServiceID: "456"},
				HTTP:   tt.http,
				Now:    fixedNow,
			}

			got, err := client.Events()

			if (err != nil) != tt.wantErr {
				t.Errorf("Client.Events() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Client.Events() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient_EventsRequestShape(t *testing.T) {
	var captured *http.Request

	client := &recollect.Client{
		Config: recollect.Config{PlaceID: "ABC-123", ServiceID: "456"},
		HTTP: newMockClient(func(req *http.Request) (*http.Response, error) {
			captured = req

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       mustLoadJSONFile(t, "testdata/events-response.json"),
			}, nil
		}),
		Now: fixedNow,
	}

	_, err := client.Events()
	if err != nil {
		t.Fatalf("Client.Events() error = %v", err)
	}

	if captured == nil {
		t.Fatal("no request was issued")
	}

	if got, want := captured.URL.Path, "/api/places/ABC-123/services/456/events"; got != want {
		t.Errorf("request path = %q, want %q", got, want)
	}

	query := captured.URL.Query()
	wantQuery := map[string]string{
		"nomerge":         "1",
		"hide":            "reminder_only",
		"after":           "2026-03-14",
		"before":          "2026-03-21",
		"locale":          "en-US",
		"include_message": "email",
	}

	for key, want := range wantQuery {
		if got := query.Get(key); got != want {
			t.Errorf("query %s = %q, want %q", key, got, want)
		}
	}

	if got, want := captured.Header.Get("X-Recollect-Place"), "ABC-123:456"; got != want {
		t.Errorf("X-Recollect-Place = %q, want %q", got, want)
	}

	if got, want := captured.Header.Get("X-Recollect-Locale"), "en-US"; got != want {
		t.Errorf("X-Recollect-Locale = %q, want %q", got, want)
	}
}

type mockClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (mc *mockClient) Do(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, errors.New("error request is nil")
	}
	return mc.DoFunc(req)
}

func newMockClient(doFunc func(req *http.Request) (*http.Response, error)) *mockClient {
	return &mockClient{
		DoFunc: doFunc,
	}
}

func mustLoadJSONFile(t *testing.T, filePath string) *os.File {
	data, err := os.Open(filePath)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
