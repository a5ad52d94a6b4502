package notify

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Title is the notification title shared by every backend.
const Title = "Tomorrow's Waste Collection"

// HTTPClient is the subset of http.Client the webhook backends need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Notifier delivers one composed message about tomorrow's collection.
// Implementations never panic past Send; a delivery failure is an error for
// the caller to log, and must not prevent other notifiers from running.
type Notifier interface {
	Name() string
	Enabled() bool
	Send(message string) error
}

// Message composes the notification text for tomorrow's collection types.
func Message(subjects []string) string {
	if len(subjects) == 0 {
		return "No waste collection scheduled for tomorrow."
	}

	return fmt.Sprintf("Tomorrow's collection includes: %s.", strings.Join(subjects, ", "))
}

// Dispatch attempts every notifier independently and returns how many sends
// succeeded. A disabled notifier counts as "not sent", not as a failure.
func Dispatch(log *logrus.Entry, notifiers []Notifier, subjects []string) int {
	message := Message(subjects)

	sent := 0

	for _, notifier := range notifiers {
		if !notifier.Enabled() {
			log.WithField("backend", notifier.Name()).Debug("backend disabled, not sent")
			continue
		}

		err := notifier.Send(message)
		if err != nil {
			log.WithField("backend", notifier.Name()).WithError(err).Error("error sending notification")
			continue
		}

		log.WithField("backend", notifier.Name()).Info("notification sent")
		sent++
	}

	return sent
}
