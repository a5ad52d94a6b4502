package app

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bgordon/recollect-notify/internal/pkg/calendar"
	"github.com/bgordon/recollect-notify/internal/pkg/notify"
)

// EventsFetcher fetches the upcoming collection events.
type EventsFetcher interface {
	Events() (*calendar.Response, error)
}

// Runner executes one notification check: day gate, fetch, filter, dispatch.
type Runner struct {
	Log       *logrus.Entry
	Fetcher   EventsFetcher
	Notifiers []notify.Notifier

	// Force bypasses the Sunday gate.
	Force bool

	// Now injects the clock, defaults to time.Now.
	Now func() time.Time
}

// Run performs the check. Network failures are logged and swallowed: a run
// that could not fetch or deliver is a soft warning, never a process failure.
func (r *Runner) Run() {
	now := r.now()

	if !r.Force && now.Weekday() != time.Sunday {
		r.Log.Info("not running because today is not Sunday, use -force to run regardless of day")
		return
	}

	events, err := r.Fetcher.Events()
	if err != nil {
		r.Log.WithError(err).Error("failed to retrieve collection data, no notification possible this run")
		return
	}

	subjects := calendar.TomorrowSubjects(events, now)

	sent := notify.Dispatch(r.Log, r.Notifiers, subjects)
	if sent == 0 {
		r.Log.Warn("no notifications were sent successfully")
	}
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}

	return time.Now()
}
