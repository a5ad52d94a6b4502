package calendar

import "time"

// DayFormat is the calendar-date layout used by the ReCollect API.
const DayFormat = "2006-01-02"

type Response struct {
	Events []Event `json:"events"`
}

type Event struct {
	Day   string `json:"day"`
	Flags []Flag `json:"flags"`
}

type Flag struct {
	Subject string `json:"subject"`
}

// TomorrowSubjects returns the distinct flag subjects of every event scheduled
// for the day after now, in first-seen order. An empty result means nothing is
// scheduled tomorrow, not an error.
func TomorrowSubjects(resp *Response, now time.Time) []string {
	subjects := make([]string, 0)

	if resp == nil {
		return subjects
	}

	tomorrow := now.AddDate(0, 0, 1).Format(DayFormat)

	seen := make(map[string]bool)

	for _, event := range resp.Events {
		if event.Day != tomorrow {
			continue
		}

		for _, flag := range event.Flags {
			if flag.Subject == "" || seen[flag.Subject] {
				continue
			}

			seen[flag.Subject] = true
			subjects = append(subjects, flag.Subject)
		}
	}

	return subjects
}
