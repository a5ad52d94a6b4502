package calendar_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/bgordon/recollect-notify/internal/pkg/calendar"
)

func TestTomorrowSubjects(t *testing.T) {
	// Saturday, tomorrow is 2026-03-15
	now := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		resp *calendar.Response
		want []string
	}{
		{
			name: "dedup preserves first-seen order",
			resp: &calendar.Response{
				Events: []calendar.Event{
					{
						Day: "2026-03-15",
						Flags: []calendar.Flag{
							{Subject: "Garbage"},
							{Subject: "Recycling"},
							{Subject: "Garbage"},
						},
					},
				},
			},
			want: []string{"Garbage", "Recycling"},
		},
		{
			name: "subjects collected across events on the same day",
			resp: &calendar.Response{
				Events: []calendar.Event{
					{Day: "2026-03-15", Flags: []calendar.Flag{{Subject: "Garbage"}}},
					{Day: "2026-03-15", Flags: []calendar.Flag{{Subject: "Yard Waste"}}},
				},
			},
			want: []string{"Garbage", "Yard Waste"},
		},
		{
			name: "events on other days are ignored",
			resp: &calendar.Response{
				Events: []calendar.Event{
					{Day: "2026-03-14", Flags: []calendar.Flag{{Subject: "Garbage"}}},
					{Day: "2026-03-18", Flags: []calendar.Flag{{Subject: "Recycling"}}},
				},
			},
			want: []string{},
		},
		{
			name: "empty payload",
			resp: &calendar.Response{},
			want: []string{},
		},
		{
			name: "nil payload",
			resp: nil,
			want: []string{},
		},
		{
			name: "empty subjects are skipped",
			resp: &calendar.Response{
				Events: []calendar.Event{
					{Day: "2026-03-15", Flags: []calendar.Flag{{Subject: ""}, {Subject: "Recycling"}}},
				},
			},
			want: []string{"Recycling"},
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			got := calendar.TomorrowSubjects(tt.resp, now)

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("TomorrowSubjects() = %v, want %v", got, tt.want)
			}
		})
	}
}
