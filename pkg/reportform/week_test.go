package reportform

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekRange(t *testing.T) {
	// 2026-08-29 is a Saturday.
	tests := []struct {
		name      string
		now       time.Time
		offset    int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "saturday stays in its own week",
			now:       date(2026, time.August, 29),
			offset:    0,
			wantStart: date(2026, time.August, 29),
			wantEnd:   date(2026, time.September, 3),
		},
		{
			name:      "friday rolls forward one day",
			now:       date(2026, time.August, 28),
			offset:    0,
			wantStart: date(2026, time.August, 29),
			wantEnd:   date(2026, time.September, 3),
		},
		{
			name:      "sunday rolls to the next saturday",
			now:       date(2026, time.August, 30),
			offset:    0,
			wantStart: date(2026, time.September, 5),
			wantEnd:   date(2026, time.September, 10),
		},
		{
			name:      "previous week from a sunday",
			now:       date(2026, time.August, 30),
			offset:    -1,
			wantStart: date(2026, time.August, 29),
			wantEnd:   date(2026, time.September, 3),
		},
		{
			name:      "next week from a saturday",
			now:       date(2026, time.August, 29),
			offset:    1,
			wantStart: date(2026, time.September, 5),
			wantEnd:   date(2026, time.September, 10),
		},
		{
			name:      "time of day is dropped",
			now:       time.Date(2026, time.August, 29, 17, 45, 12, 0, time.UTC),
			offset:    0,
			wantStart: date(2026, time.August, 29),
			wantEnd:   date(2026, time.September, 3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := WeekRange(tt.now, tt.offset)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
			if got := end.Sub(start); got != 5*24*time.Hour {
				t.Errorf("window length = %v, want 120h", got)
			}
		})
	}
}

func TestWeekLabel(t *testing.T) {
	tests := []struct {
		offset int
		want   string
	}{
		{0, "Current Week"},
		{-1, "Last Week"},
		{1, "Next Week"},
		{-3, "3 Weeks Ago"},
		{2, "In 2 Weeks"},
	}
	for _, tt := range tests {
		if got := WeekLabel(tt.offset); got != tt.want {
			t.Errorf("WeekLabel(%d) = %q, want %q", tt.offset, got, tt.want)
		}
	}
}
