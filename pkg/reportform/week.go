package reportform

import (
	"strconv"
	"time"
)

// The reporting week runs Saturday through Thursday (a 6-day span).
// WeekRange resolves that window for an offset in weeks relative to now:
// 0 is the current week, -1 last week, 1 next week.
func WeekRange(now time.Time, offset int) (start, end time.Time) {
	target := now.AddDate(0, 0, offset*7)

	// Days until the next Saturday (0 when target already is one).
	daysUntilSaturday := (int(time.Saturday) - int(target.Weekday()) + 7) % 7
	start = truncateToDay(target.AddDate(0, 0, daysUntilSaturday))
	end = start.AddDate(0, 0, 5) // Thursday
	return start, end
}

// WeekLabel names the offset the way the client does.
func WeekLabel(offset int) string {
	switch {
	case offset == 0:
		return "Current Week"
	case offset == -1:
		return "Last Week"
	case offset == 1:
		return "Next Week"
	case offset < 0:
		return strconv.Itoa(-offset) + " Weeks Ago"
	default:
		return "In " + strconv.Itoa(offset) + " Weeks"
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
