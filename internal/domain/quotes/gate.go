package quotes

import (
	"fmt"
	"time"
)

// Gate limits automatic runs to weekdays from AfterHour onwards in Location.
type Gate struct {
	Location  *time.Location
	AfterHour int
}

func (g Gate) Allow(now time.Time) (bool, string) {
	location := g.Location
	if location == nil {
		location = time.Local
	}
	local := now.In(location)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false, fmt.Sprintf("market closed on %s", local.Weekday())
	}
	if local.Hour() < g.AfterHour {
		return false, fmt.Sprintf("automatic refresh runs from %02d:00, local time is %s", g.AfterHour, local.Format("15:04"))
	}
	return true, ""
}
