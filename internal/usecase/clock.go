package usecase

import "time"

// systemClock is the production domain.Clock
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall-clock implementation of domain.Clock
func SystemClock() systemClock { return systemClock{} }

const dateLayout = "2006-01-02"

// mondayOf returns midnight of the most recent Monday at or before t.
// Sunday counts as day 7 of the prior week.
func mondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}
