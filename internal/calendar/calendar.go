// Package calendar answers the one question the settlement logic needs:
// is a given date a Danish banking day?
package calendar

import "time"

// BusinessDayChecker reports whether banks settle transfers on a date.
type BusinessDayChecker interface {
	IsBusinessDay(t time.Time) bool
}

// NextBusinessDay returns the first business day strictly after date.
// MobilePay pays out the day's balance on the following banking day.
func NextBusinessDay(c BusinessDayChecker, date time.Time) time.Time {
	d := date.AddDate(0, 0, 1)
	for !c.IsBusinessDay(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
