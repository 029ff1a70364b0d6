package calendar

import "time"

// Denmark implements BusinessDayChecker for Danish banks: weekends,
// public holidays, and the extra days banks close without a public
// holiday (day after Ascension, Constitution Day, Christmas Eve, New
// Year's Eve).
type Denmark struct{}

// IsBusinessDay reports whether Danish banks are open on the date.
func (Denmark) IsBusinessDay(t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isBankHoliday(t)
}

func isBankHoliday(t time.Time) bool {
	y, m, d := t.Year(), t.Month(), t.Day()

	switch {
	case m == time.January && d == 1: // Nytårsdag
		return true
	case m == time.June && d == 5: // Grundlovsdag (bank closure)
		return true
	case m == time.December && (d == 24 || d == 25 || d == 26 || d == 31):
		return true
	}

	easter := easterSunday(y)
	daysFromEaster := int(truncateDay(t).Sub(easter).Hours() / 24)

	switch daysFromEaster {
	case -3, -2, 0, 1: // Skærtorsdag, Langfredag, Påskedag, 2. påskedag
		return true
	case 39, 40: // Kristi himmelfart and the bank closure the day after
		return true
	case 49, 50: // Pinsedag, 2. pinsedag
		return true
	case 26: // Store bededag, abolished from 2024
		return y < 2024
	}

	return false
}

// easterSunday computes Gregorian Easter with the anonymous algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
