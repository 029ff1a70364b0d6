package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDenmarkWeekends(t *testing.T) {
	dk := Denmark{}
	assert.False(t, dk.IsBusinessDay(date(2019, time.August, 31)), "Saturday")
	assert.False(t, dk.IsBusinessDay(date(2019, time.September, 1)), "Sunday")
	assert.True(t, dk.IsBusinessDay(date(2019, time.September, 2)), "Monday")
}

func TestDenmarkFixedClosures(t *testing.T) {
	dk := Denmark{}
	tests := []struct {
		name string
		d    time.Time
	}{
		{"New Year", date(2019, time.January, 1)},
		{"Constitution Day", date(2019, time.June, 5)},
		{"Christmas Eve", date(2019, time.December, 24)},
		{"Christmas Day", date(2019, time.December, 25)},
		{"Second Christmas Day", date(2019, time.December, 26)},
		{"New Year's Eve", date(2019, time.December, 31)},
	}
	for _, tt := range tests {
		assert.False(t, dk.IsBusinessDay(tt.d), tt.name)
	}
}

func TestDenmarkEasterHolidays2019(t *testing.T) {
	dk := Denmark{}

	assert.Equal(t, date(2019, time.April, 21), easterSunday(2019))

	assert.False(t, dk.IsBusinessDay(date(2019, time.April, 18)), "Maundy Thursday")
	assert.False(t, dk.IsBusinessDay(date(2019, time.April, 19)), "Good Friday")
	assert.False(t, dk.IsBusinessDay(date(2019, time.April, 22)), "Easter Monday")
	assert.False(t, dk.IsBusinessDay(date(2019, time.May, 17)), "Great Prayer Day")
	assert.False(t, dk.IsBusinessDay(date(2019, time.May, 30)), "Ascension")
	assert.False(t, dk.IsBusinessDay(date(2019, time.May, 31)), "day after Ascension")
	assert.False(t, dk.IsBusinessDay(date(2019, time.June, 10)), "Whit Monday")

	assert.True(t, dk.IsBusinessDay(date(2019, time.April, 17)), "Wednesday before Easter")
	assert.True(t, dk.IsBusinessDay(date(2019, time.April, 23)), "Tuesday after Easter")
}

func TestGreatPrayerDayAbolishedFrom2024(t *testing.T) {
	dk := Denmark{}
	// 2023: still a holiday (Friday, May 5).
	assert.False(t, dk.IsBusinessDay(date(2023, time.May, 5)))
	// 2024: abolished (Friday, April 26).
	assert.Equal(t, date(2024, time.March, 31), easterSunday(2024))
	assert.True(t, dk.IsBusinessDay(date(2024, time.April, 26)))
}

func TestNextBusinessDay(t *testing.T) {
	dk := Denmark{}

	// Friday skips the weekend.
	assert.Equal(t, date(2019, time.September, 2),
		NextBusinessDay(dk, date(2019, time.August, 30)))

	// Saturday also settles Monday.
	assert.Equal(t, date(2019, time.September, 2),
		NextBusinessDay(dk, date(2019, time.August, 31)))

	// Wednesday before Easter crosses the whole holiday block.
	assert.Equal(t, date(2019, time.April, 23),
		NextBusinessDay(dk, date(2019, time.April, 17)))

	// A plain Tuesday settles Wednesday.
	assert.Equal(t, date(2019, time.September, 4),
		NextBusinessDay(dk, date(2019, time.September, 3)))
}
