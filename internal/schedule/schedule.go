// Package schedule computes selectable delivery dates: a business-day lead
// time plus blocking of weekends and German public holidays.
package schedule

import "time"

// LeadTimeBusinessDays is the minimum number of business days between placing
// an order and the earliest delivery.
const LeadTimeBusinessDays = 5

// MinSelectableDate walks forward from today, counting Monday through Friday,
// and returns the date on which the fifth business day falls.
func MinSelectableDate(today time.Time) time.Time {
	date := startOfDay(today)
	businessDays := 0

	for businessDays < LeadTimeBusinessDays {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			businessDays++
		}
	}

	return date
}

// IsDateBlocked reports whether date cannot be chosen as a delivery date:
// earlier than the minimum selectable date, a weekend, or a public holiday.
// Holidays are checked for today's year and the next so that pickers spanning
// a year boundary stay correct.
func IsDateBlocked(date, today time.Time) bool {
	day := startOfDay(date)

	if day.Before(MinSelectableDate(today)) {
		return true
	}

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return true
	}

	year := today.Year()
	for _, holiday := range append(GermanHolidays(year), GermanHolidays(year+1)...) {
		if sameDay(day, holiday) {
			return true
		}
	}

	return false
}

// GermanHolidays returns the nationwide public holidays for the given year.
func GermanHolidays(year int) []time.Time {
	holidays := []time.Time{
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),    // Neujahr
		time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC),        // Tag der Arbeit
		time.Date(year, time.October, 3, 0, 0, 0, 0, time.UTC),    // Tag der Deutschen Einheit
		time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC),  // 1. Weihnachtsfeiertag
		time.Date(year, time.December, 26, 0, 0, 0, 0, time.UTC),  // 2. Weihnachtsfeiertag
	}

	easter := EasterSunday(year)
	holidays = append(holidays,
		easter.AddDate(0, 0, -2), // Karfreitag
		easter.AddDate(0, 0, 1),  // Ostermontag
		easter.AddDate(0, 0, 39), // Christi Himmelfahrt
		easter.AddDate(0, 0, 50), // Pfingstmontag
	)

	return holidays
}

// EasterSunday computes Easter Sunday via the Gaussian Easter algorithm.
func EasterSunday(year int) time.Time {
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

// SelectableDates returns every date in [from, to] that is not blocked.
func SelectableDates(from, to, today time.Time) []time.Time {
	var dates []time.Time
	for day := startOfDay(from); !day.After(startOfDay(to)); day = day.AddDate(0, 0, 1) {
		if !IsDateBlocked(day, today) {
			dates = append(dates, day)
		}
	}
	return dates
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Day() == b.Day() && a.Month() == b.Month() && a.Year() == b.Year()
}
