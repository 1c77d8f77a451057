// Package schedule models the per-month scheduled days attached to a task.
// Day numbers inside a month bucket are zero based; converting to calendar
// dates adds one. February is fixed at 28 days, leap years are not handled.
package schedule

import (
	"sort"
	"time"
)

// Month is the wire name of a calendar month.
type Month string

const (
	January   Month = "JAN"
	February  Month = "FEB"
	March     Month = "MAR"
	April     Month = "APR"
	May       Month = "MAY"
	June      Month = "JUN"
	July      Month = "JUL"
	August    Month = "AUG"
	September Month = "SEP"
	October   Month = "OCT"
	November  Month = "NOV"
	December  Month = "DEC"
)

// Months lists the twelve months in calendar order. Index into this slice is
// the month index used for navigation.
var Months = []Month{
	January, February, March, April, May, June,
	July, August, September, October, November, December,
}

var monthDays = map[Month]int{
	January:   31,
	February:  28,
	March:     31,
	April:     30,
	May:       31,
	June:      30,
	July:      31,
	August:    31,
	September: 30,
	October:   31,
	November:  30,
	December:  31,
}

// DaysIn returns the number of days in the month per the fixed table.
func DaysIn(m Month) int {
	return monthDays[m]
}

// Weeks returns the number of week rows a calendar grid needs for the month.
func Weeks(m Month) int {
	return monthDays[m]/7 + 1
}

// Prev wraps the month index backwards: 0 goes to 11.
func Prev(index int) int {
	if index == 0 {
		return 11
	}
	return index - 1
}

// Next wraps the month index forwards: 11 goes to 0.
func Next(index int) int {
	if index == 11 {
		return 0
	}
	return index + 1
}

// Days maps each month to the set of scheduled day numbers within it.
type Days map[Month][]int

// Empty returns a mapping seeded with all twelve months so lookups are
// always total.
func Empty() Days {
	d := make(Days, len(Months))
	for _, m := range Months {
		d[m] = []int{}
	}
	return d
}

// FromDates folds calendar dates into a seeded per-month mapping.
func FromDates(dates []time.Time) Days {
	d := Empty()
	for _, date := range dates {
		m := Months[int(date.Month())-1]
		d[m] = append(d[m], date.Day()-1)
	}
	return d
}

// Dates expands the mapping back into calendar dates in the given year.
// The round trip through FromDates is lossless modulo duplicates.
func (d Days) Dates(year int) []time.Time {
	var out []time.Time
	for i, m := range Months {
		days := append([]int(nil), d[m]...)
		sort.Ints(days)
		for _, day := range days {
			out = append(out, time.Date(year, time.Month(i+1), day+1, 0, 0, 0, 0, time.UTC))
		}
	}
	return out
}

// Contains reports whether the day is scheduled in the month.
func (d Days) Contains(m Month, day int) bool {
	for _, v := range d[m] {
		if v == day {
			return true
		}
	}
	return false
}

// Toggle adds the day to the month when absent and removes it when present.
// The returned mapping shares the untouched months with the receiver.
func (d Days) Toggle(m Month, day int) Days {
	out := make(Days, len(d))
	for k, v := range d {
		out[k] = v
	}
	if d.Contains(m, day) {
		kept := make([]int, 0, len(d[m]))
		for _, v := range d[m] {
			if v != day {
				kept = append(kept, v)
			}
		}
		out[m] = kept
	} else {
		out[m] = append(append([]int(nil), d[m]...), day)
	}
	return out
}

const layoutISO = "2006-01-02"

// ParseDate parses a wire date of the form "2006-01-02".
func ParseDate(s string) (time.Time, error) {
	return time.Parse(layoutISO, s)
}

// FormatDate renders a date in the wire form "2006-01-02".
func FormatDate(t time.Time) string {
	return t.Format(layoutISO)
}
