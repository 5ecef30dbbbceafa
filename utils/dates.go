// utils/dates.go
package utils

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// TomorrowDate returns tomorrow's calendar date (server-local) as YYYY-MM-DD.
func TomorrowDate(now time.Time) string {
	return BeginningOfDay(now).AddDate(0, 0, 1).Format(DateLayout)
}

// ValidDate reports whether s is a well-formed YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is a well-formed HH:MM time of day. Zero-padded
// hours are required so equal slots always compare equal as strings.
func ValidTime(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}
