package users

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const birthDateLayout = "2006-01-02"

// DisplayName joins the capitalized first and last names. It returns "" when either is blank.
func DisplayName(firstName, lastName string) string {
	first := strings.TrimSpace(firstName)
	last := strings.TrimSpace(lastName)
	if first == "" || last == "" {
		return ""
	}
	return capitalize(first) + " " + capitalize(last)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// Age returns the completed years between birthDate and now, or nil when birthDate is unknown.
// The birth date is a calendar date: its own year, month and day are compared with now's local date.
func Age(birthDate *time.Time, now time.Time) *int {
	if birthDate == nil || birthDate.IsZero() {
		return nil
	}
	bornYear, bornMonth, bornDay := birthDate.Date()
	year, month, day := now.Date()
	years := year - bornYear
	if month < bornMonth || (month == bornMonth && day < bornDay) {
		years--
	}
	return &years
}

// ParseBirthDate accepts a calendar date or an RFC3339 timestamp. Blank or malformed input yields nil.
func ParseBirthDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse(birthDateLayout, raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &day
	}
	return nil
}

// AgeFromString parses raw and computes the age at now.
func AgeFromString(raw string, now time.Time) *int {
	return Age(ParseBirthDate(raw), now)
}
