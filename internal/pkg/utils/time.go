package utils

import (
	"careplan-service/internal/pkg/constvars"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

func FormatProviderDate(t time.Time) string {
	return t.Format(constvars.ProviderDateLayout)
}

func ParseProviderDate(value string) (time.Time, error) {
	return time.Parse(constvars.ProviderDateLayout, value)
}

// ParseProviderTimestamp accepts RFC3339 timestamps and bare provider dates.
func ParseProviderTimestamp(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return ParseProviderDate(value)
}

func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func CalculateAge(birthDate, now time.Time) int {
	if birthDate.IsZero() {
		return 0
	}

	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() || (now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}
