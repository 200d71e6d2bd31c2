package utils

import (
	"regexp"
	"strings"
)

var (
	reDialNumber = regexp.MustCompile(`^\+?\d{1,4}-\d{4,15}$`)
)

// SplitDialNumber splits a "<country code>-<number>" phone into its parts.
// A phone without a separator is returned as the number with an empty code.
func SplitDialNumber(phone string) (countryCode, number string) {
	phone = strings.TrimSpace(phone)
	code, rest, found := strings.Cut(phone, "-")
	if !found {
		return "", phone
	}
	return code, rest
}

func IsDialNumber(phone string) bool {
	return reDialNumber.MatchString(strings.TrimSpace(phone))
}

// SplitFullName returns the first word as first name and the remainder as last name.
func SplitFullName(name string) (firstName, lastName string) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
