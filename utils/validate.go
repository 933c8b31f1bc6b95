package utils

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsPhone accepts 7-15 digits with common formatting characters.
func IsPhone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "").Replace(s)
	if len(cleaned) < 7 || len(cleaned) > 15 {
		return false
	}
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

const DateLayout = "2006-01-02"

// ParseBirthDate parses a YYYY-MM-DD date and rejects dates in the future.
func ParseBirthDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	if t.After(time.Now()) {
		return time.Time{}, false
	}
	return t, true
}

// IsStrongPassword applies the registration strength rules: at least 8
// characters and not entirely numeric.
func IsStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
