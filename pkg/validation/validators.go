package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goliatone/go-regform/pkg/model"
)

// EmailPattern matches local@domain.tld where neither part contains
// whitespace or '@' and the segment after the last '.' has at least two
// characters.
const EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@.]{2,}$`

var emailRegex = regexp.MustCompile(`(?i)` + EmailPattern)

// DateLayouts are tried in order when parsing a date of birth.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// IsNonEmpty reports whether value has any non-whitespace content.
func IsNonEmpty(value string) bool {
	return len(strings.TrimSpace(value)) > 0
}

// ValidateEmail reports whether the trimmed value looks like an email address.
func ValidateEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}

// ValidatePassword returns the first failing strength rule's message, or ""
// when the password passes.
func ValidatePassword(value string) string {
	_, message := CheckPassword(value)
	return message
}

// CheckPassword evaluates the strength chain (length, uppercase, digit) and
// returns the kind and message of the first failure. At most one failure is
// ever reported.
func CheckPassword(value string) (model.ErrorKind, string) {
	if utf8.RuneCountInString(value) < MinimumPasswordLength {
		return model.KindPasswordTooShort, MessagePasswordTooShort
	}
	if !strings.ContainsFunc(value, isASCIIUpper) {
		return model.KindPasswordMissingUpper, MessagePasswordMissingUpper
	}
	if !strings.ContainsFunc(value, isASCIIDigit) {
		return model.KindPasswordMissingDigit, MessagePasswordMissingDigit
	}
	return "", ""
}

// ParseDate parses a calendar date using DateLayouts.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range DateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ComputeAge returns the whole years between dob and today. ok is false when
// dob cannot be parsed. A date in the future yields a negative age.
func ComputeAge(dob string, today time.Time) (age int, ok bool) {
	born, ok := ParseDate(dob)
	if !ok {
		return 0, false
	}
	return yearsBetween(born, today), true
}

// ValidateDOB returns the message for an unparseable or out-of-range date of
// birth, or "".
func ValidateDOB(dob string, today time.Time) string {
	_, message := CheckDOB(dob, today)
	return message
}

// CheckDOB classifies a date of birth against the accepted age range.
func CheckDOB(dob string, today time.Time) (model.ErrorKind, string) {
	age, ok := ComputeAge(dob, today)
	switch {
	case !ok:
		return model.KindDOBUnparseable, MessageDOBUnparseable
	case age < MinimumAge:
		return model.KindDOBTooYoung, MessageDOBTooYoung
	case age > MaximumAge:
		return model.KindDOBTooOld, MessageDOBTooOld
	default:
		return "", ""
	}
}

func yearsBetween(born, today time.Time) int {
	age := today.Year() - born.Year()
	if today.Month() < born.Month() || (today.Month() == born.Month() && today.Day() < born.Day()) {
		age--
	}
	return age
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
