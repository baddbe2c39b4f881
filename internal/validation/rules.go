// Package validation holds the field rules shared by students, accounts and the contact form.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Rule kinds. Callers match them with errors.Is instead of reading the message.
var (
	ErrLettersOnly = errors.New("only letters and spaces are allowed")
	ErrPhoneDigits = errors.New("phone must contain between 10 and 15 digits")
	ErrEmailDomain = errors.New("email must be a @gmail.com address")
)

// GmailSuffix is the only accepted e-mail domain. The comparison is case-sensitive.
const GmailSuffix = "@gmail.com"

var phonePattern = regexp.MustCompile(`^[0-9]{10,15}$`)

// RuleError reports which rule rejected a value.
type RuleError struct {
	Kind  error
	Value string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %q", e.Kind.Error(), e.Value)
}

// Unwrap exposes the rule kind.
func (e *RuleError) Unwrap() error {
	return e.Kind
}

// LettersOnly accepts Latin letters (accented ones and ñ included) and whitespace.
// Empty input is rejected.
func LettersOnly(text string) error {
	if text == "" {
		return &RuleError{Kind: ErrLettersOnly, Value: text}
	}
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		if unicode.IsLetter(r) && unicode.Is(unicode.Latin, r) {
			continue
		}
		return &RuleError{Kind: ErrLettersOnly, Value: text}
	}
	return nil
}

// Phone accepts exactly 10 to 15 ASCII digits with no separators.
func Phone(text string) error {
	if !phonePattern.MatchString(text) {
		return &RuleError{Kind: ErrPhoneDigits, Value: text}
	}
	return nil
}

// EmailDomain accepts addresses ending in @gmail.com.
func EmailDomain(text string) error {
	if !strings.HasSuffix(text, GmailSuffix) {
		return &RuleError{Kind: ErrEmailDomain, Value: text}
	}
	return nil
}

// Message returns the user-facing text for a rule failure, or "" when err is not a rule error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrLettersOnly):
		return ErrLettersOnly.Error()
	case errors.Is(err, ErrPhoneDigits):
		return ErrPhoneDigits.Error()
	case errors.Is(err, ErrEmailDomain):
		return ErrEmailDomain.Error()
	default:
		return ""
	}
}
