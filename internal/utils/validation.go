package utils

import (
	"errors"
	"regexp"
)

// Compiled regular expressions for validation
var (
	// category and unit ids are short ASCII tokens
	validIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// MaxInputLength bounds the raw value text accepted by the API.
const MaxInputLength = 64

// ValidateID validates that an ID is safe and within reasonable limits
func ValidateID(id string) error {
	if id == "" {
		return errors.New("id cannot be empty")
	}

	if len(id) > 100 {
		return errors.New("id too long (max 100 characters)")
	}

	if !validIDPattern.MatchString(id) {
		return errors.New("id contains invalid characters")
	}

	return nil
}

// ValidateInput checks the raw value text. Any text is allowed since
// non-numeric input simply produces no result, but it must stay short.
func ValidateInput(input string) error {
	if len(input) > MaxInputLength {
		return errors.New("value too long (max 64 characters)")
	}
	return nil
}
