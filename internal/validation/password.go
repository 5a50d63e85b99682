// Package validation contains input validation for account credentials.
package validation

import (
	"errors"
	"regexp"
	"unicode"
)

const (
	minPasswordLen = 12
	maxPasswordLen = 128
	minUsernameLen = 3
	maxUsernameLen = 30
	maxEmailLen    = 254
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*[a-zA-Z0-9]$`)
	emailRe    = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9\-]+(\.[A-Za-z0-9\-]+)+$`)
)

// ValidatePassword enforces length and character-class requirements.
func ValidatePassword(password string) error {
	runes := []rune(password)
	if len(runes) < minPasswordLen {
		return errors.New("password must be at least 12 characters")
	}
	if len(runes) > maxPasswordLen {
		return errors.New("password must be at most 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.New("password must contain an uppercase letter")
	}
	if !hasLower {
		return errors.New("password must contain a lowercase letter")
	}
	if !hasDigit {
		return errors.New("password must contain a digit")
	}
	if !hasSpecial {
		return errors.New("password must contain a special character")
	}

	return nil
}

// ValidateUsername enforces the allowed username shape: alphanumeric with
// internal underscores or dashes, starting and ending with an alphanumeric.
func ValidateUsername(username string) error {
	if len(username) < minUsernameLen {
		return errors.New("username must be at least 3 characters")
	}
	if len(username) > maxUsernameLen {
		return errors.New("username must be at most 30 characters")
	}
	if !usernameRe.MatchString(username) {
		return errors.New("username may only contain letters, digits, underscores and dashes, and must start and end with a letter or digit")
	}
	return nil
}

// ValidateEmail performs a conservative syntactic check.
func ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return errors.New("email is too long")
	}
	if !emailRe.MatchString(email) {
		return errors.New("email address is not valid")
	}
	return nil
}
