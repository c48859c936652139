// Package validation holds the domain-level input rules for credentials and
// task fields. Transport-shape checks (required fields, JSON types) stay in
// the handler layer; the rules here are the ones the service enforces
// regardless of transport.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLength bounds task titles.
	MaxTitleLength = 200
	// MaxDescriptionLength bounds task descriptions.
	MaxDescriptionLength = 2000
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperPattern   = regexp.MustCompile(`[A-Z]`)
	lowerPattern   = regexp.MustCompile(`[a-z]`)
	digitPattern   = regexp.MustCompile(`[0-9]`)
	specialPattern = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidEmail reports whether email matches a standard local@domain shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPassword reports whether password satisfies the strength policy:
// at least MinPasswordLength characters with an uppercase letter, a lowercase
// letter, a digit, and a special character.
func ValidPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}
	return upperPattern.MatchString(password) &&
		lowerPattern.MatchString(password) &&
		digitPattern.MatchString(password) &&
		specialPattern.MatchString(password)
}

// PasswordPolicy describes the strength requirements for error messages.
func PasswordPolicy() string {
	return fmt.Sprintf("password must be at least %d characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character", MinPasswordLength)
}

// ValidateTitle checks a task title: non-empty after trimming and at most
// MaxTitleLength characters. Limits count characters, not bytes.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	return nil
}

// ValidateDescription checks an optional task description against
// MaxDescriptionLength. A nil description is valid.
func ValidateDescription(description *string) error {
	if description == nil {
		return nil
	}
	if utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	return nil
}
