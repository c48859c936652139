package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@x.com", true},
		{"first.last+tag@sub.example.org", true},
		{"UPPER@EXAMPLE.COM", true},
		{"", false},
		{"no-at-sign", false},
		{"missing@tld", false},
		{"@example.com", false},
		{"alice@", false},
		{"alice@example.c", false},
		{"spaces in@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidEmail(tt.email))
		})
	}
}

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"meets all requirements", "Str0ng!Pass", true},
		{"another valid", "Aa1!aaaa", true},
		{"too short", "Aa1!aaa", false},
		{"no uppercase", "str0ng!pass", false},
		{"no lowercase", "STR0NG!PASS", false},
		{"no digit", "Strong!Pass", false},
		{"no special character", "Str0ngPass", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPassword(tt.password))
		})
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		valid bool
	}{
		{"simple title", "Buy milk", true},
		{"exactly max length", strings.Repeat("a", MaxTitleLength), true},
		{"one over max length", strings.Repeat("a", MaxTitleLength+1), false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"non-ascii at max length", strings.Repeat("å", MaxTitleLength), true},
		{"non-ascii one over max length", strings.Repeat("å", MaxTitleLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	long := strings.Repeat("a", MaxDescriptionLength)
	tooLong := strings.Repeat("a", MaxDescriptionLength+1)
	longMultibyte := strings.Repeat("å", MaxDescriptionLength)
	tooLongMultibyte := strings.Repeat("å", MaxDescriptionLength+1)
	empty := ""

	assert.NoError(t, ValidateDescription(nil))
	assert.NoError(t, ValidateDescription(&empty))
	assert.NoError(t, ValidateDescription(&long))
	assert.Error(t, ValidateDescription(&tooLong))
	assert.NoError(t, ValidateDescription(&longMultibyte))
	assert.Error(t, ValidateDescription(&tooLongMultibyte))
}
