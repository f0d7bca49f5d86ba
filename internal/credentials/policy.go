package credentials

import (
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength is the minimum number of characters of a strong password.
const MinPasswordLength = 8

// IsPasswordStrong reports whether password has at least MinPasswordLength
// characters and contains an uppercase letter, a lowercase letter, a digit
// and at least one character that is none of those.
func IsPasswordStrong(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
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

	return hasUpper && hasLower && hasDigit && hasSpecial
}
