package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"unicode"
)

// Validation limits.
const (
	MaxEmailLength    = 254
	MaxPasswordLength = 128
	MinPasswordLength = 12

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// SanitizeEmail trims and lowercases email; returns empty if invalid length.
func SanitizeEmail(email string) string {
	s := strings.TrimSpace(strings.ToLower(email))
	if len(s) > MaxEmailLength {
		return ""
	}
	return s
}

// PasswordProblems reports, in a fixed order, every policy rule the
// candidate password violates. Empty slice means the password is acceptable.
func PasswordProblems(password string) []string {
	var problems []string
	if len(password) < MinPasswordLength {
		problems = append(problems, "password must be at least 12 characters long")
	}
	if len(password) > MaxPasswordLength {
		problems = append(problems, "password must be at most 128 characters long")
	}
	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	if !hasUpper {
		problems = append(problems, "password must contain at least one uppercase letter")
	}
	if !hasDigit {
		problems = append(problems, "password must contain at least one number")
	}
	if !hasSpecial {
		problems = append(problems, "password must contain at least one special character")
	}
	return problems
}

// pagination reads limit/offset from the query string, clamped to sane
// bounds. Absent or malformed values fall back to the defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = DefaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
