package payload

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	httpURLRe  = regexp.MustCompile(`^https?://.+`)
)

func IsHexColor(s string) bool { return hexColorRe.MatchString(s) }

func IsEmail(s string) bool { return emailRe.MatchString(s) }

func IsHTTPURL(s string) bool { return httpURLRe.MatchString(s) }

// TooLong reports whether s exceeds max characters.
func TooLong(s string, max int) bool { return utf8.RuneCountInString(s) > max }

// Trim returns the trimmed value of p, or "" when p is nil.
func Trim(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Optional trims p and maps empty results to nil.
func Optional(p *string) *string {
	s := Trim(p)
	if s == "" {
		return nil
	}
	return &s
}
