// internal/pkg/validate/validate.go
package validate

import (
	"regexp"
	"strings"
)

// Stateless input validation and sanitization helpers. Every function is a
// pure function over strings so form handlers and services can share them.

var (
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)
	namePattern    = regexp.MustCompile(`^[a-zA-Z ]{2,50}$`)
	phoneNoise     = regexp.MustCompile(`[\s\-()]`)
	addressBlocked = regexp.MustCompile(`[<>"'&]`)

	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
	blockedTagPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script\b[^<]*(?:(?:<[^/])[^<]*)*</script>`),
		regexp.MustCompile(`(?i)<iframe\b[^<]*(?:(?:<[^/])[^<]*)*</iframe>`),
		regexp.MustCompile(`(?i)<object\b[^<]*(?:(?:<[^/])[^<]*)*</object>`),
		regexp.MustCompile(`(?i)<embed\b[^<]*(?:(?:<[^/])[^<]*)*</embed>`),
		regexp.MustCompile(`(?i)<style\b[^<]*(?:(?:<[^/])[^<]*)*</style>`),
		regexp.MustCompile(`(?i)<meta\b[^>]*>`),
		regexp.MustCompile(`(?i)<link\b[^>]*>`),
	}

	entityReplacer = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"'", "&#x27;",
		"/", "&#x2F;",
	)
)

// Sanitize neutralizes markup-significant input: tag bodies and inline event
// handlers are stripped first, then angle brackets are removed and the
// remaining HTML-significant characters are entity-escaped.
func Sanitize(input string) string {
	out := input
	for _, pattern := range blockedTagPatterns {
		out = pattern.ReplaceAllString(out, "")
	}
	out = eventHandlerPattern.ReplaceAllString(out, "")
	out = strings.NewReplacer("<", "", ">", "").Replace(out)
	out = entityReplacer.Replace(out)
	return strings.TrimSpace(out)
}

// Email reports whether the input is a plausible email address.
func Email(email string) bool {
	sanitized := Sanitize(email)
	return emailPattern.MatchString(sanitized) && len(sanitized) <= 254
}

// Phone reports whether the input is a plausible phone number. Spaces,
// dashes, and parentheses are ignored.
func Phone(phone string) bool {
	sanitized := phoneNoise.ReplaceAllString(Sanitize(phone), "")
	return phonePattern.MatchString(sanitized)
}

// Name reports whether the input is a display name of 2-50 letters or spaces.
func Name(name string) bool {
	sanitized := Sanitize(name)
	return namePattern.MatchString(sanitized) && len(strings.TrimSpace(sanitized)) >= 2
}

// Address reports whether the input is a 10-200 character address free of
// markup-significant characters.
func Address(address string) bool {
	sanitized := Sanitize(address)
	return len(sanitized) >= 10 && len(sanitized) <= 200 && !addressBlocked.MatchString(sanitized)
}
