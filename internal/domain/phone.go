package domain

import (
	"regexp"
	"strings"
)

var mobilePattern = regexp.MustCompile(`^01[3-9][0-9]{8}$`)

// NormalizePhone accepts a Bangladeshi mobile number with or without the +88
// country prefix, ignoring spaces and dashes, and returns the 11-digit local
// form.
func NormalizePhone(raw string) (string, error) {
	p := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(raw))
	p = strings.TrimPrefix(p, "+")
	if len(p) == 13 && strings.HasPrefix(p, "88") {
		p = p[2:]
	}
	if !mobilePattern.MatchString(p) {
		return "", Invalid("phone must be a Bangladeshi mobile number like 01712345678")
	}
	return p, nil
}
