package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// Normalized form: country code 254 followed by 9 digits, no leading +.
var phonePattern = regexp.MustCompile(`^254\d{9}$`)

// NormalizePhone converts national-format input into the canonical
// 2547XXXXXXXX form the payment gateway expects:
//
//	0712345678    -> 254712345678
//	+254712345678 -> 254712345678
//	254712345678  -> unchanged
func NormalizePhone(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.TrimPrefix(s, "+")

	if strings.HasPrefix(s, "0") && len(s) == 10 {
		s = "254" + s[1:]
	}

	if !phonePattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}

	return s, nil
}
