package vrr

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	frnRegex   = regexp.MustCompile(`^[A-Z]{2}[0-9]{8}$`)
)

const maxEmailLen = 255

// Email returns a validator for contact email addresses. The normalized
// value is the lower-cased input.
func Email() Validator {
	return func(raw any) Outcome {
		s, ok := stringify(raw)
		if !ok || raw == nil {
			return invalid(CodeEmailFormat, "an email address is required")
		}
		if len(s) > maxEmailLen {
			return invalid(CodeEmailLength, "email exceeds the maximum length of %d characters", maxEmailLen)
		}
		if !emailRegex.MatchString(s) {
			return invalid(CodeEmailFormat, "email %q is not a valid address", s)
		}
		return valid(strings.ToLower(s))
	}
}

// Text returns a validator for bounded free-text fields. A nil value with
// minLen zero validates as the empty string. pattern may be empty to skip
// pattern matching; it must be a valid regular expression otherwise.
func Text(maxLen, minLen int, pattern string) Validator {
	var re *regexp.Regexp
	if pattern != "" {
		re = regexp.MustCompile(pattern)
	}

	return func(raw any) Outcome {
		if raw == nil {
			if minLen == 0 {
				return valid("")
			}
			return invalid(CodeTextRequired, "a text value of at least %d characters is required", minLen)
		}
		s, ok := stringify(raw)
		if !ok {
			return invalid(CodeTextPattern, "value is not a text representation")
		}
		if len(s) < minLen {
			return invalid(CodeTextMinLength, "text has %d characters, minimum is %d", len(s), minLen)
		}
		if len(s) > maxLen {
			return invalid(CodeTextMaxLength, "text has %d characters, maximum is %d", len(s), maxLen)
		}
		if re != nil && !re.MatchString(s) {
			return invalid(CodeTextPattern, "text does not match the required pattern")
		}
		return valid(s)
	}
}

// FRN returns a validator for firm reference numbers: two letters followed
// by eight digits. Input is uppercased before matching; the normalized
// value is the uppercased string.
func FRN() Validator {
	return func(raw any) Outcome {
		s, ok := stringify(raw)
		if !ok || raw == nil {
			return invalid(CodeFRNPattern, "a firm reference number is required")
		}
		s = strings.ToUpper(strings.TrimSpace(s))
		if !frnRegex.MatchString(s) {
			return invalid(CodeFRNPattern, "firm reference number %q must match two letters followed by eight digits", s)
		}
		return valid(s)
	}
}
