package vrr

import (
	"fmt"
	"regexp"
	"strings"
)

var leiRegex = regexp.MustCompile(`^[A-Z0-9]{20}$`)

// LEI returns a validator for ISO 17442 Legal Entity Identifiers: a
// 20-character uppercase alphanumeric code whose last two characters are a
// mod-97 checksum over the first eighteen. Input is trimmed and uppercased
// first, so validation is case-insensitive. A value failing the length or
// pattern check never reaches checksum evaluation.
func LEI() Validator {
	return func(raw any) Outcome {
		s, ok := stringify(raw)
		if !ok || raw == nil {
			return invalid(CodeLEILength, "a legal entity identifier is required")
		}
		s = strings.ToUpper(strings.TrimSpace(s))
		if len(s) != 20 {
			return invalid(CodeLEILength, "identifier has %d characters, an LEI must have exactly 20", len(s))
		}
		if !leiRegex.MatchString(s) {
			return invalid(CodeLEIPattern, "identifier %q may only contain uppercase letters and digits", s)
		}
		if expect := leiCheckDigits(s[:18]); expect != s[18:] {
			return invalid(CodeLEIChecksum, "identifier %q fails the ISO 17442 checksum, expected check digits %s", s, expect)
		}
		return valid(s)
	}
}

// leiCheckDigits computes the two ISO 17442 check digits for the first
// eighteen characters of an LEI: letters map to code-55 (A=10 .. Z=35),
// digits to themselves, "00" is appended, and the resulting numeric string
// is reduced mod 97 incrementally to avoid big-integer arithmetic.
func leiCheckDigits(base string) string {
	rem := 0
	for _, r := range base {
		if r >= 'A' && r <= 'Z' {
			// Two-digit expansion: value 10..35.
			rem = (rem*100 + int(r) - 55) % 97
		} else {
			rem = (rem*10 + int(r) - '0') % 97
		}
	}
	// Trailing "00" for the check-digit positions.
	rem = (rem * 100) % 97
	return fmt.Sprintf("%02d", 98-rem)
}
