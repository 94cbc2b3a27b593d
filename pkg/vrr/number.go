package vrr

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numberShape accepts any plain signed decimal; digit limits are checked
// separately so violations report their specific code.
var numberShape = regexp.MustCompile(`^-?\d+(\.\d+)?$`)

// Number returns a validator for signed decimal numbers with at most
// totalDigits significant digits and at most fractionDigits decimal places.
// The normalized value is the input fixed to fractionDigits decimal places.
func Number(totalDigits, fractionDigits int) Validator {

	return func(raw any) Outcome {
		if raw == nil {
			return invalid(CodeNumberRequired, "a numeric value is required")
		}
		s, ok := stringify(raw)
		if !ok {
			return invalid(CodeNumberPattern, "value is not a recognized numeric representation")
		}
		s = strings.TrimSpace(s)
		if s == "" || s == "-" || !numberShape.MatchString(s) {
			return invalid(CodeNumberPattern, "value %q does not match the required numeric pattern", s)
		}

		d, err := decimal.NewFromString(s)
		if err != nil {
			return invalid(CodeNumberPattern, "value %q is not a valid number", s)
		}

		if n := countDigits(s); n > totalDigits {
			return invalid(CodeNumberTotalDigits, "value has %d digits, maximum is %d", n, totalDigits)
		}
		if n := fractionLen(s); n > fractionDigits {
			return invalid(CodeNumberFraction, "value has %d decimal places, maximum is %d", n, fractionDigits)
		}

		return valid(d.StringFixed(int32(fractionDigits)))
	}
}

// Percentage returns a validator for decimal percentages within the
// inclusive range [min, max] and at most fractionDigits decimal places.
func Percentage(min, max float64, fractionDigits int) Validator {
	lo := decimal.NewFromFloat(min)
	hi := decimal.NewFromFloat(max)

	return func(raw any) Outcome {
		s, ok := stringify(raw)
		if !ok || raw == nil {
			return invalid(CodePercentageFormat, "a percentage value is required")
		}
		s = strings.TrimSpace(s)

		d, err := decimal.NewFromString(s)
		if err != nil {
			return invalid(CodePercentageFormat, "value %q is not a valid percentage", s)
		}
		if d.LessThan(lo) || d.GreaterThan(hi) {
			return invalid(CodePercentageRange, "value %s is outside the range [%s, %s]", d, lo, hi)
		}
		if n := fractionLen(s); n > fractionDigits {
			return invalid(CodePercentagePrecision, "value has %d decimal places, maximum is %d", n, fractionDigits)
		}

		return valid(d.StringFixed(int32(fractionDigits)))
	}
}

// countDigits counts digit characters, excluding sign and decimal separator.
func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// fractionLen counts the digits after the decimal separator as written,
// trailing zeros included.
func fractionLen(s string) int {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
