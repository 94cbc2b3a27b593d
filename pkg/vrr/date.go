package vrr

import (
	"regexp"
	"time"
)

var dateShape = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date returns a validator for ISO dates in the exact literal form
// YYYY-MM-DD. When pastOnly is set, dates strictly after the current moment
// are rejected. The normalized value is the parsed time.Time in UTC.
func Date(pastOnly bool) Validator {
	return func(raw any) Outcome {
		s, ok := stringify(raw)
		if !ok || raw == nil {
			return invalid(CodeDateFormat, "a date in YYYY-MM-DD format is required")
		}
		if !dateShape.MatchString(s) {
			return invalid(CodeDateFormat, "date %q must use the YYYY-MM-DD format", s)
		}

		// time.Parse rejects calendar-invalid dates (month 13, day 32,
		// non-leap Feb 29) once the shape has been established.
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return invalid(CodeDateInvalid, "date %q is not a valid calendar date", s)
		}

		if pastOnly && t.After(time.Now()) {
			return invalid(CodeDatePastOnly, "date %q must not be in the future", s)
		}

		return valid(t)
	}
}
