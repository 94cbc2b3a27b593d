package rules

import "errors"

var (
	// ErrDuplicateFieldPath is returned when one rule set declares two field
	// rules for the same path. This is a configuration defect, caught at
	// registry construction rather than surfacing at validation time.
	ErrDuplicateFieldPath = errors.New("rules: duplicate field path in rule set")

	// ErrDuplicateReportType is returned when two rule sets are registered
	// under the same report type identifier.
	ErrDuplicateReportType = errors.New("rules: report type already registered")

	// ErrEmptyReportType is returned when a rule set is declared without a
	// report type identifier.
	ErrEmptyReportType = errors.New("rules: rule set requires a report type")
)
