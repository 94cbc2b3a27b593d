package engine

import (
	"time"

	"github.com/openreg/regval/pkg/rules"
	"github.com/openreg/regval/pkg/vrr"
)

// Error codes produced by the engine itself, as opposed to codes carried by
// validator outcomes.
const (
	// CodeFieldRequired marks a required field that is absent from the report.
	CodeFieldRequired = "FIELD_REQUIRED"
	// CodeNoRuleFound marks a field path unknown to the report type's rule
	// set. This is a normal outcome of ValidateField, not a failure of the
	// engine.
	CodeNoRuleFound = "NO_RULE_FOUND"
	// CodeValidationError is the fallback when a validator rejects a value
	// without supplying its own code.
	CodeValidationError = "VALIDATION_ERROR"
)

// DetailedError is one classified validation failure: a missing required
// field, a typed-validator rejection, a business rule violation, or a
// cross-field inconsistency.
type DetailedError struct {
	RuleID        string
	FieldPath     string
	DataType      vrr.DataType
	ActualValue   any
	Severity      rules.Severity
	Code          string
	Message       string
	Suggestions   []string
	RelatedFields []string
}

// Summary aggregates per-field counts for one engine invocation. Severity
// buckets are computed over errors only; warnings never appear in them.
type Summary struct {
	TotalFields   int
	ValidFields   int
	InvalidFields int
	BySeverity    map[rules.Severity]int
}

// Metrics records the wall time of one engine invocation.
type Metrics struct {
	Elapsed         time.Duration
	FieldsPerSecond float64
}

// Result is the terminal output of one engine invocation. It is immutable
// once returned and safe to cache.
type Result struct {
	Valid    bool
	Errors   []DetailedError
	Warnings []DetailedError
	Summary  Summary
	Metrics  Metrics
}

// Status classifies a validated report for compliance purposes.
type Status string

const (
	StatusCompliant    Status = "COMPLIANT"
	StatusWarning      Status = "WARNING"
	StatusNonCompliant Status = "NON_COMPLIANT"
)

// ComplianceStatus derives the compliance classification: any CRITICAL
// error is NON_COMPLIANT, any HIGH error (without CRITICAL) is WARNING,
// anything else is COMPLIANT. LOW-severity warnings never affect the
// classification.
func (r *Result) ComplianceStatus() Status {
	if r.Summary.BySeverity[rules.SeverityCritical] > 0 {
		return StatusNonCompliant
	}
	if r.Summary.BySeverity[rules.SeverityHigh] > 0 {
		return StatusWarning
	}
	return StatusCompliant
}
