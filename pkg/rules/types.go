package rules

import "github.com/openreg/regval/pkg/vrr"

// Severity classifies how a failed rule affects report compliance.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Context carries the read-only inputs threaded through validators and rule
// predicates for one validation call. It is built fresh per call and never
// shared across calls.
type Context struct {
	ReportType      string
	ReportingPeriod string
	Institution     map[string]any
	CrossFieldData  map[string]any
}

// FieldRule binds one field path to its typed validator, required/optional
// policy and any business rules. Field rules are owned by exactly one rule
// set and immutable once registered.
type FieldRule struct {
	FieldPath     string
	FieldName     string
	DataType      vrr.DataType
	Required      bool
	Conditional   bool
	Dependencies  []string
	Validator     vrr.Validator
	BusinessRules []BusinessRule
}

// BusinessRule is a single-field semantic constraint evaluated only after
// the bound field passes type validation. Check returns true when the rule
// holds; the value passed is the validator's normalized value.
type BusinessRule struct {
	ID       string
	Name     string
	Severity Severity
	Message  string
	Check    func(value any, ctx *Context) bool
}

// CrossFieldRule is a consistency constraint over several field paths within
// one report, evaluated once per report independent of individual field
// outcomes. Check receives the extracted raw values keyed by path and
// returns true when the rule holds.
type CrossFieldRule struct {
	ID       string
	Name     string
	Severity Severity
	Fields   []string
	Message  string
	Check    func(values map[string]any, ctx *Context) bool
}
