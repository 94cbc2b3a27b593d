package engine

import (
	"log/slog"
	"time"

	"github.com/openreg/regval/pkg/rules"
	"github.com/openreg/regval/pkg/vrr"
)

// Engine validates reports against an immutable rule registry. It is
// stateless apart from the registry reference and safe for concurrent use.
type Engine struct {
	registry *rules.Registry
	log      *slog.Logger
}

// Option configures engine construction.
type Option func(*Engine)

// WithLogger sets the structured logger used for diagnostic output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine over the given registry. A nil registry is treated
// as empty: every report type validates zero fields.
func New(registry *rules.Registry, opts ...Option) *Engine {
	e := &Engine{registry: registry, log: slog.Default()}
	if registry == nil {
		empty, _ := rules.NewRegistry()
		e.registry = empty
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the ordered field rules registered for the report type.
func (e *Engine) Rules(reportType string) []rules.FieldRule {
	return e.registry.RuleSet(reportType).FieldRules()
}

// ValidateField validates a single value against the field rule registered
// for the path. An unknown path yields a NO_RULE_FOUND outcome, which is a
// normal result rather than an error.
func (e *Engine) ValidateField(path string, value any, reportType string, _ *rules.Context) vrr.Outcome {
	fr, ok := e.registry.RuleSet(reportType).FieldRule(path)
	if !ok {
		return vrr.Outcome{
			Code:    CodeNoRuleFound,
			Message: "no rule registered for field path " + path + " in report type " + reportType,
		}
	}
	return fr.Validator(value)
}

// ValidateReport evaluates every registered field rule in order, then the
// cross-field rules, and aggregates the classified result. An unknown
// report type validates zero fields and is therefore valid.
func (e *Engine) ValidateReport(report Report, reportType string, ctx *rules.Context) *Result {
	start := time.Now()
	set := e.registry.RuleSet(reportType)
	tree := report.Tree()

	res := &Result{Summary: Summary{BySeverity: make(map[rules.Severity]int)}}

	for _, fr := range set.FieldRules() {
		e.validateFieldRule(res, tree, fr, ctx)
	}

	for _, cr := range set.CrossFieldRules() {
		e.validateCrossFieldRule(res, tree, cr, ctx)
	}

	res.Valid = len(res.Errors) == 0
	res.Metrics = computeMetrics(res.Summary.TotalFields, time.Since(start))

	e.log.Debug("report validated",
		slog.String("report_id", report.ID),
		slog.String("report_type", reportType),
		slog.Int("fields", res.Summary.TotalFields),
		slog.Int("errors", len(res.Errors)),
		slog.Int("warnings", len(res.Warnings)),
		slog.Bool("valid", res.Valid),
	)

	return res
}

func (e *Engine) validateFieldRule(res *Result, tree Value, fr rules.FieldRule, ctx *rules.Context) {
	res.Summary.TotalFields++

	value := tree.At(fr.FieldPath)
	if value.IsAbsent() {
		if fr.Required || conditionallyRequired(tree, fr) {
			res.Summary.InvalidFields++
			res.addError(DetailedError{
				RuleID:      "required:" + fr.FieldPath,
				FieldPath:   fr.FieldPath,
				DataType:    fr.DataType,
				Severity:    rules.SeverityCritical,
				Code:        CodeFieldRequired,
				Message:     fr.FieldName + " is required but missing from the report",
				Suggestions: suggestionsForType(fr.DataType),
			})
			return
		}
		// Optional and absent: the validator is not invoked.
		res.Summary.ValidFields++
		return
	}

	out := fr.Validator(value.Raw())
	if !out.Valid {
		code := out.Code
		if code == "" {
			code = CodeValidationError
		}
		res.Summary.InvalidFields++
		res.addError(DetailedError{
			RuleID:      "type:" + fr.FieldPath,
			FieldPath:   fr.FieldPath,
			DataType:    fr.DataType,
			ActualValue: value.Raw(),
			Severity:    rules.SeverityHigh,
			Code:        code,
			Message:     out.Message,
			Suggestions: suggestionsForType(fr.DataType),
		})
		return
	}

	// Business rules run only after type validation; each failure is
	// recorded and evaluation of the remaining rules continues.
	for _, br := range fr.BusinessRules {
		if br.Check == nil || br.Check(out.Normalized, ctx) {
			continue
		}
		de := DetailedError{
			RuleID:      br.ID,
			FieldPath:   fr.FieldPath,
			DataType:    fr.DataType,
			ActualValue: value.Raw(),
			Severity:    br.Severity,
			Code:        br.ID,
			Message:     br.Message,
		}
		if br.Severity == rules.SeverityLow {
			res.Warnings = append(res.Warnings, de)
		} else {
			res.addError(de)
		}
	}

	// The field counts as valid once type validation passed, regardless of
	// business-rule outcomes.
	res.Summary.ValidFields++
}

// conditionallyRequired reports whether a conditional field must be present
// because every one of its dependency paths is present in the report.
func conditionallyRequired(tree Value, fr rules.FieldRule) bool {
	if !fr.Conditional || len(fr.Dependencies) == 0 {
		return false
	}
	for _, dep := range fr.Dependencies {
		if tree.At(dep).IsAbsent() {
			return false
		}
	}
	return true
}

func (e *Engine) validateCrossFieldRule(res *Result, tree Value, cr rules.CrossFieldRule, ctx *rules.Context) {
	if cr.Check == nil {
		return
	}

	values := make(map[string]any, len(cr.Fields))
	for _, path := range cr.Fields {
		values[path] = tree.At(path).Raw()
	}
	if cr.Check(values, ctx) {
		return
	}

	fieldPath := ""
	if len(cr.Fields) > 0 {
		fieldPath = cr.Fields[0]
	}
	de := DetailedError{
		RuleID:        cr.ID,
		FieldPath:     fieldPath,
		Severity:      cr.Severity,
		Code:          cr.ID,
		Message:       cr.Message,
		RelatedFields: append([]string(nil), cr.Fields...),
	}
	if cr.Severity == rules.SeverityLow {
		res.Warnings = append(res.Warnings, de)
	} else {
		res.addError(de)
	}
}

func (res *Result) addError(de DetailedError) {
	res.Errors = append(res.Errors, de)
	res.Summary.BySeverity[de.Severity]++
}

// computeMetrics derives throughput from elapsed wall time. Elapsed times
// below one microsecond report totalFields as the throughput so the value
// stays deterministic instead of approaching infinity.
func computeMetrics(totalFields int, elapsed time.Duration) Metrics {
	m := Metrics{Elapsed: elapsed}
	if elapsed < time.Microsecond {
		m.FieldsPerSecond = float64(totalFields)
		return m
	}
	m.FieldsPerSecond = float64(totalFields) / elapsed.Seconds()
	return m
}

// suggestionsForType maps each data type to remediation hints attached to
// type-level failures.
func suggestionsForType(dt vrr.DataType) []string {
	switch dt {
	case vrr.DataTypeNumber:
		return []string{"Provide a plain decimal number without thousands separators, e.g. 38000000.00."}
	case vrr.DataTypeDate:
		return []string{"Use the YYYY-MM-DD format, e.g. 2025-12-31."}
	case vrr.DataTypeEmail:
		return []string{"Provide a deliverable address such as compliance@institution.example."}
	case vrr.DataTypeLEI:
		return []string{"An LEI is exactly 20 alphanumeric characters ending in two check digits."}
	case vrr.DataTypeYesNo:
		return []string{"Use 0 for No or 1 for Yes."}
	case vrr.DataTypeYesNoNA:
		return []string{"Use 0 for No, 1 for Yes or 2 for Not Applicable."}
	case vrr.DataTypePercentage:
		return []string{"Provide a decimal percentage within the permitted range, e.g. 12.50."}
	case vrr.DataTypeBoolean:
		return []string{"Use true, false, 1 or 0."}
	case vrr.DataTypeText:
		return []string{"Check the length limits and permitted characters for this field."}
	case vrr.DataTypeFRN:
		return []string{"A firm reference number is two letters followed by eight digits, e.g. FR12345678."}
	default:
		return nil
	}
}
