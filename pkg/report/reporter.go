package report

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openreg/regval/pkg/engine"
	"github.com/openreg/regval/pkg/rules"
	"github.com/openreg/regval/pkg/vrr"
)

// Category groups errors by the kind of defect they describe.
type Category string

const (
	CategoryStructural    Category = "structural"
	CategoryFormat        Category = "format"
	CategoryBusiness      Category = "business"
	CategoryCrossField    Category = "cross_field"
	CategoryConfiguration Category = "configuration"
)

// ReportedError is one enriched validation failure.
type ReportedError struct {
	ID            string
	RuleID        string
	FieldPath     string
	DataType      vrr.DataType
	ActualValue   any
	Severity      rules.Severity
	Code          string
	Message       string
	Category      Category
	Suggestions   []string
	DocURL        string
	Retryable     bool
	RelatedFields []string
}

// QuickFix is one instantiated remediation template, targeting every error
// in the report that shares its code.
type QuickFix struct {
	Code     string
	Title    string
	Action   string
	ErrorIDs []string
}

// ErrorReport is the enriched, aggregated view over one validation run.
type ErrorReport struct {
	ID                  string
	CreatedAt           time.Time
	ReportType          string
	ReportingPeriod     string
	Errors              []ReportedError
	CountsByCategory    map[Category]int
	CountsBySeverity    map[rules.Severity]int
	CriticalErrorCount  int
	RetryableErrorCount int
	Recommendations     []string
	QuickFixes          []QuickFix
}

// Reporter enriches raw failures and keeps the rolling error history.
type Reporter struct {
	catalog *Catalog
	log     *slog.Logger

	mu      sync.Mutex
	history []ReportedError
}

// ReporterOption configures reporter construction.
type ReporterOption func(*Reporter)

// WithCatalog replaces the compiled-in lookup catalog.
func WithCatalog(c *Catalog) ReporterOption {
	return func(r *Reporter) {
		if c != nil {
			r.catalog = c
		}
	}
}

// WithLogger sets the structured logger used for diagnostic output.
func WithLogger(l *slog.Logger) ReporterOption {
	return func(r *Reporter) {
		if l != nil {
			r.log = l
		}
	}
}

// NewReporter creates a reporter with the default catalog unless overridden.
func NewReporter(opts ...ReporterOption) *Reporter {
	r := &Reporter{catalog: DefaultCatalog(), log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreateReport enriches the raw failures from one validation run into an
// ErrorReport and appends them to the rolling history.
func (r *Reporter) CreateReport(errs []engine.DetailedError, ctx *rules.Context) *ErrorReport {
	rep := &ErrorReport{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now(),
		CountsByCategory: make(map[Category]int),
		CountsBySeverity: make(map[rules.Severity]int),
	}
	if ctx != nil {
		rep.ReportType = ctx.ReportType
		rep.ReportingPeriod = ctx.ReportingPeriod
	}

	for _, de := range errs {
		re := r.enrich(de)
		rep.Errors = append(rep.Errors, re)
		rep.CountsByCategory[re.Category]++
		rep.CountsBySeverity[re.Severity]++
		if re.Severity == rules.SeverityCritical {
			rep.CriticalErrorCount++
		}
		if re.Retryable {
			rep.RetryableErrorCount++
		}
	}

	rep.Recommendations = r.recommendations(rep)
	rep.QuickFixes = r.quickFixes(rep.Errors)

	r.mu.Lock()
	r.history = append(r.history, rep.Errors...)
	r.mu.Unlock()

	r.log.Debug("error report created",
		slog.String("report_id", rep.ID),
		slog.Int("errors", len(rep.Errors)),
		slog.Int("critical", rep.CriticalErrorCount),
		slog.Int("retryable", rep.RetryableErrorCount),
	)

	return rep
}

func (r *Reporter) enrich(de engine.DetailedError) ReportedError {
	code := de.Code

	suggestions := append([]string(nil), r.catalog.Suggestions[code]...)
	suggestions = append(suggestions, de.Suggestions...)
	if strings.Contains(de.FieldPath, "totalAssets") || containsPath(de.RelatedFields, "totalAssets") {
		suggestions = append(suggestions, "Check the balance sheet identity: total assets must equal total liabilities plus shareholder equity.")
	}

	docURL, ok := r.catalog.DocURLs[code]
	if !ok {
		docURL = r.catalog.DefaultDocURL
	}

	return ReportedError{
		ID:            uuid.NewString(),
		RuleID:        de.RuleID,
		FieldPath:     de.FieldPath,
		DataType:      de.DataType,
		ActualValue:   de.ActualValue,
		Severity:      de.Severity,
		Code:          code,
		Message:       de.Message,
		Category:      categorize(de),
		Suggestions:   dedupe(suggestions),
		DocURL:        docURL,
		Retryable:     vrr.Retryable(code),
		RelatedFields: append([]string(nil), de.RelatedFields...),
	}
}

// recommendations derives report-level guidance from fixed thresholds.
func (r *Reporter) recommendations(rep *ErrorReport) []string {
	var recs []string

	patternCount := 0
	for _, re := range rep.Errors {
		if strings.HasSuffix(re.Code, "_PATTERN") || strings.HasSuffix(re.Code, "_FORMAT") {
			patternCount++
		}
	}
	if patternCount > 2 {
		recs = append(recs, "Several values fail basic format checks; review the report formatting guidelines before resubmitting.")
	}
	if rep.CriticalErrorCount > 0 {
		recs = append(recs, "Critical errors must be addressed immediately; the report is not compliant until they are resolved.")
	}
	if rep.RetryableErrorCount > 0 {
		recs = append(recs, "Retryable formatting errors can be corrected and the validation run again.")
	}
	return recs
}

// quickFixes instantiates one template per distinct failing code, in order
// of first appearance, targeting every error with that code.
func (r *Reporter) quickFixes(errs []ReportedError) []QuickFix {
	var order []string
	idsByCode := make(map[string][]string)
	for _, re := range errs {
		if _, seen := idsByCode[re.Code]; !seen {
			order = append(order, re.Code)
		}
		idsByCode[re.Code] = append(idsByCode[re.Code], re.ID)
	}

	var fixes []QuickFix
	for _, code := range order {
		tmpl, ok := r.catalog.QuickFixes[code]
		if !ok {
			continue
		}
		fixes = append(fixes, QuickFix{
			Code:     code,
			Title:    tmpl.Title,
			Action:   tmpl.Action,
			ErrorIDs: idsByCode[code],
		})
	}
	return fixes
}

// categorize derives the taxonomy bucket from the error's shape: required
// fields are structural, unknown paths configuration, multi-field rules
// cross-field, business rules carry their rule id as code, everything else
// is a format failure from a typed validator.
func categorize(de engine.DetailedError) Category {
	switch {
	case de.Code == engine.CodeFieldRequired:
		return CategoryStructural
	case de.Code == engine.CodeNoRuleFound:
		return CategoryConfiguration
	case len(de.RelatedFields) > 0:
		return CategoryCrossField
	case de.Code == de.RuleID:
		return CategoryBusiness
	default:
		return CategoryFormat
	}
}

func containsPath(paths []string, fragment string) bool {
	for _, p := range paths {
		if strings.Contains(p, fragment) {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
