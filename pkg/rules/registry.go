package rules

import "fmt"

// RuleSet is the ordered collection of field rules plus the cross-field
// rules for one report type. Construct with NewRuleSet; immutable after.
type RuleSet struct {
	reportType string
	fields     []FieldRule
	cross      []CrossFieldRule
	byPath     map[string]int
}

// NewRuleSet declares the rule set for one report type. Field order is
// preserved and becomes the evaluation order. Declaring two rules for the
// same path is a configuration defect and fails with ErrDuplicateFieldPath.
func NewRuleSet(reportType string, fields []FieldRule, cross []CrossFieldRule) (*RuleSet, error) {
	if reportType == "" {
		return nil, ErrEmptyReportType
	}

	byPath := make(map[string]int, len(fields))
	for i, fr := range fields {
		if _, dup := byPath[fr.FieldPath]; dup {
			return nil, fmt.Errorf("%w: %s (report type %s)", ErrDuplicateFieldPath, fr.FieldPath, reportType)
		}
		byPath[fr.FieldPath] = i
	}

	return &RuleSet{
		reportType: reportType,
		fields:     append([]FieldRule(nil), fields...),
		cross:      append([]CrossFieldRule(nil), cross...),
		byPath:     byPath,
	}, nil
}

// ReportType returns the report type identifier this set is keyed by.
func (s *RuleSet) ReportType() string { return s.reportType }

// FieldRules returns the ordered field rules. The returned slice is a copy;
// mutating it does not affect the set.
func (s *RuleSet) FieldRules() []FieldRule {
	return append([]FieldRule(nil), s.fields...)
}

// CrossFieldRules returns the cross-field rules. The returned slice is a copy.
func (s *RuleSet) CrossFieldRules() []CrossFieldRule {
	return append([]CrossFieldRule(nil), s.cross...)
}

// FieldRule looks up a single field rule by path.
func (s *RuleSet) FieldRule(path string) (FieldRule, bool) {
	if i, ok := s.byPath[path]; ok {
		return s.fields[i], true
	}
	return FieldRule{}, false
}

// Len returns the number of field rules in the set.
func (s *RuleSet) Len() int { return len(s.fields) }

// Registry holds the rule sets for all known report types. It is built once
// at startup and read concurrently without locking afterwards.
type Registry struct {
	sets map[string]*RuleSet
}

// NewRegistry builds a registry from the given rule sets, layering the
// common field rules (institution identifier, contact address, consolidation
// flag) onto every set. A set's own rule for a common path supersedes the
// common one.
func NewRegistry(sets ...*RuleSet) (*Registry, error) {
	r := &Registry{sets: make(map[string]*RuleSet, len(sets))}

	for _, set := range sets {
		if set == nil {
			continue
		}
		if _, dup := r.sets[set.reportType]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateReportType, set.reportType)
		}

		layered := layerCommonRules(set)
		r.sets[set.reportType] = layered
	}

	return r, nil
}

// RuleSet returns the rule set for the given report type. Unknown types
// yield an empty set rather than an error.
func (r *Registry) RuleSet(reportType string) *RuleSet {
	if set, ok := r.sets[reportType]; ok {
		return set
	}
	return &RuleSet{reportType: reportType, byPath: map[string]int{}}
}

// ReportTypes lists the registered report type identifiers.
func (r *Registry) ReportTypes() []string {
	types := make([]string, 0, len(r.sets))
	for rt := range r.sets {
		types = append(types, rt)
	}
	return types
}

// layerCommonRules prepends the common field rules to a declared set,
// skipping any path the set already defines. The input set is not modified.
func layerCommonRules(set *RuleSet) *RuleSet {
	common := commonFieldRules()
	merged := make([]FieldRule, 0, len(common)+len(set.fields))
	for _, fr := range common {
		if _, defined := set.byPath[fr.FieldPath]; !defined {
			merged = append(merged, fr)
		}
	}
	merged = append(merged, set.fields...)

	byPath := make(map[string]int, len(merged))
	for i, fr := range merged {
		byPath[fr.FieldPath] = i
	}

	return &RuleSet{
		reportType: set.reportType,
		fields:     merged,
		cross:      set.cross,
		byPath:     byPath,
	}
}
