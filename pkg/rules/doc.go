// Package rules defines the per-report-type rule registry: ordered field
// rules binding a field path to a typed validator, required/conditional
// policy and business rules, plus cross-field consistency rules spanning
// several paths within one report.
//
// Rule sets are declarative data, built once through NewRuleSet and
// NewRegistry and immutable afterwards. A fixed set of common field rules
// (institution identifier, contact address, consolidation flag) is layered
// onto every registered report type at build time; a report-type rule for
// the same path supersedes the common one. Duplicate field paths inside one
// declared set are a configuration defect and fail registry construction.
//
// Looking up an unknown report type yields an empty rule set, never an
// error: the engine then validates nothing and reports zero fields.
package rules
