// Package engine evaluates a structured regulatory report against the rule
// registry for its report type and aggregates the outcome into a classified
// result.
//
// The engine walks the registered field rules in order, extracting each
// field by dot-separated path from a tagged value tree built over the
// report's section data. Required fields that are absent fail at CRITICAL
// severity; absent optional fields count as valid without invoking the
// validator. Type-validation failures surface at HIGH severity with the
// validator's own error code; business rules run only after type validation
// passes and carry their declared severity, with LOW routed to warnings.
// Cross-field rules are evaluated once per report over the extracted
// values. Warnings never affect validity.
//
// The engine is a pure function of its inputs plus the immutable registry:
// it holds no mutable state, never panics on data-shape problems, and is
// safe for concurrent use. Every bad input becomes a result value; only a
// programming defect should ever fail loudly.
package engine
