// Package report turns raw validation failures into an enriched, actionable
// error report: every failure gets a unique id, remediation suggestions, a
// documentation link and a retryability flag, and the report as a whole
// carries category and severity summaries, derived recommendations, and
// quick-fix bundles grouped by error code.
//
// The suggestion lists, documentation URLs and quick-fix templates are
// configuration data, not behavior: DefaultCatalog ships a compiled-in set
// and LoadCatalog reads overrides from a YAML file without changing any
// engine contract.
//
// A Reporter keeps an append-only history of every error it has reported,
// used solely for rolling statistics (top failing codes by frequency) until
// explicitly cleared. Reporters have an explicit lifecycle: construct with
// NewReporter and share by reference; there is no package-level singleton,
// so tests can instantiate isolated instances.
package report
