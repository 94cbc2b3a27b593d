package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openreg/regval/pkg/vrr"
)

// QuickFixTemplate is a pre-authored remediation keyed by error code. The
// reporter fills in the ids of the errors it applies to.
type QuickFixTemplate struct {
	Title  string `yaml:"title"`
	Action string `yaml:"action"`
}

// Catalog holds the code-keyed lookup tables used to enrich errors. It is
// plain configuration data and safe to share read-only.
type Catalog struct {
	Suggestions   map[string][]string         `yaml:"suggestions"`
	DocURLs       map[string]string           `yaml:"doc_urls"`
	DefaultDocURL string                      `yaml:"default_doc_url"`
	QuickFixes    map[string]QuickFixTemplate `yaml:"quick_fixes"`
}

// LoadCatalog reads a catalog from a YAML file and fills any table the file
// omits from the compiled-in defaults.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: read catalog: %w", err)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("report: parse catalog: %w", err)
	}

	defaults := DefaultCatalog()
	if c.Suggestions == nil {
		c.Suggestions = defaults.Suggestions
	}
	if c.DocURLs == nil {
		c.DocURLs = defaults.DocURLs
	}
	if c.DefaultDocURL == "" {
		c.DefaultDocURL = defaults.DefaultDocURL
	}
	if c.QuickFixes == nil {
		c.QuickFixes = defaults.QuickFixes
	}
	return &c, nil
}

// DefaultCatalog returns the compiled-in lookup tables. A fresh value is
// returned on every call so callers may mutate their copy safely.
func DefaultCatalog() *Catalog {
	return &Catalog{
		DefaultDocURL: "https://docs.openreg.example/validation/errors",
		Suggestions: map[string][]string{
			vrr.CodeNumberPattern: {
				"Remove thousands separators and currency symbols; use a plain decimal such as 38000000.00.",
			},
			vrr.CodeNumberTotalDigits: {
				"Check whether the amount is reported in the correct unit; the figure exceeds the permitted number of digits.",
			},
			vrr.CodeNumberFraction: {
				"Round the amount to the permitted number of decimal places before submission.",
			},
			vrr.CodeDateFormat: {
				"Dates must be written as YYYY-MM-DD, e.g. 2025-12-31.",
			},
			vrr.CodeDateInvalid: {
				"The date does not exist in the calendar; check day and month values.",
			},
			vrr.CodeDatePastOnly: {
				"This field may not contain a future date; check the reporting period.",
			},
			vrr.CodeEmailFormat: {
				"Provide a monitored mailbox in the form name@domain.tld.",
			},
			vrr.CodeLEIChecksum: {
				"The identifier's check digits do not match; copy the LEI exactly as issued by the LOU.",
			},
			vrr.CodeLEILength: {
				"A Legal Entity Identifier has exactly 20 characters.",
			},
			"FIELD_REQUIRED": {
				"Populate the field before submission; required fields cannot be omitted.",
			},
		},
		DocURLs: map[string]string{
			vrr.CodeLEIChecksum:   "https://docs.openreg.example/validation/lei",
			vrr.CodeLEILength:     "https://docs.openreg.example/validation/lei",
			vrr.CodeLEIPattern:    "https://docs.openreg.example/validation/lei",
			vrr.CodeDateFormat:    "https://docs.openreg.example/validation/dates",
			vrr.CodeDateInvalid:   "https://docs.openreg.example/validation/dates",
			vrr.CodeNumberPattern: "https://docs.openreg.example/validation/numbers",
			"FIELD_REQUIRED":      "https://docs.openreg.example/validation/required-fields",
		},
		QuickFixes: map[string]QuickFixTemplate{
			vrr.CodeNumberPattern: {
				Title:  "Reformat numeric values",
				Action: "Strip separators and symbols from the listed fields and resubmit them as plain decimals.",
			},
			vrr.CodeDateFormat: {
				Title:  "Reformat dates",
				Action: "Rewrite the listed fields as YYYY-MM-DD.",
			},
			vrr.CodeEmailFormat: {
				Title:  "Correct contact addresses",
				Action: "Replace the listed fields with a deliverable name@domain.tld address.",
			},
			"FIELD_REQUIRED": {
				Title:  "Populate missing fields",
				Action: "Supply values for the listed required fields.",
			},
		},
	}
}
