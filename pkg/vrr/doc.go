// Package vrr implements the typed field validators for regulatory report
// fields: numbers with precision/scale limits, ISO dates, email addresses,
// Legal Entity Identifiers, yes/no enumerations, percentages, booleans,
// bounded text, and firm reference numbers.
//
// Every validator is a pure function producing an Outcome value; validators
// never panic and never return Go errors for bad input. A failing Outcome
// carries a stable error code that downstream layers use for suggestion
// lookup, documentation linking, and retryability classification.
//
// # Architecture
//
// Each source file groups validators for one family of data types
// (number.go, date.go, lei.go, choice.go, string.go). Constructors such as
// Number or Text return a configured Validator closure; there is no hidden
// state, so validators are safe to share across goroutines.
//
// Decimal values are parsed with shopspring/decimal rather than float64:
// regulatory totals must round-trip exactly, and binary floating point
// cannot represent amounts like 0.01 without error.
//
// # Usage
//
//	v := vrr.Number(16, 2)
//	out := v("38000000.00")
//	if !out.Valid {
//	    fmt.Println(out.Code, out.Message)
//	}
//
// # Error Handling
//
// Outcome is a value, not an error. Callers decide what a failing outcome
// means; the validation engine assigns severity and aggregates failures.
package vrr
