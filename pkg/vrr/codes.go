package vrr

// Stable error codes produced by the typed field validators. Downstream
// layers key suggestion lists, documentation links, and quick-fix templates
// on these values, so they must never change once published.
const (
	CodeNumberRequired      = "NUMBER_REQUIRED"
	CodeNumberPattern       = "NUMBER_PATTERN"
	CodeNumberTotalDigits   = "NUMBER_TOTAL_DIGITS"
	CodeNumberFraction      = "NUMBER_FRACTION_DIGITS"
	CodeDateFormat          = "DATE_FORMAT"
	CodeDateInvalid         = "DATE_INVALID"
	CodeDatePastOnly        = "DATE_PAST_ONLY"
	CodeEmailLength         = "EMAIL_LENGTH"
	CodeEmailFormat         = "EMAIL_FORMAT"
	CodeLEILength           = "LEI_LENGTH"
	CodeLEIPattern          = "LEI_PATTERN"
	CodeLEIChecksum         = "LEI_CHECKSUM"
	CodeYesNoInvalid        = "YESNO_INVALID"
	CodeYesNoNAInvalid      = "YESNONA_INVALID"
	CodePercentageFormat    = "PERCENTAGE_FORMAT"
	CodePercentageRange     = "PERCENTAGE_RANGE"
	CodePercentagePrecision = "PERCENTAGE_PRECISION"
	CodeBooleanInvalid      = "BOOLEAN_INVALID"
	CodeTextRequired        = "TEXT_REQUIRED"
	CodeTextMinLength       = "TEXT_MIN_LENGTH"
	CodeTextMaxLength       = "TEXT_MAX_LENGTH"
	CodeTextPattern         = "TEXT_PATTERN"
	CodeFRNPattern          = "FRN_PATTERN"
)

// retryableCodes is the fixed allow-list of format-only failures that a
// submitter can fix by correcting the value's shape and resubmitting.
// Checksum and structural failures are deliberately absent.
var retryableCodes = map[string]bool{
	CodeNumberPattern:       true,
	CodeNumberFraction:      true,
	CodeDateFormat:          true,
	CodeEmailFormat:         true,
	CodeEmailLength:         true,
	CodePercentageFormat:    true,
	CodePercentagePrecision: true,
	CodeTextPattern:         true,
	CodeBooleanInvalid:      true,
}

// Retryable reports whether the given error code describes a format-only
// failure that is safe to retry after correcting the value.
func Retryable(code string) bool {
	return retryableCodes[code]
}
