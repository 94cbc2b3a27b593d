package vrr

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// DataType identifies one of the fixed regulator-defined field data types.
type DataType string

const (
	DataTypeNumber     DataType = "number"
	DataTypeDate       DataType = "date"
	DataTypeEmail      DataType = "email"
	DataTypeLEI        DataType = "lei"
	DataTypeYesNo      DataType = "yes_no"
	DataTypeYesNoNA    DataType = "yes_no_na"
	DataTypePercentage DataType = "percentage"
	DataTypeBoolean    DataType = "boolean"
	DataTypeText       DataType = "text"
	DataTypeFRN        DataType = "frn"
)

// Outcome is the result of validating one raw value against one data type.
// A zero Code with Valid true means the value passed; a failing outcome
// always carries a stable error code.
type Outcome struct {
	Valid      bool
	Code       string
	Message    string
	Normalized any
}

// Validator validates a single raw field value against one data-type
// contract. Implementations are pure functions: same input, same outcome,
// no side effects.
type Validator func(raw any) Outcome

func valid(normalized any) Outcome {
	return Outcome{Valid: true, Normalized: normalized}
}

func invalid(code, format string, args ...any) Outcome {
	return Outcome{Code: code, Message: fmt.Sprintf(format, args...)}
}

// stringify converts the raw field representations that appear in report
// section data into a string for pattern-based validation. Floats are
// formatted with strconv to avoid exponent notation; decimals keep their
// exact representation.
func stringify(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case int:
		return strconv.Itoa(v), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case decimal.Decimal:
		return v.String(), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
