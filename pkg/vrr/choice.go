package vrr

import "strings"

// Choice is the normalized value of an enumerated yes/no field: the regulator
// code together with its human-readable label.
type Choice struct {
	Code  string
	Label string
}

var (
	yesNoLabels   = map[string]string{"0": "No", "1": "Yes"}
	yesNoNALabels = map[string]string{"0": "No", "1": "Yes", "2": "Not Applicable"}
)

// YesNo returns a validator for the two-value enumeration 0=No, 1=Yes.
func YesNo() Validator {
	return choiceValidator(yesNoLabels, CodeYesNoInvalid, "0 (No) or 1 (Yes)")
}

// YesNoNA returns a validator for the three-value enumeration 0=No, 1=Yes,
// 2=Not Applicable.
func YesNoNA() Validator {
	return choiceValidator(yesNoNALabels, CodeYesNoNAInvalid, "0 (No), 1 (Yes) or 2 (Not Applicable)")
}

func choiceValidator(labels map[string]string, code, allowed string) Validator {
	return func(raw any) Outcome {
		s, ok := stringify(raw)
		if !ok || raw == nil {
			return invalid(code, "a value of %s is required", allowed)
		}
		s = strings.TrimSpace(s)
		label, ok := labels[s]
		if !ok {
			return invalid(code, "value %q is not one of %s", s, allowed)
		}
		return valid(Choice{Code: s, Label: label})
	}
}

// Boolean returns a validator accepting case-insensitive true/false/1/0.
// The normalized value is the parsed bool.
func Boolean() Validator {
	return func(raw any) Outcome {
		if b, ok := raw.(bool); ok {
			return valid(b)
		}
		s, ok := stringify(raw)
		if !ok || raw == nil {
			return invalid(CodeBooleanInvalid, "a boolean value is required")
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return valid(true)
		case "false", "0":
			return valid(false)
		default:
			return invalid(CodeBooleanInvalid, "value %q is not a recognized boolean", s)
		}
	}
}
