package rules

import (
	"github.com/shopspring/decimal"

	"github.com/openreg/regval/pkg/vrr"
)

// Report type identifiers for the builtin rule sets.
const (
	ReportTypeAnnualFinancialReturn = "annual-financial-return"
	ReportTypeCapitalAdequacy       = "capital-adequacy"
)

// balanceTolerance is the maximum absolute difference allowed by the
// accounting-identity cross-field rules.
var balanceTolerance = decimal.RequireFromString("0.01")

// commonFieldRules returns the rules layered onto every report type:
// institution identity and contact details. A fresh slice is returned so
// registries never share backing arrays.
func commonFieldRules() []FieldRule {
	return []FieldRule{
		{
			FieldPath: "institution.lei",
			FieldName: "Legal Entity Identifier",
			DataType:  vrr.DataTypeLEI,
			Required:  true,
			Validator: vrr.LEI(),
		},
		{
			FieldPath: "institution.contactEmail",
			FieldName: "Regulatory Contact Email",
			DataType:  vrr.DataTypeEmail,
			Required:  true,
			Validator: vrr.Email(),
		},
		{
			FieldPath: "institution.consolidated",
			FieldName: "Consolidated Reporting Flag",
			DataType:  vrr.DataTypeYesNo,
			Required:  false,
			Validator: vrr.YesNo(),
		},
	}
}

// Builtin returns the registry of builtin report types. It panics on a
// malformed builtin declaration, which is a programming defect rather than
// a data error.
func Builtin() *Registry {
	afr, err := NewRuleSet(ReportTypeAnnualFinancialReturn, annualFinancialReturnFields(), annualFinancialReturnCrossRules())
	if err != nil {
		panic(err)
	}
	ca, err := NewRuleSet(ReportTypeCapitalAdequacy, capitalAdequacyFields(), capitalAdequacyCrossRules())
	if err != nil {
		panic(err)
	}

	reg, err := NewRegistry(afr, ca)
	if err != nil {
		panic(err)
	}
	return reg
}

func annualFinancialReturnFields() []FieldRule {
	return []FieldRule{
		{
			FieldPath: "balanceSheet.reportingDate",
			FieldName: "Reporting Date",
			DataType:  vrr.DataTypeDate,
			Required:  true,
			Validator: vrr.Date(true),
		},
		{
			FieldPath: "balanceSheet.totalAssets",
			FieldName: "Total Assets",
			DataType:  vrr.DataTypeNumber,
			Required:  true,
			Validator: vrr.Number(16, 2),
			BusinessRules: []BusinessRule{
				{
					ID:       "BR-AFR-001",
					Name:     "total assets reported",
					Severity: SeverityLow,
					Message:  "total assets of zero are unusual for an active institution",
					Check: func(value any, _ *Context) bool {
						d, ok := toDecimal(value)
						return !ok || !d.IsZero()
					},
				},
			},
		},
		{
			FieldPath: "balanceSheet.totalLiabilities",
			FieldName: "Total Liabilities",
			DataType:  vrr.DataTypeNumber,
			Required:  true,
			Validator: vrr.Number(16, 2),
			BusinessRules: []BusinessRule{
				{
					ID:       "BR-AFR-002",
					Name:     "liabilities non-negative",
					Severity: SeverityHigh,
					Message:  "total liabilities must not be negative",
					Check: func(value any, _ *Context) bool {
						d, ok := toDecimal(value)
						return !ok || !d.IsNegative()
					},
				},
			},
		},
		{
			FieldPath: "balanceSheet.shareholderEquity",
			FieldName: "Shareholder Equity",
			DataType:  vrr.DataTypeNumber,
			Required:  true,
			Validator: vrr.Number(16, 2),
		},
		{
			FieldPath: "income.turnover",
			FieldName: "Annual Turnover",
			DataType:  vrr.DataTypeNumber,
			Required:  false,
			Validator: vrr.Number(16, 2),
		},
		{
			FieldPath:    "income.netIncome",
			FieldName:    "Net Income",
			DataType:     vrr.DataTypeNumber,
			Required:     false,
			Conditional:  true,
			Dependencies: []string{"income.turnover"},
			Validator:    vrr.Number(16, 2),
		},
	}
}

func annualFinancialReturnCrossRules() []CrossFieldRule {
	return []CrossFieldRule{
		{
			ID:       "CFR-AFR-001",
			Name:     "balance sheet identity",
			Severity: SeverityCritical,
			Fields: []string{
				"balanceSheet.totalAssets",
				"balanceSheet.totalLiabilities",
				"balanceSheet.shareholderEquity",
			},
			Message: "total assets must equal total liabilities plus shareholder equity",
			Check: func(values map[string]any, _ *Context) bool {
				assets, ok1 := toDecimal(values["balanceSheet.totalAssets"])
				liabilities, ok2 := toDecimal(values["balanceSheet.totalLiabilities"])
				equity, ok3 := toDecimal(values["balanceSheet.shareholderEquity"])
				if !ok1 || !ok2 || !ok3 {
					// Missing or malformed operands are reported by the
					// field rules; the identity only judges complete input.
					return true
				}
				diff := assets.Sub(liabilities.Add(equity)).Abs()
				return diff.LessThanOrEqual(balanceTolerance)
			},
		},
	}
}

func capitalAdequacyFields() []FieldRule {
	return []FieldRule{
		{
			FieldPath: "capital.tier1Ratio",
			FieldName: "Tier 1 Capital Ratio",
			DataType:  vrr.DataTypePercentage,
			Required:  true,
			Validator: vrr.Percentage(0, 100, 2),
			BusinessRules: []BusinessRule{
				{
					ID:       "BR-CAP-001",
					Name:     "tier 1 ratio above regulatory minimum",
					Severity: SeverityHigh,
					Message:  "tier 1 capital ratio is below the 6% regulatory minimum",
					Check: func(value any, _ *Context) bool {
						d, ok := toDecimal(value)
						return !ok || d.GreaterThanOrEqual(decimal.NewFromInt(6))
					},
				},
			},
		},
		{
			FieldPath: "capital.totalCapitalRatio",
			FieldName: "Total Capital Ratio",
			DataType:  vrr.DataTypePercentage,
			Required:  true,
			Validator: vrr.Percentage(0, 100, 2),
		},
		{
			FieldPath: "capital.tier1Capital",
			FieldName: "Tier 1 Capital",
			DataType:  vrr.DataTypeNumber,
			Required:  true,
			Validator: vrr.Number(16, 2),
		},
		{
			FieldPath: "capital.tier2Capital",
			FieldName: "Tier 2 Capital",
			DataType:  vrr.DataTypeNumber,
			Required:  false,
			Validator: vrr.Number(16, 2),
		},
		{
			FieldPath: "capital.ownFunds",
			FieldName: "Total Own Funds",
			DataType:  vrr.DataTypeNumber,
			Required:  true,
			Validator: vrr.Number(16, 2),
		},
	}
}

func capitalAdequacyCrossRules() []CrossFieldRule {
	return []CrossFieldRule{
		{
			ID:       "CFR-CAP-001",
			Name:     "own funds additivity",
			Severity: SeverityCritical,
			Fields:   []string{"capital.ownFunds", "capital.tier1Capital", "capital.tier2Capital"},
			Message:  "total own funds must equal tier 1 plus tier 2 capital",
			Check: func(values map[string]any, _ *Context) bool {
				own, ok1 := toDecimal(values["capital.ownFunds"])
				tier1, ok2 := toDecimal(values["capital.tier1Capital"])
				if !ok1 || !ok2 {
					return true
				}
				tier2, ok := toDecimal(values["capital.tier2Capital"])
				if !ok {
					tier2 = decimal.Zero
				}
				return own.Sub(tier1.Add(tier2)).Abs().LessThanOrEqual(balanceTolerance)
			},
		},
		{
			ID:       "CFR-CAP-002",
			Name:     "total ratio covers tier 1 ratio",
			Severity: SeverityHigh,
			Fields:   []string{"capital.totalCapitalRatio", "capital.tier1Ratio"},
			Message:  "total capital ratio cannot be below the tier 1 ratio",
			Check: func(values map[string]any, _ *Context) bool {
				total, ok1 := toDecimal(values["capital.totalCapitalRatio"])
				tier1, ok2 := toDecimal(values["capital.tier1Ratio"])
				if !ok1 || !ok2 {
					return true
				}
				return total.GreaterThanOrEqual(tier1)
			},
		},
	}
}

// toDecimal converts the raw and normalized value representations seen in
// report data to an exact decimal. Binary floats are converted through
// their shortest decimal representation.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		return n, true
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	default:
		return decimal.Decimal{}, false
	}
}
