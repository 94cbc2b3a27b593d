package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openreg/regval/pkg/engine"
	"github.com/openreg/regval/pkg/rules"
	"github.com/openreg/regval/pkg/vrr"
)

const validLEI = "5493000IBP32UQZ0KL24"

func validReturn() engine.Report {
	return engine.Report{
		ID:              "afr-2025-001",
		Type:            rules.ReportTypeAnnualFinancialReturn,
		InstitutionCode: "FR12345678",
		Sections: []engine.Section{
			{ID: "institution", Data: map[string]any{
				"lei":          validLEI,
				"contactEmail": "compliance@bank.example",
				"consolidated": "1",
			}},
			{ID: "balanceSheet", Data: map[string]any{
				"reportingDate":     "2025-06-30",
				"totalAssets":       "50000000.00",
				"totalLiabilities":  "38000000.00",
				"shareholderEquity": "12000000.00",
			}},
		},
	}
}

func testContext() *rules.Context {
	return &rules.Context{
		ReportType:      rules.ReportTypeAnnualFinancialReturn,
		ReportingPeriod: "2025-H1",
	}
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(rules.Builtin())
}

func TestValidateReport(t *testing.T) {
	eng := newEngine(t)

	t.Run("consistent report is valid and compliant", func(t *testing.T) {
		res := eng.ValidateReport(validReturn(), rules.ReportTypeAnnualFinancialReturn, testContext())

		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
		assert.Empty(t, res.Warnings)
		assert.Equal(t, engine.StatusCompliant, res.ComplianceStatus())

		// 3 common fields + 6 report-type fields, optional absences valid.
		assert.Equal(t, 9, res.Summary.TotalFields)
		assert.Equal(t, 9, res.Summary.ValidFields)
		assert.Zero(t, res.Summary.InvalidFields)
		assert.Greater(t, res.Metrics.FieldsPerSecond, 0.0)
	})

	t.Run("missing required field is critical", func(t *testing.T) {
		report := validReturn()
		delete(report.Sections[1].Data, "totalAssets")

		res := eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())

		assert.False(t, res.Valid)
		assert.Equal(t, engine.StatusNonCompliant, res.ComplianceStatus())

		var found *engine.DetailedError
		for i := range res.Errors {
			if res.Errors[i].Code == engine.CodeFieldRequired {
				found = &res.Errors[i]
			}
		}
		require.NotNil(t, found)
		assert.Equal(t, "balanceSheet.totalAssets", found.FieldPath)
		assert.Equal(t, rules.SeverityCritical, found.Severity)
		assert.Equal(t, 1, res.Summary.InvalidFields)
	})

	t.Run("conditional field is required once its dependency is reported", func(t *testing.T) {
		report := validReturn()
		report.Sections = append(report.Sections, engine.Section{
			ID:   "income",
			Data: map[string]any{"turnover": "9000000.00"},
		})

		res := eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())

		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, engine.CodeFieldRequired, res.Errors[0].Code)
		assert.Equal(t, "income.netIncome", res.Errors[0].FieldPath)

		report.Sections[2].Data["netIncome"] = "1200000.00"
		res = eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())
		assert.True(t, res.Valid)
	})

	t.Run("validator failure surfaces at high severity with the outcome code", func(t *testing.T) {
		report := validReturn()
		report.Sections[0].Data["contactEmail"] = "not-an-email"

		res := eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())

		assert.False(t, res.Valid)
		assert.Equal(t, engine.StatusWarning, res.ComplianceStatus())

		require.Len(t, res.Errors, 1)
		assert.Equal(t, vrr.CodeEmailFormat, res.Errors[0].Code)
		assert.Equal(t, rules.SeverityHigh, res.Errors[0].Severity)
		assert.Equal(t, "not-an-email", res.Errors[0].ActualValue)
		assert.NotEmpty(t, res.Errors[0].Suggestions)
	})

	t.Run("low severity business rules become warnings and never flip validity", func(t *testing.T) {
		report := validReturn()
		report.Sections[1].Data["totalAssets"] = "0.00"
		report.Sections[1].Data["totalLiabilities"] = "-100.00"
		report.Sections[1].Data["shareholderEquity"] = "100.00"

		res := eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())

		// Zero assets: LOW, routed to warnings.
		require.Len(t, res.Warnings, 1)
		assert.Equal(t, "BR-AFR-001", res.Warnings[0].RuleID)

		// Negative liabilities: HIGH, routed to errors.
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "BR-AFR-002", res.Errors[0].RuleID)
		assert.Equal(t, rules.SeverityHigh, res.Errors[0].Severity)

		// Both fields passed type validation and count as valid.
		assert.Equal(t, 9, res.Summary.ValidFields)
	})

	t.Run("balance sheet identity cross-field rule", func(t *testing.T) {
		report := validReturn()
		report.Sections[1].Data["shareholderEquity"] = "15000000.00"

		res := eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())

		assert.False(t, res.Valid)
		assert.Equal(t, engine.StatusNonCompliant, res.ComplianceStatus())

		require.Len(t, res.Errors, 1)
		cross := res.Errors[0]
		assert.Equal(t, "CFR-AFR-001", cross.RuleID)
		assert.Equal(t, rules.SeverityCritical, cross.Severity)
		assert.Contains(t, cross.RelatedFields, "balanceSheet.totalAssets")
		assert.Contains(t, cross.RelatedFields, "balanceSheet.totalLiabilities")
		assert.Contains(t, cross.RelatedFields, "balanceSheet.shareholderEquity")
	})

	t.Run("identical inputs produce structurally identical results", func(t *testing.T) {
		report := validReturn()
		report.Sections[1].Data["shareholderEquity"] = "15000000.00"

		a := eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())
		b := eng.ValidateReport(report, rules.ReportTypeAnnualFinancialReturn, testContext())

		assert.Equal(t, a.Valid, b.Valid)
		assert.Equal(t, a.Errors, b.Errors)
		assert.Equal(t, a.Warnings, b.Warnings)
		assert.Equal(t, a.Summary, b.Summary)
	})

	t.Run("unknown report type validates zero fields", func(t *testing.T) {
		res := eng.ValidateReport(validReturn(), "unregistered-type", testContext())

		assert.True(t, res.Valid)
		assert.Zero(t, res.Summary.TotalFields)
		assert.Zero(t, res.Metrics.FieldsPerSecond)
	})
}

func TestValidateField(t *testing.T) {
	eng := newEngine(t)

	t.Run("delegates to the registered validator", func(t *testing.T) {
		out := eng.ValidateField("balanceSheet.totalAssets", "1234.56", rules.ReportTypeAnnualFinancialReturn, testContext())
		assert.True(t, out.Valid)
		assert.Equal(t, "1234.56", out.Normalized)

		out = eng.ValidateField("balanceSheet.totalAssets", "not a number", rules.ReportTypeAnnualFinancialReturn, testContext())
		assert.False(t, out.Valid)
		assert.Equal(t, vrr.CodeNumberPattern, out.Code)
	})

	t.Run("unknown paths are a normal non-fatal outcome", func(t *testing.T) {
		out := eng.ValidateField("no.such.path", "x", rules.ReportTypeAnnualFinancialReturn, testContext())
		assert.False(t, out.Valid)
		assert.Equal(t, engine.CodeNoRuleFound, out.Code)
	})
}

func TestRules(t *testing.T) {
	eng := newEngine(t)

	frs := eng.Rules(rules.ReportTypeAnnualFinancialReturn)
	assert.Len(t, frs, 9)

	assert.Empty(t, eng.Rules("unregistered-type"))
}
