package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openreg/regval/pkg/engine"
	"github.com/openreg/regval/pkg/rules"
)

// Report fingerprints the identity-relevant content of a report together
// with the validation context: report id, type, institution code, every
// section id with its canonical JSON data, and the context's report type
// and reporting period.
func Report(r engine.Report, ctx *rules.Context) string {
	components := []string{r.ID, r.Type, r.InstitutionCode}
	for _, s := range r.Sections {
		components = append(components, s.ID+"="+canonical(s.Data))
	}
	if ctx != nil {
		components = append(components, ctx.ReportType, ctx.ReportingPeriod)
	}
	return digest(components)
}

// Field fingerprints one (field path, value, report type) triple for the
// field-level cache.
func Field(path string, value any, reportType string) string {
	return digest([]string{path, canonical(value), reportType})
}

func digest(components []string) string {
	hash := sha256.Sum256([]byte(strings.Join(components, "|")))
	return hex.EncodeToString(hash[:16])
}

// canonical serializes a value deterministically: encoding/json emits map
// keys in sorted order. Unserializable values fall back to their Go
// representation rather than failing the fingerprint.
func canonical(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(b)
}
