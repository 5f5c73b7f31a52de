// pkg/normalize/coerce.go
package normalize

import (
	"sort"
	"strings"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// CoerceTypes enforces the declared column kinds: numeric columns are parsed
// to float64 (failure -> null), text columns become trimmed strings, and
// categorical columns get their bounded domain recorded in the schema.
func CoerceTypes(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	var warnings []model.Warning

	for _, col := range rules.NumericColumns {
		if !t.HasColumn(col) {
			continue
		}
		failed := 0
		for _, row := range t.Rows {
			if model.IsNull(row[col]) {
				row[col] = nil
				continue
			}
			f, err := model.ToFloat(row[col])
			if err != nil {
				row[col] = nil
				failed++
				continue
			}
			row[col] = f
		}
		t.Schema.Kinds[col] = model.KindNumeric
		if failed > 0 {
			warnings = append(warnings, model.Warning{
				Stage:  "coerce_types",
				Column: col,
				Reason: "non-numeric values set to null",
				Rows:   failed,
			})
		}
	}

	for _, col := range rules.TextColumns {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			if model.IsNull(row[col]) {
				continue
			}
			row[col] = strings.TrimSpace(model.ToString(row[col]))
		}
		if t.Schema.Kinds[col] == model.KindClock {
			continue
		}
		t.Schema.Kinds[col] = model.KindString
	}

	for _, col := range rules.CategoricalColumns {
		if !t.HasColumn(col) {
			continue
		}
		domain := make(map[string]bool)
		for _, row := range t.Rows {
			if s, ok := row[col].(string); ok {
				domain[s] = true
			}
		}
		values := make([]string, 0, len(domain))
		for v := range domain {
			values = append(values, v)
		}
		sort.Strings(values)
		t.Schema.Kinds[col] = model.KindCategorical
		t.Schema.Domains[col] = values
	}

	return warnings, nil
}
