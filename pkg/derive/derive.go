// pkg/derive/derive.go
//
// Derived-field computation and final row policy: negative clamps, order
// totals, mandatory-field drops, default fills and duplicate removal.
package derive

import (
	"strings"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// ClampNegatives raises negative price, quantity and shipping values to zero.
// Runs before total computation so totals never see negative inputs.
func ClampNegatives(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	clamped := 0
	for _, col := range []string{model.ColPrice, model.ColQuantity, model.ColShipping} {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			f, err := model.ToFloat(row[col])
			if err != nil {
				continue
			}
			if f < 0 {
				row[col] = 0.0
				clamped++
			}
		}
	}
	if clamped > 0 {
		return []model.Warning{{
			Stage:  "clamp_negatives",
			Reason: "negative numeric values clamped to zero",
			Rows:   clamped,
		}}, nil
	}
	return nil, nil
}

// ComputeTotals recomputes total = price * quantity + shipping, rounded to
// two decimals. A null price, quantity or shipping propagates to a null
// total; a missing shipping column counts as zero.
func ComputeTotals(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	hasShipping := t.HasColumn(model.ColShipping)
	for _, row := range t.Rows {
		price, errP := model.ToFloat(row[model.ColPrice])
		qty, errQ := model.ToFloat(row[model.ColQuantity])
		if errP != nil || errQ != nil {
			row[model.ColTotal] = nil
			continue
		}
		shipping := 0.0
		if hasShipping {
			f, err := model.ToFloat(row[model.ColShipping])
			if err != nil {
				row[model.ColTotal] = nil
				continue
			}
			shipping = f
		}
		row[model.ColTotal] = model.Round2(price*qty + shipping)
	}
	if !t.HasColumn(model.ColTotal) {
		t.Columns = append(t.Columns, model.ColTotal)
	}
	t.Schema.Kinds[model.ColTotal] = model.KindNumeric
	return nil, nil
}

// DropNullSellers removes rows whose seller is null.
func DropNullSellers(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	return dropRows(t, "drop_null_sellers", "rows with null seller removed", func(row model.Row) bool {
		return model.IsNull(row[model.ColSeller])
	})
}

// DropMandatoryNulls removes rows missing any load-bearing numeric field:
// price, quantity or total.
func DropMandatoryNulls(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	return dropRows(t, "drop_mandatory_nulls", "rows missing price, quantity or total removed", func(row model.Row) bool {
		return model.IsNull(row[model.ColPrice]) ||
			model.IsNull(row[model.ColQuantity]) ||
			model.IsNull(row[model.ColTotal])
	})
}

// FillDefaults replaces remaining nulls in non-critical columns with fixed
// defaults: zero shipping, unknown status, placeholder CEP and payment.
func FillDefaults(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	defaults := []struct {
		col   string
		value any
	}{
		{model.ColShipping, 0.0},
		{model.ColStatus, rules.DefaultStatus},
		{model.ColPostalCode, rules.DefaultPostalCode},
		{model.ColPayment, rules.DefaultPayment},
	}

	filled := 0
	for _, d := range defaults {
		if !t.HasColumn(d.col) {
			continue
		}
		for _, row := range t.Rows {
			if model.IsNull(row[d.col]) {
				row[d.col] = d.value
				filled++
			}
		}
	}
	if filled > 0 {
		return []model.Warning{{
			Stage:  "fill_defaults",
			Reason: "residual nulls filled with defaults",
			Rows:   filled,
		}}, nil
	}
	return nil, nil
}

// DropDuplicates removes exact full-row duplicates, keeping the first
// occurrence.
func DropDuplicates(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	seen := make(map[string]bool, len(t.Rows))
	return dropRows(t, "drop_duplicates", "exact duplicate rows removed", func(row model.Row) bool {
		parts := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			if model.IsNull(row[col]) {
				parts[i] = "\x00"
				continue
			}
			parts[i] = model.ToString(row[col])
		}
		fingerprint := strings.Join(parts, "\x1f")
		if seen[fingerprint] {
			return true
		}
		seen[fingerprint] = true
		return false
	})
}

func dropRows(t *model.Table, stage, reason string, drop func(model.Row) bool) ([]model.Warning, error) {
	kept := t.Rows[:0]
	dropped := 0
	for _, row := range t.Rows {
		if drop(row) {
			dropped++
			continue
		}
		kept = append(kept, row)
	}
	t.Rows = kept
	if dropped > 0 {
		return []model.Warning{{
			Stage:  stage,
			Reason: reason,
			Rows:   dropped,
		}}, nil
	}
	return nil, nil
}
