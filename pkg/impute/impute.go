// pkg/impute/impute.go
//
// Group-wise statistical imputation: median fill and IQR outlier rejection
// for prices by product and brand, a blended central-tendency fill for
// generic numeric gaps, and shipping cost fill by city mode. Group statistics
// are recomputed fresh on the table state at call time, never cached.
package impute

import (
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/stats"
)

// ImputePrices repairs the price column grouped by product and brand:
// non-numeric prices become null, nulls are filled with the group median,
// rows whose price falls outside [Q1-k*IQR, Q3+k*IQR] for their group are
// dropped, and surviving prices are rounded to two decimals.
//
// Rows with a null product or brand belong to no group; they keep their
// price untouched and are exempt from outlier rejection.
func ImputePrices(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	var warnings []model.Warning

	coerced := 0
	for _, row := range t.Rows {
		if model.IsNull(row[model.ColPrice]) {
			row[model.ColPrice] = nil
			continue
		}
		f, err := model.ToFloat(row[model.ColPrice])
		if err != nil {
			row[model.ColPrice] = nil
			coerced++
			continue
		}
		row[model.ColPrice] = f
	}
	if coerced > 0 {
		warnings = append(warnings, model.Warning{
			Stage:  "impute_prices",
			Column: model.ColPrice,
			Reason: "non-numeric prices set to null",
			Rows:   coerced,
		})
	}

	keep := make([]bool, len(t.Rows))
	for i := range keep {
		keep[i] = true
	}

	filled, dropped := 0, 0
	for _, group := range stats.GroupRows(t, model.ColProduct, model.ColBrand) {
		values := stats.NonNullFloats(t, model.ColPrice, group.Indices)
		median, ok := stats.Median(values)
		if !ok {
			continue
		}
		for _, i := range group.Indices {
			if model.IsNull(t.Rows[i][model.ColPrice]) {
				t.Rows[i][model.ColPrice] = median
				filled++
			}
		}

		values = stats.NonNullFloats(t, model.ColPrice, group.Indices)
		q1, _ := stats.Quantile(0.25, values)
		q3, _ := stats.Quantile(0.75, values)
		iqr := q3 - q1
		lower := q1 - rules.IQRMultiplier*iqr
		upper := q3 + rules.IQRMultiplier*iqr
		for _, i := range group.Indices {
			price, err := model.ToFloat(t.Rows[i][model.ColPrice])
			if err != nil {
				continue
			}
			if price < lower || price > upper {
				keep[i] = false
				dropped++
			}
		}
	}

	if dropped > 0 {
		kept := make([]model.Row, 0, len(t.Rows)-dropped)
		for i, row := range t.Rows {
			if keep[i] {
				kept = append(kept, row)
			}
		}
		t.Rows = kept
		warnings = append(warnings, model.Warning{
			Stage:  "impute_prices",
			Column: model.ColPrice,
			Reason: "price outliers dropped",
			Rows:   dropped,
		})
	}

	for _, row := range t.Rows {
		if f, err := model.ToFloat(row[model.ColPrice]); err == nil {
			row[model.ColPrice] = model.Round2(f)
		}
	}

	if filled > 0 {
		warnings = append(warnings, model.Warning{
			Stage:  "impute_prices",
			Column: model.ColPrice,
			Reason: "null prices filled with group median",
			Rows:   filled,
		})
	}
	return warnings, nil
}

// FillNumericGaps fills remaining nulls in the configured numeric columns
// with the mean of the column's global mean and median, a blended
// central-tendency estimate applied uniformly to every gap.
func FillNumericGaps(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	var warnings []model.Warning
	for _, col := range rules.BlendFillColumns {
		if !t.HasColumn(col) {
			continue
		}
		values := stats.NonNullFloats(t, col, nil)
		mean, okMean := stats.Mean(values)
		median, okMedian := stats.Median(values)
		if !okMean || !okMedian {
			continue
		}
		blend := (mean + median) / 2

		filled := 0
		for _, row := range t.Rows {
			if model.IsNull(row[col]) {
				row[col] = blend
				filled++
			}
		}
		if filled > 0 {
			warnings = append(warnings, model.Warning{
				Stage:  "fill_numeric_gaps",
				Column: col,
				Reason: "nulls filled with blended mean/median",
				Rows:   filled,
			})
		}
	}
	return warnings, nil
}

// FillShippingByCity fills null shipping costs with the mode of the row's
// city, computed over the current table state, then rounds the column to two
// decimals. Rows in cities with no known shipping cost keep their null.
func FillShippingByCity(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	filled := 0
	for _, group := range stats.GroupRows(t, model.ColCity) {
		values := stats.NonNullFloats(t, model.ColShipping, group.Indices)
		mode, ok := stats.ModeFloat(values)
		if !ok {
			continue
		}
		for _, i := range group.Indices {
			if model.IsNull(t.Rows[i][model.ColShipping]) {
				t.Rows[i][model.ColShipping] = mode
				filled++
			}
		}
	}

	for _, row := range t.Rows {
		if f, err := model.ToFloat(row[model.ColShipping]); err == nil {
			row[model.ColShipping] = model.Round2(f)
		}
	}

	if filled > 0 {
		return []model.Warning{{
			Stage:  "fill_shipping_by_city",
			Column: model.ColShipping,
			Reason: "null shipping costs filled with city mode",
			Rows:   filled,
		}}, nil
	}
	return nil, nil
}
