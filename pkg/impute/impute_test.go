// pkg/impute/impute_test.go
package impute

import (
	"testing"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

func newTable(columns []string, rows ...model.Row) *model.Table {
	t := model.NewTable(columns)
	t.Rows = rows
	return t
}

func priceRow(product, brand string, price any) model.Row {
	return model.Row{model.ColProduct: product, model.ColBrand: brand, model.ColPrice: price}
}

func TestImputePrices(t *testing.T) {
	rules := config.DefaultRules()
	tbl := newTable([]string{model.ColProduct, model.ColBrand, model.ColPrice},
		priceRow("Mouse", "Logitech", 10.0),
		priceRow("Mouse", "Logitech", 12.0),
		priceRow("Mouse", "Logitech", 11.0),
		priceRow("Mouse", "Logitech", nil),
		priceRow("Mouse", "Logitech", 1000.0),
	)

	warnings, err := ImputePrices(tbl, rules)
	if err != nil {
		t.Fatalf("ImputePrices returned error: %v", err)
	}

	// The null is filled with the group median (11), then 1000 falls outside
	// the interquartile band and its row is dropped.
	if tbl.Len() != 4 {
		t.Fatalf("expected 4 rows after outlier rejection, got %d", tbl.Len())
	}
	if got := tbl.Rows[3][model.ColPrice]; got != 11.0 {
		t.Errorf("null price not filled with group median, got %v", got)
	}
	for i, row := range tbl.Rows {
		price := row[model.ColPrice].(float64)
		if price < 8 || price > 14 {
			t.Errorf("row %d: surviving price %v outside expected band", i, price)
		}
	}

	var reasons []string
	for _, w := range warnings {
		reasons = append(reasons, w.Reason)
	}
	if len(warnings) != 2 {
		t.Errorf("expected fill and drop warnings, got %v", reasons)
	}
}

func TestImputePricesNullGroupKeyExempt(t *testing.T) {
	rules := config.DefaultRules()
	tbl := newTable([]string{model.ColProduct, model.ColBrand, model.ColPrice},
		priceRow("Mouse", "Logitech", 10.0),
		priceRow("Mouse", "Logitech", 11.0),
		priceRow("Mouse", "Logitech", 12.0),
		model.Row{model.ColProduct: nil, model.ColBrand: "Logitech", model.ColPrice: 99999.0},
	)

	if _, err := ImputePrices(tbl, rules); err != nil {
		t.Fatalf("ImputePrices returned error: %v", err)
	}
	if tbl.Len() != 4 {
		t.Fatalf("row outside any group must never be dropped, got %d rows", tbl.Len())
	}
	if got := tbl.Rows[3][model.ColPrice]; got != 99999.0 {
		t.Errorf("ungrouped price changed, got %v", got)
	}
}

func TestFillNumericGaps(t *testing.T) {
	rules := config.DefaultRules()
	tbl := newTable([]string{model.ColPrice},
		model.Row{model.ColPrice: 10.0},
		model.Row{model.ColPrice: 20.0},
		model.Row{model.ColPrice: 30.0},
		model.Row{model.ColPrice: nil},
	)

	warnings, err := FillNumericGaps(tbl, rules)
	if err != nil {
		t.Fatalf("FillNumericGaps returned error: %v", err)
	}
	// mean 20, median 15, blend 17.5
	if got := tbl.Rows[3][model.ColPrice]; got != 17.5 {
		t.Errorf("expected blended fill 17.5, got %v", got)
	}
	if len(warnings) != 1 || warnings[0].Rows != 1 {
		t.Errorf("expected one warning covering 1 row, got %+v", warnings)
	}
}

func TestFillShippingByCity(t *testing.T) {
	tbl := newTable([]string{model.ColCity, model.ColShipping},
		model.Row{model.ColCity: "São Paulo", model.ColShipping: 10.0},
		model.Row{model.ColCity: "São Paulo", model.ColShipping: 10.0},
		model.Row{model.ColCity: "São Paulo", model.ColShipping: nil},
		model.Row{model.ColCity: "Rio De Janeiro", model.ColShipping: nil},
		model.Row{model.ColCity: nil, model.ColShipping: nil},
	)

	warnings, err := FillShippingByCity(tbl, config.DefaultRules())
	if err != nil {
		t.Fatalf("FillShippingByCity returned error: %v", err)
	}
	if got := tbl.Rows[2][model.ColShipping]; got != 10.0 {
		t.Errorf("null shipping not filled with city mode, got %v", got)
	}
	if tbl.Rows[3][model.ColShipping] != nil {
		t.Errorf("city with no known shipping must keep its null")
	}
	if tbl.Rows[4][model.ColShipping] != nil {
		t.Errorf("row with null city belongs to no group")
	}
	if len(warnings) != 1 || warnings[0].Rows != 1 {
		t.Errorf("expected one warning covering 1 row, got %+v", warnings)
	}
}
