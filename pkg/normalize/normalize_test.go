// pkg/normalize/normalize_test.go
package normalize

import (
	"testing"
	"time"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

func newTable(columns []string, rows ...model.Row) *model.Table {
	t := model.NewTable(columns)
	t.Rows = rows
	return t
}

func TestTrimWhitespace(t *testing.T) {
	tbl := newTable([]string{model.ColProduct, model.ColPrice},
		model.Row{model.ColProduct: "  Notebook Dell ", model.ColPrice: 10.5},
		model.Row{model.ColProduct: "Mouse", model.ColPrice: nil},
	)

	if _, err := TrimWhitespace(tbl, config.DefaultRules()); err != nil {
		t.Fatalf("TrimWhitespace returned error: %v", err)
	}
	if got := tbl.Rows[0][model.ColProduct]; got != "Notebook Dell" {
		t.Errorf("expected trimmed product, got %q", got)
	}
	if got := tbl.Rows[0][model.ColPrice]; got != 10.5 {
		t.Errorf("non-string cell changed: %v", got)
	}

	// Running twice must not change anything further
	if _, err := TrimWhitespace(tbl, config.DefaultRules()); err != nil {
		t.Fatalf("second TrimWhitespace returned error: %v", err)
	}
	if got := tbl.Rows[0][model.ColProduct]; got != "Notebook Dell" {
		t.Errorf("trim is not idempotent, got %q", got)
	}
}

func TestNormalizeStatus(t *testing.T) {
	rules := config.DefaultRules()
	tbl := newTable([]string{model.ColStatus},
		model.Row{model.ColStatus: "Pgto Confirmado"},
		model.Row{model.ColStatus: "aguardando pagamento"},
		model.Row{model.ColStatus: "Cancelado"},
		model.Row{model.ColStatus: nil},
	)

	warnings, err := NormalizeStatus(tbl, rules)
	if err != nil {
		t.Fatalf("NormalizeStatus returned error: %v", err)
	}
	if got := tbl.Rows[0][model.ColStatus]; got != "Pagamento Confirmado" {
		t.Errorf("synonym not mapped, got %q", got)
	}
	if got := tbl.Rows[1][model.ColStatus]; got != "Aguardando Pagamento" {
		t.Errorf("lowercase synonym not mapped, got %q", got)
	}
	if got := tbl.Rows[2][model.ColStatus]; got != "Cancelado" {
		t.Errorf("unmapped status must pass through, got %q", got)
	}
	if tbl.Rows[3][model.ColStatus] != nil {
		t.Errorf("null status must stay null")
	}
	if len(warnings) != 1 || warnings[0].Rows != 2 {
		t.Errorf("expected one warning covering 2 rows, got %+v", warnings)
	}
}

func TestStripSpecialChars(t *testing.T) {
	rules := config.DefaultRules()
	tbl := newTable([]string{model.ColProduct},
		model.Row{model.ColProduct: "Notebook@Dell#2024!"},
		model.Row{model.ColProduct: "Café com_leite"},
		model.Row{model.ColProduct: nil},
	)

	if _, err := StripSpecialChars(tbl, rules); err != nil {
		t.Fatalf("StripSpecialChars returned error: %v", err)
	}
	if got := tbl.Rows[0][model.ColProduct]; got != "NotebookDell2024" {
		t.Errorf("special chars not stripped, got %q", got)
	}
	if got := tbl.Rows[1][model.ColProduct]; got != "Café com_leite" {
		t.Errorf("accents, spaces and underscores must survive, got %q", got)
	}
	if tbl.Rows[2][model.ColProduct] != nil {
		t.Errorf("null cell must stay null")
	}
}

func TestParseMonetary(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{"R$ 1.234,56", 1234.56},
		{"1234,56", 1234.56},
		{"10.5", 10.5},
		{"R$ 99", 99.0},
		{3.14159, 3.14},
		{"abc", nil},
		{nil, nil},
	}
	for _, tc := range cases {
		tbl := newTable([]string{model.ColPrice}, model.Row{model.ColPrice: tc.in})
		if _, err := ParseMonetary(tbl, config.DefaultRules()); err != nil {
			t.Fatalf("ParseMonetary(%v) returned error: %v", tc.in, err)
		}
		if got := tbl.Rows[0][model.ColPrice]; got != tc.want {
			t.Errorf("ParseMonetary(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseMonetaryWarnsOnFailures(t *testing.T) {
	tbl := newTable([]string{model.ColPrice},
		model.Row{model.ColPrice: "abc"},
		model.Row{model.ColPrice: "R$ 10,00"},
	)
	warnings, err := ParseMonetary(tbl, config.DefaultRules())
	if err != nil {
		t.Fatalf("ParseMonetary returned error: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Rows != 1 {
		t.Errorf("expected one warning covering 1 row, got %+v", warnings)
	}
}

func TestFormatPostalCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01310100", "01310-100"},
		{"01310-100", "01310-100"},
		{"13.010-100", "13010-100"},
		{"123", "00000-123"},
		{"", "00000-000"},
	}
	for _, tc := range cases {
		tbl := newTable([]string{model.ColPostalCode}, model.Row{model.ColPostalCode: tc.in})
		if _, err := FormatPostalCode(tbl, config.DefaultRules()); err != nil {
			t.Fatalf("FormatPostalCode(%q) returned error: %v", tc.in, err)
		}
		if got := tbl.Rows[0][model.ColPostalCode]; got != tc.want {
			t.Errorf("FormatPostalCode(%q) = %v, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTitleCaseText(t *testing.T) {
	rules := config.DefaultRules()
	tbl := newTable([]string{model.ColCustomer, model.ColCity},
		model.Row{model.ColCustomer: "joão da silva", model.ColCity: "SÃO PAULO "},
	)

	if _, err := TitleCaseText(tbl, rules); err != nil {
		t.Fatalf("TitleCaseText returned error: %v", err)
	}
	if got := tbl.Rows[0][model.ColCustomer]; got != "João Da Silva" {
		t.Errorf("customer not title-cased, got %q", got)
	}
	if got := tbl.Rows[0][model.ColCity]; got != "São Paulo" {
		t.Errorf("city not title-cased and trimmed, got %q", got)
	}
}

func TestParseDatetime(t *testing.T) {
	rules := config.DefaultRules()
	tbl := newTable([]string{model.ColDate, model.ColTime},
		model.Row{model.ColDate: "2024-03-01", model.ColTime: "09:30:00"},
		model.Row{model.ColDate: "31/12/2023", model.ColTime: "9:30"},
		model.Row{model.ColDate: "not a date", model.ColTime: nil},
	)

	warnings, err := ParseDatetime(tbl, rules)
	if err != nil {
		t.Fatalf("ParseDatetime returned error: %v", err)
	}

	d0, ok := tbl.Rows[0][model.ColDate].(time.Time)
	if !ok || d0.Format("2006-01-02") != "2024-03-01" {
		t.Errorf("ISO date not parsed, got %v", tbl.Rows[0][model.ColDate])
	}
	d1, ok := tbl.Rows[1][model.ColDate].(time.Time)
	if !ok || d1.Format("2006-01-02") != "2023-12-31" {
		t.Errorf("Brazilian date not parsed, got %v", tbl.Rows[1][model.ColDate])
	}
	if tbl.Rows[2][model.ColDate] != nil {
		t.Errorf("invalid date must become null, got %v", tbl.Rows[2][model.ColDate])
	}

	if got := tbl.Rows[0][model.ColTime]; got != "09:30:00" {
		t.Errorf("valid time changed, got %v", got)
	}
	if tbl.Rows[1][model.ColTime] != nil {
		t.Errorf("partial time must become null, got %v", tbl.Rows[1][model.ColTime])
	}

	if tbl.Schema.Kinds[model.ColDate] != model.KindDate {
		t.Errorf("date column kind not recorded")
	}
	if tbl.Schema.Kinds[model.ColTime] != model.KindClock {
		t.Errorf("time column kind not recorded")
	}
	if len(warnings) != 2 {
		t.Errorf("expected a warning per column, got %+v", warnings)
	}
}
