// pkg/normalize/money.go
package normalize

import (
	"strconv"
	"strings"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// ParseMonetary normalizes the price column: currency symbols and grouping
// characters are stripped, the comma becomes the decimal separator, and the
// result is parsed and rounded to two decimals. Unparsable cells become null.
func ParseMonetary(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	failed := 0
	for _, row := range t.Rows {
		switch v := row[model.ColPrice].(type) {
		case string:
			f, ok := parseMonetaryString(v)
			if !ok {
				row[model.ColPrice] = nil
				failed++
				continue
			}
			row[model.ColPrice] = model.Round2(f)
		case float64:
			row[model.ColPrice] = model.Round2(v)
		}
	}
	if failed > 0 {
		return []model.Warning{{
			Stage:  "parse_monetary",
			Column: model.ColPrice,
			Reason: "unparsable monetary values set to null",
			Rows:   failed,
		}}, nil
	}
	return nil, nil
}

// parseMonetaryString parses strings like "R$ 1.234,56" into 1234.56.
// When a comma is present it is the decimal separator and any periods are
// grouping characters; otherwise the period is the decimal separator.
func parseMonetaryString(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}
	if strings.Contains(cleaned, ",") {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatPostalCode strips non-digits from the CEP column, left-pads to eight
// digits and reformats as NNNNN-NNN. Non-string cells pass through.
func FormatPostalCode(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	for _, row := range t.Rows {
		s, ok := row[model.ColPostalCode].(string)
		if !ok {
			continue
		}
		var digits strings.Builder
		for _, r := range s {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		d := digits.String()
		for len(d) < 8 {
			d = "0" + d
		}
		row[model.ColPostalCode] = d[:5] + "-" + d[5:]
	}
	return nil, nil
}
