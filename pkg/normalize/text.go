// pkg/normalize/text.go
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// TrimWhitespace strips leading and trailing whitespace from every string
// cell in every column. Non-string cells pass through unchanged. Idempotent.
func TrimWhitespace(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if s, ok := row[col].(string); ok {
				row[col] = strings.TrimSpace(s)
			}
		}
	}
	return nil, nil
}

// NormalizeStatus maps each status string through the synonym table after
// trimming. Values outside the table pass through unchanged, never nulled.
func NormalizeStatus(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	mapped := 0
	for _, row := range t.Rows {
		s, ok := row[model.ColStatus].(string)
		if !ok {
			continue
		}
		if canonical, found := rules.StatusMap[strings.TrimSpace(s)]; found {
			if canonical != s {
				mapped++
			}
			row[model.ColStatus] = canonical
		}
	}
	if mapped > 0 {
		return []model.Warning{{
			Stage:  "normalize_status",
			Column: model.ColStatus,
			Reason: "synonyms mapped to canonical status",
			Rows:   mapped,
		}}, nil
	}
	return nil, nil
}

// StripSpecialChars removes every character that is not a letter, digit,
// underscore or whitespace from the configured columns. Skips non-strings.
func StripSpecialChars(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	for _, col := range rules.SpecialCharColumns {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			s, ok := row[col].(string)
			if !ok {
				continue
			}
			row[col] = strings.Map(func(r rune) rune {
				if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
					return r
				}
				return -1
			}, s)
		}
	}
	return nil, nil
}

// TitleCaseText converts the configured text columns to title case and trims
// them. Columns absent from the table are skipped.
func TitleCaseText(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	caser := cases.Title(language.BrazilianPortuguese)
	for _, col := range rules.TitleCaseColumns {
		if !t.HasColumn(col) {
			continue
		}
		for _, row := range t.Rows {
			if s, ok := row[col].(string); ok {
				row[col] = strings.TrimSpace(caser.String(s))
			}
		}
	}
	return nil, nil
}
