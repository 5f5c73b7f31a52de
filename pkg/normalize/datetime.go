// pkg/normalize/datetime.go
package normalize

import (
	"time"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// ParseDatetime parses the date column against the accepted layouts and the
// time column strictly against HH:MM:SS. Invalid values become null, never
// errors.
func ParseDatetime(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	var warnings []model.Warning

	if t.HasColumn(model.ColDate) {
		failed := 0
		for _, row := range t.Rows {
			s, ok := row[model.ColDate].(string)
			if !ok {
				continue
			}
			parsed, ok := parseDate(s, rules.DateLayouts)
			if !ok {
				row[model.ColDate] = nil
				failed++
				continue
			}
			row[model.ColDate] = parsed
		}
		t.Schema.Kinds[model.ColDate] = model.KindDate
		if failed > 0 {
			warnings = append(warnings, model.Warning{
				Stage:  "parse_datetime",
				Column: model.ColDate,
				Reason: "unparsable dates set to null",
				Rows:   failed,
			})
		}
	}

	if t.HasColumn(model.ColTime) {
		failed := 0
		for _, row := range t.Rows {
			s, ok := row[model.ColTime].(string)
			if !ok {
				continue
			}
			parsed, err := time.Parse("15:04:05", s)
			if err != nil {
				row[model.ColTime] = nil
				failed++
				continue
			}
			row[model.ColTime] = parsed.Format("15:04:05")
		}
		t.Schema.Kinds[model.ColTime] = model.KindClock
		if failed > 0 {
			warnings = append(warnings, model.Warning{
				Stage:  "parse_datetime",
				Column: model.ColTime,
				Reason: "values outside HH:MM:SS set to null",
				Rows:   failed,
			})
		}
	}

	return warnings, nil
}

func parseDate(s string, layouts []string) (time.Time, bool) {
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
