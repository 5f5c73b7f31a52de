// pkg/report/report.go
//
// ChangeReporter: a pure function of two table snapshots that renders a
// Markdown report of everything the pipeline changed. Neither input table is
// mutated. The report must be generated before output header upper-casing so
// the primary key is still addressable.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/stats"
)

// Options controls report sampling and identification.
type Options struct {
	PrimaryKey          string
	RemovedKeySample    int
	InconsistencySample int
	GeneratedAt         time.Time // zero value means time.Now()
	RunID               string
}

// Generate renders the change report comparing a before and after snapshot.
func Generate(before, after *model.Table, opts Options) string {
	if opts.PrimaryKey == "" {
		opts.PrimaryKey = model.ColPurchaseID
	}
	if opts.RemovedKeySample <= 0 {
		opts.RemovedKeySample = 10
	}
	if opts.InconsistencySample <= 0 {
		opts.InconsistencySample = 5
	}
	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	var b strings.Builder
	b.WriteString("# Relatório de Alterações nos Dados\n")
	fmt.Fprintf(&b, "**Data de geração:** %s\n\n", generatedAt.Format("02/01/2006 15:04"))

	b.WriteString(section("📊 Estatísticas Básicas", fmt.Sprintf(
		"- Registros antes: %d\n- Registros depois: %d", before.Len(), after.Len())))

	if before.HasColumn(opts.PrimaryKey) && after.HasColumn(opts.PrimaryKey) {
		b.WriteString(recordChanges(before, after, opts))
	}

	b.WriteString(section("✏️ Alterações nos Valores", ""))
	b.WriteString(nullChanges(before, after))

	if before.HasColumn(model.ColStatus) && after.HasColumn(model.ColStatus) &&
		before.HasColumn(opts.PrimaryKey) && after.HasColumn(opts.PrimaryKey) {
		b.WriteString(statusTransitions(before, after, opts.PrimaryKey))
	}

	b.WriteString(section("⚠️ Possíveis Inconsistências", ""))
	if after.HasColumn(model.ColProduct) && after.HasColumn(model.ColBrand) {
		b.WriteString(brandInconsistencies(after, opts))
	}

	b.WriteString("\n---\nRelatório gerado automaticamente")
	if opts.RunID != "" {
		fmt.Fprintf(&b, " - execução %s", opts.RunID)
	}
	b.WriteString("\n")
	return b.String()
}

// recordChanges reports the primary-key set difference between snapshots.
func recordChanges(before, after *model.Table, opts Options) string {
	beforeKeys := keySet(before, opts.PrimaryKey)
	afterKeys := keySet(after, opts.PrimaryKey)

	var added, removed []string
	for k := range afterKeys {
		if !beforeKeys[k] {
			added = append(added, k)
		}
	}
	for k := range beforeKeys {
		if !afterKeys[k] {
			removed = append(removed, k)
		}
	}
	sortKeys(added)
	sortKeys(removed)

	content := fmt.Sprintf("- Registros adicionados: %d\n- Registros removidos: %d", len(added), len(removed))
	if len(removed) > 0 {
		content += "\n\n#### 🗑️ IDs Removidos\n```\n"
		sample := removed
		if len(sample) > opts.RemovedKeySample {
			sample = sample[:opts.RemovedKeySample]
		}
		content += strings.Join(sample, "\n")
		if len(removed) > opts.RemovedKeySample {
			content += fmt.Sprintf("\n... e mais %d registros", len(removed)-opts.RemovedKeySample)
		}
		content += "\n```"
	}
	return section("📝 Mudanças nos Registros", content)
}

// nullChanges reports per-column null-count deltas (before minus after),
// descending, omitting zero deltas.
func nullChanges(before, after *model.Table) string {
	nullsBefore := before.NullCounts()
	nullsAfter := after.NullCounts()

	type delta struct {
		column string
		value  int
	}
	var deltas []delta
	for _, col := range before.Columns {
		d := nullsBefore[col] - nullsAfter[col]
		if d != 0 {
			deltas = append(deltas, delta{col, d})
		}
	}
	if len(deltas) == 0 {
		return "- Nenhuma mudança significativa em valores nulos\n"
	}
	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].value > deltas[j].value
	})

	rows := make([][]string, len(deltas))
	for i, d := range deltas {
		rows[i] = []string{d.column, strconv.Itoa(d.value)}
	}
	return section("🔄 Mudanças em Valores Nulos", table([]string{"Coluna", "Nulos removidos"}, rows))
}

// statusTransitions reports a histogram of (status before, status after)
// pairs that differ, joined by primary key. A duplicated key contributes one
// pair per before/after row combination, matching a relational join.
func statusTransitions(before, after *model.Table, primaryKey string) string {
	statusesByKey := make(map[string][]string)
	for _, row := range before.Rows {
		k := model.ToString(row[primaryKey])
		statusesByKey[k] = append(statusesByKey[k], model.ToString(row[model.ColStatus]))
	}

	type transition struct{ from, to string }
	counts := make(map[transition]int)
	for _, row := range after.Rows {
		k := model.ToString(row[primaryKey])
		to := model.ToString(row[model.ColStatus])
		for _, from := range statusesByKey[k] {
			if from != to {
				counts[transition{from, to}]++
			}
		}
	}
	if len(counts) == 0 {
		return "- ✅ Nenhuma alteração nos valores da coluna 'status' encontrada\n"
	}

	transitions := make([]transition, 0, len(counts))
	for tr := range counts {
		transitions = append(transitions, tr)
	}
	sort.Slice(transitions, func(i, j int) bool {
		if counts[transitions[i]] != counts[transitions[j]] {
			return counts[transitions[i]] > counts[transitions[j]]
		}
		if transitions[i].from != transitions[j].from {
			return transitions[i].from < transitions[j].from
		}
		return transitions[i].to < transitions[j].to
	})

	rows := make([][]string, len(transitions))
	for i, tr := range transitions {
		rows[i] = []string{tr.from, tr.to, strconv.Itoa(counts[tr])}
	}
	return section("🔄 Transformações na Coluna 'status'",
		table([]string{"Status Anterior", "Status Atual", "Registros"}, rows))
}

// brandInconsistencies samples rows whose brand is outside the mode set of
// brands observed for their product.
func brandInconsistencies(after *model.Table, opts Options) string {
	brandsByProduct := make(map[string][]string)
	for _, row := range after.Rows {
		product, ok := row[model.ColProduct].(string)
		if !ok {
			continue
		}
		if brand, ok := row[model.ColBrand].(string); ok {
			brandsByProduct[product] = append(brandsByProduct[product], brand)
		}
	}
	modes := make(map[string][]string, len(brandsByProduct))
	for product, brands := range brandsByProduct {
		modes[product] = stats.ModeStrings(brands)
	}

	var rows [][]string
	total := 0
	for _, row := range after.Rows {
		product, ok := row[model.ColProduct].(string)
		if !ok {
			continue
		}
		expected, found := modes[product]
		if !found {
			continue
		}
		brand := model.ToString(row[model.ColBrand])
		inconsistent := true
		for _, m := range expected {
			if brand == m {
				inconsistent = false
				break
			}
		}
		if !inconsistent {
			continue
		}
		total++
		if len(rows) < opts.InconsistencySample {
			rows = append(rows, []string{
				model.ToString(row[opts.PrimaryKey]),
				product,
				brand,
				strings.Join(expected, " / "),
			})
		}
	}
	if total == 0 {
		return ""
	}

	out := section("🏷️ Inconsistências produto-marca",
		table([]string{"ID", "Produto", "Marca", "Marca esperada"}, rows))
	if total > opts.InconsistencySample {
		out += fmt.Sprintf("\n*Mostrando %d de %d inconsistências...*\n", opts.InconsistencySample, total)
	}
	return out
}

func keySet(t *model.Table, col string) map[string]bool {
	keys := make(map[string]bool, len(t.Rows))
	for _, row := range t.Rows {
		keys[model.ToString(row[col])] = true
	}
	return keys
}

// sortKeys sorts key values numerically when both sides parse as numbers,
// lexicographically otherwise.
func sortKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.ParseFloat(keys[i], 64)
		b, errB := strconv.ParseFloat(keys[j], 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return keys[i] < keys[j]
	})
}

func section(title, content string) string {
	return fmt.Sprintf("### %s\n%s\n", title, content)
}

func table(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	separators := make([]string, len(headers))
	for i, h := range headers {
		separators[i] = strings.Repeat("-", len(h))
	}
	b.WriteString("| " + strings.Join(separators, " | ") + " |\n")
	for i, row := range rows {
		b.WriteString("| " + strings.Join(row, " | ") + " |")
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
