// pkg/reconcile/reconcile.go
//
// Entity reconciliation: product name deduplication by fuzzy similarity,
// brand repair by per-product majority vote, and seller fill by purchase
// group. These transforms consolidate equivalent-but-differently-written
// values into a single canonical representative.
package reconcile

import (
	"github.com/agnivade/levenshtein"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/config"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
	"github.com/LucasFSouza552/MegaSuperVendas/pkg/stats"
)

// Ratio returns a 0-100 similarity score between two strings based on
// normalized edit distance. 100 means identical.
func Ratio(a, b string) int {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(100*(float64(longest)-float64(dist))/float64(longest) + 0.5)
}

// DedupeProducts clusters product name variants and rewrites each one to the
// cluster's most frequent spelling.
//
// The grouping is greedy and seed-ordered, not transitive-closed: distinct
// values are enumerated in first-observed row order, each unvisited value
// seeds a similarity set, and a later seed may remap members of an earlier
// set. This mirrors the documented canonical algorithm; do not replace it
// with union-find clustering.
func DedupeProducts(t *model.Table, rules *config.Rules) ([]model.Warning, error) {
	distinct := t.DistinctNonNull(model.ColProduct)
	counts := t.ValueCounts(model.ColProduct)

	mapping := make(map[string]string, len(distinct))
	for _, seed := range distinct {
		if _, mapped := mapping[seed]; mapped {
			continue
		}
		var similar []string
		for _, other := range distinct {
			if Ratio(seed, other) >= rules.SimilarityThreshold {
				similar = append(similar, other)
			}
		}
		canonical := mostFrequent(similar, counts)
		for _, member := range similar {
			mapping[member] = canonical
		}
	}

	rewritten, nulled := 0, 0
	for _, row := range t.Rows {
		s, ok := row[model.ColProduct].(string)
		if !ok {
			continue
		}
		canonical, found := mapping[s]
		if !found {
			row[model.ColProduct] = nil
			nulled++
			continue
		}
		if canonical != s {
			rewritten++
		}
		row[model.ColProduct] = canonical
	}

	var warnings []model.Warning
	if rewritten > 0 {
		warnings = append(warnings, model.Warning{
			Stage:  "dedupe_products",
			Column: model.ColProduct,
			Reason: "product names rewritten to canonical spelling",
			Rows:   rewritten,
		})
	}
	if nulled > 0 {
		warnings = append(warnings, model.Warning{
			Stage:  "dedupe_products",
			Column: model.ColProduct,
			Reason: "unmatched product names set to null",
			Rows:   nulled,
		})
	}
	return warnings, nil
}

// mostFrequent picks the member with the highest occurrence count across the
// full row set; ties break lexicographically.
func mostFrequent(members []string, counts map[string]int) string {
	var best string
	bestCount := -1
	for _, m := range members {
		n := counts[m]
		if n > bestCount || (n == bestCount && m < best) {
			best, bestCount = m, n
		}
	}
	return best
}

// ReconcileBrands overwrites a row's brand with the most frequent brand seen
// for its product when the two disagree and neither is null. Products without
// any non-null brand are left unchanged.
func ReconcileBrands(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	brandsByProduct := make(map[string][]string)
	for _, row := range t.Rows {
		product, ok := row[model.ColProduct].(string)
		if !ok {
			continue
		}
		brand, ok := row[model.ColBrand].(string)
		if !ok {
			continue
		}
		brandsByProduct[product] = append(brandsByProduct[product], brand)
	}

	expected := make(map[string]string, len(brandsByProduct))
	for product, brands := range brandsByProduct {
		if mode, ok := stats.ModeString(brands); ok {
			expected[product] = mode
		}
	}

	rewritten := 0
	for _, row := range t.Rows {
		product, ok := row[model.ColProduct].(string)
		if !ok {
			continue
		}
		brand, ok := row[model.ColBrand].(string)
		if !ok {
			continue
		}
		want, found := expected[product]
		if !found || brand == want {
			continue
		}
		row[model.ColBrand] = want
		rewritten++
	}

	if rewritten > 0 {
		return []model.Warning{{
			Stage:  "reconcile_brands",
			Column: model.ColBrand,
			Reason: "brands rewritten to product majority",
			Rows:   rewritten,
		}}, nil
	}
	return nil, nil
}

// FillSellers fills null sellers within each purchase group with the group's
// most frequent seller. Groups with no seller at all are left as-is.
func FillSellers(t *model.Table, _ *config.Rules) ([]model.Warning, error) {
	filled := 0
	for _, group := range stats.GroupRows(t, model.ColPurchaseID) {
		var sellers []string
		for _, i := range group.Indices {
			if s, ok := t.Rows[i][model.ColSeller].(string); ok {
				sellers = append(sellers, s)
			}
		}
		mode, ok := stats.ModeString(sellers)
		if !ok {
			continue
		}
		for _, i := range group.Indices {
			if model.IsNull(t.Rows[i][model.ColSeller]) {
				t.Rows[i][model.ColSeller] = mode
				filled++
			}
		}
	}

	if filled > 0 {
		return []model.Warning{{
			Stage:  "fill_sellers",
			Column: model.ColSeller,
			Reason: "null sellers filled from purchase group",
			Rows:   filled,
		}}, nil
	}
	return nil, nil
}
