// pkg/stats/stats.go
package stats

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

// Group is a partition of table rows sharing equal values in the key columns.
// Indices point into the parent table's row slice.
type Group struct {
	Key     []any
	Indices []int
}

// GroupRows partitions rows by the named key columns, in first-observed order.
// Rows with a null in any key column belong to no group: group-level fills and
// outlier rejection leave them untouched.
func GroupRows(t *model.Table, keyCols ...string) []Group {
	grouped := make(map[string]int)
	groups := make([]Group, 0)

rows:
	for i, row := range t.Rows {
		parts := make([]string, 0, len(keyCols))
		key := make([]any, 0, len(keyCols))
		for _, col := range keyCols {
			v := row[col]
			if model.IsNull(v) {
				continue rows
			}
			parts = append(parts, model.ToString(v))
			key = append(key, v)
		}
		k := strings.Join(parts, "\x1f")
		if gi, ok := grouped[k]; ok {
			groups[gi].Indices = append(groups[gi].Indices, i)
			continue
		}
		grouped[k] = len(groups)
		groups = append(groups, Group{Key: key, Indices: []int{i}})
	}
	return groups
}

// NonNullFloats collects the non-null numeric values of a column over the
// given row indices. A nil indices slice means all rows.
func NonNullFloats(t *model.Table, col string, indices []int) []float64 {
	if indices == nil {
		indices = make([]int, len(t.Rows))
		for i := range t.Rows {
			indices[i] = i
		}
	}
	values := make([]float64, 0, len(indices))
	for _, i := range indices {
		if f, err := model.ToFloat(t.Rows[i][col]); err == nil {
			values = append(values, f)
		}
	}
	return values
}

// Quantile returns the p-quantile of values using linear interpolation over
// the cumulative weights. Returns false for an empty input.
func Quantile(p float64, values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.LinInterp, sorted, nil), true
}

// Median returns the 0.5-quantile of values.
func Median(values []float64) (float64, bool) {
	return Quantile(0.5, values)
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// ModeFloat returns the most frequent value; ties break to the smallest.
func ModeFloat(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	counts := make(map[float64]int)
	for _, v := range values {
		counts[v]++
	}
	var mode float64
	best := -1
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}
	return mode, true
}

// ModeString returns the most frequent value; ties break lexicographically.
func ModeString(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	var mode string
	best := -1
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode, best = v, n
		}
	}
	return mode, true
}

// ModeStrings returns every value tied for the highest count, sorted. The
// report uses the full mode set when flagging product-brand inconsistencies.
func ModeStrings(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	counts := make(map[string]int)
	best := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}
	var modes []string
	for v, n := range counts {
		if n == best {
			modes = append(modes, v)
		}
	}
	sort.Strings(modes)
	return modes
}
