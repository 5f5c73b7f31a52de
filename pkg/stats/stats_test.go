// pkg/stats/stats_test.go
package stats

import (
	"reflect"
	"testing"

	"github.com/LucasFSouza552/MegaSuperVendas/pkg/model"
)

func newTable(columns []string, rows ...model.Row) *model.Table {
	t := model.NewTable(columns)
	t.Rows = rows
	return t
}

func TestGroupRows(t *testing.T) {
	tbl := newTable([]string{"produto", "marca"},
		model.Row{"produto": "Mouse", "marca": "Logitech"},
		model.Row{"produto": "Teclado", "marca": "Logitech"},
		model.Row{"produto": "Mouse", "marca": "Logitech"},
		model.Row{"produto": "Mouse", "marca": nil},
	)

	groups := GroupRows(tbl, "produto", "marca")
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if !reflect.DeepEqual(groups[0].Indices, []int{0, 2}) {
		t.Errorf("first-observed group wrong: %v", groups[0].Indices)
	}
	if !reflect.DeepEqual(groups[1].Indices, []int{1}) {
		t.Errorf("second group wrong: %v", groups[1].Indices)
	}
	// Row 3 has a null key and belongs to no group.
	for _, g := range groups {
		for _, i := range g.Indices {
			if i == 3 {
				t.Errorf("row with null key must not be grouped")
			}
		}
	}
}

func TestNonNullFloats(t *testing.T) {
	tbl := newTable([]string{"valor"},
		model.Row{"valor": 10.0},
		model.Row{"valor": nil},
		model.Row{"valor": "12.5"},
		model.Row{"valor": "abc"},
	)

	got := NonNullFloats(tbl, "valor", nil)
	if !reflect.DeepEqual(got, []float64{10, 12.5}) {
		t.Errorf("NonNullFloats = %v", got)
	}

	got = NonNullFloats(tbl, "valor", []int{2})
	if !reflect.DeepEqual(got, []float64{12.5}) {
		t.Errorf("NonNullFloats with indices = %v", got)
	}
}

func TestMedian(t *testing.T) {
	// Interpolation over the cumulative weights: an outlier does not pull
	// the median toward the midpoint of the two central values.
	got, ok := Median([]float64{10, 11, 12, 1000})
	if !ok || got != 11 {
		t.Errorf("Median = %v, %v; want 11", got, ok)
	}

	if _, ok := Median(nil); ok {
		t.Errorf("Median of empty input must report false")
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	if _, ok := Quantile(0.5, values); !ok {
		t.Fatalf("Quantile reported empty input")
	}
	if !reflect.DeepEqual(values, []float64{3, 1, 2}) {
		t.Errorf("input slice reordered: %v", values)
	}
}

func TestMean(t *testing.T) {
	got, ok := Mean([]float64{10, 20, 30})
	if !ok || got != 20 {
		t.Errorf("Mean = %v, %v; want 20", got, ok)
	}
	if _, ok := Mean(nil); ok {
		t.Errorf("Mean of empty input must report false")
	}
}

func TestModeFloat(t *testing.T) {
	got, ok := ModeFloat([]float64{5, 3, 3, 5, 1})
	if !ok || got != 3 {
		t.Errorf("tie must break to the smallest value, got %v", got)
	}
	got, ok = ModeFloat([]float64{7, 7, 1})
	if !ok || got != 7 {
		t.Errorf("ModeFloat = %v, want 7", got)
	}
}

func TestModeString(t *testing.T) {
	got, ok := ModeString([]string{"b", "a", "b"})
	if !ok || got != "b" {
		t.Errorf("ModeString = %q, want b", got)
	}
	got, ok = ModeString([]string{"b", "a"})
	if !ok || got != "a" {
		t.Errorf("tie must break lexicographically, got %q", got)
	}
}

func TestModeStrings(t *testing.T) {
	got := ModeStrings([]string{"b", "a", "b", "a", "c"})
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ModeStrings = %v, want full sorted tie set", got)
	}
	if ModeStrings(nil) != nil {
		t.Errorf("ModeStrings of empty input must be nil")
	}
}
