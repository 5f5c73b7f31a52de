// pkg/model/table.go
package model

import "strings"

// Expected input columns (case-sensitive, as exported by the sales system).
const (
	ColPurchaseID = "id_da_compra"
	ColCustomer   = "cliente"
	ColProduct    = "produto"
	ColBrand      = "marca"
	ColStatus     = "status"
	ColPrice      = "valor"
	ColQuantity   = "quantidade"
	ColShipping   = "frete"
	ColTotal      = "total"
	ColDate       = "data"
	ColTime       = "hora"
	ColPostalCode = "cep"
	ColCity       = "cidade"
	ColCountry    = "pais"
	ColState      = "estado"
	ColPayment    = "pagamento"
	ColSeller     = "vendedor"
)

// Row maps a column name to a cell value. Valid cell types are nil (absent),
// string, float64 and time.Time; time-of-day cells hold an "HH:MM:SS" string.
type Row map[string]any

// ColumnKind is the declared type of a column after coercion.
type ColumnKind int

const (
	KindString ColumnKind = iota
	KindNumeric
	KindDate
	KindClock
	KindCategorical
)

// Schema records the declared kind per column and, for categorical columns,
// the bounded domain observed in the data.
type Schema struct {
	Kinds   map[string]ColumnKind
	Domains map[string][]string
}

// Table is an ordered, in-memory collection of rows sharing one column set.
// A table has a single owner at a time; pipeline stages mutate it in place.
type Table struct {
	Columns []string
	Rows    []Row
	Schema  Schema
}

// NewTable creates an empty table with the given column order.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([]Row, 0),
		Schema: Schema{
			Kinds:   make(map[string]ColumnKind),
			Domains: make(map[string][]string),
		},
	}
}

// HasColumn reports whether the table exposes the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the subset of names the table does not expose.
func (t *Table) MissingColumns(names []string) []string {
	var missing []string
	for _, n := range names {
		if !t.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Clone returns a deep copy of the table. The copy shares nothing with the
// original, so one side can be mutated while the other is kept for diffing.
func (t *Table) Clone() *Table {
	clone := NewTable(t.Columns)
	clone.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		cloned := make(Row, len(row))
		for col, val := range row {
			cloned[col] = val
		}
		clone.Rows[i] = cloned
	}
	for col, kind := range t.Schema.Kinds {
		clone.Schema.Kinds[col] = kind
	}
	for col, domain := range t.Schema.Domains {
		clone.Schema.Domains[col] = append([]string(nil), domain...)
	}
	return clone
}

// NullCounts returns the number of nil cells per column.
func (t *Table) NullCounts() map[string]int {
	counts := make(map[string]int, len(t.Columns))
	for _, col := range t.Columns {
		counts[col] = 0
	}
	for _, row := range t.Rows {
		for _, col := range t.Columns {
			if IsNull(row[col]) {
				counts[col]++
			}
		}
	}
	return counts
}

// DistinctNonNull returns the distinct non-null values of a string column in
// first-observed row order. Enumeration order matters: the fuzzy clustering
// seeds iterate this slice.
func (t *Table) DistinctNonNull(col string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, row := range t.Rows {
		s, ok := row[col].(string)
		if !ok {
			continue
		}
		if !seen[s] {
			seen[s] = true
			values = append(values, s)
		}
	}
	return values
}

// ValueCounts returns occurrence counts for the non-null string values of a
// column across the full row set.
func (t *Table) ValueCounts(col string) map[string]int {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if s, ok := row[col].(string); ok {
			counts[s]++
		}
	}
	return counts
}

// RenameUpper returns a copy of the table with every column name upper-cased,
// for the output sink. The report must be generated before this step so the
// primary-key column is still addressable by its input name.
func (t *Table) RenameUpper() *Table {
	upper := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		upper[i] = strings.ToUpper(c)
	}
	renamed := NewTable(upper)
	renamed.Rows = make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		r := make(Row, len(row))
		for col, val := range row {
			r[strings.ToUpper(col)] = val
		}
		renamed.Rows[i] = r
	}
	for col, kind := range t.Schema.Kinds {
		renamed.Schema.Kinds[strings.ToUpper(col)] = kind
	}
	for col, domain := range t.Schema.Domains {
		renamed.Schema.Domains[strings.ToUpper(col)] = append([]string(nil), domain...)
	}
	return renamed
}
