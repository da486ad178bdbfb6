package repository

import "strings"

// updateBuilder accumulates (column, value) pairs and renders a
// parameterized UPDATE statement. Only columns explicitly added end up
// in the SET clause, each bound positionally, so partial updates never
// touch fields the caller did not provide. Raw fragments (e.g.
// `updated_at = CURRENT_TIMESTAMP`) carry no bind value.
type updateBuilder struct {
	table string
	sets  []string
	args  []any
}

func newUpdateBuilder(table string) *updateBuilder {
	return &updateBuilder{table: table}
}

// Set adds a column with a positionally bound value.
func (b *updateBuilder) Set(column string, value any) {
	b.sets = append(b.sets, column+" = ?")
	b.args = append(b.args, value)
}

// SetRaw adds a SET fragment verbatim. The fragment must not contain
// caller-supplied data.
func (b *updateBuilder) SetRaw(fragment string) {
	b.sets = append(b.sets, fragment)
}

// Empty reports whether no bound column has been added. Raw fragments
// do not count: an update consisting only of a timestamp touch is
// still an empty patch.
func (b *updateBuilder) Empty() bool {
	return len(b.args) == 0
}

// SQL renders the statement with the given WHERE clause appended and
// returns it together with the full argument list (SET values first,
// WHERE values last).
func (b *updateBuilder) SQL(where string, whereArgs ...any) (string, []any) {
	q := "UPDATE " + b.table + " SET " + strings.Join(b.sets, ", ") + " WHERE " + where
	args := append(append([]any{}, b.args...), whereArgs...)
	return q, args
}
