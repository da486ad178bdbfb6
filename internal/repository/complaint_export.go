package repository

import (
	"context"
	"fmt"
	"time"
)

// ExportFilter defines the optional filters for a complaint export.
// Nil fields contribute nothing to the query. Date bounds are applied
// inclusively to created_at and are passed through as supplied.
type ExportFilter struct {
	CategoryID *uint64
	DateFrom   *string
	DateTo     *string
}

// Export runs the filtered export query and returns the column names
// together with every matching row rendered as strings, newest first.
// Conditions are appended to a `1=1` base only for filters actually
// supplied, each bound positionally in the order added.
//
// The header set is derived from the first result row; an empty result
// therefore yields an empty header set as well, matching the behavior
// of the reporting clients built against it.
func (r *ComplaintRepo) Export(ctx context.Context, f ExportFilter) ([]string, [][]string, error) {
	q := "SELECT * FROM complaints WHERE 1=1"
	args := []any{}

	if f.CategoryID != nil {
		q += " AND category_id = ?"
		args = append(args, *f.CategoryID)
	}
	if f.DateFrom != nil {
		q += " AND created_at >= ?"
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		q += " AND created_at <= ?"
		args = append(args, *f.DateTo)
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	out := [][]string{}
	for rows.Next() {
		vals := make([]any, len(cols))
		for i := range vals {
			vals[i] = new(any)
		}
		if err := rows.Scan(vals...); err != nil {
			return nil, nil, err
		}
		rec := make([]string, len(cols))
		for i, v := range vals {
			rec[i] = renderValue(*(v.(*any)))
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	if len(out) == 0 {
		return []string{}, out, nil
	}
	return cols, out, nil
}

// renderValue converts a scanned SQL value into its CSV cell text.
func renderValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case time.Time:
		return x.UTC().Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
