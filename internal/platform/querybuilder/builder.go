// Package querybuilder renders the small set of PostgreSQL statements the
// repositories issue, with positional $n placeholders.
package querybuilder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	errNoTable   = errors.New("table is required")
	errNoColumns = errors.New("columns are required")
	errNoValues  = errors.New("insert values are required")
)

// sqlWriter accumulates statement text and its bound arguments.
type sqlWriter struct {
	sb   strings.Builder
	args []any
}

func (w *sqlWriter) text(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *sqlWriter) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteByte('$')
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

func (w *sqlWriter) where(conditions []Condition) {
	for i, c := range conditions {
		if i == 0 {
			w.text(" WHERE ")
		} else {
			w.text(" AND ")
		}
		c.render(w)
	}
}

func (w *sqlWriter) done() (string, []any, error) {
	return w.sb.String(), w.args, nil
}

// Condition is one WHERE predicate; predicates are joined with AND.
type Condition interface {
	render(w *sqlWriter)
}

type eqCondition struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

func (c eqCondition) render(w *sqlWriter) {
	w.text(c.column, " = ")
	w.bind(c.value)
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: append([]string(nil), columns...)}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

// Limit caps the result; zero or less means no LIMIT clause.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("select: %w", errNoTable)
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select %s: %w", b.table, errNoColumns)
	}

	var w sqlWriter
	w.text("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.text(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		w.text(" LIMIT ", strconv.Itoa(b.limit))
	}
	return w.done()
}

type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
	suffix  string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

// Values appends one row; call it once per row for a multi-row insert.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// Suffix appends raw SQL such as an ON CONFLICT clause.
func (b *InsertBuilder) Suffix(sql string) *InsertBuilder {
	b.suffix = strings.TrimSpace(sql)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	switch {
	case strings.TrimSpace(b.table) == "":
		return "", nil, fmt.Errorf("insert: %w", errNoTable)
	case len(b.columns) == 0:
		return "", nil, fmt.Errorf("insert %s: %w", b.table, errNoColumns)
	case len(b.rows) == 0:
		return "", nil, fmt.Errorf("insert %s: %w", b.table, errNoValues)
	}

	var w sqlWriter
	w.text("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert %s: row %d has %d values, expected %d", b.table, i, len(row), len(b.columns))
		}
		if i > 0 {
			w.text(", ")
		}
		w.text("(")
		for j, value := range row {
			if j > 0 {
				w.text(", ")
			}
			w.bind(value)
		}
		w.text(")")
	}
	if b.suffix != "" {
		w.text(" ", b.suffix)
	}
	return w.done()
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete: %w", errNoTable)
	}

	var w sqlWriter
	w.text("DELETE FROM ", b.table)
	w.where(b.where)
	return w.done()
}
