// Package querybuilder renders the small set of postgres statements the
// league store issues. Values always travel as $n bind parameters.
package querybuilder

import (
	"fmt"
	"strconv"
	"strings"
)

// writer accumulates SQL text and the bind arguments referenced by it.
type writer struct {
	sb   strings.Builder
	args []any
}

func (w *writer) raw(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
}

func (w *writer) bind(value any) {
	w.args = append(w.args, value)
	w.sb.WriteByte('$')
	w.sb.WriteString(strconv.Itoa(len(w.args)))
}

func (w *writer) list(n int, item func(i int)) {
	for i := 0; i < n; i++ {
		if i > 0 {
			w.sb.WriteString(", ")
		}
		item(i)
	}
}

func (w *writer) where(conds []Condition) {
	for i, c := range conds {
		if i == 0 {
			w.sb.WriteString(" WHERE ")
		} else {
			w.sb.WriteString(" AND ")
		}
		c.render(w)
	}
}

func (w *writer) result() (string, []any, error) {
	return w.sb.String(), w.args, nil
}

// Condition is one predicate of a WHERE clause. Predicates are ANDed.
type Condition interface {
	render(w *writer)
}

type condFunc func(w *writer)

func (f condFunc) render(w *writer) { f(w) }

func Eq(column string, value any) Condition {
	return condFunc(func(w *writer) {
		w.raw(column, " = ")
		w.bind(value)
	})
}

// In renders a never-true predicate for an empty value list.
func In(column string, values []any) Condition {
	return condFunc(func(w *writer) {
		if len(values) == 0 {
			w.raw("1=0")
			return
		}
		w.raw(column, " IN (")
		w.list(len(values), func(i int) { w.bind(values[i]) })
		w.raw(")")
	})
}

func IsNull(column string) Condition {
	return condFunc(func(w *writer) { w.raw(column, " IS NULL") })
}

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conds ...Condition) *SelectBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *SelectBuilder) OrderBy(columns ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, columns...)
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if err := requireTable("select", b.table); err != nil {
		return "", nil, err
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("select from %s: no columns", b.table)
	}

	var w writer
	w.raw("SELECT ", strings.Join(b.columns, ", "), " FROM ", b.table)
	w.where(b.where)
	if len(b.orderBy) > 0 {
		w.raw(" ORDER BY ", strings.Join(b.orderBy, ", "))
	}
	return w.result()
}

// InsertBuilder renders a single or multi-row INSERT.
type InsertBuilder struct {
	table   string
	columns []string
	rows    [][]any
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = columns
	return b
}

// Values appends one row; its width must match Columns.
func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, values)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if err := requireTable("insert", b.table); err != nil {
		return "", nil, err
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert into %s: no columns", b.table)
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert into %s: no rows", b.table)
	}
	for i, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert into %s: row %d has %d values for %d columns", b.table, i, len(row), len(b.columns))
		}
	}

	var w writer
	w.args = make([]any, 0, len(b.rows)*len(b.columns))
	w.raw("INSERT INTO ", b.table, " (", strings.Join(b.columns, ", "), ") VALUES ")
	w.list(len(b.rows), func(r int) {
		w.raw("(")
		w.list(len(b.rows[r]), func(c int) { w.bind(b.rows[r][c]) })
		w.raw(")")
	})
	return w.result()
}

type assignment struct {
	column string
	value  any
	// sql is written verbatim instead of binding value when set.
	sql string
}

type UpdateBuilder struct {
	table string
	sets  []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a literal SQL expression such as NOW().
func (b *UpdateBuilder) SetExpr(column, sql string) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, sql: sql})
	return b
}

func (b *UpdateBuilder) Where(conds ...Condition) *UpdateBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if err := requireTable("update", b.table); err != nil {
		return "", nil, err
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update %s: nothing to set", b.table)
	}

	var w writer
	w.raw("UPDATE ", b.table, " SET ")
	w.list(len(b.sets), func(i int) {
		s := b.sets[i]
		w.raw(s.column, " = ")
		if s.sql != "" {
			w.raw(s.sql)
			return
		}
		w.bind(s.value)
	})
	w.where(b.where)
	return w.result()
}

// DeleteBuilder refuses to render a DELETE without conditions.
type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conds ...Condition) *DeleteBuilder {
	b.where = append(b.where, conds...)
	return b
}

func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if err := requireTable("delete", b.table); err != nil {
		return "", nil, err
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete from %s: where clause required", b.table)
	}

	var w writer
	w.raw("DELETE FROM ", b.table)
	w.where(b.where)
	return w.result()
}

func requireTable(stmt, table string) error {
	if strings.TrimSpace(table) == "" {
		return fmt.Errorf("%s: table is required", stmt)
	}
	return nil
}
