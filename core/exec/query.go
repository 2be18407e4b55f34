package exec

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/FocuswithJustin/LiteWalk/core/btree"
	"github.com/FocuswithJustin/LiteWalk/core/catalog"
	"github.com/FocuswithJustin/LiteWalk/core/errors"
	"github.com/FocuswithJustin/LiteWalk/core/record"
	"github.com/FocuswithJustin/LiteWalk/core/sql"
	"github.com/FocuswithJustin/LiteWalk/internal/logging"
)

// rowFilter reports whether a row survives the WHERE clause. The value
// slice has already had rowid aliasing applied.
type rowFilter func(values []record.Value) bool

// Query parses and runs one SELECT statement, writing result rows to w
// pipe-separated in rowid order.
func (e *Engine) Query(w io.Writer, input string) error {
	start := time.Now()

	stmt, err := sql.Parse(input)
	if err != nil {
		logging.QueryFailed(input, err)
		return err
	}
	tbl, ok := e.catalog.Table(stmt.Table)
	if !ok {
		err := errors.NewUnknownTable(stmt.Table)
		logging.QueryFailed(input, err)
		return err
	}

	// Compile before scanning so unknown columns fail on empty tables too.
	filter, err := compileFilter(tbl, stmt.Where)
	if err != nil {
		logging.QueryFailed(input, err)
		return err
	}

	if isCountStar(stmt.Columns) {
		count := 0
		err := btree.Scan(e.store, tbl.RootPage, func(row btree.Row) error {
			values := rowValues(tbl, row.Rowid, row.Values)
			if filter == nil || filter(values) {
				count++
			}
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\n", count)
		logging.QueryExecuted(input, count, time.Since(start))
		return nil
	}

	project, err := compileProjection(tbl, stmt.Columns)
	if err != nil {
		logging.QueryFailed(input, err)
		return err
	}

	printed := 0
	err = btree.Scan(e.store, tbl.RootPage, func(row btree.Row) error {
		values := rowValues(tbl, row.Rowid, row.Values)
		if filter != nil && !filter(values) {
			return nil
		}
		out := make([]string, len(project))
		for i, col := range project {
			out[i] = formatValue(valueAt(values, col))
		}
		fmt.Fprintln(w, strings.Join(out, "|"))
		printed++
		return nil
	})
	if err != nil {
		return err
	}
	logging.QueryExecuted(input, printed, time.Since(start))
	return nil
}

// isCountStar reports whether the selection is exactly COUNT(*).
func isCountStar(cols []sql.Expr) bool {
	if len(cols) != 1 {
		return false
	}
	fn, ok := cols[0].(*sql.FunctionExpr)
	if !ok || !strings.EqualFold(fn.Name, "COUNT") {
		return false
	}
	if len(fn.Args) != 1 {
		return false
	}
	_, ok = fn.Args[0].(*sql.StarExpr)
	return ok
}

// compileProjection resolves the selected columns to positions in the
// stored record. A lone * expands to every declared column.
func compileProjection(tbl *catalog.Table, cols []sql.Expr) ([]int, error) {
	if len(cols) == 1 {
		if _, ok := cols[0].(*sql.StarExpr); ok {
			project := make([]int, len(tbl.Columns))
			for i := range project {
				project[i] = i
			}
			return project, nil
		}
	}

	project := make([]int, 0, len(cols))
	for _, col := range cols {
		switch c := col.(type) {
		case *sql.NameExpr:
			i := tbl.ColumnIndex(c.Name)
			if i < 0 {
				return nil, errors.NewUnknownColumn(c.Name, tbl.Name)
			}
			project = append(project, i)
		case *sql.StarExpr:
			return nil, errors.NewExpr("*", "star cannot be combined with other columns")
		case *sql.FunctionExpr:
			return nil, errors.NewExpr(c.String(), "only COUNT(*) is supported")
		case *sql.AliasExpr:
			return nil, errors.NewExpr(c.String(), "column aliases are not supported")
		default:
			return nil, errors.NewExpr(c.String(), "cannot be selected")
		}
	}
	return project, nil
}

// compileFilter turns the WHERE clause into a predicate over decoded
// rows. A nil clause compiles to a nil filter.
func compileFilter(tbl *catalog.Table, where *sql.BinaryExpr) (rowFilter, error) {
	if where == nil {
		return nil, nil
	}

	name, ok := where.Lhs.(*sql.NameExpr)
	if !ok {
		return nil, errors.NewExpr(where.Lhs.String(), "only column = literal filters are supported")
	}
	col := tbl.ColumnIndex(name.Name)
	if col < 0 {
		return nil, errors.NewUnknownColumn(name.Name, tbl.Name)
	}

	switch lit := where.Rhs.(type) {
	case *sql.StringExpr:
		want := lit.Value
		return func(values []record.Value) bool {
			v := valueAt(values, col)
			return v.Kind() == record.KindText && v.Text() == want
		}, nil
	case *sql.NumberExpr:
		// Integer literals also match Real values holding the same number.
		if i, err := strconv.ParseInt(lit.Text, 10, 64); err == nil {
			return func(values []record.Value) bool {
				v := valueAt(values, col)
				switch v.Kind() {
				case record.KindInteger:
					return v.Int64() == i
				case record.KindReal:
					return v.Float64() == float64(i)
				}
				return false
			}, nil
		}
		f, err := strconv.ParseFloat(lit.Text, 64)
		if err != nil {
			return nil, errors.NewExpr(lit.Text, "not a valid number")
		}
		return func(values []record.Value) bool {
			v := valueAt(values, col)
			switch v.Kind() {
			case record.KindInteger:
				return float64(v.Int64()) == f
			case record.KindReal:
				return v.Float64() == f
			}
			return false
		}, nil
	default:
		return nil, errors.NewExpr(where.Rhs.String(), "only string and number literals are supported")
	}
}

// valueAt pads short records: rows written before an ALTER TABLE ADD
// COLUMN store fewer values than the schema declares.
func valueAt(values []record.Value, i int) record.Value {
	if i >= len(values) {
		return record.Null()
	}
	return values[i]
}

// formatValue renders one value the way the sqlite3 shell's list mode
// does: Null is empty, numbers in their shortest form, text and blobs
// as raw bytes.
func formatValue(v record.Value) string {
	switch v.Kind() {
	case record.KindNull:
		return ""
	case record.KindInteger:
		return strconv.FormatInt(v.Int64(), 10)
	case record.KindReal:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	default:
		return string(v.Bytes())
	}
}
