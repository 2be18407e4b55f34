// Package exec evaluates statements and dot commands against a database
// file, writing results to an io.Writer.
package exec

import (
	"io"
	"strings"

	"github.com/FocuswithJustin/LiteWalk/core/catalog"
	"github.com/FocuswithJustin/LiteWalk/core/pager"
	"github.com/FocuswithJustin/LiteWalk/core/record"
	"github.com/FocuswithJustin/LiteWalk/internal/logging"
)

// Engine binds an open database file to its loaded schema. It is not
// safe for concurrent use.
type Engine struct {
	store   *pager.Store
	catalog *catalog.Catalog
}

// Open opens the database file at path and loads its schema.
func Open(path string) (*Engine, error) {
	store, err := pager.Open(path)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(store)
	if err != nil {
		store.Close()
		return nil, err
	}
	logging.DatabaseOpened(path, store.PageSize(), cat.TableCount())
	return &Engine{store: store, catalog: cat}, nil
}

// Close releases the underlying database file.
func (e *Engine) Close() error {
	return e.store.Close()
}

// Execute runs one command: a dot command when the input starts with
// ".", otherwise a SELECT statement.
func (e *Engine) Execute(w io.Writer, command string) error {
	command = strings.TrimSpace(command)
	if strings.HasPrefix(command, ".") {
		return e.dotCommand(w, command)
	}
	return e.Query(w, command)
}

// rowValues applies rowid aliasing: an INTEGER PRIMARY KEY column is
// stored as Null and reads back as the rowid.
func rowValues(tbl *catalog.Table, rowid int64, values []record.Value) []record.Value {
	i := tbl.IntPKColumn
	if i >= 0 && i < len(values) && values[i].IsNull() {
		values[i] = record.Integer(rowid)
	}
	return values
}
