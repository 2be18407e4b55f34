package exec

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/LiteWalk/core/btree"
	"github.com/FocuswithJustin/LiteWalk/core/errors"
)

// dotCommand dispatches the shell-style commands that bypass SQL parsing.
func (e *Engine) dotCommand(w io.Writer, command string) error {
	fields := strings.Fields(command)
	switch fields[0] {
	case ".dbinfo":
		return e.DBInfo(w)
	case ".tables":
		return e.Tables(w)
	case ".schema":
		name := ""
		if len(fields) > 1 {
			name = fields[1]
		}
		return e.Schema(w, name)
	case ".hash":
		if len(fields) < 2 {
			return errors.NewParse("table name", "end of input", len(command))
		}
		return e.TableHash(w, fields[1])
	default:
		return errors.NewParse("dot command", strconv.Quote(fields[0]), 0)
	}
}

// DBInfo writes summary information about the open database.
func (e *Engine) DBInfo(w io.Writer) error {
	fmt.Fprintf(w, "database page size: %d\n", e.store.PageSize())
	fmt.Fprintf(w, "number of tables: %d\n", e.catalog.TableCount())
	return nil
}

// Tables writes user table names in schema order on one line. Internal
// sqlite_* tables are not listed.
func (e *Engine) Tables(w io.Writer) error {
	names := e.userTables()
	if len(names) == 0 {
		return nil
	}
	fmt.Fprintln(w, strings.Join(names, " "))
	return nil
}

// Schema writes stored CREATE statements, one per line with a trailing
// semicolon. With a name only that table's statement is written.
func (e *Engine) Schema(w io.Writer, name string) error {
	if name != "" {
		tbl, ok := e.catalog.Table(name)
		if !ok {
			return errors.NewUnknownTable(name)
		}
		writeCreateSQL(w, tbl.SQL)
		return nil
	}
	for _, n := range e.userTables() {
		tbl, ok := e.catalog.Table(n)
		if !ok {
			continue
		}
		writeCreateSQL(w, tbl.SQL)
	}
	return nil
}

// TableHash writes a BLAKE3-256 digest of a table's contents as
// lowercase hex. Each row is hashed as the rowid, then every column
// value separated by pipes, then a newline, so equal tables in
// different files digest identically.
func (e *Engine) TableHash(w io.Writer, name string) error {
	tbl, ok := e.catalog.Table(name)
	if !ok {
		return errors.NewUnknownTable(name)
	}

	h := blake3.New()
	err := btree.Scan(e.store, tbl.RootPage, func(row btree.Row) error {
		values := rowValues(tbl, row.Rowid, row.Values)
		fmt.Fprintf(h, "%d", row.Rowid)
		for _, v := range values {
			h.Write([]byte{'|'})
			h.Write([]byte(formatValue(v)))
		}
		h.Write([]byte{'\n'})
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(w, hex.EncodeToString(h.Sum(nil)))
	return nil
}

func (e *Engine) userTables() []string {
	var names []string
	for _, name := range e.catalog.TableNames() {
		if strings.HasPrefix(name, "sqlite_") {
			continue
		}
		names = append(names, name)
	}
	return names
}

func writeCreateSQL(w io.Writer, sql string) {
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return
	}
	if !strings.HasSuffix(sql, ";") {
		sql += ";"
	}
	fmt.Fprintln(w, sql)
}
