// Package catalog loads the database schema from the table b-tree
// rooted at page 1 and resolves table names for the executor.
package catalog

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/LiteWalk/core/btree"
	"github.com/FocuswithJustin/LiteWalk/core/errors"
	"github.com/FocuswithJustin/LiteWalk/core/pager"
)

// SchemaRootPage is where every database keeps its schema table.
const SchemaRootPage = 1

// Column is one declared column: its name and the raw declaration tail
// ("integer primary key autoincrement", "text not null", ...).
type Column struct {
	Name string
	Type string
}

// Table is one schema entry of type "table".
type Table struct {
	Name        string
	RootPage    uint32
	SQL         string
	Columns     []Column
	IntPKColumn int // index of the INTEGER PRIMARY KEY column, -1 if none
}

// ColumnIndex returns the position of a column by exact name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col.Name == name {
			return i
		}
	}
	return -1
}

// Catalog holds the tables of one database in schema order.
type Catalog struct {
	tables map[string]*Table
	order  []string
}

// Load traverses the schema b-tree and keeps every row of type
// "table". Schema rows carry the fixed columns (type, name, tbl_name,
// rootpage, sql); views, indexes, and triggers are dropped.
func Load(store *pager.Store) (*Catalog, error) {
	c := &Catalog{tables: make(map[string]*Table)}
	err := btree.Scan(store, SchemaRootPage, func(row btree.Row) error {
		if len(row.Values) < 5 {
			return errors.NewFormat(store.Path(), fmt.Sprintf("schema row %d has %d columns, want 5", row.Rowid, len(row.Values)))
		}
		if row.Values[0].Text() != "table" {
			return nil
		}

		sql := ""
		if !row.Values[4].IsNull() {
			sql = row.Values[4].Text()
		}
		t := &Table{
			Name:        row.Values[1].Text(),
			RootPage:    uint32(row.Values[3].Int64()),
			SQL:         sql,
			Columns:     parseColumns(sql),
			IntPKColumn: -1,
		}
		for i, col := range t.Columns {
			if isIntegerPrimaryKey(col.Type) {
				t.IntPKColumn = i
				break
			}
		}
		c.tables[t.Name] = t
		c.order = append(c.order, t.Name)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "load schema")
	}
	return c, nil
}

// Table resolves a table name. User tables match exactly and
// case-sensitively; the schema table itself answers to its historic
// aliases in any case.
func (c *Catalog) Table(name string) (*Table, bool) {
	if t, ok := c.tables[name]; ok {
		return t, true
	}
	if isSchemaAlias(name) {
		return schemaTable(), true
	}
	return nil, false
}

// TableNames returns every table name in schema order, internal ones
// included.
func (c *Catalog) TableNames() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// TableCount returns the number of schema rows with type "table".
func (c *Catalog) TableCount() int {
	return len(c.order)
}

// isSchemaAlias matches the spellings under which SQLite exposes the
// schema table.
func isSchemaAlias(name string) bool {
	switch strings.ToLower(name) {
	case "sqlite_schema", "sqlite_master", "sqlite_temp_schema", "sqlite_temp_master":
		return true
	}
	return false
}

// schemaTable synthesizes the catalog entry for the schema table,
// which never appears in its own rows.
func schemaTable() *Table {
	sql := "CREATE TABLE sqlite_schema(type text,name text,tbl_name text,rootpage integer,sql text)"
	return &Table{
		Name:        "sqlite_schema",
		RootPage:    SchemaRootPage,
		SQL:         sql,
		Columns:     parseColumns(sql),
		IntPKColumn: -1,
	}
}
