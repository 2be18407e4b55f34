package sql

import "strings"

// Expr is a parsed expression. The parser recognizes more forms than
// the executor evaluates; rejecting the rest is the executor's job.
type Expr interface {
	expr()
	String() string
}

// StarExpr is the lone `*` selection.
type StarExpr struct{}

func (*StarExpr) expr()          {}
func (*StarExpr) String() string { return "*" }

// NameExpr is a bare column reference.
type NameExpr struct {
	Name string
}

func (*NameExpr) expr()            {}
func (e *NameExpr) String() string { return e.Name }

// StringExpr is a single-quoted literal, already unescaped.
type StringExpr struct {
	Value string
}

func (*StringExpr) expr() {}
func (e *StringExpr) String() string {
	return "'" + strings.ReplaceAll(e.Value, "'", "''") + "'"
}

// NumberExpr is a numeric literal, kept as written.
type NumberExpr struct {
	Text string
}

func (*NumberExpr) expr()            {}
func (e *NumberExpr) String() string { return e.Text }

// FunctionExpr is a call form such as COUNT(*).
type FunctionExpr struct {
	Name string
	Args []Expr
}

func (*FunctionExpr) expr() {}
func (e *FunctionExpr) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return e.Name + "(" + strings.Join(args, ", ") + ")"
}

// AliasExpr is an aliased selection item (`name AS n` or `name n`).
type AliasExpr struct {
	Expr  Expr
	Alias string
}

func (*AliasExpr) expr() {}
func (e *AliasExpr) String() string {
	return e.Expr.String() + " AS " + e.Alias
}

// BinaryExpr is an infix comparison; equality is the only operator.
type BinaryExpr struct {
	Op  string
	Lhs Expr
	Rhs Expr
}

func (*BinaryExpr) expr() {}
func (e *BinaryExpr) String() string {
	return e.Lhs.String() + " " + e.Op + " " + e.Rhs.String()
}

// SelectStmt is the parsed statement.
type SelectStmt struct {
	Columns []Expr
	Table   string
	Where   *BinaryExpr // nil when no WHERE clause
}

func (s *SelectStmt) String() string {
	cols := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		cols[i] = c.String()
	}
	out := "SELECT " + strings.Join(cols, ", ") + " FROM " + s.Table
	if s.Where != nil {
		out += " WHERE " + s.Where.String()
	}
	return out
}
