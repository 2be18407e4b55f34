package catalog

import (
	"strings"
	"unicode"
)

// tableConstraints are the keywords that open a table-level constraint
// inside a CREATE TABLE column list.
var tableConstraints = map[string]bool{
	"PRIMARY":    true,
	"UNIQUE":     true,
	"CHECK":      true,
	"FOREIGN":    true,
	"CONSTRAINT": true,
}

// parseColumns extracts column names and their declaration tails from a
// CREATE TABLE statement. It is a bracket-balanced string scan, not a
// SQL grammar: the body between the first '(' and its matching ')' is
// split on top-level commas, and the first word of each piece is the
// column name. Quoted identifiers that themselves contain commas or
// parentheses are not handled.
func parseColumns(sql string) []Column {
	open := strings.IndexByte(sql, '(')
	if open < 0 {
		return nil
	}

	var columns []Column
	depth := 1
	start := open + 1
	for i := open + 1; i < len(sql); i++ {
		switch sql[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				if col, ok := parseColumnDef(sql[start:i]); ok {
					columns = append(columns, col)
				}
				return columns
			}
		case ',':
			if depth == 1 {
				if col, ok := parseColumnDef(sql[start:i]); ok {
					columns = append(columns, col)
				}
				start = i + 1
			}
		}
	}
	// Unbalanced parens: keep whatever parsed cleanly.
	return columns
}

// parseColumnDef reads one comma-separated piece of the column list.
// Table-level constraints are recognized by their leading keyword and
// skipped.
func parseColumnDef(piece string) (Column, bool) {
	piece = strings.TrimSpace(piece)
	if piece == "" {
		return Column{}, false
	}

	name, rest := splitIdent(piece)
	if name == "" {
		return Column{}, false
	}
	if tableConstraints[strings.ToUpper(name)] {
		return Column{}, false
	}
	return Column{Name: name, Type: strings.TrimSpace(rest)}, true
}

// splitIdent splits off a leading identifier, unwrapping "double",
// `backtick`, or [bracket] quoting.
func splitIdent(s string) (string, string) {
	switch s[0] {
	case '"', '`':
		q := s[0]
		for i := 1; i < len(s); i++ {
			if s[i] == q {
				return s[1:i], s[i+1:]
			}
		}
		return s[1:], ""
	case '[':
		if i := strings.IndexByte(s, ']'); i >= 0 {
			return s[1:i], s[i+1:]
		}
		return s[1:], ""
	}
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// isIntegerPrimaryKey reports whether a column declaration tail marks
// the rowid alias column. Whitespace runs collapse first, so the check
// holds for declarations split across lines.
func isIntegerPrimaryKey(typeText string) bool {
	norm := strings.ToLower(strings.Join(strings.Fields(typeText), " "))
	return strings.HasPrefix(norm, "integer primary key")
}
