package sql

import (
	"strconv"
	"strings"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
)

// Parser is a cursor over a token slice.
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a parser over tokens, which must end with an EOF
// token (Tokenize guarantees this).
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses one statement.
func Parse(input string) (*SelectStmt, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return NewParser(tokens).ParseSelect()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF, Pos: len(p.tokens)}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind or fails, naming what was
// wanted (e.g. "table name" reads better than "identifier").
func (p *Parser) expect(kind TokenKind, what string) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, errors.NewParse(what, describe(p.peek()), p.peek().Pos)
}

func describe(tok Token) string {
	if tok.Kind == TokenEOF {
		return "end of input"
	}
	return strconv.Quote(tok.Text)
}

// ParseSelect parses:
//
//	select_stmt := SELECT selection FROM IDENT [WHERE IDENT '=' literal] [';']
//	selection   := item (',' item)*
//	item        := '*' | IDENT ['(' (item (',' item)*)? ')'] [['AS'] IDENT]
func (p *Parser) ParseSelect() (*SelectStmt, error) {
	if _, err := p.expect(TokenSelect, "SELECT"); err != nil {
		return nil, err
	}

	columns, err := p.parseSelection()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenFrom, "FROM"); err != nil {
		return nil, err
	}
	table, err := p.expect(TokenIdent, "table name")
	if err != nil {
		return nil, err
	}

	stmt := &SelectStmt{Columns: columns, Table: table.Text}

	if p.match(TokenWhere) {
		column, err := p.expect(TokenIdent, "column name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEq, "'='"); err != nil {
			return nil, err
		}
		literal, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Where = &BinaryExpr{Op: "=", Lhs: &NameExpr{Name: column.Text}, Rhs: literal}
	}

	p.match(TokenSemi)
	if _, err := p.expect(TokenEOF, "end of statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseSelection() ([]Expr, error) {
	item, err := p.parseItem()
	if err != nil {
		return nil, err
	}
	items := []Expr{item}
	for p.match(TokenComma) {
		item, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// parseItem parses one selection item. Function calls and aliases are
// recognized so that the executor can refuse them by name instead of
// the parser garbling them.
func (p *Parser) parseItem() (Expr, error) {
	if p.match(TokenStar) {
		return &StarExpr{}, nil
	}
	if !p.check(TokenIdent) {
		return nil, errors.NewParse("column name or '*'", describe(p.peek()), p.peek().Pos)
	}
	name := p.advance()

	var item Expr = &NameExpr{Name: name.Text}
	if p.match(TokenLParen) {
		var args []Expr
		if !p.check(TokenRParen) {
			inner, err := p.parseSelection()
			if err != nil {
				return nil, err
			}
			args = inner
		}
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return nil, err
		}
		item = &FunctionExpr{Name: name.Text, Args: args}
	}

	if p.check(TokenIdent) {
		alias := p.advance()
		if strings.EqualFold(alias.Text, "AS") {
			named, err := p.expect(TokenIdent, "alias name")
			if err != nil {
				return nil, err
			}
			alias = named
		}
		item = &AliasExpr{Expr: item, Alias: alias.Text}
	}
	return item, nil
}

func (p *Parser) parseLiteral() (Expr, error) {
	switch tok := p.peek(); tok.Kind {
	case TokenString:
		p.advance()
		return &StringExpr{Value: tok.Text}, nil
	case TokenNumber:
		p.advance()
		return &NumberExpr{Text: tok.Text}, nil
	default:
		return nil, errors.NewParse("string or number literal", describe(tok), tok.Pos)
	}
}
