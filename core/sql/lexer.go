package sql

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
)

// Lexer scans a statement byte by byte.
type Lexer struct {
	input   string
	pos     int  // position of ch
	readPos int  // next position to read
	ch      byte // current byte, 0 at end of input
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// NextToken returns the next token. After the input is exhausted it
// keeps returning EOF tokens.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	tok := Token{Pos: l.pos}
	switch l.ch {
	case 0:
		tok.Kind = TokenEOF
		return tok, nil
	case '*':
		tok.Kind, tok.Text = TokenStar, "*"
	case ',':
		tok.Kind, tok.Text = TokenComma, ","
	case '=':
		tok.Kind, tok.Text = TokenEq, "="
	case '(':
		tok.Kind, tok.Text = TokenLParen, "("
	case ')':
		tok.Kind, tok.Text = TokenRParen, ")"
	case ';':
		tok.Kind, tok.Text = TokenSemi, ";"
	case '\'':
		return l.readString()
	default:
		if isDigit(l.ch) {
			return l.readNumber(), nil
		}
		if isIdentStart(l.ch) {
			return l.readIdentifier(), nil
		}
		return Token{}, errors.NewParse("token", fmt.Sprintf("%q", string(l.ch)), l.pos)
	}
	l.readChar()
	return tok, nil
}

// readString scans a single-quoted literal. A doubled quote inside the
// literal stands for one quote character.
func (l *Lexer) readString() (Token, error) {
	start := l.pos
	l.readChar() // opening quote

	var value strings.Builder
	for {
		switch {
		case l.ch == 0:
			return Token{}, errors.NewUnterminated(start)
		case l.ch == '\'':
			if l.readPos < len(l.input) && l.input[l.readPos] == '\'' {
				value.WriteByte('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar() // closing quote
			return Token{Kind: TokenString, Text: value.String(), Pos: start}, nil
		default:
			value.WriteByte(l.ch)
			l.readChar()
		}
	}
}

// readNumber scans an integer or decimal literal.
func (l *Lexer) readNumber() Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && l.readPos < len(l.input) && isDigit(l.input[l.readPos]) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return Token{Kind: TokenNumber, Text: l.input[start:l.pos], Pos: start}
}

func (l *Lexer) readIdentifier() Token {
	start := l.pos
	for isIdentStart(l.ch) || isDigit(l.ch) || l.ch == '$' {
		l.readChar()
	}
	text := l.input[start:l.pos]
	return Token{Kind: lookupKeyword(text), Text: text, Pos: start}
}

// lookupKeyword maps the keywords of the supported grammar; everything
// else is an identifier. Keywords are case-insensitive.
func lookupKeyword(ident string) TokenKind {
	switch strings.ToUpper(ident) {
	case "SELECT":
		return TokenSelect
	case "FROM":
		return TokenFrom
	case "WHERE":
		return TokenWhere
	default:
		return TokenIdent
	}
}

func isIdentStart(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// Tokenize scans the whole input, ending the slice with an EOF token.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	l := NewLexer(input)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}
