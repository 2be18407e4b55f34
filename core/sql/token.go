// Package sql tokenizes and parses the statement subset the engine
// executes: SELECT column lists with an optional single-equality WHERE
// clause.
package sql

// TokenKind identifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenSelect
	TokenFrom
	TokenWhere
	TokenIdent
	TokenString
	TokenNumber
	TokenStar
	TokenComma
	TokenEq
	TokenLParen
	TokenRParen
	TokenSemi
)

// String names the kind the way error messages quote it.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenSelect:
		return "SELECT"
	case TokenFrom:
		return "FROM"
	case TokenWhere:
		return "WHERE"
	case TokenIdent:
		return "identifier"
	case TokenString:
		return "string"
	case TokenNumber:
		return "number"
	case TokenStar:
		return "'*'"
	case TokenComma:
		return "','"
	case TokenEq:
		return "'='"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenSemi:
		return "';'"
	default:
		return "unknown"
	}
}

// Token is one lexical token. Text holds the literal spelling, except
// for strings where it holds the unescaped value.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int // byte offset in the input
}
