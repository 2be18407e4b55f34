package sql

import (
	"reflect"
	"testing"

	"github.com/FocuswithJustin/LiteWalk/core/errors"
)

func TestTokenizeSelect(t *testing.T) {
	input := "SELECT name, color FROM apples WHERE color = 'Light Green'"
	want := []Token{
		{TokenSelect, "SELECT", 0},
		{TokenIdent, "name", 7},
		{TokenComma, ",", 11},
		{TokenIdent, "color", 13},
		{TokenFrom, "FROM", 19},
		{TokenIdent, "apples", 24},
		{TokenWhere, "WHERE", 31},
		{TokenIdent, "color", 37},
		{TokenEq, "=", 43},
		{TokenString, "Light Green", 45},
		{TokenEOF, "", 58},
	}

	got, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}
}

func TestTokenizeKeywordsCaseInsensitive(t *testing.T) {
	got, err := Tokenize("select * from t where x = 'y'")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	kinds := make([]TokenKind, len(got))
	for i, tok := range got {
		kinds[i] = tok.Kind
	}
	want := []TokenKind{TokenSelect, TokenStar, TokenFrom, TokenIdent, TokenWhere, TokenIdent, TokenEq, TokenString, TokenEOF}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
	// Keyword spelling is preserved in the token text.
	if got[0].Text != "select" {
		t.Errorf("keyword text = %q, want %q", got[0].Text, "select")
	}
}

func TestTokenizeStringEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`'it''s'`, "it's"},
		{`''`, ""},
		{`''''`, "'"},
		{`'a''b''c'`, "a'b'c"},
	}
	for _, tt := range tests {
		got, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", tt.input, err)
		}
		if len(got) != 2 || got[0].Kind != TokenString || got[0].Text != tt.want {
			t.Errorf("Tokenize(%q) = %v, want one string %q", tt.input, got, tt.want)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := Tokenize("SELECT 'abc")
	if !errors.Is(err, errors.ErrUnterminated) {
		t.Fatalf("Tokenize() error = %v, want ErrUnterminated", err)
	}
	var ue *errors.UnterminatedError
	if !errors.As(err, &ue) {
		t.Fatal("error should carry UnterminatedError details")
	}
	if ue.Position != 7 {
		t.Errorf("Position = %d, want 7 (the opening quote)", ue.Position)
	}
}

func TestTokenizeIllegalByte(t *testing.T) {
	_, err := Tokenize("SELECT @ FROM t")
	if !errors.Is(err, errors.ErrParse) {
		t.Fatalf("Tokenize() error = %v, want ErrParse", err)
	}
	var pe *errors.ParseError
	if !errors.As(err, &pe) {
		t.Fatal("error should carry ParseError details")
	}
	if pe.Found != `"@"` || pe.Position != 7 {
		t.Errorf("ParseError = %+v", pe)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	got, err := Tokenize("42 3.14 007")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	texts := []string{}
	for _, tok := range got[:len(got)-1] {
		if tok.Kind != TokenNumber {
			t.Errorf("token %v is not a number", tok)
		}
		texts = append(texts, tok.Text)
	}
	want := []string{"42", "3.14", "007"}
	if !reflect.DeepEqual(texts, want) {
		t.Errorf("numbers = %v, want %v", texts, want)
	}
}

func TestTokenizeNumberThenIdent(t *testing.T) {
	got, err := Tokenize("12abc")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(got) != 3 || got[0].Kind != TokenNumber || got[0].Text != "12" ||
		got[1].Kind != TokenIdent || got[1].Text != "abc" {
		t.Errorf("Tokenize() = %v", got)
	}
}

func TestTokenizePunctuation(t *testing.T) {
	got, err := Tokenize("(*,=);")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	kinds := make([]TokenKind, len(got))
	for i, tok := range got {
		kinds[i] = tok.Kind
	}
	want := []TokenKind{TokenLParen, TokenStar, TokenComma, TokenEq, TokenRParen, TokenSemi, TokenEOF}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestTokenizeEmpty(t *testing.T) {
	got, err := Tokenize("   ")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(got) != 1 || got[0].Kind != TokenEOF {
		t.Errorf("Tokenize() = %v, want a single EOF", got)
	}
}
