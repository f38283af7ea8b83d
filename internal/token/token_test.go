package token

import (
	"strings"
	"testing"
)

func TestPosString(t *testing.T) {
	tests := []struct {
		name string
		pos  Pos
		want string
	}{
		{"with filename", NewPos("test.lsc", 0, 10, 5), "test.lsc:10:5"},
		{"without filename", NewPos("", 0, 10, 5), "10:5"},
		{"line 1 col 1", NewPos("main.lsc", 0, 1, 1), "main.lsc:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.want {
				t.Errorf("Pos.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	if !NewPos("f", 0, 1, 1).IsValid() {
		t.Error("expected valid position")
	}
	var zero Pos
	if zero.IsValid() {
		t.Error("expected zero Pos to be invalid")
	}
}

func TestPosAccessors(t *testing.T) {
	p := NewPos("f.lsc", 42, 3, 7)
	if p.Filename() != "f.lsc" || p.Offset() != 42 || p.Line() != 3 || p.Col() != 7 {
		t.Errorf("accessors mismatch: %+v", p)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{EOF, "EOF"},
		{Ident, "IDENT"},
		{Assign, "="},
		{ColonColon, "::"},
		{KwVirtual, "virtual"},
		{Shr, ">>"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestKindIsKeyword(t *testing.T) {
	if !KwClass.IsKeyword() {
		t.Error("KwClass should be a keyword")
	}
	if Ident.IsKeyword() {
		t.Error("Ident should not be a keyword")
	}
}

func TestKindIsLiteral(t *testing.T) {
	for _, k := range []Kind{IntLit, FloatLit, StringLit, UserLit} {
		if !k.IsLiteral() {
			t.Errorf("%v should be a literal kind", k)
		}
	}
	if Ident.IsLiteral() {
		t.Error("Ident should not be a literal kind")
	}
}

func TestKindIsAssignOp(t *testing.T) {
	for _, k := range []Kind{Assign, AddAssign, ShrAssign} {
		if !k.IsAssignOp() {
			t.Errorf("%v should be an assign op", k)
		}
	}
	if Eql.IsAssignOp() {
		t.Error("Eql should not be an assign op")
	}
}

func TestLookup(t *testing.T) {
	if Lookup("class") != KwClass {
		t.Error(`Lookup("class") should be KwClass`)
	}
	if Lookup("virtual") != KwVirtual {
		t.Error(`Lookup("virtual") should be KwVirtual`)
	}
	if Lookup("myVariable") != Ident {
		t.Error(`Lookup("myVariable") should be Ident`)
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Ident, Text: "x", Pos: NewPos("f.lsc", 0, 1, 1)}
	if got := tok.String(); !strings.Contains(got, "x") || !strings.Contains(got, "f.lsc:1:1") {
		t.Errorf("Token.String() = %q", got)
	}
	eof := Token{Kind: EOF, Pos: NewPos("f.lsc", 0, 2, 1)}
	if got := eof.String(); strings.Contains(got, `""`) {
		t.Errorf("EOF token should not quote empty text, got %q", got)
	}
}
