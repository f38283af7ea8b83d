package fragment

import (
	"testing"

	"github.com/libscript-lang/libscript/internal/token"
)

func toks(kinds ...token.Kind) []token.Token {
	ts := make([]token.Token, len(kinds))
	for i, k := range kinds {
		ts[i] = token.Token{Kind: k}
	}
	return ts
}

func TestListFragmentStopsAtComma(t *testing.T) {
	cur := NewCursor(toks(token.IntLit, token.Comma, token.IntLit, token.Rparen, token.EOF))
	root := NewRoot(cur)
	lst := root.List(token.Rparen)

	if lst.Done() {
		t.Fatal("list should not be done at the first element")
	}
	lst.Advance()
	if !lst.Done() {
		t.Fatal("list should be done at the comma")
	}
	if !lst.ConsumeComma() {
		t.Fatal("expected ConsumeComma to advance past the comma")
	}
	if lst.Done() {
		t.Fatal("list should not be done after the comma, at the second element")
	}
	lst.Advance()
	if !lst.Done() {
		t.Fatal("list should be done at the closing paren")
	}
}

func TestTemplateArgsSplitsShrAcrossTwoLevels(t *testing.T) {
	// Array<Array<int>>: the inner TemplateArgs fragment must consume
	// one '>' off the trailing Shr token, leaving the outer fragment
	// the other '>' at the same token index.
	cur := NewCursor(toks(token.Ident, token.Lss, token.KwInt, token.Shr, token.EOF))
	root := NewRoot(cur)

	cur.advance() // Ident
	cur.advance() // Lss

	outer := root.TemplateArgs()
	inner := outer.TemplateArgs()

	inner.Advance() // KwInt

	if inner.Peek().Kind != token.Gtr {
		t.Fatalf("inner fragment should see a virtual '>' for the Shr token, got %v", inner.Peek().Kind)
	}
	if !inner.Done() {
		t.Fatal("inner template-args fragment should be done at the split '>'")
	}
	inner.CloseTemplateArgs()

	if !outer.Done() {
		t.Fatal("outer fragment should now see its own '>' at the same token index")
	}
	if outer.Peek().Kind != token.Gtr {
		t.Fatalf("outer Peek() = %v, want Gtr", outer.Peek().Kind)
	}
	outer.CloseTemplateArgs()

	if cur.peek().Kind != token.EOF {
		t.Fatalf("after both closes the cursor should have advanced past the '>>' to EOF, got %v", cur.peek().Kind)
	}
}

func TestTemplateArgsSingleGtrNoSplit(t *testing.T) {
	cur := NewCursor(toks(token.KwInt, token.Gtr, token.EOF))
	root := NewRoot(cur)
	args := root.TemplateArgs()

	args.Advance()
	if !args.Done() {
		t.Fatal("should be done at the lone '>'")
	}
	closed := args.CloseTemplateArgs()
	if closed.Kind != token.Gtr {
		t.Errorf("CloseTemplateArgs() = %v, want Gtr", closed.Kind)
	}
	if cur.peek().Kind != token.EOF {
		t.Errorf("expected cursor past the '>' at EOF, got %v", cur.peek().Kind)
	}
}

func TestMarkAndReset(t *testing.T) {
	cur := NewCursor(toks(token.IntLit, token.Semi, token.EOF))
	root := NewRoot(cur)

	mark := root.Mark()
	root.Advance()
	root.Advance()
	if root.Peek().Kind != token.EOF {
		t.Fatalf("expected EOF after consuming both tokens, got %v", root.Peek().Kind)
	}
	root.Reset(mark)
	if root.Peek().Kind != token.IntLit {
		t.Fatalf("expected IntLit after reset, got %v", root.Peek().Kind)
	}
}

func TestSentinelFragmentDoneAtTerminatorOrEOF(t *testing.T) {
	cur := NewCursor(toks(token.IntLit, token.Rbrace, token.EOF))
	root := NewRoot(cur)
	sub := root.Sub(token.Rbrace)

	if sub.Done() {
		t.Fatal("should not be done before the terminator")
	}
	sub.Advance()
	if !sub.Done() {
		t.Fatal("should be done at the terminator")
	}
}
