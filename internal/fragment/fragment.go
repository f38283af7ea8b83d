// Package fragment implements bounded views over a pre-scanned token
// stream (spec.md C2). Parsing proceeds inside a stack of fragments,
// each with a terminator known to its caller in advance; a fragment
// never owns the stream, only a cursor shared with its parent.
package fragment

import "github.com/libscript-lang/libscript/internal/token"

// Cursor is the shared, mutable read position into a token stream. All
// fragments derived from the same stream share one Cursor so that a
// child fragment's consumption is immediately visible to its parent.
type Cursor struct {
	toks []token.Token
	pos  int
}

// NewCursor wraps a fully-scanned token slice (see lexer.All).
func NewCursor(toks []token.Token) *Cursor {
	return &Cursor{toks: toks}
}

func (c *Cursor) peek() token.Token {
	if c.pos >= len(c.toks) {
		return c.toks[len(c.toks)-1] // EOF
	}
	return c.toks[c.pos]
}

func (c *Cursor) peekAt(offset int) token.Token {
	i := c.pos + offset
	if i >= len(c.toks) {
		return c.toks[len(c.toks)-1]
	}
	return c.toks[i]
}

func (c *Cursor) advance() token.Token {
	t := c.peek()
	if c.pos < len(c.toks)-1 {
		c.pos++
	}
	return t
}

// Mark and Reset support the parser's rewind-on-failed-speculation need
// (declaration detection, lambda-vs-array disambiguation).
func (c *Cursor) Mark() int       { return c.pos }
func (c *Cursor) Reset(mark int)  { c.pos = mark }

// splitState records, per Cursor position, that a '>>' token at that
// position has already yielded its first virtual '>' to an inner
// template-argument fragment and still owes its second '>' to the
// enclosing one. Keyed by token index rather than stored on the token
// itself, since tokens are shared read-only across all fragments.
type splitState struct {
	pending map[int]token.Token // index -> synthetic remaining '>' token
}

// Kind distinguishes the three fragment varieties named in spec.md §4.2.
type Kind int

const (
	Sentinel Kind = iota
	List
	TemplateArgs
)

// Fragment is a bounded view into a shared token Cursor. It is a value
// type: fragments compose strictly LIFO on the Go call stack, exactly
// mirroring the parser's own recursive-descent call structure.
type Fragment struct {
	kind     Kind
	cur      *Cursor
	split    *splitState // shared across the whole fragment stack of one parse
	sentinel token.Kind  // for Sentinel fragments: the terminating token kind
	listEnd  token.Kind  // for List fragments: the enclosing delimiter that also ends the list
}

// NewRoot creates the outermost fragment over a cursor; it has no
// sentinel of its own and is only ever released when the parse is done.
func NewRoot(cur *Cursor) *Fragment {
	return &Fragment{kind: Sentinel, cur: cur, split: &splitState{pending: map[int]token.Token{}}, sentinel: token.EOF}
}

// Sub opens a sentinel fragment nested inside f, terminated by term
// (a matching ')', ']', '}', or ';').
func (f *Fragment) Sub(term token.Kind) *Fragment {
	return &Fragment{kind: Sentinel, cur: f.cur, split: f.split, sentinel: term}
}

// List opens a list fragment: it ends at the next top-level comma, at
// end (the enclosing delimiter, e.g. ')' for a call's argument list),
// or at EOF, whichever comes first.
func (f *Fragment) List(end token.Kind) *Fragment {
	return &Fragment{kind: List, cur: f.cur, split: f.split, listEnd: end}
}

// TemplateArgs opens a template-argument-list fragment, which ends at a
// lone '>' or at a '>>' (handled via the split state below).
func (f *Fragment) TemplateArgs() *Fragment {
	return &Fragment{kind: TemplateArgs, cur: f.cur, split: f.split}
}

// Peek returns the next token without consuming it.
func (f *Fragment) Peek() token.Token { return f.effective(f.cur.peek()) }

// PeekAt returns the token `offset` positions ahead without consuming.
func (f *Fragment) PeekAt(offset int) token.Token { return f.cur.peekAt(offset) }

// Done reports whether the fragment has reached its terminator.
func (f *Fragment) Done() bool {
	t := f.effective(f.cur.peek())
	switch f.kind {
	case Sentinel:
		return t.Kind == f.sentinel || t.Kind == token.EOF
	case List:
		return t.Kind == token.Comma || t.Kind == f.listEnd || t.Kind == token.EOF
	case TemplateArgs:
		return t.Kind == token.Gtr || t.Kind == token.Shr || t.Kind == token.EOF
	}
	return true
}

// Advance consumes and returns the next token, honoring any pending
// '>>' split registered by a nested template-argument fragment.
func (f *Fragment) Advance() token.Token {
	idx := f.cur.pos
	if pending, ok := f.split.pending[idx]; ok {
		delete(f.split.pending, idx)
		f.cur.advance() // consume the real '>>' token underneath
		return pending
	}
	return f.cur.advance()
}

// effective rewrites a raw '>>' token into a single '>' when this
// fragment is a template-argument list that should only ever see one
// '>' worth of the split; it never mutates the cursor.
func (f *Fragment) effective(t token.Token) token.Token {
	if f.kind == TemplateArgs && t.Kind == token.Shr {
		return token.Token{Kind: token.Gtr, Text: ">", Pos: t.Pos}
	}
	return t
}

// CloseTemplateArgs consumes this template-argument fragment's closing
// '>' (or '>>'). A '>>' is split in place: this (inner) list consumes a
// synthetic '>' at the current offset, and registers the second,
// synthetic '>' for the enclosing list to pick up at the same token
// index the next time it calls Advance — implementing spec.md's
// "virtually split into two '>' tokens" rule without rewriting the
// underlying stream.
func (f *Fragment) CloseTemplateArgs() token.Token {
	idx := f.cur.pos
	if pending, ok := f.split.pending[idx]; ok {
		delete(f.split.pending, idx)
		f.cur.advance() // consume the real '>>' token underneath
		return pending
	}
	raw := f.cur.peek()
	switch raw.Kind {
	case token.Gtr:
		return f.cur.advance()
	case token.Shr:
		first := token.Token{Kind: token.Gtr, Text: ">", Pos: raw.Pos}
		second := token.Token{
			Kind: token.Gtr,
			Text: ">",
			Pos:  token.NewPos(raw.Pos.Filename(), raw.Pos.Offset()+1, raw.Pos.Line(), raw.Pos.Col()+1),
		}
		f.split.pending[idx] = second
		return first
	default:
		return raw
	}
}

// ConsumeSentinel consumes the fragment's terminator token (spec.md:
// "the fragment consumes the sentinel when the caller releases it").
func (f *Fragment) ConsumeSentinel() token.Token {
	return f.cur.advance()
}

// ConsumeComma advances past a top-level comma if one is present,
// reporting whether it did.
func (f *Fragment) ConsumeComma() bool {
	if f.cur.peek().Kind == token.Comma {
		f.cur.advance()
		return true
	}
	return false
}

// Mark/Reset delegate to the shared cursor for speculative parsing.
func (f *Fragment) Mark() int      { return f.cur.Mark() }
func (f *Fragment) Reset(mark int) { f.cur.Reset(mark) }
