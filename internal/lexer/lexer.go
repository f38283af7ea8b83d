// Package lexer turns libscript source text into a stream of tagged
// tokens with source positions (spec.md C1).
package lexer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/libscript-lang/libscript/internal/token"
)

// Lexer performs lexical analysis on libscript source code.
type Lexer struct {
	source

	tok token.Token

	errh   func(pos token.Pos, msg string)
	litBuf strings.Builder
}

// New creates a Lexer reading from src. errh, if non-nil, is called for
// every lexical error with the offending position.
func New(filename string, src io.Reader, errh func(pos token.Pos, msg string)) *Lexer {
	l := &Lexer{errh: errh}
	l.source = *newSource(filename, src, errh)
	return l
}

// Next scans and returns the next token.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.pos()

	switch {
	case l.ch < 0:
		l.tok = token.Token{Kind: token.EOF, Pos: pos}

	case isLetter(l.ch):
		l.scanIdent(pos)

	case isDigit(l.ch):
		l.scanNumber(pos)
		l.maybeUserLiteral(pos)

	case l.ch == '"':
		l.scanString(pos)
		l.maybeUserLiteral(pos)

	case isOperatorStart(l.ch):
		l.scanOperator(pos)

	default:
		l.error(fmt.Sprintf("unexpected character %q", l.ch))
		l.nextch()
		return l.Next()
	}

	return l.tok
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		for isWhitespace(l.ch) {
			l.nextch()
		}
		if l.ch == '/' {
			// Peek without consuming by scanning ahead manually; the
			// source reader only exposes the current rune, so commit
			// to consuming '/' and back out if it wasn't a comment.
			start := *l
			l.nextch()
			switch l.ch {
			case '/':
				l.nextch()
				for l.ch != '\n' && l.ch >= 0 {
					l.nextch()
				}
				continue
			case '*':
				l.nextch()
				l.skipBlockComment(start.pos())
				continue
			default:
				*l = start
				return
			}
		}
		return
	}
}

func (l *Lexer) skipBlockComment(start token.Pos) {
	for {
		if l.ch < 0 {
			l.errorAt(start, "unterminated block comment")
			return
		}
		if l.ch == '*' {
			l.nextch()
			if l.ch == '/' {
				l.nextch()
				return
			}
			continue
		}
		l.nextch()
	}
}

func (l *Lexer) startLit() { l.litBuf.Reset() }

func (l *Lexer) scanIdent(pos token.Pos) {
	l.startLit()
	for isLetter(l.ch) || isDigit(l.ch) {
		l.litBuf.WriteRune(l.ch)
		l.nextch()
	}
	text := normalizeIdent(l.litBuf.String())
	l.tok = token.Token{Kind: token.Lookup(text), Text: text, Pos: pos}
}

// normalizeIdent applies Unicode NFC normalization so that visually and
// semantically identical identifiers spelled with different code-point
// sequences compare equal once interned by the symbol table.
func normalizeIdent(s string) string {
	return norm.NFC.String(s)
}

func (l *Lexer) scanNumber(pos token.Pos) {
	l.startLit()
	kind := token.IntLit

	writeDigits := func(pred func(rune) bool) {
		for pred(l.ch) {
			l.litBuf.WriteRune(l.ch)
			l.nextch()
		}
	}

	if l.ch == '0' {
		l.litBuf.WriteRune(l.ch)
		l.nextch()
		switch lower(l.ch) {
		case 'x':
			l.litBuf.WriteRune(l.ch)
			l.nextch()
			if !isHexDigit(l.ch) {
				l.error("invalid hex digit")
			}
			writeDigits(isHexDigit)
		case 'o':
			l.litBuf.WriteRune(l.ch)
			l.nextch()
			if !isOctalDigit(l.ch) {
				l.error("invalid octal digit")
			}
			writeDigits(isOctalDigit)
		case 'b':
			l.litBuf.WriteRune(l.ch)
			l.nextch()
			if !isBinaryDigit(l.ch) {
				l.error("invalid binary digit")
			}
			writeDigits(isBinaryDigit)
			if isDigit(l.ch) {
				l.error("invalid binary digit")
			}
		default:
			if isOctalDigit(l.ch) {
				writeDigits(isOctalDigit)
				if isDigit(l.ch) {
					// 08, 09 etc: not valid octal; fall through to decimal/float handling.
					writeDigits(isDigit)
					kind = l.scanFraction(&kind)
				}
			} else if isDigit(l.ch) {
				writeDigits(isDigit)
				kind = l.scanFraction(&kind)
			} else {
				kind = l.scanFraction(&kind)
			}
		}
	} else {
		writeDigits(isDigit)
		kind = l.scanFraction(&kind)
	}

	if lower(l.ch) == 'f' && kind == token.FloatLit {
		l.litBuf.WriteRune(l.ch)
		l.nextch()
	}

	l.tok = token.Token{Kind: kind, Text: l.litBuf.String(), Pos: pos}
}

// scanFraction scans an optional `.digits` and/or exponent, returning
// FloatLit if either was present, else the kind passed in.
func (l *Lexer) scanFraction(kind *token.Kind) token.Kind {
	result := *kind
	if l.ch == '.' {
		result = token.FloatLit
		l.litBuf.WriteRune(l.ch)
		l.nextch()
		for isDigit(l.ch) {
			l.litBuf.WriteRune(l.ch)
			l.nextch()
		}
	}
	if lower(l.ch) == 'e' {
		result = token.FloatLit
		l.litBuf.WriteRune(l.ch)
		l.nextch()
		if l.ch == '+' || l.ch == '-' {
			l.litBuf.WriteRune(l.ch)
			l.nextch()
		}
		if !isDigit(l.ch) {
			l.error("exponent has no digits")
		}
		for isDigit(l.ch) {
			l.litBuf.WriteRune(l.ch)
			l.nextch()
		}
	}
	return result
}

func (l *Lexer) scanString(pos token.Pos) {
	l.nextch() // opening quote
	var b strings.Builder
	for {
		switch {
		case l.ch == '"':
			l.nextch()
			l.tok = token.Token{Kind: token.StringLit, Text: normalizeIdent(b.String()), Pos: pos}
			return
		case l.ch == '\\':
			l.nextch()
			switch l.ch {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				l.error(fmt.Sprintf("unknown escape sequence \\%c", l.ch))
			}
			l.nextch()
		case l.ch == '\n' || l.ch < 0:
			l.errorAt(pos, "string not terminated")
			l.tok = token.Token{Kind: token.StringLit, Text: b.String(), Pos: pos}
			return
		default:
			b.WriteRune(l.ch)
			l.nextch()
		}
	}
}

// maybeUserLiteral extends a just-scanned numeric or string literal into
// a user-defined literal when an identifier-start character follows with
// no intervening whitespace (spec.md §4.1).
func (l *Lexer) maybeUserLiteral(pos token.Pos) {
	if !isLetter(l.ch) {
		return
	}
	var suffix strings.Builder
	for isLetter(l.ch) || isDigit(l.ch) {
		suffix.WriteRune(l.ch)
		l.nextch()
	}
	l.tok = token.Token{
		Kind: token.UserLit,
		Text: l.tok.Text + "\x00" + normalizeIdent(suffix.String()),
		Pos:  pos,
	}
}

func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '&', '|', '^', '<', '>', '=', '!', '~',
		':', '(', ')', '[', ']', '{', '}', ',', ';', '.', '?':
		return true
	}
	return false
}

func (l *Lexer) scanOperator(pos token.Pos) {
	ch := l.ch
	l.nextch()

	two := func(next rune, k2 token.Kind, k1 token.Kind) token.Kind {
		if l.ch == next {
			l.nextch()
			return k2
		}
		return k1
	}

	var k token.Kind
	switch ch {
	case '+':
		if l.ch == '+' {
			l.nextch()
			k = token.Inc
		} else {
			k = two('=', token.AddAssign, token.Add)
		}
	case '-':
		if l.ch == '-' {
			l.nextch()
			k = token.Dec
		} else if l.ch == '>' {
			l.nextch()
			k = token.Arrow
		} else {
			k = two('=', token.SubAssign, token.Sub)
		}
	case '*':
		k = two('=', token.MulAssign, token.Mul)
	case '/':
		k = two('=', token.DivAssign, token.Div)
	case '%':
		k = two('=', token.RemAssign, token.Rem)
	case '&':
		if l.ch == '&' {
			l.nextch()
			k = token.AndAnd
		} else {
			k = two('=', token.AndAssign, token.And)
		}
	case '|':
		if l.ch == '|' {
			l.nextch()
			k = token.OrOr
		} else {
			k = two('=', token.OrAssign, token.Or)
		}
	case '^':
		k = two('=', token.XorAssign, token.Xor)
	case '~':
		k = token.Tilde
	case '<':
		switch {
		case l.ch == '=':
			l.nextch()
			k = token.Leq
		case l.ch == '<':
			l.nextch()
			k = two('=', token.ShlAssign, token.Shl)
		default:
			k = token.Lss
		}
	case '>':
		// Scans '>>' greedily as Shr, matching the shift-operator case and
		// '<'/'<<' above; the parser's fragment controller
		// (internal/fragment) is the place that un-splits a Shr back into
		// two Gtr tokens when it closes a nested template-argument list
		// instead.
		switch {
		case l.ch == '=':
			l.nextch()
			k = token.Geq
		case l.ch == '>':
			l.nextch()
			k = two('=', token.ShrAssign, token.Shr)
		default:
			k = token.Gtr
		}
	case '=':
		k = two('=', token.Eql, token.Assign)
	case '!':
		k = two('=', token.Neq, token.Not)
	case ':':
		k = two(':', token.ColonColon, token.Colon)
	case '(':
		k = token.Lparen
	case ')':
		k = token.Rparen
	case '[':
		k = token.Lbrack
	case ']':
		k = token.Rbrack
	case '{':
		k = token.Lbrace
	case '}':
		k = token.Rbrace
	case ',':
		k = token.Comma
	case ';':
		k = token.Semi
	case '?':
		k = token.Question
	case '.':
		if l.ch == '.' {
			l.nextch()
			if l.ch == '.' {
				l.nextch()
				k = token.Ellipsis
			} else {
				l.error("unexpected '..'")
				k = token.Dot
			}
		} else {
			k = token.Dot
		}
	}

	l.tok = token.Token{Kind: k, Text: k.String(), Pos: pos}
}

func (l *Lexer) error(msg string)                      { l.errorAt(l.pos(), msg) }
func (l *Lexer) errorAt(pos token.Pos, msg string) {
	if l.errh != nil {
		l.errh(pos, msg)
	}
}

// All tokenizes the entire source, stopping after (and including) EOF.
// Used by the fragment controller, which needs random access into the
// full token stream rather than the lexer's pull-one-at-a-time API.
func All(filename string, src io.Reader, errh func(pos token.Pos, msg string)) []token.Token {
	l := New(filename, src, errh)
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}
