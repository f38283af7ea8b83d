package lexer

import (
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/libscript-lang/libscript/internal/token"
)

// source is a character reader with position tracking, mirroring the
// teacher's rune-at-a-time source reader but also tracking the byte
// offset of the current character (the fragment controller needs it
// for >> splitting; the teacher's language never required it).
type source struct {
	buf      []byte
	filename string

	offs     int // byte offset of the next rune to decode
	chOffset int // byte offset of s.ch itself
	line     uint32
	col      uint32

	ch   rune
	errh func(pos token.Pos, msg string)
}

func newSource(filename string, src io.Reader, errh func(pos token.Pos, msg string)) *source {
	s := &source{
		filename: filename,
		line:     1,
		ch:       -1,
		errh:     errh,
	}

	buf, err := io.ReadAll(src)
	if err != nil {
		s.error("error reading source: " + err.Error())
		return s
	}
	s.buf = buf
	s.nextch()
	return s
}

// nextch reads the next character, updating line/col/offset.
// Position (line, col, chOffset) always describes s.ch after return.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.chOffset = s.offs
	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
	s.offs += width
}

func (s *source) pos() token.Pos {
	return token.NewPos(s.filename, uint32(s.chOffset), s.line, s.col)
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.pos(), msg)
	}
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' ||
		r >= utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsMark(r))
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

func isOctalDigit(r rune) bool { return '0' <= r && r <= '7' }

func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }

func lower(r rune) rune { return ('a' - 'A') | r }

func isWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\r' || r == '\n' }
