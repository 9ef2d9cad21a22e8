// Package tokenizer extracts language-agnostic lexical features from file
// content for the statistical classifier.
//
// Tokens are words, punctuation, operator runs, SGML tags and attribute names
// and a synthetic "SHEBANG#!<interpreter>" token. Comments, string literals and
// numbers are skipped because they carry little information about the
// language a file is written in.
package tokenizer

import (
	"bytes"
	"iter"
	"slices"
	"unicode/utf8"
)

// ByteLimit is the number of leading bytes of content that are tokenized.
const ByteLimit = 100000

// ShebangPrefix marks the token synthesized from a shebang line.
const ShebangPrefix = "SHEBANG#!"

const maxOperatorLen = 3

// Tokens returns a lazy sequence over the tokens of content. The sequence can
// be ranged over any number of times; each pass re-scans content.
func Tokens(content []byte) iter.Seq[string] {
	if len(content) > ByteLimit {
		content = content[:ByteLimit]
	}

	return func(yield func(string) bool) {
		s := scanner{src: content}
		if bytes.HasPrefix(content, []byte("#!")) {
			if interp := Interpreter(content); interp != "" {
				if !yield(ShebangPrefix + interp) {
					return
				}
			}
			s.skipLine()
		}
		s.run(yield)
	}
}

// Tokenize collects Tokens into a slice. Empty or whitespace-only content
// yields nil.
func Tokenize(content []byte) []string {
	return slices.Collect(Tokens(content))
}

type scanner struct {
	src   []byte
	pos   int
	inTag bool
}

func (s *scanner) run(yield func(string) bool) {
	for s.pos < len(s.src) {
		tok, ok := s.next()
		if ok && !yield(tok) {
			return
		}
	}
}

// next advances past at least one byte and reports a token if one ended.
func (s *scanner) next() (string, bool) {
	if s.inTag {
		return s.nextInTag()
	}

	c := s.src[s.pos]
	switch {
	case isSpace(c):
		s.pos++
	case s.hasPrefix("/*"):
		s.skipPast("*/", 2)
	case s.hasPrefix("<!--"):
		s.skipPast("-->", 4)
	case s.hasPrefix("{-"):
		s.skipPast("-}", 2)
	case s.hasPrefix("(*"):
		s.skipPast("*)", 2)
	case s.hasPrefix(`"""`):
		s.skipPast(`"""`, 3)
	case s.hasPrefix("'''"):
		s.skipPast("'''", 3)
	case s.hasPrefix("//"), s.atLineComment():
		s.skipLine()
	case c == '"', c == '\'', c == '`':
		s.skipString(c)
	case isDigit(c):
		s.skipNumber()
	case c == '<' && s.atTag():
		return s.tag(), true
	case isWordStart(c), isSigil(c) && s.pos+1 < len(s.src) && isWordStart(s.src[s.pos+1]):
		return s.word(), true
	case isPunct(c):
		s.pos++
		return string(c), true
	case isOperator(c):
		return s.operator(), true
	default:
		_, size := utf8.DecodeRune(s.src[s.pos:])
		s.pos += size
	}
	return "", false
}

func (s *scanner) nextInTag() (string, bool) {
	c := s.src[s.pos]
	switch {
	case c == '>' || c == '\n':
		s.inTag = false
		s.pos++
	case c == '"' || c == '\'':
		s.skipString(c)
	case isWordStart(c):
		w := s.word()
		if s.pos < len(s.src) && s.src[s.pos] == '=' {
			s.pos++
			return w + "=", true
		}
		return w, true
	default:
		s.pos++
	}
	return "", false
}

func (s *scanner) hasPrefix(p string) bool {
	return bytes.HasPrefix(s.src[s.pos:], []byte(p))
}

// atLineComment matches "#", "%" and "--" comment leaders followed by
// whitespace or end of input.
func (s *scanner) atLineComment() bool {
	c := s.src[s.pos]
	width := 0
	switch {
	case c == '#' || c == '%':
		width = 1
	case s.hasPrefix("--"):
		width = 2
	default:
		return false
	}
	if s.pos+width >= len(s.src) {
		return true
	}
	return isSpace(s.src[s.pos+width])
}

// atTag reports whether the '<' at pos opens an SGML tag that closes on the
// same line.
func (s *scanner) atTag() bool {
	rest := s.src[s.pos+1:]
	if len(rest) == 0 {
		return false
	}
	switch {
	case isLetter(rest[0]):
	case (rest[0] == '/' || rest[0] == '!') && len(rest) > 1 && (isLetter(rest[1]) || rest[1] == '['):
	default:
		return false
	}
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return bytes.IndexByte(rest, '>') >= 0
}

func (s *scanner) tag() string {
	s.pos++ // '<'
	prefix := "<"
	if s.src[s.pos] == '/' {
		prefix = "</"
		s.pos++
	}
	start := s.pos
	for s.pos < len(s.src) && !isTagNameEnd(s.src[s.pos]) {
		s.pos++
	}
	s.inTag = true
	return prefix + string(s.src[start:s.pos]) + ">"
}

func (s *scanner) word() string {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) && isWordChar(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) operator() string {
	start := s.pos
	for s.pos < len(s.src) && s.pos-start < maxOperatorLen && isOperator(s.src[s.pos]) {
		if s.pos > start && (s.hasPrefix("//") || s.hasPrefix("/*")) {
			break
		}
		s.pos++
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) skipPast(end string, openLen int) {
	s.pos += openLen
	idx := bytes.Index(s.src[s.pos:], []byte(end))
	if idx < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += idx + len(end)
}

func (s *scanner) skipLine() {
	idx := bytes.IndexByte(s.src[s.pos:], '\n')
	if idx < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos += idx + 1
}

// skipString skips a quoted literal. Literals end at the matching quote or
// at the end of the line.
func (s *scanner) skipString(quote byte) {
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case quote:
			s.pos++
			return
		case '\n':
			return
		}
		s.pos++
	}
	s.pos = min(s.pos, len(s.src))
}

func (s *scanner) skipNumber() {
	for s.pos < len(s.src) && (isWordChar(s.src[s.pos]) || s.src[s.pos] == '.') {
		s.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isWordStart(c byte) bool { return isLetter(c) || c == '_' }

func isWordChar(c byte) bool { return isWordStart(c) || isDigit(c) }

func isSigil(c byte) bool { return c == '#' || c == '@' || c == '$' }

func isPunct(c byte) bool {
	switch c {
	case ';', '{', '}', '(', ')', '[', ']':
		return true
	}
	return false
}

func isOperator(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '%', '&', '|', '^', '!', '=', '<', '>', ':', '.', ',', '~', '?', '#', '\\', '@', '$':
		return true
	}
	return false
}

func isTagNameEnd(c byte) bool {
	return isSpace(c) || c == '>' || c == '<' || c == '=' || c == '/' || c == '"' || c == '\''
}
