package extractor

import (
	"bytes"
	"strconv"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokName
	tokString
	tokKeyword
	tokArrayStart
	tokArrayEnd
	tokDictStart
	tokDictEnd
)

type token struct {
	kind tokenKind
	text string
	num  float64
}

// lexer splits a content stream into operands and operators. It only understands as much
// syntax as is needed to keep operands and operators aligned.
type lexer struct {
	data []byte
	pos  int
}

func isWhitespace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isWhitespace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) next() token {
	l.skipWhitespaceAndComments()
	if l.pos >= len(l.data) {
		return token{kind: tokEOF}
	}

	c := l.data[l.pos]
	switch c {
	case '/':
		l.pos++
		return token{kind: tokName, text: l.regular()}
	case '(':
		l.pos++
		return token{kind: tokString, text: l.literalString()}
	case '<':
		if l.peek(1) == '<' {
			l.pos += 2
			return token{kind: tokDictStart}
		}
		l.pos++
		start := l.pos
		for l.pos < len(l.data) && l.data[l.pos] != '>' {
			l.pos++
		}
		text := string(l.data[start:l.pos])
		l.pos++
		return token{kind: tokString, text: text}
	case '>':
		if l.peek(1) == '>' {
			l.pos += 2
			return token{kind: tokDictEnd}
		}
		l.pos++
		return l.next()
	case '[':
		l.pos++
		return token{kind: tokArrayStart}
	case ']':
		l.pos++
		return token{kind: tokArrayEnd}
	case ')', '{', '}':
		l.pos++
		return l.next()
	}

	word := l.regular()
	if n, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, num: n, text: word}
	}
	return token{kind: tokKeyword, text: word}
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset < len(l.data) {
		return l.data[l.pos+offset]
	}
	return 0
}

// regular reads a run of regular characters.
func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && !isWhitespace(l.data[l.pos]) && !isDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literalString reads up to the balancing ')'. Escapes are skipped, not decoded.
func (l *lexer) literalString() string {
	start := l.pos
	depth := 1
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				text := string(l.data[start:l.pos])
				l.pos++
				return text
			}
		}
		l.pos++
	}
	return string(l.data[start:])
}

// skipInlineImageData advances past the binary data of an inline image, which starts one
// whitespace byte after ID and ends at an EI keyword surrounded by whitespace.
func (l *lexer) skipInlineImageData() {
	if l.pos < len(l.data) && isWhitespace(l.data[l.pos]) {
		l.pos++
	}
	for {
		i := bytes.Index(l.data[l.pos:], []byte("EI"))
		if i < 0 {
			l.pos = len(l.data)
			return
		}
		at := l.pos + i
		end := at + len("EI")
		before := at == 0 || isWhitespace(l.data[at-1])
		after := end >= len(l.data) || isWhitespace(l.data[end]) || isDelimiter(l.data[end])
		if before && after {
			l.pos = end
			return
		}
		l.pos = at + 1
	}
}
