// termlex.go — lexer for textual Erlang terms.
//
// The upstream parser's interchange format is the text erl_parse/io:format
// print for abstract forms: nested tuples, lists, atoms, numbers and
// strings, each top-level form terminated by a period.
//
//	{attribute,1,export,[{foo,1}]}.
//	{function,2,foo,1,[{clause,2,[{var,2,'X'}],[],[...]}]}.
//
// The lexer is deliberately small: it covers exactly the term shapes that
// occur in printed abstract format (plus $c character literals, which cost
// nothing). % comments run to end of line. Errors carry 1-based line and
// 0-based column like the rest of the reader.
package rayscript

import (
	"fmt"
	"strconv"
	"strings"
)

type termTokenType int

const (
	tEOF termTokenType = iota
	tLCURLY
	tRCURLY
	tLSQUARE
	tRSQUARE
	tCOMMA
	tBAR
	tDOT
	tATOM
	tINTEGER
	tFLOAT
	tSTRING
)

type termToken struct {
	Type  termTokenType
	Text  string  // atom name / raw text
	Int   int64   // tINTEGER payload
	Float float64 // tFLOAT payload
	Line  int
	Col   int
}

// LexError is a lexical failure in term input. Incomplete marks errors that
// more input could repair (unterminated string/quoted atom), which the REPL
// uses to prompt for a continuation line.
type LexError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

type termLexer struct {
	src  string
	pos  int
	line int
	col  int
}

func newTermLexer(src string) *termLexer { return &termLexer{src: src, line: 1} }

func (lx *termLexer) errf(incomplete bool, format string, args ...any) *LexError {
	return &LexError{Line: lx.line, Col: lx.col, Msg: fmt.Sprintf(format, args...), Incomplete: incomplete}
}

func (lx *termLexer) peek() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *termLexer) advance() byte {
	c := lx.src[lx.pos]
	lx.pos++
	if c == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col++
	}
	return c
}

func (lx *termLexer) skipSpace() {
	for lx.pos < len(lx.src) {
		c := lx.peek()
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			lx.advance()
		case c == '%':
			for lx.pos < len(lx.src) && lx.peek() != '\n' {
				lx.advance()
			}
		default:
			return
		}
	}
}

// scan tokenizes the whole input.
func (lx *termLexer) scan() ([]termToken, error) {
	var toks []termToken
	for {
		lx.skipSpace()
		if lx.pos >= len(lx.src) {
			toks = append(toks, termToken{Type: tEOF, Line: lx.line, Col: lx.col})
			return toks, nil
		}
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
}

func (lx *termLexer) next() (termToken, error) {
	line, col := lx.line, lx.col
	c := lx.peek()

	switch c {
	case '{':
		lx.advance()
		return termToken{Type: tLCURLY, Line: line, Col: col}, nil
	case '}':
		lx.advance()
		return termToken{Type: tRCURLY, Line: line, Col: col}, nil
	case '[':
		lx.advance()
		return termToken{Type: tLSQUARE, Line: line, Col: col}, nil
	case ']':
		lx.advance()
		return termToken{Type: tRSQUARE, Line: line, Col: col}, nil
	case ',':
		lx.advance()
		return termToken{Type: tCOMMA, Line: line, Col: col}, nil
	case '|':
		lx.advance()
		return termToken{Type: tBAR, Line: line, Col: col}, nil
	case '.':
		lx.advance()
		return termToken{Type: tDOT, Line: line, Col: col}, nil
	case '"':
		return lx.scanString(line, col)
	case '\'':
		return lx.scanQuotedAtom(line, col)
	case '$':
		return lx.scanChar(line, col)
	}

	if c == '-' || isDigit(c) {
		return lx.scanNumber(line, col)
	}
	if isAtomStart(c) {
		return lx.scanAtom(line, col), nil
	}
	return termToken{}, lx.errf(false, "unexpected character %q", string(c))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isAtomStart is lenient: printed abstract format only contains lowercase
// atoms, but accepting any identifier start keeps hand-written input from
// failing on harmless things like Module names.
func isAtomStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAtomChar(c byte) bool {
	return isAtomStart(c) || isDigit(c) || c == '@'
}

func (lx *termLexer) scanAtom(line, col int) termToken {
	start := lx.pos
	for lx.pos < len(lx.src) && isAtomChar(lx.peek()) {
		lx.advance()
	}
	return termToken{Type: tATOM, Text: lx.src[start:lx.pos], Line: line, Col: col}
}

func (lx *termLexer) scanQuotedAtom(line, col int) (termToken, error) {
	lx.advance() // opening quote
	text, err := lx.scanEscaped('\'')
	if err != nil {
		return termToken{}, err
	}
	return termToken{Type: tATOM, Text: text, Line: line, Col: col}, nil
}

func (lx *termLexer) scanString(line, col int) (termToken, error) {
	lx.advance() // opening quote
	text, err := lx.scanEscaped('"')
	if err != nil {
		return termToken{}, err
	}
	return termToken{Type: tSTRING, Text: text, Line: line, Col: col}, nil
}

// scanEscaped consumes characters until the closing delimiter, decoding the
// escapes Erlang's writer produces.
func (lx *termLexer) scanEscaped(delim byte) (string, error) {
	var b strings.Builder
	for {
		if lx.pos >= len(lx.src) {
			return "", lx.errf(true, "unterminated %q", string(delim))
		}
		c := lx.advance()
		if c == delim {
			return b.String(), nil
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		if lx.pos >= len(lx.src) {
			return "", lx.errf(true, "unterminated escape")
		}
		e := lx.advance()
		switch e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '"', '\'':
			b.WriteByte(e)
		default:
			b.WriteByte(e)
		}
	}
}

func (lx *termLexer) scanChar(line, col int) (termToken, error) {
	lx.advance() // '$'
	if lx.pos >= len(lx.src) {
		return termToken{}, lx.errf(true, "unterminated character literal")
	}
	c := lx.advance()
	if c == '\\' {
		if lx.pos >= len(lx.src) {
			return termToken{}, lx.errf(true, "unterminated character escape")
		}
		e := lx.advance()
		switch e {
		case 'n':
			c = '\n'
		case 't':
			c = '\t'
		case 'r':
			c = '\r'
		case 's':
			c = ' '
		default:
			c = e
		}
	}
	return termToken{Type: tINTEGER, Int: int64(c), Line: line, Col: col}, nil
}

func (lx *termLexer) scanNumber(line, col int) (termToken, error) {
	start := lx.pos
	if lx.peek() == '-' {
		lx.advance()
		if !isDigit(lx.peek()) {
			return termToken{}, lx.errf(false, "'-' not followed by a digit")
		}
	}
	for lx.pos < len(lx.src) && isDigit(lx.peek()) {
		lx.advance()
	}

	isFloat := false
	// A '.' is part of the number only when a digit follows; otherwise it is
	// the form terminator.
	if lx.peek() == '.' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]) {
		isFloat = true
		lx.advance()
		for lx.pos < len(lx.src) && isDigit(lx.peek()) {
			lx.advance()
		}
	}
	if c := lx.peek(); c == 'e' || c == 'E' {
		markPos, markCol := lx.pos, lx.col
		lx.advance()
		if lx.peek() == '+' || lx.peek() == '-' {
			lx.advance()
		}
		if isDigit(lx.peek()) {
			isFloat = true
			for lx.pos < len(lx.src) && isDigit(lx.peek()) {
				lx.advance()
			}
		} else {
			lx.pos, lx.col = markPos, markCol // not an exponent after all
		}
	}

	text := lx.src[start:lx.pos]
	if isFloat {
		x, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return termToken{}, lx.errf(false, "bad float %q", text)
		}
		return termToken{Type: tFLOAT, Float: x, Line: line, Col: col}, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return termToken{}, lx.errf(false, "bad integer %q", text)
	}
	return termToken{Type: tINTEGER, Int: n, Line: line, Col: col}, nil
}
