// termparse.go — parser for textual Erlang terms.
//
// Builds the Form encoding (forms.go) from the token stream of termlex.go:
//
//	tuples  → Form ([]any)
//	lists   → []any
//	atoms   → string
//	numbers → int64 / float64
//	strings → string
//
// PUBLIC API
//
//	ParseForms(src) ([]Form, error)   — a whole module: period-terminated
//	                                    tuples, each a top-level form.
//	ParseTerm(src)  (any, error)      — one term (trailing period optional).
//	IsIncomplete(err) bool            — true when more input could repair
//	                                    the error; drives REPL continuation.
//
// Tuples and lists share the []any encoding on purpose: in abstract format
// every tuple is a tagged form and every plain list sits in a position
// where a list is expected, so no reader ever needs to tell them apart.
package rayscript

import "fmt"

// ParseError is a structural failure in term input.
type ParseError struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d: %s", e.Line, e.Col+1, e.Msg)
}

// IsIncomplete reports whether err is a lex or parse error that more input
// could repair (unterminated string, missing closer, missing final period).
func IsIncomplete(err error) bool {
	switch e := err.(type) {
	case *LexError:
		return e.Incomplete
	case *ParseError:
		return e.Incomplete
	}
	return false
}

// ParseForms parses a sequence of period-terminated top-level forms.
func ParseForms(src string) ([]Form, error) {
	p, err := newTermParser(src)
	if err != nil {
		return nil, err
	}
	var forms []Form
	for p.peek().Type != tEOF {
		// Tuples and lists share the []any encoding, so the tuple requirement
		// has to be checked on the opening token, not the parsed value.
		if tok := p.peek(); tok.Type != tLCURLY {
			return nil, p.errAt(tok, false, "top-level form must be a tuple")
		}
		term, err := p.term()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tDOT, "'.' after top-level form"); err != nil {
			return nil, err
		}
		forms = append(forms, term.(Form))
	}
	return forms, nil
}

// ParseTerm parses exactly one term; a trailing period is accepted.
func ParseTerm(src string) (any, error) {
	p, err := newTermParser(src)
	if err != nil {
		return nil, err
	}
	term, err := p.term()
	if err != nil {
		return nil, err
	}
	if p.peek().Type == tDOT {
		p.advance()
	}
	if tok := p.peek(); tok.Type != tEOF {
		return nil, p.errAt(tok, false, "trailing input after term")
	}
	return term, nil
}

type termParser struct {
	toks []termToken
	pos  int
}

func newTermParser(src string) (*termParser, error) {
	toks, err := newTermLexer(src).scan()
	if err != nil {
		return nil, err
	}
	return &termParser{toks: toks}, nil
}

func (p *termParser) peek() termToken { return p.toks[p.pos] }

func (p *termParser) advance() termToken {
	tok := p.toks[p.pos]
	if tok.Type != tEOF {
		p.pos++
	}
	return tok
}

func (p *termParser) errAt(tok termToken, incomplete bool, format string, args ...any) *ParseError {
	return &ParseError{
		Line:       tok.Line,
		Col:        tok.Col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: incomplete || tok.Type == tEOF,
	}
}

func (p *termParser) expect(tt termTokenType, what string) error {
	if tok := p.peek(); tok.Type != tt {
		return p.errAt(tok, false, "expected %s", what)
	}
	p.advance()
	return nil
}

func (p *termParser) term() (any, error) {
	tok := p.peek()
	switch tok.Type {
	case tATOM:
		p.advance()
		return tok.Text, nil
	case tSTRING:
		p.advance()
		return tok.Text, nil
	case tINTEGER:
		p.advance()
		return tok.Int, nil
	case tFLOAT:
		p.advance()
		return tok.Float, nil
	case tLCURLY:
		p.advance()
		return p.tuple()
	case tLSQUARE:
		p.advance()
		return p.list()
	case tEOF:
		return nil, p.errAt(tok, true, "unexpected end of input")
	}
	return nil, p.errAt(tok, false, "unexpected token")
}

func (p *termParser) tuple() (any, error) {
	elems := []any{}
	if p.peek().Type == tRCURLY {
		p.advance()
		return elems, nil
	}
	for {
		e, err := p.term()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		switch tok := p.peek(); tok.Type {
		case tCOMMA:
			p.advance()
		case tRCURLY:
			p.advance()
			return elems, nil
		case tEOF:
			return nil, p.errAt(tok, true, "unterminated tuple")
		default:
			return nil, p.errAt(tok, false, "expected ',' or '}' in tuple")
		}
	}
}

func (p *termParser) list() (any, error) {
	elems := []any{}
	if p.peek().Type == tRSQUARE {
		p.advance()
		return elems, nil
	}
	for {
		e, err := p.term()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		switch tok := p.peek(); tok.Type {
		case tCOMMA:
			p.advance()
		case tRSQUARE:
			p.advance()
			return elems, nil
		case tBAR:
			// Printed abstract format never contains improper list literals
			// (they appear as cons forms), so reject rather than guess.
			return nil, p.errAt(tok, false, "improper list syntax is not supported in term input")
		case tEOF:
			return nil, p.errAt(tok, true, "unterminated list")
		default:
			return nil, p.errAt(tok, false, "expected ',' or ']' in list")
		}
	}
}
