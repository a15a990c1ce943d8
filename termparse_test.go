// termparse_test.go
package rayscript

import (
	"reflect"
	"strings"
	"testing"
)

func mustParseTerm(t *testing.T, src string) any {
	t.Helper()
	v, err := ParseTerm(src)
	if err != nil {
		t.Fatalf("ParseTerm(%q): %v", src, err)
	}
	return v
}

func wantTerm(t *testing.T, src string, want any) {
	t.Helper()
	got := mustParseTerm(t, src)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParseTerm(%q)\ngot:  %#v\nwant: %#v", src, got, want)
	}
}

func Test_Term_Scalars(t *testing.T) {
	wantTerm(t, "foo", "foo")
	wantTerm(t, "'Elixir.Enum'", "Elixir.Enum")
	wantTerm(t, "42", int64(42))
	wantTerm(t, "-7", int64(-7))
	wantTerm(t, "3.14", 3.14)
	wantTerm(t, "-2.5e3", -2500.0)
	wantTerm(t, `"hi\nthere"`, "hi\nthere")
	wantTerm(t, "$a", int64('a'))
	wantTerm(t, `$\n`, int64('\n'))
}

func Test_Term_Tuples_And_Lists(t *testing.T) {
	wantTerm(t, "{}", []any{})
	wantTerm(t, "[]", []any{})
	wantTerm(t, "{foo,1}", []any{"foo", int64(1)})
	wantTerm(t, "[{foo,1},{bar,2}]", []any{
		[]any{"foo", int64(1)},
		[]any{"bar", int64(2)},
	})
	wantTerm(t, "{var,1,'X'}", []any{"var", int64(1), "X"})
}

func Test_Term_Comments_And_Whitespace(t *testing.T) {
	wantTerm(t, "% leading comment\n  {foo, % inline\n 1}", []any{"foo", int64(1)})
}

func Test_Term_Trailing_Period_Accepted(t *testing.T) {
	wantTerm(t, "{foo,1}.", []any{"foo", int64(1)})
}

func Test_ParseForms_Sequence(t *testing.T) {
	src := "{attribute,1,export,[{foo,1}]}.\n{eof,2}."
	got, err := ParseForms(src)
	if err != nil {
		t.Fatalf("ParseForms: %v", err)
	}
	want := []Form{
		{"attribute", int64(1), "export", []any{[]any{"foo", int64(1)}}},
		{"eof", int64(2)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("forms mismatch\ngot:  %#v\nwant: %#v", got, want)
	}
}

func Test_ParseForms_Rejects_NonTuple_TopLevel(t *testing.T) {
	_, err := ParseForms("[1,2].")
	if err == nil || !strings.Contains(err.Error(), "tuple") {
		t.Fatalf("expected top-level tuple error, got %v", err)
	}
}

func Test_ParseForms_Incomplete_Detection(t *testing.T) {
	incomplete := []string{
		"{attribute,1",       // unterminated tuple
		"{a,[{foo,1}",        // unterminated nested list
		`{attribute,1,"file`, // unterminated string
		"{foo,1}",            // missing final period
		"",                   // nothing yet
	}
	for _, src := range incomplete {
		_, err := ParseForms(src)
		if src == "" {
			if err != nil {
				t.Fatalf("empty input is a complete (empty) module, got %v", err)
			}
			continue
		}
		if err == nil || !IsIncomplete(err) {
			t.Fatalf("ParseForms(%q): want incomplete error, got %v", src, err)
		}
	}
}

func Test_ParseForms_Complete_Errors_Are_Not_Incomplete(t *testing.T) {
	cases := []string{
		"{foo,1)}.",   // stray ')'
		"[1,2].",      // list at top level
		"{a,[1|2]}.",  // improper list text
		"{foo,,1}.",   // missing element
	}
	for _, src := range cases {
		_, err := ParseForms(src)
		if err == nil {
			t.Fatalf("ParseForms(%q): expected error", src)
		}
		if IsIncomplete(err) {
			t.Fatalf("ParseForms(%q): error misreported as incomplete: %v", src, err)
		}
	}
}

func Test_Term_Error_Positions(t *testing.T) {
	// '}' right after the comma: a parse error on line 2.
	_, err := ParseForms("{foo,\n}.")
	perr, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("want *ParseError, got %T: %v", err, err)
	}
	if perr.Line != 2 {
		t.Fatalf("want error on line 2, got %d (%v)", perr.Line, perr)
	}

	// stray ')' on line 2: a lex error with the same coordinates.
	_, err = ParseForms("{foo,\n  )}.")
	lerr, ok := err.(*LexError)
	if !ok {
		t.Fatalf("want *LexError, got %T: %v", err, err)
	}
	if lerr.Line != 2 {
		t.Fatalf("want lex error on line 2, got %d (%v)", lerr.Line, lerr)
	}
}
