// forms.go — the Erlang abstract-format input grammar.
//
// OVERVIEW
// --------
// The translator consumes abstract forms: the tagged tuples produced by an
// upstream parser/expander (erl_parse output after macro expansion). A form
// is encoded as a compact S-expression — []any whose first element is the
// tag string and whose second element is the source line. Everything after
// the line is tag-specific.
//
// **This list is the most important reference.**
//
// Top-level forms:
//
//	("attribute", L, "file", name)            // source file name
//	("attribute", L, "export", [(name, arity)...])
//	("function",  L, name, arity, [clause...])
//
// Clauses and patterns:
//
//	("clause", L, [pattern...], [[guardExpr...]...], [bodyExpr...])
//	("match",  L, left, right)                // pattern binding
//
// Literals and identifiers:
//
//	("var",     L, name)                      // 'X', '_' is the wildcard
//	("atom",    L, name)
//	("integer", L, int64)
//	("float",   L, float64)
//	("char",    L, int64)                     // codepoint
//	("string",  L, string)
//
// Structural values:
//
//	("tuple", L, [item...])
//	("nil",   L)                              // proper-list terminator
//	("cons",  L, head, tail)
//	("map",   L, [field...])                  // map_field_assoc | map_field_exact
//	("map_field_assoc", L, key, value)
//	("map_field_exact", L, key, value)
//	("bin",   L, [("bin_element", L, value, size|"default", tsl|"default")...])
//
// Calls, functions, operators:
//
//	("call",   L, target, [arg...])
//	("remote", L, module, name)               // qualified call target
//	("fun",    L, ("function", name, arity))
//	("fun",    L, ("function", module, name, arity))
//	("fun",    L, ("clauses", [clause...]))
//	("op",     L, op, operand)                // unary
//	("op",     L, op, left, right)            // binary
//
// Comprehensions:
//
//	("lc", L, expr, [qualifier...])           // list comprehension
//	("bc", L, expr, [qualifier...])           // bitstring comprehension
//	("generate",   L, pattern, source)
//	("b_generate", L, pattern, source)
//
// Forms are read-only; the translator never mutates its input. Anything
// outside this grammar degrades to the canonical null identifier (see
// expr.go), so every accessor here is defensive: a structurally short or
// mistyped form reads as "not what you asked for" rather than panicking.
package rayscript

// Form is a tagged abstract-format node. Element 0 is the tag string,
// element 1 the source line; the rest is tag-specific.
type Form = []any

// F constructs a Form. The line is kept for diagnostics only; the
// translator's output does not depend on it.
func F(tag string, line int, parts ...any) Form {
	f := make(Form, 0, 2+len(parts))
	f = append(f, tag, line)
	return append(f, parts...)
}

// formTag returns the tag of f, or "" when f is not a well-shaped form.
func formTag(f Form) string {
	if len(f) == 0 {
		return ""
	}
	tag, _ := f[0].(string)
	return tag
}

// formLine returns the source line recorded on f, or 0.
func formLine(f Form) int {
	if len(f) < 2 {
		return 0
	}
	n, _ := asInt(f[1])
	return int(n)
}

// child returns the i-th tag-specific child as a Form (children start after
// the line slot). A missing or non-form child reads as nil.
func child(f Form, i int) Form {
	v := childAny(f, i)
	sub, _ := v.(Form)
	return sub
}

// childAny returns the i-th tag-specific child without shape assumptions.
func childAny(f Form, i int) any {
	if 2+i >= len(f) {
		return nil
	}
	return f[2+i]
}

// childList returns the i-th child as a list of forms. Non-list children
// read as nil; non-form elements are dropped.
func childList(f Form, i int) []Form {
	raw, _ := childAny(f, i).([]any)
	if raw == nil {
		return nil
	}
	out := make([]Form, 0, len(raw))
	for _, v := range raw {
		if sub, ok := v.(Form); ok {
			out = append(out, sub)
		}
	}
	return out
}

// asInt accepts the integer encodings that reach the translator: native ints
// from programmatic construction and int64 from the term reader.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

// atomText reads an atom name from either a bare string (old-style fun
// references carry raw atoms) or an ("atom", L, name) form.
func atomText(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if f, ok := v.(Form); ok && formTag(f) == "atom" {
		s, ok := childAny(f, 0).(string)
		return s, ok
	}
	return "", false
}

// intText reads an integer from either a raw int/int64 or an
// ("integer", L, n) form, mirroring atomText.
func intText(v any) (int64, bool) {
	if n, ok := asInt(v); ok {
		return n, true
	}
	if f, ok := v.(Form); ok && formTag(f) == "integer" {
		return asInt(childAny(f, 0))
	}
	return 0, false
}
