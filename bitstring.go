// bitstring.go — bin/bin_element translation.
//
// Binaries are built at run time by the BitString facade: one segment-
// builder call per bin_element, starting from the segment's declared type
// and folding size and qualifier attributes left to right, so attribute
// order in source is preserved in the call-chain order:
//
//	<<X:4/little-signed-unit:8>>  →
//	    new BitString(BitString.unit(BitString.signed(BitString.little(
//	        BitString.size(BitString.integer(x), 4))), 8))
//
// A binary whose every segment is a plain literal string (default type,
// size and attributes) collapses to one concatenated string literal. That
// is an optimization only; the segment form would mean the same thing.
package rayscript

// segmentTypes is the closed set of per-type combinators on the facade.
var segmentTypes = map[string]bool{
	"integer":   true,
	"float":     true,
	"binary":    true,
	"bytes":     true,
	"bitstring": true,
	"bits":      true,
	"utf8":      true,
	"utf16":     true,
	"utf32":     true,
}

// compileBitstring translates a bin form. compileValue lets the pattern
// compiler reuse the segment builder with pattern semantics for the
// segment values.
func (t *Translator) compileBitstring(f Form, compileValue func(Form) Node) Node {
	elements := childList(f, 0)

	if lit, ok := collapseStringSegments(elements); ok {
		return Lit(lit)
	}

	segs := make([]Node, 0, len(elements))
	for _, el := range elements {
		if formTag(el) != "bin_element" {
			t.degrade(el, "unrecognized binary segment")
			continue
		}
		segs = append(segs, t.compileSegment(el, compileValue))
	}
	return New(Ident("BitString"), segs...)
}

// collapseStringSegments reports whether every segment is a literal string
// with default size and attributes, and if so returns their concatenation.
func collapseStringSegments(elements []Form) (string, bool) {
	if len(elements) == 0 {
		return "", false
	}
	out := ""
	for _, el := range elements {
		if formTag(el) != "bin_element" {
			return "", false
		}
		value := child(el, 0)
		if formTag(value) != "string" {
			return "", false
		}
		if !isDefault(childAny(el, 1)) || !isDefault(childAny(el, 2)) {
			return "", false
		}
		s, ok := childAny(value, 0).(string)
		if !ok {
			return "", false
		}
		out += s
	}
	return out, true
}

func isDefault(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == "default"
}

// compileSegment folds one bin_element into a builder call chain.
func (t *Translator) compileSegment(el Form, compileValue func(Form) Node) Node {
	value := child(el, 0)
	typ, attrs := segmentSpec(childAny(el, 2), value)

	node := Call(bitstringEntry(typ), compileValue(value))

	if size := child(el, 1); !isDefault(childAny(el, 1)) && size != nil {
		node = Call(bitstringEntry("size"), node, t.CompileExpr(size))
	}

	for _, attr := range attrs {
		switch a := attr.(type) {
		case string:
			node = Call(bitstringEntry(a), node)
		case Form: // ("unit", n)
			if len(a) < 2 {
				t.degrade(el, "malformed segment attribute")
				continue
			}
			if name, ok := a[0].(string); ok && name == "unit" {
				if n, ok := asInt(a[1]); ok {
					node = Call(bitstringEntry("unit"), node, Lit(n))
				}
			}
		}
	}
	return node
}

// segmentSpec splits a type-specifier list into the declared type (first
// recognized type atom wins; the default depends on the value shape) and
// the qualifier attributes in source order.
func segmentSpec(tsl any, value Form) (string, []any) {
	typ := "integer"
	if formTag(value) == "string" {
		typ = "binary"
	}
	if isDefault(tsl) {
		return typ, nil
	}
	list, ok := tsl.([]any)
	if !ok {
		return typ, nil
	}
	var attrs []any
	sawType := false
	for _, spec := range list {
		if name, ok := spec.(string); ok && segmentTypes[name] {
			if !sawType {
				typ = name
				sawType = true
			}
			continue
		}
		attrs = append(attrs, spec)
	}
	return typ, attrs
}

// bitstringEntry references one combinator of the runtime BitString facade.
func bitstringEntry(name string) Node {
	return Member(Ident("BitString"), Ident(name))
}
