// patterns.go — the pattern-descriptor compiler.
//
// A structural pattern compiles to a *matcher descriptor*: an opaque value
// the runtime Patterns engine consumes to test and destructure one argument
// position. Variables occurring in the patterns become the compiled
// clause's formal parameters, collected in first-occurrence order and
// deduplicated; the runtime binds them positionally when a clause matches.
//
//	_              → Patterns.wildcard()
//	X              → Patterns.variable()        (binds x)
//	literals       → themselves
//	{a, B}         → Patterns.type(Tuple, {values: [Symbol.for('a'), Patterns.variable()]})
//	[1, X]         → [1, Patterns.variable()]
//	[H | T]        → Patterns.headTail(Patterns.variable(), Patterns.variable())
//	#{k := V}      → {[k]: Patterns.variable()}
//	X = {a, _}     → Patterns.capture(Patterns.type(Tuple, ...))  (binds x last)
//	<<A:4, B:4>>   → new BitString(BitString.size(BitString.integer(Patterns.variable()), 4), ...)
package rayscript

// paramSet accumulates bound-parameter identifiers in first-occurrence
// order without duplicates.
type paramSet struct {
	seen map[string]bool
	list []*Identifier
}

func newParamSet() *paramSet { return &paramSet{seen: map[string]bool{}} }

func (ps *paramSet) add(name string) {
	if ps.seen[name] {
		return
	}
	ps.seen[name] = true
	ps.list = append(ps.list, Ident(name))
}

// CompilePatterns compiles one pattern per argument position, returning the
// ordered matcher descriptors and the identifiers bound across all of them.
func (t *Translator) CompilePatterns(patterns []Form) ([]Node, []*Identifier) {
	ps := newParamSet()
	descs := make([]Node, 0, len(patterns))
	for _, p := range patterns {
		descs = append(descs, t.compilePattern(p, ps))
	}
	return descs, ps.list
}

func (t *Translator) compilePattern(f Form, ps *paramSet) Node {
	switch formTag(f) {
	case "var":
		name, ok := childAny(f, 0).(string)
		if !ok {
			return t.degrade(f, "pattern variable without a name")
		}
		if name == "_" {
			return Call(patternsEntry("wildcard"))
		}
		ps.add(name)
		return Call(patternsEntry("variable"))

	case "atom", "integer", "float", "char", "string":
		return t.CompileExpr(f)

	case "nil":
		return Arr()

	case "cons":
		heads, tail := flattenCons(f)
		if tail == nil {
			elems := make([]Node, 0, len(heads))
			for _, h := range heads {
				elems = append(elems, t.compilePattern(h, ps))
			}
			return Arr(elems...)
		}
		// [H | T] and deeper improper chains nest head-by-head.
		return Call(patternsEntry("headTail"),
			t.compilePattern(child(f, 0), ps),
			t.compilePattern(child(f, 1), ps))

	case "tuple":
		items := childList(f, 0)
		elems := make([]Node, 0, len(items))
		for _, it := range items {
			elems = append(elems, t.compilePattern(it, ps))
		}
		return Call(patternsEntry("type"),
			Ident("Tuple"),
			Obj(Prop(Ident("values"), Arr(elems...), false)))

	case "map":
		fields := childList(f, 0)
		props := make([]*Property, 0, len(fields))
		for _, fld := range fields {
			switch formTag(fld) {
			case "map_field_assoc", "map_field_exact":
				props = append(props, Prop(t.CompileExpr(child(fld, 0)), t.compilePattern(child(fld, 1), ps), true))
			default:
				t.degrade(fld, "unrecognized map field pattern")
			}
		}
		return Obj(props...)

	case "match":
		return t.compileAlias(f, ps)

	case "op":
		// Constant arithmetic in a pattern position (-1, 1 bsl 4).
		return t.CompileExpr(f)

	case "bin":
		return t.compileBitstring(f, func(v Form) Node { return t.compilePattern(v, ps) })
	}
	return t.degrade(f, "unrecognized pattern")
}

// compileAlias handles X = Pattern (either side may be the variable). The
// inner pattern's bindings come first; the alias variable binds after them,
// matching the runtime's capture calling convention.
func (t *Translator) compileAlias(f Form, ps *paramSet) Node {
	left, right := child(f, 0), child(f, 1)
	varSide, patSide := left, right
	if formTag(varSide) != "var" {
		varSide, patSide = right, left
	}
	name, ok := childAny(varSide, 0).(string)
	if formTag(varSide) != "var" || !ok {
		// Neither side is a variable; keep the left pattern and surface it.
		t.degrade(f, "alias pattern without a variable side")
		return t.compilePattern(left, ps)
	}
	inner := t.compilePattern(patSide, ps)
	if name != "_" {
		ps.add(name)
	}
	return Call(patternsEntry("capture"), inner)
}

// CompileMatch translates a match expression (Left = Right) into a
// destructuring binding driven by the runtime matcher:
//
//	let [x, y] = Patterns.match(descriptor, right);
func (t *Translator) CompileMatch(left, right Form) Node {
	descs, params := t.CompilePatterns([]Form{left})
	return Declare("let",
		ArrPattern(identNodes(params)...),
		Call(patternsEntry("match"), descs[0], t.CompileExpr(right)))
}
