// translate.go — PUBLIC API and the top-level form compiler.
//
// Translate folds an ordered sequence of top-level abstract forms through a
// translation accumulator and emits one ESTree module program:
//
//	const foo_1 = Patterns.defmatch(Patterns.clause(...));
//	...
//	export default {foo_1: foo_1, ...};
//
// Only function forms and the file/export attributes affect output; every
// other top-level tag is deliberately ignored. The accumulator is created
// empty, threaded through one left-to-right fold, consumed exactly once to
// build the program node, and discarded. Order matters: the last file
// attribute wins, the last export attribute replaces the export set
// wholesale, and bindings keep their source order.
package rayscript

// Translator turns abstract forms into the target tree. It carries no state
// besides the diagnostics side channel, so one Translator may be reused
// across independent inputs; the zero value is ready to use.
type Translator struct {
	diags []Diagnostic
}

// NewTranslator returns a fresh Translator with an empty diagnostics log.
func NewTranslator() *Translator { return &Translator{} }

// Translate compiles a whole module's forms. Convenience for one-shot use;
// callers who want diagnostics use a Translator.
func Translate(forms []Form) *Program { return NewTranslator().Translate(forms) }

// exportPair is one name+arity entry of an export attribute.
type exportPair struct {
	name  string
	arity int64
}

// translation accumulates the fold over top-level forms.
type translation struct {
	file   string       // last file attribute wins
	export []exportPair // replaced wholesale by the most recent export attribute
	body   []Node       // append-only emitted bindings
}

// Translate folds forms into a program node: compiled bindings followed by
// exactly one default export whose object maps each exported name_arity key
// to the identifier of the same name. An empty export set yields an empty
// object, not a missing export.
func (t *Translator) Translate(forms []Form) *Program {
	acc := &translation{}
	for _, f := range forms {
		t.translateForm(f, acc)
	}

	props := make([]*Property, 0, len(acc.export))
	for _, e := range acc.export {
		name := arityName(e.name, e.arity)
		props = append(props, Prop(Ident(name), Ident(name), false))
	}
	body := append(acc.body, ExportDefault(Obj(props...)))
	return Module(body...)
}

func (t *Translator) translateForm(f Form, acc *translation) {
	switch formTag(f) {
	case "attribute":
		name, _ := atomText(childAny(f, 0))
		switch name {
		case "file":
			if file, ok := fileAttr(childAny(f, 1)); ok {
				acc.file = file
			}
		case "export":
			acc.export = exportPairs(childAny(f, 1))
		}

	case "function":
		name, okN := atomText(childAny(f, 0))
		arity, okA := intText(childAny(f, 1))
		if !okN || !okA {
			t.degrade(f, "malformed function form")
			return
		}
		compiled := t.compileClauseList(childList(f, 2), false)
		acc.body = append(acc.body, Declare("const", Ident(arityName(name, arity)), compiled))
	}
}

// fileAttr reads the file attribute's value: either a bare name or the
// ("name", line) pair erl_parse emits.
func fileAttr(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if pair, ok := v.([]any); ok && len(pair) > 0 {
		s, ok := pair[0].(string)
		return s, ok
	}
	return "", false
}

// exportPairs reads an export attribute's (name, arity) list. Malformed
// entries are dropped; the surviving order is preserved.
func exportPairs(v any) []exportPair {
	raw, _ := v.([]any)
	pairs := make([]exportPair, 0, len(raw))
	for _, e := range raw {
		tup, ok := e.([]any)
		if !ok || len(tup) != 2 {
			continue
		}
		name, okN := atomText(tup[0])
		arity, okA := intText(tup[1])
		if !okN || !okA {
			continue
		}
		pairs = append(pairs, exportPair{name: name, arity: arity})
	}
	return pairs
}
