// expr.go — the expression compiler.
//
// A pure, recursive, exhaustive mapping from any abstract-form node to
// exactly one target node. The mapping is total: anything outside the
// recognized grammar (or structurally incomplete) degrades to the null
// identifier via Translator.degrade, never an error. Clause/guard/body
// bridging lives in clauses.go, bitstrings in bitstring.go, pattern
// descriptors in patterns.go.
package rayscript

import (
	"strconv"
	"strings"
)

// nameJoiner separates a function name from its arity in emitted
// identifiers. Calls and definitions must agree on it byte for byte so
// emitted references always resolve.
const nameJoiner = "_"

// arityName renders the arity-qualified identifier text for name/arity.
func arityName(name string, arity int64) string {
	return name + nameJoiner + strconv.FormatInt(arity, 10)
}

// patternsEntry references one entry point of the runtime Patterns facade.
func patternsEntry(name string) Node {
	return Member(Ident("Patterns"), Ident(name))
}

// CompileExpr translates one abstract form into one target node.
func (t *Translator) CompileExpr(f Form) Node {
	switch formTag(f) {
	case "var":
		name, ok := childAny(f, 0).(string)
		if !ok {
			return t.degrade(f, "variable without a name")
		}
		return Ident(name)

	case "atom":
		return t.compileAtom(f)

	case "integer", "char":
		n, ok := asInt(childAny(f, 0))
		if !ok {
			return t.degrade(f, "non-integer payload")
		}
		return Lit(n)

	case "float":
		x, ok := childAny(f, 0).(float64)
		if !ok {
			return t.degrade(f, "non-float payload")
		}
		return Lit(x)

	case "string":
		s, ok := childAny(f, 0).(string)
		if !ok {
			return t.degrade(f, "non-string payload")
		}
		return Lit(s)

	case "tuple":
		items := childList(f, 0)
		elems := make([]Node, 0, len(items))
		for _, it := range items {
			elems = append(elems, t.CompileExpr(it))
		}
		return New(Ident("Tuple"), elems...)

	case "nil":
		return Arr()

	case "cons":
		return t.compileCons(f)

	case "map":
		return t.compileMap(f)

	case "bin":
		return t.compileBitstring(f, t.CompileExpr)

	case "call":
		return t.compileCall(f)

	case "fun":
		return t.compileFun(f)

	case "match":
		return t.CompileMatch(child(f, 0), child(f, 1))

	case "op":
		return t.compileOp(f)

	case "lc", "bc":
		return t.compileComprehension(f)
	}
	return t.degrade(f, "unrecognized form")
}

// compileAtom interns an atom. nil becomes the null identifier, booleans
// become boolean literals, everything else goes through Symbol.for so that
// identity-by-name equality survives in the target.
func (t *Translator) compileAtom(f Form) Node {
	name, ok := childAny(f, 0).(string)
	if !ok {
		return t.degrade(f, "atom without a name")
	}
	switch name {
	case "nil":
		return nullIdent()
	case "true":
		return Lit(true)
	case "false":
		return Lit(false)
	}
	return Call(Member(Ident("Symbol"), Ident("for")), Lit(name))
}

// compileCons translates a cons chain. Chains terminated by nil flatten to
// one array literal in head order; a chain ending in a non-nil, non-cons
// tail becomes [heads...].concat(tail) so the improper tail is preserved.
func (t *Translator) compileCons(f Form) Node {
	heads, tail := flattenCons(f)
	elems := make([]Node, 0, len(heads))
	for _, h := range heads {
		elems = append(elems, t.CompileExpr(h))
	}
	if tail == nil {
		return Arr(elems...)
	}
	return Call(Member(Arr(elems...), Ident("concat")), t.CompileExpr(tail))
}

// flattenCons walks a cons chain collecting heads. tail is nil for a proper
// chain (terminated by "nil"), otherwise the improper terminal form.
func flattenCons(f Form) (heads []Form, tail Form) {
	for formTag(f) == "cons" {
		heads = append(heads, child(f, 0))
		f = child(f, 1)
	}
	if formTag(f) == "nil" {
		return heads, nil
	}
	return heads, f
}

// compileMap translates map construction/update. Assoc and exact fields are
// treated identically at this layer; keys are arbitrary expressions, so
// every property is computed.
func (t *Translator) compileMap(f Form) Node {
	fields := childList(f, 0)
	props := make([]*Property, 0, len(fields))
	for _, fld := range fields {
		switch formTag(fld) {
		case "map_field_assoc", "map_field_exact":
			props = append(props, Prop(t.CompileExpr(child(fld, 0)), t.CompileExpr(child(fld, 1)), true))
		default:
			t.degrade(fld, "unrecognized map field")
		}
	}
	return Obj(props...)
}

// compileCall translates the three recognized call target shapes. A bound
// variable qualifying a remote call denotes a dynamically bound function
// value, so it dispatches as a free name_arity identifier, not a member
// lookup.
func (t *Translator) compileCall(f Form) Node {
	target := child(f, 0)
	argForms := childList(f, 1)
	arity := int64(len(argForms))
	args := make([]Node, 0, len(argForms))
	for _, a := range argForms {
		args = append(args, t.CompileExpr(a))
	}

	switch formTag(target) {
	case "atom":
		name, ok := childAny(target, 0).(string)
		if !ok {
			return t.degrade(f, "call target atom without a name")
		}
		return Call(Ident(arityName(name, arity)), args...)

	case "remote":
		qualifier := child(target, 0)
		fn := child(target, 1)
		name, ok := childAny(fn, 0).(string)
		if formTag(fn) != "atom" || !ok {
			return t.degrade(f, "remote call without an atom function name")
		}
		switch formTag(qualifier) {
		case "var":
			return Call(Ident(arityName(name, arity)), args...)
		case "atom":
			mod, ok := childAny(qualifier, 0).(string)
			if !ok {
				return t.degrade(f, "remote module atom without a name")
			}
			return Call(qualifiedName(mod, arityName(name, arity)), args...)
		}
		return t.degrade(f, "unrecognized remote qualifier")
	}
	return t.degrade(f, "unrecognized call target")
}

// qualifiedName builds the member-access chain for a dotted module path
// followed by the final arity-qualified segment: a left fold over the path,
// each step producing a fresh immutable node.
func qualifiedName(module, final string) Node {
	segs := strings.Split(module, ".")
	var node Node = Ident(segs[0])
	for _, s := range segs[1:] {
		node = Member(node, Ident(s))
	}
	return Member(node, Ident(final))
}

// compileFun translates function values. Name/arity references compile to
// the same arity-qualified identifiers as calls; inline clause lists are
// indistinguishable from named function definitions at this layer.
//
// The inner tuple of a fun form carries no line slot, and in older abstract
// format its module/name/arity are raw atoms rather than wrapped forms, so
// it is read positionally via atomText/intText.
func (t *Translator) compileFun(f Form) Node {
	inner, ok := childAny(f, 0).(Form)
	if !ok || len(inner) == 0 {
		return t.degrade(f, "fun without a body")
	}
	tag, _ := inner[0].(string)
	switch tag {
	case "function":
		switch len(inner) {
		case 3: // ("function", name, arity)
			name, okN := atomText(inner[1])
			arity, okA := intText(inner[2])
			if !okN || !okA {
				return t.degrade(f, "malformed local fun reference")
			}
			return Ident(arityName(name, arity))
		case 4: // ("function", module, name, arity)
			mod, okM := atomText(inner[1])
			name, okN := atomText(inner[2])
			arity, okA := intText(inner[3])
			if !okM || !okN || !okA {
				return t.degrade(f, "malformed remote fun reference")
			}
			return qualifiedName(mod, arityName(name, arity))
		}
		return t.degrade(f, "malformed fun reference")

	case "clauses":
		if len(inner) < 2 {
			return t.degrade(f, "clauses fun without a clause list")
		}
		raw, _ := inner[1].([]any)
		clauses := make([]Form, 0, len(raw))
		for _, v := range raw {
			if c, ok := v.(Form); ok {
				clauses = append(clauses, c)
			}
		}
		return t.compileClauseList(clauses, false)
	}
	return t.degrade(f, "unrecognized fun shape")
}

/* ===========================
   Operators
   =========================== */

// binaryOps rewrites operators without a direct target equivalent. Entries
// absent from both this table and logicalOps pass through unchanged.
var binaryOps = map[string]string{
	"=<":   "<=",
	"/=":   "!=",
	"=:=":  "===",
	"=/=":  "!==",
	"div":  "/",
	"rem":  "%",
	"band": "&",
	"bor":  "|",
	"bxor": "^",
	"bsl":  "<<",
	"bsr":  ">>",
}

// logicalOps map onto the target's short-circuit forms.
var logicalOps = map[string]string{
	"and":     "&&",
	"andalso": "&&",
	"or":      "||",
	"orelse":  "||",
}

// unaryOps rewrites the prefix operators that differ in spelling.
var unaryOps = map[string]string{
	"not":  "!",
	"bnot": "~",
}

func (t *Translator) compileOp(f Form) Node {
	op, ok := childAny(f, 0).(string)
	if !ok {
		return t.degrade(f, "operator form without an operator")
	}
	switch len(f) {
	case 4: // unary
		jsOp := op
		if mapped, found := unaryOps[op]; found {
			jsOp = mapped
		}
		return Unary(jsOp, t.CompileExpr(child(f, 1)))

	case 5: // binary
		left, right := child(f, 1), child(f, 2)
		if jsOp, found := logicalOps[op]; found {
			return Logical(jsOp, t.CompileExpr(left), t.CompileExpr(right))
		}
		if op == "xor" {
			// No native boolean xor: (l && !r) || (!l && r). The operands
			// are recompiled for each occurrence; translation is pure.
			return Logical("||",
				Logical("&&", t.CompileExpr(left), Unary("!", t.CompileExpr(right))),
				Logical("&&", Unary("!", t.CompileExpr(left)), t.CompileExpr(right)))
		}
		jsOp := op
		if mapped, found := binaryOps[op]; found {
			jsOp = mapped
		}
		return Binary(jsOp, t.CompileExpr(left), t.CompileExpr(right))
	}
	return t.degrade(f, "operator with unexpected operand count")
}
