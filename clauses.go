// clauses.go — clause/pattern/guard bridging.
//
// Multi-clause functions with structural patterns and guards have no target
// equivalent, so clauses are compiled into *data describing how to match*
// rather than matching code: calls against the runtime Patterns facade.
//
//	Patterns.defmatch(                       // defmatchgen in generator contexts
//	    Patterns.clause(
//	        [matcher, ...],                  // one descriptor per pattern position
//	        function* (params) { yield ...; ... },
//	        function  (params) { return guard; }),
//	    ...)
//
// Clause order is load-bearing: the runtime tries clauses in emitted order
// and commits to the first whose patterns unify and whose guard holds.
// Bodies are generator functions with one yield per source statement so the
// runtime's matching engine can drive them step by step — partial
// evaluation, rollback on guard failure, comprehension laziness — while
// side effects keep their source order.
package rayscript

// compileClauseList emits the runtime dispatch call for an ordered clause
// sequence. gen selects the generator-context entry point used by
// comprehensions.
func (t *Translator) compileClauseList(clauses []Form, gen bool) Node {
	entry := "defmatch"
	if gen {
		entry = "defmatchgen"
	}
	args := make([]Node, 0, len(clauses))
	for _, c := range clauses {
		args = append(args, t.compileClause(c))
	}
	return Call(patternsEntry(entry), args...)
}

// compileClause translates one (patterns, guard, body) alternative. The
// pattern compiler yields both the matcher descriptors and the identifiers
// bound by the patterns; those identifiers become the formal parameters of
// both the body and the guard.
func (t *Translator) compileClause(c Form) Node {
	descs, params := t.CompilePatterns(childList(c, 0))
	return Call(patternsEntry("clause"),
		Arr(descs...),
		t.compileClauseBody(childList(c, 2), params),
		t.compileGuard(guardGroups(c), params))
}

// guardGroups reads the clause's guard slot: an outer list (OR) of inner
// lists (AND) of boolean expressions. Malformed entries are dropped.
func guardGroups(c Form) [][]Form {
	raw, _ := childAny(c, 1).([]any)
	groups := make([][]Form, 0, len(raw))
	for _, g := range raw {
		seq, ok := g.([]any)
		if !ok {
			continue
		}
		group := make([]Form, 0, len(seq))
		for _, e := range seq {
			if f, ok := e.(Form); ok {
				group = append(group, f)
			}
		}
		if len(group) > 0 {
			groups = append(groups, group)
		}
	}
	return groups
}

// compileClauseBody wraps every body statement in its own yield and flags
// the function as a generator. Every body, regardless of statement count,
// compiles to exactly one generator whose yields are in source order.
func (t *Translator) compileClauseBody(body []Form, params []*Identifier) Node {
	stmts := make([]Node, 0, len(body))
	for _, s := range body {
		stmts = append(stmts, ExprStmt(Yield(t.CompileExpr(s))))
	}
	return Func(identNodes(params), Block(stmts...), true)
}

// compileGuard folds the guard grammar into one boolean expression:
// each AND sequence is right-folded through synthetic andalso forms, the
// sequence conjunctions are right-folded through orelse, and the result is
// translated like any operator form. An empty guard compiles to a function
// that unconditionally returns true. Single-element folds pass through with
// no synthetic wrapper.
func (t *Translator) compileGuard(groups [][]Form, params []*Identifier) Node {
	if len(groups) == 0 {
		return Func(identNodes(params), Block(Return(Lit(true))), false)
	}
	seqs := make([]Form, 0, len(groups))
	for _, g := range groups {
		seqs = append(seqs, foldRightOp("andalso", g))
	}
	guard := foldRightOp("orelse", seqs)
	return Func(identNodes(params), Block(Return(t.CompileExpr(guard))), false)
}

// foldRightOp right-folds forms into nested synthetic operator forms:
// [a, b, c] becomes ("op", L, op, a, ("op", L, op, b, c)).
func foldRightOp(op string, forms []Form) Form {
	if len(forms) == 1 {
		return forms[0]
	}
	return F("op", formLine(forms[0]), op, forms[0], foldRightOp(op, forms[1:]))
}

// compileComprehension desugars lc/bc forms. The qualifier list is
// partitioned into generators and filters; the generators' patterns, the
// filters (as one AND guard sequence), and the yield expression form one
// synthetic clause which is compiled through the clause-list protocol in
// generator mode and paired with the compiled generator calls. Source
// elements whose pattern fails to unify are skipped by the runtime, not
// surfaced as errors.
func (t *Translator) compileComprehension(f Form) Node {
	entry := "list_comprehension"
	if formTag(f) == "bc" {
		entry = "bitstring_comprehension"
	}

	expr := child(f, 0)
	var patterns []any
	var gens []Node
	var filters []any
	for _, q := range childList(f, 1) {
		switch formTag(q) {
		case "generate", "b_generate":
			patterns = append(patterns, any(child(q, 0)))
			gens = append(gens, t.compileGenerator(q))
		default:
			filters = append(filters, any(q))
		}
	}

	var guards []any
	if len(filters) > 0 {
		guards = []any{filters}
	} else {
		guards = []any{}
	}
	clause := F("clause", formLine(f), patterns, guards, []any{any(expr)})

	return Call(patternsEntry(entry),
		t.compileClauseList([]Form{clause}, true),
		Arr(gens...))
}

// compileGenerator emits one runtime generator call: the pattern's matcher
// descriptor paired with the compiled source collection.
func (t *Translator) compileGenerator(g Form) Node {
	entry := "list_generator"
	if formTag(g) == "b_generate" {
		entry = "bitstring_generator"
	}
	descs, _ := t.CompilePatterns([]Form{child(g, 0)})
	return Call(patternsEntry(entry), descs[0], t.CompileExpr(child(g, 1)))
}

// identNodes converts bound parameters to the []Node a function node takes.
func identNodes(params []*Identifier) []Node {
	nodes := make([]Node, 0, len(params))
	for _, p := range params {
		nodes = append(nodes, p)
	}
	return nodes
}
