// clauses_test.go
package rayscript

import (
	"testing"
)

func compileClauses(t *testing.T, gen bool, clauses ...Form) Node {
	t.Helper()
	return NewTranslator().compileClauseList(clauses, gen)
}

func clauseOf(patterns []any, guards []any, body []any) Form {
	return F("clause", 1, patterns, guards, body)
}

// guard function over params that unconditionally passes
func trueGuard(params ...Node) Node {
	return Func(params, Block(Return(Lit(true))), false)
}

func genBody(params []Node, stmts ...Node) Node {
	wrapped := make([]Node, 0, len(stmts))
	for _, s := range stmts {
		wrapped = append(wrapped, ExprStmt(Yield(s)))
	}
	return Func(params, Block(wrapped...), true)
}

// --- clause lists -------------------------------------------------------------

func Test_Clauses_Order_Preserved(t *testing.T) {
	first := clauseOf(forms(integer(1)), []any{}, forms(atom("one")))
	second := clauseOf(forms(vr("X")), []any{}, forms(atom("other")))

	got := compileClauses(t, false, first, second).(*CallExpression)
	if len(got.Arguments) != 2 {
		t.Fatalf("want 2 compiled clauses, got %d", len(got.Arguments))
	}
	wantNode(t, got.Callee, Member(Ident("Patterns"), Ident("defmatch")))

	// First clause matches the literal; order is what the runtime commits to.
	wantNode(t, got.Arguments[0], patternsCall("clause",
		Arr(Lit(int64(1))),
		genBody(nil, symbolFor("one")),
		trueGuard()))
	wantNode(t, got.Arguments[1], patternsCall("clause",
		Arr(patternsCall("variable")),
		genBody([]Node{Ident("X")}, symbolFor("other")),
		trueGuard(Ident("X"))))
}

func Test_Clauses_Generator_Entry_Point(t *testing.T) {
	c := clauseOf(forms(vr("X")), []any{}, forms(vr("X")))
	got := compileClauses(t, true, c).(*CallExpression)
	wantNode(t, got.Callee, Member(Ident("Patterns"), Ident("defmatchgen")))
}

// --- bodies ----------------------------------------------------------------------

func Test_Clauses_Body_Yields_Every_Statement_In_Order(t *testing.T) {
	c := clauseOf(forms(vr("X")), []any{}, forms(
		F("call", 1, atom("log"), forms(vr("X"))),
		binop("+", vr("X"), integer(1)),
	))
	clause := compileClauses(t, false, c).(*CallExpression).Arguments[0].(*CallExpression)

	body := clause.Arguments[1].(*FunctionExpression)
	if !body.Generator {
		t.Fatal("clause body must be a generator function")
	}
	wantNode(t, body, genBody([]Node{Ident("X")},
		Call(Ident("log_1"), Ident("X")),
		Binary("+", Ident("X"), Lit(int64(1)))))
}

// --- guards ------------------------------------------------------------------------

func guardFn(t *testing.T, guards []any, patterns []any) *FunctionExpression {
	t.Helper()
	c := clauseOf(patterns, guards, forms(atom("ok")))
	clause := compileClauses(t, false, c).(*CallExpression).Arguments[0].(*CallExpression)
	return clause.Arguments[2].(*FunctionExpression)
}

func Test_Guard_Empty_Returns_True(t *testing.T) {
	fn := guardFn(t, []any{}, forms(vr("X")))
	wantNode(t, fn, trueGuard(Ident("X")))
}

func Test_Guard_Single_Expression_Has_No_Wrapper(t *testing.T) {
	a := binop(">", vr("X"), integer(0))
	fn := guardFn(t, []any{forms(a)}, forms(vr("X")))
	wantNode(t, fn, Func([]Node{Ident("X")},
		Block(Return(Binary(">", Ident("X"), Lit(int64(0))))), false))
}

func Test_Guard_Or_Of_Ands(t *testing.T) {
	// [[a, b], [c]] → (a && b) || c
	a := binop(">", vr("X"), integer(0))
	b := binop("<", vr("X"), integer(10))
	c := binop("==", vr("X"), integer(42))
	fn := guardFn(t, []any{forms(a, b), forms(c)}, forms(vr("X")))

	want := Logical("||",
		Logical("&&",
			Binary(">", Ident("X"), Lit(int64(0))),
			Binary("<", Ident("X"), Lit(int64(10)))),
		Binary("==", Ident("X"), Lit(int64(42))))
	wantNode(t, fn.Body.Body[0].(*ReturnStatement).Argument, want)
}

func Test_Guard_Right_Fold_Associates_Right(t *testing.T) {
	// [a, b, c] → a && (b && c)
	a := vr("A")
	b := vr("B")
	c := vr("C")
	fn := guardFn(t, []any{forms(a, b, c)}, []any{})
	want := Logical("&&", Ident("A"), Logical("&&", Ident("B"), Ident("C")))
	wantNode(t, fn.Body.Body[0].(*ReturnStatement).Argument, want)
}

// --- comprehensions -------------------------------------------------------------------

func Test_Comprehension_List_Desugaring(t *testing.T) {
	// [X + 1 || X <- L, X > 0]
	gen := F("generate", 1, vr("X"), vr("L"))
	filter := binop(">", vr("X"), integer(0))
	lc := F("lc", 1, binop("+", vr("X"), integer(1)), forms(gen, filter))

	got := compile(t, lc)
	want := patternsCall("list_comprehension",
		patternsCall("defmatchgen", patternsCall("clause",
			Arr(patternsCall("variable")),
			genBody([]Node{Ident("X")}, Binary("+", Ident("X"), Lit(int64(1)))),
			Func([]Node{Ident("X")},
				Block(Return(Binary(">", Ident("X"), Lit(int64(0))))), false))),
		Arr(patternsCall("list_generator", patternsCall("variable"), Ident("L"))))
	wantNode(t, got, want)
}

func Test_Comprehension_Multiple_Filters_All_Must_Hold(t *testing.T) {
	// Two filters conjoin; they are not alternative guard sequences.
	gen := F("generate", 1, vr("X"), vr("L"))
	f1 := binop(">", vr("X"), integer(0))
	f2 := binop("<", vr("X"), integer(9))
	lc := F("lc", 1, vr("X"), forms(gen, f1, f2))

	comp := compile(t, lc).(*CallExpression)
	clause := comp.Arguments[0].(*CallExpression).Arguments[0].(*CallExpression)
	guard := clause.Arguments[2].(*FunctionExpression)
	want := Logical("&&",
		Binary(">", Ident("X"), Lit(int64(0))),
		Binary("<", Ident("X"), Lit(int64(9))))
	wantNode(t, guard.Body.Body[0].(*ReturnStatement).Argument, want)
}

func Test_Comprehension_Bitstring_Entry_Points(t *testing.T) {
	gen := F("b_generate", 1, vr("X"), vr("Bin"))
	bc := F("bc", 1, vr("X"), forms(gen))

	comp := compile(t, bc).(*CallExpression)
	wantNode(t, comp.Callee, Member(Ident("Patterns"), Ident("bitstring_comprehension")))

	gens := comp.Arguments[1].(*ArrayExpression)
	genCall := gens.Elements[0].(*CallExpression)
	wantNode(t, genCall.Callee, Member(Ident("Patterns"), Ident("bitstring_generator")))
}
