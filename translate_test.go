// translate_test.go
package rayscript

import (
	"strings"
	"testing"
)

func exportAttr(pairs ...[2]any) Form {
	list := make([]any, 0, len(pairs))
	for _, p := range pairs {
		list = append(list, []any{p[0], p[1]})
	}
	return F("attribute", 1, "export", list)
}

func fnForm(name string, arity int64, clauses ...Form) Form {
	return F("function", 1, name, arity, forms(clauses...))
}

// lastExport pulls the default-export object out of a program.
func lastExport(t *testing.T, p *Program) *ObjectExpression {
	t.Helper()
	if len(p.Body) == 0 {
		t.Fatal("empty program body")
	}
	decl, ok := p.Body[len(p.Body)-1].(*ExportDefaultDeclaration)
	if !ok {
		t.Fatalf("program must end with the default export, got %s", dump(p.Body[len(p.Body)-1]))
	}
	return decl.Declaration.(*ObjectExpression)
}

func Test_Translate_Scenario(t *testing.T) {
	// attribute(export,[{foo,1}]) then foo(X) -> X + 1.
	clause := clauseOf(forms(vr("X")), []any{}, forms(binop("+", vr("X"), integer(1))))
	program := Translate([]Form{
		exportAttr([2]any{"foo", int64(1)}),
		fnForm("foo", 1, clause),
	})

	want := Module(
		Declare("const", Ident("foo_1"),
			patternsCall("defmatch", patternsCall("clause",
				Arr(patternsCall("variable")),
				genBody([]Node{Ident("X")}, Binary("+", Ident("X"), Lit(int64(1)))),
				trueGuard(Ident("X"))))),
		ExportDefault(Obj(Prop(Ident("foo_1"), Ident("foo_1"), false))))
	wantNode(t, program, want)
}

func Test_Translate_Export_Completeness(t *testing.T) {
	c := clauseOf([]any{}, []any{}, forms(atom("ok")))
	program := Translate([]Form{
		exportAttr([2]any{"foo", int64(0)}, [2]any{"bar", int64(0)}),
		fnForm("foo", 0, c),
		fnForm("bar", 0, c),
		fnForm("helper", 0, c), // unexported, still bound
	})

	export := lastExport(t, program)
	if len(export.Properties) != 2 {
		t.Fatalf("want 2 export properties, got %s", dump(export))
	}
	for i, name := range []string{"foo_0", "bar_0"} {
		p := export.Properties[i]
		wantNode(t, p.Key, Ident(name))
		wantNode(t, p.Value, Ident(name))
	}

	// Each exported identifier is bound exactly once in the body.
	for _, name := range []string{"foo_0", "bar_0"} {
		bound := 0
		for _, stmt := range program.Body {
			decl, ok := stmt.(*VariableDeclaration)
			if !ok {
				continue
			}
			if id, ok := decl.Declarations[0].ID.(*Identifier); ok && id.Name == name {
				bound++
			}
		}
		if bound != 1 {
			t.Fatalf("identifier %s bound %d times", name, bound)
		}
	}
}

func Test_Translate_Last_Export_Wins(t *testing.T) {
	c := clauseOf([]any{}, []any{}, forms(atom("ok")))
	program := Translate([]Form{
		exportAttr([2]any{"old", int64(0)}),
		exportAttr([2]any{"new", int64(0)}),
		fnForm("new", 0, c),
	})
	export := lastExport(t, program)
	if len(export.Properties) != 1 {
		t.Fatalf("export must be replaced wholesale, got %s", dump(export))
	}
	wantNode(t, export.Properties[0].Key, Ident("new_0"))
}

func Test_Translate_Empty_Export_Is_Empty_Object(t *testing.T) {
	program := Translate(nil)
	export := lastExport(t, program)
	if len(export.Properties) != 0 {
		t.Fatalf("want empty export object, got %s", dump(export))
	}
	if len(program.Body) != 1 {
		t.Fatalf("empty module still exports, got %s", dump(program.Body))
	}
}

func Test_Translate_Ignores_Other_TopLevel_Forms(t *testing.T) {
	program := Translate([]Form{
		F("attribute", 1, "module", "demo"),
		F("attribute", 1, "compile", "export_all"),
		F("eof", 99),
	})
	if len(program.Body) != 1 {
		t.Fatalf("unrelated top-level forms must not emit, got %s", dump(program.Body))
	}
}

func Test_Translate_File_Attribute_Shapes(t *testing.T) {
	// Both the bare name and the (name, line) pair erl_parse emits.
	for _, value := range []any{"demo.erl", []any{"demo.erl", int64(1)}} {
		tr := NewTranslator()
		tr.Translate([]Form{F("attribute", 1, "file", value)})
		if len(tr.Diagnostics()) != 0 {
			t.Fatalf("file attribute degraded: %s", dump(tr.Diagnostics()))
		}
	}
}

func Test_Translate_Multiclause_Function_Order(t *testing.T) {
	first := clauseOf(forms(integer(0)), []any{}, forms(atom("zero")))
	second := clauseOf(forms(vr("N")), []any{}, forms(atom("more")))
	program := Translate([]Form{fnForm("f", 1, first, second)})

	decl := program.Body[0].(*VariableDeclaration)
	dispatch := decl.Declarations[0].Init.(*CallExpression)
	if len(dispatch.Arguments) != 2 {
		t.Fatalf("want 2 clauses, got %d", len(dispatch.Arguments))
	}
	firstClause := dispatch.Arguments[0].(*CallExpression)
	wantNode(t, firstClause.Arguments[0], Arr(Lit(int64(0))))
}

func Test_Translate_EndToEnd_From_Term_Text(t *testing.T) {
	src := `
{attribute,1,file,{"demo.erl",1}}.
{attribute,2,export,[{add,2}]}.
{function,3,add,2,
    [{clause,3,[{var,3,'A'},{var,3,'B'}],[],
        [{op,4,'+',{var,4,'A'},{var,4,'B'}}]}]}.
`
	formsIn, err := ParseForms(src)
	if err != nil {
		t.Fatalf("ParseForms: %v", err)
	}
	tr := NewTranslator()
	program := tr.Translate(formsIn)
	if len(tr.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %s", dump(tr.Diagnostics()))
	}

	js := GenerateJS(program)
	for _, snippet := range []string{
		"const add_2 = Patterns.defmatch(Patterns.clause([Patterns.variable(), Patterns.variable()], function* (A, B) {",
		"yield A + B;",
		"export default {add_2: add_2};",
	} {
		if !strings.Contains(js, snippet) {
			t.Fatalf("generated JS missing %q:\n%s", snippet, js)
		}
	}
}
