// jsgen.go — JavaScript source rendering for the target tree.
//
// The translator's contract is the ESTree tree itself (and its JSON form);
// this file makes the repo usable end to end by printing that tree as
// JavaScript text. Rendering is deterministic: same tree, same text.
// Expressions with sub-structure are parenthesized when nested so operator
// precedence never needs modelling.
package rayscript

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateJS renders a target node as JavaScript source. Statements and
// programs end with a trailing newline; expressions do not.
func GenerateJS(n Node) string {
	w := &jsWriter{}
	w.emit(n)
	return w.b.String()
}

type jsWriter struct {
	b     strings.Builder
	depth int
}

func (w *jsWriter) write(s string) { w.b.WriteString(s) }
func (w *jsWriter) nl()            { w.b.WriteByte('\n') }
func (w *jsWriter) pad()           { w.write(strings.Repeat("    ", w.depth)) }

// emit renders n. Statement nodes pad themselves and end their own line;
// expression nodes write inline.
func (w *jsWriter) emit(n Node) {
	switch node := n.(type) {
	case *Program:
		for _, s := range node.Body {
			w.emit(s)
		}

	case *VariableDeclaration:
		w.pad()
		w.write(node.Kind)
		w.write(" ")
		for i, d := range node.Declarations {
			if i > 0 {
				w.write(", ")
			}
			w.emit(d.ID)
			if d.Init != nil {
				w.write(" = ")
				w.emit(d.Init)
			}
		}
		w.write(";")
		w.nl()

	case *ExportDefaultDeclaration:
		w.pad()
		w.write("export default ")
		w.emit(node.Declaration)
		w.write(";")
		w.nl()

	case *ExpressionStatement:
		w.pad()
		w.emit(node.Expression)
		w.write(";")
		w.nl()

	case *ReturnStatement:
		w.pad()
		w.write("return")
		if node.Argument != nil {
			w.write(" ")
			w.emit(node.Argument)
		}
		w.write(";")
		w.nl()

	case *BlockStatement:
		w.write("{")
		w.nl()
		w.depth++
		for _, s := range node.Body {
			w.emit(s)
		}
		w.depth--
		w.pad()
		w.write("}")

	case *Identifier:
		w.write(node.Name)

	case *Literal:
		w.write(jsLiteral(node.Value))

	case *CallExpression:
		w.emitCallee(node.Callee)
		w.emitArgs(node.Arguments)

	case *NewExpression:
		w.write("new ")
		w.emitCallee(node.Callee)
		w.emitArgs(node.Arguments)

	case *MemberExpression:
		w.emitCallee(node.Object)
		if node.Computed {
			w.write("[")
			w.emit(node.Property)
			w.write("]")
		} else {
			w.write(".")
			w.emit(node.Property)
		}

	case *ArrayExpression:
		w.write("[")
		for i, e := range node.Elements {
			if i > 0 {
				w.write(", ")
			}
			w.emit(e)
		}
		w.write("]")

	case *ArrayPattern:
		w.write("[")
		for i, e := range node.Elements {
			if i > 0 {
				w.write(", ")
			}
			w.emit(e)
		}
		w.write("]")

	case *ObjectExpression:
		if len(node.Properties) == 0 {
			w.write("{}")
			break
		}
		w.write("{")
		for i, p := range node.Properties {
			if i > 0 {
				w.write(", ")
			}
			if p.Computed {
				w.write("[")
				w.emit(p.Key)
				w.write("]")
			} else {
				w.emit(p.Key)
			}
			w.write(": ")
			w.emit(p.Value)
		}
		w.write("}")

	case *BinaryExpression:
		w.emitOperand(node.Left)
		w.write(" " + node.Operator + " ")
		w.emitOperand(node.Right)

	case *LogicalExpression:
		w.emitOperand(node.Left)
		w.write(" " + node.Operator + " ")
		w.emitOperand(node.Right)

	case *UnaryExpression:
		w.write(node.Operator)
		w.emitOperand(node.Argument)

	case *FunctionExpression:
		w.write("function")
		if node.Generator {
			w.write("*")
		}
		w.write(" (")
		for i, p := range node.Params {
			if i > 0 {
				w.write(", ")
			}
			w.emit(p)
		}
		w.write(") ")
		w.emit(node.Body)

	case *YieldExpression:
		w.write("yield")
		if node.Delegate {
			w.write("*")
		}
		if node.Argument != nil {
			w.write(" ")
			w.emit(node.Argument)
		}

	default:
		// Nodes only reachable through their parents (VariableDeclarator,
		// Property) are handled inline above; anything else is a bug in the
		// builder layer, surfaced loudly in the output rather than dropped.
		w.write(fmt.Sprintf("/* unprintable node %T */", n))
	}
}

// emitOperand parenthesizes operands that have their own operator or
// function structure.
func (w *jsWriter) emitOperand(n Node) {
	switch n.(type) {
	case *BinaryExpression, *LogicalExpression, *UnaryExpression, *FunctionExpression, *YieldExpression:
		w.write("(")
		w.emit(n)
		w.write(")")
	default:
		w.emit(n)
	}
}

// emitCallee parenthesizes callees/objects that would not parse bare.
func (w *jsWriter) emitCallee(n Node) {
	switch n.(type) {
	case *FunctionExpression, *BinaryExpression, *LogicalExpression, *UnaryExpression:
		w.write("(")
		w.emit(n)
		w.write(")")
	default:
		w.emit(n)
	}
}

func (w *jsWriter) emitArgs(args []Node) {
	w.write("(")
	for i, a := range args {
		if i > 0 {
			w.write(", ")
		}
		w.emit(a)
	}
	w.write(")")
}

// jsLiteral renders a literal value as JavaScript source text.
func jsLiteral(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return quoteJS(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

func quoteJS(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}
