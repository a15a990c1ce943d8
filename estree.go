// estree.go — the target syntax tree.
//
// Node shapes follow the ESTree convention so the emitted tree can be fed
// straight into JavaScript tooling (escodegen, babel, astexplorer). Every
// node carries its ESTree "type" discriminator as a plain field; the
// constructors below are the only way nodes are built inside this package,
// so the field is always populated and nodes compare structurally.
//
// Nodes are never mutated after construction; qualified-name chains are
// built by folding fresh member-access nodes (see qualifiedName, expr.go).
package rayscript

// Node is any target syntax-tree node.
type Node interface{ isNode() }

type Identifier struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type Literal struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

type CallExpression struct {
	Type      string `json:"type"`
	Callee    Node   `json:"callee"`
	Arguments []Node `json:"arguments"`
}

// NewExpression is a constructor invocation (new Tuple(...)).
type NewExpression struct {
	Type      string `json:"type"`
	Callee    Node   `json:"callee"`
	Arguments []Node `json:"arguments"`
}

type MemberExpression struct {
	Type     string `json:"type"`
	Object   Node   `json:"object"`
	Property Node   `json:"property"`
	Computed bool   `json:"computed"`
}

type ArrayExpression struct {
	Type     string `json:"type"`
	Elements []Node `json:"elements"`
}

type ObjectExpression struct {
	Type       string      `json:"type"`
	Properties []*Property `json:"properties"`
}

type Property struct {
	Type     string `json:"type"`
	Key      Node   `json:"key"`
	Value    Node   `json:"value"`
	Kind     string `json:"kind"`
	Computed bool   `json:"computed"`
}

type BinaryExpression struct {
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Left     Node   `json:"left"`
	Right    Node   `json:"right"`
}

// LogicalExpression is the short-circuit form (&&, ||); ESTree keeps it
// distinct from BinaryExpression.
type LogicalExpression struct {
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Left     Node   `json:"left"`
	Right    Node   `json:"right"`
}

type UnaryExpression struct {
	Type     string `json:"type"`
	Operator string `json:"operator"`
	Prefix   bool   `json:"prefix"`
	Argument Node   `json:"argument"`
}

type FunctionExpression struct {
	Type      string          `json:"type"`
	Params    []Node          `json:"params"`
	Body      *BlockStatement `json:"body"`
	Generator bool            `json:"generator"`
}

type BlockStatement struct {
	Type string `json:"type"`
	Body []Node `json:"body"`
}

type ReturnStatement struct {
	Type     string `json:"type"`
	Argument Node   `json:"argument"`
}

type YieldExpression struct {
	Type     string `json:"type"`
	Argument Node   `json:"argument"`
	Delegate bool   `json:"delegate"`
}

type ExpressionStatement struct {
	Type       string `json:"type"`
	Expression Node   `json:"expression"`
}

type VariableDeclaration struct {
	Type         string                `json:"type"`
	Kind         string                `json:"kind"`
	Declarations []*VariableDeclarator `json:"declarations"`
}

type VariableDeclarator struct {
	Type string `json:"type"`
	ID   Node   `json:"id"`
	Init Node   `json:"init"`
}

// ArrayPattern is a destructuring binding target ([a, b] = ...).
type ArrayPattern struct {
	Type     string `json:"type"`
	Elements []Node `json:"elements"`
}

type ExportDefaultDeclaration struct {
	Type        string `json:"type"`
	Declaration Node   `json:"declaration"`
}

type Program struct {
	Type       string `json:"type"`
	SourceType string `json:"sourceType"`
	Body       []Node `json:"body"`
}

func (*Identifier) isNode()               {}
func (*Literal) isNode()                  {}
func (*CallExpression) isNode()           {}
func (*NewExpression) isNode()            {}
func (*MemberExpression) isNode()         {}
func (*ArrayExpression) isNode()          {}
func (*ObjectExpression) isNode()         {}
func (*Property) isNode()                 {}
func (*BinaryExpression) isNode()         {}
func (*LogicalExpression) isNode()        {}
func (*UnaryExpression) isNode()          {}
func (*FunctionExpression) isNode()       {}
func (*BlockStatement) isNode()           {}
func (*ReturnStatement) isNode()          {}
func (*YieldExpression) isNode()          {}
func (*ExpressionStatement) isNode()      {}
func (*VariableDeclaration) isNode()      {}
func (*VariableDeclarator) isNode()       {}
func (*ArrayPattern) isNode()             {}
func (*ExportDefaultDeclaration) isNode() {}
func (*Program) isNode()                  {}

/* ===========================
   Construction helpers
   =========================== */

// Ident builds an identifier node.
func Ident(name string) *Identifier { return &Identifier{Type: "Identifier", Name: name} }

// Lit builds a literal node. Value is one of nil, bool, string, int64, float64.
func Lit(value any) *Literal { return &Literal{Type: "Literal", Value: value} }

// Call builds a call expression. args may be empty.
func Call(callee Node, args ...Node) *CallExpression {
	if args == nil {
		args = []Node{}
	}
	return &CallExpression{Type: "CallExpression", Callee: callee, Arguments: args}
}

// New builds a constructor invocation.
func New(callee Node, args ...Node) *NewExpression {
	if args == nil {
		args = []Node{}
	}
	return &NewExpression{Type: "NewExpression", Callee: callee, Arguments: args}
}

// Member builds a non-computed member access (obj.prop).
func Member(object, property Node) *MemberExpression {
	return &MemberExpression{Type: "MemberExpression", Object: object, Property: property}
}

// Arr builds an array expression.
func Arr(elements ...Node) *ArrayExpression {
	if elements == nil {
		elements = []Node{}
	}
	return &ArrayExpression{Type: "ArrayExpression", Elements: elements}
}

// Obj builds an object expression.
func Obj(props ...*Property) *ObjectExpression {
	if props == nil {
		props = []*Property{}
	}
	return &ObjectExpression{Type: "ObjectExpression", Properties: props}
}

// Prop builds one "init" property.
func Prop(key, value Node, computed bool) *Property {
	return &Property{Type: "Property", Key: key, Value: value, Kind: "init", Computed: computed}
}

// Binary builds a binary expression (non short-circuit).
func Binary(op string, left, right Node) *BinaryExpression {
	return &BinaryExpression{Type: "BinaryExpression", Operator: op, Left: left, Right: right}
}

// Logical builds a short-circuit && / || expression.
func Logical(op string, left, right Node) *LogicalExpression {
	return &LogicalExpression{Type: "LogicalExpression", Operator: op, Left: left, Right: right}
}

// Unary builds a prefix unary expression.
func Unary(op string, argument Node) *UnaryExpression {
	return &UnaryExpression{Type: "UnaryExpression", Operator: op, Prefix: true, Argument: argument}
}

// Func builds a function expression; generator selects function*.
func Func(params []Node, body *BlockStatement, generator bool) *FunctionExpression {
	if params == nil {
		params = []Node{}
	}
	return &FunctionExpression{Type: "FunctionExpression", Params: params, Body: body, Generator: generator}
}

// Block builds a block statement.
func Block(stmts ...Node) *BlockStatement {
	if stmts == nil {
		stmts = []Node{}
	}
	return &BlockStatement{Type: "BlockStatement", Body: stmts}
}

// Return builds a return statement.
func Return(argument Node) *ReturnStatement {
	return &ReturnStatement{Type: "ReturnStatement", Argument: argument}
}

// Yield builds a yield expression.
func Yield(argument Node) *YieldExpression {
	return &YieldExpression{Type: "YieldExpression", Argument: argument}
}

// ExprStmt wraps an expression as a statement.
func ExprStmt(expr Node) *ExpressionStatement {
	return &ExpressionStatement{Type: "ExpressionStatement", Expression: expr}
}

// Declare builds a single-declarator variable declaration (const/let).
func Declare(kind string, id Node, init Node) *VariableDeclaration {
	return &VariableDeclaration{
		Type: "VariableDeclaration",
		Kind: kind,
		Declarations: []*VariableDeclarator{
			{Type: "VariableDeclarator", ID: id, Init: init},
		},
	}
}

// ArrPattern builds a destructuring binding target.
func ArrPattern(elements ...Node) *ArrayPattern {
	if elements == nil {
		elements = []Node{}
	}
	return &ArrayPattern{Type: "ArrayPattern", Elements: elements}
}

// ExportDefault wraps a value as the module's default export.
func ExportDefault(decl Node) *ExportDefaultDeclaration {
	return &ExportDefaultDeclaration{Type: "ExportDefaultDeclaration", Declaration: decl}
}

// Module builds the root program node.
func Module(body ...Node) *Program {
	if body == nil {
		body = []Node{}
	}
	return &Program{Type: "Program", SourceType: "module", Body: body}
}
