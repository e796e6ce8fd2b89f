// Package ast defines the Llama abstract syntax tree: programs,
// definitions, expressions, patterns, and the type sub-language
// (see types.go). Node variants are plain structs implementing small
// marker interfaces, in place of the runtime class-hierarchy dispatch
// the reference implementation used for traversal.
package ast

// Program is the top-level parse result: an ordered sequence of
// let-definition groups and type-definition groups.
type Program struct {
	base
	Decls []Decl
}

// Decl is a top-level item: a LetDef group or a TypeDefGroup.
type Decl interface {
	Node
	declNode()
}

// Def is a single binding inside a LetDef: a function or a variable.
type Def interface {
	Node
	defNode()
	// DefName returns the bound identifier, used by the Symbol Table.
	DefName() string
}

// LetDef is one or more mutually recursive bindings.
type LetDef struct {
	base
	IsRec bool
	Defs  []Def
}

func (*LetDef) declNode() {}

// Param is one function parameter: a name with an optional declared type.
type Param struct {
	base
	Name string
	Type Type // nil if undeclared
}

// SymbolName lets a Param be inserted directly into the Symbol Table
// when a function's scope is opened.
func (p *Param) SymbolName() string { return p.Name }

// FunctionDef binds Name to a function of Params returning Body,
// with an optional declared return type.
type FunctionDef struct {
	base
	Name    string
	Params  []*Param
	RetType Type // nil if undeclared
	Body    Expr
}

func (*FunctionDef) defNode()          {}
func (f *FunctionDef) DefName() string { return f.Name }

// SymbolName implements symtab.Symbol so a FunctionDef can be inserted
// directly into the Symbol Table.
func (f *FunctionDef) SymbolName() string { return f.Name }

// VariableDef binds Name as a mutable reference cell. Per the AST
// invariant, a declared type T is always stored here as Ref(T): Type
// is nil only when the source declared no type at all.
type VariableDef struct {
	base
	Name string
	Type Type
}

func (*VariableDef) defNode()          {}
func (v *VariableDef) DefName() string { return v.Name }
func (v *VariableDef) SymbolName() string { return v.Name }

// ArrayVariableDef binds Name as a mutable array cell whose extents are
// given by Dims (expressions, evaluated at allocation time — not a bare
// arity). If a declared element type T is present, Type is always the
// synthesized Array(T, len(Dims)).
type ArrayVariableDef struct {
	base
	Name string
	Dims []Expr
	Type Type // nil if undeclared
}

func (*ArrayVariableDef) defNode()          {}
func (a *ArrayVariableDef) DefName() string { return a.Name }
func (a *ArrayVariableDef) SymbolName() string { return a.Name }

// TypeDef is one definition inside a "type ... and ..." group: a target
// name (User, or a builtin being illegally redefined) and its
// constructors.
type TypeDef struct {
	base
	Name         string // the GENID or builtin spelling being defined
	IsBuiltin    bool   // true if Name collides with a builtin spelling
	Constructors []*Constructor
}

// Constructor is one data constructor: a CONID name and zero or more
// argument types.
type Constructor struct {
	base
	Name string
	Args []Type
}

// TypeDefGroup is one or more mutually referential type definitions
// introduced by a single "type ... and ..." declaration.
type TypeDefGroup struct {
	base
	Defs []*TypeDef
}

func (*TypeDefGroup) declNode() {}

// ---- Expressions ----

// Expr is any expression-producing node. Ann holds an optional semantic
// annotation slot (e.g. an inferred type) that later stages may set;
// the parser never populates it.
type Expr interface {
	Node
	exprNode()
	Accept(v Visitor)
}

type baseExpr struct {
	base
	Ann Type
}

// ConstExpr is a literal constant of a builtin type, or unit.
type ConstExpr struct {
	baseExpr
	Kind  BuiltinKind
	Value any // nil for unit
}

func (*ConstExpr) exprNode()          {}
func (e *ConstExpr) Accept(v Visitor) { v.VisitConst(e) }

// GenidExpr is a reference to a lowercase-starting identifier.
type GenidExpr struct {
	baseExpr
	Name string
}

func (*GenidExpr) exprNode()          {}
func (e *GenidExpr) Accept(v Visitor) { v.VisitGenid(e) }

// ConidExpr is a reference to a nullary constructor used as a value
// (e.g. "Nil").
type ConidExpr struct {
	baseExpr
	Name string
}

func (*ConidExpr) exprNode()          {}
func (e *ConidExpr) Accept(v Visitor) { v.VisitConid(e) }

// ArrayExpr indexes an array variable: name[i, j, ...].
type ArrayExpr struct {
	baseExpr
	Name    string
	Indices []Expr
}

func (*ArrayExpr) exprNode()          {}
func (e *ArrayExpr) Accept(v Visitor) { v.VisitArray(e) }

// DerefExpr is !e.
type DerefExpr struct {
	baseExpr
	Operand Expr
}

func (*DerefExpr) exprNode()          {}
func (e *DerefExpr) Accept(v Visitor) { v.VisitDeref(e) }

// UnaryExpr is a prefix operator applied to Operand: sign (+ - +. -.),
// "not", or via DeleteExpr's sibling (delete is its own node).
type UnaryExpr struct {
	baseExpr
	Op      string
	Operand Expr
}

func (*UnaryExpr) exprNode()          {}
func (e *UnaryExpr) Accept(v Visitor) { v.VisitUnary(e) }

// BinaryExpr is Left Op Right; Op is the operator's textual spelling.
type BinaryExpr struct {
	baseExpr
	Left  Expr
	Op    string
	Right Expr
}

func (*BinaryExpr) exprNode()          {}
func (e *BinaryExpr) Accept(v Visitor) { v.VisitBinary(e) }

// FunctionCallExpr applies the function named Name to Args (juxtaposition).
type FunctionCallExpr struct {
	baseExpr
	Name string
	Args []Expr
}

func (*FunctionCallExpr) exprNode()          {}
func (e *FunctionCallExpr) Accept(v Visitor) { v.VisitFunctionCall(e) }

// ConstructorCallExpr applies data constructor Name to Args.
type ConstructorCallExpr struct {
	baseExpr
	Name string
	Args []Expr
}

func (*ConstructorCallExpr) exprNode()          {}
func (e *ConstructorCallExpr) Accept(v Visitor) { v.VisitConstructorCall(e) }

// DimExpr is "dim [k] name": the length of the k-th dimension (1 if
// omitted) of array variable Name.
type DimExpr struct {
	baseExpr
	Name      string
	Dimension int
}

func (*DimExpr) exprNode()          {}
func (e *DimExpr) Accept(v Visitor) { v.VisitDim(e) }

// NewExpr is "new T".
type NewExpr struct {
	baseExpr
	Type Type
}

func (*NewExpr) exprNode()          {}
func (e *NewExpr) Accept(v Visitor) { v.VisitNew(e) }

// DeleteExpr is "delete e".
type DeleteExpr struct {
	baseExpr
	Operand Expr
}

func (*DeleteExpr) exprNode()          {}
func (e *DeleteExpr) Accept(v Visitor) { v.VisitDelete(e) }

// IfExpr is "if Cond then Then [else Else]"; Else is nil when absent.
type IfExpr struct {
	baseExpr
	Cond Expr
	Then Expr
	Else Expr
}

func (*IfExpr) exprNode()          {}
func (e *IfExpr) Accept(v Visitor) { v.VisitIf(e) }

// WhileExpr is "while Cond do Body done".
type WhileExpr struct {
	baseExpr
	Cond Expr
	Body Expr
}

func (*WhileExpr) exprNode()          {}
func (e *WhileExpr) Accept(v Visitor) { v.VisitWhile(e) }

// ForExpr is "for Counter = Start (to|downto) Stop do Body done".
type ForExpr struct {
	baseExpr
	Counter string
	Start   Expr
	Stop    Expr
	Down    bool
	Body    Expr
}

func (*ForExpr) exprNode()          {}
func (e *ForExpr) Accept(v Visitor) { v.VisitFor(e) }

// LetInExpr is "Def in Body".
type LetInExpr struct {
	baseExpr
	LetDef *LetDef
	Body   Expr
}

func (*LetInExpr) exprNode()          {}
func (e *LetInExpr) Accept(v Visitor) { v.VisitLetIn(e) }

// Clause is one "pattern -> expr" arm of a match.
type Clause struct {
	base
	Pattern Pattern
	Body    Expr
}

// MatchExpr is "match Subject with Clauses end".
type MatchExpr struct {
	baseExpr
	Subject Expr
	Clauses []*Clause
}

func (*MatchExpr) exprNode()          {}
func (e *MatchExpr) Accept(v Visitor) { v.VisitMatch(e) }

// ---- Patterns ----

// Pattern is any pattern-matching node.
type Pattern interface {
	Node
	patternNode()
}

type basePattern struct {
	base
}

// ConstPattern matches a literal constant.
type ConstPattern struct {
	basePattern
	Kind  BuiltinKind
	Value any
}

func (*ConstPattern) patternNode() {}

// GenidPattern binds the scrutinee to Name.
type GenidPattern struct {
	basePattern
	Name string
}

func (*GenidPattern) patternNode() {}

// SymbolName lets a GenidPattern be inserted into the Symbol Table when
// a match clause's scope is opened.
func (p *GenidPattern) SymbolName() string { return p.Name }

// ConstructorPattern matches a data constructor application.
type ConstructorPattern struct {
	basePattern
	Name string
	Args []Pattern
}

func (*ConstructorPattern) patternNode() {}
