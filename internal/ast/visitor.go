package ast

// Visitor replaces the reference implementation's runtime
// class-hierarchy dispatch (walking ancestor classes to find a
// matching map_<variant> method) with static dispatch: each Expr
// variant's Accept method calls exactly one Visitor method. Embed
// BaseVisitor to get no-op defaults and override only the variants you
// care about.
type Visitor interface {
	VisitConst(*ConstExpr)
	VisitGenid(*GenidExpr)
	VisitConid(*ConidExpr)
	VisitArray(*ArrayExpr)
	VisitDeref(*DerefExpr)
	VisitUnary(*UnaryExpr)
	VisitBinary(*BinaryExpr)
	VisitFunctionCall(*FunctionCallExpr)
	VisitConstructorCall(*ConstructorCallExpr)
	VisitDim(*DimExpr)
	VisitNew(*NewExpr)
	VisitDelete(*DeleteExpr)
	VisitIf(*IfExpr)
	VisitWhile(*WhileExpr)
	VisitFor(*ForExpr)
	VisitLetIn(*LetInExpr)
	VisitMatch(*MatchExpr)
}

// BaseVisitor implements Visitor with every method a no-op, so callers
// can embed it and override only the variants relevant to their walk.
type BaseVisitor struct{}

func (BaseVisitor) VisitConst(*ConstExpr)                       {}
func (BaseVisitor) VisitGenid(*GenidExpr)                       {}
func (BaseVisitor) VisitConid(*ConidExpr)                       {}
func (BaseVisitor) VisitArray(*ArrayExpr)                       {}
func (BaseVisitor) VisitDeref(*DerefExpr)                       {}
func (BaseVisitor) VisitUnary(*UnaryExpr)                       {}
func (BaseVisitor) VisitBinary(*BinaryExpr)                     {}
func (BaseVisitor) VisitFunctionCall(*FunctionCallExpr)         {}
func (BaseVisitor) VisitConstructorCall(*ConstructorCallExpr)   {}
func (BaseVisitor) VisitDim(*DimExpr)                           {}
func (BaseVisitor) VisitNew(*NewExpr)                           {}
func (BaseVisitor) VisitDelete(*DeleteExpr)                     {}
func (BaseVisitor) VisitIf(*IfExpr)                             {}
func (BaseVisitor) VisitWhile(*WhileExpr)                       {}
func (BaseVisitor) VisitFor(*ForExpr)                           {}
func (BaseVisitor) VisitLetIn(*LetInExpr)                       {}
func (BaseVisitor) VisitMatch(*MatchExpr)                       {}

// Walk performs a pre-order traversal of e and its subexpressions,
// invoking v on each node reached. It is the structural replacement for
// the reference implementation's generic map() helper.
func Walk(e Expr, v Visitor) {
	if e == nil {
		return
	}
	e.Accept(v)
	switch n := e.(type) {
	case *ArrayExpr:
		for _, idx := range n.Indices {
			Walk(idx, v)
		}
	case *DerefExpr:
		Walk(n.Operand, v)
	case *UnaryExpr:
		Walk(n.Operand, v)
	case *BinaryExpr:
		Walk(n.Left, v)
		Walk(n.Right, v)
	case *FunctionCallExpr:
		for _, a := range n.Args {
			Walk(a, v)
		}
	case *ConstructorCallExpr:
		for _, a := range n.Args {
			Walk(a, v)
		}
	case *DeleteExpr:
		Walk(n.Operand, v)
	case *IfExpr:
		Walk(n.Cond, v)
		Walk(n.Then, v)
		if n.Else != nil {
			Walk(n.Else, v)
		}
	case *WhileExpr:
		Walk(n.Cond, v)
		Walk(n.Body, v)
	case *ForExpr:
		Walk(n.Start, v)
		Walk(n.Stop, v)
		Walk(n.Body, v)
	case *LetInExpr:
		for _, d := range n.LetDef.Defs {
			if fd, ok := d.(*FunctionDef); ok {
				Walk(fd.Body, v)
			}
		}
		Walk(n.Body, v)
	case *MatchExpr:
		Walk(n.Subject, v)
		for _, c := range n.Clauses {
			Walk(c.Body, v)
		}
	}
}
