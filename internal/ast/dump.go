package ast

import (
	"fmt"
	"io"
)

// Printer renders an expression tree as a fully parenthesized
// S-expression. It implements Visitor so each node dumps itself via
// the same Accept dispatch Walk uses; unlike Walk (a flat pre-order
// traversal meant for callers that don't need the shape of the
// recursion itself), Printer's Visit methods recurse into their own
// children directly so the parentheses nest to match real expression
// structure.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a Printer that writes to w.
func NewPrinter(w io.Writer) *Printer { return &Printer{w: w} }

// Dump writes e to the printer's writer, recursing through Accept.
func (p *Printer) Dump(e Expr) {
	if e == nil {
		fmt.Fprint(p.w, "()")
		return
	}
	e.Accept(p)
}

func (p *Printer) VisitConst(e *ConstExpr) {
	if e.Value == nil {
		fmt.Fprint(p.w, "()")
		return
	}
	fmt.Fprintf(p.w, "%v", e.Value)
}

func (p *Printer) VisitGenid(e *GenidExpr) { fmt.Fprint(p.w, e.Name) }
func (p *Printer) VisitConid(e *ConidExpr) { fmt.Fprint(p.w, e.Name) }

func (p *Printer) VisitArray(e *ArrayExpr) {
	fmt.Fprintf(p.w, "(index %s", e.Name)
	for _, idx := range e.Indices {
		fmt.Fprint(p.w, " ")
		p.Dump(idx)
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitDeref(e *DerefExpr) {
	fmt.Fprint(p.w, "(! ")
	p.Dump(e.Operand)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitUnary(e *UnaryExpr) {
	fmt.Fprintf(p.w, "(%s ", e.Op)
	p.Dump(e.Operand)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitBinary(e *BinaryExpr) {
	fmt.Fprintf(p.w, "(%s ", e.Op)
	p.Dump(e.Left)
	fmt.Fprint(p.w, " ")
	p.Dump(e.Right)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitFunctionCall(e *FunctionCallExpr) {
	fmt.Fprintf(p.w, "(call %s", e.Name)
	for _, a := range e.Args {
		fmt.Fprint(p.w, " ")
		p.Dump(a)
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitConstructorCall(e *ConstructorCallExpr) {
	fmt.Fprintf(p.w, "(%s", e.Name)
	for _, a := range e.Args {
		fmt.Fprint(p.w, " ")
		p.Dump(a)
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitDim(e *DimExpr) {
	fmt.Fprintf(p.w, "(dim %d %s)", e.Dimension, e.Name)
}

func (p *Printer) VisitNew(e *NewExpr) {
	fmt.Fprintf(p.w, "(new %s)", e.Type)
}

func (p *Printer) VisitDelete(e *DeleteExpr) {
	fmt.Fprint(p.w, "(delete ")
	p.Dump(e.Operand)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitIf(e *IfExpr) {
	fmt.Fprint(p.w, "(if ")
	p.Dump(e.Cond)
	fmt.Fprint(p.w, " ")
	p.Dump(e.Then)
	if e.Else != nil {
		fmt.Fprint(p.w, " ")
		p.Dump(e.Else)
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitWhile(e *WhileExpr) {
	fmt.Fprint(p.w, "(while ")
	p.Dump(e.Cond)
	fmt.Fprint(p.w, " ")
	p.Dump(e.Body)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitFor(e *ForExpr) {
	dir := "to"
	if e.Down {
		dir = "downto"
	}
	fmt.Fprintf(p.w, "(for %s = ", e.Counter)
	p.Dump(e.Start)
	fmt.Fprintf(p.w, " %s ", dir)
	p.Dump(e.Stop)
	fmt.Fprint(p.w, " ")
	p.Dump(e.Body)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitLetIn(e *LetInExpr) {
	fmt.Fprint(p.w, "(let-in ")
	p.dumpLetDef(e.LetDef)
	fmt.Fprint(p.w, " ")
	p.Dump(e.Body)
	fmt.Fprint(p.w, ")")
}

func (p *Printer) VisitMatch(e *MatchExpr) {
	fmt.Fprint(p.w, "(match ")
	p.Dump(e.Subject)
	for _, c := range e.Clauses {
		fmt.Fprint(p.w, " (clause ")
		p.dumpPattern(c.Pattern)
		fmt.Fprint(p.w, " ")
		p.Dump(c.Body)
		fmt.Fprint(p.w, ")")
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) dumpPattern(pat Pattern) {
	switch pt := pat.(type) {
	case *ConstPattern:
		if pt.Value == nil {
			fmt.Fprint(p.w, "()")
		} else {
			fmt.Fprintf(p.w, "%v", pt.Value)
		}
	case *GenidPattern:
		fmt.Fprint(p.w, pt.Name)
	case *ConstructorPattern:
		fmt.Fprintf(p.w, "(%s", pt.Name)
		for _, a := range pt.Args {
			fmt.Fprint(p.w, " ")
			p.dumpPattern(a)
		}
		fmt.Fprint(p.w, ")")
	default:
		fmt.Fprint(p.w, "?")
	}
}

// dumpLetDef renders one "let"/"let rec" group: each function def as
// (name param... body), each variable/array def as (name), since those
// carry no initializer expression to recurse into.
func (p *Printer) dumpLetDef(ld *LetDef) {
	kw := "let"
	if ld.IsRec {
		kw = "let-rec"
	}
	fmt.Fprintf(p.w, "(%s", kw)
	for _, d := range ld.Defs {
		fmt.Fprint(p.w, " ")
		switch def := d.(type) {
		case *FunctionDef:
			fmt.Fprintf(p.w, "(%s", def.Name)
			for _, prm := range def.Params {
				fmt.Fprintf(p.w, " %s", prm.Name)
			}
			fmt.Fprint(p.w, " ")
			p.Dump(def.Body)
			fmt.Fprint(p.w, ")")
		case *VariableDef:
			fmt.Fprintf(p.w, "(%s)", def.Name)
		case *ArrayVariableDef:
			fmt.Fprintf(p.w, "(%s)", def.Name)
		}
	}
	fmt.Fprint(p.w, ")")
}

func (p *Printer) dumpTypeDefGroup(g *TypeDefGroup) {
	fmt.Fprint(p.w, "(type")
	for _, td := range g.Defs {
		fmt.Fprintf(p.w, " (%s", td.Name)
		for _, c := range td.Constructors {
			fmt.Fprintf(p.w, " (%s", c.Name)
			for _, a := range c.Args {
				fmt.Fprintf(p.w, " %s", a)
			}
			fmt.Fprint(p.w, ")")
		}
		fmt.Fprint(p.w, ")")
	}
	fmt.Fprint(p.w, ")")
}

// DumpProgram writes prog's complete declaration tree as one
// parenthesized S-expression per top-level "let"/"type" declaration,
// recursing into every function body, match clause and pattern.
func DumpProgram(w io.Writer, prog *Program) {
	p := NewPrinter(w)
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *LetDef:
			p.dumpLetDef(d)
			fmt.Fprintln(w)
		case *TypeDefGroup:
			p.dumpTypeDefGroup(d)
			fmt.Fprintln(w)
		}
	}
}
