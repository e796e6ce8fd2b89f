package parser

import (
	"testing"

	"github.com/gmofishsauce/llama/internal/ast"
	"github.com/gmofishsauce/llama/internal/diag"
)

func parseOK(t *testing.T, src string) (*ast.Program, *diag.MockLogger) {
	t.Helper()
	log := diag.NewMockLogger()
	p := New(log)
	prog := p.Parse(src)
	if log.Errors() != 0 {
		t.Fatalf("unexpected errors for %q: %v", src, log.Messages)
	}
	return prog, log
}

func singleFunctionBody(t *testing.T, prog *ast.Program) ast.Expr {
	t.Helper()
	if len(prog.Decls) != 1 {
		t.Fatalf("want 1 decl, got %d", len(prog.Decls))
	}
	ld, ok := prog.Decls[0].(*ast.LetDef)
	if !ok || len(ld.Defs) != 1 {
		t.Fatalf("want single let def, got %#v", prog.Decls[0])
	}
	fd, ok := ld.Defs[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("want function def, got %#v", ld.Defs[0])
	}
	return fd.Body
}

func TestKokoFunctionDef(t *testing.T) {
	prog, _ := parseOK(t, "let koko x y = x + y")
	ld := prog.Decls[0].(*ast.LetDef)
	fd := ld.Defs[0].(*ast.FunctionDef)
	if fd.Name != "koko" || len(fd.Params) != 2 {
		t.Fatalf("got %#v", fd)
	}
	bin, ok := fd.Body.(*ast.BinaryExpr)
	if !ok || bin.Op != "+" {
		t.Fatalf("want x + y, got %#v", fd.Body)
	}
}

func TestUnaryPlusBindsTighterThanPower(t *testing.T) {
	prog, _ := parseOK(t, "let f x = +1 ** 2")
	body := singleFunctionBody(t, prog)
	bin, ok := body.(*ast.BinaryExpr)
	if !ok || bin.Op != "**" {
		t.Fatalf("want top-level **, got %#v", body)
	}
	un, ok := bin.Left.(*ast.UnaryExpr)
	if !ok || un.Op != "+" {
		t.Fatalf("want (+1) on the left of **, got %#v", bin.Left)
	}
}

func TestBinaryMinusIsLeftAssociative(t *testing.T) {
	prog, _ := parseOK(t, "let f x = 1 - 2 - 3")
	body := singleFunctionBody(t, prog)
	outer, ok := body.(*ast.BinaryExpr)
	if !ok || outer.Op != "-" {
		t.Fatalf("got %#v", body)
	}
	inner, ok := outer.Left.(*ast.BinaryExpr)
	if !ok || inner.Op != "-" {
		t.Fatalf("want (1 - 2) - 3, got %#v", outer.Left)
	}
}

func TestArrowIsRightAssociative(t *testing.T) {
	prog, _ := parseOK(t, "let f (x : int -> int -> int) = x")
	ld := prog.Decls[0].(*ast.LetDef)
	fd := ld.Defs[0].(*ast.FunctionDef)
	fn, ok := fd.Params[0].Type.(*ast.Function)
	if !ok {
		t.Fatalf("got %#v", fd.Params[0].Type)
	}
	if _, ok := fn.To.(*ast.Function); !ok {
		t.Fatalf("want int -> (int -> int), got %s", fn)
	}
}

func TestRefIsLeftAssociativeStacking(t *testing.T) {
	prog, _ := parseOK(t, "let mutable x : int ref")
	ld := prog.Decls[0].(*ast.LetDef)
	vd := ld.Defs[0].(*ast.VariableDef)
	// Declared type is always stored as Ref(T): the source wrote "int
	// ref" (T = Ref(Int)), so the stored field is Ref(Ref(Int)).
	outer, ok := vd.Type.(*ast.Ref)
	if !ok {
		t.Fatalf("got %#v", vd.Type)
	}
	if _, ok := outer.Elem.(*ast.Ref); !ok {
		t.Fatalf("want (int ref) ref, got %s", outer)
	}
}

func TestArrayOfIntRefGroupsRefWithElement(t *testing.T) {
	prog, _ := parseOK(t, "let mutable a[10] : int ref")
	ld := prog.Decls[0].(*ast.LetDef)
	avd := ld.Defs[0].(*ast.ArrayVariableDef)
	arr, ok := avd.Type.(*ast.Array)
	if !ok {
		t.Fatalf("got %#v", avd.Type)
	}
	if _, ok := arr.Elem.(*ast.Ref); !ok {
		t.Fatalf("want array of (int ref), got %s", arr)
	}
}

func TestArrayOfIntArrowIntGroupsArrayBeforeArrow(t *testing.T) {
	prog, _ := parseOK(t, "let f (g : array of int -> int) = g")
	ld := prog.Decls[0].(*ast.LetDef)
	fd := ld.Defs[0].(*ast.FunctionDef)
	fn, ok := fd.Params[0].Type.(*ast.Function)
	if !ok {
		t.Fatalf("got %#v", fd.Params[0].Type)
	}
	if !ast.IsArray(fn.From) {
		t.Fatalf("want (array of int) -> int, got %s", fn)
	}
}

func TestDanglingElseBindsToNearestIf(t *testing.T) {
	prog, _ := parseOK(t, "let f x y = if x then if y then 1 else 2 else 3")
	body := singleFunctionBody(t, prog)
	outer, ok := body.(*ast.IfExpr)
	if !ok || outer.Else == nil {
		t.Fatalf("got %#v", body)
	}
	inner, ok := outer.Then.(*ast.IfExpr)
	if !ok || inner.Else == nil {
		t.Fatalf("want the inner if to claim the first else, got %#v", outer.Then)
	}
}

func TestIfThenAssignElse(t *testing.T) {
	prog, _ := parseOK(t, "let f x y z = if x then y := z else z")
	body := singleFunctionBody(t, prog)
	ie, ok := body.(*ast.IfExpr)
	if !ok {
		t.Fatalf("got %#v", body)
	}
	assign, ok := ie.Then.(*ast.BinaryExpr)
	if !ok || assign.Op != ":=" {
		t.Fatalf("want (y := z) as the then-branch, got %#v", ie.Then)
	}
	if ie.Else == nil {
		t.Fatal("expected an else branch")
	}
}

func TestRecursiveADTTypeDef(t *testing.T) {
	prog, _ := parseOK(t, "type list = Nil | Cons of int list")
	group := prog.Decls[0].(*ast.TypeDefGroup)
	if len(group.Defs) != 1 || len(group.Defs[0].Constructors) != 2 {
		t.Fatalf("got %#v", group)
	}
	cons := group.Defs[0].Constructors[1]
	if len(cons.Args) != 2 {
		t.Fatalf("want Cons to take two separate arguments (int, list), got %d", len(cons.Args))
	}
}

func TestMutuallyRecursiveLet(t *testing.T) {
	prog, _ := parseOK(t, `let rec is_even n = if n == 0 then true else is_odd (n - 1)
and is_odd n = if n == 0 then false else is_even (n - 1)`)
	ld := prog.Decls[0].(*ast.LetDef)
	if !ld.IsRec || len(ld.Defs) != 2 {
		t.Fatalf("got %#v", ld)
	}
}

func TestMatchWithConstructorPatterns(t *testing.T) {
	prog, _ := parseOK(t, `let length l = match l with
  Nil -> 0
| Cons x rest -> 1 + length rest
end`)
	body := singleFunctionBody(t, prog)
	me, ok := body.(*ast.MatchExpr)
	if !ok || len(me.Clauses) != 2 {
		t.Fatalf("got %#v", body)
	}
	second, ok := me.Clauses[1].Pattern.(*ast.ConstructorPattern)
	if !ok || second.Name != "Cons" || len(second.Args) != 2 {
		t.Fatalf("got %#v", me.Clauses[1].Pattern)
	}
}

func TestArrayIndexCannotChain(t *testing.T) {
	log := diag.NewMockLogger()
	p := New(log)
	p.Parse("let f a = a[0][0]")
	if log.Errors() == 0 {
		t.Fatal("expected a chained-indexing error")
	}
}

func TestForLoopDowntoAndWhile(t *testing.T) {
	prog, _ := parseOK(t, `let f n =
  for i = n downto 1 do
    while i > 0 do
      i := i - 1
    done
  done`)
	body := singleFunctionBody(t, prog)
	fe, ok := body.(*ast.ForExpr)
	if !ok || !fe.Down || fe.Counter != "i" {
		t.Fatalf("got %#v", body)
	}
	if _, ok := fe.Body.(*ast.WhileExpr); !ok {
		t.Fatalf("want a while loop body, got %#v", fe.Body)
	}
}

func TestLetInExpression(t *testing.T) {
	prog, _ := parseOK(t, "let f x = let y = x + 1 in y * y")
	body := singleFunctionBody(t, prog)
	lie, ok := body.(*ast.LetInExpr)
	if !ok || len(lie.LetDef.Defs) != 1 {
		t.Fatalf("got %#v", body)
	}
}

func TestBadTypeDefinitionStillReported(t *testing.T) {
	log := diag.NewMockLogger()
	p := New(log)
	p.Parse("let f (x : array of array of int) = x")
	if log.Errors() == 0 {
		t.Fatal("expected an ArrayOfArray validation error")
	}
}

func TestNewBindsTighterThanDeref(t *testing.T) {
	// !new int == !(new int), not (!new) int.
	prog, _ := parseOK(t, "let f x = !new int")
	body := singleFunctionBody(t, prog)
	de, ok := body.(*ast.DerefExpr)
	if !ok {
		t.Fatalf("want a DerefExpr, got %#v", body)
	}
	if _, ok := de.Operand.(*ast.NewExpr); !ok {
		t.Fatalf("want !(new int), got %#v", de.Operand)
	}
}

func TestIndexBindsTighterThanDeref(t *testing.T) {
	// !a[0] == !(a[0]).
	prog, _ := parseOK(t, "let f a = !a[0]")
	body := singleFunctionBody(t, prog)
	de, ok := body.(*ast.DerefExpr)
	if !ok {
		t.Fatalf("want a DerefExpr, got %#v", body)
	}
	ae, ok := de.Operand.(*ast.ArrayExpr)
	if !ok || ae.Name != "a" || len(ae.Indices) != 1 {
		t.Fatalf("want !(a[0]), got %#v", de.Operand)
	}
}

func TestLibraryCallParsesAsPlainFunctionCall(t *testing.T) {
	prog, _ := parseOK(t, `let main () = print_string "hello"`)
	body := singleFunctionBody(t, prog)
	fc, ok := body.(*ast.FunctionCallExpr)
	if !ok || fc.Name != "print_string" || len(fc.Args) != 1 {
		t.Fatalf("got %#v", body)
	}
}
