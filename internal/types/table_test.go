package types

import (
	"testing"

	"github.com/gmofishsauce/llama/internal/ast"
	"github.com/gmofishsauce/llama/internal/diag"
)

func constructor(name string, args ...ast.Type) *ast.Constructor {
	return &ast.Constructor{Name: name, Args: args}
}

var builtinNamesForTest = map[string]bool{
	"unit": true, "int": true, "char": true, "bool": true, "float": true,
}

func typeDef(name string, ctors ...*ast.Constructor) *ast.TypeDef {
	return &ast.TypeDef{Name: name, Constructors: ctors, IsBuiltin: builtinNamesForTest[name]}
}

func TestRecursiveADT(t *testing.T) {
	log := diag.NewMockLogger()
	table := NewTable(log)

	group := []*ast.TypeDef{
		typeDef("list",
			constructor("Nil"),
			constructor("Cons", ast.NewBuiltin(ast.TInt), ast.NewUser("list")),
		),
	}
	table.Process(group)

	if log.Errors() != 0 {
		t.Fatalf("unexpected errors: %v", log.Messages)
	}
	listType := ast.NewUser("list")
	ctors := table.ConstructorsOf(listType)
	if len(ctors) != 2 || ctors[0].Name != "Nil" || ctors[1].Name != "Cons" {
		t.Fatalf("got %v", ctors)
	}
	owners := table.KnownConstructors()
	if !ast.TypeEqual(owners["Nil"], listType) || !ast.TypeEqual(owners["Cons"], listType) {
		t.Fatalf("constructors not mapped to list: %v", owners)
	}
}

func TestMutuallyRecursiveADTs(t *testing.T) {
	log := diag.NewMockLogger()
	table := NewTable(log)

	group := []*ast.TypeDef{
		typeDef("tree",
			constructor("Leaf"),
			constructor("Node", ast.NewBuiltin(ast.TInt), ast.NewUser("forest")),
		),
		typeDef("forest",
			constructor("Empty"),
			constructor("NonEmpty", ast.NewUser("tree"), ast.NewUser("forest")),
		),
	}
	table.Process(group)

	if log.Errors() != 0 {
		t.Fatalf("unexpected errors: %v", log.Messages)
	}
}

func TestRedefineBuiltinType(t *testing.T) {
	log := diag.NewMockLogger()
	table := NewTable(log)
	table.Process([]*ast.TypeDef{typeDef("int", constructor("X"))})
	if log.Errors() != 1 {
		t.Fatalf("want 1 error, got %d: %v", log.Errors(), log.Messages)
	}
}

func TestRedefineUserType(t *testing.T) {
	log := diag.NewMockLogger()
	table := NewTable(log)
	table.Process([]*ast.TypeDef{typeDef("t", constructor("A"))})
	table.Process([]*ast.TypeDef{typeDef("t", constructor("B"))})
	if log.Errors() != 1 {
		t.Fatalf("want 1 error, got %d: %v", log.Errors(), log.Messages)
	}
}

func TestUndefinedArgType(t *testing.T) {
	log := diag.NewMockLogger()
	table := NewTable(log)
	table.Process([]*ast.TypeDef{typeDef("t", constructor("A", ast.NewUser("nope")))})
	if log.Errors() != 1 {
		t.Fatalf("want 1 error, got %d: %v", log.Errors(), log.Messages)
	}
}

func TestReusedConstructor(t *testing.T) {
	log := diag.NewMockLogger()
	table := NewTable(log)
	table.Process([]*ast.TypeDef{
		typeDef("t1", constructor("Same")),
		typeDef("t2", constructor("Same")),
	})
	if log.Errors() != 1 {
		t.Fatalf("want 1 error, got %d: %v", log.Errors(), log.Messages)
	}
}

func TestTypeEqualityIsEquivalence(t *testing.T) {
	a := ast.NewArray(ast.NewBuiltin(ast.TInt), 2)
	b := ast.NewArray(ast.NewBuiltin(ast.TInt), 2)
	c := ast.NewArray(ast.NewBuiltin(ast.TChar), 2)

	if !ast.TypeEqual(a, a) {
		t.Fatal("not reflexive")
	}
	if !ast.TypeEqual(a, b) || !ast.TypeEqual(b, a) {
		t.Fatal("not symmetric")
	}
	if ast.TypeEqual(a, c) {
		t.Fatal("structurally distinct types compared equal")
	}
}

func TestTypeHashRespectsEquality(t *testing.T) {
	a := ast.NewFunction(ast.NewUser("tree"), ast.NewRef(ast.NewBuiltin(ast.TBool)))
	b := ast.NewFunction(ast.NewUser("tree"), ast.NewRef(ast.NewBuiltin(ast.TBool)))
	if !ast.TypeEqual(a, b) {
		t.Fatal("expected equal")
	}
	if ast.TypeHash(a) != ast.TypeHash(b) {
		t.Fatal("equal types hashed differently")
	}
}

func TestValidatorRejectsArrayOfArray(t *testing.T) {
	bad := ast.NewArray(ast.NewArray(ast.NewBuiltin(ast.TInt), 1), 1)
	if err := Check(bad); err == nil {
		t.Fatal("expected ArrayOfArray error")
	} else if ve := err.(*ValidationError); ve.Kind != ArrayOfArray {
		t.Fatalf("got %v", ve.Kind)
	}
}

func TestValidatorRejectsRefOfArray(t *testing.T) {
	bad := ast.NewRef(ast.NewArray(ast.NewBuiltin(ast.TInt), 1))
	if err := Check(bad); err == nil {
		t.Fatal("expected RefOfArray error")
	} else if ve := err.(*ValidationError); ve.Kind != RefOfArray {
		t.Fatalf("got %v", ve.Kind)
	}
}

func TestValidatorRejectsArrayReturn(t *testing.T) {
	bad := ast.NewFunction(ast.NewBuiltin(ast.TInt), ast.NewArray(ast.NewBuiltin(ast.TInt), 1))
	log := diag.NewMockLogger()
	if Validate(log, bad) {
		t.Fatal("expected validation failure")
	}
	if log.Errors() != 1 {
		t.Fatalf("want 1 error, got %d", log.Errors())
	}
}

func TestValidatorAcceptsWellFormedTypes(t *testing.T) {
	ok := []ast.Type{
		ast.NewBuiltin(ast.TUnit),
		ast.NewUser("tree"),
		ast.NewRef(ast.NewBuiltin(ast.TInt)),
		ast.NewArray(ast.NewBuiltin(ast.TInt), 3),
		ast.NewFunction(ast.NewArray(ast.NewBuiltin(ast.TInt), 1), ast.NewBuiltin(ast.TInt)),
		ast.NewRef(ast.NewRef(ast.NewBuiltin(ast.TInt))),
	}
	for _, ty := range ok {
		if err := Check(ty); err != nil {
			t.Fatalf("unexpected failure for %s: %v", ty, err)
		}
	}
}
