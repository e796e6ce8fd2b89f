package types

import (
	"fmt"

	"github.com/gmofishsauce/llama/internal/ast"
	"github.com/gmofishsauce/llama/internal/diag"
)

// TableErrorKind tags a type-definition consistency failure.
type TableErrorKind int

const (
	RedefBuiltinType TableErrorKind = iota
	RedefUserType
	RedefConstructor
	UndefType
)

// TableError is the typed failure returned by the strict entry points.
// Previous, when non-nil, is the original definition being collided
// with — the whole point of the Type Table's key-preserving maps is
// being able to report its position.
type TableError struct {
	Kind     TableErrorKind
	Name     string
	Previous ast.Node
	Pos      ast.Position
}

func (e *TableError) Error() string {
	switch e.Kind {
	case RedefBuiltinType:
		return fmt.Sprintf("Cannot redefine builtin type: %s", e.Name)
	case RedefUserType:
		return fmt.Sprintf("Redefining type '%s'\tPrevious definition: %s", e.Name, e.Previous.Pos())
	case RedefConstructor:
		return fmt.Sprintf("Reusing constructor '%s'\tPrevious definition: %s", e.Name, e.Previous.Pos())
	case UndefType:
		return fmt.Sprintf("Undefined type '%s'", e.Name)
	default:
		return "type table error"
	}
}

// typeEntry is the Smartdict-style (key, value) pair for knownTypes:
// Key is the original node that defined the type (so its position
// survives even once a later, structurally-equal lookup happens);
// Ctors is the constructor list registered against it so far.
type typeEntry struct {
	Key   ast.Type
	Ctors []*ast.Constructor
}

// ctorEntry is the Smartdict-style pair for knownConstructors.
type ctorEntry struct {
	Key   *ast.Constructor
	Owner ast.Type
}

// Table is the Type Table: two key-preserving maps cataloguing
// user-defined types and their constructors, preloaded with the
// builtins so that constructor arguments of builtin type resolve.
type Table struct {
	log        diag.Logger
	knownTypes map[string]*typeEntry
	knownCtors map[string]*ctorEntry
}

// NewTable creates a Table preloaded with unit/int/char/bool/float.
func NewTable(log diag.Logger) *Table {
	t := &Table{
		log:        log,
		knownTypes: map[string]*typeEntry{},
		knownCtors: map[string]*ctorEntry{},
	}
	for _, k := range []ast.BuiltinKind{ast.TUnit, ast.TInt, ast.TChar, ast.TBool, ast.TFloat} {
		b := ast.NewBuiltin(k)
		t.knownTypes[b.Key()] = &typeEntry{Key: b}
	}
	return t
}

// KnownTypes exposes the registered type nodes to callers (e.g. a
// future semantic pass) without leaking the internal entry wrapper.
func (t *Table) KnownTypes() map[string]ast.Type {
	out := make(map[string]ast.Type, len(t.knownTypes))
	for k, e := range t.knownTypes {
		out[k] = e.Key
	}
	return out
}

// KnownConstructors exposes constructor-name -> owning-type.
func (t *Table) KnownConstructors() map[string]ast.Type {
	out := make(map[string]ast.Type, len(t.knownCtors))
	for k, e := range t.knownCtors {
		out[k] = e.Owner
	}
	return out
}

// ConstructorsOf returns the constructors registered for a user type.
func (t *Table) ConstructorsOf(ty ast.Type) []*ast.Constructor {
	if e, ok := t.knownTypes[ty.Key()]; ok {
		return e.Ctors
	}
	return nil
}

// insertType registers a new user type name, or reports why it can't
// be registered: a collision with a builtin spelling, or a collision
// with a previously defined user type (whose original position is
// recovered from the stored key).
//
// A builtin collision can't be detected by looking up u.Key() in
// knownTypes: User.Key() is "u:"+name while Builtin.Key() is
// "b:"+kind, so the two namespaces never collide no matter how the
// preloaded builtins are keyed. isBuiltin instead comes from the
// parser, which already knows the name was spelled as a reserved
// type keyword (ast.TypeDef.IsBuiltin, set at internal/parser/parser.go).
func (t *Table) insertType(u *ast.User, isBuiltin bool) *TableError {
	if isBuiltin {
		return &TableError{Kind: RedefBuiltinType, Name: u.Name, Pos: u.Pos()}
	}
	key := u.Key()
	if prev, ok := t.knownTypes[key]; ok {
		return &TableError{Kind: RedefUserType, Name: u.Name, Previous: prev.Key, Pos: u.Pos()}
	}
	t.knownTypes[key] = &typeEntry{Key: u}
	return nil
}

// insertConstructor registers C as a constructor of the user type owner
// (by key lookup, not object identity — owner may be a freshly parsed
// node distinct from, but structurally equal to, the one insertType
// stored). Every argument type of C must already be known.
func (t *Table) insertConstructor(owner ast.Type, c *ast.Constructor) *TableError {
	if prev, ok := t.knownCtors[c.Name]; ok {
		return &TableError{Kind: RedefConstructor, Name: c.Name, Previous: prev.Key, Pos: c.Pos()}
	}
	for _, a := range c.Args {
		if _, known := t.knownTypes[a.Key()]; !known {
			return &TableError{Kind: UndefType, Name: a.String(), Pos: a.Pos()}
		}
	}
	te, ok := t.knownTypes[owner.Key()]
	if !ok {
		return &TableError{Kind: UndefType, Name: owner.String(), Pos: owner.Pos()}
	}
	te.Ctors = append(te.Ctors, c)
	t.knownCtors[c.Name] = &ctorEntry{Key: c, Owner: owner}
	return nil
}

// Process registers every type definition in group, logging failures
// through the Table's logger and continuing so that a mistake in one
// definition doesn't hide diagnostics for the rest of the group.
//
// Two-phase by construction: every definition's user-type name is
// inserted in phase 1 before any constructor is processed in phase 2,
// so mutually recursive definitions (tree referencing forest and vice
// versa) resolve regardless of declaration order.
func (t *Table) Process(group []*ast.TypeDef) {
	t.process(group, func(err *TableError) {
		pos := diag.Position{Line: err.Pos.Line, Column: err.Pos.Column}
		t.log.Errorf(pos, "%s", err.Error())
	})
}

// ProcessStrict is the typed-failure counterpart to Process: it
// returns the first error encountered instead of logging, matching the
// parser's alternate error-handling style for embeddings that prefer
// returned errors over a logger.
func (t *Table) ProcessStrict(group []*ast.TypeDef) *TableError {
	var first *TableError
	t.process(group, func(err *TableError) {
		if first == nil {
			first = err
		}
	})
	return first
}

func (t *Table) process(group []*ast.TypeDef, report func(*TableError)) {
	// A definition whose type name was rejected in phase 1 is skipped in
	// phase 2: the failure is fatal for that definition only.
	rejected := map[*ast.TypeDef]bool{}
	for _, td := range group {
		u := ast.NewUser(td.Name)
		u.SetPos(td.Pos())
		if err := t.insertType(u, td.IsBuiltin); err != nil {
			report(err)
			rejected[td] = true
		}
	}
	for _, td := range group {
		if rejected[td] {
			continue
		}
		owner := ast.NewUser(td.Name)
		owner.SetPos(td.Pos())
		for _, c := range td.Constructors {
			if err := t.insertConstructor(owner, c); err != nil {
				report(err)
			}
		}
	}
}
