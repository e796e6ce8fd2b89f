// Package symtab implements Llama's lexically scoped symbol table: a
// stack of scopes plus a per-identifier stack of active bindings,
// supporting shadowing and the visibility flag that stages recursive
// let bindings (a scope's names exist before they're safe to resolve).
package symtab

import (
	"fmt"

	"github.com/gmofishsauce/llama/internal/ast"
)

// Symbol is any name-bearing AST node the table can hold: function and
// variable definitions, parameters, and the identifier patterns bound
// by a match clause.
type Symbol interface {
	ast.Node
	SymbolName() string
}

// Entry is one binding: the bound node and the scope that owns it.
type Entry struct {
	Node  Symbol
	Scope *Scope
}

// Scope is one lexical level: its own entries, a nesting depth, and a
// visibility flag used to stage recursive-let bindings.
type Scope struct {
	entries []*Entry
	visible bool
	nesting int
}

func (s *Scope) Nesting() int  { return s.nesting }
func (s *Scope) Visible() bool { return s.visible }

// SetVisible flips a scope's visibility, enabling the recursive-let
// pattern: insert the names being defined while invisible, process
// their bodies (which may refer to each other only once visible), then
// make the scope visible.
func (s *Scope) SetVisible(v bool) { s.visible = v }

// RedefinitionError reports a name already bound at the current
// nesting depth.
type RedefinitionError struct {
	Node     Symbol
	Previous Symbol
}

func (e *RedefinitionError) Error() string {
	return fmt.Sprintf("Redefining identifier '%s' in same scope\tPrevious definition: %s",
		e.Node.SymbolName(), e.Previous.Pos())
}

// SymbolTable is the scope stack plus the identifier dictionary.
type SymbolTable struct {
	scopes []*Scope
	idents map[string][]*Entry
}

// New creates a SymbolTable with its outermost scope already open and
// visible — the library namespace (see SPEC_FULL.md §3a) is seeded by
// SeedLibrary, not by New itself, so embedders that don't want the
// prelude can skip it.
func New() *SymbolTable {
	t := &SymbolTable{idents: map[string][]*Entry{}}
	t.OpenScope()
	return t
}

func (t *SymbolTable) current() *Scope {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[len(t.scopes)-1]
}

// OpenScope pushes a new, initially visible, empty scope.
func (t *SymbolTable) OpenScope() *Scope {
	s := &Scope{visible: true, nesting: len(t.scopes) + 1}
	t.scopes = append(t.scopes, s)
	return s
}

// CloseScope pops the innermost scope, removing each of its entries
// from the identifier dictionary so that any shadowed outer binding
// becomes visible again.
func (t *SymbolTable) CloseScope() {
	s := t.current()
	if s == nil {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
	for _, e := range s.entries {
		name := e.Node.SymbolName()
		stack := t.idents[name]
		// The entry being removed must be the top of its stack: scopes
		// close in LIFO order and insertion always pushes.
		if n := len(stack); n > 0 {
			stack = stack[:n-1]
		}
		if len(stack) == 0 {
			delete(t.idents, name)
		} else {
			t.idents[name] = stack
		}
	}
}

// InsertSymbol binds node's name in the current scope. It fails if an
// entry for the same name already exists at the current nesting depth
// (shadowing an outer scope's binding of the same name is fine; a
// second binding at the same depth is not).
func (t *SymbolTable) InsertSymbol(node Symbol) error {
	cur := t.current()
	if prev := t.FindSymbolInCurrentScope(node.SymbolName()); prev != nil {
		return &RedefinitionError{Node: node, Previous: prev}
	}
	e := &Entry{Node: node, Scope: cur}
	cur.entries = append(cur.entries, e)
	t.idents[node.SymbolName()] = append(t.idents[node.SymbolName()], e)
	return nil
}

// FindSymbolInCurrentScope returns the symbol bound to name whose
// nesting depth equals the current scope's, ignoring visibility, or
// nil if there is none.
func (t *SymbolTable) FindSymbolInCurrentScope(name string) Symbol {
	cur := t.current()
	if cur == nil {
		return nil
	}
	stack := t.idents[name]
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Scope.nesting == cur.nesting {
			return stack[i].Node
		}
		if stack[i].Scope.nesting < cur.nesting {
			break
		}
	}
	return nil
}

// FindLiveDef walks the binding stack for name from innermost to
// outermost and returns the first one whose owning scope is visible,
// or nil if none is live. This is the lookup later semantic stages use
// to resolve a reference.
func (t *SymbolTable) FindLiveDef(name string) Symbol {
	stack := t.idents[name]
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Scope.visible {
			return stack[i].Node
		}
	}
	return nil
}

// Depth returns the current nesting depth (0 if no scope is open).
func (t *SymbolTable) Depth() int {
	return len(t.scopes)
}
