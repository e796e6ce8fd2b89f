// Package types implements the Llama type model that sits above
// internal/ast's type nodes: well-formedness validation and the type
// definition table that catalogues user ADTs and their constructors.
package types

import (
	"fmt"

	"github.com/gmofishsauce/llama/internal/ast"
	"github.com/gmofishsauce/llama/internal/diag"
)

// ErrorKind tags the reason a type expression failed validation.
type ErrorKind int

const (
	ArrayOfArray ErrorKind = iota
	ArrayReturn
	RefOfArray
)

func (k ErrorKind) String() string {
	switch k {
	case ArrayOfArray:
		return "ArrayOfArray"
	case ArrayReturn:
		return "ArrayReturn"
	case RefOfArray:
		return "RefOfArray"
	default:
		return "UnknownValidationError"
	}
}

// ValidationError is the typed failure returned by Check. It implements
// error so callers who prefer exceptions-by-another-name can use
// errors.As; callers who prefer the logging style use Validate instead.
type ValidationError struct {
	Kind ErrorKind
	Node ast.Type
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ArrayOfArray:
		return fmt.Sprintf("Array of array is not allowed: %s", e.Node)
	case ArrayReturn:
		return fmt.Sprintf("Function returning an array is not allowed: %s", e.Node)
	case RefOfArray:
		return fmt.Sprintf("Reference to an array is not allowed: %s", e.Node)
	default:
		return "invalid type"
	}
}

// Check walks t and returns the first well-formedness violation found,
// or nil if t is well-formed. Builtins and user-type references are
// always valid; Ref(T) and Array(T, n) require T to not itself be an
// array; Function(A, B) requires B to not be an array.
func Check(t ast.Type) error {
	switch n := t.(type) {
	case *ast.Builtin, *ast.User:
		return nil
	case *ast.Ref:
		if err := Check(n.Elem); err != nil {
			return err
		}
		if ast.IsArray(n.Elem) {
			return &ValidationError{Kind: RefOfArray, Node: n}
		}
		return nil
	case *ast.Array:
		if err := Check(n.Elem); err != nil {
			return err
		}
		if ast.IsArray(n.Elem) {
			return &ValidationError{Kind: ArrayOfArray, Node: n}
		}
		return nil
	case *ast.Function:
		if err := Check(n.From); err != nil {
			return err
		}
		if err := Check(n.To); err != nil {
			return err
		}
		if ast.IsArray(n.To) {
			return &ValidationError{Kind: ArrayReturn, Node: n}
		}
		return nil
	default:
		return nil
	}
}

// Validate checks t and, on failure, logs the violation at the
// position of the offending (sub)node and returns false. This is the style the parser
// uses: a validation failure is recorded but does not abort the
// surrounding reduction.
func Validate(log diag.Logger, t ast.Type) bool {
	err := Check(t)
	if err == nil {
		return true
	}
	ve := err.(*ValidationError)
	pos := diag.Position{Line: ve.Node.Pos().Line, Column: ve.Node.Pos().Column}
	log.Errorf(pos, "%s", ve.Error())
	return false
}
