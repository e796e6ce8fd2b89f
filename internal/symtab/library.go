package symtab

import "github.com/gmofishsauce/llama/internal/ast"

// libraryFunctions lists the built-in runtime functions a Llama
// program may call without declaring them, per SPEC_FULL.md §3a
// (supplemented from the reference implementation's standard prelude,
// since spec.md only says the outermost scope exists, not what it
// holds).
var libraryFunctions = []string{
	"print_int", "print_bool", "print_char", "print_string", "print_float",
	"read_int", "read_bool", "read_char", "read_string", "read_float",
	"int_of_char", "char_of_int", "round", "float_of_int", "int_of_float", "truncate",
	"sqrt", "cos", "sin", "tan", "atan", "exp", "ln", "pi",
	"abs", "fabs", "minimum", "maximum", "min", "max",
	"incr", "decr",
}

// SeedLibrary populates t's outermost scope with placeholder
// FunctionDef nodes for the built-in library functions, so that
// FindLiveDef succeeds on an ordinary library call even though the
// program never declares one. Call it once, immediately after New.
func SeedLibrary(t *SymbolTable) {
	for _, name := range libraryFunctions {
		// Ignore the error: the library list contains no duplicates by
		// construction, so InsertSymbol cannot fail here.
		_ = t.InsertSymbol(&ast.FunctionDef{Name: name})
	}
}
