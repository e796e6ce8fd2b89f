// Package parser implements a hand-written Llama parser: recursive
// descent for declarations, patterns and the type sub-grammar, with a
// precedence-climbing core for expressions. It mirrors the reference
// implementation's single grammar table (see the operator precedence
// list this file's tables are transcribed from) rather than a
// generated LALR parser, since Go has no bundled parser generator in
// this toolchain's lineage.
package parser

import (
	"math/big"

	"github.com/gmofishsauce/llama/internal/ast"
	"github.com/gmofishsauce/llama/internal/diag"
	"github.com/gmofishsauce/llama/internal/lexer"
	"github.com/gmofishsauce/llama/internal/token"
	"github.com/gmofishsauce/llama/internal/types"
)

// Parser turns Llama source text into an ast.Program, validating and
// cataloguing every type expression it builds along the way. A Parser
// owns its Type Table: construct one Parser per compile.
type Parser struct {
	log          diag.Logger
	verbose      bool
	lexerVerbose bool

	toks []token.Token
	pos  int

	Types *types.Table
}

// New creates a Parser reporting diagnostics to log, with a fresh Type
// Table preloaded with the builtins.
func New(log diag.Logger) *Parser {
	return &Parser{log: log, Types: types.NewTable(log)}
}

// SetVerbose toggles -pv/--parser-verbose style tracing via Infof.
func (p *Parser) SetVerbose(v bool) { p.verbose = v }

// SetLexerVerbose toggles -lv/--lexer-verbose tracing on the Lexer
// Parse constructs internally.
func (p *Parser) SetLexerVerbose(v bool) { p.lexerVerbose = v }

// Parse parses text with a fresh Parser reporting to log and returns
// the Program together with the Type Table the parse populated.
func Parse(text string, log diag.Logger) (*ast.Program, *types.Table) {
	p := New(log)
	prog := p.Parse(text)
	return prog, p.Types
}

// Parse lexes and parses text into a Program. Parse errors are logged
// through p's Logger and parsing recovers at the next declaration
// boundary; the returned Program holds whatever declarations were
// successfully recognized.
func (p *Parser) Parse(text string) *ast.Program {
	lx := lexer.New(p.log)
	lx.SetVerbose(p.lexerVerbose)
	lx.Input(text)
	p.toks = lx.All()
	p.pos = 0

	prog := &ast.Program{}
	for p.peek().Kind != token.EOF {
		before := p.pos
		if decl := p.parseDecl(); decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
		if p.pos == before {
			// parseDecl made no progress (an unrecognized leading token);
			// force progress so a malformed top level can't loop forever.
			p.advance()
		}
	}
	return prog
}

// ---- token stream plumbing ----

func (p *Parser) peek() token.Token { return p.toks[p.pos] }

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	if p.verbose {
		p.log.Infof("parser: consumed %s", t)
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.peek().Kind == k }

func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k, or logs a syntax error and leaves
// the stream positioned on the unexpected token (so the caller's own
// recovery, typically "skip to the next declaration", can proceed).
func (p *Parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	tok := p.peek()
	p.log.Errorf(posOf(tok), "Expected %s but found %s.", k, tok.Kind)
	return tok
}

func posOf(tok token.Token) diag.Position {
	return diag.Position{Line: tok.Line, Column: tok.Column}
}

func textOf(tok token.Token) string {
	if s, ok := tok.Value.(string); ok {
		return s
	}
	return tok.Text
}

func setPos(n ast.Node, tok token.Token) {
	n.SetPos(ast.Position{Line: tok.Line, Column: tok.Column})
}

// ---- declarations ----

func (p *Parser) parseDecl() ast.Decl {
	switch p.peek().Kind {
	case token.LET:
		return p.parseLetDef()
	case token.TYPE:
		return p.parseTypeDefGroup()
	default:
		tok := p.peek()
		p.log.Errorf(posOf(tok), "Expected a 'let' or 'type' declaration, found %s.", tok.Kind)
		p.advance()
		return nil
	}
}

func (p *Parser) parseLetDef() *ast.LetDef {
	tok := p.expect(token.LET)
	ld := &ast.LetDef{}
	setPos(ld, tok)
	if _, ok := p.accept(token.REC); ok {
		ld.IsRec = true
	}
	ld.Defs = append(ld.Defs, p.parseDef())
	for {
		if _, ok := p.accept(token.AND); !ok {
			break
		}
		ld.Defs = append(ld.Defs, p.parseDef())
	}
	return ld
}

func (p *Parser) parseDef() ast.Def {
	if p.at(token.MUTABLE) {
		return p.parseVariableDef()
	}
	return p.parseFunctionDef()
}

func (p *Parser) parseFunctionDef() *ast.FunctionDef {
	nameTok := p.expect(token.GENID)
	fd := &ast.FunctionDef{Name: textOf(nameTok)}
	setPos(fd, nameTok)
	for p.at(token.GENID) || p.at(token.LPAREN) {
		fd.Params = append(fd.Params, p.parseParam())
	}
	if _, ok := p.accept(token.COLON); ok {
		fd.RetType = p.parseType()
	}
	p.expect(token.EQ)
	fd.Body = p.parseExpr()
	return fd
}

func (p *Parser) parseParam() *ast.Param {
	if p.at(token.GENID) {
		tok := p.advance()
		pm := &ast.Param{Name: textOf(tok)}
		setPos(pm, tok)
		return pm
	}
	lp := p.expect(token.LPAREN)
	if _, ok := p.accept(token.RPAREN); ok {
		// "()" is the conventional unit parameter, not an empty list.
		pm := &ast.Param{Name: "()", Type: ast.NewBuiltin(ast.TUnit)}
		setPos(pm, lp)
		return pm
	}
	nameTok := p.expect(token.GENID)
	p.expect(token.COLON)
	ty := p.parseType()
	p.expect(token.RPAREN)
	pm := &ast.Param{Name: textOf(nameTok), Type: ty}
	setPos(pm, lp)
	return pm
}

// parseVariableDef handles "mutable name [: T]" and the array form
// "mutable name [d1, d2, ...] [: T]". Per the AST invariant, a declared
// element type is always stored as the synthesized Ref(T) / Array(T,n),
// never the bare T the source wrote.
func (p *Parser) parseVariableDef() ast.Def {
	p.expect(token.MUTABLE)
	nameTok := p.expect(token.GENID)

	if _, ok := p.accept(token.LBRACK); ok {
		avd := &ast.ArrayVariableDef{Name: textOf(nameTok)}
		setPos(avd, nameTok)
		avd.Dims = append(avd.Dims, p.parseIndexExpr())
		for {
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
			avd.Dims = append(avd.Dims, p.parseIndexExpr())
		}
		p.expect(token.RBRACK)
		if _, ok := p.accept(token.COLON); ok {
			elem := p.parseType()
			arr := ast.NewArray(elem, len(avd.Dims))
			ast.CopyPos(arr, elem)
			types.Validate(p.log, arr)
			avd.Type = arr
		}
		return avd
	}

	vd := &ast.VariableDef{Name: textOf(nameTok)}
	setPos(vd, nameTok)
	if _, ok := p.accept(token.COLON); ok {
		elem := p.parseType()
		ref := ast.NewRef(elem)
		ast.CopyPos(ref, elem)
		types.Validate(p.log, ref)
		vd.Type = ref
	}
	return vd
}

func (p *Parser) parseTypeDefGroup() *ast.TypeDefGroup {
	tok := p.expect(token.TYPE)
	group := &ast.TypeDefGroup{}
	setPos(group, tok)
	group.Defs = append(group.Defs, p.parseTypeDef())
	for {
		if _, ok := p.accept(token.AND); !ok {
			break
		}
		group.Defs = append(group.Defs, p.parseTypeDef())
	}
	// Feed the whole "and"-group to the Type Table in one call so that
	// mutually recursive definitions resolve regardless of order.
	p.Types.Process(group.Defs)
	return group
}

var builtinTypeNames = map[token.Kind]bool{
	token.UNIT: true, token.INT: true, token.CHAR: true, token.BOOL: true, token.FLOAT: true,
}

func (p *Parser) parseTypeDef() *ast.TypeDef {
	tok := p.peek()
	var name string
	isBuiltin := false
	switch {
	case tok.Kind == token.GENID:
		p.advance()
		name = textOf(tok)
	case builtinTypeNames[tok.Kind]:
		p.advance()
		name = tok.Text
		isBuiltin = true
	default:
		p.log.Errorf(posOf(tok), "Expected a type name, found %s.", tok.Kind)
		p.advance()
		name = "?"
	}
	td := &ast.TypeDef{Name: name, IsBuiltin: isBuiltin}
	setPos(td, tok)
	p.expect(token.EQ)
	td.Constructors = append(td.Constructors, p.parseConstructor())
	for {
		if _, ok := p.accept(token.PIPE); !ok {
			break
		}
		td.Constructors = append(td.Constructors, p.parseConstructor())
	}
	return td
}

func (p *Parser) parseConstructor() *ast.Constructor {
	nameTok := p.expect(token.CONID)
	c := &ast.Constructor{Name: textOf(nameTok)}
	setPos(c, nameTok)
	if _, ok := p.accept(token.OF); ok {
		for p.startsType() {
			c.Args = append(c.Args, p.parseRefType())
		}
	}
	return c
}

func (p *Parser) startsType() bool {
	switch p.peek().Kind {
	case token.LPAREN, token.UNIT, token.INT, token.CHAR, token.BOOL, token.FLOAT, token.GENID, token.ARRAY:
		return true
	default:
		return false
	}
}

// ---- types ----
//
// Three tiers, loosest to tightest, matching the operator precedence
// table: "->" is right-associative and binds loosest; "ref" is a
// postfix operator, left-stacking ("t ref ref" is "(t ref) ref"); an
// atom is a builtin spelling, a user name, a parenthesized type, or an
// "array [* ,...] of" construction whose element is itself parsed at
// the ref tier (so "array of int ref" is "array of (int ref)" but
// "array of int -> int" is "(array of int) -> int", since only the ref
// tier — not arrow — is folded into the element).

func (p *Parser) parseType() ast.Type { return p.parseArrowType() }

func (p *Parser) parseArrowType() ast.Type {
	left := p.parseRefType()
	if _, ok := p.accept(token.ARROW); ok {
		right := p.parseArrowType()
		fn := ast.NewFunction(left, right)
		ast.CopyPos(fn, left)
		types.Validate(p.log, fn)
		return fn
	}
	return left
}

func (p *Parser) parseRefType() ast.Type {
	t := p.parseAtomType()
	for {
		if _, ok := p.accept(token.REF); !ok {
			break
		}
		r := ast.NewRef(t)
		ast.CopyPos(r, t)
		types.Validate(p.log, r)
		t = r
	}
	return t
}

func (p *Parser) parseAtomType() ast.Type {
	tok := p.peek()
	switch tok.Kind {
	case token.LPAREN:
		p.advance()
		t := p.parseArrowType()
		p.expect(token.RPAREN)
		return t
	case token.UNIT:
		p.advance()
		return withPos(ast.NewBuiltin(ast.TUnit), tok)
	case token.INT:
		p.advance()
		return withPos(ast.NewBuiltin(ast.TInt), tok)
	case token.CHAR:
		p.advance()
		return withPos(ast.NewBuiltin(ast.TChar), tok)
	case token.BOOL:
		p.advance()
		return withPos(ast.NewBuiltin(ast.TBool), tok)
	case token.FLOAT:
		p.advance()
		return withPos(ast.NewBuiltin(ast.TFloat), tok)
	case token.GENID:
		p.advance()
		return withPos(ast.NewUser(textOf(tok)), tok)
	case token.ARRAY:
		return p.parseArrayType()
	default:
		p.log.Errorf(posOf(tok), "Expected a type, found %s.", tok.Kind)
		p.advance()
		return ast.NewBuiltin(ast.TUnit)
	}
}

func withPos(t ast.Type, tok token.Token) ast.Type {
	setPos(t, tok)
	return t
}

func (p *Parser) parseArrayType() ast.Type {
	tok := p.expect(token.ARRAY)
	dims := 1
	if _, ok := p.accept(token.LBRACK); ok {
		p.expect(token.STAR)
		dims = 1
		for {
			if _, ok := p.accept(token.COMMA); !ok {
				break
			}
			p.expect(token.STAR)
			dims++
		}
		p.expect(token.RBRACK)
	}
	p.expect(token.OF)
	elem := p.parseRefType()
	arr := ast.NewArray(elem, dims)
	setPos(arr, tok)
	types.Validate(p.log, arr)
	return arr
}

// ---- expressions ----
//
// binOps transcribes the operator precedence table: higher prec binds
// tighter. ";" and ":=" sit at the loose end so that a then/else/do
// branch's expression naturally stops before a structural keyword
// (those keywords never appear in binOps, so the climb simply halts).
type opInfo struct {
	prec     int
	rightAsc bool
	nonAsc   bool
}

var binOps = map[token.Kind]opInfo{
	token.SEMI:   {5, false, false},
	token.ASSIGN: {8, false, true},
	token.OROR:   {9, false, false},
	token.ANDAND: {10, false, false},
	token.LT:     {11, false, true},
	token.LE:     {11, false, true},
	token.GT:     {11, false, true},
	token.GE:     {11, false, true},
	token.EQ:     {11, false, true},
	token.NE:     {11, false, true},
	token.DEQ:    {11, false, true},
	token.NEQ:    {11, false, true},
	token.PLUS:   {12, false, false},
	token.MINUS:  {12, false, false},
	token.FPLUS:  {12, false, false},
	token.FMINUS: {12, false, false},
	token.STAR:   {13, false, false},
	token.SLASH:  {13, false, false},
	token.FSTAR:  {13, false, false},
	token.FSLASH: {13, false, false},
	token.MOD:    {13, false, false},
	token.FPOW:   {14, true, false},
}

// parseExpr is the entry point for a full expression, including ";"
// sequencing and ":=" assignment.
func (p *Parser) parseExpr() ast.Expr { return p.parseBinary(5) }

// parseIndexExpr is used for array indices and array dimension bounds:
// the same climb, but starting above ";" and ":="
// so a bare assignment or sequence can't leak into an index position.
func (p *Parser) parseIndexExpr() ast.Expr { return p.parseBinary(9) }

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	left := p.parseUnary()
	for {
		info, ok := binOps[p.peek().Kind]
		if !ok || info.prec < minPrec {
			break
		}
		opTok := p.advance()
		next := info.prec + 1
		if info.rightAsc {
			next = info.prec
		}
		right := p.parseBinary(next)
		be := &ast.BinaryExpr{Left: left, Op: opTok.Text, Right: right}
		ast.CopyPos(be, left)
		left = be
		// A non-associative operator may not be followed by another of
		// the same precedence; a looser operator still continues the climb.
		if follow, ok := binOps[p.peek().Kind]; info.nonAsc && ok && follow.prec == info.prec {
			break
		}
	}
	return left
}

var unaryOps = map[token.Kind]string{
	token.PLUS:   "+",
	token.MINUS:  "-",
	token.FPLUS:  "+.",
	token.FMINUS: "-.",
	token.NOT:    "not",
}

// parseUnary handles the prefix operators, which bind tighter than
// every binary operator (so "+1 ** 2" is "(+1) ** 2") but looser than
// application and the simple_expr forms (so "- f x" is "-(f x)").
func (p *Parser) parseUnary() ast.Expr {
	tok := p.peek()
	if tok.Kind == token.DELETE {
		p.advance()
		operand := p.parseApplication()
		de := &ast.DeleteExpr{Operand: operand}
		setPos(de, tok)
		return de
	}
	if opText, ok := unaryOps[tok.Kind]; ok {
		p.advance()
		operand := p.parseUnary()
		ue := &ast.UnaryExpr{Op: opText, Operand: operand}
		setPos(ue, tok)
		return ue
	}
	return p.parseApplication()
}

// parseApplication recognizes juxtaposition: a GENID or CONID followed
// by one or more simple_expr operands is a function or constructor
// call; standing alone, it's a bare identifier/constructor reference.
func (p *Parser) parseApplication() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.GENID:
		p.advance()
		if p.at(token.LBRACK) {
			return p.parseArrayIndex(tok)
		}
		var args []ast.Expr
		for p.startsSimpleExpr() {
			args = append(args, p.parseSimpleExpr())
		}
		if len(args) == 0 {
			ge := &ast.GenidExpr{Name: textOf(tok)}
			setPos(ge, tok)
			return ge
		}
		fc := &ast.FunctionCallExpr{Name: textOf(tok), Args: args}
		setPos(fc, tok)
		return fc
	case token.CONID:
		p.advance()
		var args []ast.Expr
		for p.startsSimpleExpr() {
			args = append(args, p.parseSimpleExpr())
		}
		if len(args) == 0 {
			ce := &ast.ConidExpr{Name: textOf(tok)}
			setPos(ce, tok)
			return ce
		}
		cc := &ast.ConstructorCallExpr{Name: textOf(tok), Args: args}
		setPos(cc, tok)
		return cc
	default:
		return p.parseSimpleExpr()
	}
}

func (p *Parser) startsSimpleExpr() bool {
	switch p.peek().Kind {
	case token.BANG, token.NEW, token.DIM, token.LPAREN, token.BEGIN,
		token.ICONST, token.FCONST, token.CCONST, token.SCONST, token.TRUE, token.FALSE,
		token.GENID, token.CONID,
		token.IF, token.WHILE, token.FOR, token.LET, token.MATCH:
		return true
	default:
		return false
	}
}

// parseArrayIndex parses "name[i, j, ...]". Chaining a second "[...]"
// directly afterward is a parse error: array indexing is not itself
// indexable.
func (p *Parser) parseArrayIndex(nameTok token.Token) ast.Expr {
	p.expect(token.LBRACK)
	ae := &ast.ArrayExpr{Name: textOf(nameTok)}
	setPos(ae, nameTok)
	ae.Indices = append(ae.Indices, p.parseIndexExpr())
	for {
		if _, ok := p.accept(token.COMMA); !ok {
			break
		}
		ae.Indices = append(ae.Indices, p.parseIndexExpr())
	}
	p.expect(token.RBRACK)
	if p.at(token.LBRACK) {
		p.log.Errorf(posOf(p.peek()), "Array indexing cannot be chained.")
		// Panic-mode recovery: swallow the extra "[...]" so a single
		// mistake doesn't cascade into spurious top-level errors.
		p.advance()
		for !p.at(token.RBRACK) && !p.at(token.EOF) {
			p.advance()
		}
		p.accept(token.RBRACK)
	}
	return ae
}

// parseSimpleExpr parses one atomic operand: a constant, identifier or
// constructor reference, a parenthesized or begin/end-bracketed
// expression, a prefix form (deref, new, dim), or one of the
// keyword-led compound forms (if/while/for/let/match).
func (p *Parser) parseSimpleExpr() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.BANG:
		p.advance()
		operand := p.parseSimpleExpr()
		de := &ast.DerefExpr{Operand: operand}
		setPos(de, tok)
		return de
	case token.NEW:
		p.advance()
		ty := p.parseRefType()
		types.Validate(p.log, ty)
		ne := &ast.NewExpr{Type: ty}
		setPos(ne, tok)
		return ne
	case token.DIM:
		p.advance()
		dim := 1
		if p.at(token.ICONST) {
			if iv, ok := p.peek().Value.(*big.Int); ok {
				dim = int(iv.Int64())
			}
			p.advance()
		}
		nameTok := p.expect(token.GENID)
		dexp := &ast.DimExpr{Name: textOf(nameTok), Dimension: dim}
		setPos(dexp, tok)
		return dexp
	case token.LPAREN:
		p.advance()
		if _, ok := p.accept(token.RPAREN); ok {
			ce := &ast.ConstExpr{Kind: ast.TUnit}
			setPos(ce, tok)
			return ce
		}
		e := p.parseExpr()
		p.expect(token.RPAREN)
		return e
	case token.BEGIN:
		p.advance()
		e := p.parseExpr()
		p.expect(token.END)
		return e
	case token.ICONST:
		p.advance()
		return constExpr(ast.TInt, tok)
	case token.FCONST:
		p.advance()
		return constExpr(ast.TFloat, tok)
	case token.CCONST:
		p.advance()
		return constExpr(ast.TChar, tok)
	case token.SCONST:
		p.advance()
		return constExpr(ast.TString, tok)
	case token.TRUE, token.FALSE:
		p.advance()
		return constExpr(ast.TBool, tok)
	case token.GENID:
		p.advance()
		if p.at(token.LBRACK) {
			return p.parseArrayIndex(tok)
		}
		ge := &ast.GenidExpr{Name: textOf(tok)}
		setPos(ge, tok)
		return ge
	case token.CONID:
		p.advance()
		ce := &ast.ConidExpr{Name: textOf(tok)}
		setPos(ce, tok)
		return ce
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseForExpr()
	case token.LET:
		return p.parseLetIn()
	case token.MATCH:
		return p.parseMatch()
	default:
		p.log.Errorf(posOf(tok), "Unexpected token %s in expression.", tok.Kind)
		p.advance()
		ce := &ast.ConstExpr{Kind: ast.TUnit}
		setPos(ce, tok)
		return ce
	}
}

func constExpr(kind ast.BuiltinKind, tok token.Token) *ast.ConstExpr {
	ce := &ast.ConstExpr{Kind: kind, Value: tok.Value}
	setPos(ce, tok)
	return ce
}

// parseIf relies on greedy else-attachment (consume an "else" whenever
// one immediately follows a then-branch) to resolve the dangling-else
// ambiguity in the nonassoc then/else precedence pair: else always
// binds to the nearest unmatched if. Both branches stop before ";",
// which binds looser than then/else: "if p then a; b" is
// "(if p then a); b".
func (p *Parser) parseIf() ast.Expr {
	tok := p.expect(token.IF)
	cond := p.parseExpr()
	p.expect(token.THEN)
	thenE := p.parseBinary(binOps[token.SEMI].prec + 1)
	ie := &ast.IfExpr{Cond: cond, Then: thenE}
	setPos(ie, tok)
	if _, ok := p.accept(token.ELSE); ok {
		ie.Else = p.parseBinary(binOps[token.SEMI].prec + 1)
	}
	return ie
}

func (p *Parser) parseWhile() ast.Expr {
	tok := p.expect(token.WHILE)
	cond := p.parseExpr()
	p.expect(token.DO)
	body := p.parseExpr()
	p.expect(token.DONE)
	we := &ast.WhileExpr{Cond: cond, Body: body}
	setPos(we, tok)
	return we
}

func (p *Parser) parseForExpr() ast.Expr {
	tok := p.expect(token.FOR)
	counterTok := p.expect(token.GENID)
	p.expect(token.EQ)
	start := p.parseExpr()
	down := false
	switch {
	case p.at(token.TO):
		p.advance()
	case p.at(token.DOWNTO):
		p.advance()
		down = true
	default:
		p.log.Errorf(posOf(p.peek()), "Expected 'to' or 'downto'.")
	}
	stop := p.parseExpr()
	p.expect(token.DO)
	body := p.parseExpr()
	p.expect(token.DONE)
	fe := &ast.ForExpr{Counter: textOf(counterTok), Start: start, Stop: stop, Down: down, Body: body}
	setPos(fe, tok)
	return fe
}

func (p *Parser) parseLetIn() ast.Expr {
	ld := p.parseLetDef()
	p.expect(token.IN)
	body := p.parseExpr()
	le := &ast.LetInExpr{LetDef: ld, Body: body}
	ast.CopyPos(le, ld)
	return le
}

func (p *Parser) parseMatch() ast.Expr {
	tok := p.expect(token.MATCH)
	subj := p.parseExpr()
	p.expect(token.WITH)
	p.accept(token.PIPE) // optional leading pipe before the first clause
	me := &ast.MatchExpr{Subject: subj}
	setPos(me, tok)
	me.Clauses = append(me.Clauses, p.parseClause())
	for {
		if _, ok := p.accept(token.PIPE); !ok {
			break
		}
		me.Clauses = append(me.Clauses, p.parseClause())
	}
	p.expect(token.END)
	return me
}

func (p *Parser) parseClause() *ast.Clause {
	pat := p.parsePattern()
	p.expect(token.ARROW)
	body := p.parseExpr()
	c := &ast.Clause{Pattern: pat, Body: body}
	ast.CopyPos(c, pat)
	return c
}

// ---- patterns ----

func (p *Parser) parsePattern() ast.Pattern {
	tok := p.peek()
	switch tok.Kind {
	case token.LPAREN:
		p.advance()
		pat := p.parsePattern()
		p.expect(token.RPAREN)
		return pat
	case token.ICONST:
		p.advance()
		return constPattern(ast.TInt, tok)
	case token.FCONST:
		p.advance()
		return constPattern(ast.TFloat, tok)
	case token.CCONST:
		p.advance()
		return constPattern(ast.TChar, tok)
	case token.SCONST:
		p.advance()
		return constPattern(ast.TString, tok)
	case token.TRUE, token.FALSE:
		p.advance()
		return constPattern(ast.TBool, tok)
	case token.GENID:
		p.advance()
		gp := &ast.GenidPattern{Name: textOf(tok)}
		setPos(gp, tok)
		return gp
	case token.CONID:
		p.advance()
		cp := &ast.ConstructorPattern{Name: textOf(tok)}
		setPos(cp, tok)
		for p.startsPatternAtom() {
			cp.Args = append(cp.Args, p.parsePatternAtom())
		}
		return cp
	default:
		p.log.Errorf(posOf(tok), "Expected a pattern, found %s.", tok.Kind)
		p.advance()
		gp := &ast.GenidPattern{Name: "_"}
		setPos(gp, tok)
		return gp
	}
}

// parsePatternAtom parses one constructor-pattern argument: like
// parsePattern, but a nested constructor application must be
// parenthesized ("Cons x (Cons y Nil)"), matching the identical
// restriction on expression application arguments.
func (p *Parser) parsePatternAtom() ast.Pattern {
	tok := p.peek()
	if tok.Kind == token.CONID {
		p.advance()
		cp := &ast.ConstructorPattern{Name: textOf(tok)}
		setPos(cp, tok)
		return cp
	}
	return p.parsePattern()
}

func (p *Parser) startsPatternAtom() bool {
	switch p.peek().Kind {
	case token.LPAREN, token.ICONST, token.FCONST, token.CCONST, token.SCONST,
		token.TRUE, token.FALSE, token.GENID, token.CONID:
		return true
	default:
		return false
	}
}

func constPattern(kind ast.BuiltinKind, tok token.Token) *ast.ConstPattern {
	cp := &ast.ConstPattern{Kind: kind, Value: tok.Value}
	setPos(cp, tok)
	return cp
}
