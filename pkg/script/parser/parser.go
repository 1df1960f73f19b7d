package parser

import (
	"fmt"
	"os"
	"strconv"

	"turtlescript/console/pkg/script/ast"
	scripterrors "turtlescript/console/pkg/script/errors"
)

// Parser turns Turtle Script source into a tree the evaluator can run.
// Expression categories are checked while parsing, so trees produced here
// never trigger the evaluator's internal errors.
type Parser struct {
	maxFileSize  int64 // Maximum file size in bytes (default: 1MB)
	maxErrors    int   // Errors collected before giving up (default: 10)
	contextLines int   // Source lines shown around an error (default: 2)
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize:  1024 * 1024,
		maxErrors:    10,
		contextLines: 2,
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// WithMaxErrors sets how many errors are collected before parsing stops.
func (p *Parser) WithMaxErrors(n int) *Parser {
	p.maxErrors = n
	return p
}

// ParseFile parses the script file at path.
func (p *Parser) ParseFile(path string) (*ast.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &scripterrors.Error{
			Type:    scripterrors.ErrorTypeIO,
			Message: fmt.Sprintf("failed to access file: %v", err),
			Err:     err,
		}
	}
	if info.Size() > p.maxFileSize {
		return nil, &scripterrors.Error{
			Type:    scripterrors.ErrorTypeIO,
			Message: fmt.Sprintf("file %s is %d bytes, exceeds maximum %d", path, info.Size(), p.maxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &scripterrors.Error{
			Type:    scripterrors.ErrorTypeIO,
			Message: fmt.Sprintf("failed to read file: %v", err),
			Err:     err,
		}
	}

	return p.Parse(string(data), path)
}

// Parse parses source. name labels locations in errors and nodes, for
// example a file path or "<stdin>". An empty program yields a nil tree.
func (p *Parser) Parse(source, name string) (*ast.Node, error) {
	if int64(len(source)) > p.maxFileSize {
		return nil, &scripterrors.Error{
			Type:    scripterrors.ErrorTypeIO,
			Message: fmt.Sprintf("source is %d bytes, exceeds maximum %d", len(source), p.maxFileSize),
		}
	}

	s := &state{
		file:      name,
		tokens:    Tokenize(source),
		errs:      scripterrors.NewErrorList(),
		maxErrors: p.maxErrors,
	}

	tree := s.parseProgram()
	if s.errs.HasErrors() {
		return nil, s.errs.WithContext(source, p.contextLines)
	}
	return tree, nil
}

// bailout stops parsing once too many errors were collected.
type bailout struct{}

// state is the parser state for one source text.
type state struct {
	file      string
	tokens    []Token
	pos       int
	errs      *scripterrors.ErrorList
	maxErrors int
	inFunc    int
}

func (s *state) peek() Token {
	return s.tokens[s.pos]
}

func (s *state) peekAt(offset int) Token {
	if i := s.pos + offset; i < len(s.tokens) {
		return s.tokens[i]
	}
	return s.tokens[len(s.tokens)-1]
}

func (s *state) next() Token {
	tok := s.tokens[s.pos]
	if tok.Type != TokenEOF {
		s.pos++
	}
	return tok
}

func (s *state) at(t TokenType) bool {
	return s.peek().Type == t
}

func (s *state) atWord(word string) bool {
	tok := s.peek()
	return tok.Type == TokenIdent && tok.Literal == word
}

func (s *state) loc(tok Token) ast.Location {
	return ast.Location{File: s.file, Line: tok.Line, Column: tok.Column}
}

// errorf records a syntax error at tok.
func (s *state) errorf(tok Token, suggestion, format string, args ...interface{}) {
	s.errs.AddErrorWithSuggestion(scripterrors.ErrorTypeSyntax, fmt.Sprintf(format, args...), s.loc(tok), suggestion)
	if s.errs.Count() >= s.maxErrors {
		panic(bailout{})
	}
}

// expect consumes a token of type t or records an error.
func (s *state) expect(t TokenType, what string) (Token, bool) {
	tok := s.peek()
	if tok.Type != t {
		s.errorf(tok, "", "expected %s %s, found %s", t, what, tok.describe())
		return tok, false
	}
	return s.next(), true
}

// syncLine skips to the end of the current line after an error.
func (s *state) syncLine() {
	for !s.at(TokenNewline) && !s.at(TokenEOF) {
		s.next()
	}
}

func (s *state) skipNewlines() {
	for s.at(TokenNewline) {
		s.next()
	}
}

func (s *state) parseProgram() (tree *ast.Node) {
	defer func() {
		if rec := recover(); rec != nil {
			if _, ok := rec.(bailout); !ok {
				panic(rec)
			}
			tree = nil
		}
	}()

	stmts := s.parseStatements(TokenEOF)
	return ast.Sequence(stmts...)
}

// parseStatements parses statements until the closing token.
func (s *state) parseStatements(closing TokenType) []*ast.Node {
	var stmts []*ast.Node
	for {
		s.skipNewlines()
		if s.at(closing) || s.at(TokenEOF) {
			return stmts
		}
		if s.at(TokenRBrace) {
			s.errorf(s.peek(), "remove the extra '}'", "unexpected '}'")
			s.next()
			continue
		}

		errsBefore := s.errs.Count()
		stmt := s.parseStatement()
		if s.errs.Count() > errsBefore {
			s.syncLine()
			continue
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}

		if !s.at(TokenNewline) && !s.at(TokenEOF) && !s.at(closing) {
			s.errorf(s.peek(), "put each statement on its own line or separate them with ';'",
				"unexpected %s after statement", s.peek().describe())
			s.syncLine()
		}
	}
}

// parseBlock parses '{' statements '}'.
func (s *state) parseBlock() *ast.Node {
	open, ok := s.expect(TokenLBrace, "to open a block")
	if !ok {
		return nil
	}
	stmts := s.parseStatements(TokenRBrace)
	if !s.at(TokenRBrace) {
		s.errorf(s.peek(), fmt.Sprintf("close the block opened at line %d", open.Line), "unclosed '{'")
		return nil
	}
	s.next()
	return ast.Sequence(stmts...)
}

func (s *state) parseStatement() *ast.Node {
	tok := s.peek()
	if tok.Type != TokenIdent {
		s.errorf(tok, "", "expected a statement, found %s", tok.describe())
		return nil
	}

	if action, ok := turtleCommands[tok.Literal]; ok {
		return s.parseTurtle(action)
	}

	switch tok.Literal {
	case "if":
		return s.parseIf()
	case "while":
		s.next()
		cond := s.parseBool()
		body := s.parseBlock()
		return ast.NewWhile(cond, body).At(s.loc(tok))
	case "for":
		return s.parseFor()
	case "repeat":
		s.next()
		count := s.parseNumber()
		body := s.parseBlock()
		return ast.NewRepeat(count, body).At(s.loc(tok))
	case "function":
		return s.parseFunction()
	case "return":
		s.next()
		var value *ast.Node
		if !s.atStatementEnd() {
			value = s.parseNumber()
		}
		return ast.NewReturn(value).At(s.loc(tok))
	case "exit":
		s.next()
		return ast.NewExit().At(s.loc(tok))
	case "help":
		s.next()
		return ast.NewShowHelp().At(s.loc(tok))
	case "echo":
		s.next()
		return ast.NewEcho(s.parseValue()).At(s.loc(tok))
	case "load":
		s.next()
		return ast.NewLoadFile(s.parseValue()).At(s.loc(tok))
	case "color":
		return s.parseColor()
	case "call":
		return s.parseDynamicCall()
	}

	if keywords[tok.Literal] {
		s.errorf(tok, "", "%q cannot start a statement", tok.Literal)
		return nil
	}

	switch s.peekAt(1).Type {
	case TokenAssign:
		s.next()
		s.next()
		value := s.parseNumber()
		return ast.NewAssign(tok.Literal, value).At(s.loc(tok))
	case TokenLParen:
		return s.parseCall()
	}

	s.errorf(tok, scripterrors.SuggestKeyword(tok.Literal, commandWords), "unknown command %q", tok.Literal)
	return nil
}

// atStatementEnd reports whether the current statement has no more operands.
func (s *state) atStatementEnd() bool {
	switch s.peek().Type {
	case TokenNewline, TokenEOF, TokenRBrace:
		return true
	}
	return false
}

func (s *state) parseTurtle(action ast.Action) *ast.Node {
	tok := s.next()
	var param *ast.Node

	switch action.Param() {
	case ast.ParamNumber:
		if !s.atStatementEnd() {
			param = s.parseNumber()
		}
	case ast.ParamString:
		if s.atStatementEnd() {
			s.errorf(s.peek(), `for example: write "hello"`, "%s needs a value", tok.Literal)
			return nil
		}
		param = s.parseValue()
	}

	return ast.NewTurtle(action, param).At(s.loc(tok))
}

func (s *state) parseIf() *ast.Node {
	tok := s.next()
	cond := s.parseBool()
	then := s.parseBlock()

	var elseBranch *ast.Node
	if s.atWord("else") {
		s.next()
		if s.atWord("if") {
			elseBranch = s.parseIf()
		} else {
			elseBranch = s.parseBlock()
		}
	}
	return ast.NewIf(cond, then, elseBranch).At(s.loc(tok))
}

func (s *state) parseFor() *ast.Node {
	tok := s.next()
	name, ok := s.parseName("loop variable")
	if !ok {
		return nil
	}
	if _, ok := s.expect(TokenAssign, "after the loop variable"); !ok {
		return nil
	}
	begin := s.parseNumber()
	if !s.atWord("to") {
		s.errorf(s.peek(), "for example: for i = 1 to 10 { ... }", "expected 'to', found %s", s.peek().describe())
		return nil
	}
	s.next()
	end := s.parseNumber()
	body := s.parseBlock()
	return ast.NewFor(name, begin, end, body).At(s.loc(tok))
}

func (s *state) parseFunction() *ast.Node {
	tok := s.next()
	nameTok := s.peek()
	name, ok := s.parseName("function name")
	if !ok {
		return nil
	}
	if _, builtin := ast.LookupMathFunc(name); builtin {
		s.errorf(nameTok, "choose another name", "%q is a built-in math function", name)
		return nil
	}
	if s.inFunc > 0 {
		s.errorf(tok, "define functions at the top level", "function %s is defined inside another function", name)
		return nil
	}

	if _, ok := s.expect(TokenLParen, "after the function name"); !ok {
		return nil
	}

	var params []string
	seen := make(map[string]bool)
	for !s.at(TokenRParen) {
		ptok := s.peek()
		param, ok := s.parseName("parameter name")
		if !ok {
			return nil
		}
		if seen[param] {
			s.errorf(ptok, "", "duplicate parameter %q", param)
			return nil
		}
		seen[param] = true
		params = append(params, param)
		if !s.at(TokenComma) {
			break
		}
		s.next()
	}
	if _, ok := s.expect(TokenRParen, "to close the parameter list"); !ok {
		return nil
	}

	s.inFunc++
	body := s.parseBlock()
	s.inFunc--

	return ast.NewFunctionDef(name, params, body).At(s.loc(tok))
}

// parseName parses an identifier that is not a reserved word.
func (s *state) parseName(what string) (string, bool) {
	tok := s.peek()
	if tok.Type != TokenIdent {
		s.errorf(tok, "", "expected %s, found %s", what, tok.describe())
		return "", false
	}
	if isReserved(tok.Literal) {
		s.errorf(tok, "", "%q is reserved and cannot be used as %s", tok.Literal, what)
		return "", false
	}
	s.next()
	return tok.Literal, true
}

func (s *state) parseColor() *ast.Node {
	tok := s.next()
	red := s.parseNumber()
	if _, ok := s.expect(TokenComma, "between color channels"); !ok {
		return nil
	}
	green := s.parseNumber()
	if _, ok := s.expect(TokenComma, "between color channels"); !ok {
		return nil
	}
	blue := s.parseNumber()
	return ast.NewSetColor(red, green, blue).At(s.loc(tok))
}

// parseCall parses name(args).
func (s *state) parseCall() *ast.Node {
	tok := s.next()
	s.next() // (
	args := s.parseArgs()
	return ast.NewCall(ast.NewString(tok.Literal).At(s.loc(tok)), args).At(s.loc(tok))
}

// parseDynamicCall parses call(nameExpr, args...).
func (s *state) parseDynamicCall() *ast.Node {
	tok := s.next()
	if _, ok := s.expect(TokenLParen, "after call"); !ok {
		return nil
	}
	callee := s.parseValue()
	var args []*ast.Node
	if s.at(TokenComma) {
		s.next()
		args = s.parseArgs()
	} else if _, ok := s.expect(TokenRParen, "to close the call"); !ok {
		return nil
	}
	return ast.NewCall(callee, args).At(s.loc(tok))
}

// parseArgs parses numeric arguments up to and including ')'.
func (s *state) parseArgs() []*ast.Node {
	var args []*ast.Node
	for !s.at(TokenRParen) {
		args = append(args, s.parseNumber())
		if !s.at(TokenComma) {
			break
		}
		s.next()
	}
	s.expect(TokenRParen, "to close the argument list")
	return args
}

// parseNumber parses an expression that must be numeric.
func (s *state) parseNumber() *ast.Node {
	tok := s.peek()
	n := s.parseExpr()
	if n != nil && !n.IsNumeric() {
		s.errorf(tok, categoryHint(n), "expected a number, found %s", category(n))
		return nil
	}
	return n
}

// parseBool parses an expression that must be a condition.
func (s *state) parseBool() *ast.Node {
	tok := s.peek()
	n := s.parseExpr()
	if n != nil && !n.IsBoolean() {
		s.errorf(tok, "compare values, for example: x > 0", "expected a condition, found %s", category(n))
		return nil
	}
	return n
}

// parseValue parses an expression of any category.
func (s *state) parseValue() *ast.Node {
	return s.parseExpr()
}

func category(n *ast.Node) string {
	switch {
	case n.IsBoolean():
		return "a condition"
	case n.Kind == ast.KindString:
		return "a string"
	}
	return "a number"
}

func categoryHint(n *ast.Node) string {
	if n.IsBoolean() {
		return "conditions can only be used in if, while and echo"
	}
	return ""
}

// parseExpr parses an expression:
//
//	or < and < not < comparison < + - < * / % < unary - < primary
func (s *state) parseExpr() *ast.Node {
	return s.parseOr()
}

func (s *state) parseOr() *ast.Node {
	left := s.parseAnd()
	for s.atWord("or") {
		tok := s.next()
		right := s.parseAnd()
		if !s.boolOperands(tok, left, right) {
			return nil
		}
		left = ast.NewOr(left, right).At(s.loc(tok))
	}
	return left
}

func (s *state) parseAnd() *ast.Node {
	left := s.parseNot()
	for s.atWord("and") {
		tok := s.next()
		right := s.parseNot()
		if !s.boolOperands(tok, left, right) {
			return nil
		}
		left = ast.NewAnd(left, right).At(s.loc(tok))
	}
	return left
}

// boolOperands checks that both operands of and/or are conditions.
func (s *state) boolOperands(tok Token, left, right *ast.Node) bool {
	if left == nil || right == nil {
		return false
	}
	for _, n := range []*ast.Node{left, right} {
		if !n.IsBoolean() {
			s.errorf(tok, "compare values, for example: x > 0", "%s needs conditions on both sides, found %s", tok.Literal, category(n))
			return false
		}
	}
	return true
}

func (s *state) parseNot() *ast.Node {
	if !s.atWord("not") {
		return s.parseComparison()
	}
	tok := s.next()
	operand := s.parseNot()
	if operand == nil {
		return nil
	}
	if !operand.IsBoolean() {
		s.errorf(tok, "", "not needs a condition, found %s", category(operand))
		return nil
	}
	return ast.NewNot(operand).At(s.loc(tok))
}

func (s *state) parseComparison() *ast.Node {
	left := s.parseAdditive()
	op, ok := compareOps[s.peek().Type]
	if !ok {
		return left
	}
	tok := s.next()
	right := s.parseAdditive()
	if left == nil || right == nil {
		return nil
	}
	if !s.numericOperands(tok, left, right) {
		return nil
	}
	return ast.NewCompare(op, left, right).At(s.loc(tok))
}

var arithmetic = map[TokenType]ast.Kind{
	TokenPlus:    ast.KindAdd,
	TokenMinus:   ast.KindSubtract,
	TokenStar:    ast.KindMultiply,
	TokenSlash:   ast.KindDivide,
	TokenPercent: ast.KindModulo,
}

func (s *state) parseAdditive() *ast.Node {
	return s.parseBinary(s.parseMultiplicative, TokenPlus, TokenMinus)
}

func (s *state) parseMultiplicative() *ast.Node {
	return s.parseBinary(s.parseUnary, TokenStar, TokenSlash, TokenPercent)
}

// parseBinary parses a left-associative chain of numeric operators.
func (s *state) parseBinary(operand func() *ast.Node, ops ...TokenType) *ast.Node {
	left := operand()
	for {
		tok := s.peek()
		if !containsToken(ops, tok.Type) {
			return left
		}
		s.next()
		right := operand()
		if left == nil || right == nil {
			return nil
		}
		if !s.numericOperands(tok, left, right) {
			return nil
		}
		left = ast.NewBinary(arithmetic[tok.Type], left, right).At(s.loc(tok))
	}
}

func containsToken(ops []TokenType, t TokenType) bool {
	for _, op := range ops {
		if op == t {
			return true
		}
	}
	return false
}

func (s *state) numericOperands(tok Token, left, right *ast.Node) bool {
	for _, n := range []*ast.Node{left, right} {
		if !n.IsNumeric() {
			s.errorf(tok, categoryHint(n), "%s needs numbers on both sides, found %s", tok.Literal, category(n))
			return false
		}
	}
	return true
}

func (s *state) parseUnary() *ast.Node {
	if !s.at(TokenMinus) {
		return s.parsePrimary()
	}
	tok := s.next()
	operand := s.parseUnary()
	if operand == nil {
		return nil
	}
	if !operand.IsNumeric() {
		s.errorf(tok, "", "'-' needs a number, found %s", category(operand))
		return nil
	}
	return ast.NewNegate(operand).At(s.loc(tok))
}

func (s *state) parsePrimary() *ast.Node {
	tok := s.peek()

	switch tok.Type {
	case TokenInteger:
		s.next()
		v, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			f, _ := strconv.ParseFloat(tok.Literal, 64)
			return ast.NewFloat(f).At(s.loc(tok))
		}
		return ast.NewInteger(v).At(s.loc(tok))

	case TokenFloat:
		s.next()
		f, err := strconv.ParseFloat(tok.Literal, 64)
		if err != nil {
			s.errorf(tok, "", "invalid number %s", tok.Literal)
			return nil
		}
		return ast.NewFloat(f).At(s.loc(tok))

	case TokenString:
		s.next()
		return ast.NewString(tok.Literal).At(s.loc(tok))

	case TokenLParen:
		s.next()
		inner := s.parseExpr()
		if _, ok := s.expect(TokenRParen, "to close '('"); !ok {
			return nil
		}
		return inner

	case TokenIdent:
		return s.parseIdentExpr()

	case TokenIllegal:
		s.next()
		if tok.Literal == "\"" {
			s.errorf(tok, "close the string with '\"'", "unterminated string")
			return nil
		}
	}

	s.errorf(tok, "", "expected a value, found %s", tok.describe())
	return nil
}

func (s *state) parseIdentExpr() *ast.Node {
	tok := s.peek()
	word := tok.Literal

	if word == "call" {
		return s.parseDynamicCall()
	}
	if isReserved(word) {
		s.errorf(tok, "", "expected a value, found keyword %q", word)
		return nil
	}

	if s.peekAt(1).Type != TokenLParen {
		s.next()
		return ast.NewSymbol(word).At(s.loc(tok))
	}

	fn, builtin := ast.LookupMathFunc(word)
	if !builtin {
		return s.parseCall()
	}

	s.next()
	s.next() // (
	args := s.parseArgs()
	if len(args) != fn.Arity() {
		s.errorf(tok, "", "%s takes %d argument(s), got %d", word, fn.Arity(), len(args))
		return nil
	}
	for _, a := range args {
		if a == nil {
			return nil
		}
	}

	var right *ast.Node
	if fn.Arity() == 2 {
		right = args[1]
	}
	return ast.NewMath(fn, args[0], right).At(s.loc(tok))
}
