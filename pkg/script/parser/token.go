package parser

import (
	"fmt"

	"turtlescript/console/pkg/script/ast"
)

// TokenType identifies a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIllegal
	TokenNewline // newline or ';'

	TokenIdent
	TokenInteger
	TokenFloat
	TokenString

	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenComma

	TokenAssign  // =
	TokenPlus    // +
	TokenMinus   // -
	TokenStar    // *
	TokenSlash   // /
	TokenPercent // %

	TokenEq // ==
	TokenNe // !=
	TokenLt // <
	TokenGt // >
	TokenLe // <=
	TokenGe // >=
)

var tokenNames = map[TokenType]string{
	TokenEOF:     "end of input",
	TokenIllegal: "illegal character",
	TokenNewline: "end of line",
	TokenIdent:   "name",
	TokenInteger: "integer",
	TokenFloat:   "number",
	TokenString:  "string",
	TokenLParen:  "'('",
	TokenRParen:  "')'",
	TokenLBrace:  "'{'",
	TokenRBrace:  "'}'",
	TokenComma:   "','",
	TokenAssign:  "'='",
	TokenPlus:    "'+'",
	TokenMinus:   "'-'",
	TokenStar:    "'*'",
	TokenSlash:   "'/'",
	TokenPercent: "'%'",
	TokenEq:      "'=='",
	TokenNe:      "'!='",
	TokenLt:      "'<'",
	TokenGt:      "'>'",
	TokenLe:      "'<='",
	TokenGe:      "'>='",
}

// String returns a readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is a lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

// describe returns the token as it should appear in error messages.
func (t Token) describe() string {
	switch t.Type {
	case TokenIdent, TokenInteger, TokenFloat:
		return fmt.Sprintf("%q", t.Literal)
	case TokenString:
		return "string literal"
	case TokenIllegal:
		return fmt.Sprintf("illegal character %q", t.Literal)
	}
	return t.Type.String()
}

// compareOps maps comparison tokens to operators.
var compareOps = map[TokenType]ast.CompareOp{
	TokenEq: ast.OpEqual,
	TokenNe: ast.OpNotEqual,
	TokenLt: ast.OpLess,
	TokenGt: ast.OpGreater,
	TokenLe: ast.OpLessEqual,
	TokenGe: ast.OpGreaterEqual,
}

// turtleCommands maps command words, including short aliases, to actions.
var turtleCommands = map[string]ast.Action{
	"forward":  ast.ActionForward,
	"fd":       ast.ActionForward,
	"backward": ast.ActionBackward,
	"bk":       ast.ActionBackward,
	"left":     ast.ActionLeft,
	"lt":       ast.ActionLeft,
	"right":    ast.ActionRight,
	"rt":       ast.ActionRight,
	"penup":    ast.ActionPenUp,
	"pu":       ast.ActionPenUp,
	"pendown":  ast.ActionPenDown,
	"pd":       ast.ActionPenDown,
	"show":     ast.ActionShow,
	"hide":     ast.ActionHide,
	"write":    ast.ActionWrite,
	"circle":   ast.ActionCircle,
	"ccircle":  ast.ActionCenteredCircle,
	"home":     ast.ActionHome,
	"clear":    ast.ActionClear,
	"reset":    ast.ActionReset,
}

// keywords are words that cannot name variables or functions.
var keywords = map[string]bool{
	"and": true, "or": true, "not": true,
	"if": true, "else": true, "while": true, "for": true, "to": true, "repeat": true,
	"function": true, "return": true, "call": true,
	"exit": true, "help": true, "echo": true, "load": true, "color": true,
}

// isReserved reports whether word is a keyword or a turtle command.
func isReserved(word string) bool {
	if keywords[word] {
		return true
	}
	_, ok := turtleCommands[word]
	return ok
}

// commandWords lists the words that may start a statement, for suggestions.
var commandWords = []string{
	"forward", "backward", "left", "right", "penup", "pendown", "show", "hide",
	"write", "circle", "ccircle", "home", "clear", "reset", "color",
	"if", "while", "for", "repeat", "function", "return", "call",
	"exit", "help", "echo", "load",
}
