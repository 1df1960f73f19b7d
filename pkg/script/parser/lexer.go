package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes Turtle Script source.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
	col     int  // column of ch (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.col++
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipSpaceAndComments()

	tok := Token{Line: l.line, Column: l.col}

	if l.atEOF() {
		tok.Type = TokenEOF
		return tok
	}

	single := func(t TokenType) Token {
		tok.Type = t
		tok.Literal = string(l.ch)
		l.readChar()
		return tok
	}
	double := func(t TokenType) Token {
		tok.Type = t
		tok.Literal = string(l.ch) + string(l.peekChar())
		l.readChar()
		l.readChar()
		return tok
	}

	switch l.ch {
	case '\n', ';':
		return single(TokenNewline)
	case '(':
		return single(TokenLParen)
	case ')':
		return single(TokenRParen)
	case '{':
		return single(TokenLBrace)
	case '}':
		return single(TokenRBrace)
	case ',':
		return single(TokenComma)
	case '+':
		return single(TokenPlus)
	case '-':
		return single(TokenMinus)
	case '*':
		return single(TokenStar)
	case '/':
		return single(TokenSlash)
	case '%':
		return single(TokenPercent)
	case '=':
		if l.peekChar() == '=' {
			return double(TokenEq)
		}
		return single(TokenAssign)
	case '!':
		if l.peekChar() == '=' {
			return double(TokenNe)
		}
		return single(TokenIllegal)
	case '<':
		if l.peekChar() == '=' {
			return double(TokenLe)
		}
		return single(TokenLt)
	case '>':
		if l.peekChar() == '=' {
			return double(TokenGe)
		}
		return single(TokenGt)
	case '"':
		return l.readString(tok)
	}

	switch {
	case isDigit(l.ch):
		return l.readNumber(tok)
	case isIdentStart(l.ch):
		start := l.pos
		for isIdentPart(l.ch) {
			l.readChar()
		}
		tok.Type = TokenIdent
		tok.Literal = l.input[start:l.pos]
		return tok
	}

	return single(TokenIllegal)
}

// skipSpaceAndComments skips blanks and '#' comments, but not newlines.
func (l *Lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == '#':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch != '\n' && !l.atEOF() && unicode.IsSpace(l.ch):
			l.readChar()
		default:
			return
		}
	}
}

// readNumber reads an integer or a decimal number.
func (l *Lexer) readNumber(tok Token) Token {
	start := l.pos
	tok.Type = TokenInteger
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		tok.Type = TokenFloat
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	tok.Literal = l.input[start:l.pos]
	return tok
}

// readString reads a double-quoted string with \" \\ \n \t escapes.
// An unterminated string is returned as an illegal token.
func (l *Lexer) readString(tok Token) Token {
	var sb strings.Builder
	l.readChar() // opening quote

	for {
		switch {
		case l.atEOF() || l.ch == '\n':
			tok.Type = TokenIllegal
			tok.Literal = "\""
			return tok
		case l.ch == '"':
			l.readChar()
			tok.Type = TokenString
			tok.Literal = sb.String()
			return tok
		case l.ch == '\\':
			l.readChar()
			switch l.ch {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 0:
				continue
			default:
				sb.WriteRune(l.ch)
			}
			l.readChar()
		default:
			sb.WriteRune(l.ch)
			l.readChar()
		}
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// Tokenize returns every token of input up to and including EOF.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

// Incomplete reports whether input ends inside an open brace block, so an
// interactive reader should ask for more lines before parsing.
func Incomplete(input string) bool {
	depth := 0
	for _, tok := range Tokenize(input) {
		switch tok.Type {
		case TokenLBrace:
			depth++
		case TokenRBrace:
			depth--
		}
	}
	return depth > 0
}
