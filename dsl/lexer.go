// Package dsl implements the SADL language for describing system
// architectures: reusable node-class templates, permitted link patterns
// between them, deployed instances, address-translation entries, and
// concrete connections.
package dsl

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF TokenType = iota

	// Section markers, written as #nodeclass, #linkclass, #instances,
	// #NATs, #connections (case-insensitive).
	TokenNodeClass
	TokenLinkClass
	TokenInstances
	TokenNAT
	TokenConnections

	TokenInclude // include keyword
	TokenUDP     // udp keyword

	TokenIdentifier
	TokenNumber
	TokenString

	TokenLParen      // (
	TokenRParen      // )
	TokenComma       // ,
	TokenDoubleColon // ::
	TokenDot         // .
	TokenArrow       // ->
	TokenDash        // - (port ranges)
	TokenStar        // * (client connector marker)
	TokenAt          // @ (NAT declaration)
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenNodeClass:
		return "#nodeclass"
	case TokenLinkClass:
		return "#linkclass"
	case TokenInstances:
		return "#instances"
	case TokenNAT:
		return "#nats"
	case TokenConnections:
		return "#connections"
	case TokenInclude:
		return "include"
	case TokenUDP:
		return "udp"
	case TokenIdentifier:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenComma:
		return "','"
	case TokenDoubleColon:
		return "'::'"
	case TokenDot:
		return "'.'"
	case TokenArrow:
		return "'->'"
	case TokenDash:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenAt:
		return "'@'"
	default:
		return "unknown"
	}
}

// Token is a single token with its source position.
type Token struct {
	Type   TokenType
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{%v, %q, %d:%d}", t.Type, t.Value, t.Line, t.Column)
}

// LexError reports an unterminated string or an unrecognized character.
type LexError struct {
	Line    int
	Column  int
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("dsl: lex error at %d:%d: %s", e.Line, e.Column, e.Message)
}

// sectionKeywords maps the lowercased identifier following '#' to its
// section-marker token. Any other '#' sequence is a comment.
var sectionKeywords = map[string]TokenType{
	"nodeclass":   TokenNodeClass,
	"linkclass":   TokenLinkClass,
	"instances":   TokenInstances,
	"nats":        TokenNAT,
	"connections": TokenConnections,
}

// Lexer tokenizes SADL source text.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, column: 1}
}

// Tokenize converts source text into a token stream terminated by a single
// EOF token positioned at the final line and column.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() byte {
	if l.eof() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) advance() byte {
	b := l.input[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return b
}

func (l *Lexer) skipWhitespace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) skipToEOL() {
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *Lexer) token(typ TokenType, value string, line, column int) Token {
	return Token{Type: typ, Value: value, Line: line, Column: column}
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() (Token, error) {
	for {
		l.skipWhitespace()

		line, column := l.line, l.column
		if l.eof() {
			return l.token(TokenEOF, "", line, column), nil
		}

		b := l.peek()

		// '#' is either a section marker or a comment to end of line.
		if b == '#' {
			l.advance()
			ident := l.readIdentifier()
			if typ, ok := sectionKeywords[lower(ident)]; ok {
				return l.token(typ, ident, line, column), nil
			}
			l.skipToEOL()
			continue
		}

		if isIdentStart(b) {
			ident := l.readIdentifier()
			switch lower(ident) {
			case "include":
				return l.token(TokenInclude, ident, line, column), nil
			case "udp":
				return l.token(TokenUDP, ident, line, column), nil
			}
			return l.token(TokenIdentifier, ident, line, column), nil
		}

		if isDigit(b) {
			return l.token(TokenNumber, l.readNumber(), line, column), nil
		}

		switch b {
		case '"':
			l.advance()
			start := l.pos
			for !l.eof() && l.peek() != '"' {
				l.advance()
			}
			if l.eof() {
				return Token{}, &LexError{Line: line, Column: column, Message: "unterminated string literal"}
			}
			value := l.input[start:l.pos]
			l.advance()
			return l.token(TokenString, value, line, column), nil
		case '(':
			l.advance()
			return l.token(TokenLParen, "(", line, column), nil
		case ')':
			l.advance()
			return l.token(TokenRParen, ")", line, column), nil
		case ',':
			l.advance()
			return l.token(TokenComma, ",", line, column), nil
		case '.':
			l.advance()
			return l.token(TokenDot, ".", line, column), nil
		case '*':
			l.advance()
			return l.token(TokenStar, "*", line, column), nil
		case '@':
			l.advance()
			return l.token(TokenAt, "@", line, column), nil
		case ':':
			if l.peekAt(1) == ':' {
				l.advance()
				l.advance()
				return l.token(TokenDoubleColon, "::", line, column), nil
			}
			return Token{}, &LexError{Line: line, Column: column, Message: "unrecognized character ':'"}
		case '-':
			l.advance()
			if l.peek() == '>' {
				l.advance()
				return l.token(TokenArrow, "->", line, column), nil
			}
			return l.token(TokenDash, "-", line, column), nil
		}

		return Token{}, &LexError{Line: line, Column: column, Message: fmt.Sprintf("unrecognized character %q", string(b))}
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for !l.eof() && isIdentChar(l.peek()) {
		l.advance()
	}
	return l.input[start:l.pos]
}

func (l *Lexer) readNumber() string {
	start := l.pos
	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}
	return l.input[start:l.pos]
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentChar(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// lower is an ASCII-only lowercase, sufficient for keyword comparison.
func lower(s string) string {
	buf := []byte(s)
	for i, b := range buf {
		if b >= 'A' && b <= 'Z' {
			buf[i] = b + ('a' - 'A')
		}
	}
	return string(buf)
}
