package dsl

import (
	"errors"
	"testing"
)

func TestLexer_BasicTokens(t *testing.T) {
	input := `web_server:: https_listener (443) *mysql_connector`
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	expected := []struct {
		typ   TokenType
		value string
	}{
		{TokenIdentifier, "web_server"},
		{TokenDoubleColon, "::"},
		{TokenIdentifier, "https_listener"},
		{TokenLParen, "("},
		{TokenNumber, "443"},
		{TokenRParen, ")"},
		{TokenStar, "*"},
		{TokenIdentifier, "mysql_connector"},
		{TokenEOF, ""},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ {
			t.Errorf("token %d: expected type %v, got %v", i, e.typ, tokens[i].Type)
		}
		if tokens[i].Value != e.value {
			t.Errorf("token %d: expected value %q, got %q", i, e.value, tokens[i].Value)
		}
	}
}

func TestLexer_SectionMarkers(t *testing.T) {
	input := "#nodeclass #LINKCLASS #Instances #NATs #connections"
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	expected := []struct {
		typ   TokenType
		value string
	}{
		{TokenNodeClass, "nodeclass"},
		{TokenLinkClass, "LINKCLASS"},
		{TokenInstances, "Instances"},
		{TokenNAT, "NATs"},
		{TokenConnections, "connections"},
		{TokenEOF, ""},
	}

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, e := range expected {
		if tokens[i].Type != e.typ {
			t.Errorf("token %d: expected %v, got %v", i, e.typ, tokens[i].Type)
		}
		if tokens[i].Value != e.value {
			t.Errorf("token %d: expected value %q, got %q", i, e.value, tokens[i].Value)
		}
	}
}

func TestLexer_CommentsSkipped(t *testing.T) {
	input := "# this is a comment, not a section\nweb_server"
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	if tokens[0].Type != TokenIdentifier || tokens[0].Value != "web_server" {
		t.Errorf("expected identifier after comment, got %v", tokens[0])
	}
	if tokens[0].Line != 2 {
		t.Errorf("expected line 2, got %d", tokens[0].Line)
	}
}

func TestLexer_SectionLookalikeIsIdentifier(t *testing.T) {
	// Section keywords only have meaning directly after '#'.
	tokens, err := Tokenize("nodeclass instances")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if tokens[0].Type != TokenIdentifier {
		t.Errorf("expected identifier, got %v", tokens[0].Type)
	}
	if tokens[1].Type != TokenIdentifier {
		t.Errorf("expected identifier, got %v", tokens[1].Type)
	}
}

func TestLexer_Keywords(t *testing.T) {
	tokens, err := Tokenize("include Include UDP udp")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	for i, want := range []TokenType{TokenInclude, TokenInclude, TokenUDP, TokenUDP} {
		if tokens[i].Type != want {
			t.Errorf("token %d: expected %v, got %v", i, want, tokens[i].Type)
		}
	}
	// Original case is preserved in the value.
	if tokens[1].Value != "Include" {
		t.Errorf("expected value 'Include', got %q", tokens[1].Value)
	}
}

func TestLexer_ArrowAndDash(t *testing.T) {
	tokens, err := Tokenize("8000-8080 a -> b")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	expected := []TokenType{
		TokenNumber, TokenDash, TokenNumber,
		TokenIdentifier, TokenArrow, TokenIdentifier,
		TokenEOF,
	}
	for i, want := range expected {
		if tokens[i].Type != want {
			t.Errorf("token %d: expected %v, got %v", i, want, tokens[i].Type)
		}
	}
}

func TestLexer_String(t *testing.T) {
	tokens, err := Tokenize(`include "lib/common.sadl"`)
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if tokens[1].Type != TokenString {
		t.Fatalf("expected string token, got %v", tokens[1].Type)
	}
	if tokens[1].Value != "lib/common.sadl" {
		t.Errorf("expected path value, got %q", tokens[1].Value)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, err := Tokenize("include \"no closing quote")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexError, got %v", err)
	}
	if lexErr.Line != 1 || lexErr.Column != 9 {
		t.Errorf("expected position 1:9, got %d:%d", lexErr.Line, lexErr.Column)
	}
}

func TestLexer_UnrecognizedCharacter(t *testing.T) {
	_, err := Tokenize("web_server\n  !boom")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexError, got %v", err)
	}
	if lexErr.Line != 2 || lexErr.Column != 3 {
		t.Errorf("expected position 2:3, got %d:%d", lexErr.Line, lexErr.Column)
	}
}

func TestLexer_LoneColon(t *testing.T) {
	_, err := Tokenize("a : b")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected LexError for lone colon, got %v", err)
	}
}

func TestLexer_Positions(t *testing.T) {
	tokens, err := Tokenize("ab cd\nef")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}

	expected := []struct {
		line, column int
	}{
		{1, 1}, // ab
		{1, 4}, // cd
		{2, 1}, // ef
		{2, 3}, // EOF
	}
	for i, e := range expected {
		if tokens[i].Line != e.line || tokens[i].Column != e.column {
			t.Errorf("token %d: expected %d:%d, got %d:%d",
				i, e.line, e.column, tokens[i].Line, tokens[i].Column)
		}
	}
}

func TestLexer_EOFAlwaysPresent(t *testing.T) {
	tokens, err := Tokenize("")
	if err != nil {
		t.Fatalf("tokenize error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Type != TokenEOF {
		t.Fatalf("expected single EOF token, got %v", tokens)
	}
	if tokens[0].Line != 1 || tokens[0].Column != 1 {
		t.Errorf("expected EOF at 1:1, got %d:%d", tokens[0].Line, tokens[0].Column)
	}
}
