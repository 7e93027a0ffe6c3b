package dsl

import (
	"fmt"
	"strconv"
)

// Section is the parser's persistent "current section" state. A section
// marker token switches it; every following top-level construct is parsed
// according to the active section.
type Section int

const (
	SectionNone Section = iota
	SectionNodeClasses
	SectionLinkClasses
	SectionInstances
	SectionNATs
	SectionConnections
)

// Resolver maps an include path (and the path of the including file, when
// known) to file content. The parser never touches the filesystem itself.
type Resolver func(path, fromPath string) (string, error)

// Options configures include resolution for a parse.
type Options struct {
	// Resolver supplies the text of included files. When nil, include
	// directives are recorded but otherwise ignored.
	Resolver Resolver
	// Path is the current file's own path. It is used only as the
	// fromPath of resolver calls and as a pre-visited entry in the
	// include cycle guard.
	Path string
}

// ParseError reports a failed grammar expectation.
type ParseError struct {
	Expected string
	Got      Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dsl: parse error at %d:%d: expected %s, got %v %q",
		e.Got.Line, e.Got.Column, e.Expected, e.Got.Type, e.Got.Value)
}

// parser holds the state of one parse unit. Includes get a fresh parser
// over the resolved text, sharing only the resolver and the visited set,
// so nested parses are naturally reentrant.
type parser struct {
	tokens   []Token
	pos      int
	section  Section
	path     string
	resolver Resolver
	visited  map[string]bool
	ast      *AST
}

// Parse parses SADL source text into an AST. Include directives are
// recorded but not resolved; use ParseWithOptions to supply a resolver.
func Parse(input string) (*AST, error) {
	return ParseWithOptions(input, nil)
}

// ParseWithOptions parses SADL source text, resolving includes through the
// supplied options. Each include path is visited at most once per call;
// repeated or cyclic includes are silently skipped.
func ParseWithOptions(input string, opts *Options) (*AST, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	visited := make(map[string]bool)
	if o.Path != "" {
		visited[o.Path] = true
	}
	return parseUnit(input, o.Path, o.Resolver, visited)
}

func parseUnit(input, path string, resolver Resolver, visited map[string]bool) (*AST, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{
		tokens:   tokens,
		path:     path,
		resolver: resolver,
		visited:  visited,
		ast:      &AST{},
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	return p.ast, nil
}

func (p *parser) cur() Token {
	return p.tokens[p.pos]
}

// peek looks one token ahead. The stream is EOF-terminated, so peeking
// past the end returns the EOF token.
func (p *parser) peek() Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *parser) next() Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *parser) expect(typ TokenType, what string) (Token, error) {
	tok := p.cur()
	if tok.Type != typ {
		return Token{}, &ParseError{Expected: what, Got: tok}
	}
	return p.next(), nil
}

func (p *parser) run() error {
	for p.cur().Type != TokenEOF {
		switch p.cur().Type {
		case TokenNodeClass:
			p.section = SectionNodeClasses
			p.next()
		case TokenLinkClass:
			p.section = SectionLinkClasses
			p.next()
		case TokenInstances:
			p.section = SectionInstances
			p.next()
		case TokenNAT:
			p.section = SectionNATs
			p.next()
		case TokenConnections:
			p.section = SectionConnections
			p.next()
		case TokenInclude:
			if err := p.parseInclude(); err != nil {
				return err
			}
		default:
			if err := p.parseConstruct(); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseConstruct dispatches on the active section. Constructs not
// recognized under the current section are skipped one token at a time
// without error.
func (p *parser) parseConstruct() error {
	tok := p.cur()
	switch p.section {
	case SectionNodeClasses:
		if tok.Type == TokenIdentifier && p.peek().Type == TokenDoubleColon {
			return p.parseNodeClass()
		}
	case SectionLinkClasses:
		if tok.Type == TokenIdentifier {
			return p.parseLinkClass()
		}
	case SectionInstances:
		if tok.Type == TokenIdentifier {
			return p.parseInstance()
		}
	case SectionNATs:
		if tok.Type == TokenAt {
			return p.parseNAT()
		}
	case SectionConnections:
		if tok.Type == TokenIdentifier {
			return p.parseConnection()
		}
	}
	p.next()
	return nil
}

// parseInclude handles 'include "path"'. Resolution happens through a
// fresh recursive lexer+parser pass over the resolved text; only the node
// and link classes of the nested result are spliced into the outer AST.
func (p *parser) parseInclude() error {
	incTok := p.next()
	pathTok, err := p.expect(TokenString, "include path string")
	if err != nil {
		return err
	}
	inc := Include{Path: pathTok.Value, Pos: Pos{Line: incTok.Line, Column: incTok.Column}}
	p.ast.Includes = append(p.ast.Includes, inc)

	if p.resolver == nil {
		return nil
	}
	if p.visited[inc.Path] {
		return nil
	}
	p.visited[inc.Path] = true

	text, err := p.resolver(inc.Path, p.path)
	if err != nil {
		return fmt.Errorf("dsl: include %q at %d:%d: %w", inc.Path, inc.Pos.Line, inc.Pos.Column, err)
	}
	sub, err := parseUnit(text, inc.Path, p.resolver, p.visited)
	if err != nil {
		return err
	}
	p.ast.NodeClasses = append(p.ast.NodeClasses, sub.NodeClasses...)
	p.ast.LinkClasses = append(p.ast.LinkClasses, sub.LinkClasses...)
	return nil
}

// parseNodeClass handles: identifier '::' {Connector}. The connector loop
// stops when the lookahead shows the next node class header.
func (p *parser) parseNodeClass() error {
	nameTok := p.next()
	if _, err := p.expect(TokenDoubleColon, "'::'"); err != nil {
		return err
	}
	nc := NodeClass{
		Name: nameTok.Value,
		Pos:  Pos{Line: nameTok.Line, Column: nameTok.Column},
	}
	for {
		tok := p.cur()
		starts := tok.Type == TokenStar ||
			(tok.Type == TokenIdentifier && p.peek().Type != TokenDoubleColon)
		if !starts {
			break
		}
		conn, err := p.parseConnector()
		if err != nil {
			return err
		}
		nc.Connectors = append(nc.Connectors, conn)
	}
	p.ast.NodeClasses = append(p.ast.NodeClasses, nc)
	return nil
}

// parseConnector handles: ['*'] identifier ['(' PortSpec {',' PortSpec} ')'].
// The leading '*' selects the client role; it is never inferred from ports.
func (p *parser) parseConnector() (Connector, error) {
	tok := p.cur()
	conn := Connector{
		Role: RoleServer,
		Pos:  Pos{Line: tok.Line, Column: tok.Column},
	}
	if tok.Type == TokenStar {
		conn.Role = RoleClient
		p.next()
	}
	nameTok, err := p.expect(TokenIdentifier, "connector name")
	if err != nil {
		return Connector{}, err
	}
	conn.Name = nameTok.Value

	if p.cur().Type == TokenLParen {
		p.next()
		for {
			spec, err := p.parsePortSpec()
			if err != nil {
				return Connector{}, err
			}
			conn.Ports = append(conn.Ports, spec)
			if p.cur().Type != TokenComma {
				break
			}
			p.next()
		}
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return Connector{}, err
		}
	}
	return conn, nil
}

// parsePortSpec handles a bare PortOrRange (TCP) or a UDP(...) wrapper.
func (p *parser) parsePortSpec() (PortSpec, error) {
	tok := p.cur()
	spec := PortSpec{
		Protocol: ProtocolTCP,
		Pos:      Pos{Line: tok.Line, Column: tok.Column},
	}
	if tok.Type == TokenUDP {
		spec.Protocol = ProtocolUDP
		p.next()
		if _, err := p.expect(TokenLParen, "'('"); err != nil {
			return PortSpec{}, err
		}
		if err := p.parsePortOrRange(&spec); err != nil {
			return PortSpec{}, err
		}
		if _, err := p.expect(TokenRParen, "')'"); err != nil {
			return PortSpec{}, err
		}
		return spec, nil
	}
	if err := p.parsePortOrRange(&spec); err != nil {
		return PortSpec{}, err
	}
	return spec, nil
}

// parsePortOrRange handles: number ['-' number]. Range ordering is not
// checked.
func (p *parser) parsePortOrRange(spec *PortSpec) error {
	startTok, err := p.expect(TokenNumber, "port number")
	if err != nil {
		return err
	}
	start, _ := strconv.Atoi(startTok.Value)
	if p.cur().Type != TokenDash {
		spec.Port = start
		return nil
	}
	p.next()
	endTok, err := p.expect(TokenNumber, "port range end")
	if err != nil {
		return err
	}
	end, _ := strconv.Atoi(endTok.Value)
	spec.Range = &PortRange{Start: start, End: end}
	return nil
}

// parseLinkClass handles: ident '.' ident '->' ident '.' ident. Names are
// recorded verbatim with no existence check.
func (p *parser) parseLinkClass() error {
	fromClass := p.next()
	if _, err := p.expect(TokenDot, "'.'"); err != nil {
		return err
	}
	fromConn, err := p.expect(TokenIdentifier, "connector name")
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenArrow, "'->'"); err != nil {
		return err
	}
	toClass, err := p.expect(TokenIdentifier, "node class name")
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenDot, "'.'"); err != nil {
		return err
	}
	toConn, err := p.expect(TokenIdentifier, "connector name")
	if err != nil {
		return err
	}
	p.ast.LinkClasses = append(p.ast.LinkClasses, LinkClass{
		From: Endpoint{NodeClass: fromClass.Value, Connector: fromConn.Value},
		To:   Endpoint{NodeClass: toClass.Value, Connector: toConn.Value},
		Pos:  Pos{Line: fromClass.Line, Column: fromClass.Column},
	})
	return nil
}

// parseInstance handles: ident ident ['(' IP ')'] {',' ident ['(' IP ')']}.
func (p *parser) parseInstance() error {
	classTok := p.next()
	inst := Instance{
		NodeClass: classTok.Value,
		Pos:       Pos{Line: classTok.Line, Column: classTok.Column},
	}
	for {
		nameTok, err := p.expect(TokenIdentifier, "instance name")
		if err != nil {
			return err
		}
		entry := InstanceEntry{
			Name: nameTok.Value,
			Pos:  Pos{Line: nameTok.Line, Column: nameTok.Column},
		}
		if p.cur().Type == TokenLParen {
			p.next()
			ip, err := p.parseIPAddress()
			if err != nil {
				return err
			}
			entry.IP = ip
			if _, err := p.expect(TokenRParen, "')'"); err != nil {
				return err
			}
		}
		inst.Entries = append(inst.Entries, entry)
		if p.cur().Type != TokenComma {
			break
		}
		p.next()
	}
	p.ast.Instances = append(p.ast.Instances, inst)
	return nil
}

// parseIPAddress reads one or more numbers joined by dots into a verbatim
// string. Octet count and range are not validated.
func (p *parser) parseIPAddress() (string, error) {
	tok, err := p.expect(TokenNumber, "IP address octet")
	if err != nil {
		return "", err
	}
	ip := tok.Value
	for p.cur().Type == TokenDot {
		p.next()
		tok, err := p.expect(TokenNumber, "IP address octet")
		if err != nil {
			return "", err
		}
		ip += "." + tok.Value
	}
	return ip, nil
}

// parseNAT handles: '@' ident '(' IP ',' IP ')'.
func (p *parser) parseNAT() error {
	atTok := p.next()
	nameTok, err := p.expect(TokenIdentifier, "NAT name")
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenLParen, "'('"); err != nil {
		return err
	}
	external, err := p.parseIPAddress()
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenComma, "','"); err != nil {
		return err
	}
	internal, err := p.parseIPAddress()
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenRParen, "')'"); err != nil {
		return err
	}
	p.ast.NATs = append(p.ast.NATs, NAT{
		Name:       nameTok.Value,
		ExternalIP: external,
		InternalIP: internal,
		Pos:        Pos{Line: atTok.Line, Column: atTok.Column},
	})
	return nil
}

// parseConnection handles: ident '->' ident. Endpoint names may reference
// an instance entry or a NAT; resolution is deferred to consumers.
func (p *parser) parseConnection() error {
	fromTok := p.next()
	if _, err := p.expect(TokenArrow, "'->'"); err != nil {
		return err
	}
	toTok, err := p.expect(TokenIdentifier, "connection target")
	if err != nil {
		return err
	}
	p.ast.Connections = append(p.ast.Connections, Connection{
		From: fromTok.Value,
		To:   toTok.Value,
		Pos:  Pos{Line: fromTok.Line, Column: fromTok.Column},
	})
	return nil
}
