package syntax

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeFloat
	NodeList
	NodeMap
	NodeArray
)

// Node is a single S-expression datum.
type Node struct {
	Type NodeType

	// Text is the source text of an atom or the value of a string.
	Text string

	// Items holds the elements of a list or array and the values of a map.
	Items []*Node

	// Keys holds the keys of a map, parallel to Items.
	Keys []string

	// MetaKeys and MetaItems hold the `^{...}` metadata attached to a list.
	MetaKeys  []string
	MetaItems []*Node

	// Line is the one-indexed line the datum begins on.
	Line int
}

func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger, NodeFloat:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return fmt.Sprintf("\"%s\"", escaped)
	case NodeList:
		var parts []string
		if len(n.MetaKeys) > 0 {
			parts = append(parts, "^"+mapString(n.MetaKeys, n.MetaItems))
		}
		for _, item := range n.Items {
			parts = append(parts, item.String())
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, " "))
	case NodeMap:
		return mapString(n.Keys, n.Items)
	case NodeArray:
		var parts []string
		for _, item := range n.Items {
			parts = append(parts, item.String())
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, " "))
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func mapString(keys []string, items []*Node) string {
	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s: %s", key, items[i].String())
	}

	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// Meta returns the metadata value stored under key or nil.
func (n *Node) Meta(key string) *Node {
	for i, k := range n.MetaKeys {
		if k == key {
			return n.MetaItems[i]
		}
	}

	return nil
}

// IsSymbol checks if the node is the given symbol
func (n *Node) IsSymbol(name string) bool {
	return n.Type == NodeSymbol && n.Text == name
}

// Head returns the leading symbol of a list or the empty string.
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}

	return n.Items[0].Text
}

// -----------------------------------------------------------------------------

type parser struct {
	lexer        *lexer
	currentToken token
	peekToken    token
}

// Parse parses the entire input and returns the top-level datum
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()
	p.nextToken()

	result, err := p.parseDatum()
	if len(p.lexer.errors) > 0 {
		// lexer errors take priority because they cause confusing parser errors
		return nil, p.lexer.errors[0]
	}
	if err != nil {
		return nil, err
	}

	if p.currentToken.Type != tokenEOF {
		return nil, p.errorf("expected EOF but got %s", p.currentToken.Type)
	}

	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.peekToken
	p.peekToken = p.lexer.nextToken()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", p.currentToken.Line, fmt.Sprintf(format, args...))
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken

	var typ NodeType
	switch tok.Type {
	case tokenSymbol:
		typ = NodeSymbol
	case tokenString:
		typ = NodeString
	case tokenInteger:
		typ = NodeInteger
	case tokenFloat:
		typ = NodeFloat
	case tokenLParen:
		return p.parseList()
	case tokenLBrace:
		return p.parseMap()
	case tokenLBracket:
		return p.parseArray()
	default:
		return nil, p.errorf("unexpected token: %s", tok.Type)
	}

	p.nextToken()
	return &Node{Type: typ, Text: tok.Value, Line: tok.Line}, nil
}

func (p *parser) parseList() (*Node, error) {
	list := &Node{Type: NodeList, Line: p.currentToken.Line}
	p.nextToken() // consume '('

	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		if p.currentToken.Type == tokenCaret {
			p.nextToken() // consume '^'
			if p.currentToken.Type != tokenLBrace {
				return nil, p.errorf("expected '{' after '^' but got %s", p.currentToken.Type)
			}

			meta, err := p.parseMap()
			if err != nil {
				return nil, err
			}

			// later values win
			for i, key := range meta.Keys {
				if existing := list.metaIndex(key); existing >= 0 {
					list.MetaItems[existing] = meta.Items[i]
				} else {
					list.MetaKeys = append(list.MetaKeys, key)
					list.MetaItems = append(list.MetaItems, meta.Items[i])
				}
			}

			continue
		}

		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, p.errorf("expected ')' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume ')'

	return list, nil
}

func (n *Node) metaIndex(key string) int {
	for i, k := range n.MetaKeys {
		if k == key {
			return i
		}
	}

	return -1
}

func (p *parser) parseMap() (*Node, error) {
	m := &Node{Type: NodeMap, Line: p.currentToken.Line}
	p.nextToken() // consume '{'

	for p.currentToken.Type != tokenRBrace && p.currentToken.Type != tokenEOF {
		if p.currentToken.Type != tokenSymbol {
			return nil, p.errorf("expected symbol for map key but got %s", p.currentToken.Type)
		}

		m.Keys = append(m.Keys, p.currentToken.Value)
		p.nextToken()

		if p.currentToken.Type != tokenColon {
			return nil, p.errorf("expected ':' after map key but got %s", p.currentToken.Type)
		}
		p.nextToken()

		value, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		m.Items = append(m.Items, value)

		// commas between entries are optional
		if p.currentToken.Type == tokenComma {
			p.nextToken()
		}
	}

	if p.currentToken.Type != tokenRBrace {
		return nil, p.errorf("expected '}' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume '}'

	return m, nil
}

func (p *parser) parseArray() (*Node, error) {
	arr := &Node{Type: NodeArray, Line: p.currentToken.Line}
	p.nextToken() // consume '['

	for p.currentToken.Type != tokenRBracket && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, item)
	}

	if p.currentToken.Type != tokenRBracket {
		return nil, p.errorf("expected ']' but got %s", p.currentToken.Type)
	}
	p.nextToken() // consume ']'

	return arr, nil
}

// -----------------------------------------------------------------------------

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenFloat
	tokenLParen
	tokenRParen
	tokenLBrace
	tokenRBrace
	tokenLBracket
	tokenRBracket
	tokenColon
	tokenComma
	tokenCaret
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenFloat:
		return "float"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	case tokenLBrace:
		return "'{'"
	case tokenRBrace:
		return "'}'"
	case tokenLBracket:
		return "'['"
	case tokenRBracket:
		return "']'"
	case tokenColon:
		return "':'"
	case tokenComma:
		return "','"
	case tokenCaret:
		return "'^'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type  tokenType
	Value string
	Line  int
}

type lexer struct {
	input    string
	position int
	current  rune
	line     int
	errors   []error
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1}
	l.readChar()
	return l
}

func (l *lexer) readChar() {
	if l.current == '\n' {
		l.line++
	}

	if l.position >= len(l.input) {
		l.current = 0
	} else {
		l.current = rune(l.input[l.position])
	}
	l.position++
}

func (l *lexer) peekChar() rune {
	if l.position >= len(l.input) {
		return 0
	}
	return rune(l.input[l.position])
}

func (l *lexer) errorf(format string, args ...interface{}) token {
	l.errors = append(l.errors, fmt.Errorf("line %d: %s", l.line, fmt.Sprintf(format, args...)))
	return token{Type: tokenEOF, Line: l.line}
}

func (l *lexer) skipWhitespace() {
	for unicode.IsSpace(l.current) {
		l.readChar()
	}
}

func (l *lexer) skipComment() {
	for l.current != '\n' && l.current != '\r' && l.current != 0 {
		l.readChar()
	}
}

func (l *lexer) readSymbol() string {
	start := l.position - 1
	for isSymbolChar(l.current) {
		l.readChar()
	}
	return l.input[start : l.position-1]
}

func (l *lexer) readString() (string, error) {
	var sb strings.Builder
	l.readChar() // skip opening quote

	for l.current != '"' && l.current != 0 {
		if l.current == '\\' {
			l.readChar()
			switch l.current {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				return "", fmt.Errorf("invalid escape sequence: \\%c", l.current)
			}
		} else {
			sb.WriteRune(l.current)
		}
		l.readChar()
	}

	if l.current != '"' {
		return "", fmt.Errorf("unterminated string")
	}
	l.readChar() // skip closing quote

	return sb.String(), nil
}

// readNumber reads an integer or a float with an optional fraction and
// exponent.
func (l *lexer) readNumber() (string, tokenType) {
	start := l.position - 1
	typ := tokenInteger

	if l.current == '+' || l.current == '-' {
		l.readChar()
	}
	for unicode.IsDigit(l.current) {
		l.readChar()
	}

	if l.current == '.' && unicode.IsDigit(l.peekChar()) {
		typ = tokenFloat
		l.readChar()
		for unicode.IsDigit(l.current) {
			l.readChar()
		}
	}

	if l.current == 'e' || l.current == 'E' {
		typ = tokenFloat
		l.readChar()
		if l.current == '+' || l.current == '-' {
			l.readChar()
		}
		for unicode.IsDigit(l.current) {
			l.readChar()
		}
	}

	return l.input[start : l.position-1], typ
}

func (l *lexer) nextToken() token {
	for {
		l.skipWhitespace()

		line := l.line
		single := func(typ tokenType) token {
			value := string(l.current)
			l.readChar()
			return token{Type: typ, Value: value, Line: line}
		}

		switch l.current {
		case 0:
			return token{Type: tokenEOF, Line: line}
		case ';':
			l.skipComment()
			continue
		case '(':
			return single(tokenLParen)
		case ')':
			return single(tokenRParen)
		case '{':
			return single(tokenLBrace)
		case '}':
			return single(tokenRBrace)
		case '[':
			return single(tokenLBracket)
		case ']':
			return single(tokenRBracket)
		case ':':
			return single(tokenColon)
		case ',':
			return single(tokenComma)
		case '^':
			return single(tokenCaret)
		case '"':
			str, err := l.readString()
			if err != nil {
				return l.errorf("%s", err)
			}
			return token{Type: tokenString, Value: str, Line: line}
		default:
			if unicode.IsDigit(l.current) || ((l.current == '+' || l.current == '-') && unicode.IsDigit(l.peekChar())) {
				text, typ := l.readNumber()
				return token{Type: typ, Value: text, Line: line}
			} else if isSymbolChar(l.current) {
				return token{Type: tokenSymbol, Value: l.readSymbol(), Line: line}
			}

			return l.errorf("unexpected character '%c'", l.current)
		}
	}
}

// isSymbolChar reports whether r may appear in a symbol.  Operator characters
// are symbol characters so that operators read as plain symbols.
func isSymbolChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_-+*/%<>=!&|", r)
}
