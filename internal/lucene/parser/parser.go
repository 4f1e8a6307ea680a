package parser

import (
	"github.com/loglens/lucenequery/internal/lucene/ast"
	"github.com/loglens/lucenequery/internal/lucene/lexer"
)

// Parser builds a Lucene query AST from a token stream using recursive
// descent. Unlike a panic-mode recovery parser, it fails fast: the
// repair pipeline (package repair) is the layer responsible for turning
// a parse error back into a legal query, so the grammar here never
// guesses past a malformed construct.
type Parser struct {
	tokens  []lexer.Token
	current int
}

// New creates a Parser over an already-scanned token stream.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the full token stream and returns the root node. An
// empty token stream (just TOKEN_EOF) is legal and returns (nil, nil).
func (p *Parser) Parse() (ast.Node, error) {
	if p.check(lexer.TOKEN_EOF) {
		return nil, nil
	}

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if !p.check(lexer.TOKEN_EOF) {
		tok := p.peek()
		if tok.Type == lexer.TOKEN_RBRACKET || tok.Type == lexer.TOKEN_RBRACE || tok.Type == lexer.TOKEN_RPAREN {
			return nil, &UnmatchedParenthesisError{}
		}
		return nil, &ParseSyntaxError{Unexpected: tok.Lexeme, Pos: tok.Pos}
	}

	return expr, nil
}

// parseOr is the weakest-binding level: OR < AND < implicit-AND < unary
// < field < atom.
func (p *Parser) parseOr() (ast.Node, error) {
	pos := p.peek().Pos
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	operands := []ast.Node{left}
	for p.match(lexer.TOKEN_OR) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}

	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.OrOperation{Operands: operands, Pos: pos}, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	pos := p.peek().Pos
	left, err := p.parseImplicitAnd()
	if err != nil {
		return nil, err
	}

	operands := []ast.Node{left}
	for p.match(lexer.TOKEN_AND) {
		right, err := p.parseImplicitAnd()
		if err != nil {
			return nil, err
		}
		operands = append(operands, right)
	}

	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.AndOperation{Operands: operands, Pos: pos}, nil
}

// parseImplicitAnd collects consecutive unary-level expressions with no
// explicit keyword between them. Lucene leaves this case ambiguous; per
// the grammar's recovery policy it becomes an UnknownOperation rather
// than a hard parse error, letting the repair pipeline rewrite it into
// an explicit AndOperation later.
func (p *Parser) parseImplicitAnd() (ast.Node, error) {
	pos := p.peek().Pos
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	operands := []ast.Node{first}
	for p.startsUnary() {
		next, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operands = append(operands, next)
	}

	if len(operands) == 1 {
		return operands[0], nil
	}
	return &ast.UnknownOperation{Operands: operands, Pos: pos}, nil
}

// startsUnary reports whether the current token can begin a new
// unary/field/atom expression, i.e. whether implicit-AND juxtaposition
// should keep consuming.
func (p *Parser) startsUnary() bool {
	switch p.peek().Type {
	case lexer.TOKEN_AND, lexer.TOKEN_OR, lexer.TOKEN_TO,
		lexer.TOKEN_RPAREN, lexer.TOKEN_RBRACKET, lexer.TOKEN_RBRACE,
		lexer.TOKEN_EOF, lexer.TOKEN_COLON, lexer.TOKEN_TILDE, lexer.TOKEN_CARET:
		return false
	default:
		return true
	}
}

func (p *Parser) parseUnary() (ast.Node, error) {
	switch {
	case p.match(lexer.TOKEN_NOT):
		tok := p.previous()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Not{Operand: operand, Pos: tok.Pos}, nil
	case p.match(lexer.TOKEN_PLUS):
		tok := p.previous()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Plus{Operand: operand, Pos: tok.Pos}, nil
	case p.match(lexer.TOKEN_MINUS):
		tok := p.previous()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Prohibit{Operand: operand, Pos: tok.Pos}, nil
	default:
		return p.parseField()
	}
}

// parseField recognizes "name : expr" by looking one token ahead for a
// colon; otherwise it falls through to a bare atom.
func (p *Parser) parseField() (ast.Node, error) {
	if p.check(lexer.TOKEN_WORD) && p.checkNext(lexer.TOKEN_COLON) {
		nameTok := p.advance()
		p.advance() // COLON

		if p.check(lexer.TOKEN_LPAREN) {
			groupPos := p.peek().Pos
			p.advance()
			inner, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if !p.match(lexer.TOKEN_RPAREN) {
				return nil, &UnmatchedParenthesisError{}
			}
			return &ast.SearchField{
				Name: nameTok.Lexeme,
				Expr: &ast.FieldGroup{Expr: inner, Pos: groupPos},
				Pos:  nameTok.Pos,
			}, nil
		}

		expr, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return &ast.SearchField{Name: nameTok.Lexeme, Expr: expr, Pos: nameTok.Pos}, nil
	}

	return p.parseAtom()
}

// parseAtom parses a word, phrase, regex, range, or parenthesized
// group, then folds any trailing fuzzy (~N), proximity (~N), or boost
// (^N) modifier onto it.
func (p *Parser) parseAtom() (ast.Node, error) {
	tok := p.peek()

	switch tok.Type {
	case lexer.TOKEN_LPAREN:
		p.advance()
		pos := tok.Pos
		var children []ast.Node
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		children = append(children, inner)
		if !p.match(lexer.TOKEN_RPAREN) {
			return nil, &UnmatchedParenthesisError{}
		}
		return p.withBoost(&ast.Group{Children: children, Pos: pos})

	case lexer.TOKEN_LBRACKET, lexer.TOKEN_LBRACE:
		return p.parseRange()

	case lexer.TOKEN_PHRASE:
		p.advance()
		phrase := &ast.Phrase{Value: tok.Lexeme, Pos: tok.Pos}
		if p.check(lexer.TOKEN_TILDE) {
			p.advance()
			degree := ""
			if p.check(lexer.TOKEN_WORD) {
				degree = p.advance().Lexeme
			}
			return p.withBoost(&ast.Proximity{Phrase: phrase.Value, Distance: degree, Pos: phrase.Pos})
		}
		return p.withBoost(phrase)

	case lexer.TOKEN_REGEX:
		p.advance()
		return p.withBoost(&ast.Regex{Value: tok.Lexeme, Pos: tok.Pos})

	case lexer.TOKEN_WORD, lexer.TOKEN_WILDCARD:
		p.advance()
		word := &ast.Word{Value: tok.Lexeme, Pos: tok.Pos}
		if p.check(lexer.TOKEN_TILDE) {
			p.advance()
			degree := ""
			if p.check(lexer.TOKEN_WORD) {
				degree = p.advance().Lexeme
			}
			return p.withBoost(&ast.Fuzzy{Term: word.Value, Degree: degree, Pos: word.Pos})
		}
		return p.withBoost(word)

	case lexer.TOKEN_EOF:
		return nil, &UnmatchedParenthesisError{}

	default:
		return nil, &ParseSyntaxError{Unexpected: tok.Lexeme, Pos: tok.Pos}
	}
}

// withBoost consumes a trailing "^N" if present and discards it. The
// AST has no boost node, so the boost appears neither in the tree nor
// in serialized output; it never changes a node's identity for field
// extraction or rewriting.
func (p *Parser) withBoost(n ast.Node) (ast.Node, error) {
	if p.check(lexer.TOKEN_CARET) {
		p.advance()
		if p.check(lexer.TOKEN_WORD) {
			p.advance()
		}
	}
	return n, nil
}

// parseRange parses "[low TO high]", "{low TO high}", or a mix of the
// two delimiters.
func (p *Parser) parseRange() (ast.Node, error) {
	open := p.advance()
	includeLow := open.Type == lexer.TOKEN_LBRACKET

	low, err := p.parseRangeEndpoint()
	if err != nil {
		return nil, err
	}

	if !p.match(lexer.TOKEN_TO) {
		tok := p.peek()
		return nil, &ParseSyntaxError{Unexpected: tok.Lexeme, Pos: tok.Pos}
	}

	high, err := p.parseRangeEndpoint()
	if err != nil {
		return nil, err
	}

	if !p.check(lexer.TOKEN_RBRACKET) && !p.check(lexer.TOKEN_RBRACE) {
		tok := p.peek()
		if tok.Type == lexer.TOKEN_EOF {
			return nil, &UnmatchedParenthesisError{}
		}
		return nil, &ParseSyntaxError{Unexpected: tok.Lexeme, Pos: tok.Pos}
	}
	closeTok := p.advance()
	includeHigh := closeTok.Type == lexer.TOKEN_RBRACKET

	return &ast.Range{
		Low:         low,
		High:        high,
		IncludeLow:  includeLow,
		IncludeHigh: includeHigh,
		Pos:         open.Pos,
	}, nil
}

// parseRangeEndpoint consumes one range boundary: a bare word, a
// wildcard "*", a phrase, or a minus-prefixed numeric literal.
func (p *Parser) parseRangeEndpoint() (string, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TOKEN_WORD, lexer.TOKEN_WILDCARD, lexer.TOKEN_PHRASE:
		p.advance()
		return tok.Lexeme, nil
	case lexer.TOKEN_MINUS:
		p.advance()
		if !p.check(lexer.TOKEN_WORD) {
			next := p.peek()
			return "", &ParseSyntaxError{Unexpected: next.Lexeme, Pos: next.Pos}
		}
		word := p.advance()
		return "-" + word.Lexeme, nil
	case lexer.TOKEN_EOF:
		return "", &UnmatchedParenthesisError{}
	default:
		return "", &ParseSyntaxError{Unexpected: tok.Lexeme, Pos: tok.Pos}
	}
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() lexer.Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() lexer.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(t lexer.TokenType) bool {
	return p.peek().Type == t
}

func (p *Parser) checkNext(t lexer.TokenType) bool {
	return p.peekNext().Type == t
}

func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.TOKEN_EOF
}
