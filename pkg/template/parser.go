package template

import (
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
)

// Placeholder categories a snippet may declare. The empty form "#{}" is
// shorthand for any expression.
const (
	CategoryExpr  = "expr"
	CategoryStmt  = "stmt"
	CategoryIdent = "ident"
)

// Placeholder records one substitution slot of a snippet, in order of
// appearance.
type Placeholder struct {
	Index    int
	Category string
}

type parser struct {
	tokens       []token
	offset       int
	placeholders []Placeholder
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("template: %s at offset %d", fmt.Sprintf(format, args...), p.current().pos)
}

func (p *parser) current() token {
	return p.tokens[p.offset]
}

func (p *parser) advance() token {
	tok := p.tokens[p.offset]

	if p.offset < len(p.tokens)-1 {
		p.offset++
	}

	return tok
}

func (p *parser) atEOF() bool {
	return p.current().kind == tokenEOF
}

func (p *parser) acceptPunct(text string) bool {
	if p.current().kind == tokenPunct && p.current().text == text {
		p.advance()

		return true
	}

	return false
}

func (p *parser) acceptOperator(texts ...string) (string, bool) {
	if p.current().kind != tokenOperator {
		return "", false
	}

	for _, text := range texts {
		if p.current().text == text {
			p.advance()

			return text, true
		}
	}

	return "", false
}

func (p *parser) expectPunct(text string) error {
	if !p.acceptPunct(text) {
		return p.errorf("expected %q, found %q", text, p.current().text)
	}

	return nil
}

// parseSnippet parses the whole snippet as a sequence of statements. A lone
// trailing expression without a semicolon stays a bare expression node, so
// expression templates splice without an ExprStmt wrapper.
func (p *parser) parseSnippet() ([]*tree.Node, error) {
	var nodes []*tree.Node

	for !p.atEOF() {
		node, bare, err := p.parseStmtOrExpr()
		if err != nil {
			return nil, err
		}

		if bare && !p.atEOF() {
			return nil, p.errorf("expected statement terminator, found %q", p.current().text)
		}

		nodes = append(nodes, node)
	}

	if len(nodes) == 0 {
		return nil, p.errorf("empty snippet")
	}

	return nodes, nil
}

// parseStmtOrExpr parses one statement. The bare result reports that the
// node is an unterminated expression rather than a statement.
//
//nolint:cyclop // One arm per statement form.
func (p *parser) parseStmtOrExpr() (*tree.Node, bool, error) {
	switch {
	case p.current().kind == tokenKeyword && p.current().text == "return":
		node, err := p.parseReturn()

		return node, false, err
	case p.current().kind == tokenPunct && p.current().text == "{":
		node, err := p.parseBlock()

		return node, false, err
	case p.current().kind == tokenPunct && p.current().text == ";":
		p.advance()

		return tree.New(tree.KindEmpty, ""), false, nil
	}

	expr, err := p.parseExpr()
	if err != nil {
		return nil, false, err
	}

	if op, ok := p.acceptOperator("="); ok {
		value, valueErr := p.parseExpr()
		if valueErr != nil {
			return nil, false, valueErr
		}

		p.acceptPunct(";")

		return tree.New(tree.KindAssignment, op, expr, value), false, nil
	}

	// A statement placeholder stands for a whole statement; never wrap it.
	if expr.Kind == tree.KindPlaceholder && expr.Prop("category") == CategoryStmt {
		p.acceptPunct(";")

		return expr, false, nil
	}

	if p.acceptPunct(";") {
		return tree.New(tree.KindExprStmt, "", expr), false, nil
	}

	return expr, true, nil
}

func (p *parser) parseReturn() (*tree.Node, error) {
	p.advance() // "return"

	if p.acceptPunct(";") || p.atEOF() {
		return tree.New(tree.KindReturn, ""), nil
	}

	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	p.acceptPunct(";")

	return tree.New(tree.KindReturn, "", value), nil
}

func (p *parser) parseBlock() (*tree.Node, error) {
	if err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var statements []*tree.Node

	for !p.acceptPunct("}") {
		if p.atEOF() {
			return nil, p.errorf("unterminated block")
		}

		stmt, bare, err := p.parseStmtOrExpr()
		if err != nil {
			return nil, err
		}

		if bare {
			stmt = tree.New(tree.KindExprStmt, "", stmt)
		}

		statements = append(statements, stmt)
	}

	return tree.New(tree.KindBlock, "", statements...), nil
}

// Binary operator precedence tiers, loosest first.
//
//nolint:gochecknoglobals // Package-level grammar table, never mutated.
var precedenceTiers = [][]string{
	{"||"},
	{"&&"},
	{"==", "!="},
	{"<", "<=", ">", ">="},
	{"+", "-"},
	{"*", "/", "%"},
}

func (p *parser) parseExpr() (*tree.Node, error) {
	return p.parseBinary(0)
}

func (p *parser) parseBinary(tier int) (*tree.Node, error) {
	if tier >= len(precedenceTiers) {
		return p.parseUnary()
	}

	left, err := p.parseBinary(tier + 1)
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.acceptOperator(precedenceTiers[tier]...)
		if !ok {
			return left, nil
		}

		right, rightErr := p.parseBinary(tier + 1)
		if rightErr != nil {
			return nil, rightErr
		}

		left = tree.New(tree.KindBinary, op, left, right)
	}
}

func (p *parser) parseUnary() (*tree.Node, error) {
	if op, ok := p.acceptOperator("!", "-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return tree.New(tree.KindUnary, op, operand), nil
	}

	return p.parsePostfix()
}

func (p *parser) parsePostfix() (*tree.Node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch {
		case p.acceptPunct("."):
			expr, err = p.parseSelect(expr)
		case p.acceptPunct("("):
			expr, err = p.parseCallArgs(expr)
		case p.acceptPunct("["):
			expr, err = p.parseIndex(expr)
		default:
			return expr, nil
		}

		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseSelect(receiver *tree.Node) (*tree.Node, error) {
	if p.current().kind != tokenIdent {
		return nil, p.errorf("expected member name, found %q", p.current().text)
	}

	member := p.advance().text

	return tree.New(tree.KindSelect, member, receiver), nil
}

func (p *parser) parseCallArgs(callee *tree.Node) (*tree.Node, error) {
	children := []*tree.Node{callee}

	if p.acceptPunct(")") {
		return tree.New(tree.KindCall, "", children...), nil
	}

	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}

		children = append(children, arg)

		if p.acceptPunct(",") {
			continue
		}

		if err := p.expectPunct(")"); err != nil {
			return nil, err
		}

		return tree.New(tree.KindCall, "", children...), nil
	}
}

func (p *parser) parseIndex(target *tree.Node) (*tree.Node, error) {
	index, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if err := p.expectPunct("]"); err != nil {
		return nil, err
	}

	return tree.New(tree.KindIndex, "", target, index), nil
}

func (p *parser) parsePrimary() (*tree.Node, error) {
	tok := p.current()

	switch tok.kind {
	case tokenIdent:
		p.advance()

		return tree.New(tree.KindIdentifier, tok.text), nil
	case tokenNumber, tokenString:
		p.advance()

		return tree.New(tree.KindLiteral, tok.text), nil
	case tokenPlaceholder:
		p.advance()

		return p.makePlaceholder(tok.text)
	case tokenPunct:
		if tok.text == "(" {
			p.advance()

			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}

			if err := p.expectPunct(")"); err != nil {
				return nil, err
			}

			return expr, nil
		}
	case tokenEOF, tokenOperator, tokenKeyword:
	}

	return nil, p.errorf("unexpected token %q", tok.text)
}

func (p *parser) makePlaceholder(category string) (*tree.Node, error) {
	if category == "" {
		category = CategoryExpr
	}

	if category != CategoryExpr && category != CategoryStmt && category != CategoryIdent {
		return nil, p.errorf("unknown placeholder category %q", category)
	}

	index := len(p.placeholders)
	p.placeholders = append(p.placeholders, Placeholder{Index: index, Category: category})

	node := tree.NewBuilder(tree.KindPlaceholder).
		WithProp("index", strconv.Itoa(index)).
		WithProp("category", category).
		Build()

	return node, nil
}
