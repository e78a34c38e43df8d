// Package template synthesizes typed replacement subtrees from textual
// snippets. A snippet with positional placeholders is parsed once into a
// reusable Template; each application binds the placeholders to caller
// subtrees, resolves the snippet's free identifiers against the imports
// visible at a target cursor, and splices the result at a coordinate.
//
// Two failure classes are deliberately distinct. Wrong placeholder arity or
// category is a bug in the calling recipe and panics immediately. A snippet
// that cannot be type-resolved at the target location returns an error
// wrapping ErrSynthesis; recipes catch that class and leave the original
// node unchanged, because synthesized code is not guaranteed to resolve in
// every input shape the matcher did not anticipate.
package template

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
)

// ErrSynthesis is the class of expected, recoverable template failures.
// Recipes test for it with errors.Is and degrade to a no-op.
var ErrSynthesis = errors.New("template synthesis failed")

// SynthesisError reports why a template could not be applied at a location.
type SynthesisError struct {
	Snippet string
	Reason  string
}

// Error implements error.
func (e *SynthesisError) Error() string {
	return fmt.Sprintf("template synthesis failed for %q: %s", e.Snippet, e.Reason)
}

// Unwrap makes errors.Is(err, ErrSynthesis) hold.
func (e *SynthesisError) Unwrap() error {
	return ErrSynthesis
}

// Template is a parsed snippet ready to be applied at tree coordinates.
// Building is separable from applying: build once, apply at many locations.
// Applications never modify the template.
type Template struct {
	source       string
	nodes        []*tree.Node
	placeholders []Placeholder
	imports      []string
}

// Option configures template building.
type Option func(*Template)

// WithImports declares the fully qualified types the snippet needs resolved
// in the target context. An application fails with a synthesis error when a
// required import is not visible at the cursor.
func WithImports(fullyQualified ...string) Option {
	return func(t *Template) {
		t.imports = append(t.imports, fullyQualified...)
	}
}

// Build parses the snippet and returns a reusable template.
func Build(source string, opts ...Option) (*Template, error) {
	lx := &lexer{input: source}

	tokens, err := lx.lex()
	if err != nil {
		return nil, err
	}

	ps := &parser{tokens: tokens}

	nodes, err := ps.parseSnippet()
	if err != nil {
		return nil, err
	}

	tmpl := &Template{source: source, nodes: nodes, placeholders: ps.placeholders}

	for _, opt := range opts {
		opt(tmpl)
	}

	return tmpl, nil
}

// MustBuild is Build for compile-time-constant snippets; a parse failure is
// a programming error and panics.
func MustBuild(source string, opts ...Option) *Template {
	tmpl, err := Build(source, opts...)
	if err != nil {
		panic(fmt.Sprintf("template: MustBuild(%q): %v", source, err))
	}

	return tmpl
}

// Source returns the snippet text the template was built from.
func (t *Template) Source() string {
	return t.source
}

// Apply binds args to the snippet's placeholders in order, resolves the
// snippet against the imports visible at the cursor, and splices the result
// at the coordinate relative to the cursor's node. It returns the node that
// takes the target's place.
//
// Args are subtrees (*tree.Node) or literal values (string, bool, int,
// int64, float64); literals become Literal nodes, except for ident
// placeholders where a string becomes an Identifier. Arity or category
// mismatches panic.
func (t *Template) Apply(cur *tree.Cursor, coord Coordinate, args ...any) (*tree.Node, error) {
	bound := t.bindArgs(args)

	if err := t.checkImports(cur); err != nil {
		return nil, err
	}

	synthesized := make([]*tree.Node, len(t.nodes))
	for i, pattern := range t.nodes {
		synthesized[i] = substitute(pattern, bound)
	}

	for i := range synthesized {
		synthesized[i] = attributeTypes(synthesized[i], t.imports)
	}

	return t.splice(cur.Node(), coord, synthesized)
}

// bindArgs validates arity and categories; violations are recipe bugs and
// panic.
func (t *Template) bindArgs(args []any) []*tree.Node {
	if len(args) != len(t.placeholders) {
		panic(fmt.Sprintf(
			"template: arity mismatch for %q: %d placeholders, %d arguments",
			t.source, len(t.placeholders), len(args),
		))
	}

	bound := make([]*tree.Node, len(args))

	for i, arg := range args {
		bound[i] = t.bindArg(t.placeholders[i], arg)
	}

	return bound
}

func (t *Template) bindArg(ph Placeholder, arg any) *tree.Node {
	node, ok := arg.(*tree.Node)
	if !ok {
		return t.literalArg(ph, arg)
	}

	switch ph.Category {
	case CategoryExpr:
		if node.Category() != tree.CategoryExpression {
			panic(fmt.Sprintf(
				"template: placeholder %d of %q expects an expression, got %s",
				ph.Index, t.source, node.Kind,
			))
		}
	case CategoryStmt:
		if node.Category() != tree.CategoryStatement {
			panic(fmt.Sprintf(
				"template: placeholder %d of %q expects a statement, got %s",
				ph.Index, t.source, node.Kind,
			))
		}
	case CategoryIdent:
		if node.Kind != tree.KindIdentifier {
			panic(fmt.Sprintf(
				"template: placeholder %d of %q expects an identifier, got %s",
				ph.Index, t.source, node.Kind,
			))
		}
	}

	return node
}

func (t *Template) literalArg(ph Placeholder, arg any) *tree.Node {
	switch value := arg.(type) {
	case string:
		if ph.Category == CategoryIdent {
			return tree.New(tree.KindIdentifier, value)
		}

		return tree.New(tree.KindLiteral, strconv.Quote(value)).
			WithType(tree.PrimitiveType("string"))
	case bool:
		return tree.New(tree.KindLiteral, strconv.FormatBool(value)).
			WithType(tree.PrimitiveType("bool"))
	case int:
		return tree.New(tree.KindLiteral, strconv.Itoa(value)).
			WithType(tree.PrimitiveType("int"))
	case int64:
		return tree.New(tree.KindLiteral, strconv.FormatInt(value, 10)).
			WithType(tree.PrimitiveType("int"))
	case float64:
		return tree.New(tree.KindLiteral, strconv.FormatFloat(value, 'g', -1, 64)).
			WithType(tree.PrimitiveType("float"))
	default:
		panic(fmt.Sprintf(
			"template: placeholder %d of %q bound to unsupported value type %T",
			ph.Index, t.source, arg,
		))
	}
}

// checkImports verifies every declared import is visible at the cursor. The
// snippet cannot decide a fully qualified spelling on its own, so a missing
// import is a synthesis failure, not a panic.
func (t *Template) checkImports(cur *tree.Cursor) error {
	if len(t.imports) == 0 {
		return nil
	}

	file := enclosingFile(cur)
	if file == nil {
		return &SynthesisError{Snippet: t.source, Reason: "no enclosing file to resolve imports against"}
	}

	for _, required := range t.imports {
		if !hasImport(file, required) {
			return &SynthesisError{
				Snippet: t.source,
				Reason:  fmt.Sprintf("required import %s is not in scope", required),
			}
		}
	}

	return nil
}

func enclosingFile(cur *tree.Cursor) *tree.Node {
	if cur.Node() != nil && cur.Node().Kind == tree.KindFile {
		return cur.Node()
	}

	ancestor := cur.DropParentUntil(func(n *tree.Node) bool { return n.Kind == tree.KindFile })
	if ancestor == nil {
		return nil
	}

	return ancestor.Node()
}

func hasImport(file *tree.Node, fullyQualified string) bool {
	for _, child := range file.Children {
		if child.Kind == tree.KindImport && child.Token == fullyQualified {
			return true
		}
	}

	return false
}

// substitute deep-copies the pattern with fresh identities, splicing bound
// subtrees into placeholder slots.
func substitute(pattern *tree.Node, bound []*tree.Node) *tree.Node {
	if pattern.Kind == tree.KindPlaceholder {
		index, err := strconv.Atoi(pattern.Prop("index"))
		if err != nil || index < 0 || index >= len(bound) {
			panic(fmt.Sprintf("template: corrupt placeholder index %q", pattern.Prop("index")))
		}

		return bound[index]
	}

	copied := pattern.Clone()

	return replacePlaceholders(copied, bound)
}

func replacePlaceholders(n *tree.Node, bound []*tree.Node) *tree.Node {
	if n.Kind == tree.KindPlaceholder {
		index, err := strconv.Atoi(n.Prop("index"))
		if err != nil || index < 0 || index >= len(bound) {
			panic(fmt.Sprintf("template: corrupt placeholder index %q", n.Prop("index")))
		}

		return bound[index]
	}

	if len(n.Children) == 0 {
		return n
	}

	children := make([]*tree.Node, len(n.Children))
	for i, child := range n.Children {
		children[i] = replacePlaceholders(child, bound)
	}

	return n.WithChildren(children)
}

// attributeTypes attaches the semantic types this engine can decide locally:
// literal primitives and identifiers that name a declared import. Everything
// else keeps whatever attribution its bound subtree carried; an Unknown arg
// type degrades to untyped textual substitution rather than failing.
func attributeTypes(n *tree.Node, imports []string) *tree.Node {
	if len(n.Children) > 0 {
		children := make([]*tree.Node, len(n.Children))
		changed := false

		for i, child := range n.Children {
			children[i] = attributeTypes(child, imports)

			if children[i] != child {
				changed = true
			}
		}

		if changed {
			n = n.WithChildren(children)
		}
	}

	if n.Type != nil {
		return n
	}

	switch n.Kind {
	case tree.KindLiteral:
		return n.WithType(literalType(n.Token))
	case tree.KindIdentifier:
		for _, fqn := range imports {
			if simpleName(fqn) == n.Token {
				return n.WithType(tree.ClassType(fqn))
			}
		}
	default:
	}

	return n
}

func literalType(token string) *tree.SemType {
	switch {
	case token == "true" || token == "false":
		return tree.PrimitiveType("bool")
	case len(token) > 0 && token[0] == '"':
		return tree.PrimitiveType("string")
	case len(token) > 0 && token[0] >= '0' && token[0] <= '9':
		return tree.PrimitiveType("int")
	default:
		return tree.UnknownType()
	}
}

func simpleName(fullyQualified string) string {
	for i := len(fullyQualified) - 1; i >= 0; i-- {
		if fullyQualified[i] == '.' {
			return fullyQualified[i+1:]
		}
	}

	return fullyQualified
}

func (t *Template) splice(target *tree.Node, coord Coordinate, synthesized []*tree.Node) (*tree.Node, error) {
	switch coord.mode {
	case ModeReplace:
		if len(synthesized) != 1 {
			panic(fmt.Sprintf(
				"template: replace coordinate needs exactly one synthesized node, %q produced %d",
				t.source, len(synthesized),
			))
		}

		return synthesized[0].WithPrefix(target.Prefix), nil
	case ModeFirstStatement:
		if target.Kind != tree.KindBlock {
			panic(fmt.Sprintf("template: first-statement coordinate on %s, want Block", target.Kind))
		}

		children := make([]*tree.Node, 0, len(target.Children)+len(synthesized))
		children = append(children, synthesized...)
		children = append(children, target.Children...)

		return target.WithChildren(children), nil
	case ModeBefore, ModeAfter:
		return t.spliceAtAnchor(target, coord, synthesized)
	}

	panic(fmt.Sprintf("template: unknown coordinate mode %d", coord.mode))
}

func (t *Template) spliceAtAnchor(target *tree.Node, coord Coordinate, synthesized []*tree.Node) (*tree.Node, error) {
	anchorIdx := -1

	for i, child := range target.Children {
		if child.ID == coord.anchor {
			anchorIdx = i

			break
		}
	}

	if anchorIdx < 0 {
		return nil, &SynthesisError{
			Snippet: t.source,
			Reason:  "insertion anchor is not a child of the target node",
		}
	}

	insertAt := anchorIdx
	if coord.mode == ModeAfter {
		insertAt++
	}

	children := make([]*tree.Node, 0, len(target.Children)+len(synthesized))
	children = append(children, target.Children[:insertAt]...)
	children = append(children, synthesized...)
	children = append(children, target.Children[insertAt:]...)

	return target.WithChildren(children), nil
}
