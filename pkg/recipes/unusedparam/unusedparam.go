// Package unusedparam removes method parameters that the method body never
// reads. Whether a parameter is removable is not a local question: a method
// that takes part in an override contract has its signature fixed
// externally, and every call site's argument list must shrink in lockstep
// with the declaration, wherever that call site lives. The recipe therefore
// runs as a scan/edit pair: the scan plans at most one removable parameter
// per signature and collects the signatures that must not change, across all
// units; the edit prunes planned declarations and shrinks matching call
// sites in every unit from the same shared plan.
package unusedparam

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Sumatoshi-tech/codemend/pkg/recipe"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

// Sentinel configuration errors.
var (
	ErrUnknownOption = errors.New("unknown recipe option")
	ErrOptionType    = errors.New("recipe option has wrong type")
)

// Accumulator holds the cross-unit facts the edit phase consults. Written
// only during scan; read-only afterwards.
type Accumulator struct {
	// Protected maps signature keys to "this signature must not change".
	Protected map[string]bool
	// Planned maps signature keys to the parameter position the edit phase
	// removes from declarations and call sites alike. Protection wins over
	// a plan for the same key.
	Planned map[string]int
}

func signatureKey(name string, arity int) string {
	return name + "/" + strconv.Itoa(arity)
}

// UnusedParam is the recipe.
type UnusedParam struct {
	// ignoreAnnotated skips methods carrying any attribute. Annotations can
	// wire a method into frameworks that call it reflectively.
	ignoreAnnotated bool
}

// New creates the recipe with default options.
func New() *UnusedParam {
	return &UnusedParam{ignoreAnnotated: true}
}

// Options implements recipe.Configurable.
func (u *UnusedParam) Options() []recipe.Option {
	return []recipe.Option{
		{
			Name:        "ignoreAnnotated",
			Description: "Skip methods that carry annotations.",
			Type:        recipe.BoolOption,
			Default:     true,
		},
	}
}

// Configure implements recipe.Configurable.
func (u *UnusedParam) Configure(values map[string]any) error {
	for key, value := range values {
		if key != "ignoreAnnotated" {
			return fmt.Errorf("%w: %s", ErrUnknownOption, key)
		}

		flag, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects bool, got %T", ErrOptionType, key, value)
		}

		u.ignoreAnnotated = flag
	}

	return nil
}

// Descriptor implements recipe.Entry.
func (u *UnusedParam) Descriptor() recipe.Descriptor {
	return recipe.NewDescriptor(
		"RemoveUnusedMethodParameter",
		"Removes parameters no method body reads, updating every call site, "+
			"unless the signature is part of an override contract.",
		"S1172",
	)
}

// NewAccumulator implements recipe.ScanRecipe.
func (u *UnusedParam) NewAccumulator() any {
	return &Accumulator{
		Protected: map[string]bool{},
		Planned:   map[string]int{},
	}
}

// Scanner implements recipe.ScanRecipe: a read-only pass that decides, per
// signature, whether a parameter may go and which one. Call sites are
// matched by name and arity only, so any same-signature declaration that
// keeps its arity, or disagrees about which parameter to drop, protects the
// signature outright.
func (u *UnusedParam) Scanner(acc any) visit.Visitor {
	facts := acc.(*Accumulator) //nolint:forcetypeassert // Accumulator shape is this recipe's own contract.

	ignoreAnnotated := u.ignoreAnnotated

	return &visit.Dispatch{Kinds: map[tree.Kind]visit.Func{
		tree.KindMethodDecl: func(n *tree.Node, _ *tree.Cursor) *tree.Node {
			planMethod(facts, ignoreAnnotated, n)

			return n
		},
	}}
}

func planMethod(facts *Accumulator, ignoreAnnotated bool, method *tree.Node) {
	key := signatureKey(method.MethodName(), len(method.Parameters()))

	if method.Prop("overrides") == "true" || method.Prop("overridden") == "true" {
		facts.Protected[key] = true

		return
	}

	position := removablePosition(ignoreAnnotated, method)
	if position < 0 {
		// This declaration keeps its arity, so its call sites must too.
		if len(method.Parameters()) > 0 {
			facts.Protected[key] = true
		}

		return
	}

	if planned, ok := facts.Planned[key]; ok && planned != position {
		facts.Protected[key] = true

		return
	}

	facts.Planned[key] = position
}

// removablePosition applies the bail-out checks and returns the position of
// the first parameter the body never reads, or -1. One parameter per
// execution keeps the call-site shrink unambiguous about the arity it
// matches.
func removablePosition(ignoreAnnotated bool, method *tree.Node) int {
	if method.Prop("native") == "true" {
		return -1
	}

	if ignoreAnnotated {
		for _, child := range method.Children {
			if child.Kind == tree.KindAttribute {
				return -1
			}
		}
	}

	body := method.Body()
	if body == nil {
		return -1
	}

	for position, param := range method.Parameters() {
		if !parameterRead(body, param.Token) {
			return position
		}
	}

	return -1
}

// Editor implements recipe.ScanRecipe. Declarations and call sites are
// rewritten from the same plan, so every unit converges on the new arity no
// matter which unit declared the method.
func (u *UnusedParam) Editor(acc any) visit.Visitor {
	facts := acc.(*Accumulator) //nolint:forcetypeassert // Accumulator shape is this recipe's own contract.

	return &visit.Dispatch{Kinds: map[tree.Kind]visit.Func{
		tree.KindMethodDecl: func(n *tree.Node, _ *tree.Cursor) *tree.Node {
			return pruneParameter(facts, n)
		},
		tree.KindCall: func(n *tree.Node, _ *tree.Cursor) *tree.Node {
			return shrinkCall(facts, n)
		},
	}}
}

func pruneParameter(facts *Accumulator, method *tree.Node) *tree.Node {
	key := signatureKey(method.MethodName(), len(method.Parameters()))

	position, ok := facts.Planned[key]
	if !ok || facts.Protected[key] {
		return method
	}

	params := method.Parameters()
	if position >= len(params) {
		return method
	}

	// Signature keys collapse overloads across classes; re-verify the plan
	// against this particular body before touching it.
	param := params[position]
	if body := method.Body(); body == nil || parameterRead(body, param.Token) {
		return method
	}

	return removeParameter(method, param)
}

func shrinkCall(facts *Accumulator, call *tree.Node) *tree.Node {
	key := signatureKey(call.CalleeName(), len(call.Arguments()))

	position, ok := facts.Planned[key]
	if !ok || facts.Protected[key] {
		return call
	}

	// Children[0] is the callee; arguments follow.
	return call.WithChild(position+1, nil)
}

func parameterRead(body *tree.Node, name string) bool {
	return len(body.Find(func(n *tree.Node) bool {
		return n.Kind == tree.KindIdentifier && n.Token == name
	})) > 0
}

func removeParameter(method *tree.Node, param *tree.Node) *tree.Node {
	children := make([]*tree.Node, 0, len(method.Children)-1)

	for _, child := range method.Children {
		if child == param {
			continue
		}

		children = append(children, child)
	}

	return method.WithChildren(children)
}
