package unusedparam_test

import (
	"testing"

	"github.com/Sumatoshi-tech/codemend/pkg/recipes/unusedparam"
	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/visit"
)

func method(name string, params []string, body ...*tree.Node) *tree.Node {
	children := make([]*tree.Node, 0, len(params)+1)
	for _, param := range params {
		children = append(children, tree.New(tree.KindParameter, param))
	}

	children = append(children, tree.New(tree.KindBlock, "", body...))

	return tree.New(tree.KindMethodDecl, "", children...).WithProp("name", name)
}

func callStmt(callee string, args ...string) *tree.Node {
	children := []*tree.Node{tree.New(tree.KindIdentifier, callee)}
	for _, arg := range args {
		children = append(children, tree.New(tree.KindLiteral, arg))
	}

	return tree.New(tree.KindExprStmt, "", tree.New(tree.KindCall, "", children...))
}

func use(name string) *tree.Node {
	return tree.New(tree.KindExprStmt, "", tree.New(tree.KindIdentifier, name))
}

// apply drives the scan/edit protocol over the units the way the runner does.
func apply(units ...*tree.Node) []*tree.Node {
	rec := unusedparam.New()
	acc := rec.NewAccumulator()

	for _, unit := range units {
		visit.Walk(rec.Scanner(acc), unit)
	}

	out := make([]*tree.Node, len(units))
	for i, unit := range units {
		out[i] = visit.Walk(rec.Editor(acc), unit)
	}

	return out
}

func methodNamed(root *tree.Node, name string) *tree.Node {
	found := root.Find(func(n *tree.Node) bool { return n.MethodName() == name })
	if len(found) == 0 {
		return nil
	}

	return found[0]
}

func firstCall(root *tree.Node) *tree.Node {
	return root.Find(func(n *tree.Node) bool { return n.Kind == tree.KindCall })[0]
}

func TestRemovesUnusedParameterAndShrinksCallSites(t *testing.T) {
	t.Parallel()

	unit := tree.New(tree.KindFile, "",
		method("compute", []string{"unused", "used"}, use("used")),
		method("caller", nil, callStmt("compute", "1", "2")),
	)

	out := apply(unit)[0]

	params := methodNamed(out, "compute").Parameters()
	if len(params) != 1 || params[0].Token != "used" {
		t.Fatalf("parameters after prune: %v", params)
	}

	args := firstCall(methodNamed(out, "caller")).Arguments()
	if len(args) != 1 || args[0].Token != "2" {
		t.Errorf("call site arguments after prune: %v", args)
	}
}

func TestCallSitesInEveryUnitShrink(t *testing.T) {
	t.Parallel()

	// The declaration and its callers live in different units; only a plan
	// shared across the whole edit phase keeps their arities in lockstep.
	declUnit := tree.New(tree.KindFile, "",
		method("compute", []string{"unused", "used"}, use("used")),
	)
	callUnit := tree.New(tree.KindFile, "",
		method("caller", nil, callStmt("compute", "1", "2")),
	)

	out := apply(declUnit, callUnit)

	params := methodNamed(out[0], "compute").Parameters()
	if len(params) != 1 || params[0].Token != "used" {
		t.Fatalf("declaration after prune: %v", params)
	}

	args := firstCall(out[1]).Arguments()
	if len(args) != 1 || args[0].Token != "2" {
		t.Errorf("cross-unit call site kept the stale arity: %v", args)
	}
}

func TestRecursiveCallInDeclaringUnitShrinks(t *testing.T) {
	t.Parallel()

	declUnit := tree.New(tree.KindFile, "",
		method("compute", []string{"unused", "used"}, use("used"), callStmt("compute", "1", "2")),
	)

	out := apply(declUnit)[0]

	args := firstCall(out).Arguments()
	if len(args) != 1 || args[0].Token != "2" {
		t.Errorf("same-unit call site not shrunk: %v", args)
	}
}

func TestConflictingSignaturesProtectEachOther(t *testing.T) {
	t.Parallel()

	// Two classes declare render with the same arity, but only one can spare
	// a parameter. Call sites cannot be told apart by name and arity, so
	// neither declaration may change.
	prunable := tree.New(tree.KindFile, "",
		method("render", []string{"a", "b"}, use("b")),
	)
	fixed := tree.New(tree.KindFile, "",
		method("render", []string{"x", "y"}, use("x"), use("y")),
		method("caller", nil, callStmt("render", "1", "2")),
	)

	out := apply(prunable, fixed)

	if out[0] != prunable || out[1] != fixed {
		t.Error("conflicting same-signature declarations were rewritten")
	}
}

func TestProtectsOverrideContracts(t *testing.T) {
	t.Parallel()

	// The override fact lives in one unit, the overriding declaration in
	// another; only a completed scan over both can protect it.
	contractUnit := tree.New(tree.KindFile, "",
		method("render", []string{"ctx"}).WithProp("overrides", "true"),
	)
	implUnit := tree.New(tree.KindFile, "",
		method("render", []string{"ctx"}),
	)

	out := apply(contractUnit, implUnit)

	for i, unit := range out {
		if len(methodNamed(unit, "render").Parameters()) != 1 {
			t.Errorf("unit %d: protected signature was pruned", i)
		}
	}
}

func TestSkipsNativeAndAnnotatedMethods(t *testing.T) {
	t.Parallel()

	native := method("ffi", []string{"unused"}).WithProp("native", "true")

	annotated := tree.New(tree.KindMethodDecl, "",
		tree.New(tree.KindAttribute, "Callback"),
		tree.New(tree.KindParameter, "unused"),
		tree.New(tree.KindBlock, ""),
	).WithProp("name", "hook")

	unit := tree.New(tree.KindFile, "", native, annotated)

	if apply(unit)[0] != unit {
		t.Error("native or annotated method was rewritten")
	}
}

func TestConfigureCanDisableAnnotationBailout(t *testing.T) {
	t.Parallel()

	annotated := tree.New(tree.KindMethodDecl, "",
		tree.New(tree.KindAttribute, "Callback"),
		tree.New(tree.KindParameter, "unused"),
		tree.New(tree.KindBlock, ""),
	).WithProp("name", "hook")

	unit := tree.New(tree.KindFile, "", annotated)

	rec := unusedparam.New()
	if err := rec.Configure(map[string]any{"ignoreAnnotated": false}); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	acc := rec.NewAccumulator()
	visit.Walk(rec.Scanner(acc), unit)
	out := visit.Walk(rec.Editor(acc), unit)

	if len(methodNamed(out, "hook").Parameters()) != 0 {
		t.Error("annotation bail-out still active after Configure")
	}
}

func TestConfigureRejectsBadOptions(t *testing.T) {
	t.Parallel()

	rec := unusedparam.New()

	if err := rec.Configure(map[string]any{"mystery": true}); err == nil {
		t.Error("unknown option accepted")
	}

	if err := rec.Configure(map[string]any{"ignoreAnnotated": "yes"}); err == nil {
		t.Error("wrong option type accepted")
	}
}

func TestRemovesOneParameterPerRun(t *testing.T) {
	t.Parallel()

	unit := tree.New(tree.KindFile, "",
		method("compute", []string{"a", "b"}),
	)

	out := apply(unit)[0]

	if len(methodNamed(out, "compute").Parameters()) != 1 {
		t.Error("more than one parameter pruned in a single run")
	}
}

func TestLeavesFullyUsedMethodsAlone(t *testing.T) {
	t.Parallel()

	unit := tree.New(tree.KindFile, "",
		method("compute", []string{"a", "b"}, use("a"), use("b")),
	)

	if apply(unit)[0] != unit {
		t.Error("fully used parameters were pruned")
	}
}

func TestArityMismatchedCallsStayUntouched(t *testing.T) {
	t.Parallel()

	unit := tree.New(tree.KindFile, "",
		method("compute", []string{"unused", "used"}, use("used")),
		method("caller", nil, callStmt("compute", "1", "2", "3")),
	)

	out := apply(unit)[0]

	args := firstCall(methodNamed(out, "caller")).Arguments()
	if len(args) != 3 {
		t.Errorf("overloaded call site shrunk: %v", args)
	}
}
