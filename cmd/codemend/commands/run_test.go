package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
	"github.com/Sumatoshi-tech/codemend/pkg/treeio"
)

const doubleNegationDocument = `{
  "kind": "File",
  "children": [
    {
      "kind": "MethodDecl",
      "props": {"name": "check"},
      "children": [
        {
          "kind": "Block",
          "children": [
            {
              "kind": "Return",
              "children": [
                {"kind": "Unary", "token": "!", "children": [
                  {"kind": "Unary", "token": "!", "children": [
                    {"kind": "Identifier", "token": "flag"}
                  ]}
                ]}
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRunCommandRewritesTree(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()

	treePath := writeFile(t, dir, "unit.json", doubleNegationDocument)
	planPath := writeFile(t, dir, "plan.yaml", "recipes:\n  - id: simplify-boolean-expression\n")

	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--plan", planPath,
		"--output-dir", outDir,
		"--silent", "--no-color",
		treePath,
	})

	require.NoError(t, cmd.Execute())

	rewrittenFile, err := os.Open(filepath.Join(outDir, "unit.json"))
	require.NoError(t, err)
	defer rewrittenFile.Close()

	root, err := treeio.Load(rewrittenFile)
	require.NoError(t, err)

	assert.Empty(t, root.Find(func(n *tree.Node) bool { return n.Kind == tree.KindUnary }),
		"double negation survived the run")
}

func TestRunCommandDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()

	treePath := writeFile(t, dir, "unit.json", doubleNegationDocument)
	planPath := writeFile(t, dir, "plan.yaml", "recipes:\n  - id: simplify-boolean-expression\n")

	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{
		"--plan", planPath,
		"--output-dir", outDir,
		"--dry-run", "--silent",
		treePath,
	})

	require.NoError(t, cmd.Execute())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run produced output files")
}

func TestRunCommandUnknownRecipeFails(t *testing.T) {
	dir := t.TempDir()

	treePath := writeFile(t, dir, "unit.json", doubleNegationDocument)
	planPath := writeFile(t, dir, "plan.yaml", "recipes:\n  - id: not-a-recipe\n")

	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--plan", planPath, "--silent", treePath})

	require.Error(t, cmd.Execute())
}

func TestRunCommandConfiguresRecipesFromPlan(t *testing.T) {
	dir := t.TempDir()

	treePath := writeFile(t, dir, "unit.json", doubleNegationDocument)
	planPath := writeFile(t, dir, "plan.yaml", `
recipes:
  - id: remove-unused-method-parameter
    options:
      ignoreAnnotated: false
`)

	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--plan", planPath, "--dry-run", "--silent", treePath})

	require.NoError(t, cmd.Execute())
}

func TestRunCommandRejectsOptionsForPlainRecipe(t *testing.T) {
	dir := t.TempDir()

	treePath := writeFile(t, dir, "unit.json", doubleNegationDocument)
	planPath := writeFile(t, dir, "plan.yaml", `
recipes:
  - id: simplify-boolean-expression
    options:
      anything: true
`)

	cmd := NewRunCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--plan", planPath, "--dry-run", "--silent", treePath})

	require.Error(t, cmd.Execute())
}

func TestListCommandShowsBundledRecipes(t *testing.T) {
	var out bytes.Buffer

	cmd := NewListCommand()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	for _, id := range []string{
		"simplify-boolean-expression",
		"unwrap-default-only-switch",
		"remove-unused-method-parameter",
		"prefer-objects-equals",
	} {
		assert.Contains(t, out.String(), id)
	}
}

func TestDescribeCommandShowsOptions(t *testing.T) {
	var out bytes.Buffer

	cmd := NewDescribeCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"remove-unused-method-parameter", "--no-color"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "ignoreAnnotated")
	assert.Contains(t, out.String(), "S1172")
}

func TestDescribeCommandUnknownRecipe(t *testing.T) {
	cmd := NewDescribeCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"missing"})

	require.Error(t, cmd.Execute())
}
