package tree

import "strings"

// Render reconstructs an approximate source text for a subtree. This is a
// debug rendering used by diff output and log messages; the authoritative
// printer lives in the surrounding tooling, outside this module.
func Render(n *Node) string {
	var buf strings.Builder

	renderNode(&buf, n)

	return buf.String()
}

//nolint:cyclop,funlen // One rendering arm per node kind.
func renderNode(buf *strings.Builder, n *Node) {
	if n == nil {
		return
	}

	buf.WriteString(n.Prefix.Render())

	switch n.Kind {
	case KindFile:
		renderAll(buf, n.Children, "")
	case KindImport:
		buf.WriteString("import ")
		buf.WriteString(n.Token)
		buf.WriteString(";")
	case KindClassDecl:
		buf.WriteString("class ")
		buf.WriteString(n.Prop("name"))
		buf.WriteString(" {")
		renderAll(buf, n.Children, " ")
		buf.WriteString(" }")
	case KindMethodDecl:
		renderMethodDecl(buf, n)
	case KindParameter:
		renderParameter(buf, n)
	case KindAttribute:
		buf.WriteString("@")
		buf.WriteString(n.Token)
	case KindBlock:
		buf.WriteString("{")
		renderAll(buf, n.Children, " ")
		buf.WriteString(" }")
	case KindIf:
		renderIf(buf, n)
	case KindSwitch:
		buf.WriteString("switch (")
		renderNode(buf, n.Child(0))
		buf.WriteString(") {")
		renderAll(buf, n.Children[1:], " ")
		buf.WriteString(" }")
	case KindCase:
		renderCase(buf, n)
	case KindLoop:
		buf.WriteString("while (")
		renderNode(buf, n.Child(0))
		buf.WriteString(") ")
		renderNode(buf, n.Child(1))
	case KindReturn:
		buf.WriteString("return")

		if n.Child(0) != nil {
			renderSpaced(buf, n.Child(0))
		}

		buf.WriteString(";")
	case KindBreak:
		buf.WriteString("break;")
	case KindContinue:
		buf.WriteString("continue;")
	case KindThrow:
		buf.WriteString("throw")
		renderSpaced(buf, n.Child(0))
		buf.WriteString(";")
	case KindVarDecl:
		renderVarDecl(buf, n)
	case KindAssignment:
		renderNode(buf, n.Child(0))
		buf.WriteString(" ")
		buf.WriteString(n.Token)
		renderSpaced(buf, n.Child(1))
		buf.WriteString(";")
	case KindExprStmt:
		renderNode(buf, n.Child(0))
		buf.WriteString(";")
	case KindEmpty:
		buf.WriteString(";")
	case KindBinary:
		renderNode(buf, n.Child(0))
		buf.WriteString(" ")
		buf.WriteString(n.Token)
		renderSpaced(buf, n.Child(1))
	case KindUnary:
		buf.WriteString(n.Token)
		renderNode(buf, n.Child(0))
	case KindCall:
		renderCall(buf, n)
	case KindSelect:
		renderNode(buf, n.Child(0))
		buf.WriteString(".")
		buf.WriteString(n.Token)
	case KindIndex:
		renderNode(buf, n.Child(0))
		buf.WriteString("[")
		renderNode(buf, n.Child(1))
		buf.WriteString("]")
	case KindIdentifier, KindLiteral:
		buf.WriteString(n.Token)
	case KindPlaceholder:
		buf.WriteString("#{")
		buf.WriteString(n.Prop("category"))
		buf.WriteString("}")
	default:
		buf.WriteString(n.Token)
		renderAll(buf, n.Children, " ")
	}
}

func renderMethodDecl(buf *strings.Builder, n *Node) {
	buf.WriteString(n.Prop("name"))
	buf.WriteString("(")

	body := -1

	for i, child := range n.Children {
		if child.Kind != KindParameter {
			body = i

			break
		}

		if i > 0 {
			buf.WriteString(", ")
		}

		renderNode(buf, child)
	}

	buf.WriteString(") ")

	if body >= 0 {
		renderAll(buf, n.Children[body:], "")
	}
}

func renderVarDecl(buf *strings.Builder, n *Node) {
	if varType := n.Prop("type"); varType != "" {
		buf.WriteString(varType)
		buf.WriteString(" ")
	}

	buf.WriteString(n.Prop("name"))

	if initializer := n.Child(0); initializer != nil {
		buf.WriteString(" =")
		renderSpaced(buf, initializer)
	}

	buf.WriteString(";")
}

func renderParameter(buf *strings.Builder, n *Node) {
	if paramType := n.Prop("type"); paramType != "" {
		buf.WriteString(paramType)
		buf.WriteString(" ")
	}

	buf.WriteString(n.Token)
}

func renderIf(buf *strings.Builder, n *Node) {
	buf.WriteString("if (")
	renderNode(buf, n.Child(0))
	buf.WriteString(") ")
	renderNode(buf, n.Child(1))

	if elseBranch := n.Child(2); elseBranch != nil {
		buf.WriteString(" else ")
		renderNode(buf, elseBranch)
	}
}

func renderCase(buf *strings.Builder, n *Node) {
	if n.Prop("default") == "true" {
		buf.WriteString("default:")
		renderAll(buf, n.Children, " ")

		return
	}

	buf.WriteString("case")
	renderSpaced(buf, n.Child(0))
	buf.WriteString(":")
	renderAll(buf, n.Children[1:], " ")
}

func renderCall(buf *strings.Builder, n *Node) {
	renderNode(buf, n.Child(0))
	buf.WriteString("(")

	for i, arg := range n.Children[1:] {
		if i > 0 {
			buf.WriteString(", ")
		}

		renderNode(buf, arg)
	}

	buf.WriteString(")")
}

func renderSpaced(buf *strings.Builder, n *Node) {
	if n != nil && n.Prefix.IsEmpty() {
		buf.WriteString(" ")
	}

	renderNode(buf, n)
}

func renderAll(buf *strings.Builder, nodes []*Node, separator string) {
	for _, child := range nodes {
		if separator != "" && child.Prefix.IsEmpty() {
			buf.WriteString(separator)
		}

		renderNode(buf, child)
	}
}
