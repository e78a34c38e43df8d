package tree

// Kind identifies the syntactic construct a node represents.
type Kind string

// Node kind constants.
const (
	KindFile        Kind = "File"
	KindImport      Kind = "Import"
	KindClassDecl   Kind = "ClassDecl"
	KindMethodDecl  Kind = "MethodDecl"
	KindParameter   Kind = "Parameter"
	KindAttribute   Kind = "Attribute"
	KindBlock       Kind = "Block"
	KindIf          Kind = "If"
	KindSwitch      Kind = "Switch"
	KindCase        Kind = "Case"
	KindLoop        Kind = "Loop"
	KindReturn      Kind = "Return"
	KindBreak       Kind = "Break"
	KindContinue    Kind = "Continue"
	KindThrow       Kind = "Throw"
	KindVarDecl     Kind = "VarDecl"
	KindAssignment  Kind = "Assignment"
	KindExprStmt    Kind = "ExprStmt"
	KindEmpty       Kind = "Empty"
	KindBinary      Kind = "Binary"
	KindUnary       Kind = "Unary"
	KindCall        Kind = "Call"
	KindSelect      Kind = "Select"
	KindIndex       Kind = "Index"
	KindIdentifier  Kind = "Identifier"
	KindLiteral     Kind = "Literal"
	KindPlaceholder Kind = "Placeholder"
)

// Category is the grammatical category of a kind. The homogeneous traversal
// flavor asserts that a hook never moves a node across categories.
type Category int

// Category constants.
const (
	CategoryOther Category = iota
	CategoryDeclaration
	CategoryStatement
	CategoryExpression
)

// String returns the human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryDeclaration:
		return "declaration"
	case CategoryStatement:
		return "statement"
	case CategoryExpression:
		return "expression"
	case CategoryOther:
		return "other"
	}

	return "other"
}

//nolint:gochecknoglobals // Package-level lookup table, never mutated after init.
var kindCategories = map[Kind]Category{
	KindClassDecl:   CategoryDeclaration,
	KindMethodDecl:  CategoryDeclaration,
	KindParameter:   CategoryDeclaration,
	KindVarDecl:     CategoryDeclaration,
	KindImport:      CategoryDeclaration,
	KindBlock:       CategoryStatement,
	KindIf:          CategoryStatement,
	KindSwitch:      CategoryStatement,
	KindCase:        CategoryStatement,
	KindLoop:        CategoryStatement,
	KindReturn:      CategoryStatement,
	KindBreak:       CategoryStatement,
	KindContinue:    CategoryStatement,
	KindThrow:       CategoryStatement,
	KindAssignment:  CategoryStatement,
	KindExprStmt:    CategoryStatement,
	KindEmpty:       CategoryStatement,
	KindBinary:      CategoryExpression,
	KindUnary:       CategoryExpression,
	KindCall:        CategoryExpression,
	KindSelect:      CategoryExpression,
	KindIndex:       CategoryExpression,
	KindIdentifier:  CategoryExpression,
	KindLiteral:     CategoryExpression,
	KindPlaceholder: CategoryExpression,
}

// CategoryOf returns the grammatical category of a kind.
func CategoryOf(kind Kind) Category {
	if category, ok := kindCategories[kind]; ok {
		return category
	}

	return CategoryOther
}

// Child slot layout per kind. Children are positional:
//
//	Binary:     [left, right], operator in Token.
//	Unary:      [operand], operator in Token.
//	If:         [condition, then, else?].
//	Switch:     [selector, case...].
//	Case:       [label..., body(Block)], default case has Props["default"]="true".
//	Call:       [callee, argument...], callee is an Identifier or Select.
//	Select:     [receiver], member name in Token.
//	Index:      [target, index].
//	Assignment: [target, value], operator in Token.
//	Return:     [value?].
//	MethodDecl: [Parameter..., Block], method name in Props["name"].
//	VarDecl:    [initializer?], variable name in Props["name"].
//	ExprStmt:   [expression].
//	File:       [Import..., declaration...].
