package tree

import "strings"

// TypeKind discriminates the shapes of a resolved semantic type.
type TypeKind int

// TypeKind constants.
const (
	// TypeUnknown means the external typechecker could not resolve the type.
	TypeUnknown TypeKind = iota
	// TypePrimitive is a built-in value type (int, bool, string, ...).
	TypePrimitive
	// TypeClass is a named reference type, identified by its fully
	// qualified name.
	TypeClass
	// TypeMethod is a method signature.
	TypeMethod
)

// SemType is a semantic type resolved by the external typechecker. The
// rewrite engine only queries types, it never computes them; a nil or
// Unknown type is a normal condition recipes must branch on.
type SemType struct {
	Kind TypeKind
	// Name is the primitive name or fully qualified class name. For
	// methods it is the method name.
	Name string
	// Receiver is the declaring type of a method signature.
	Receiver *SemType
	// Params are the parameter types of a method signature.
	Params []*SemType
	// Return is the return type of a method signature.
	Return *SemType
}

// UnknownType returns the explicit "could not resolve" type.
func UnknownType() *SemType {
	return &SemType{Kind: TypeUnknown}
}

// PrimitiveType returns a primitive semantic type.
func PrimitiveType(name string) *SemType {
	return &SemType{Kind: TypePrimitive, Name: name}
}

// ClassType returns a named reference type.
func ClassType(fullyQualified string) *SemType {
	return &SemType{Kind: TypeClass, Name: fullyQualified}
}

// MethodType returns a method signature type.
func MethodType(receiver *SemType, name string, params []*SemType, ret *SemType) *SemType {
	return &SemType{
		Kind:     TypeMethod,
		Name:     name,
		Receiver: receiver,
		Params:   params,
		Return:   ret,
	}
}

// IsUnknown reports whether the type is absent or unresolved.
func (t *SemType) IsUnknown() bool {
	return t == nil || t.Kind == TypeUnknown
}

// IsClass reports whether the type is the named reference type.
func (t *SemType) IsClass(fullyQualified string) bool {
	return t != nil && t.Kind == TypeClass && t.Name == fullyQualified
}

// SimpleName returns the last segment of a fully qualified name.
func (t *SemType) SimpleName() string {
	if t == nil {
		return ""
	}

	if idx := strings.LastIndex(t.Name, "."); idx >= 0 {
		return t.Name[idx+1:]
	}

	return t.Name
}

// String returns a debug rendering of the type.
func (t *SemType) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeUnknown:
		return "<unknown>"
	case TypePrimitive, TypeClass:
		return t.Name
	case TypeMethod:
		var buf strings.Builder

		if t.Receiver != nil {
			buf.WriteString(t.Receiver.Name)
			buf.WriteString("#")
		}

		buf.WriteString(t.Name)
		buf.WriteString("(")

		for i, param := range t.Params {
			if i > 0 {
				buf.WriteString(",")
			}

			buf.WriteString(param.String())
		}

		buf.WriteString(")")

		return buf.String()
	}

	return "<unknown>"
}
