// Package treeio moves trees and rewrite plans across the module boundary.
// Parsing source text and reprinting it are jobs of the surrounding tooling;
// units enter and leave this engine as serialized, type-attributed trees.
// Incoming documents are validated against an embedded JSON Schema before
// they become nodes.
package treeio

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/codemend/pkg/tree"
)

//go:embed schema.json
var treeSchema string

// Sentinel errors.
var (
	ErrSchemaViolation = errors.New("tree document violates schema")
	ErrUnknownTypeKind = errors.New("unknown semantic type kind")
)

type wireComment struct {
	Text   string `json:"text"`
	Suffix string `json:"suffix,omitempty"`
}

type wireSpace struct {
	Whitespace string        `json:"whitespace,omitempty"`
	Comments   []wireComment `json:"comments,omitempty"`
}

type wireType struct {
	Kind     string      `json:"kind"`
	Name     string      `json:"name,omitempty"`
	Receiver *wireType   `json:"receiver,omitempty"`
	Params   []*wireType `json:"params,omitempty"`
	Return   *wireType   `json:"return,omitempty"`
}

type wireNode struct {
	ID       string            `json:"id,omitempty"`
	Kind     string            `json:"kind"`
	Token    string            `json:"token,omitempty"`
	Prefix   *wireSpace        `json:"prefix,omitempty"`
	Props    map[string]string `json:"props,omitempty"`
	Type     *wireType         `json:"type,omitempty"`
	Children []*wireNode       `json:"children,omitempty"`
}

// Load reads, validates, and decodes one serialized tree. Nodes without an
// id get a fresh identity; markers are traversal-scoped and never serialized.
func Load(r io.Reader) (*tree.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read tree document: %w", err)
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	var wire wireNode
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode tree document: %w", err)
	}

	return decodeNode(&wire)
}

// Store encodes a tree as an indented JSON document.
func Store(w io.Writer, n *tree.Node) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(encodeNode(n)); err != nil {
		return fmt.Errorf("encode tree document: %w", err)
	}

	return nil
}

func validate(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(treeSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate tree document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	first := result.Errors()[0]

	return fmt.Errorf("%w: %s: %s", ErrSchemaViolation, first.Field(), first.Description())
}

func decodeNode(wire *wireNode) (*tree.Node, error) {
	id := uuid.New()

	if wire.ID != "" {
		parsed, err := uuid.Parse(wire.ID)
		if err != nil {
			return nil, fmt.Errorf("node id %q: %w", wire.ID, err)
		}

		id = parsed
	}

	semType, err := decodeType(wire.Type)
	if err != nil {
		return nil, err
	}

	builder := tree.NewBuilder(tree.Kind(wire.Kind)).
		WithID(id).
		WithToken(wire.Token).
		WithType(semType)

	if wire.Prefix != nil {
		builder.WithPrefix(decodeSpace(wire.Prefix))
	}

	for name, value := range wire.Props {
		builder.WithProp(name, value)
	}

	for _, child := range wire.Children {
		decoded, childErr := decodeNode(child)
		if childErr != nil {
			return nil, childErr
		}

		builder.AddChildren(decoded)
	}

	return builder.Build(), nil
}

func decodeSpace(wire *wireSpace) tree.Space {
	comments := make([]tree.Comment, len(wire.Comments))
	for i, comment := range wire.Comments {
		comments[i] = tree.Comment{Text: comment.Text, Suffix: comment.Suffix}
	}

	if len(comments) == 0 {
		comments = nil
	}

	return tree.Space{Whitespace: wire.Whitespace, Comments: comments}
}

func decodeType(wire *wireType) (*tree.SemType, error) {
	if wire == nil {
		return nil, nil //nolint:nilnil // Absent type attribution is a normal state.
	}

	receiver, err := decodeType(wire.Receiver)
	if err != nil {
		return nil, err
	}

	ret, err := decodeType(wire.Return)
	if err != nil {
		return nil, err
	}

	params := make([]*tree.SemType, 0, len(wire.Params))

	for _, param := range wire.Params {
		decoded, paramErr := decodeType(param)
		if paramErr != nil {
			return nil, paramErr
		}

		params = append(params, decoded)
	}

	if len(params) == 0 {
		params = nil
	}

	kind, err := typeKind(wire.Kind)
	if err != nil {
		return nil, err
	}

	return &tree.SemType{
		Kind:     kind,
		Name:     wire.Name,
		Receiver: receiver,
		Params:   params,
		Return:   ret,
	}, nil
}

func typeKind(name string) (tree.TypeKind, error) {
	switch name {
	case "unknown":
		return tree.TypeUnknown, nil
	case "primitive":
		return tree.TypePrimitive, nil
	case "class":
		return tree.TypeClass, nil
	case "method":
		return tree.TypeMethod, nil
	}

	return tree.TypeUnknown, fmt.Errorf("%w: %s", ErrUnknownTypeKind, name)
}

func encodeNode(n *tree.Node) *wireNode {
	if n == nil {
		return nil
	}

	wire := &wireNode{
		ID:    n.ID.String(),
		Kind:  string(n.Kind),
		Token: n.Token,
		Props: n.Props,
		Type:  encodeType(n.Type),
	}

	if !n.Prefix.IsEmpty() {
		wire.Prefix = encodeSpace(n.Prefix)
	}

	for _, child := range n.Children {
		wire.Children = append(wire.Children, encodeNode(child))
	}

	return wire
}

func encodeSpace(space tree.Space) *wireSpace {
	wire := &wireSpace{Whitespace: space.Whitespace}

	for _, comment := range space.Comments {
		wire.Comments = append(wire.Comments, wireComment{Text: comment.Text, Suffix: comment.Suffix})
	}

	return wire
}

func encodeType(semType *tree.SemType) *wireType {
	if semType == nil {
		return nil
	}

	wire := &wireType{
		Name:     semType.Name,
		Receiver: encodeType(semType.Receiver),
		Return:   encodeType(semType.Return),
	}

	switch semType.Kind {
	case tree.TypeUnknown:
		wire.Kind = "unknown"
	case tree.TypePrimitive:
		wire.Kind = "primitive"
	case tree.TypeClass:
		wire.Kind = "class"
	case tree.TypeMethod:
		wire.Kind = "method"
	}

	for _, param := range semType.Params {
		wire.Params = append(wire.Params, encodeType(param))
	}

	return wire
}
