// Package jsontree decodes JSON text into an order-preserving generic tree.
//
// Unlike encoding/json's map[string]any decoding, object members keep their
// input order and duplicate keys are retained as separate members.
package jsontree

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree decoding and access.
var (
	// ErrMalformedInput indicates the text is not well-formed JSON.
	ErrMalformedInput = errors.New("malformed input")

	// ErrWrongKind indicates an accessor was called on a node of another kind.
	ErrWrongKind = errors.New("wrong node kind")
)

// Kind tags the variant held by a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Member is a single key/value pair of an object node.
type Member struct {
	Key   string
	Value *Node
}

// Node is a decoded JSON value. The Kind determines which accessor is valid.
type Node struct {
	kind    Kind
	num     float64
	str     string
	boolean bool
	elems   []*Node
	members []Member
}

// NullNode returns a null node.
func NullNode() *Node { return &Node{kind: KindNull} }

// BoolNode returns a bool node.
func BoolNode(b bool) *Node { return &Node{kind: KindBool, boolean: b} }

// NumberNode returns a number node.
func NumberNode(f float64) *Node { return &Node{kind: KindNumber, num: f} }

// StringNode returns a string node.
func StringNode(s string) *Node { return &Node{kind: KindString, str: s} }

// ArrayNode returns an array node holding elems in order.
func ArrayNode(elems ...*Node) *Node {
	if elems == nil {
		elems = []*Node{}
	}
	return &Node{kind: KindArray, elems: elems}
}

// ObjectNode returns an object node holding members in order.
func ObjectNode(members ...Member) *Node {
	if members == nil {
		members = []Member{}
	}
	return &Node{kind: KindObject, members: members}
}

// Kind reports the variant of n.
func (n *Node) Kind() Kind {
	return n.kind
}

// Is reports whether n holds the given kind.
func (n *Node) Is(k Kind) bool {
	return n != nil && n.kind == k
}

// Number returns the numeric value of a number node.
func (n *Node) Number() (float64, error) {
	if err := n.expect(KindNumber); err != nil {
		return 0, err
	}
	return n.num, nil
}

// Str returns the text of a string node.
func (n *Node) Str() (string, error) {
	if err := n.expect(KindString); err != nil {
		return "", err
	}
	return n.str, nil
}

// Bool returns the value of a bool node.
func (n *Node) Bool() (bool, error) {
	if err := n.expect(KindBool); err != nil {
		return false, err
	}
	return n.boolean, nil
}

// Elements returns the elements of an array node.
func (n *Node) Elements() ([]*Node, error) {
	if err := n.expect(KindArray); err != nil {
		return nil, err
	}
	return n.elems, nil
}

// Members returns the members of an object node, duplicates included.
func (n *Node) Members() ([]Member, error) {
	if err := n.expect(KindObject); err != nil {
		return nil, err
	}
	return n.members, nil
}

// Len returns the number of children of an array or object node, 0 otherwise.
func (n *Node) Len() int {
	switch n.kind {
	case KindArray:
		return len(n.elems)
	case KindObject:
		return len(n.members)
	default:
		return 0
	}
}

func (n *Node) expect(k Kind) error {
	if n == nil {
		return fmt.Errorf("%w: nil node, want %s", ErrWrongKind, k)
	}
	if n.kind != k {
		return fmt.Errorf("%w: have %s, want %s", ErrWrongKind, n.kind, k)
	}
	return nil
}

// Equal reports whether a and b are structurally identical, including
// member order and duplicate keys.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.num == b.num
	case KindString:
		return a.str == b.str
	case KindArray:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
