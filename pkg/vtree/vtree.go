// Package vtree defines the immutable visual-tree description produced by
// component render fragments.
//
// A Node is a pure value: once built it is never mutated, so a render
// fragment that closes over component state is safe to invoke once, later,
// at a time chosen by the host. The package deliberately knows nothing
// about painting or diffing; it is only the value passed across the
// render-sink boundary.
package vtree

import "sort"

// Kind is the node type discriminator.
type Kind uint8

const (
	// KindElement is a tagged element with attributes and children.
	KindElement Kind = iota
	// KindText is a text leaf.
	KindText
	// KindFragment is an untagged grouping of children.
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Attribute is a name/value pair on an element node.
type Attribute struct {
	Name  string
	Value string
}

// Node is an immutable visual-tree node.
type Node struct {
	kind     Kind
	tag      string
	text     string
	attrs    []Attribute
	children []*Node
}

// Elem builds an element node. Attributes are sorted by name at
// construction so the description is deterministic. Nil children are
// dropped.
func Elem(tag string, attrs []Attribute, children ...*Node) *Node {
	sorted := make([]Attribute, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	return &Node{
		kind:     KindElement,
		tag:      tag,
		attrs:    sorted,
		children: compact(children),
	}
}

// Text builds a text leaf.
func Text(s string) *Node {
	return &Node{kind: KindText, text: s}
}

// Group builds a fragment node from the given children. Nil children are
// dropped.
func Group(children ...*Node) *Node {
	return &Node{kind: KindFragment, children: compact(children)}
}

// Attrs builds an attribute list from alternating name/value pairs.
// A trailing unpaired name is ignored.
func Attrs(pairs ...string) []Attribute {
	attrs := make([]Attribute, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, Attribute{Name: pairs[i], Value: pairs[i+1]})
	}
	return attrs
}

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the element tag, or "" for non-element nodes.
func (n *Node) Tag() string { return n.tag }

// Content returns the text content of a text leaf.
func (n *Node) Content() string { return n.text }

// Attributes returns a copy of the node's attributes.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns a copy of the node's child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

func compact(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, c := range children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
