package xmlobject

import (
	"github.com/beevik/etree"
)

// Node is one level of an xml object's hierarchy, bound to its element in
// the current document.
type Node struct {
	owner     *Interface
	name      string
	elem      *etree.Element
	members   []member
	construct func()
}

type member interface {
	construct()
}

// Name of the element for this level.
func (n *Node) Name() string {
	return n.name
}

func (n *Node) addMember(m member) {
	n.members = append(n.members, m)
}

// constructMembers sets explicit members to their defaults first, then runs
// the level's own construct function.
func (n *Node) constructMembers() {
	for _, m := range n.members {
		m.construct()
	}
	if n.construct != nil {
		n.construct()
	}
}

// GetText returns the text of the child element name, or "" if it does not exist.
func (n *Node) GetText(name string) string {
	n.owner.ensureDocument()
	return TextOf(n.elem.SelectElement(name))
}

// SetText sets the text of the child element name, creating it if needed.
func (n *Node) SetText(name, value string) {
	n.owner.ensureDocument()
	child := n.elem.SelectElement(name)
	if child == nil {
		child = n.elem.CreateElement(name)
	}
	child.SetText(value)
}

// Get reads the child element name through a codec. Text the codec cannot
// parse yields the zero value.
func Get[T any](n *Node, name string, codec Codec[T]) T {
	v, err := codec.Parse(n.GetText(name))
	if err != nil {
		var zero T
		return zero
	}
	return v
}

// Set writes v to the child element name through a codec.
func Set[T any](n *Node, name string, codec Codec[T], v T) {
	n.SetText(name, codec.Format(v))
}
