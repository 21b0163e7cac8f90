package xmlobject

import (
	"github.com/oneconcern/domx/pkg/xmltime"
)

// Member is a typed leaf element of a node. Its element is created with the
// default value whenever its node's element is created.
type Member[T any] struct {
	node  *Node
	name  string
	def   T
	codec Codec[T]
}

// NewMember declares a member named name on node n.
func NewMember[T any](n *Node, name string, codec Codec[T], def T) *Member[T] {
	m := &Member[T]{node: n, name: name, def: def, codec: codec}
	n.addMember(m)
	return m
}

// Name of the member's element.
func (m *Member[T]) Name() string {
	return m.name
}

// Default value of the member.
func (m *Member[T]) Default() T {
	return m.def
}

// Get the current value.
func (m *Member[T]) Get() T {
	return Get(m.node, m.name, m.codec)
}

// Set the current value.
func (m *Member[T]) Set(v T) {
	Set(m.node, m.name, m.codec, v)
}

func (m *Member[T]) construct() {
	m.Set(m.def)
}

// String declares a text member.
func String(n *Node, name, def string) *Member[string] {
	return NewMember[string](n, name, StringCodec{}, def)
}

// Int declares an integer member.
func Int(n *Node, name string, def int) *Member[int] {
	return NewMember[int](n, name, IntCodec{}, def)
}

// Int64 declares a 64 bit integer member.
func Int64(n *Node, name string, def int64) *Member[int64] {
	return NewMember[int64](n, name, Int64Codec{}, def)
}

// Uint64 declares an unsigned integer member.
func Uint64(n *Node, name string, def uint64) *Member[uint64] {
	return NewMember[uint64](n, name, Uint64Codec{}, def)
}

// Float declares a floating point member.
func Float(n *Node, name string, def float64) *Member[float64] {
	return NewMember[float64](n, name, FloatCodec{}, def)
}

// Bool declares a boolean member.
func Bool(n *Node, name string, def bool) *Member[bool] {
	return NewMember[bool](n, name, BoolCodec{}, def)
}

// Time declares a time member. Its default is the epoch.
func Time(n *Node, name string) *Member[xmltime.Time] {
	return NewMember[xmltime.Time](n, name, TimeCodec{}, xmltime.Time{})
}

// Enum declares an enumerated member stored by name.
func Enum[E comparable](n *Node, name string, names map[E]string, def E) *Member[E] {
	return NewMember[E](n, name, NewEnumCodec(names), def)
}
