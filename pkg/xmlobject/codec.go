package xmlobject

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/oneconcern/domx/pkg/xmltime"
)

// Codec converts member values to and from element text.
type Codec[T any] interface {
	Format(T) string
	Parse(string) (T, error)
}

// StringCodec stores text as is.
type StringCodec struct{}

func (StringCodec) Format(v string) string          { return v }
func (StringCodec) Parse(s string) (string, error) { return s, nil }

// IntCodec stores base 10 integers.
type IntCodec struct{}

func (IntCodec) Format(v int) string { return strconv.Itoa(v) }
func (IntCodec) Parse(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// Int64Codec stores base 10 64 bit integers.
type Int64Codec struct{}

func (Int64Codec) Format(v int64) string { return strconv.FormatInt(v, 10) }
func (Int64Codec) Parse(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}

// Uint64Codec stores base 10 unsigned integers, e.g. sizes.
type Uint64Codec struct{}

func (Uint64Codec) Format(v uint64) string { return strconv.FormatUint(v, 10) }
func (Uint64Codec) Parse(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 10, 64)
}

// FloatCodec stores floats in their shortest exact form.
type FloatCodec struct{}

func (FloatCodec) Format(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
func (FloatCodec) Parse(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// BoolCodec stores "true" or "false".
type BoolCodec struct{}

func (BoolCodec) Format(v bool) string { return strconv.FormatBool(v) }
func (BoolCodec) Parse(s string) (bool, error) {
	return strconv.ParseBool(strings.TrimSpace(s))
}

// TimeCodec stores times in xmltime.Layout.
type TimeCodec struct{}

func (TimeCodec) Format(v xmltime.Time) string { return v.String() }
func (TimeCodec) Parse(s string) (xmltime.Time, error) {
	return xmltime.Parse(s)
}

// EnumCodec stores enumerated values by name.
type EnumCodec[E comparable] struct {
	names map[E]string
}

// NewEnumCodec builds a codec from the names of each enumerated value.
func NewEnumCodec[E comparable](names map[E]string) EnumCodec[E] {
	return EnumCodec[E]{names: names}
}

func (c EnumCodec[E]) Format(v E) string {
	if s, ok := c.names[v]; ok {
		return s
	}
	return fmt.Sprint(v)
}

func (c EnumCodec[E]) Parse(s string) (E, error) {
	s = strings.TrimSpace(s)
	for v, name := range c.names {
		if name == s {
			return v, nil
		}
	}
	var zero E
	return zero, fmt.Errorf("%q is not one of %s", s, strings.Join(c.Names(), ", "))
}

// Names lists the names of the enumeration, sorted.
func (c EnumCodec[E]) Names() []string {
	names := make([]string, 0, len(c.names))
	for _, name := range c.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
