package xmlobject

import (
	"strings"

	"github.com/beevik/etree"
)

// FindElement returns the first immediate child element of e named path,
// or nil. Only immediate children are supported so far.
func FindElement(e *etree.Element, path string) *etree.Element {
	if e == nil {
		return nil
	}
	return e.SelectElement(path)
}

// FindNextElement returns the next sibling element of sib named path, or nil.
func FindNextElement(sib *etree.Element, path string) *etree.Element {
	if sib == nil || sib.Parent() == nil {
		return nil
	}
	siblings := sib.Parent().Child
	for i := sib.Index() + 1; i < len(siblings); i++ {
		if e, ok := siblings[i].(*etree.Element); ok && e.Tag == path {
			return e
		}
	}
	return nil
}

// GetAttribute returns the value of the attribute name and whether it exists.
func GetAttribute(e *etree.Element, name string) (string, bool) {
	if e == nil {
		return "", false
	}
	a := e.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetAttribute sets or replaces the attribute name.
func SetAttribute(e *etree.Element, name, value string) {
	if e != nil {
		e.CreateAttr(name, value)
	}
}

// AppendTextElement appends a child element tag holding data.
func AppendTextElement(e *etree.Element, tag, data string) *etree.Element {
	child := e.CreateElement(tag)
	child.SetText(data)
	return child
}

// TextOf returns the text held by e, or "" when e is nil.
func TextOf(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return e.Text()
}

// PruneWhitespace removes text nodes which are empty or only whitespace, and
// trims leading and trailing whitespace from all other text nodes, below e.
func PruneWhitespace(e *etree.Element) {
	for i := len(e.Child) - 1; i >= 0; i-- {
		switch t := e.Child[i].(type) {
		case *etree.CharData:
			trimmed := strings.TrimSpace(t.Data)
			if trimmed == "" {
				e.RemoveChildAt(i)
				continue
			}
			t.Data = trimmed
		case *etree.Element:
			PruneWhitespace(t)
		}
	}
}
