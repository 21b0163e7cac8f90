// Copyright © 2018 One Concern

package xmlobject

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// RootElement is the document element of every xml object.
const RootElement = "xmlobject"

var logger = zap.NewNop()

// SetLogger sets the logger used to report parse and storage failures.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Facet is implemented by Interface and by every type embedding it.
type Facet interface {
	base() *Interface
}

// Interface is the base of every xml object. Its zero value is an empty
// object named "xmlobject".
type Interface struct {
	nodes []*Node
	impl  *object
}

// object holds the document shared by an owning interface and its facets.
type object struct {
	doc    *etree.Document
	owner  *Interface
	facets map[string]Facet
}

var _ Facet = &Interface{}

func (x *Interface) base() *Interface { return x }

// New returns an empty object.
func New() *Interface {
	return &Interface{}
}

func (x *Interface) ensureRoot() {
	if len(x.nodes) == 0 {
		x.nodes = append(x.nodes, &Node{owner: x, name: RootElement})
	}
}

// NewNode appends a level named name to this interface's hierarchy. It is
// meant to be called once per type, from that type's constructor.
//
// When the level's element has to be created, its members are set to their
// defaults and then construct, if not nil, is called to populate the rest.
func (x *Interface) NewNode(name string, construct func()) *Node {
	x.ensureRoot()
	n := &Node{owner: x, name: name, construct: construct}
	x.nodes = append(x.nodes, n)
	return n
}

func (x *Interface) names() []string {
	x.ensureRoot()
	names := make([]string, 0, len(x.nodes))
	for _, n := range x.nodes {
		names = append(names, n.name)
	}
	return names
}

// InterfaceName is the dot-joined list of the levels of this interface.
func (x *Interface) InterfaceName() string {
	return strings.Join(x.names(), ".")
}

func (x *Interface) ensureImpl() {
	if x.impl == nil {
		x.impl = &object{owner: x, facets: make(map[string]Facet)}
	}
}

// ensureDocument creates a default document if there is none yet.
func (x *Interface) ensureDocument() {
	x.ensureImpl()
	if x.impl.doc == nil {
		x.impl.doc = etree.NewDocument()
		x.impl.updateInterfaces()
	}
}

func (o *object) replaceDocument(doc *etree.Document) {
	o.doc = doc
	o.updateInterfaces()
}

// updateInterfaces binds the owner and every facet to the current document.
func (o *object) updateInterfaces() {
	if o.doc == nil {
		return
	}
	o.owner.setupNodes()
	for _, f := range o.facets {
		f.base().setupNodes()
	}
}

// setupNodes walks the levels of this interface down the document, creating
// and constructing the ones that are missing.
func (x *Interface) setupNodes() {
	x.ensureRoot()
	parent := &x.impl.doc.Element
	for _, n := range x.nodes {
		n.elem = parent.SelectElement(n.name)
		if n.elem == nil {
			n.elem = parent.CreateElement(n.name)
			n.constructMembers()
		}
		parent = n.elem
	}
}

// Reset rebuilds the document from scratch with default values. Facets
// sharing the document remain valid.
func (x *Interface) Reset() {
	if x.impl != nil && x.impl.doc != nil {
		x.impl.replaceDocument(etree.NewDocument())
	}
}

// Assign copies the whole document of other into this object, including the
// levels this interface does not know about. Assigning an object to one
// which shares its document does nothing.
func (x *Interface) Assign(other Facet) {
	o := other.base()
	if o.impl != nil && o.impl == x.impl {
		return
	}
	o.ensureDocument()
	doc := etree.NewDocument()
	doc.SetRoot(o.impl.doc.Root().Copy())
	x.ensureImpl()
	x.impl.replaceDocument(doc)
}

// Assume is Assign, used to extend a base instance into a derived type:
// levels missing from the copied document are created with their defaults.
func (x *Interface) Assume(other Facet) {
	x.Assign(other)
}

// WriteXML writes the document to w, creating the default document first if
// needed.
func (x *Interface) WriteXML(w io.Writer) error {
	x.ensureDocument()
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	out.SetRoot(x.nodes[0].elem.Copy())
	out.Indent(2)
	if _, err := out.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing xml object")
	}
	return nil
}

// String returns the document as XML text, or "" if it cannot be written.
func (x *Interface) String() string {
	var buf bytes.Buffer
	if err := x.WriteXML(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// FromXML replaces the document with the one held in text. If the text
// cannot be parsed the current document is left unchanged.
func (x *Interface) FromXML(text string) error {
	return x.readXML("fromXML", strings.NewReader(text))
}

// ReadXML replaces the document with the one read from r.
func (x *Interface) ReadXML(r io.Reader) error {
	return x.readXML("reader", r)
}

func (x *Interface) readXML(systemID string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrapf(err, "reading %s", systemID)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		err = newParseError(systemID, data, err)
		logger.Error("an error occurred during parsing", zap.Error(err))
		return err
	}
	root := doc.Root()
	if root == nil {
		return ErrNoDocument
	}
	if root.Tag != RootElement {
		return ErrRootElement.Wrap(errors.Errorf("found <%s>", root.Tag))
	}
	PruneWhitespace(&doc.Element)
	x.ensureImpl()
	x.impl.replaceDocument(doc)
	return nil
}

// Load replaces the document with the one stored in the file at path.
// A nil fs means the OS filesystem.
func (x *Interface) Load(fs afero.Fs, path string) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.Open(path)
	if err != nil {
		return errors.Wrapf(err, "loading %s", path)
	}
	defer f.Close()
	return x.readXML(path, f)
}

// Store writes the document to the file at path.
// A nil fs means the OS filesystem.
func (x *Interface) Store(fs afero.Fs, path string) error {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		err = errors.Wrapf(err, "storing %s", path)
		logger.Error("store failed", zap.Error(err))
		return err
	}
	if err = x.WriteXML(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Implements is true if this object is known to implement the interface of
// f: either f's levels are a prefix of this interface's levels, or the
// document holds f's element path.
func (x *Interface) Implements(f Facet) bool {
	match := f.base().names()
	mine := x.names()
	if len(match) <= len(mine) {
		prefix := true
		for i := range match {
			if match[i] != mine[i] {
				prefix = false
				break
			}
		}
		if prefix {
			return true
		}
	}

	if x.impl == nil || x.impl.doc == nil {
		return false
	}
	parent := &x.impl.doc.Element
	for _, name := range match {
		if parent = parent.SelectElement(name); parent == nil {
			return false
		}
	}
	return true
}

// Lookup finds an interface on this object by name: the object itself, the
// interface owning the document, or an attached facet. It returns nil when
// nothing matches.
func (x *Interface) Lookup(name string) Facet {
	if name == x.InterfaceName() {
		return x
	}
	if x.impl == nil {
		return nil
	}
	if x.impl.owner.InterfaceName() == name {
		return x.impl.owner
	}
	if f, ok := x.impl.facets[name]; ok {
		return f
	}
	return nil
}

// addInterface makes f share this object's document.
func (x *Interface) addInterface(f Facet) {
	x.ensureImpl()
	fb := f.base()
	fb.impl = x.impl
	x.impl.facets[fb.InterfaceName()] = f
	x.impl.updateInterfaces()
}

// Attach returns facet bound to the document of x. An existing facet of the
// same interface name and type is returned instead when there is one. If x
// does not implement the facet and create is false, Attach returns false;
// otherwise the facet's levels are added to the document.
func Attach[T Facet](x Facet, facet T, create bool) (T, bool) {
	var zero T
	xb := x.base()
	name := facet.base().InterfaceName()

	if t, ok := x.(T); ok && xb.InterfaceName() == name {
		return t, true
	}
	if existing := xb.Lookup(name); existing != nil {
		if t, ok := existing.(T); ok {
			return t, true
		}
	}
	if !xb.Implements(facet) && !create {
		return zero, false
	}
	xb.addInterface(facet)
	return facet, true
}
