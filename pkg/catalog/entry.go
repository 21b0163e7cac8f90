package catalog

import "github.com/oneconcern/domx/pkg/xmlobject"

// EntryInterface is the element name of system catalog registrations.
const EntryInterface = "xmlobjectcatalog"

// Entry is the registration of a catalog in the system catalog.
type Entry struct {
	xmlobject.Interface
	node *xmlobject.Node
	Name *xmlobject.Member[string]
	Path *xmlobject.Member[string]
}

// NewEntry returns an empty registration.
func NewEntry() *Entry {
	e := &Entry{}
	e.node = e.NewNode(EntryInterface, nil)
	e.Name = xmlobject.String(e.node, "name", "")
	e.Path = xmlobject.String(e.node, "path", "")
	return e
}
