// Copyright © 2018 One Concern

// Package reference points at objects stored in catalogs, the way a
// relation points at a row: the catalog name and the object key together
// form a global key.
package reference

import (
	"context"

	"github.com/oneconcern/domx/pkg/catalog"
	"github.com/oneconcern/domx/pkg/xmlobject"
	"github.com/oneconcern/domx/pkg/xmltime"
	"go.uber.org/zap"
)

// Element names of references.
const (
	ObjectElement = "xmlobjectreference"
	FileElement   = "xmlfilereference"
)

var logger = zap.NewNop()

// SetLogger sets the logger reporting unexpected reference targets.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// ObjectReference points at an object of a catalog.
type ObjectReference struct {
	xmlobject.Interface
	refNode   *xmlobject.Node
	timestamp *xmlobject.Member[xmltime.Time]

	// Catalog is the name of the catalog of the target.
	Catalog *xmlobject.Member[string]
	// Name is the key of the target.
	Name *xmlobject.Member[string]
}

// NewObjectReference returns a reference pointing nowhere.
func NewObjectReference() *ObjectReference {
	r := &ObjectReference{}
	r.initObjectReference()
	return r
}

func (r *ObjectReference) initObjectReference() {
	r.refNode = r.NewNode(ObjectElement, nil)
	r.timestamp = xmlobject.Time(r.refNode, "timestamp")
	r.Catalog = xmlobject.String(r.refNode, "catalog", "")
	r.Name = xmlobject.String(r.refNode, "name", "")
}

// Target points the reference at the object name of cat, as of now.
func (r *ObjectReference) Target(cat *catalog.Catalog, name string) {
	r.Catalog.Set(cat.Name())
	r.Name.Set(name)
	r.timestamp.Set(xmltime.Now())
}

// Timestamp is when the reference was targeted. Its resolution is one
// second, which is not enough to tell for sure if the target changed since.
func (r *ObjectReference) Timestamp() xmltime.Time {
	return r.timestamp.Get()
}

// Load resolves the catalog of the target by name, then loads the target into obj.
func (r *ObjectReference) Load(ctx context.Context, root *catalog.Root, obj catalog.Object) error {
	cat, err := root.Resolve(ctx, r.Catalog.Get())
	if err != nil {
		return err
	}
	return cat.Load(ctx, r.Name.Get(), obj)
}

// TimeKey orders references by timestamp in a queue catalog, unique across
// targets referenced at the same time.
func (r *ObjectReference) TimeKey() string {
	return r.Timestamp().Key() + "-" + r.Name.Get()
}
