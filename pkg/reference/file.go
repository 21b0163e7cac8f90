package reference

import (
	"context"

	"github.com/oneconcern/domx/pkg/catalog"
	"github.com/oneconcern/domx/pkg/errors"
	"github.com/oneconcern/domx/pkg/fileobject"
	"github.com/oneconcern/domx/pkg/xmlobject"
	"github.com/oneconcern/domx/pkg/xmltime"
	"go.uber.org/zap"
)

// ErrNotFile indicates that the target of a file reference describes no file
var ErrNotFile = errors.New("referenced object is neither a file object nor a file reference")

// FileReference points at a file object, keeping a few of its fields to
// tell later whether the file changed.
type FileReference struct {
	ObjectReference
	fileNode *xmlobject.Node

	Size     *xmlobject.Member[uint64]
	Modified *xmlobject.Member[xmltime.Time]
	MD5      *xmlobject.Member[string]
}

// NewFileReference returns a file reference pointing nowhere.
func NewFileReference() *FileReference {
	r := &FileReference{}
	r.initObjectReference()
	r.fileNode = r.NewNode(FileElement, nil)
	r.Size = xmlobject.Uint64(r.fileNode, "size", 0)
	r.Modified = xmlobject.Time(r.fileNode, "modified")
	r.MD5 = xmlobject.String(r.fileNode, "md5", "")
	return r
}

// Target points the reference at the object name of cat, then copies the
// size, modification time and checksum of that object. The target may be a
// file object or another file reference.
func (r *FileReference) Target(ctx context.Context, root *catalog.Root, cat *catalog.Catalog, name string) error {
	r.ObjectReference.Target(cat, name)

	obj := xmlobject.New()
	if err := r.Load(ctx, root, obj); err != nil {
		return err
	}
	xfo, isFile := xmlobject.Attach(obj, fileobject.New(), false)
	ref, isRef := xmlobject.Attach(obj, NewFileReference(), false)

	switch {
	case isFile && isRef:
		logger.Error("referenced object has both file object and file reference interfaces",
			zap.String("catalog", cat.Name()), zap.String("name", name))
		fallthrough
	case isFile:
		r.MD5.Set(xfo.MD5.Get())
		r.Modified.Set(xfo.Modified.Get())
		r.Size.Set(xfo.Size.Get())
	case isRef:
		r.MD5.Set(ref.MD5.Get())
		r.Modified.Set(ref.Modified.Get())
		r.Size.Set(ref.Size.Get())
	default:
		logger.Error("referenced object is neither a file object nor a reference",
			zap.String("catalog", cat.Name()), zap.String("name", name))
		return ErrNotFile
	}
	return nil
}

// FileHasChanged tells if the referenced file differs from the copy kept by
// this reference: its size or modification time differ, or both checksums
// are known and differ. A target which cannot be loaded did not change.
func (r *FileReference) FileHasChanged(ctx context.Context, root *catalog.Root) bool {
	xfo := fileobject.New()
	if err := r.Load(ctx, root, xfo); err != nil {
		return false
	}

	changed := xfo.Modified.Get() != r.Modified.Get() || xfo.Size.Get() != r.Size.Get()
	if xfo.MD5.Get() != "" && r.MD5.Get() != "" {
		changed = changed || xfo.MD5.Get() != r.MD5.Get()
	}
	return changed
}
