package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/oneconcern/domx/pkg/catalog/status"
	"github.com/oneconcern/domx/pkg/storage/localfs"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// EventOp tells what happened to an object.
type EventOp int

// Changes reported by Watch.
const (
	Inserted EventOp = iota + 1
	Removed
)

func (op EventOp) String() string {
	switch op {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is a change of the objects of a catalog.
type Event struct {
	Op  EventOp
	Key string
}

// realDir yields the OS directory of a catalog, when it has one.
func (c *Catalog) realDir() (string, error) {
	switch fs := localfs.Fs(c.store).(type) {
	case *afero.OsFs:
		return c.dir, nil
	case *afero.BasePathFs:
		return fs.RealPath(c.dir)
	default:
		return "", errors.Wrapf(status.ErrWatch, "%s is not on the OS file system", c.name)
	}
}

// Watch calls fn for every object inserted into or removed from the catalog,
// until ctx is done. Replacing an object is reported as an insertion.
//
// Only catalogs on the OS file system can be watched.
func (c *Catalog) Watch(ctx context.Context, fn func(Event)) error {
	if !c.IsOpen() {
		return status.ErrClosed
	}
	dir, err := c.realDir()
	if err != nil {
		return c.fail("watch", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return c.fail("watch", errors.Wrap(err, "creating watcher"))
	}
	defer func() {
		_ = w.Close()
	}()
	if err := w.Add(dir); err != nil {
		return c.fail("watch", errors.Wrapf(err, "watching %s", dir))
	}
	c.logger.Debug("watching catalog", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			key, isObject := keyOf(filepath.Base(ev.Name))
			if !isObject {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create):
				fn(Event{Op: Inserted, Key: key})
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				fn(Event{Op: Removed, Key: key})
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			_ = c.fail("watch", err)
		}
	}
}
