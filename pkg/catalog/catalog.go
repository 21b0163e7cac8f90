// Copyright © 2018 One Concern

package catalog

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oneconcern/domx/pkg/catalog/status"
	domxerrors "github.com/oneconcern/domx/pkg/errors"
	"github.com/oneconcern/domx/pkg/storage"
	storagestatus "github.com/oneconcern/domx/pkg/storage/status"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// MaxPendingErrors is the number of error messages a catalog keeps.
	MaxPendingErrors = 10

	// ObjectSuffix is appended to a key to name the file of an object.
	ObjectSuffix = ".xml"
)

// Object is what a catalog stores. Every xmlobject facet is an Object.
type Object interface {
	WriteXML(io.Writer) error
	ReadXML(io.Reader) error
}

// Info describes a stored object.
type Info struct {
	Key      string
	Size     int64
	Modified time.Time
}

// Catalog is a directory holding one file per object.
//
// A closed catalog looks empty: reads find nothing, removals succeed, and
// writes fail with status.ErrClosed.
type Catalog struct {
	root   *Root
	name   string
	dir    string
	store  storage.Store
	logger *zap.Logger
	errs   *domxerrors.Queue

	mu     sync.RWMutex
	isOpen bool
}

func newCatalog(r *Root, name, dir string, store storage.Store) *Catalog {
	return &Catalog{
		root:   r,
		name:   name,
		dir:    dir,
		store:  store,
		logger: r.logger.With(zap.String("catalog", name)),
		errs:   domxerrors.NewQueue(MaxPendingErrors),
		isOpen: true,
	}
}

// Name is the slash separated name of the catalog.
func (c *Catalog) Name() string {
	return c.name
}

// DotName is the name of the catalog, with dots as separators.
func (c *Catalog) DotName() string {
	return dotName(c.name)
}

// Path is the directory of the catalog.
func (c *Catalog) Path() string {
	return c.dir
}

func (c *Catalog) String() string {
	return c.name + "@" + c.dir
}

// IsOpen tells if the catalog was opened and not closed since.
func (c *Catalog) IsOpen() bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isOpen
}

// Close the catalog. Pending errors are kept.
func (c *Catalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = false
	return nil
}

// fail logs and queues err, then returns it.
func (c *Catalog) fail(op string, err error) error {
	c.logger.Error("catalog "+op+" failed", zap.Error(err))
	c.errs.Push(err)
	return err
}

func fileOf(key string) string {
	return key + ObjectSuffix
}

// keyOf yields the key of an object file name.
func keyOf(file string) (string, bool) {
	if len(file) <= len(ObjectSuffix) || !strings.HasSuffix(file, ObjectSuffix) {
		return "", false
	}
	return strings.TrimSuffix(file, ObjectSuffix), true
}

// Insert stores obj under key, replacing any former object.
//
// The object is written to a temporary file first, then renamed in place.
func (c *Catalog) Insert(ctx context.Context, key string, obj Object) error {
	if !c.IsOpen() {
		return status.ErrClosed
	}
	if key == "" {
		return c.fail("insert", status.ErrEmptyKey)
	}
	var buf bytes.Buffer
	if err := obj.WriteXML(&buf); err != nil {
		return c.fail("insert", errors.Wrapf(err, "serializing %q", key))
	}
	if err := c.store.Put(ctx, fileOf(key), &buf); err != nil {
		return c.fail("insert", errors.Wrapf(err, "inserting %q into %s", key, c.name))
	}
	return nil
}

// Remove deletes the object stored under key. Removing a missing object succeeds.
func (c *Catalog) Remove(ctx context.Context, key string) error {
	if !c.IsOpen() {
		return nil
	}
	if key == "" {
		return c.fail("remove", status.ErrEmptyKey)
	}
	if err := c.store.Delete(ctx, fileOf(key)); err != nil {
		return c.fail("remove", errors.Wrapf(err, "removing %q from %s", key, c.name))
	}
	return nil
}

// Move transfers the object stored under key to dest, atomically. The object
// stays in place when the move fails.
func (c *Catalog) Move(ctx context.Context, key string, dest *Catalog) error {
	if !c.IsOpen() {
		return status.ErrClosed
	}
	if key == "" {
		return c.fail("move", status.ErrEmptyKey)
	}
	if !dest.IsOpen() {
		return c.fail("move", status.ErrDestinationClosed)
	}
	mover, ok := c.store.(storage.Mover)
	if !ok {
		return c.fail("move", errors.Wrapf(storagestatus.ErrNotSupported, "move from %s", c.store))
	}
	if err := mover.Move(ctx, fileOf(key), dest.store, fileOf(key)); err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			err = status.ErrNotFound.Wrap(err)
		}
		return c.fail("move", errors.Wrapf(err, "moving %q from %s to %s", key, c.name, dest.name))
	}
	return nil
}

// Load replaces the document of obj with the one stored under key.
// obj is left unchanged on failure. A missing object yields
// status.ErrNotFound and is not queued as an error.
func (c *Catalog) Load(ctx context.Context, key string, obj Object) error {
	if !c.IsOpen() {
		return status.ErrClosed
	}
	if key == "" {
		return c.fail("load", status.ErrEmptyKey)
	}
	rdr, err := c.store.Get(ctx, fileOf(key))
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotExists) {
			return status.ErrNotFound.Wrap(err)
		}
		return c.fail("load", errors.Wrapf(err, "loading %q from %s", key, c.name))
	}
	defer rdr.Close()

	b, err := io.ReadAll(rdr)
	if err != nil {
		return c.fail("load", errors.Wrapf(err, "reading %q from %s", key, c.name))
	}
	if err := obj.ReadXML(bytes.NewReader(b)); err != nil {
		return c.fail("load", errors.Wrapf(err, "parsing %q from %s", key, c.name))
	}
	return nil
}

// Keys returns the sorted keys of the objects currently stored.
func (c *Catalog) Keys(ctx context.Context) ([]string, error) {
	if !c.IsOpen() {
		return nil, status.ErrClosed
	}
	files, err := c.store.Keys(ctx)
	if err != nil {
		return nil, c.fail("keys", errors.Wrapf(err, "listing %s", c.name))
	}
	keys := make([]string, 0, len(files))
	for _, file := range files {
		if key, ok := keyOf(file); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Exists tells if an object is stored under key.
func (c *Catalog) Exists(ctx context.Context, key string) bool {
	if !c.IsOpen() || key == "" {
		return false
	}
	has, err := c.store.Has(ctx, fileOf(key))
	if err != nil {
		_ = c.fail("exists", err)
		return false
	}
	return has
}

// Entries describes the objects currently stored, sorted by key.
//
// Objects removed while listing are skipped.
func (c *Catalog) Entries(ctx context.Context) ([]Info, error) {
	keys, err := c.Keys(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]Info, 0, len(keys))
	for _, key := range keys {
		fi, err := c.store.Stat(ctx, fileOf(key))
		if err != nil {
			if errors.Is(err, storagestatus.ErrNotExists) {
				continue
			}
			return nil, c.fail("entries", err)
		}
		infos = append(infos, Info{Key: key, Size: fi.Size, Modified: fi.ModTime})
	}
	return infos, nil
}

// Register records this catalog in the system catalog, under its dot name.
func (c *Catalog) Register(ctx context.Context) error {
	if !c.IsOpen() {
		return status.ErrClosed
	}
	sys, err := c.root.systemCatalog()
	if err != nil {
		return c.fail("register", err)
	}
	e := NewEntry()
	e.Name.Set(c.name)
	e.Path.Set(c.dir)
	if err := sys.Insert(ctx, c.DotName(), e); err != nil {
		return c.fail("register", err)
	}
	c.logger.Debug("catalog registered", zap.String("path", c.dir))
	return nil
}

// ErrorsPending is the number of queued error messages.
func (c *Catalog) ErrorsPending() int {
	return c.errs.Len()
}

// Errors returns the queued error messages, oldest first.
func (c *Catalog) Errors() []string {
	return c.errs.Messages()
}

// LastError is the most recent queued error message, or "".
func (c *Catalog) LastError() string {
	return c.errs.Last()
}

// ClearErrors empties the error queue.
func (c *Catalog) ClearErrors() {
	c.errs.Clear()
}
