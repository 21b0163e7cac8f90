// Copyright © 2018 One Concern

package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/oneconcern/domx/pkg/catalog/status"
	"github.com/oneconcern/domx/pkg/metrics"
	"github.com/oneconcern/domx/pkg/storage"
	"github.com/oneconcern/domx/pkg/storage/localfs"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

const (
	// DefaultDir is the directory holding catalogs opened by name.
	DefaultDir = "/var/xmlobjects"

	// DefaultSystemDir is the directory holding the system catalog.
	DefaultSystemDir = "/var/tmp"

	// SystemName is the name of the system catalog.
	SystemName = "system"

	// Suffix is appended to the name of a catalog to make its directory.
	Suffix = ".catalog"
)

// Option configures a Root.
type Option func(*Root)

// WithFs sets the file system holding catalogs. Defaults to the OS file system.
func WithFs(fs afero.Fs) Option {
	return func(r *Root) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// WithDir sets the root directory for hierarchical catalogs.
func WithDir(dir string) Option {
	return func(r *Root) {
		if dir != "" {
			r.dir = dir
		}
	}
}

// WithSystemDir sets the directory of the system catalog.
func WithSystemDir(dir string) Option {
	return func(r *Root) {
		if dir != "" {
			r.systemDir = dir
		}
	}
}

// WithLogger sets the logger. Catalogs log under the "catalog" name.
func WithLogger(l *zap.Logger) Option {
	return func(r *Root) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracer traces every storage operation.
func WithTracer(tr opentracing.Tracer) Option {
	return func(r *Root) {
		r.tracer = tr
	}
}

// WithMetrics counts every storage operation.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Root) {
		r.metrics = m
	}
}

// Root opens catalogs, either by hierarchical name below a root directory or
// through the registrations of the system catalog.
type Root struct {
	fs        afero.Fs
	dir       string
	systemDir string
	logger    *zap.Logger
	tracer    opentracing.Tracer
	metrics   *metrics.Metrics

	mu     sync.Mutex
	system *Catalog
}

// NewRoot builds a Root.
func NewRoot(opts ...Option) *Root {
	r := &Root{
		fs:        afero.NewOsFs(),
		dir:       DefaultDir,
		systemDir: DefaultSystemDir,
		logger:    zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	r.logger = r.logger.Named("catalog")
	return r
}

// Dir is the root directory of hierarchical catalogs.
func (r *Root) Dir() string {
	return r.dir
}

// Fs is the file system holding catalogs.
func (r *Root) Fs() afero.Fs {
	return r.fs
}

func splitName(name string) ([]string, error) {
	var parts []string
	for _, part := range strings.Split(name, "/") {
		switch part {
		case "":
			continue
		case ".", "..":
			return nil, errors.Wrapf(status.ErrInvalidName, "%q", name)
		}
		parts = append(parts, part)
	}
	if len(parts) == 0 {
		return nil, errors.Wrapf(status.ErrInvalidName, "%q", name)
	}
	return parts, nil
}

func catalogDir(parent string, parts []string) string {
	elems := make([]string, 0, len(parts)+1)
	elems = append(elems, parent)
	for _, part := range parts {
		elems = append(elems, part+Suffix)
	}
	return filepath.Join(elems...)
}

// Open opens the catalog at path, a slash separated hierarchical name below
// the root directory: "a/b" lives in "<root>/a.catalog/b.catalog".
// Missing directories are created.
func (r *Root) Open(ctx context.Context, path string) (*Catalog, error) {
	parts, err := splitName(path)
	if err != nil {
		return nil, err
	}
	return r.open(strings.Join(parts, "/"), catalogDir(r.dir, parts))
}

// OpenChild opens the catalog at path below an open catalog.
func (r *Root) OpenChild(ctx context.Context, parent *Catalog, path string) (*Catalog, error) {
	if parent == nil || !parent.IsOpen() {
		return nil, status.ErrClosed
	}
	parts, err := splitName(path)
	if err != nil {
		return nil, err
	}
	return r.open(parent.Name()+"/"+strings.Join(parts, "/"), catalogDir(parent.Path(), parts))
}

// OpenAt opens the catalog name in "<dir>/<name>.catalog". With systemWide,
// the catalog is registered in the system catalog, replacing any former
// registration under that name.
func (r *Root) OpenAt(ctx context.Context, name, dir string, systemWide bool) (*Catalog, error) {
	if name == "" || strings.Contains(name, "/") || name == "." || name == ".." {
		return nil, errors.Wrapf(status.ErrInvalidName, "%q", name)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", dir)
	}
	c, err := r.open(name, filepath.Join(abs, name+Suffix))
	if err != nil {
		return nil, err
	}
	if systemWide {
		if err := c.Register(ctx); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Lookup opens a catalog registered in the system catalog. Its directory is
// created again when it is missing.
func (r *Root) Lookup(ctx context.Context, name string) (*Catalog, error) {
	sys, err := r.systemCatalog()
	if err != nil {
		return nil, err
	}
	entry := NewEntry()
	if err := sys.Load(ctx, dotName(name), entry); err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return nil, errors.Wrapf(status.ErrNotRegistered, "%q", name)
		}
		return nil, err
	}
	return r.open(entry.Name.Get(), entry.Path.Get())
}

// Resolve opens a catalog by name, trying the system catalog first, then
// the hierarchy below the root directory.
func (r *Root) Resolve(ctx context.Context, name string) (*Catalog, error) {
	c, err := r.Lookup(ctx, name)
	if err == nil {
		return c, nil
	}
	r.logger.Debug("catalog not found in system catalog", zap.String("name", name), zap.Error(err))
	return r.Open(ctx, name)
}

// System opens the system catalog.
func (r *Root) System(ctx context.Context) (*Catalog, error) {
	return r.systemCatalog()
}

func (r *Root) systemCatalog() (*Catalog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.system != nil && r.system.IsOpen() {
		return r.system, nil
	}
	c, err := r.open(SystemName, filepath.Join(r.systemDir, SystemName+Suffix))
	if err != nil {
		return nil, errors.Wrap(err, "opening system catalog")
	}
	r.system = c
	return c, nil
}

// open ensures the directory of a catalog, then binds a store to it.
func (r *Root) open(name, dir string) (*Catalog, error) {
	fi, err := r.fs.Stat(dir)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return nil, errors.Wrapf(status.ErrNotDirectory, "%s", dir)
		}
	case os.IsNotExist(err):
		r.logger.Debug("creating catalog directory", zap.String("dir", dir))
		if err := r.fs.MkdirAll(dir, 0755); err != nil {
			err = errors.Wrapf(err, "creating catalog directory %s", dir)
			r.logger.Error("cannot open catalog", zap.String("catalog", name), zap.Error(err))
			return nil, err
		}
	default:
		return nil, errors.Wrapf(err, "opening catalog %s", dir)
	}

	var store storage.Store = localfs.New(r.fs, dir)
	if r.tracer != nil || r.metrics != nil {
		store = storage.Instrument(r.tracer, r.logger, r.metrics, store)
	}
	return newCatalog(r, name, dir, store), nil
}

func dotName(name string) string {
	return strings.ReplaceAll(strings.Trim(name, "/"), "/", ".")
}
