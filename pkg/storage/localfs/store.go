// Copyright © 2018 One Concern

package localfs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oneconcern/domx/pkg/storage"
	"github.com/oneconcern/domx/pkg/storage/status"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// TempSuffix is appended to the key of an object while it is being written,
// followed by digits unique to each write.
const TempSuffix = "-temp"

/* thread-safe local storage implementation.
 * atomic Put()s rely on the atomicity of afero.Fs.Rename():
 * every Put() writes its own staging file next to the final name, then
 * Rename()s it into place. Concurrent Put()s to the same key never share a
 * staging file: the last rename wins.
 */

// New creates a store holding the files of one directory of a file system.
//
// The directory must exist. A nil fs stands for the OS file system.
func New(fs afero.Fs, dir string) storage.Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &localFS{
		fs:  fs,
		dir: filepath.Clean(dir),
	}
}

type localFS struct {
	fs  afero.Fs
	dir string
}

// Fs yields the file system under a store built by New, or nil.
func Fs(s storage.Store) afero.Fs {
	if l, ok := storage.Unwrap(s).(*localFS); ok {
		return l.fs
	}
	return nil
}

func validKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return errors.Wrapf(status.ErrInvalidKey, "key %q", key)
	}
	return nil
}

func (l *localFS) path(key string) string {
	return filepath.Join(l.dir, key)
}

func (l *localFS) Has(ctx context.Context, key string) (bool, error) {
	if err := validKey(key); err != nil {
		return false, err
	}
	fi, err := l.fs.Stat(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return !fi.IsDir(), nil
}

func (l *localFS) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	has, err := l.Has(ctx, key)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, errors.Wrapf(status.ErrNotExists, "key %q", key)
	}
	return l.fs.Open(l.path(key))
}

func (l *localFS) Stat(ctx context.Context, key string) (storage.Info, error) {
	if err := validKey(key); err != nil {
		return storage.Info{}, err
	}
	fi, err := l.fs.Stat(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return storage.Info{}, errors.Wrapf(status.ErrNotExists, "key %q", key)
		}
		return storage.Info{}, err
	}
	if fi.IsDir() {
		return storage.Info{}, errors.Wrapf(status.ErrNotExists, "key %q is a directory", key)
	}
	return storage.Info{Key: key, Size: fi.Size(), ModTime: fi.ModTime()}, nil
}

func (l *localFS) Put(ctx context.Context, key string, source io.Reader) error {
	if err := validKey(key); err != nil {
		return err
	}
	target, err := afero.TempFile(l.fs, l.dir, key+TempSuffix+"*")
	if err != nil {
		return errors.Wrapf(err, "create record for %q", key)
	}
	staged := target.Name()
	if _, err = io.Copy(target, source); err != nil {
		_ = target.Close()
		_ = l.fs.Remove(staged)
		return errors.Wrapf(err, "write record for %q", key)
	}
	if err = target.Close(); err != nil {
		_ = l.fs.Remove(staged)
		return errors.Wrapf(err, "close record for %q", key)
	}
	if err = l.fs.Chmod(staged, 0644); err != nil {
		_ = l.fs.Remove(staged)
		return errors.Wrapf(err, "chmod record for %q", key)
	}
	if err = l.fs.Rename(staged, l.path(key)); err != nil {
		_ = l.fs.Remove(staged)
		return errors.Wrapf(err, "rename record for %q", key)
	}
	return nil
}

func (l *localFS) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := l.fs.Remove(l.path(key)); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %q", key)
	}
	return nil
}

// Keys lists the regular files of the directory, skipping staged writes.
func (l *localFS) Keys(ctx context.Context) ([]string, error) {
	infos, err := afero.ReadDir(l.fs, l.dir)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(infos))
	for _, fi := range infos {
		if fi.IsDir() || isStaged(fi.Name()) {
			continue
		}
		res = append(res, fi.Name())
	}
	sort.Strings(res)
	return res, nil
}

// isStaged tells if a file name is a staging file left by Put: a name ending
// with TempSuffix and some digits.
func isStaged(name string) bool {
	i := strings.LastIndex(name, TempSuffix)
	if i < 0 {
		return false
	}
	for _, r := range name[i+len(TempSuffix):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Move renames an object into another store on the same file system.
func (l *localFS) Move(ctx context.Context, key string, dest storage.Store, destKey string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := validKey(destKey); err != nil {
		return err
	}
	target, ok := storage.Unwrap(dest).(*localFS)
	if !ok || target.fs != l.fs {
		return errors.Wrapf(status.ErrCrossStore, "%s to %s", l, dest)
	}
	has, err := l.Has(ctx, key)
	if err != nil {
		return err
	}
	if !has {
		return errors.Wrapf(status.ErrNotExists, "key %q", key)
	}
	if err := l.fs.Rename(l.path(key), target.path(destKey)); err != nil {
		return errors.Wrapf(err, "moving %q to %s", key, target)
	}
	return nil
}

func (l *localFS) String() string {
	const localfs = "localfs"
	dir := l.dir
	if fs, ok := l.fs.(*afero.BasePathFs); ok {
		if pp, err := fs.RealPath(l.dir); err == nil {
			dir = pp
		}
	}
	return localfs + "@" + dir
}
