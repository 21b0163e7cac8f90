// Copyright © 2018 One Concern

// Package fileobject describes files as xml objects: location, size, stat
// times, checksum and an open/closed state for files still being written.
package fileobject

import (
	"crypto/md5"
	"encoding/hex"
	"hash"
	"io"
	"path/filepath"
	"time"

	"github.com/oneconcern/domx/pkg/xmlobject"
	"github.com/oneconcern/domx/pkg/xmltime"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// ElementName is the element of file objects.
const ElementName = "xmlfileobject"

// State tells if a file is still being written.
type State int

// File states.
const (
	Open State = iota
	Closed
)

var stateNames = map[State]string{Open: "open", Closed: "closed"}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// FileObject is the xml object describing one file.
type FileObject struct {
	xmlobject.Interface
	node *xmlobject.Node

	// Name is the base name of the file.
	Name        *xmlobject.Member[string]
	Description *xmlobject.Member[string]
	Directory   *xmlobject.Member[string]
	Size        *xmlobject.Member[uint64]
	// Created is the creation time of the file, when the application knows it.
	Created  *xmlobject.Member[xmltime.Time]
	Modified *xmlobject.Member[xmltime.Time]
	Changed  *xmlobject.Member[xmltime.Time]
	Accessed *xmlobject.Member[xmltime.Time]
	// MD5 is the checksum of the content, as 32 hexadecimal digits.
	MD5   *xmlobject.Member[string]
	State *xmlobject.Member[State]
	// Expires is when the producer of an open file guarantees to have closed it.
	Expires *xmlobject.Member[xmltime.Time]

	fs      afero.Fs
	running hash.Hash
}

// New returns an empty file object, scanning the OS file system.
func New() *FileObject {
	f := &FileObject{fs: afero.NewOsFs()}
	f.node = f.NewNode(ElementName, nil)
	f.Name = xmlobject.String(f.node, "filename", "")
	f.Description = xmlobject.String(f.node, "description", "")
	f.Directory = xmlobject.String(f.node, "directory", "")
	f.Size = xmlobject.Uint64(f.node, "size", 0)
	f.Created = xmlobject.Time(f.node, "created")
	f.Modified = xmlobject.Time(f.node, "modified")
	f.Changed = xmlobject.Time(f.node, "changed")
	f.Accessed = xmlobject.Time(f.node, "accessed")
	f.MD5 = xmlobject.String(f.node, "md5", "")
	f.State = xmlobject.Enum(f.node, "state", stateNames, Open)
	f.Expires = xmlobject.Time(f.node, "expires")
	return f
}

// SetFs sets the file system used by Scan and ComputeMD5.
func (f *FileObject) SetFs(fs afero.Fs) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	f.fs = fs
}

// SetPath sets Directory and Name from path. A relative path is taken from
// the current working directory.
func (f *FileObject) SetPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}
	f.Directory.Set(filepath.Dir(abs))
	f.Name.Set(filepath.Base(abs))
	return nil
}

// FullPath is the path of the file.
func (f *FileObject) FullPath() string {
	return f.Directory.Get() + "/" + f.Name.Get()
}

// Scan sets the path of the file object, then fills it from the file stat.
// The checksum is not computed.
func (f *FileObject) Scan(path string) error {
	if err := f.SetPath(path); err != nil {
		return err
	}
	return f.Rescan()
}

// Rescan updates the size and times from the file stat, e.g. once a file
// has been completely written.
func (f *FileObject) Rescan() error {
	fi, err := f.fs.Stat(f.FullPath())
	if err != nil {
		return errors.Wrapf(err, "scanning %s", f.FullPath())
	}
	if fi.IsDir() {
		return errors.Errorf("scanning %s: is a directory", f.FullPath())
	}
	f.Size.Set(uint64(fi.Size()))
	f.Modified.Set(xmltime.FromTime(fi.ModTime()))
	accessed, changed := statTimes(fi)
	f.Accessed.Set(xmltime.FromTime(accessed))
	f.Changed.Set(xmltime.FromTime(changed))
	return nil
}

// ComputeMD5 sets MD5 from the content of the file.
func (f *FileObject) ComputeMD5() error {
	file, err := f.fs.Open(f.FullPath())
	if err != nil {
		return errors.Wrapf(err, "checksum of %s", f.FullPath())
	}
	defer file.Close()

	h := md5.New()
	if _, err := io.Copy(h, file); err != nil {
		return errors.Wrapf(err, "checksum of %s", f.FullPath())
	}
	f.MD5.Set(hex.EncodeToString(h.Sum(nil)))
	return nil
}

// UpdateMD5 adds data appended to the file to a running checksum, started
// on the first call. MD5 is not set until FinishMD5.
func (f *FileObject) UpdateMD5(buf []byte) {
	if f.running == nil {
		f.running = md5.New()
	}
	_, _ = f.running.Write(buf)
}

// FinishMD5 sets MD5 from the running checksum, which starts over.
// It does nothing when no running checksum was started.
func (f *FileObject) FinishMD5() {
	if f.running == nil {
		return
	}
	f.MD5.Set(hex.EncodeToString(f.running.Sum(nil)))
	f.running = nil
}

// SetOpen marks the file as being written.
func (f *FileObject) SetOpen() {
	f.State.Set(Open)
}

// SetClosed marks the file as complete.
func (f *FileObject) SetClosed() {
	f.State.Set(Closed)
}

// SetSecondsUntilExpires sets Expires to some seconds from now.
func (f *FileObject) SetSecondsUntilExpires(seconds int) {
	f.Expires.Set(xmltime.Now().Add(time.Duration(seconds) * time.Second))
}

// TimeKey is a catalog key ordering files by creation time, unique across
// files created at the same time.
func (f *FileObject) TimeKey() string {
	return f.Created.Get().Key() + "-" + f.Name.Get()
}

// ModifiedTimeKey is like TimeKey, for the modification time.
func (f *FileObject) ModifiedTimeKey() string {
	return f.Modified.Get().Key() + "-" + f.Name.Get()
}
