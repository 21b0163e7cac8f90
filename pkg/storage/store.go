// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"time"
)

// Store implementations know how to write objects to a flat K/V namespace,
// typically one directory of a file system.
//
// Put is atomic: readers either see the previous object or the complete new
// one. Keys returns a sorted snapshot.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	Stat(context.Context, string) (Info, error)
}

// Mover is implemented by stores which can atomically move an object to
// another store.
type Mover interface {
	Move(ctx context.Context, key string, dest Store, destKey string) error
}

// Wrapper is implemented by store decorators.
type Wrapper interface {
	Unwrap() Store
}

// Info describes a stored object.
type Info struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// Unwrap strips all decorators from a store.
func Unwrap(s Store) Store {
	for {
		w, ok := s.(Wrapper)
		if !ok {
			return s
		}
		s = w.Unwrap()
	}
}
