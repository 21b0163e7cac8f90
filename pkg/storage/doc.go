// Copyright © 2018 One Concern

// Package storage provides the interface to the backend holding the
// files of a catalog.
//
// This package supports the following backends:
//   - local file system, through an afero.Fs (see localfs)
//
// Stores may be decorated with tracing, logging and metrics (see Instrument).
package storage
