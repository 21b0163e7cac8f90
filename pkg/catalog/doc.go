// Copyright © 2018 One Concern

// Package catalog stores xml objects as files of a directory.
//
// A catalog named "cars/used" opened from a Root lives in
// "<root>/cars.catalog/used.catalog" and holds one "<key>.xml" file per
// object. Catalogs may also be registered by name in the system catalog,
// then opened from anywhere with Lookup or Resolve.
//
// Failed operations return an error and keep its message in a bounded queue,
// so that long running callers may report failures after the fact.
package catalog
