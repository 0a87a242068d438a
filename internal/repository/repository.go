// Package repository provides durable key-value backends for store snapshots.
//
// Every backend stores an opaque byte slice under a fixed logical key
// ("auth-data", "notes-data", "comments-data") and returns ErrNotFound
// when the key has never been written.
package repository

import "errors"

// ErrNotFound is returned by Load when no snapshot exists for the key.
var ErrNotFound = errors.New("snapshot not found")
