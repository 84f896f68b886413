// Package edgestore holds the list values that graph nodes publish on their
// output sockets.
//
// # Ownership
//
// The store follows the "clone on retain, release on drop" rule for
// sharedlist handles:
//
//   - Publish retains the value; the caller keeps and still owns its handle.
//   - Publishing over an existing value releases the old one.
//   - Get returns a new handle that the caller must release.
//   - Drop and Close release the store's handles.
//
// # Typing
//
// A socket must be declared with a list descriptor before anything can be
// published on it. Publish compares the value's descriptor with the declared
// one by identity and rejects mismatches, so consumers can Cast what they Get
// without a second check.
//
// # Concurrency
//
// Unlike the node state store this one is guarded by a single RWMutex rather
// than sync.Map: Get has to retain a value before a concurrent Publish or Drop
// can release it, and that needs the load and the retain to happen under the
// same read lock.
package edgestore
