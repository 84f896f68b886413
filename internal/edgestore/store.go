package edgestore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vk/fnlists/internal/ctxlog"
	"github.com/vk/fnlists/internal/sharedlist"
	"github.com/vk/fnlists/internal/socketid"
	"github.com/vk/fnlists/internal/typeregistry"
)

var (
	// ErrUnknownSocket is returned for sockets that were never declared.
	ErrUnknownSocket = errors.New("edgestore: socket not declared")

	// ErrTypeMismatch is returned when a value or a redeclaration does not
	// match the socket's declared list type.
	ErrTypeMismatch = errors.New("edgestore: list type mismatch")

	// ErrNoValue is returned by Get for a declared socket with nothing published.
	ErrNoValue = errors.New("edgestore: no value published")

	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("edgestore: store closed")
)

type entry struct {
	addr  socketid.Address
	desc  *typeregistry.Descriptor
	value sharedlist.Value
}

// Store maps socket addresses to the list value currently published there.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	closed  bool
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Declare fixes the list type of a socket. Declaring the same socket again
// with the same descriptor is a no-op; with another descriptor it fails with
// ErrTypeMismatch.
func (s *Store) Declare(ctx context.Context, addr socketid.Address, desc *typeregistry.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	key := addr.String()
	if e, ok := s.entries[key]; ok {
		if e.desc != desc {
			return fmt.Errorf("%w: socket %s is declared as %s, not %s", ErrTypeMismatch, key, e.desc, desc)
		}
		return nil
	}
	s.entries[key] = &entry{addr: addr, desc: desc}
	ctxlog.FromContext(ctx).Debug("Socket declared.", "socket", key, "type", desc.Name())
	return nil
}

// Type returns the declared descriptor of a socket.
func (s *Store) Type(ctx context.Context, addr socketid.Address) (*typeregistry.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, err := s.lookup(addr)
	if err != nil {
		return nil, err
	}
	return e.desc, nil
}

// Publish stores a retained handle of v on a declared socket, releasing
// whatever was published there before. The caller's handle is untouched.
// Publishing nil is a type mismatch; use Drop to clear a socket.
func (s *Store) Publish(ctx context.Context, addr socketid.Address, v sharedlist.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(addr)
	if err != nil {
		return err
	}
	if v == nil {
		return fmt.Errorf("%w: socket %s carries %s, got nil", ErrTypeMismatch, addr, e.desc)
	}
	if got := v.Type(); got != e.desc {
		return fmt.Errorf("%w: socket %s carries %s, got %s", ErrTypeMismatch, addr, e.desc, got)
	}

	prev := e.value
	e.value = v.Retain()
	if prev != nil {
		prev.Release()
	}
	ctxlog.FromContext(ctx).Debug("List published.", "socket", addr.String(), "type", e.desc.Name(), "len", v.Len(), "replaced", prev != nil)
	return nil
}

// Get returns a new handle to the value published on a socket. The caller
// must release it.
func (s *Store) Get(ctx context.Context, addr socketid.Address) (sharedlist.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, err := s.lookup(addr)
	if err != nil {
		return nil, err
	}
	if e.value == nil {
		return nil, fmt.Errorf("%w on socket %s", ErrNoValue, addr)
	}
	return e.value.Retain(), nil
}

// GetAs is Get followed by sharedlist.Cast. On a kind mismatch the retained
// handle is released before the error is returned.
func GetAs[T sharedlist.Element](ctx context.Context, s *Store, addr socketid.Address, kind sharedlist.Kind[T]) (*sharedlist.List[T], error) {
	v, err := s.Get(ctx, addr)
	if err != nil {
		return nil, err
	}
	l, err := sharedlist.Cast(v, kind)
	if err != nil {
		v.Release()
		return nil, fmt.Errorf("socket %s: %w", addr, err)
	}
	return l, nil
}

// Drop releases the value published on a socket, keeping the declaration.
// Dropping an empty socket is a no-op.
func (s *Store) Drop(ctx context.Context, addr socketid.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, err := s.lookup(addr)
	if err != nil {
		return err
	}
	if e.value != nil {
		e.value.Release()
		e.value = nil
		ctxlog.FromContext(ctx).Debug("List dropped.", "socket", addr.String())
	}
	return nil
}

// Addresses returns every declared socket, sorted by canonical form.
func (s *Store) Addresses() []socketid.Address {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]socketid.Address, len(keys))
	for i, k := range keys {
		out[i] = s.entries[k].addr
	}
	return out
}

// Published returns how many sockets currently hold a value.
func (s *Store) Published() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if e.value != nil {
			n++
		}
	}
	return n
}

// Close releases every published value. The store cannot be used afterwards.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	released := 0
	for _, e := range s.entries {
		if e.value != nil {
			e.value.Release()
			e.value = nil
			released++
		}
	}
	s.closed = true
	ctxlog.FromContext(ctx).Debug("Edge store closed.", "released", released)
	return nil
}

// lookup must be called with s.mu held.
func (s *Store) lookup(addr socketid.Address) (*entry, error) {
	if s.closed {
		return nil, ErrClosed
	}
	e, ok := s.entries[addr.String()]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSocket, addr)
	}
	return e, nil
}
