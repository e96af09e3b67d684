// Package memstore is an in-memory implementation of the store interfaces.
// It backs the unit tests and serves as the degraded-mode menu store when the
// persistent store cannot be initialized.
package memstore

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kmuchiri/jikoni-orders/store"
)

type Store struct {
	mu          sync.Mutex
	collections map[string]*collection

	// writes counts every mutating call across all collections. Tests use it
	// to assert that a rejected action attempted no store write.
	writes atomic.Int64
}

func New() *Store {
	return &Store{collections: make(map[string]*collection)}
}

func (s *Store) Collection(name string) store.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[name]
	if !ok {
		col = &collection{
			store:       s,
			docs:        make(map[string]json.RawMessage),
			subscribers: make(map[int]func(store.Snapshot)),
		}
		s.collections[name] = col
	}
	return col
}

func (s *Store) Close() error { return nil }

// WriteCount returns how many mutating calls the store has served.
func (s *Store) WriteCount() int64 { return s.writes.Load() }

type collection struct {
	store *Store

	mu          sync.Mutex
	docs        map[string]json.RawMessage
	subscribers map[int]func(store.Snapshot)
	nextSubID   int
}

func (c *collection) GetAll(ctx context.Context) ([]store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(), nil
}

func (c *collection) Get(ctx context.Context, id string) (store.Document, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.docs[id]
	if !ok {
		return store.Document{}, store.ErrNotFound
	}
	return store.Document{ID: id, Data: cloneJSON(data)}, nil
}

func (c *collection) Add(ctx context.Context, data json.RawMessage) (string, error) {
	c.store.writes.Add(1)
	id := uuid.NewString()

	c.mu.Lock()
	c.docs[id] = cloneJSON(data)
	snap, subs := c.emissionLocked()
	c.mu.Unlock()

	notify(snap, subs)
	return id, nil
}

func (c *collection) Set(ctx context.Context, id string, data json.RawMessage) error {
	c.store.writes.Add(1)

	c.mu.Lock()
	c.docs[id] = cloneJSON(data)
	snap, subs := c.emissionLocked()
	c.mu.Unlock()

	notify(snap, subs)
	return nil
}

func (c *collection) Update(ctx context.Context, id string, data json.RawMessage) error {
	c.store.writes.Add(1)

	c.mu.Lock()
	if _, ok := c.docs[id]; !ok {
		c.mu.Unlock()
		return store.ErrNotFound
	}
	c.docs[id] = cloneJSON(data)
	snap, subs := c.emissionLocked()
	c.mu.Unlock()

	notify(snap, subs)
	return nil
}

func (c *collection) Delete(ctx context.Context, id string) error {
	c.store.writes.Add(1)

	c.mu.Lock()
	delete(c.docs, id)
	snap, subs := c.emissionLocked()
	c.mu.Unlock()

	notify(snap, subs)
	return nil
}

// ApplyBatch applies every op under one lock hold, so subscribers see either
// none or all of the batch. Updates are validated before anything mutates: a
// failed batch leaves the collection exactly as it was, like a rolled-back
// transaction.
func (c *collection) ApplyBatch(ctx context.Context, ops []store.BatchOp) error {
	c.mu.Lock()
	for _, op := range ops {
		if op.Action == store.BatchUpdate {
			if _, ok := c.docs[op.DocID]; !ok {
				c.mu.Unlock()
				return store.ErrNotFound
			}
		}
	}

	c.store.writes.Add(1)
	for _, op := range ops {
		switch op.Action {
		case store.BatchSet, store.BatchUpdate:
			c.docs[op.DocID] = cloneJSON(op.Data)
		case store.BatchDelete:
			delete(c.docs, op.DocID)
		}
	}
	snap, subs := c.emissionLocked()
	c.mu.Unlock()

	notify(snap, subs)
	return nil
}

func (c *collection) Subscribe(fn func(store.Snapshot)) func() {
	c.mu.Lock()
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// Emit re-delivers the current snapshot to every subscriber without any write.
// Tests use it to replay duplicate or reordered emissions.
func (c *collection) Emit() {
	c.mu.Lock()
	snap, subs := c.emissionLocked()
	c.mu.Unlock()
	notify(snap, subs)
}

func (c *collection) snapshotLocked() store.Snapshot {
	docs := make(store.Snapshot, 0, len(c.docs))
	for id, data := range c.docs {
		docs = append(docs, store.Document{ID: id, Data: cloneJSON(data)})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs
}

func (c *collection) emissionLocked() (store.Snapshot, []func(store.Snapshot)) {
	subs := make([]func(store.Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	return c.snapshotLocked(), subs
}

// notify runs outside the collection lock so a subscriber may issue store
// calls of its own without deadlocking.
func notify(snap store.Snapshot, subs []func(store.Snapshot)) {
	for _, fn := range subs {
		fn(snap)
	}
}

func cloneJSON(data json.RawMessage) json.RawMessage {
	out := make(json.RawMessage, len(data))
	copy(out, data)
	return out
}

// EmitCollection is a test helper to force a re-emission on a store collection
// obtained through the interface.
func EmitCollection(col store.Collection) {
	if c, ok := col.(*collection); ok {
		c.Emit()
	}
}
