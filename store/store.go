// Package store defines the document-store abstraction the synchronizers run
// against: named collections of schemaless JSON documents with CRUD, atomic
// batches and push-based change subscriptions.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by Get and Update when no document has the given id.
var ErrNotFound = errors.New("store: document not found")

// Document is one record in a collection. Data is the raw JSON body; the id
// lives outside the body, assigned by the store on Add or chosen by the caller
// on Set.
type Document struct {
	ID   string
	Data json.RawMessage
}

// Snapshot is the full state of a collection delivered to subscribers. Every
// emission carries all documents; subscribers rebuild from scratch, so
// duplicated or reordered emissions are harmless.
type Snapshot []Document

// BatchOp is one write inside an atomic batch.
type BatchOp struct {
	Action string // "set", "update" or "delete"
	DocID  string
	Data   json.RawMessage
}

const (
	BatchSet    = "set"
	BatchUpdate = "update"
	BatchDelete = "delete"
)

// Collection is one named set of documents.
//
// Subscribe registers fn to receive a full snapshot after every observed
// change and returns an unsubscribe handle that must be called exactly once
// on teardown. Emissions may be coalesced; fn must tolerate being called with
// the same snapshot more than once.
type Collection interface {
	GetAll(ctx context.Context) ([]Document, error)
	Get(ctx context.Context, id string) (Document, error)
	Add(ctx context.Context, data json.RawMessage) (string, error)
	Set(ctx context.Context, id string, data json.RawMessage) error
	Update(ctx context.Context, id string, data json.RawMessage) error
	Delete(ctx context.Context, id string) error
	ApplyBatch(ctx context.Context, ops []BatchOp) error
	Subscribe(fn func(Snapshot)) (unsubscribe func())
}

// Store hands out collections by name.
type Store interface {
	Collection(name string) Collection
	Close() error
}
