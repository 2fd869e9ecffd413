// Package docstore defines the client's view of the shared remote document
// store: keyed get / merge-set, an atomic read-modify-write transaction
// primitive, and a live change subscription.
//
// The store is the single source of truth and may be mutated concurrently by
// any number of clients. Counter mutations must therefore go through
// [Store.RunTransaction]; a client must never compute "current + 1" from a
// separately-read value.
package docstore

import (
	"context"
	"errors"
	"time"
)

// Document is a decoded remote document.
type Document = map[string]any

// ErrNotFound is returned by reads when no document exists for the key.
var ErrNotFound = errors.New("document not found")

// serverTimestamp is the sentinel type behind [ServerTimestamp].
type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value replaced at write time with the
// store's own clock, never the device clock. Stored as an RFC 3339 UTC
// string.
var ServerTimestamp = serverTimestamp{}

// ChangeKind tags a single live-subscription notification.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// Change describes one document change delivered by a subscription.
// Removed changes carry a nil Doc.
type Change struct {
	Kind ChangeKind
	Key  string
	Doc  Document
}

// Tx is the view of the store available inside a transaction. Reads observe
// the transaction's own pending writes; all writes are applied atomically at
// commit or not at all.
type Tx interface {
	Get(ctx context.Context, collection, key string) (Document, error)
	// Set merge-writes doc into the document at key, creating it if absent.
	Set(ctx context.Context, collection, key string, doc Document) error
}

// Unsubscribe tears down a live subscription. Safe to call more than once.
type Unsubscribe func()

// Store is the remote document store contract consumed by the client core.
type Store interface {
	// Get returns the document at key or ErrNotFound.
	Get(ctx context.Context, collection, key string) (Document, error)

	// GetAll returns every document in the collection keyed by id. Used for
	// initial snapshot population and full reconciliation.
	GetAll(ctx context.Context, collection string) (map[string]Document, error)

	// MergeSet merge-writes doc into the document at key, creating it if
	// absent. Fields not present in doc are preserved.
	MergeSet(ctx context.Context, collection, key string, doc Document) error

	// RunTransaction executes fn atomically. Two concurrent transactions
	// touching the same document are serialized by the store; the loser
	// observes the winner's committed state.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// Subscribe opens a live change stream for the collection. onChanges
	// receives non-empty batches in delivery order; onError receives
	// stream-level failures. The stream is not retried by the store.
	Subscribe(ctx context.Context, collection string, onChanges func([]Change), onError func(error)) (Unsubscribe, error)
}

// ResolveTimestamps returns a copy of doc with every [ServerTimestamp]
// sentinel replaced by now, formatted as an RFC 3339 UTC string. Store
// implementations call it once per write.
func ResolveTimestamps(doc Document, now time.Time) Document {
	out := make(Document, len(doc))
	stamp := now.UTC().Format(time.RFC3339Nano)
	for k, v := range doc {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = stamp
			continue
		}
		out[k] = v
	}
	return out
}

// ParseTime decodes a document field written via [ServerTimestamp].
// Returns the zero time when the field is absent or unparseable.
func ParseTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
