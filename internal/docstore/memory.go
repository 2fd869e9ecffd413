package docstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"dario.cat/mergo"
	"github.com/google/uuid"
)

// MemoryStore is an in-process [Store] used by tests and offline development.
// Transactions are serialized by a single mutex, which gives the same
// linearization guarantee the real store provides per document.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]Document

	subs map[string]map[string]*memorySub

	// now is swappable in tests that assert on server-assigned timestamps.
	now func() time.Time
}

type memorySub struct {
	onChanges func([]Change)
	onError   func(error)
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]Document),
		subs: make(map[string]map[string]*memorySub),
		now:  time.Now,
	}
}

// Get implements [Store].
func (m *MemoryStore) Get(_ context.Context, collection, key string) (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.data[collection][key]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", collection, key, ErrNotFound)
	}
	return cloneDocument(doc), nil
}

// GetAll implements [Store].
func (m *MemoryStore) GetAll(_ context.Context, collection string) (map[string]Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]Document, len(m.data[collection]))
	for key, doc := range m.data[collection] {
		out[key] = cloneDocument(doc)
	}
	return out, nil
}

// MergeSet implements [Store].
func (m *MemoryStore) MergeSet(_ context.Context, collection, key string, doc Document) error {
	m.mu.Lock()
	changes := m.apply(collection, key, doc)
	m.mu.Unlock()

	m.notify(collection, changes)
	return nil
}

// Delete removes a document, emitting a removed change. The client core
// never deletes ledger or index documents; this exists so tests can drive
// the sync engine's removal path.
func (m *MemoryStore) Delete(_ context.Context, collection, key string) error {
	m.mu.Lock()
	_, existed := m.data[collection][key]
	if existed {
		delete(m.data[collection], key)
	}
	m.mu.Unlock()

	if existed {
		m.notify(collection, []Change{{Kind: ChangeRemoved, Key: key}})
	}
	return nil
}

// RunTransaction implements [Store]. The store mutex is held for the whole
// transaction, so concurrent transactions on the same store are fully
// serialized and the second always observes the first's writes.
func (m *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()

	tx := &memoryTx{store: m, staged: make(map[string]map[string]Document)}
	if err := fn(ctx, tx); err != nil {
		m.mu.Unlock()
		return err
	}

	var all []collectionChanges
	for collection, docs := range tx.staged {
		cc := collectionChanges{collection: collection}
		for key, doc := range docs {
			cc.changes = append(cc.changes, m.apply(collection, key, doc)...)
		}
		all = append(all, cc)
	}
	m.mu.Unlock()

	for _, cc := range all {
		m.notify(cc.collection, cc.changes)
	}
	return nil
}

// Subscribe implements [Store].
func (m *MemoryStore) Subscribe(_ context.Context, collection string, onChanges func([]Change), onError func(error)) (Unsubscribe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	if m.subs[collection] == nil {
		m.subs[collection] = make(map[string]*memorySub)
	}
	m.subs[collection][id] = &memorySub{onChanges: onChanges, onError: onError}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.subs[collection], id)
	}, nil
}

type collectionChanges struct {
	collection string
	changes    []Change
}

// apply merge-writes doc at key and returns the resulting change batch.
// Caller must hold m.mu.
func (m *MemoryStore) apply(collection, key string, doc Document) []Change {
	resolved := ResolveTimestamps(doc, m.now())

	if m.data[collection] == nil {
		m.data[collection] = make(map[string]Document)
	}

	current, existed := m.data[collection][key]
	kind := ChangeAdded
	if existed {
		kind = ChangeModified
	} else {
		current = make(Document)
	}

	merged := cloneDocument(current)
	// WithOverwriteWithEmptyValue matters: a counter reset to zero must win
	// over the stored non-zero value.
	if err := mergo.Merge(&merged, resolved, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		// mergo only fails on non-map inputs, which cannot happen here.
		merged = resolved
	}
	m.data[collection][key] = merged

	return []Change{{Kind: kind, Key: key, Doc: cloneDocument(merged)}}
}

func (m *MemoryStore) notify(collection string, changes []Change) {
	if len(changes) == 0 {
		return
	}

	m.mu.Lock()
	subs := make([]*memorySub, 0, len(m.subs[collection]))
	for _, s := range m.subs[collection] {
		subs = append(subs, s)
	}
	m.mu.Unlock()

	for _, s := range subs {
		s.onChanges(changes)
	}
}

type memoryTx struct {
	store  *MemoryStore
	staged map[string]map[string]Document
}

// Get implements [Tx]. Reads observe the transaction's own pending writes
// merged over the committed state.
func (t *memoryTx) Get(_ context.Context, collection, key string) (Document, error) {
	committed, ok := t.store.data[collection][key]

	staged, hasStaged := t.staged[collection][key]
	if !ok && !hasStaged {
		return nil, fmt.Errorf("%s/%s: %w", collection, key, ErrNotFound)
	}

	doc := make(Document)
	if ok {
		doc = cloneDocument(committed)
	}
	if hasStaged {
		resolved := ResolveTimestamps(staged, t.store.now())
		if err := mergo.Merge(&doc, resolved, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
			return nil, fmt.Errorf("merge staged write: %w", err)
		}
	}
	return doc, nil
}

// Set implements [Tx]. Writes are staged and applied at commit.
func (t *memoryTx) Set(_ context.Context, collection, key string, doc Document) error {
	if t.staged[collection] == nil {
		t.staged[collection] = make(map[string]Document)
	}

	staged, ok := t.staged[collection][key]
	if !ok {
		t.staged[collection][key] = cloneDocument(doc)
		return nil
	}
	if err := mergo.Merge(&staged, doc, mergo.WithOverride, mergo.WithOverwriteWithEmptyValue); err != nil {
		return fmt.Errorf("merge staged write: %w", err)
	}
	t.staged[collection][key] = staged
	return nil
}

func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if nested, ok := v.(Document); ok {
			out[k] = cloneDocument(nested)
			continue
		}
		out[k] = v
	}
	return out
}
