package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

const maxTxAttempts = 5

// MemoryStore is an in-memory Store honoring the same transaction contract
// as the Firestore implementation: snapshot reads, buffered writes, atomic
// commit, and optimistic conflict detection with bounded retries. It backs
// every engine test and local development without a Firestore project.
type MemoryStore struct {
	mu    sync.RWMutex
	colls map[string]map[string]memDoc
}

type memDoc struct {
	data    []byte
	version int64
}

func NewMemory() *MemoryStore {
	return &MemoryStore{colls: make(map[string]map[string]memDoc)}
}

// Seed writes a document directly, bypassing the transaction protocol.
// Test fixtures and local seeding only.
func (s *MemoryStore) Seed(collection, id string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	coll := s.coll(collection)
	doc := coll[id]
	coll[id] = memDoc{data: data, version: doc.version + 1}
	return nil
}

// coll returns the named collection map, creating it if needed.
// Caller must hold mu exclusively; read paths index s.colls directly
// instead, since a missing collection reads as a nil map.
func (s *MemoryStore) coll(name string) map[string]memDoc {
	c, ok := s.colls[name]
	if !ok {
		c = make(map[string]memDoc)
		s.colls[name] = c
	}
	return c
}

func (s *MemoryStore) Collection(name string) CollectionRef {
	return memCollection{store: s, name: name}
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		tx := &memTx{store: s, reads: make(map[string]int64)}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		conflicted, err := s.commit(tx)
		if err != nil {
			return err
		}
		if !conflicted {
			return nil
		}
	}
	return fmt.Errorf("transaction aborted after %d attempts", maxTxAttempts)
}

// commit validates the read set against current versions and applies the
// buffered writes atomically. Returns conflicted=true when the callback
// must be re-run.
func (s *MemoryStore) commit(tx *memTx) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, readVersion := range tx.reads {
		collection, id := splitKey(key)
		if s.coll(collection)[id].version != readVersion {
			return true, nil
		}
	}
	for _, w := range tx.writes {
		coll := s.coll(w.collection)
		current, exists := coll[w.id]
		switch w.kind {
		case writeCreate:
			// A delete tombstone keeps its version but reads as absent,
			// so its id is free for a new Create.
			if exists && current.data != nil {
				return false, fmt.Errorf("create %s/%s: document already exists", w.collection, w.id)
			}
			coll[w.id] = memDoc{data: w.data, version: current.version + 1}
		case writeSet:
			coll[w.id] = memDoc{data: w.data, version: current.version + 1}
		case writeDelete:
			// Deleted ids keep a bumped version so a concurrent reader
			// of the old doc still conflicts.
			coll[w.id] = memDoc{data: nil, version: current.version + 1}
		}
	}
	return false, nil
}

func docKey(collection, id string) string {
	return collection + "/" + id
}

func splitKey(key string) (collection, id string) {
	i := strings.IndexByte(key, '/')
	return key[:i], key[i+1:]
}

type memCollection struct {
	store *MemoryStore
	name  string
}

func (c memCollection) Doc(id string) DocRef {
	return memDocRef{store: c.store, collection: c.name, id: id}
}

func (c memCollection) NewDoc() DocRef {
	return memDocRef{store: c.store, collection: c.name, id: uuid.NewString()}
}

func (c memCollection) Where(field, op string, value interface{}) Query {
	return memQuery{store: c.store, collection: c.name, filters: []memFilter{{field, op, value}}}
}

type memFilter struct {
	field string
	op    string
	value interface{}
}

type memQuery struct {
	store      *MemoryStore
	collection string
	filters    []memFilter
}

func (q memQuery) Where(field, op string, value interface{}) Query {
	filters := append(append([]memFilter{}, q.filters...), memFilter{field, op, value})
	return memQuery{store: q.store, collection: q.collection, filters: filters}
}

func (q memQuery) Documents(ctx context.Context) ([]Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q.store.mu.RLock()
	defer q.store.mu.RUnlock()

	var docs []Doc
	for id, doc := range q.store.colls[q.collection] {
		if doc.data == nil {
			continue
		}
		match, err := matchesFilters(doc.data, q.filters)
		if err != nil {
			return nil, err
		}
		if match {
			docs = append(docs, memSnapshot{
				ref:    memDocRef{store: q.store, collection: q.collection, id: id},
				data:   doc.data,
				exists: true,
			})
		}
	}
	return docs, nil
}

func matchesFilters(data []byte, filters []memFilter) (bool, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return false, err
	}
	for _, f := range filters {
		switch f.op {
		case "==":
			if fmt.Sprint(fields[f.field]) != fmt.Sprint(f.value) {
				return false, nil
			}
		case "array-contains":
			arr, ok := fields[f.field].([]interface{})
			if !ok {
				return false, nil
			}
			found := false
			for _, elem := range arr {
				if fmt.Sprint(elem) == fmt.Sprint(f.value) {
					found = true
					break
				}
			}
			if !found {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported query operator %q", f.op)
		}
	}
	return true, nil
}

type memDocRef struct {
	store      *MemoryStore
	collection string
	id         string
}

func (r memDocRef) ID() string {
	return r.id
}

func (r memDocRef) Parent() string {
	return r.collection
}

func (r memDocRef) Get(ctx context.Context) (Doc, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	doc := r.store.colls[r.collection][r.id]
	r.store.mu.RUnlock()
	if doc.data == nil {
		return nil, ErrNotFound
	}
	return memSnapshot{ref: r, data: doc.data, exists: true}, nil
}

type memSnapshot struct {
	ref    memDocRef
	data   []byte
	exists bool
}

func (d memSnapshot) Exists() bool {
	return d.exists
}

func (d memSnapshot) Ref() DocRef {
	return d.ref
}

func (d memSnapshot) DataTo(v interface{}) error {
	if !d.exists {
		return ErrNotFound
	}
	return json.Unmarshal(d.data, v)
}

type writeKind int

const (
	writeCreate writeKind = iota
	writeSet
	writeDelete
)

type memWrite struct {
	kind       writeKind
	collection string
	id         string
	data       []byte
}

type memTx struct {
	store  *MemoryStore
	reads  map[string]int64
	writes []memWrite
}

func (t *memTx) Get(ref DocRef) (Doc, error) {
	if len(t.writes) > 0 {
		return nil, ErrReadAfterWrite
	}
	r := ref.(memDocRef)
	t.store.mu.RLock()
	doc := t.store.colls[r.collection][r.id]
	t.store.mu.RUnlock()

	t.reads[docKey(r.collection, r.id)] = doc.version
	if doc.data == nil {
		return nil, ErrNotFound
	}
	return memSnapshot{ref: r, data: doc.data, exists: true}, nil
}

func (t *memTx) stage(kind writeKind, ref DocRef, v interface{}) error {
	r := ref.(memDocRef)
	var data []byte
	if v != nil {
		var err error
		data, err = json.Marshal(v)
		if err != nil {
			return err
		}
	}
	t.writes = append(t.writes, memWrite{kind: kind, collection: r.collection, id: r.id, data: data})
	return nil
}

func (t *memTx) Create(ref DocRef, v interface{}) error {
	return t.stage(writeCreate, ref, v)
}

func (t *memTx) Set(ref DocRef, v interface{}) error {
	return t.stage(writeSet, ref, v)
}

func (t *memTx) Delete(ref DocRef) error {
	return t.stage(writeDelete, ref, nil)
}
