package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by point reads of documents that do not exist.
var ErrNotFound = errors.New("document not found")

// ErrReadAfterWrite is returned when a transaction reads after staging a
// write. The Firestore transaction contract requires all reads first; the
// in-memory store enforces the same rule so tests catch ordering bugs.
var ErrReadAfterWrite = errors.New("transaction read after write")

// Store is the document database the ledger engine runs on. The production
// implementation wraps Firestore; tests and local development use the
// in-memory implementation. Both honor the same transaction contract:
// reads observe a consistent snapshot, the write set commits atomically,
// and the callback is re-run from scratch on contention.
type Store interface {
	Collection(name string) CollectionRef
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}

// CollectionRef addresses one named collection.
type CollectionRef interface {
	Doc(id string) DocRef
	NewDoc() DocRef
	Where(field, op string, value interface{}) Query
}

// Query is a filtered read over a collection. Results are advisory
// (non-transactional); mutating operations must re-read inside a
// transaction.
type Query interface {
	Where(field, op string, value interface{}) Query
	Documents(ctx context.Context) ([]Doc, error)
}

// DocRef addresses one document.
type DocRef interface {
	ID() string
	Parent() string
	// Get is a non-transactional point read, used only for advisory
	// pre-reads tolerant of staleness.
	Get(ctx context.Context) (Doc, error)
}

// Doc is a read document snapshot.
type Doc interface {
	Exists() bool
	Ref() DocRef
	DataTo(v interface{}) error
}

// Tx is the handle passed to a transaction callback. All reads must
// precede all writes; writes are buffered and applied atomically on
// commit.
type Tx interface {
	Get(ref DocRef) (Doc, error)
	Create(ref DocRef, v interface{}) error
	Set(ref DocRef, v interface{}) error
	Delete(ref DocRef) error
}
