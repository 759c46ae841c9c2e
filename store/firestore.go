package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// firestoreStore adapts a Firestore client to the Store interface.
type firestoreStore struct {
	client *firestore.Client
}

// NewFirestore wraps an initialized Firestore client.
func NewFirestore(client *firestore.Client) Store {
	return &firestoreStore{client: client}
}

func (s *firestoreStore) Collection(name string) CollectionRef {
	return fsCollection{ref: s.client.Collection(name)}
}

func (s *firestoreStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(ctx, fsTx{tx: tx})
	})
}

func (s *firestoreStore) Close() error {
	return s.client.Close()
}

type fsCollection struct {
	ref *firestore.CollectionRef
}

func (c fsCollection) Doc(id string) DocRef {
	return fsDocRef{ref: c.ref.Doc(id)}
}

func (c fsCollection) NewDoc() DocRef {
	return fsDocRef{ref: c.ref.NewDoc()}
}

func (c fsCollection) Where(field, op string, value interface{}) Query {
	return fsQuery{q: c.ref.Where(field, op, value)}
}

type fsQuery struct {
	q firestore.Query
}

func (q fsQuery) Where(field, op string, value interface{}) Query {
	return fsQuery{q: q.q.Where(field, op, value)}
}

func (q fsQuery) Documents(ctx context.Context) ([]Doc, error) {
	snaps, err := q.q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	docs := make([]Doc, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, fsDoc{snap: snap})
	}
	return docs, nil
}

type fsDocRef struct {
	ref *firestore.DocumentRef
}

func (r fsDocRef) ID() string {
	return r.ref.ID
}

func (r fsDocRef) Parent() string {
	return r.ref.Parent.ID
}

func (r fsDocRef) Get(ctx context.Context) (Doc, error) {
	snap, err := r.ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fsDoc{snap: snap}, nil
}

type fsDoc struct {
	snap *firestore.DocumentSnapshot
}

func (d fsDoc) Exists() bool {
	return d.snap.Exists()
}

func (d fsDoc) Ref() DocRef {
	return fsDocRef{ref: d.snap.Ref}
}

func (d fsDoc) DataTo(v interface{}) error {
	return d.snap.DataTo(v)
}

type fsTx struct {
	tx *firestore.Transaction
}

func (t fsTx) Get(ref DocRef) (Doc, error) {
	snap, err := t.tx.Get(ref.(fsDocRef).ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fsDoc{snap: snap}, nil
}

func (t fsTx) Create(ref DocRef, v interface{}) error {
	return t.tx.Create(ref.(fsDocRef).ref, v)
}

func (t fsTx) Set(ref DocRef, v interface{}) error {
	return t.tx.Set(ref.(fsDocRef).ref, v)
}

func (t fsTx) Delete(ref DocRef) error {
	return t.tx.Delete(ref.(fsDocRef).ref)
}
