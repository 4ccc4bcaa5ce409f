package store

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore collection names for each record collection.
var firestoreCollections = map[string]string{
	UsersCollection:    "Users",
	ProjectsCollection: "Projects",
	TasksCollection:    "Tasks",
}

// FirestoreStore keeps one document per record. Update runs inside a Firestore
// transaction, so concurrent writers from other processes are also isolated.
type FirestoreStore struct {
	client *firestore.Client
	mu     sync.Mutex
}

// NewFirestore wraps an open client and checks that it can read the users
// collection.
func NewFirestore(ctx context.Context, client *firestore.Client) (*FirestoreStore, error) {
	_, err := client.Collection(firestoreCollections[UsersCollection]).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		switch status.Code(err) {
		case codes.PermissionDenied, codes.Unauthenticated:
			return nil, fmt.Errorf("firestore rejected credentials: %w", err)
		case codes.Unavailable, codes.DeadlineExceeded:
			return nil, fmt.Errorf("firestore unreachable: %w", err)
		}
		return nil, fmt.Errorf("firestore check: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) ordered(name string) firestore.Query {
	return s.client.Collection(firestoreCollections[name]).OrderBy("position", firestore.Asc)
}

// Read loads every collection inside one read-only transaction so the three
// queries see the same commit.
func (s *FirestoreStore) Read(ctx context.Context) (Dataset, error) {
	var rs rowSet
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		var err error
		rs, err = s.readAll(tx)
		return err
	}, firestore.ReadOnly)
	if err != nil {
		return Dataset{}, err
	}
	d := fromRows(rs)
	d.normalize()
	return d, nil
}

func (s *FirestoreStore) Update(ctx context.Context, fn func(*Dataset) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// Firestore requires every read in a transaction to happen before any write.
		before, err := s.readAll(tx)
		if err != nil {
			return err
		}

		next := fromRows(before)
		if err := fn(&next); err != nil {
			return err
		}
		after := toRows(next, before)

		if err := writeDocuments(tx, s.client.Collection(firestoreCollections[UsersCollection]), before.users, after.users, func(r userRow) string { return r.ID }); err != nil {
			return err
		}
		if err := writeDocuments(tx, s.client.Collection(firestoreCollections[ProjectsCollection]), before.projects, after.projects, func(r projectRow) string { return r.ID }); err != nil {
			return err
		}
		return writeDocuments(tx, s.client.Collection(firestoreCollections[TasksCollection]), before.tasks, after.tasks, func(r taskRow) string { return r.ID })
	})
}

func (s *FirestoreStore) readAll(tx *firestore.Transaction) (rowSet, error) {
	var (
		rs  rowSet
		err error
	)
	if rs.users, err = readDocuments[userRow](tx.Documents(s.ordered(UsersCollection))); err != nil {
		return rs, fmt.Errorf("read users: %w", err)
	}
	if rs.projects, err = readDocuments[projectRow](tx.Documents(s.ordered(ProjectsCollection))); err != nil {
		return rs, fmt.Errorf("read projects: %w", err)
	}
	if rs.tasks, err = readDocuments[taskRow](tx.Documents(s.ordered(TasksCollection))); err != nil {
		return rs, fmt.Errorf("read tasks: %w", err)
	}
	return rs, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

func readDocuments[R any](iter *firestore.DocumentIterator) ([]R, error) {
	defer iter.Stop()
	var rows []R
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var row R
		if err := doc.DataTo(&row); err != nil {
			return nil, fmt.Errorf("decode %s: %w", doc.Ref.ID, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeDocuments[R any](tx *firestore.Transaction, col *firestore.CollectionRef, before, after []R, id func(R) string) error {
	upserts, deletes := diffRows(before, after, id)
	for _, key := range deletes {
		if err := tx.Delete(col.Doc(key)); err != nil {
			return fmt.Errorf("delete %s/%s: %w", col.ID, key, err)
		}
	}
	for _, row := range upserts {
		if err := tx.Set(col.Doc(id(row)), row); err != nil {
			return fmt.Errorf("set %s/%s: %w", col.ID, id(row), err)
		}
	}
	return nil
}
