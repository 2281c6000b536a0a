// internal/adapters/out/firestore/user_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	udom "vreetory/internal/domain/user"
)

const defaultUsersCollection = "users"

// =====================================================
// Firestore User Repository (読み取り専用)
// =====================================================

type UserRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

func NewUserRepositoryFS(client *firestore.Client, collection string) *UserRepositoryFS {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = defaultUsersCollection
	}
	return &UserRepositoryFS{Client: client, Collection: collection}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(r.Collection)
}

// Stream は users コレクションを 1 回だけ走査し、ドキュメントごとに fn を呼びます。
func (r *UserRepositoryFS) Stream(ctx context.Context, fn func(udom.User) error) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(docToUser(snap)); err != nil {
			return err
		}
	}
}

// =====================================================
// Helpers: Firestore -> Domain
// =====================================================

func docToUser(doc *firestore.DocumentSnapshot) udom.User {
	data := doc.Data()
	if data == nil {
		data = map[string]any{}
	}
	return udom.FromData(doc.Ref.ID, data)
}
