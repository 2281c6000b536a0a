// internal/adapters/out/firestore/item_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	invdom "vreetory/internal/domain/inventory"
)

const defaultItemsCollection = "items"

// =====================================================
// Firestore Item Repository
// =====================================================
//
// IMPORTANT:
// - minimum_stock は読まずに上書きする（Update のみ。Set/Merge は使わない）。
// - Update は存在しないドキュメントに対して NotFound を返すので、
//   途中で削除された item を新規作成してしまうことはない。
// =====================================================

type ItemRepositoryFS struct {
	Client     *firestore.Client
	Collection string
}

func NewItemRepositoryFS(client *firestore.Client, collection string) *ItemRepositoryFS {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		collection = defaultItemsCollection
	}
	return &ItemRepositoryFS{Client: client, Collection: collection}
}

func (r *ItemRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection(r.Collection)
}

// ListAll は items コレクションを全件取得します。
func (r *ItemRepositoryFS) ListAll(ctx context.Context) ([]invdom.Item, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col().Documents(ctx)
	defer it.Stop()

	var out []invdom.Item
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, docToItem(snap))
	}
	return out, nil
}

// UpdateMinimumStock は minimum_stock のみを部分更新します。
// [10,100] の 10 進文字列以外は書き込まずに ErrInvalidMinimumStock を返します。
func (r *ItemRepositoryFS) UpdateMinimumStock(ctx context.Context, id string, value string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invdom.ErrInvalidID
	}
	if _, err := invdom.ParseMinimumStock(value); err != nil {
		return err
	}
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	_, err := r.col().Doc(id).Update(ctx, minimumStockUpdates(value))
	return mapWriteErr(id, err)
}

// BulkUpdateMinimumStock は BulkWriter にまとめて投入し、ジョブごとの結果を返します。
// 1 件の失敗は他の更新に影響しません（ロールバックもしない）。
func (r *ItemRepositoryFS) BulkUpdateMinimumStock(ctx context.Context, updates []invdom.MinimumStockUpdate) []error {
	errs := make([]error, len(updates))
	if r.Client == nil {
		for i := range errs {
			errs[i] = errors.New("firestore client is nil")
		}
		return errs
	}

	bw := r.Client.BulkWriter(ctx)

	jobs := make([]*firestore.BulkWriterJob, len(updates))
	for i, u := range updates {
		id := strings.TrimSpace(u.ItemID)
		if id == "" {
			errs[i] = invdom.ErrInvalidID
			continue
		}
		if _, err := invdom.ParseMinimumStock(u.MinimumStock); err != nil {
			errs[i] = err
			continue
		}
		job, err := bw.Update(r.col().Doc(id), minimumStockUpdates(u.MinimumStock))
		if err != nil {
			errs[i] = err
			continue
		}
		jobs[i] = job
	}

	bw.End()

	for i, job := range jobs {
		if job == nil {
			continue
		}
		_, err := job.Results()
		errs[i] = mapWriteErr(updates[i].ItemID, err)
	}
	return errs
}

// =====================================================
// Helpers
// =====================================================

func minimumStockUpdates(value string) []firestore.Update {
	return []firestore.Update{
		{Path: invdom.FieldMinimumStock, Value: value},
	}
}

func mapWriteErr(id string, err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %s", invdom.ErrNotFound, id)
	}
	return err
}

func docToItem(doc *firestore.DocumentSnapshot) invdom.Item {
	data := doc.Data()
	if data == nil {
		data = map[string]any{}
	}
	return invdom.FromData(doc.Ref.ID, data)
}
