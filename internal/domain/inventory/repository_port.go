// internal/domain/inventory/repository_port.go
package inventory

import "context"

// ------------------------------------------------------
// Repository Port for Item (items コレクション)
// ------------------------------------------------------
//
// Firestore 実装は adapters/out/firestore 側にあります。
type RepositoryPort interface {
	// ListAll:
	// - 全 Item を取得します。途中で失敗した場合はエラーのみ返します。
	ListAll(ctx context.Context) ([]Item, error)

	// UpdateMinimumStock:
	// - minimum_stock フィールドだけを部分更新します（他のフィールドは読まない・触らない）。
	// - ドキュメントが無い場合は ErrNotFound。
	UpdateMinimumStock(ctx context.Context, id string, value string) error
}

// BulkUpdater は BulkWriter でまとめて書き込める実装が追加で満たす契約です。
// 戻り値は updates と同じ順序・長さで、成功した要素は nil。
type BulkUpdater interface {
	BulkUpdateMinimumStock(ctx context.Context, updates []MinimumStockUpdate) []error
}
