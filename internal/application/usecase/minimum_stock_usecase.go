// internal/application/usecase/minimum_stock_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	invdom "vreetory/internal/domain/inventory"
)

// MinimumStockResult は更新件数の集計です。
type MinimumStockResult struct {
	Total   int
	Updated int
	Failed  int
}

// MinimumStockUsecase は items の minimum_stock をランダム値で上書きします。
//
// - 既存値は読まない（毎回上書き。再実行すると値は変わる）
// - 1 件の失敗はログに出して次へ進む（ロールバックしない）
// - bulk=true かつ repo が invdom.BulkUpdater を満たす場合は BulkWriter 経由
type MinimumStockUsecase struct {
	repo invdom.RepositoryPort
	out  io.Writer
	bulk bool
	intn func(n int) int
}

func NewMinimumStockUsecase(repo invdom.RepositoryPort, out io.Writer, bulk bool) *MinimumStockUsecase {
	if out == nil {
		out = io.Discard
	}
	return &MinimumStockUsecase{repo: repo, out: out, bulk: bulk, intn: rand.IntN}
}

// WithIntN は乱数源を差し替えます（テスト用）。
func (uc *MinimumStockUsecase) WithIntN(intn func(n int) int) *MinimumStockUsecase {
	if intn != nil {
		uc.intn = intn
	}
	return uc
}

// Run は全件取得してから 1 件ずつ更新します。取得エラーのみ返します（致命扱い）。
func (uc *MinimumStockUsecase) Run(ctx context.Context) (MinimumStockResult, error) {
	var res MinimumStockResult
	if uc == nil || uc.repo == nil {
		return res, errors.New("minimum stock usecase/repo is nil")
	}

	fmt.Fprintln(uc.out, "📊 Fetching items from Firestore...")
	items, err := uc.repo.ListAll(ctx)
	if err != nil {
		return res, fmt.Errorf("list items: %w", err)
	}
	res.Total = len(items)
	fmt.Fprintf(uc.out, "✓ Found %d items\n\n", len(items))

	if len(items) == 0 {
		fmt.Fprintln(uc.out, "⚠️  No items found in Firestore")
		return res, nil
	}

	fmt.Fprintf(uc.out, "📝 Updating items with random minimum_stock values (%d-%d)\n\n",
		invdom.MinMinimumStock, invdom.MaxMinimumStock)

	updates := make([]invdom.MinimumStockUpdate, len(items))
	for i, it := range items {
		updates[i] = invdom.MinimumStockUpdate{
			ItemID:       it.ID,
			MinimumStock: invdom.NewMinimumStock(uc.intn),
		}
	}

	report := func(it invdom.Item, u invdom.MinimumStockUpdate, err error) {
		if err != nil {
			res.Failed++
			fmt.Fprintf(uc.out, "✗ Error updating %s: %v\n", it.DisplayName(), err)
			return
		}
		res.Updated++
		fmt.Fprintf(uc.out, "✓ %s → minimum_stock: %s\n", it.DisplayName(), u.MinimumStock)
	}

	if bu, ok := uc.repo.(invdom.BulkUpdater); ok && uc.bulk {
		errs := bu.BulkUpdateMinimumStock(ctx, updates)
		for i, it := range items {
			err := errors.New("no result from bulk writer")
			if i < len(errs) {
				err = errs[i]
			}
			report(it, updates[i], err)
		}
	} else {
		for i, it := range items {
			report(it, updates[i], uc.repo.UpdateMinimumStock(ctx, it.ID, updates[i].MinimumStock))
		}
	}

	fmt.Fprintf(uc.out, "\n✅ Successfully updated %d/%d items\n", res.Updated, res.Total)
	return res, nil
}
