// internal/domain/inventory/entity.go
package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Firestore field names in the items collection.
const (
	FieldItemName     = "item_name"
	FieldMinimumStock = "minimum_stock"
)

// UnknownItemName は item_name が無いときの表示名です。
const UnknownItemName = "Unknown"

// minimum_stock の範囲（両端を含む）
const (
	MinMinimumStock = 10
	MaxMinimumStock = 100
)

var (
	ErrNotFound            = errors.New("inventory: item not found")
	ErrInvalidID           = errors.New("inventory: invalid item id")
	ErrInvalidMinimumStock = errors.New("inventory: invalid minimum_stock")
)

// Item は items コレクションの 1 ドキュメントです。
// MinimumStock は上書き専用なので読み出した値は保持しません。
type Item struct {
	ID       string
	ItemName string
}

// FromData は Firestore のフィールドマップから Item を組み立てます。
func FromData(id string, data map[string]any) Item {
	name := UnknownItemName
	if v, ok := data[FieldItemName].(string); ok {
		name = v
	}
	return Item{
		ID:       strings.TrimSpace(id),
		ItemName: name,
	}
}

// DisplayName returns the name used in log lines.
func (it Item) DisplayName() string {
	if it.ItemName == "" {
		return UnknownItemName
	}
	return it.ItemName
}

// MinimumStockUpdate は 1 ドキュメントへの部分更新です。
type MinimumStockUpdate struct {
	ItemID       string
	MinimumStock string
}

// NewMinimumStock は [MinMinimumStock, MaxMinimumStock] の一様乱数を 10 進文字列で返します。
// intn は rand.IntN 互換（[0, n) を返す）。
func NewMinimumStock(intn func(n int) int) string {
	span := MaxMinimumStock - MinMinimumStock + 1
	return strconv.Itoa(MinMinimumStock + intn(span))
}

// ParseMinimumStock は文字列の minimum_stock を検証して整数を返します。
func ParseMinimumStock(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMinimumStock, s)
	}
	if n < MinMinimumStock || n > MaxMinimumStock {
		return 0, fmt.Errorf("%w: %d out of range [%d,%d]", ErrInvalidMinimumStock, n, MinMinimumStock, MaxMinimumStock)
	}
	return n, nil
}
