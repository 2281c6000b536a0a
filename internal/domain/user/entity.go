// internal/domain/user/entity.go
package user

import (
	"fmt"
	"strings"
)

// Firestore field names in the users collection.
const (
	FieldEmail        = "email"
	FieldRole         = "role"
	FieldIsApproved   = "is_approved"
	FieldAdminRequest = "admin_request"
)

// Placeholder shown for missing string fields.
const NotAvailable = "N/A"

// User は users コレクションの 1 ドキュメントを監査用に保持します。
//
// IsApproved / AdminRequest は Firestore からデコードした値そのまま（型変換しない）。
// nil は「フィールドが無い」状態で、false とは区別されます。
type User struct {
	ID           string
	Email        string
	Role         string
	IsApproved   any
	AdminRequest any
}

// FromData は Firestore のフィールドマップから User を組み立てます。
// email / role が無い、または文字列でない場合は N/A を入れます。
func FromData(id string, data map[string]any) User {
	getStr := func(key string) string {
		v, ok := data[key]
		if !ok || v == nil {
			return NotAvailable
		}
		if s, ok := v.(string); ok {
			return s
		}
		return fmt.Sprintf("%v", v)
	}

	return User{
		ID:           strings.TrimSpace(id),
		Email:        getStr(FieldEmail),
		Role:         getStr(FieldRole),
		IsApproved:   data[FieldIsApproved],
		AdminRequest: data[FieldAdminRequest],
	}
}

// CanAccess は is_approved が boolean の true の場合だけ true を返します。
// "True" や 1 のような型違いの値は false です（それを検出するのがこのツールの目的）。
func (u User) CanAccess() bool {
	b, ok := u.IsApproved.(bool)
	return ok && b
}

// HasApprovalField reports whether is_approved was present at all.
func (u User) HasApprovalField() bool {
	return u.IsApproved != nil
}

// IsApprovalTypeMismatch は is_approved が存在するのに bool でない場合 true。
func (u User) IsApprovalTypeMismatch() bool {
	if u.IsApproved == nil {
		return false
	}
	_, ok := u.IsApproved.(bool)
	return !ok
}

// FormatValue はレポート用に値を表示します。
// nil → None, bool → True/False, それ以外は %v。
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "None"
	case bool:
		if t {
			return "True"
		}
		return "False"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// TypeName は値の実行時の型名を返します（nil は "nil"）。
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
