package user

import "context"

// RepositoryPort は承認状況レポートに必要な読み取り専用の契約です。
// 書き込み系は持ちません。
type RepositoryPort interface {
	// Stream は全ドキュメントを順に fn へ渡します。
	// fn がエラーを返した場合はそこで打ち切り、そのエラーを返します。
	Stream(ctx context.Context, fn func(User) error) error
}
