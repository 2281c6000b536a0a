// internal/app/runner.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"vreetory/internal/application/usecase"
	invdom "vreetory/internal/domain/inventory"
	udom "vreetory/internal/domain/user"
	appcfg "vreetory/internal/infra/config"
	"vreetory/internal/infra/credentials"
)

// Backend は 1 回の実行で使うリポジトリと後始末をまとめたものです。
type Backend struct {
	Users udom.RepositoryPort
	Items invdom.RepositoryPort
	Close func() error
}

// OpenFunc はキーファイルから Backend を作ります（本番は di.OpenFirestore）。
type OpenFunc func(ctx context.Context, cfg *appcfg.Config, credFile string) (*Backend, error)

// FatalError は利用者向けメッセージを出力済みの致命的エラーです。main は exit 1 にするだけでよい。
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string { return e.Err.Error() }
func (e *FatalError) Unwrap() error { return e.Err }

// Runner は「キー解決 → Firestore 初期化 → ドライバ実行」を 1 回だけ行います。
type Runner struct {
	Config *appcfg.Config
	Open   OpenFunc
	Out    io.Writer
}

func NewRunner(cfg *appcfg.Config, open OpenFunc, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{Config: cfg, Open: open, Out: out}
}

// CheckUserApproval は users の承認状況レポートを出力します（読み取りのみ）。
func (r *Runner) CheckUserApproval(ctx context.Context) error {
	b, err := r.start(ctx, credentials.ApprovalReportCandidates, false)
	if err != nil {
		return err
	}
	defer closeBackend(b)

	res, err := usecase.NewApprovalReportUsecase(b.Users, r.Out).Run(ctx)
	if err != nil {
		return r.fatal(err, "❌ Error: %v", err)
	}
	log.Printf("[app] approval report done total=%d canAccess=%d missing=%d typeMismatch=%d",
		res.Total, res.CanAccess, res.Missing, res.TypeMismatch)
	return nil
}

// UpdateMinimumStock は items の minimum_stock をランダム値で上書きします。
// 個別の更新失敗は終了コードに影響しません。
func (r *Runner) UpdateMinimumStock(ctx context.Context) error {
	fmt.Fprintln(r.Out, "🔄 Starting minimum_stock batch update...")
	fmt.Fprintln(r.Out)

	b, err := r.start(ctx, credentials.MinimumStockCandidates, true)
	if err != nil {
		return err
	}
	defer closeBackend(b)

	uc := usecase.NewMinimumStockUsecase(b.Items, r.Out, r.Config.IsBulk())
	res, err := uc.Run(ctx)
	if err != nil {
		return r.fatal(err, "❌ Error: %v", err)
	}
	if res.Failed > 0 {
		log.Printf("[app] WARN: minimum_stock update failed for %d/%d items", res.Failed, res.Total)
	}
	return nil
}

// start は設定検証・キー解決・初期化を行い、失敗時は致命メッセージを出力します。
func (r *Runner) start(ctx context.Context, candidates []string, verbose bool) (*Backend, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, r.fatal(err, "❌ Error: %v", err)
	}
	if r.Open == nil {
		err := errors.New("app: backend opener is nil")
		return nil, r.fatal(err, "❌ Error: %v", err)
	}

	res := credentials.NewResolver(r.Config.CredentialsDir, r.Config.CredentialsFile, candidates...)
	keyFile, err := res.Resolve()
	if err != nil {
		var nf *credentials.NotFoundError
		if errors.As(err, &nf) {
			return nil, r.fatal(err,
				"❌ Error: Cannot find Firebase service account key file\n   Looking for: %s", nf.Names())
		}
		return nil, r.fatal(err, "❌ Error: %v", err)
	}
	if verbose {
		fmt.Fprintf(r.Out, "🔑 Using service account: %s\n\n", keyFile)
	}

	b, err := r.Open(ctx, r.Config, keyFile)
	if err != nil {
		return nil, r.fatal(err,
			"❌ Error initializing Firebase: %v\n\nTry: firebase login and then firebase use <project-id>", err)
	}
	if b == nil {
		err := errors.New("app: backend is nil")
		return nil, r.fatal(err, "❌ Error initializing Firebase: %v", err)
	}
	if verbose {
		fmt.Fprintln(r.Out, "✓ Firebase initialized successfully")
		fmt.Fprintln(r.Out)
	}
	return b, nil
}

func (r *Runner) fatal(err error, format string, args ...any) error {
	fmt.Fprintf(r.Out, format+"\n", args...)
	return &FatalError{Err: err}
}

func closeBackend(b *Backend) {
	if b != nil && b.Close != nil {
		_ = b.Close()
	}
}
