// internal/application/usecase/approval_report_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	udom "vreetory/internal/domain/user"
)

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
)

// ApprovalReportResult は 1 回の監査の集計です。
type ApprovalReportResult struct {
	Total        int
	CanAccess    int
	Missing      int // is_approved が無い
	TypeMismatch int // is_approved が bool 以外
}

// ApprovalReportUsecase は users を走査して承認状況を出力します。書き込みはしません。
type ApprovalReportUsecase struct {
	repo udom.RepositoryPort
	out  io.Writer
}

func NewApprovalReportUsecase(repo udom.RepositoryPort, out io.Writer) *ApprovalReportUsecase {
	if out == nil {
		out = io.Discard
	}
	return &ApprovalReportUsecase{repo: repo, out: out}
}

// Run は全ユーザーのブロックを出力します。走査エラーはそのまま返します（呼び出し側で致命扱い）。
func (uc *ApprovalReportUsecase) Run(ctx context.Context) (ApprovalReportResult, error) {
	var res ApprovalReportResult
	if uc == nil || uc.repo == nil {
		return res, errors.New("approval report usecase/repo is nil")
	}

	fmt.Fprintln(uc.out, heavyRule)
	fmt.Fprintln(uc.out, "CHECKING USER APPROVAL STATUS")
	fmt.Fprintln(uc.out, heavyRule)

	err := uc.repo.Stream(ctx, func(u udom.User) error {
		res.Total++
		switch {
		case u.CanAccess():
			res.CanAccess++
		case !u.HasApprovalField():
			res.Missing++
		case u.IsApprovalTypeMismatch():
			res.TypeMismatch++
		}
		WriteUserBlock(uc.out, u)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("stream users: %w", err)
	}

	fmt.Fprintln(uc.out, "\n✅ Check complete!")
	WriteApprovalSummary(uc.out, res)
	return res, nil
}

// WriteApprovalSummary は集計行を書き出します。型違いがあれば ⚠️ を付けます。
func WriteApprovalSummary(w io.Writer, res ApprovalReportResult) {
	marker := "  "
	if res.TypeMismatch > 0 {
		marker = "⚠️ "
	}
	fmt.Fprintf(w, "%s Users: %d, can access: %d, is_approved missing: %d, is_approved not boolean: %d\n",
		marker, res.Total, res.CanAccess, res.Missing, res.TypeMismatch)
}

// WriteUserBlock は 1 ユーザー分のブロックを書き出します。
func WriteUserBlock(w io.Writer, u udom.User) {
	fmt.Fprintf(w, "\n📧 Email: %s\n", u.Email)
	fmt.Fprintf(w, "   UID: %s\n", u.ID)
	fmt.Fprintf(w, "   Role: %s\n", u.Role)
	fmt.Fprintf(w, "   is_approved: %s (type: %s)\n", udom.FormatValue(u.IsApproved), udom.TypeName(u.IsApproved))
	fmt.Fprintf(w, "   admin_request: %s\n", udom.FormatValue(u.AdminRequest))
	fmt.Fprintf(w, "   Can access: %s\n", udom.FormatValue(u.CanAccess()))
	fmt.Fprintln(w, lightRule)
}
