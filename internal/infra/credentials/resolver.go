// internal/infra/credentials/resolver.go
package credentials

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Candidate file names per tool.
var (
	ApprovalReportCandidates = []string{"google-services.json"}
	MinimumStockCandidates   = []string{"serviceAccountKey.json", "vreetory-app-firebase-adminsdk-*.json"}
)

// ErrNotFound is matched by every *NotFoundError.
var ErrNotFound = errors.New("credentials: service account key file not found")

// NotFoundError はどの候補にもキーファイルが無かったことを示します。
type NotFoundError struct {
	Candidates []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("credentials: cannot find service account key file (looking for: %s)", e.Names())
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Names は利用者向けに候補名を "a or b" 形式で返します。
func (e *NotFoundError) Names() string {
	names := make([]string, 0, len(e.Candidates))
	for _, c := range e.Candidates {
		names = append(names, filepath.Base(c))
	}
	return strings.Join(names, " or ")
}

// Resolver は候補パスを順に調べ、最初に存在するキーファイルを返します。
// - 絶対パスはそのまま、相対パスは BaseDir からの相対として扱う
// - glob パターン（* ? [）は辞書順で最初に一致した通常ファイル
type Resolver struct {
	BaseDir    string
	Candidates []string
}

// NewResolver は explicit（空なら無視）を先頭に置いた Resolver を返します。
func NewResolver(baseDir, explicit string, candidates ...string) *Resolver {
	var cs []string
	if s := strings.TrimSpace(explicit); s != "" {
		cs = append(cs, s)
	}
	cs = append(cs, candidates...)
	return &Resolver{BaseDir: baseDir, Candidates: cs}
}

// Resolve は一度だけ呼ばれる想定です。キャッシュはしません。
func (r *Resolver) Resolve() (string, error) {
	if r == nil || len(r.Candidates) == 0 {
		return "", &NotFoundError{}
	}

	for _, c := range r.Candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		// 実在するファイルはメタ文字を含んでいてもそのまま採用する
		p := r.abs(c)
		if isRegularFile(p) {
			return p, nil
		}
		if !isPattern(c) {
			continue
		}

		matches, err := filepath.Glob(r.globPattern(c))
		if err != nil {
			log.Printf("[credentials] WARN: bad pattern %q: %v", c, err)
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			if isRegularFile(m) {
				return m, nil
			}
		}
	}

	return "", &NotFoundError{Candidates: append([]string(nil), r.Candidates...)}
}

func (r *Resolver) baseDir() string {
	base := strings.TrimSpace(r.BaseDir)
	if base == "" {
		base = "."
	}
	return base
}

func (r *Resolver) abs(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.baseDir(), p)
}

// globPattern はパターン判定を候補側だけで行うため、BaseDir のメタ文字をエスケープして連結します。
func (r *Resolver) globPattern(c string) string {
	if filepath.IsAbs(c) {
		return c
	}
	return filepath.Join(escapeGlob(r.baseDir()), c)
}

func isPattern(p string) bool {
	return strings.ContainsAny(p, "*?[")
}

var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`)

// Windows の filepath.Glob は \ をエスケープとして扱わない
func escapeGlob(p string) string {
	if runtime.GOOS == "windows" {
		return p
	}
	return globEscaper.Replace(p)
}

func isRegularFile(p string) bool {
	fi, err := os.Stat(p)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// RedactPath はログ用にパスの最後の要素だけを残します。
func RedactPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "\\", "/")
	parts := strings.Split(p, "/")
	last := parts[len(parts)-1]
	if last == "" {
		return "***"
	}
	return "***" + "/" + last
}
