// internal/infra/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Update modes for the minimum_stock tool.
const (
	UpdateModeSequential = "sequential"
	UpdateModeBulk       = "bulk"
)

const (
	defaultUsersCollection = "users"
	defaultItemsCollection = "items"
	defaultCredentialsDir  = "."
)

// Config は管理スクリプト共通の環境変数設定を保持します。
type Config struct {
	// 空の場合はサービスアカウントキーの project_id を使う
	FirestoreProjectID string

	// 明示指定されたキーファイル（候補探索より優先）
	CredentialsFile string
	// 候補ファイル名を探すベースディレクトリ
	CredentialsDir string

	UsersCollection string
	ItemsCollection string

	MinimumStockUpdateMode string
}

// Load は環境変数を読み込み Config を返します。
// ENV=dev の場合のみカレントディレクトリの .env を先に読み込みます。
func Load() *Config {
	if os.Getenv("ENV") == "dev" {
		_ = godotenv.Load()
	}

	cfg := &Config{
		FirestoreProjectID: firstEnv("FIRESTORE_PROJECT_ID", "GCP_PROJECT_ID", "GOOGLE_CLOUD_PROJECT"),
		CredentialsFile:    firstEnv("GOOGLE_APPLICATION_CREDENTIALS", "FIRESTORE_CREDENTIALS_FILE"),
		CredentialsDir:     getenvDefault("CREDENTIALS_DIR", defaultCredentialsDir),

		UsersCollection: getenvDefault("USERS_COLLECTION", defaultUsersCollection),
		ItemsCollection: getenvDefault("ITEMS_COLLECTION", defaultItemsCollection),

		MinimumStockUpdateMode: strings.ToLower(getenvDefault("MINIMUM_STOCK_UPDATE_MODE", UpdateModeSequential)),
	}

	return cfg
}

// Validate は起動前に致命的な設定ミスを検出します。
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}
	switch c.MinimumStockUpdateMode {
	case UpdateModeSequential, UpdateModeBulk:
	default:
		return fmt.Errorf("config: unknown MINIMUM_STOCK_UPDATE_MODE %q (want %q or %q)",
			c.MinimumStockUpdateMode, UpdateModeSequential, UpdateModeBulk)
	}
	if strings.TrimSpace(c.UsersCollection) == "" || strings.TrimSpace(c.ItemsCollection) == "" {
		return fmt.Errorf("config: collection name is empty")
	}
	return nil
}

// IsBulk reports whether minimum_stock updates go through a BulkWriter.
func (c *Config) IsBulk() bool {
	return c != nil && c.MinimumStockUpdateMode == UpdateModeBulk
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
