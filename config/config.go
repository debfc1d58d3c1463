// Package config はアプリケーション設定を管理します。
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// データディレクトリのパス
	DataDir string

	// HTTPサーバーのポート
	Port string

	// セッションCookieの署名に使う秘密鍵
	SessionSecret string

	// 管理者のユーザー名
	AdminUser string

	// 管理者パスワードのbcryptハッシュ
	AdminPasswordHash string
}

// NewConfig は環境変数から設定を読み込み、Configインスタンスを生成します。
// カレントディレクトリに.envファイルがあれば先に読み込みます。
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	// データディレクトリの設定
	dataDir := os.Getenv("JOURNAL_DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(".", "data")
	}

	// ポートの設定
	port := os.Getenv("JOURNAL_SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	// セッション署名の秘密鍵（デフォルト値は設定しない）
	secret := os.Getenv("JOURNAL_SESSION_SECRET")
	if secret == "" {
		return nil, errors.New("JOURNAL_SESSION_SECRET is not set")
	}

	// 管理者ユーザー名の設定
	adminUser := os.Getenv("JOURNAL_ADMIN_USER")
	if adminUser == "" {
		adminUser = "admin"
	}

	// 管理者パスワードのハッシュ（デフォルト値は設定しない）
	adminPasswordHash := os.Getenv("JOURNAL_ADMIN_PASSWORD_HASH")
	if adminPasswordHash == "" {
		return nil, errors.New("JOURNAL_ADMIN_PASSWORD_HASH is not set")
	}

	return &Config{
		DataDir:           dataDir,
		Port:              port,
		SessionSecret:     secret,
		AdminUser:         adminUser,
		AdminPasswordHash: adminPasswordHash,
	}, nil
}
