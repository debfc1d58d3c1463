// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"log"

	"journal/config"
	"journal/db"
	"journal/store"
	"journal/web"
)

func main() {
	// 設定の読み込み
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// SQLiteストアの初期化（マイグレーション関数を渡す）
	sqliteStore, err := store.NewSQLiteStore(cfg.DataDir, db.Migrate)
	if err != nil {
		log.Fatalf("Failed to initialize SQLite store: %v", err)
	}
	defer sqliteStore.Close()

	// サーバーインスタンスの作成
	server := web.NewServer(sqliteStore, cfg)

	// サーバーの起動
	log.Fatal(server.Run(":" + cfg.Port))
}
