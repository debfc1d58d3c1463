// Package store は、データの永続化機能を提供します。
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"journal/model"
)

// EntryStore はエントリの保存と取得を行うインターフェースです。
type EntryStore interface {
	// CreateEntry は新しいエントリを作成し、採番されたIDをentryに設定します。
	CreateEntry(ctx context.Context, entry *model.Entry) error
	// GetEntry は指定されたIDのエントリを取得します。
	GetEntry(ctx context.Context, id int64) (*model.Entry, error)
	// ListEntries はすべてのエントリを作成日時の降順（同時刻の場合はIDの降順）で取得します。
	ListEntries(ctx context.Context) ([]*model.Entry, error)
	// UpdateEntry は指定されたエントリのタイトルと本文を更新します。作成日時は変更しません。
	UpdateEntry(ctx context.Context, entry *model.Entry) error
	// DeleteEntry は指定されたIDのエントリを削除します。存在しないIDでも成功します（冪等）。
	DeleteEntry(ctx context.Context, id int64) error
	// Close はストアの接続を閉じます。
	Close() error
}

// SQLiteStore はSQLiteを使用したEntryStoreの実装です。
type SQLiteStore struct {
	conn *sqlx.DB
}

// entryRow はentriesテーブルの1行を表します。
// 日時はRFC3339形式のTEXTとして保存されるため、読み書き時に変換します。
type entryRow struct {
	ID      int64  `db:"id"`
	Title   string `db:"title"`
	Text    string `db:"text"`
	Created string `db:"created"`
}

// toEntry はentryRowをモデルに変換します。
func (r *entryRow) toEntry() (*model.Entry, error) {
	created, err := time.Parse(time.RFC3339, r.Created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entry date: %w", err)
	}
	return model.LoadEntry(r.ID, r.Title, r.Text, created)
}

// NewSQLiteStore は新しいSQLiteStoreを作成します。
func NewSQLiteStore(dataDir string, migrate func(*sql.DB) error) (*SQLiteStore, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// SQLiteデータベースファイルのパス
	dbPath := filepath.Join(dataDir, "journal.db")

	// SQLiteデータベースへの接続
	conn, err := sqlx.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	// テーブルの初期化
	if err := migrate(conn.DB); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// CreateEntry は新しいエントリをデータベースに保存します。
func (s *SQLiteStore) CreateEntry(ctx context.Context, entry *model.Entry) error {
	// バリデーション
	if err := entry.Validate(); err != nil {
		return err
	}

	// 日時をRFC3339形式に統一して保存
	formattedTime := entry.Created.Format(time.RFC3339)

	result, err := s.conn.ExecContext(ctx,
		`INSERT INTO entries (title, text, created) VALUES (?, ?, ?)`,
		entry.Title, entry.Text, formattedTime,
	)
	if err != nil {
		return model.NewStorageError("insert entry", err)
	}

	// AUTOINCREMENTで採番されたIDを反映
	id, err := result.LastInsertId()
	if err != nil {
		return model.NewStorageError("insert entry", err)
	}
	entry.ID = id

	return nil
}

// GetEntry は指定されたIDのエントリを取得します。
func (s *SQLiteStore) GetEntry(ctx context.Context, id int64) (*model.Entry, error) {
	var row entryRow
	err := s.conn.GetContext(ctx, &row,
		`SELECT id, title, text, created FROM entries WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrEntryNotFound
	}
	if err != nil {
		return nil, model.NewStorageError("select entry by id", err)
	}

	return row.toEntry()
}

// ListEntries はすべてのエントリを作成日時の降順で取得します。
// 作成日時が同じエントリはIDの降順で並びます。
func (s *SQLiteStore) ListEntries(ctx context.Context) ([]*model.Entry, error) {
	var rows []entryRow
	err := s.conn.SelectContext(ctx, &rows,
		`SELECT id, title, text, created FROM entries ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, model.NewStorageError("select all entries", err)
	}

	// 結果の変換
	entries := make([]*model.Entry, 0, len(rows))
	for i := range rows {
		entry, err := rows[i].toEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// UpdateEntry は指定されたエントリのタイトルと本文を更新します。
// 作成日時は挿入後は不変のため、更新対象に含めません。
func (s *SQLiteStore) UpdateEntry(ctx context.Context, entry *model.Entry) error {
	// バリデーション
	if err := entry.Validate(); err != nil {
		return err
	}

	result, err := s.conn.ExecContext(ctx,
		`UPDATE entries SET title = ?, text = ? WHERE id = ?`,
		entry.Title, entry.Text, entry.ID,
	)
	if err != nil {
		return model.NewStorageError("update entry by id", err)
	}

	// 更新された行数を確認
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.NewStorageError("update entry by id", err)
	}

	// エントリが見つからない場合
	if rowsAffected == 0 {
		return model.ErrEntryNotFound
	}

	return nil
}

// DeleteEntry は指定されたIDのエントリを削除します。
// 既に存在しないIDを指定しても成功とみなします（冪等）。
func (s *SQLiteStore) DeleteEntry(ctx context.Context, id int64) error {
	_, err := s.conn.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return model.NewStorageError("delete entry by id", err)
	}
	return nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
