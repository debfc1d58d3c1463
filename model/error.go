// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"errors"
	"fmt"
)

// センチネルエラー
var (
	// ErrEntryNotFound は指定されたIDのエントリが存在しない場合のエラーです。
	ErrEntryNotFound = errors.New("entry not found")
	// ErrUnauthorized は未認証の呼び出し元が変更系の操作を試みた場合のエラーです。
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError はバリデーションエラーを表す型
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// StorageError はバッキングストアの接続・実行エラーを表す型
type StorageError struct {
	Op  string // 失敗した操作（例: "insert entry"）
	Err error  // ドライバから返された元のエラー
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

// Unwrap は元のエラーを返します。
func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError はStorageErrorを生成するヘルパー関数
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
