// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"time"
	"unicode/utf8"
)

// TitleMaxLength はエントリタイトルの最大文字数です。
const TitleMaxLength = 127

// Entry は日記の1件の投稿を表すモデルです。
type Entry struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`   // タイトル
	Text    string    `json:"text"`    // Markdown形式の本文（HTMLではなく原文を保持する）
	Created time.Time `json:"created"` // 作成日時（編集しても変更されない）
}

// NewEntry はEntryの新しいインスタンスを作成します。
// IDはデータベース側のAUTOINCREMENTで採番されるため、0を設定します。
func NewEntry(title, text string) (*Entry, error) {
	e := &Entry{
		ID:      0,
		Title:   title,
		Text:    text,
		Created: time.Now(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadEntry は既存のEntryインスタンスを作成します。
func LoadEntry(id int64, title, text string, created time.Time) (*Entry, error) {
	// LoadEntryはDBから読み込んだエントリ用なので、IDは必須
	if id <= 0 {
		return nil, NewValidationError("id is required for loaded entry")
	}
	e := &Entry{
		ID:      id,
		Title:   title,
		Text:    text,
		Created: created,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate はエントリのデータバリデーションを行います。
func (e *Entry) Validate() error {
	if e.Title == "" {
		return NewValidationError("title is required")
	}
	if utf8.RuneCountInString(e.Title) > TitleMaxLength {
		return NewValidationError("title must be 127 characters or fewer")
	}
	if e.Text == "" {
		return NewValidationError("text is required")
	}
	if e.Created.IsZero() {
		return NewValidationError("created is required")
	}
	return nil
}
