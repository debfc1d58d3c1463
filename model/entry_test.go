package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewEntry(t *testing.T) {
	// エントリを生成
	entry, err := NewEntry("Test Title", "Test Text")
	if err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	// IDはDB採番前なので0のまま
	if entry.ID != 0 {
		t.Errorf("Expected ID to be 0 before insert, got %d", entry.ID)
	}

	// 各フィールドが正しく設定されていることを確認
	if entry.Title != "Test Title" {
		t.Errorf("Expected Title to be %q, got %q", "Test Title", entry.Title)
	}
	if entry.Text != "Test Text" {
		t.Errorf("Expected Text to be %q, got %q", "Test Text", entry.Text)
	}

	// 作成日時が設定されていることを確認
	if entry.Created.IsZero() {
		t.Error("Expected Created to be set, got zero time")
	}
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		text    string
		wantErr bool
	}{
		{name: "valid entry", title: "Test Title", text: "Test Text", wantErr: false},
		{name: "empty title", title: "", text: "Test Text", wantErr: true},
		{name: "empty text", title: "Test Title", text: "", wantErr: true},
		{name: "title at limit", title: strings.Repeat("a", TitleMaxLength), text: "Test Text", wantErr: false},
		{name: "title too long", title: strings.Repeat("a", TitleMaxLength+1), text: "Test Text", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEntry(tc.title, tc.text)
			if tc.wantErr {
				if err == nil {
					t.Fatal("Expected validation error, got nil")
				}
				// ValidationError型であることを確認
				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Errorf("Expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
		})
	}
}

func TestLoadEntry(t *testing.T) {
	created := time.Date(2025, 5, 21, 14, 30, 0, 0, time.Local)

	// 有効なエントリ
	entry, err := LoadEntry(1, "Test Title", "Test Text", created)
	if err != nil {
		t.Fatalf("Failed to load valid entry: %v", err)
	}
	if entry.ID != 1 {
		t.Errorf("Expected ID to be 1, got %d", entry.ID)
	}
	if !entry.Created.Equal(created) {
		t.Errorf("Expected Created to be %v, got %v", created, entry.Created)
	}

	// 無効なエントリ（IDが0）
	if _, err := LoadEntry(0, "Test Title", "Test Text", created); err == nil {
		t.Error("Expected error for zero ID, got nil")
	}

	// 無効なエントリ（作成日時がゼロ値）
	if _, err := LoadEntry(1, "Test Title", "Test Text", time.Time{}); err == nil {
		t.Error("Expected error for zero created time, got nil")
	}
}
