// Package view は、保存されたエントリを表示用データへ変換する機能を提供します。
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"journal/model"
)

// createdFormat はエントリの作成日時の表示形式です。
const createdFormat = "Jan 2, 2006"

// EntryView は1件のエントリの表示用データです。
type EntryView struct {
	ID               int64
	Title            string
	Body             template.HTML // Markdownから変換済みのHTML本文
	Created          string        // 表示用に整形した作成日時
	ShowEditControls bool          // 編集・削除ボタンを表示するかどうか
}

// Renderer はMarkdown本文をHTMLへ変換するレンダラーです。
// フェンス付きコードブロックとシンタックスハイライトに対応します。
// 変換結果のサニタイズは行いません。
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer は新しいRendererを作成します。
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				highlighting.NewHighlighting(
					highlighting.WithStyle("friendly"),
					highlighting.WithFormatOptions(
						chromahtml.WithClasses(true),
					),
				),
			),
		),
	}
}

// RenderBody はMarkdownの本文をHTMLへ変換します。
// 同じ入力に対しては常に同じ出力を返します。
func (r *Renderer) RenderBody(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// PresentDetail は1件のエントリを表示用データへ変換します。
// entryがnilの場合は呼び出し側の契約違反です。
func (r *Renderer) PresentDetail(entry *model.Entry, isAuthenticated bool) (EntryView, error) {
	body, err := r.RenderBody(entry.Text)
	if err != nil {
		return EntryView{}, err
	}
	return EntryView{
		ID:               entry.ID,
		Title:            entry.Title,
		Body:             body,
		Created:          formatCreated(entry.Created),
		ShowEditControls: isAuthenticated,
	}, nil
}

// PresentList はエントリの一覧を表示用データへ変換します。
// 渡された並び順をそのまま維持します。
func (r *Renderer) PresentList(entries []*model.Entry, isAuthenticated bool) ([]EntryView, error) {
	views := make([]EntryView, 0, len(entries))
	for _, entry := range entries {
		view, err := r.PresentDetail(entry, isAuthenticated)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// formatCreated は作成日時を表示用の文字列へ整形します。
func formatCreated(created time.Time) string {
	return created.Local().Format(createdFormat)
}
