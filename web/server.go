// Package web はジャーナルのWebサーバー実装を提供します。
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/sessions"

	"journal/config"
	"journal/model"
	"journal/store"
	"journal/view"
)

// Server はWebサーバーの構造体です。
type Server struct {
	router    *http.ServeMux
	store     store.EntryStore
	renderer  *view.Renderer
	sessions  sessions.Store
	templates map[string]*template.Template
	config    *config.Config
}

// NewServer は新しいWebサーバーインスタンスを生成します。
func NewServer(entryStore store.EntryStore, cfg *config.Config) *Server {
	s := &Server{
		router:    http.NewServeMux(),
		store:     entryStore,
		renderer:  view.NewRenderer(),
		sessions:  newSessionStore(cfg.SessionSecret),
		templates: parseTemplates(),
		config:    cfg,
	}
	s.routes()
	return s
}

// routes はエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// 閲覧系エンドポイントは認証不要
	s.router.HandleFunc("GET /{$}", s.handleHome)
	s.router.HandleFunc("GET /details/{id}", s.handleDetail)
	s.router.HandleFunc("GET /login", s.handleLoginForm)
	s.router.HandleFunc("POST /login", s.handleLogin)
	s.router.HandleFunc("POST /logout", s.handleLogout)

	// 変更系エンドポイントには認証ミドルウェアを適用
	s.router.Handle("POST /add", s.requireAuth(http.HandlerFunc(s.handleAdd)))
	s.router.Handle("GET /editor/{id}", s.requireAuth(http.HandlerFunc(s.handleEditorForm)))
	s.router.Handle("POST /editor/{id}", s.requireAuth(http.HandlerFunc(s.handleEditorSubmit)))
	s.router.Handle("POST /delete/{id}", s.requireAuth(http.HandlerFunc(s.handleDelete)))
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// EntryIDParams represents parameters for operations on a single entry.
type EntryIDParams struct {
	EntryID int64
}

// NewEntryIDParams creates parameters from the {id} path value.
func NewEntryIDParams(r *http.Request) (*EntryIDParams, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid entry id")
	}
	return &EntryIDParams{EntryID: id}, nil
}

// EntryFormParams represents the submitted entry form fields.
type EntryFormParams struct {
	Title string
	Text  string
}

// NewEntryFormParams creates parameters from a submitted entry form.
func NewEntryFormParams(r *http.Request) (*EntryFormParams, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form data: %w", err)
	}
	return &EntryFormParams{
		Title: r.PostFormValue("title"),
		Text:  r.PostFormValue("text"),
	}, nil
}

// homeData はホームページの描画データです。
type homeData struct {
	Authenticated bool
	Entries       []view.EntryView
	Error         string
}

// handleHome はエントリ一覧ページのハンドラーです。
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderHome(w, r, "", http.StatusOK)
}

// renderHome はエントリ一覧ページを描画します。
// フォームエラーの再表示のため、エラーメッセージとステータスを指定できます。
func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, errorMsg string, status int) {
	// エントリの取得
	entries, err := s.store.ListEntries(r.Context())
	if err != nil {
		log.Printf("Error retrieving entries: %v", err)
		http.Error(w, "Failed to retrieve entries", http.StatusInternalServerError)
		return
	}

	// 表示用データへの変換
	authenticated := s.isAuthenticated(r)
	views, err := s.renderer.PresentList(entries, authenticated)
	if err != nil {
		log.Printf("Error presenting entries: %v", err)
		http.Error(w, "Failed to render entries", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, status, "home", homeData{
		Authenticated: authenticated,
		Entries:       views,
		Error:         errorMsg,
	})
}

// detailData は詳細ページの描画データです。
type detailData struct {
	Authenticated bool
	Entry         view.EntryView
}

// handleDetail は特定のIDのエントリの詳細ページのハンドラーです。
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewEntryIDParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// エントリの取得
	entry, err := s.store.GetEntry(r.Context(), params.EntryID)
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			http.Error(w, "Entry not found", http.StatusNotFound)
		} else {
			log.Printf("Error retrieving entry: %v", err)
			http.Error(w, "Failed to retrieve entry", http.StatusInternalServerError)
		}
		return
	}

	// 表示用データへの変換
	authenticated := s.isAuthenticated(r)
	entryView, err := s.renderer.PresentDetail(entry, authenticated)
	if err != nil {
		log.Printf("Error presenting entry: %v", err)
		http.Error(w, "Failed to render entry", http.StatusInternalServerError)
		return
	}

	s.renderPage(w, http.StatusOK, "detail", detailData{
		Authenticated: authenticated,
		Entry:         entryView,
	})
}

// handleAdd は新しいエントリを作成するハンドラーです。
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewEntryFormParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 新しいエントリの作成
	entry, err := model.NewEntry(params.Title, params.Text)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			// バリデーションエラーの場合はフォームを再表示する
			s.renderHome(w, r, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error creating entry: %v", err)
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	// エントリの保存
	if err := s.store.CreateEntry(r.Context(), entry); err != nil {
		log.Printf("Error creating entry: %v", err)
		http.Error(w, "Failed to create entry", http.StatusInternalServerError)
		return
	}

	// XHRからの投稿には作成されたエントリをJSONで返す
	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			log.Printf("Error encoding response: %v", err)
		}
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// editorData は編集ページの描画データです。
type editorData struct {
	Authenticated bool
	Entry         *model.Entry
	Error         string
}

// handleEditorForm はエントリの編集フォームを表示するハンドラーです。
func (s *Server) handleEditorForm(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewEntryIDParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// エントリの取得
	entry, err := s.store.GetEntry(r.Context(), params.EntryID)
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			http.Error(w, "Entry not found", http.StatusNotFound)
		} else {
			log.Printf("Error retrieving entry: %v", err)
			http.Error(w, "Failed to retrieve entry", http.StatusInternalServerError)
		}
		return
	}

	// フォームにはMarkdownの原文をそのまま表示する
	s.renderPage(w, http.StatusOK, "editor", editorData{
		Authenticated: true,
		Entry:         entry,
	})
}

// handleEditorSubmit はエントリを更新するハンドラーです。
func (s *Server) handleEditorSubmit(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	idParams, err := NewEntryIDParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	formParams, err := NewEntryFormParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// 更新前にエントリが存在するか確認
	entry, err := s.store.GetEntry(r.Context(), idParams.EntryID)
	if err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			http.Error(w, "Entry not found", http.StatusNotFound)
		} else {
			log.Printf("Error retrieving entry: %v", err)
			http.Error(w, "Failed to retrieve entry", http.StatusInternalServerError)
		}
		return
	}

	// タイトルと本文のみ更新する（作成日時は変更しない）
	entry.Title = formParams.Title
	entry.Text = formParams.Text

	if err := s.store.UpdateEntry(r.Context(), entry); err != nil {
		if errors.Is(err, model.ErrEntryNotFound) {
			http.Error(w, "Entry not found", http.StatusNotFound)
			return
		}
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			// バリデーションエラーの場合はフォームを再表示する
			s.renderPage(w, http.StatusBadRequest, "editor", editorData{
				Authenticated: true,
				Entry:         entry,
				Error:         err.Error(),
			})
			return
		}
		log.Printf("Error updating entry: %v", err)
		http.Error(w, "Failed to update entry", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/details/%d", entry.ID), http.StatusSeeOther)
}

// handleDelete はエントリを削除するハンドラーです。
// 既に存在しないIDを指定しても成功とみなします（冪等）。
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewEntryIDParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// エントリの削除
	if err := s.store.DeleteEntry(r.Context(), params.EntryID); err != nil {
		log.Printf("Error deleting entry: %v", err)
		http.Error(w, "Failed to delete entry", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loginData はログインページの描画データです。
type loginData struct {
	Authenticated bool
	Error         string
}

// handleLoginForm はログインフォームを表示するハンドラーです。
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, "login", loginData{})
}

// handleLogin はログインを処理するハンドラーです。
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	// 認証に失敗した場合はエラーメッセージ付きでフォームを再表示する
	if !s.authenticate(username, password) {
		s.renderPage(w, http.StatusUnauthorized, "login", loginData{
			Error: "Invalid username or password",
		})
		return
	}

	// セッションに認証状態を保存
	if err := s.signIn(w, r); err != nil {
		log.Printf("Error saving session: %v", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout はログアウトを処理するハンドラーです。
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.signOut(w, r); err != nil {
		log.Printf("Error clearing session: %v", err)
		http.Error(w, "Failed to clear session", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// wantsJSON はフロントエンドからのXHRリクエストかどうかを判定します。
func wantsJSON(r *http.Request) bool {
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// Run はサーバーを指定されたアドレスで起動します。
func (s *Server) Run(addr string) error {
	log.Printf("Server starting on %s", addr)
	return http.ListenAndServe(addr, s)
}
