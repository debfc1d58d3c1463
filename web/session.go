// Package web はジャーナルのWebサーバー実装を提供します。
package web

import (
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

// セッションCookieの名前と保存キー
const (
	sessionName             = "journal-session"
	sessionKeyAuthenticated = "authenticated"
)

// newSessionStore は署名付きCookieによるセッションストアを作成します。
func newSessionStore(secret string) sessions.Store {
	cookieStore := sessions.NewCookieStore([]byte(secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return cookieStore
}

// isAuthenticated はリクエストのセッションが認証済みかどうかを返します。
// Cookieの署名検証に失敗した場合は未認証として扱います。
func (s *Server) isAuthenticated(r *http.Request) bool {
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil {
		return false
	}
	authenticated, _ := sess.Values[sessionKeyAuthenticated].(bool)
	return authenticated
}

// authenticate はユーザー名の一致とパスワードハッシュの照合を行います。
func (s *Server) authenticate(username, password string) bool {
	if username != s.config.AdminUser {
		return false
	}
	err := bcrypt.CompareHashAndPassword(
		[]byte(s.config.AdminPasswordHash), []byte(password))
	return err == nil
}

// signIn はセッションに認証状態を記録します。
func (s *Server) signIn(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.sessions.Get(r, sessionName)
	sess.Values[sessionKeyAuthenticated] = true
	return sess.Save(r, w)
}

// signOut はセッションを破棄します。
func (s *Server) signOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.sessions.Get(r, sessionName)
	delete(sess.Values, sessionKeyAuthenticated)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
