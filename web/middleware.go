// Package web はジャーナルのWebサーバー実装を提供します。
package web

import (
	"net/http"

	"journal/model"
)

// requireAuth は変更系エンドポイントの認証を行うミドルウェアです。
// 未認証のリクエストはストアに到達する前に拒否されます。
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.authorize(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		// 認証成功：次のハンドラーを呼び出し
		next.ServeHTTP(w, r)
	})
}

// authorize は呼び出し元が認証済みであることを確認します。
func (s *Server) authorize(r *http.Request) error {
	if !s.isAuthenticated(r) {
		return model.ErrUnauthorized
	}
	return nil
}
