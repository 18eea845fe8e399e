package handler

import (
	"net/http"

	"github.com/msomdec/carousel-admin/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux. Everything under
// /admin requires an authenticated session, and every mutation is a POST so
// the SameSite=Lax session cookie is not sent on cross-site requests.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, limiter *service.TokenBucket, carousel *service.CarouselService, cookieSecure bool) {
	authHandler := NewAuthHandler(auth, limiter, cookieSecure)
	adminHandler := NewAdminHandler(carousel)
	mediaHandler := NewMediaHandler(carousel)
	feedHandler := NewFeedHandler(carousel)

	protect := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(auth, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)
	mux.HandleFunc("GET /", HandleHome)

	mux.HandleFunc("GET /login", authHandler.HandleLoginPage)
	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("POST /logout", authHandler.HandleLogout)

	mux.Handle("GET /admin", protect(adminHandler.HandleAdmin))
	mux.Handle("POST /admin/upload", protect(adminHandler.HandleUpload))
	mux.Handle("POST /admin/remove", protect(adminHandler.HandleRemove))
	mux.Handle("POST /admin/items/{position}/delete", protect(adminHandler.HandleRemoveSSE))

	mux.HandleFunc("GET /uploads/{name}", mediaHandler.HandleServe)
	mux.HandleFunc("GET /api/carousel", feedHandler.HandleList)
}
