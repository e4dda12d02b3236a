package handler

import (
	"net/http"

	"github.com/leadform/backend/pkg/auth"
)

// Routes bundles the handlers mounted by NewRouter.
type Routes struct {
	Base          *Handler
	Contacts      *ContactHandler
	AdminAuth     *AdminAuthHandler
	AdminContacts *AdminContactHandler
	Sessions      *auth.SessionManager
	// Limiter guards the public POST endpoints; nil disables limiting.
	Limiter *RateLimiter
	// Metrics is served on /metrics when set.
	Metrics http.Handler
}

// NewRouter registers every route and wraps the mux in the global
// middleware chain: RequestLogger, SecurityHeaders, CORS.
func NewRouter(rt Routes) http.Handler {
	limit := func(next http.Handler) http.Handler {
		if rt.Limiter == nil {
			return next
		}
		return rt.Limiter.Middleware(next)
	}
	gated := auth.RequireAuth(rt.Sessions)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", rt.Base.Health)
	if rt.Metrics != nil {
		mux.Handle("GET /metrics", rt.Metrics)
	}

	mux.Handle("POST /contact", limit(http.HandlerFunc(rt.Contacts.Submit)))

	mux.Handle("POST /admin/login", limit(http.HandlerFunc(rt.AdminAuth.Login)))
	mux.HandleFunc("POST /admin/logout", rt.AdminAuth.Logout)
	mux.HandleFunc("GET /admin/me", rt.AdminAuth.Me)

	mux.Handle("GET /admin/contacts", gated(http.HandlerFunc(rt.AdminContacts.List)))
	mux.Handle("GET /admin/contacts/{id}", gated(http.HandlerFunc(rt.AdminContacts.Get)))
	mux.Handle("PATCH /admin/contacts/{id}", gated(http.HandlerFunc(rt.AdminContacts.Patch)))

	return RequestLogger(SecurityHeaders(rt.Base.CORS(mux)))
}
