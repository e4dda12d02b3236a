package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/leadform/backend/internal/metrics"
	"github.com/leadform/backend/internal/model"
	"github.com/leadform/backend/internal/service"
)

func newTestRouter(t *testing.T, contacts service.ContactService, limit int) (http.Handler, *RateLimiter) {
	t.Helper()
	sm := newTestSessions()
	rl := NewRateLimiter(limit)
	t.Cleanup(rl.Close)
	return NewRouter(Routes{
		Base:          New(&mockDB{}, "http://localhost:3000"),
		Contacts:      NewContactHandler(contacts),
		AdminAuth:     NewAdminAuthHandler(acceptAdmin(), sm),
		AdminContacts: NewAdminContactHandler(contacts),
		Sessions:      sm,
		Limiter:       rl,
		Metrics:       metrics.New().Handler(),
	}), rl
}

func TestRouter_AdminRoutesRequireSession(t *testing.T) {
	contacts := &mockContactService{
		listFunc: func(ctx context.Context, q service.ListQuery) (*model.ContactPage, error) {
			t.Fatal("service must not be reached without a session")
			return nil, nil
		},
		getFunc: func(ctx context.Context, id string) (*model.Contact, error) {
			t.Fatal("service must not be reached without a session")
			return nil, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status *string) (*model.Contact, error) {
			t.Fatal("service must not be reached without a session")
			return nil, nil
		},
	}
	router, _ := newTestRouter(t, contacts, 10)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/admin/contacts"},
		{http.MethodGet, "/admin/contacts/" + testContactID},
		{http.MethodPatch, "/admin/contacts/" + testContactID},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(`{"status":"read"}`))
		req.AddCookie(&http.Cookie{Name: "admin_session", Value: "forged"})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRouter_LoginThenList(t *testing.T) {
	var listed bool
	contacts := &mockContactService{
		listFunc: func(ctx context.Context, q service.ListQuery) (*model.ContactPage, error) {
			listed = true
			return &model.ContactPage{Contacts: []*model.Contact{}}, nil
		},
	}
	router, _ := newTestRouter(t, contacts, 10)

	req := httptest.NewRequest(http.MethodPost, "/admin/login",
		strings.NewReader(`{"email":"admin@example.com","password":"correct horse"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)

	req = httptest.NewRequest(http.MethodGet, "/admin/contacts?page=1", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	if !listed {
		t.Error("expected List to be called")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on routed responses")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Error("expected CORS headers on routed responses")
	}
}

func TestRouter_ContactIsRateLimited(t *testing.T) {
	router, _ := newTestRouter(t, &mockContactService{}, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{}`))
		req.RemoteAddr = "192.0.2.7:5555"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("expected 200, 200, 429, got %v", codes)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t, &mockContactService{}, 10)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("expected Go runtime metrics in exposition")
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	router, _ := newTestRouter(t, &mockContactService{}, 10)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/contacts/"+testContactID, nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}
