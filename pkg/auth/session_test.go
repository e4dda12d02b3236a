package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

// loginCookie creates a session for email and returns the resulting cookie.
func loginCookie(t *testing.T, sm *SessionManager, email string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	if err := sm.CreateSession(rec, req, email); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName() {
			return c
		}
	}
	t.Fatal("no session cookie written")
	return nil
}

func TestSessionManager_RoundTrip(t *testing.T) {
	sm := NewSessionManager([]byte(testSecret), false)
	cookie := loginCookie(t, sm, "admin@example.com")

	req := httptest.NewRequest(http.MethodGet, "/admin/me", nil)
	req.AddCookie(cookie)
	s, ok := sm.ReadSession(req)
	if !ok {
		t.Fatal("expected a valid session")
	}
	if !s.LoggedIn || s.Email != "admin@example.com" {
		t.Errorf("unexpected session: %+v", s)
	}
}

func TestSessionManager_CookieAttributes(t *testing.T) {
	sm := NewSessionManager([]byte(testSecret), true)
	cookie := loginCookie(t, sm, "admin@example.com")

	if !cookie.HttpOnly {
		t.Error("expected HttpOnly")
	}
	if !cookie.Secure {
		t.Error("expected Secure when configured")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite=Lax, got %v", cookie.SameSite)
	}
	if cookie.MaxAge != 86400 {
		t.Errorf("expected Max-Age=86400, got %d", cookie.MaxAge)
	}
	if cookie.Path != "/" {
		t.Errorf("expected Path=/, got %q", cookie.Path)
	}
}

func TestSessionManager_PayloadIsNotReadable(t *testing.T) {
	sm := NewSessionManager([]byte(testSecret), false)
	cookie := loginCookie(t, sm, "admin@example.com")

	if strings.Contains(cookie.Value, "admin@example.com") {
		t.Error("cookie value must not contain the plaintext email")
	}
}

func TestSessionManager_NoCookie(t *testing.T) {
	sm := NewSessionManager([]byte(testSecret), false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := sm.ReadSession(req); ok {
		t.Error("expected no session without a cookie")
	}
}

func TestSessionManager_TamperedCookie(t *testing.T) {
	sm := NewSessionManager([]byte(testSecret), false)
	cookie := loginCookie(t, sm, "admin@example.com")

	b := []byte(cookie.Value)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: string(b)})
	if _, ok := sm.ReadSession(req); ok {
		t.Error("expected tampered cookie to be rejected")
	}
}

func TestSessionManager_GarbageCookie(t *testing.T) {
	sm := NewSessionManager([]byte(testSecret), false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: "not-a-session"})
	if _, ok := sm.ReadSession(req); ok {
		t.Error("expected garbage cookie to be rejected")
	}
}

func TestSessionManager_RotatedSecretInvalidates(t *testing.T) {
	old := NewSessionManager([]byte(testSecret), false)
	cookie := loginCookie(t, old, "admin@example.com")

	rotated := NewSessionManager([]byte("another-secret-of-at-least-32-bytes"), false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if _, ok := rotated.ReadSession(req); ok {
		t.Error("expected session sealed with the old secret to be rejected")
	}
}

func TestSessionManager_DestroySession(t *testing.T) {
	sm := NewSessionManager([]byte(testSecret), false)

	rec := httptest.NewRecorder()
	sm.DestroySession(rec)

	var cleared *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName() {
			cleared = c
		}
	}
	if cleared == nil {
		t.Fatal("expected a clearing cookie")
	}
	if cleared.MaxAge >= 0 {
		t.Errorf("expected negative Max-Age, got %d", cleared.MaxAge)
	}
	if cleared.Value != "" {
		t.Errorf("expected empty value, got %q", cleared.Value)
	}
}

// expiringManager returns a manager whose sessions expire after one second,
// together with a cookie it issued that has already outlived that window.
func expiringManager(t *testing.T) (*SessionManager, *http.Cookie) {
	t.Helper()
	sm := NewSessionManager([]byte(testSecret), false)
	sm.store.MaxAge(1)
	cookie := loginCookie(t, sm, "admin@example.com")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if _, ok := sm.ReadSession(req); !ok {
		t.Fatal("expected fresh cookie to be accepted")
	}

	// The embedded timestamp has one-second resolution and must be more
	// than MaxAge seconds old.
	time.Sleep(2500 * time.Millisecond)
	return sm, cookie
}

func TestSessionManager_ExpiredCookie(t *testing.T) {
	sm, cookie := expiringManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	if _, ok := sm.ReadSession(req); ok {
		t.Error("expected expired session to be rejected")
	}
}
