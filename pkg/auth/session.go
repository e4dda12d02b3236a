package auth

import (
	"crypto/sha256"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	sessionCookieName = "admin_session"
	loggedInKey       = "logged_in"
	emailKey          = "email"
)

// SessionDuration is how long an admin session stays valid after login.
const SessionDuration = 24 * time.Hour

// MinSecretLen is the shortest SESSION_SECRET accepted in production.
const MinSecretLen = 32

// SessionCookieName returns the name of the admin session cookie.
func SessionCookieName() string {
	return sessionCookieName
}

// SessionData is the payload sealed into the admin session cookie.
type SessionData struct {
	LoggedIn bool
	Email    string
}

// SessionManager seals admin sessions into an encrypted, signed cookie.
// Nothing is stored server-side; rotating the secret invalidates every
// outstanding session.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager derives the signing and encryption keys from secret.
// secure controls the cookie Secure flag.
func NewSessionManager(secret []byte, secure bool) *SessionManager {
	hashKey, blockKey := deriveKeys(secret)
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	// Sets both the cookie Max-Age and the timestamp check done on decode.
	store.MaxAge(int(SessionDuration / time.Second))
	return &SessionManager{store: store}
}

// deriveKeys expands secret into a 64-byte HMAC key and a 32-byte AES key.
func deriveKeys(secret []byte) (hashKey, blockKey []byte) {
	r := hkdf.New(sha256.New, secret, nil, []byte("leadform admin session v1"))
	hashKey = make([]byte, 64)
	blockKey = make([]byte, 32)
	_, _ = io.ReadFull(r, hashKey)
	_, _ = io.ReadFull(r, blockKey)
	return hashKey, blockKey
}

// CreateSession writes a fresh session cookie for email.
func (m *SessionManager) CreateSession(w http.ResponseWriter, r *http.Request, email string) error {
	// New ignores whatever cookie the request carried.
	s, _ := m.store.New(r, sessionCookieName)
	s.Values[loggedInKey] = true
	s.Values[emailKey] = email
	return s.Save(r, w)
}

// ReadSession returns the session carried by r. Missing, expired, tampered
// or otherwise undecodable cookies all report false.
func (m *SessionManager) ReadSession(r *http.Request) (*SessionData, bool) {
	s, err := m.store.Get(r, sessionCookieName)
	if err != nil {
		var cerr securecookie.Error
		if errors.As(err, &cerr) && cerr.IsDecode() {
			slog.Debug("admin session cookie rejected", "error", err)
		}
		return nil, false
	}
	if s.IsNew {
		return nil, false
	}
	loggedIn, _ := s.Values[loggedInKey].(bool)
	if !loggedIn {
		return nil, false
	}
	email, _ := s.Values[emailKey].(string)
	return &SessionData{LoggedIn: true, Email: email}, true
}

// DestroySession expires the session cookie on the client.
func (m *SessionManager) DestroySession(w http.ResponseWriter) {
	opts := *m.store.Options
	opts.MaxAge = -1
	http.SetCookie(w, sessions.NewCookie(sessionCookieName, "", &opts))
}
