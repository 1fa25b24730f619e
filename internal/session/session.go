// Package session holds the authenticated identity for logged-in staff.
// A session is created at login, read on every guarded request and
// destroyed at logout.  Persistence goes through the Store interface so
// production can use Redis while tests run against process memory.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/iliyamo/cinema-admin-api/internal/model"
)

// ErrNoSession is returned when no live session exists for an id.
var ErrNoSession = errors.New("no active session")

// Store is the persistence adapter for sessions.
type Store interface {
	Save(ctx context.Context, id string, data []byte, ttl time.Duration) error
	Load(ctx context.Context, id string) ([]byte, error)
	Delete(ctx context.Context, id string) error
}

// persisted is the stored session shape.  The credential field holds
// the base64-encoded content-store token.  The encoding is reversible
// and exists only to keep the raw bearer token out of plain sight; it
// is NOT encryption and must never be treated as a security boundary.
type persisted struct {
	Email      string `json:"email"`
	Role       string `json:"role"`
	Credential string `json:"credential,omitempty"`
}

// EncodeCredential base64-encodes a raw bearer token for storage.
func EncodeCredential(raw string) string {
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeCredential reverses EncodeCredential.
func DecodeCredential(enc string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Manager issues, reads and destroys sessions against a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager builds a Manager persisting through the given store.
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Create persists a new session and returns its generated id.  The
// credential invariant is enforced here: only admin sessions may carry
// one, anything else is stripped before persisting.
func (m *Manager) Create(ctx context.Context, s model.Session) (string, error) {
	if !s.IsAdmin() {
		s.Credential = ""
	}
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	p := persisted{Email: s.Email, Role: s.Role}
	if s.Credential != "" {
		p.Credential = EncodeCredential(s.Credential)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	if err := m.store.Save(ctx, id, data, m.ttl); err != nil {
		return "", err
	}
	return id, nil
}

// Current loads the session for an id, decoding the credential.  It
// performs no network call beyond the store read.
func (m *Manager) Current(ctx context.Context, id string) (model.Session, error) {
	data, err := m.store.Load(ctx, id)
	if err != nil {
		return model.Session{}, err
	}
	var p persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Session{}, err
	}
	s := model.Session{Email: p.Email, Role: p.Role}
	if p.Credential != "" {
		cred, err := DecodeCredential(p.Credential)
		if err != nil {
			return model.Session{}, err
		}
		s.Credential = cred
	}
	return s, nil
}

// Destroy deletes the persisted session.  Destroying an id with no
// session is not an error.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	err := m.store.Delete(ctx, id)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	return err
}

func newSessionID() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
