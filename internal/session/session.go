// Package session holds the in-process authentication state and keeps it
// in lockstep with the credential store.
package session

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"todocli/internal/credstore"
)

// ErrEmptyToken is returned by Login when the token is empty.
var ErrEmptyToken = errors.New("empty session token")

// Listener receives session-changed notifications. ok is false when the
// session transitioned to unauthenticated.
type Listener func(token string, ok bool)

// Manager owns the session. At most one session is active per process;
// holding a token means "authenticated". All transitions persist to the
// credential store before touching in-memory state, so the store and
// memory never diverge.
//
// The transition lock is held across persist, memory update, and
// notification: observers always see transitions in completion order, and
// the final state reflects the most recently completed transition even if
// a user-initiated Login races a client-forced Logout.
type Manager struct {
	mu        sync.Mutex
	store     credstore.Store
	log       zerolog.Logger
	token     string
	listeners []Listener
}

// NewManager creates a manager backed by store. The session starts
// unauthenticated; call Restore at process start.
func NewManager(store credstore.Store, log zerolog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
	}
}

// Subscribe registers a listener for session-changed notifications. Every
// completed transition notifies all listeners. Register subscribers before
// calling Restore so the first decision sees the restored state.
func (m *Manager) Subscribe(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Manager) notifyLocked() {
	ok := m.token != ""
	for _, l := range m.listeners {
		l(m.token, ok)
	}
}

// Login persists the token and activates the session. If persistence
// fails, in-memory state is left unchanged and the error is returned: an
// authenticated-in-memory-but-unpersisted session would silently vanish on
// restart.
func (m *Manager) Login(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Save(token); err != nil {
		m.log.Error().Err(err).Msg("failed to persist session token")
		return err
	}
	m.token = token
	m.log.Debug().Msg("session opened")
	m.notifyLocked()
	return nil
}

// Logout clears the credential store and deactivates the session. Calling
// Logout while already logged out is a no-op success.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return nil
	}
	if err := m.store.Clear(); err != nil {
		m.log.Error().Err(err).Msg("failed to clear session token")
		return err
	}
	m.token = ""
	m.log.Debug().Msg("session closed")
	m.notifyLocked()
	return nil
}

// Restore loads a previously persisted token at process start. A storage
// failure leaves the session unauthenticated (fail closed) and is
// reported. The session-changed notification fires either way so the
// route guard can make its first decision.
func (m *Manager) Restore() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, ok, err := m.store.Load()
	if err != nil {
		m.log.Warn().Err(err).Msg("credential store unavailable, treating as logged out")
		m.token = ""
		m.notifyLocked()
		return err
	}
	if ok {
		m.token = token
	} else {
		m.token = ""
	}
	m.notifyLocked()
	return nil
}

// Token returns the current session token. ok is false when no session is
// active.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	_, ok := m.Token()
	return ok
}

// Invalidate is called by the API client when the server rejects the held
// token. The token is unusable, so the session is closed; the store clear
// failing still drops the in-memory token to keep both sides agreeing
// that the session is gone.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return
	}
	if err := m.store.Clear(); err != nil {
		m.log.Error().Err(err).Msg("failed to clear rejected token")
	}
	m.token = ""
	m.log.Debug().Msg("session invalidated by server")
	m.notifyLocked()
}
