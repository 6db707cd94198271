// Package routeguard enforces that unauthenticated users only reach the
// login and registration screens.
package routeguard

import (
	"sync"

	"github.com/rs/zerolog"
)

// Screen identifies a client screen.
type Screen string

const (
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"
	ScreenTasks    Screen = "tasks"
	ScreenTask     Screen = "task"
)

// RequiresAuth reports whether the screen is part of the authenticated
// group.
func (s Screen) RequiresAuth() bool {
	switch s {
	case ScreenLogin, ScreenRegister:
		return false
	}
	return true
}

// Navigator performs a forced navigation. The view layer implements it.
type Navigator interface {
	Navigate(to Screen)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(to Screen)

func (f NavigatorFunc) Navigate(to Screen) { f(to) }

// State is the guard's two-state machine.
type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// Guard reacts to session-changed events and redirects between the
// authenticated and unauthenticated screen groups. Wire it to the session
// manager with OnSessionChanged before the manager restores, so the first
// notification drives the initial evaluation.
type Guard struct {
	mu      sync.Mutex
	nav     Navigator
	log     zerolog.Logger
	state   State
	current Screen
}

// New creates a guard starting at screen on the unauthenticated side.
func New(nav Navigator, start Screen, log zerolog.Logger) *Guard {
	return &Guard{
		nav:     nav,
		log:     log,
		state:   Unauthenticated,
		current: start,
	}
}

// OnSessionChanged is the session.Listener for this guard.
func (g *Guard) OnSessionChanged(_ string, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	next := Unauthenticated
	if ok {
		next = Authenticated
	}
	if next != g.state {
		g.log.Debug().
			Stringer("from", g.state).
			Stringer("to", next).
			Msg("session state changed")
	}
	g.state = next
	g.evaluateLocked()
}

// SetCurrent records a navigation performed by the view layer and
// re-evaluates. A navigation onto an authenticated-only screen while
// unauthenticated is immediately redirected.
func (g *Guard) SetCurrent(s Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.current = s
	g.evaluateLocked()
}

// Current returns the screen the user is on after any forced redirect.
func (g *Guard) Current() Screen {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// State returns the guard's session state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// evaluateLocked enforces the access rule: never leave the user on an
// authenticated-only screen while unauthenticated, and move a logged-in
// user off the login screens.
func (g *Guard) evaluateLocked() {
	switch {
	case g.state == Unauthenticated && g.current.RequiresAuth():
		g.log.Debug().Str("from", string(g.current)).Msg("redirecting to login")
		g.current = ScreenLogin
		g.nav.Navigate(ScreenLogin)
	case g.state == Authenticated && !g.current.RequiresAuth():
		g.current = ScreenTasks
		g.nav.Navigate(ScreenTasks)
	}
}
