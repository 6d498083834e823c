package infra

import (
	"sync"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// LogoutReason tells subscribers why the session ended.
type LogoutReason string

const (
	ReasonLogout       LogoutReason = "logout"
	ReasonUnauthorized LogoutReason = "unauthorized"
	ReasonExpired      LogoutReason = "expired"
)

// SessionEvent is delivered to subscribers when an authenticated session ends.
type SessionEvent struct {
	Reason LogoutReason
	User   *model.Utilisateur
}

// Session is the operator's authenticated context: bearer token, user and
// permissions. It is handed to the backend client at construction; logging
// out is an explicit call that notifies subscribers.
type Session struct {
	mu          sync.RWMutex
	token       string
	expiresAt   time.Time
	user        *model.Utilisateur
	permissions []string
	loaded      bool

	subMu  sync.Mutex
	subs   map[int]func(SessionEvent)
	nextID int

	now func() time.Time
}

func NewSession() *Session {
	return &Session{subs: make(map[int]func(SessionEvent)), now: time.Now}
}

// Login stores the token and user. Permissions go back to loading until
// SetPermissions is called. The token's exp claim, when present, bounds the
// session; its signature is the backend's business, not ours.
func (s *Session) Login(token string, user *model.Utilisateur) {
	var exp time.Time
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if e, err := claims.GetExpirationTime(); err == nil && e != nil {
			exp = e.Time
		}
	}

	s.mu.Lock()
	s.token = token
	s.expiresAt = exp
	s.user = user
	s.permissions = nil
	s.loaded = false
	s.mu.Unlock()
}

// Token returns the bearer token, or "" when logged out. An expired token
// ends the session.
func (s *Session) Token() string {
	s.mu.RLock()
	token, exp := s.token, s.expiresAt
	s.mu.RUnlock()

	if token != "" && !exp.IsZero() && !s.now().Before(exp) {
		s.Logout(ReasonExpired)
		return ""
	}
	return token
}

func (s *Session) Authenticated() bool { return s.Token() != "" }

func (s *Session) User() *model.Utilisateur {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) SetPermissions(perms []string) {
	s.mu.Lock()
	s.permissions = append([]string(nil), perms...)
	s.loaded = true
	s.mu.Unlock()
}

// Gate snapshots the current permission list.
func (s *Session) Gate() permission.Gate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return permission.Loading()
	}
	return permission.NewGate(s.permissions)
}

// Logout clears the session. Subscribers are notified only when a session
// was actually open.
func (s *Session) Logout(reason LogoutReason) {
	s.mu.Lock()
	wasOpen := s.token != ""
	user := s.user
	s.token = ""
	s.expiresAt = time.Time{}
	s.user = nil
	s.permissions = nil
	s.loaded = false
	s.mu.Unlock()

	if !wasOpen {
		return
	}
	log.Info().Str("reason", string(reason)).Msg("session ended")

	s.subMu.Lock()
	subs := make([]func(SessionEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	ev := SessionEvent{Reason: reason, User: user}
	for _, fn := range subs {
		fn(ev)
	}
}

// Subscribe registers fn for logout events and returns its unsubscribe func.
func (s *Session) Subscribe(fn func(SessionEvent)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}
