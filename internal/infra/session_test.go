package infra

import (
	"testing"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/model"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return s
}

func TestSession_LoginLogoutNotifies(t *testing.T) {
	s := NewSession()
	var events []SessionEvent
	unsub := s.Subscribe(func(ev SessionEvent) { events = append(events, ev) })

	s.Login("opaque-token", &model.Utilisateur{ID: 3, Login: "marie"})
	assert.True(t, s.Authenticated())
	assert.Equal(t, "opaque-token", s.Token())

	s.Logout(ReasonLogout)
	assert.False(t, s.Authenticated())
	assert.Nil(t, s.User())
	require.Len(t, events, 1)
	assert.Equal(t, ReasonLogout, events[0].Reason)
	assert.Equal(t, "marie", events[0].User.Login)

	// A second logout has nothing to end.
	s.Logout(ReasonLogout)
	assert.Len(t, events, 1)

	unsub()
	s.Login("t", nil)
	s.Logout(ReasonLogout)
	assert.Len(t, events, 1)
}

func TestSession_PermissionsLoading(t *testing.T) {
	s := NewSession()
	s.Login("t", nil)
	assert.Equal(t, permission.Unknown, s.Gate().Check(permission.CaisseVendre))

	s.SetPermissions([]string{"caisse.*"})
	assert.Equal(t, permission.Granted, s.Gate().Check(permission.CaisseVendre))
	assert.Equal(t, permission.Denied, s.Gate().Check(permission.StockVoir))

	// A new login reloads permissions.
	s.Login("t2", nil)
	assert.False(t, s.Gate().Loaded())
}

func TestSession_ExpiredTokenEndsSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession()
	s.now = func() time.Time { return now }

	var reason LogoutReason
	s.Subscribe(func(ev SessionEvent) { reason = ev.Reason })

	token := signedToken(t, now.Add(time.Hour))
	s.Login(token, nil)
	assert.Equal(t, token, s.Token())

	now = now.Add(2 * time.Hour)
	assert.Empty(t, s.Token())
	assert.Equal(t, ReasonExpired, reason)
}
