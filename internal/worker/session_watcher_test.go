package worker

import (
	"context"
	"testing"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenExpirant(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).
		SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

func TestSessionWatcher_LogsOutExpiredToken(t *testing.T) {
	session := infra.NewSession()
	events := make(chan infra.SessionEvent, 1)
	session.Subscribe(func(ev infra.SessionEvent) { events <- ev })
	session.Login(tokenExpirant(t, time.Now().Add(-time.Minute)), &model.Utilisateur{ID: 1, Login: "caissier"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartSessionWatcher(ctx, session, 10*time.Millisecond)

	select {
	case ev := <-events:
		assert.Equal(t, infra.ReasonExpired, ev.Reason)
		assert.Equal(t, "caissier", ev.User.Login)
	case <-time.After(2 * time.Second):
		t.Fatal("expired session was not logged out")
	}
	assert.False(t, session.Authenticated())
}

func TestSessionWatcher_KeepsValidToken(t *testing.T) {
	session := infra.NewSession()
	session.Login(tokenExpirant(t, time.Now().Add(time.Hour)), &model.Utilisateur{ID: 1})

	ctx, cancel := context.WithCancel(context.Background())
	StartSessionWatcher(ctx, session, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	assert.True(t, session.Authenticated())
}
