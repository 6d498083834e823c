package infra

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendClient_AttachesBearerToken(t *testing.T) {
	var auth, query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		query = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]string{"nom": "Bière"})
	}))
	defer srv.Close()

	session := NewSession()
	c := NewBackendClient(srv.URL+"/", 0, session)

	var out struct{ Nom string }
	require.NoError(t, c.Get(context.Background(), "/produits/1", nil, &out))
	assert.Empty(t, auth, "no header without a session")
	assert.Equal(t, "Bière", out.Nom)

	session.Login("abc", nil)
	require.NoError(t, c.Get(context.Background(), "/produits", url.Values{"q": {"bi"}}, &out))
	assert.Equal(t, "Bearer abc", auth)
	assert.Equal(t, "q=bi", query)
}

func TestBackendClient_UnauthorizedEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Token expiré"})
	}))
	defer srv.Close()

	session := NewSession()
	session.Login("abc", nil)
	var got LogoutReason
	session.Subscribe(func(ev SessionEvent) { got = ev.Reason })

	err := NewBackendClient(srv.URL, 0, session).Post(context.Background(), "/transactions", map[string]int{"a": 1}, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "Token expiré", err.Error())
	assert.False(t, session.Authenticated())
	assert.Equal(t, ReasonUnauthorized, got)
}

func TestBackendClient_PrefersServerMessage(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"message":"Stock insuffisant"}`, "Stock insuffisant"},
		{`{"detail":"Session fermée"}`, "Session fermée"},
		{`{"error":"Introuvable"}`, "Introuvable"},
		{`{"message":"  "}`, MessageGenerique},
		{`<html>oops</html>`, MessageGenerique},
		{``, MessageGenerique},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(tc.body))
		}))

		err := NewBackendClient(srv.URL, 0, NewSession()).Get(context.Background(), "/x", nil, nil)
		srv.Close()

		var berr *BackendError
		require.ErrorAs(t, err, &berr, tc.body)
		assert.Equal(t, http.StatusBadRequest, berr.Status)
		assert.Equal(t, tc.want, berr.Message, tc.body)
		assert.False(t, errors.Is(err, ErrUnauthorized))
	}
}

func TestBackendClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	err := NewBackendClient(srv.URL, 0, NewSession()).Get(context.Background(), "/x", nil, nil)

	var berr *BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, 0, berr.Status)
	assert.Equal(t, MessageGenerique, berr.Message)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestBackendClient_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write([]byte("PK\x03\x04"))
	}))
	defer srv.Close()

	data, ct, err := NewBackendClient(srv.URL, 0, NewSession()).Download(context.Background(), "/comptabilite/bilan/export", nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK\x03\x04"), data)
	assert.Contains(t, ct, "spreadsheetml")
}

func TestBackendClient_CircuitOpensOnOutage(t *testing.T) {
	var appels atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		appels.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, 0, NewSession())
	for i := 0; i < DefaultCBConfig().FailureThreshold; i++ {
		require.Error(t, c.Get(context.Background(), "/produits", nil, nil))
	}
	assert.Equal(t, CBOpen, c.BreakerState())

	err := c.Get(context.Background(), "/produits", nil, nil)
	var berr *BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, MessageIndisponible, berr.Message)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.EqualValues(t, DefaultCBConfig().FailureThreshold, appels.Load(), "open circuit does not call the backend")
}

func TestBackendClient_BusinessErrorsKeepCircuitClosed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := NewBackendClient(srv.URL, 0, NewSession())
	for i := 0; i < 10; i++ {
		require.Error(t, c.Get(context.Background(), "/produits", nil, nil))
	}
	assert.Equal(t, CBClosed, c.BreakerState())
}
