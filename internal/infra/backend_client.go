package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// MessageGenerique is shown when the backend gives no usable message.
const MessageGenerique = "Une erreur est survenue, veuillez réessayer"

// MessageIndisponible is shown while the circuit breaker refuses calls.
const MessageIndisponible = "Serveur du club indisponible, réessayez dans quelques instants"

// ErrUnauthorized matches any 401 from the backend (errors.Is).
var ErrUnauthorized = errors.New("backend: authentification requise")

// BackendError is a failed call to the club backend. Message is the
// backend's own message when it sent one, else MessageGenerique.
type BackendError struct {
	Status  int // 0 when the backend could not be reached
	Message string
	Err     error
}

func (e *BackendError) Error() string { return e.Message }

func (e *BackendError) Unwrap() error { return e.Err }

func (e *BackendError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// BackendClient is the only door to the club's REST backend. It attaches the
// session's bearer token and ends the session on any 401.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	breaker    *CircuitBreaker
}

// NewBackendClient builds a client for baseURL. A zero timeout keeps the
// net/http default.
func NewBackendClient(baseURL string, timeout time.Duration, session *Session) *BackendClient {
	return &BackendClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		breaker:    NewCircuitBreaker(DefaultCBConfig()),
	}
}

// BreakerState reports whether calls currently reach the backend.
func (c *BackendClient) BreakerState() CBState { return c.breaker.State() }

func (c *BackendClient) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *BackendClient) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *BackendClient) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *BackendClient) Delete(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodDelete, path, query, nil, out)
}

// Do sends one request and decodes a JSON response into out (when non-nil).
func (c *BackendClient) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &BackendError{Status: resp.StatusCode, Message: MessageGenerique, Err: fmt.Errorf("backend: decode %s %s: %w", method, path, err)}
	}
	return nil
}

// Download fetches a binary payload (Excel exports) as-is.
func (c *BackendClient) Download(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	resp, err := c.send(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &BackendError{Status: resp.StatusCode, Message: MessageGenerique, Err: fmt.Errorf("backend: read %s: %w", path, err)}
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// send performs the round-trip and turns every non-2xx into a BackendError.
// On success the caller owns resp.Body.
func (c *BackendClient) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("backend: marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("backend: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if err := c.breaker.Allow(); err != nil {
		BackendRequests.WithLabelValues(method, "circuit_open").Inc()
		return nil, &BackendError{Status: http.StatusServiceUnavailable, Message: MessageIndisponible, Err: err}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	// A request the caller cancelled says nothing about the backend.
	outage := (err != nil && ctx.Err() == nil) || (err == nil && panne(resp.StatusCode))
	c.breaker.Record(!outage)
	if err != nil {
		BackendRequests.WithLabelValues(method, "error").Inc()
		log.Warn().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return nil, &BackendError{Message: MessageGenerique, Err: err}
	}
	BackendRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	berr := &BackendError{Status: resp.StatusCode, Message: messageDe(resp.Body)}
	if resp.StatusCode == http.StatusUnauthorized {
		// Handled here once for every screen: drop the token and tell subscribers.
		c.session.Logout(ReasonUnauthorized)
	}
	log.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("message", berr.Message).
		Msg("backend error")
	return nil, berr
}

// panne reports statuses that mean the backend itself is down.
func panne(status int) bool {
	return status == http.StatusBadGateway || status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout
}

// messageDe extracts the backend's error message from a JSON body.
func messageDe(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
		Error   string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || json.Unmarshal(data, &body) != nil {
		return MessageGenerique
	}
	for _, m := range []string{body.Message, body.Detail, body.Error} {
		if strings.TrimSpace(m) != "" {
			return m
		}
	}
	return MessageGenerique
}
