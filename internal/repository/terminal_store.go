package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/satch9/app-caisse-compta-sub000/internal/caisse"
)

// TerminalStore persists the working state of each till terminal so a
// restart does not lose the sale in progress. Load returns a fresh state for
// an unknown terminal.
type TerminalStore interface {
	Load(ctx context.Context, terminalID string) (*caisse.State, error)
	Save(ctx context.Context, terminalID string, st *caisse.State) error
	Delete(ctx context.Context, terminalID string) error
	// List returns the ids of every stored terminal.
	List(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

// memoryTerminalStore keeps encoded states in process memory. States are
// stored encoded so a caller can never alias a stored value.
type memoryTerminalStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

func NewMemoryTerminalStore() TerminalStore {
	return &memoryTerminalStore{states: make(map[string][]byte)}
}

func (m *memoryTerminalStore) Load(_ context.Context, terminalID string) (*caisse.State, error) {
	m.mu.RLock()
	data, ok := m.states[terminalID]
	m.mu.RUnlock()
	if !ok {
		return caisse.NewState(), nil
	}
	return decodeState(data)
}

func (m *memoryTerminalStore) Save(_ context.Context, terminalID string, st *caisse.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.states[terminalID] = data
	m.mu.Unlock()
	return nil
}

func (m *memoryTerminalStore) Delete(_ context.Context, terminalID string) error {
	m.mu.Lock()
	delete(m.states, terminalID)
	m.mu.Unlock()
	return nil
}

func (m *memoryTerminalStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *memoryTerminalStore) Ping(context.Context) error { return nil }

var errEtatVide = errors.New("terminal store: empty state")

func decodeState(data []byte) (*caisse.State, error) {
	if len(data) == 0 {
		return nil, errEtatVide
	}
	st := caisse.NewState()
	if err := json.Unmarshal(data, st); err != nil {
		return nil, err
	}
	return st, nil
}
