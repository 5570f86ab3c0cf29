package oauth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// StateStore nonces de state OAuth pendientes, con expiración. Viven minutos
// y no deben sobrevivir un reinicio, por eso van en memoria.
type StateStore struct {
	mu     sync.Mutex
	states map[string]stateEntry
	ttl    time.Duration
}

type stateEntry struct {
	userID    string
	expiresAt time.Time
}

// NewStateStore construye el store con el TTL dado.
func NewStateStore(ttl time.Duration) *StateStore {
	return &StateStore{states: make(map[string]stateEntry), ttl: ttl}
}

// Issue genera un state aleatorio asociado al usuario y lo registra.
func (s *StateStore) Issue(userID string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	state := hex.EncodeToString(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.states[state] = stateEntry{userID: userID, expiresAt: time.Now().Add(s.ttl)}
	return state, nil
}

// Consume valida el state y devuelve el usuario asociado. Un state solo se
// puede consumir una vez; el segundo intento falla.
func (s *StateStore) Consume(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.states[state]
	if !ok {
		return "", false
	}
	delete(s.states, state)
	if time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.userID, true
}

func (s *StateStore) purgeLocked() {
	now := time.Now()
	for k, v := range s.states {
		if now.After(v.expiresAt) {
			delete(s.states, k)
		}
	}
}
