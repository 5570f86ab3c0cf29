package oauth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Crm-api/internal/infrastructure/oauth"
)

// Un state emitido se consume una sola vez y devuelve al usuario dueño.
func TestStateStore_EmitirYConsumir(t *testing.T) {
	store := oauth.NewStateStore(time.Minute)

	state, err := store.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, state)

	userID, ok := store.Consume(state)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)

	// Segundo consumo del mismo state debe fallar (previene replay).
	_, ok = store.Consume(state)
	assert.False(t, ok)
}

// Un state desconocido no valida.
func TestStateStore_StateDesconocido(t *testing.T) {
	store := oauth.NewStateStore(time.Minute)
	_, ok := store.Consume("inventado")
	assert.False(t, ok)
}

// Un state expirado no valida aunque exista.
func TestStateStore_StateExpirado(t *testing.T) {
	store := oauth.NewStateStore(-time.Second) // ya nace expirado
	state, err := store.Issue("user-1")
	require.NoError(t, err)

	_, ok := store.Consume(state)
	assert.False(t, ok)
}

// Dos emisiones generan states distintos.
func TestStateStore_StatesUnicos(t *testing.T) {
	store := oauth.NewStateStore(time.Minute)
	a, err := store.Issue("user-1")
	require.NoError(t, err)
	b, err := store.Issue("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
