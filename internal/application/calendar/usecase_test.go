package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/infrastructure/oauth"
)

// fakeAuthorizer cliente OAuth de prueba: no toca la red.
type fakeAuthorizer struct {
	exchangedCode string
	failExchange  error
}

func (f *fakeAuthorizer) AuthURL(state string) string {
	return "https://provider.example/auth?state=" + state
}

func (f *fakeAuthorizer) Exchange(_ context.Context, code string) (*oauth.Tokens, error) {
	if f.failExchange != nil {
		return nil, f.failExchange
	}
	f.exchangedCode = code
	return &oauth.Tokens{
		AccessToken:  "access-" + code,
		RefreshToken: "refresh-" + code,
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

// fakeKeyRepo repositorio de credenciales en memoria.
type fakeKeyRepo struct {
	keys map[string]*entity.APIKey // userID|provider
}

func newFakeKeyRepo() *fakeKeyRepo { return &fakeKeyRepo{keys: make(map[string]*entity.APIKey)} }

func (r *fakeKeyRepo) Upsert(key *entity.APIKey) error {
	r.keys[key.UserID+"|"+key.Provider] = key
	return nil
}
func (r *fakeKeyRepo) GetByUserAndProvider(userID, provider string) (*entity.APIKey, error) {
	return r.keys[userID+"|"+provider], nil
}
func (r *fakeKeyRepo) DeleteByUserAndProvider(userID, provider string) error {
	delete(r.keys, userID+"|"+provider)
	return nil
}

func setupCalendar(t *testing.T) (*CalendarUseCase, *fakeAuthorizer, *fakeKeyRepo, *oauth.StateStore) {
	t.Helper()
	authorizer := &fakeAuthorizer{}
	keyRepo := newFakeKeyRepo()
	states := oauth.NewStateStore(5 * time.Minute)
	return NewCalendarUseCase(authorizer, states, keyRepo), authorizer, keyRepo, states
}

// extrae el state de la URL que genera el fakeAuthorizer.
func stateFromURL(t *testing.T, authURL string) string {
	t.Helper()
	const marker = "state="
	idx := len(authURL) - 32 // state hex de 16 bytes
	require.Contains(t, authURL, marker)
	return authURL[idx:]
}

// TestCalendar_FlujoCompleto connect emite la URL con state, el callback
// canjea el código y guarda las credenciales del usuario.
func TestCalendar_FlujoCompleto(t *testing.T) {
	uc, authorizer, keyRepo, _ := setupCalendar(t)

	connect, err := uc.Connect("user-1")
	require.NoError(t, err)
	state := stateFromURL(t, connect.AuthURL)

	err = uc.Callback(context.Background(), dto.CalendarCallbackRequest{Code: "abc", State: state})
	require.NoError(t, err)
	assert.Equal(t, "abc", authorizer.exchangedCode)

	key, err := keyRepo.GetByUserAndProvider("user-1", ProviderCalendar)
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, "access-abc", key.AccessToken)
	assert.Equal(t, "refresh-abc", key.RefreshToken)

	status, err := uc.Status("user-1")
	require.NoError(t, err)
	assert.True(t, status.Connected)
	require.NotNil(t, status.ExpiresAt)
}

// TestCalendar_StateRepetidoRechazado un state ya consumido no sirve dos veces.
func TestCalendar_StateRepetidoRechazado(t *testing.T) {
	uc, _, _, _ := setupCalendar(t)

	connect, err := uc.Connect("user-1")
	require.NoError(t, err)
	state := stateFromURL(t, connect.AuthURL)

	require.NoError(t, uc.Callback(context.Background(), dto.CalendarCallbackRequest{Code: "abc", State: state}))
	err = uc.Callback(context.Background(), dto.CalendarCallbackRequest{Code: "abc", State: state})
	assert.ErrorIs(t, err, domain.ErrInvalidOAuthState)
}

// TestCalendar_StateDesconocidoRechazado un state inventado no pasa.
func TestCalendar_StateDesconocidoRechazado(t *testing.T) {
	uc, _, _, _ := setupCalendar(t)

	err := uc.Callback(context.Background(), dto.CalendarCallbackRequest{Code: "abc", State: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrInvalidOAuthState)
}

// TestCalendar_Desconectar borra las credenciales y el estado vuelve a desconectado.
func TestCalendar_Desconectar(t *testing.T) {
	uc, _, _, _ := setupCalendar(t)

	connect, err := uc.Connect("user-1")
	require.NoError(t, err)
	state := stateFromURL(t, connect.AuthURL)
	require.NoError(t, uc.Callback(context.Background(), dto.CalendarCallbackRequest{Code: "abc", State: state}))

	require.NoError(t, uc.Disconnect("user-1"))

	status, err := uc.Status("user-1")
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Nil(t, status.ExpiresAt)
}
