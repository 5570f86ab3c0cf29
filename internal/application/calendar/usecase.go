package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Crm-api/internal/application/dto"
	"github.com/jhoicas/Crm-api/internal/domain"
	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
	"github.com/jhoicas/Crm-api/internal/infrastructure/oauth"
)

// ProviderCalendar nombre del proveedor en la tabla user_api_keys.
const ProviderCalendar = "calendar"

// Authorizer lo que el caso de uso necesita del cliente OAuth: construir la
// URL de autorización y canjear el código por tokens.
type Authorizer interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth.Tokens, error)
}

// StateStore registro de states pendientes del flujo OAuth.
type StateStore interface {
	Issue(userID string) (string, error)
	Consume(state string) (string, bool)
}

// CalendarUseCase flujo de conexión del calendario del lado del servidor:
// el navegador nunca ve el client secret ni los tokens.
type CalendarUseCase struct {
	client  Authorizer
	states  StateStore
	keyRepo repository.APIKeyRepository
}

// NewCalendarUseCase construye el caso de uso.
func NewCalendarUseCase(client Authorizer, states StateStore, keyRepo repository.APIKeyRepository) *CalendarUseCase {
	return &CalendarUseCase{client: client, states: states, keyRepo: keyRepo}
}

// Connect inicia el flujo: registra un state para el usuario y devuelve la
// URL de autorización del proveedor para redirigirlo.
func (uc *CalendarUseCase) Connect(userID string) (*dto.CalendarConnectResponse, error) {
	state, err := uc.states.Issue(userID)
	if err != nil {
		return nil, err
	}
	return &dto.CalendarConnectResponse{AuthURL: uc.client.AuthURL(state)}, nil
}

// Callback cierra el flujo: valida el state (un solo uso), canjea el código
// por tokens y los guarda para el usuario. Un state desconocido, repetido o
// vencido devuelve domain.ErrInvalidOAuthState.
func (uc *CalendarUseCase) Callback(ctx context.Context, in dto.CalendarCallbackRequest) error {
	userID, ok := uc.states.Consume(in.State)
	if !ok {
		return domain.ErrInvalidOAuthState
	}
	if in.Code == "" {
		return domain.ErrInvalidInput
	}
	tokens, err := uc.client.Exchange(ctx, in.Code)
	if err != nil {
		return err
	}
	now := time.Now()
	key := &entity.APIKey{
		ID:           uuid.New().String(),
		UserID:       userID,
		Provider:     ProviderCalendar,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return uc.keyRepo.Upsert(key)
}

// Status indica si el usuario tiene el calendario conectado.
func (uc *CalendarUseCase) Status(userID string) (*dto.CalendarStatusResponse, error) {
	key, err := uc.keyRepo.GetByUserAndProvider(userID, ProviderCalendar)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return &dto.CalendarStatusResponse{Connected: false}, nil
	}
	expiresAt := key.ExpiresAt
	return &dto.CalendarStatusResponse{Connected: true, ExpiresAt: &expiresAt}, nil
}

// Disconnect borra las credenciales guardadas del usuario.
func (uc *CalendarUseCase) Disconnect(userID string) error {
	return uc.keyRepo.DeleteByUserAndProvider(userID, ProviderCalendar)
}
