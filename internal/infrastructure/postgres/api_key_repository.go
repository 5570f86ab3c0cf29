package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Crm-api/internal/domain/entity"
	"github.com/jhoicas/Crm-api/internal/domain/repository"
)

var _ repository.APIKeyRepository = (*APIKeyRepo)(nil)

// APIKeyRepo implementación del puerto APIKeyRepository sobre PostgreSQL
// (tabla user_api_keys: tokens de integraciones externas por usuario).
type APIKeyRepo struct {
	q Querier
}

// NewAPIKeyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAPIKeyRepository(q Querier) *APIKeyRepo {
	return &APIKeyRepo{q: q}
}

// Upsert inserta o reemplaza las credenciales del proveedor para el usuario.
// Un usuario tiene a lo sumo una fila por proveedor.
func (r *APIKeyRepo) Upsert(k *entity.APIKey) error {
	query := `
		INSERT INTO user_api_keys (id, user_id, provider, access_token, refresh_token, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		k.ID, k.UserID, k.Provider, k.AccessToken, k.RefreshToken, k.ExpiresAt, k.CreatedAt, k.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert api key: %w", err)
	}
	return nil
}

// GetByUserAndProvider obtiene las credenciales del proveedor para el usuario.
func (r *APIKeyRepo) GetByUserAndProvider(userID, provider string) (*entity.APIKey, error) {
	query := `
		SELECT id, user_id, provider, access_token, refresh_token, expires_at, created_at, updated_at
		FROM user_api_keys WHERE user_id = $1 AND provider = $2`
	var k entity.APIKey
	err := r.q.QueryRow(context.Background(), query, userID, provider).Scan(
		&k.ID, &k.UserID, &k.Provider, &k.AccessToken, &k.RefreshToken, &k.ExpiresAt, &k.CreatedAt, &k.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get api key: %w", err)
	}
	return &k, nil
}

// DeleteByUserAndProvider elimina las credenciales (desconexión de la integración).
func (r *APIKeyRepo) DeleteByUserAndProvider(userID, provider string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM user_api_keys WHERE user_id = $1 AND provider = $2`, userID, provider)
	if err != nil {
		return fmt.Errorf("delete api key: %w", err)
	}
	return nil
}
