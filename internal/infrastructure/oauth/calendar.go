// Package oauth implementa el flujo authorization-code de la integración de
// calendario del lado del servidor: el navegador solo ve la URL de
// autorización y el callback; el client secret y el intercambio de tokens
// viven aquí.
package oauth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/jhoicas/Crm-api/pkg/config"
)

// Tokens resultado del intercambio de código por tokens.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// CalendarClient cliente OAuth del proveedor de calendario.
type CalendarClient struct {
	cfg *oauth2.Config
}

// NewCalendarClient construye el cliente desde la configuración de la app.
func NewCalendarClient(cfg config.CalendarConfig) *CalendarClient {
	return &CalendarClient{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"https://www.googleapis.com/auth/calendar.events"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthURL,
				TokenURL: cfg.TokenURL,
			},
		},
	}
}

// AuthURL devuelve la URL de autorización del proveedor con el state dado.
// Se pide access_type=offline para recibir refresh token.
func (c *CalendarClient) AuthURL(state string) string {
	return c.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange canjea el código de autorización por tokens contra el token
// endpoint del proveedor.
func (c *CalendarClient) Exchange(ctx context.Context, code string) (*Tokens, error) {
	tok, err := c.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("intercambio de código OAuth: %w", err)
	}
	return &Tokens{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}, nil
}
