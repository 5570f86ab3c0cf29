package http

import (
	"strings"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Crm-api/internal/infrastructure/realtime"
	"github.com/jhoicas/Crm-api/pkg/jwt"
)

// RealtimeHandler expone el endpoint websocket de invalidación. El cliente se
// suscribe con ?tables=deals,products y recibe un aviso por cada cambio; al
// recibirlo descarta su copia y vuelve a consultar la API.
type RealtimeHandler struct {
	hub       *realtime.Hub
	jwtSecret string
}

// NewRealtimeHandler construye el handler.
func NewRealtimeHandler(hub *realtime.Hub, jwtSecret string) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, jwtSecret: jwtSecret}
}

// Upgrade autoriza el upgrade a websocket. El token viaja por query porque el
// handshake del navegador no permite headers propios.
func (h *RealtimeHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	token := c.Query("token")
	if token == "" {
		return fiber.ErrUnauthorized
	}
	if _, _, _, err := jwt.Parse(h.jwtSecret, token); err != nil {
		return fiber.ErrUnauthorized
	}
	c.Locals("tables", c.Query("tables"))
	return c.Next()
}

// Serve atiende la conexión: registra al cliente en el hub y se queda leyendo
// hasta que el navegador cierre. Los mensajes entrantes se ignoran: el canal
// es de bajada solamente.
func (h *RealtimeHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		var tables []string
		if raw, _ := conn.Locals("tables").(string); raw != "" {
			tables = strings.Split(raw, ",")
		}
		client := h.hub.Register(conn, tables)
		defer h.hub.Unregister(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
