package realtime

import (
	"sync"

	"github.com/jhoicas/Crm-api/pkg/logger"
)

// Conn es lo mínimo que el hub necesita de una conexión websocket.
// Lo satisface *websocket.Conn de gofiber/contrib; los tests usan un fake.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

// InvalidateMessage aviso de cambio: el cliente descarta su copia local de la
// tabla y vuelve a consultar. No lleva diff, solo el nombre de la tabla.
type InvalidateMessage struct {
	Action string `json:"action"` // siempre "invalidate"
	Table  string `json:"table"`
}

type Client struct {
	conn   Conn
	topics map[string]bool // vacío = todas las tablas
}

// Hub registra suscriptores websocket y reenvía los avisos de cambio de
// tabla que produce el listener de PostgreSQL, filtrados por tema.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
	log     *logger.Logger
}

// NewHub construye el hub.
func NewHub(log *logger.Logger) *Hub {
	return &Hub{clients: make(map[*Client]bool), log: log}
}

// Register agrega una conexión suscrita a las tablas indicadas (ninguna =
// todas). Devuelve el handle para Unregister al cerrar.
func (h *Hub) Register(conn Conn, tables []string) *Client {
	topics := make(map[string]bool, len(tables))
	for _, t := range tables {
		if t != "" {
			topics[t] = true
		}
	}
	c := &Client{conn: conn, topics: topics}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
	return c
}

// Unregister quita la conexión del registro.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// Broadcast envía el aviso de invalidación a los suscriptores del tema.
// Una escritura fallida cierra y elimina al cliente, como en el tablero:
// no hay reintentos ni cola por conexión.
func (h *Hub) Broadcast(table string) {
	msg := InvalidateMessage{Action: "invalidate", Table: table}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if len(c.topics) > 0 && !c.topics[table] {
			continue
		}
		if err := c.conn.WriteJSON(msg); err != nil {
			_ = c.conn.Close()
			delete(h.clients, c)
		}
	}
}

// Count cantidad de suscriptores activos (para métricas y tests).
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
