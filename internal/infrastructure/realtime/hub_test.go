package realtime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Crm-api/internal/infrastructure/realtime"
	"github.com/jhoicas/Crm-api/pkg/logger"
)

type fakeConn struct {
	messages []realtime.InvalidateMessage
	failWith error
	closed   bool
}

func (f *fakeConn) WriteJSON(v any) error {
	if f.failWith != nil {
		return f.failWith
	}
	if msg, ok := v.(realtime.InvalidateMessage); ok {
		f.messages = append(f.messages, msg)
	}
	return nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func newHub() *realtime.Hub {
	return realtime.NewHub(logger.New(logger.Config{Env: "test", Level: "error"}))
}

// El suscriptor de una tabla recibe solo los avisos de esa tabla.
func TestHub_BroadcastFiltradoPorTabla(t *testing.T) {
	hub := newHub()
	productos := &fakeConn{}
	todo := &fakeConn{}
	hub.Register(productos, []string{"products"})
	hub.Register(todo, nil) // sin filtro = todas

	hub.Broadcast("products")
	hub.Broadcast("sales")

	assert.Len(t, productos.messages, 1)
	assert.Equal(t, "products", productos.messages[0].Table)
	assert.Len(t, todo.messages, 2)
}

// Una escritura fallida expulsa al cliente y cierra su conexión.
func TestHub_EscrituraFallidaExpulsaCliente(t *testing.T) {
	hub := newHub()
	roto := &fakeConn{failWith: errors.New("conexión cerrada")}
	hub.Register(roto, nil)

	hub.Broadcast("products")

	assert.True(t, roto.closed)
	assert.Equal(t, 0, hub.Count())
}

// Unregister deja de entregar avisos a esa conexión.
func TestHub_Unregister(t *testing.T) {
	hub := newHub()
	conn := &fakeConn{}
	c := hub.Register(conn, nil)
	hub.Unregister(c)

	hub.Broadcast("products")

	assert.Empty(t, conn.messages)
	assert.Equal(t, 0, hub.Count())
}
