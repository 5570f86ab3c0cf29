package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Crm-api/pkg/logger"
)

// Canal de notificaciones de cambios. Los triggers de la base hacen
// NOTIFY table_changes, '<tabla>' después de cada INSERT/UPDATE/DELETE.
const notifyChannel = "table_changes"

// Listener mantiene una conexión dedicada en LISTEN y entrega el nombre de
// la tabla modificada a un callback. Es la única pieza de consistencia en
// tiempo real: los clientes invalidan y refetchean todo el recurso, sin diffs.
type Listener struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewListener construye el listener sobre el pool.
func NewListener(pool *pgxpool.Pool, log *logger.Logger) *Listener {
	return &Listener{pool: pool, log: log}
}

// Listen bloquea escuchando notificaciones hasta que el contexto se cancele.
// Ante un error de conexión reintenta con una espera fija; no hay cola de
// eventos perdidos porque la semántica del cliente es refetch completo.
func (l *Listener) Listen(ctx context.Context, onChange func(table string)) {
	for {
		if err := l.listenOnce(ctx, onChange); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.log.Warn().Err(err).Msg("conexión LISTEN perdida, reintentando")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(3 * time.Second):
		}
	}
}

func (l *Listener) listenOnce(ctx context.Context, onChange func(table string)) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return err
	}
	l.log.Info().Str("channel", notifyChannel).Msg("escuchando cambios de tablas")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if notification.Payload == "" {
			continue
		}
		onChange(notification.Payload)
	}
}
