// Package logger configura zerolog para la API del CRM: consola legible en
// desarrollo, JSON en el resto de los entornos, y el nombre del servicio
// estampado en cada línea.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string // development usa consola legible; cualquier otro valor, JSON
	Level   string // trace, debug, info, warn, error (default info)
	Service string // nombre del servicio, opcional; se agrega como campo fijo
}

var levels = map[string]zerolog.Level{
	"trace": zerolog.TraceLevel,
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
}

// Logger envuelve zerolog para inyectarlo por constructor en vez de usar el
// logger global.
type Logger struct {
	z zerolog.Logger
}

// New crea el logger estructurado y redirige también el logger global de
// zerolog, para las librerías que escriben por esa vía.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	level, ok := levels[cfg.Level]
	if !ok {
		level = zerolog.InfoLevel
	}

	builder := zerolog.New(w).Level(level).With().Timestamp()
	if cfg.Service != "" {
		builder = builder.Str("service", cfg.Service)
	}
	z := builder.Logger()
	log.Logger = z

	return &Logger{z: z}
}

// Eventos por nivel, delegados a zerolog.
func (l *Logger) Trace() *zerolog.Event { return l.z.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.z.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.z.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.z.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.z.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.z.Fatal() }

// With abre un sublogger con campos fijos adicionales.
func (l *Logger) With() zerolog.Context { return l.z.With() }

// Zerolog expone el logger interno para quien necesite la API directa.
func (l *Logger) Zerolog() zerolog.Logger { return l.z }
