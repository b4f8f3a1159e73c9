// Package logger arma el logging estructurado de la aplicación sobre zerolog.
// Además del wrapper inyectable, New instala el logger global de zerolog, que
// es el que usan los casos de uso vía rs/zerolog/log.
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config formato y verbosidad del logger.
type Config struct {
	Env   string // "development" imprime consola legible; el resto, JSON
	Level string // trace | debug | info | warn | error
}

// Logger wrapper inyectable sobre zerolog.
type Logger struct {
	l zerolog.Logger
}

// New construye el logger según el entorno y lo instala como global.
func New(cfg Config) *Logger {
	zl := zerolog.New(os.Stdout)
	if cfg.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	zl = zl.Level(levelFrom(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl
	return &Logger{l: zl}
}

// levelFrom interpreta el nivel configurado; desconocido o vacío cae en info.
func levelFrom(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (lg *Logger) Trace() *zerolog.Event { return lg.l.Trace() }
func (lg *Logger) Debug() *zerolog.Event { return lg.l.Debug() }
func (lg *Logger) Info() *zerolog.Event  { return lg.l.Info() }
func (lg *Logger) Warn() *zerolog.Event  { return lg.l.Warn() }
func (lg *Logger) Error() *zerolog.Event { return lg.l.Error() }
func (lg *Logger) Fatal() *zerolog.Event { return lg.l.Fatal() }

// With abre un contexto para derivar un sublogger con campos fijos.
func (lg *Logger) With() zerolog.Context { return lg.l.With() }

// Zerolog expone el logger subyacente cuando se necesita la API directa.
func (lg *Logger) Zerolog() zerolog.Logger { return lg.l }
