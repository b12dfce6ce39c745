package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config parámetros del logger.
type Config struct {
	Env   string // "development" imprime consola legible; cualquier otro, JSON
	Level string // nivel mínimo: trace, debug, info, warn, error
}

// Logger envuelve zerolog para que el resto del código dependa de un solo
// tipo inyectable en lugar del logger global.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger según el entorno y de paso reemplaza el logger
// global de zerolog, así las librerías que escriben por él quedan alineadas.
func New(cfg Config) *Logger {
	var out io.Writer = os.Stdout
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout}
	}
	l := build(out, cfg.Level)
	log.Logger = l.zl
	return l
}

// NewWithWriter construye un logger JSON sobre el writer dado, sin tocar el
// logger global. Sirve para capturar la salida en tests.
func NewWithWriter(w io.Writer, level string) *Logger {
	return build(w, level)
}

// Nop devuelve un logger que descarta todo lo que recibe.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func build(w io.Writer, level string) *Logger {
	nivel, err := zerolog.ParseLevel(level)
	if err != nil || nivel == zerolog.NoLevel {
		nivel = zerolog.InfoLevel
	}
	return &Logger{zl: zerolog.New(w).Level(nivel).With().Timestamp().Logger()}
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre el contexto para un sublogger con campos fijos.
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone el logger subyacente para quien necesite la API completa.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
