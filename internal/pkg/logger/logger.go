package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger define a interface para logging estruturado.
// A aplicação (TUI, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
}

// ZerologLogger é a implementação concreta da interface Logger sobre o zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewLogger cria um Logger que escreve JSON no stderr.
// Esta função é chamada no main.go quando não há arquivo de log configurado.
func NewLogger(level string) Logger {
	return NewLoggerTo(os.Stderr, level)
}

// NewLoggerTo cria um Logger que escreve JSON no writer informado.
// A TUI ocupa o terminal, então em execução normal o destino é um arquivo.
func NewLoggerTo(w io.Writer, level string) Logger {
	zl := zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", "medstock").
		Logger()

	return &ZerologLogger{logger: zl}
}

// NewNop retorna um Logger que descarta tudo (útil em testes).
func NewNop() Logger {
	return &ZerologLogger{logger: zerolog.Nop()}
}

// parseLevel traduz o nível textual da configuração; desconhecido vira info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func withFields(event *zerolog.Event, fields map[string]interface{}) *zerolog.Event {
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	return event
}

// Implementações da Interface Logger

func (l *ZerologLogger) Debug(msg string, fields map[string]interface{}) {
	withFields(l.logger.Debug(), fields).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, fields map[string]interface{}) {
	withFields(l.logger.Info(), fields).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, fields map[string]interface{}) {
	withFields(l.logger.Warn(), fields).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}

// Fatal registra o erro e encerra o processo (zerolog chama os.Exit(1)).
func (l *ZerologLogger) Fatal(msg string, err error) {
	l.logger.Fatal().Err(err).Msg(msg)
}
