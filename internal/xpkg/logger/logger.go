// Package logger is a thin structured-logging layer over log/slog.
//
// Every entry carries the service name, the hostname and an "action" tag so
// log lines can be grepped per operation:
//
//	mylog.Action("db_connected").Info("Successful database connection")
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Logger interface {
	// Action returns a logger tagged with the given action name.
	Action(action string) Logger
	With(args ...any) Logger
	WithGroup(group string) Logger

	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, err error, args ...any)
}

type logger struct {
	sl *slog.Logger
}

// New creates a JSON logger writing to stdout at the given level
// (DEBUG | INFO | WARN | ERROR).
func New(level string) (Logger, error) {
	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "INFO", "":
		lvl = slog.LevelInfo
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %s", level)
	}

	hostname, _ := os.Hostname()
	sl := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})).
		With("hostname", hostname)

	return &logger{sl: sl}, nil
}

func (l *logger) Action(action string) Logger {
	return &logger{sl: l.sl.With("action", action)}
}

func (l *logger) With(args ...any) Logger {
	return &logger{sl: l.sl.With(args...)}
}

func (l *logger) WithGroup(group string) Logger {
	return &logger{sl: l.sl.WithGroup(group)}
}

func (l *logger) Debug(msg string, args ...any) {
	l.sl.Debug(msg, args...)
}

func (l *logger) Info(msg string, args ...any) {
	l.sl.Info(msg, args...)
}

func (l *logger) Warn(msg string, args ...any) {
	l.sl.Warn(msg, args...)
}

func (l *logger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.sl.Error(msg, args...)
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() Logger {
	return &logger{sl: slog.New(slog.DiscardHandler)}
}
