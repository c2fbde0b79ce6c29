// Package logger предоставляет тонкую обёртку над log/slog
// с printf-подобным интерфейсом, единым для всего приложения.
package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger — интерфейс логирования, используемый всеми слоями приложения.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
}

// SlogLogger реализует Logger поверх slog.
type SlogLogger struct {
	log *slog.Logger
}

// NewSlogLogger создаёт логгер с уровнем Info и текстовым выводом в stdout.
func NewSlogLogger() *SlogLogger {
	return NewSlogLoggerWithLevel(slog.LevelInfo)
}

// NewSlogLoggerWithLevel создаёт логгер с заданным уровнем.
func NewSlogLoggerWithLevel(level slog.Level) *SlogLogger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	return &SlogLogger{
		log: slog.New(handler),
	}
}

func (s *SlogLogger) Debugf(format string, args ...any) {
	s.log.Debug(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Infof(format string, args ...any) {
	s.log.Info(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Warnf(format string, args ...any) {
	s.log.Warn(fmt.Sprintf(format, args...))
}

func (s *SlogLogger) Errorf(err error, format string, args ...any) {
	s.log.Error(fmt.Sprintf(format, args...), slog.Any("error", err))
}
