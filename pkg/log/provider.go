package log

import (
	"context"
	"log/slog"
	"sync"

	"github.com/rs/zerolog"

	perrors "github.com/dishcision/prepkit/pkg/errors"
)

var (
	providerMu sync.RWMutex
	provider   LoggerProvider = newSlogProvider()
)

// SetProvider replaces the provider used by GetLogger and GetLoggerWithName.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

// ResetProvider restores the default provider, backed by slog.Default.
func ResetProvider() {
	SetProvider(newSlogProvider())
}

// GetLogger returns the default logger of the active provider.
func GetLogger() Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLogger()
}

// GetLoggerWithName returns a logger of the active provider tagged with name.
func GetLoggerWithName(name string) Logger {
	providerMu.RLock()
	defer providerMu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// ---------------------------------------------------------------------------
// slog backend
// ---------------------------------------------------------------------------

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts a *slog.Logger to Logger.
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

func (s *slogLogger) Debug(msg string, fields ...any) { s.l.Debug(msg, fields...) }
func (s *slogLogger) Info(msg string, fields ...any)  { s.l.Info(msg, fields...) }
func (s *slogLogger) Warn(msg string, fields ...any)  { s.l.Warn(msg, fields...) }
func (s *slogLogger) Error(msg string, fields ...any) { s.l.Error(msg, fields...) }

func (s *slogLogger) With(fields ...any) Logger {
	return &slogLogger{l: s.l.With(fields...)}
}

func (s *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return s.l.Enabled(ctx, slog.Level(level))
}

// slogProvider hands out loggers backed by slog.Default, so SetupLogger and
// slog.SetDefault take effect for loggers created afterwards.
type slogProvider struct {
	level *slog.LevelVar
}

func newSlogProvider() *slogProvider {
	return &slogProvider{level: new(slog.LevelVar)}
}

func (p *slogProvider) GetLogger() Logger {
	return NewSlogLogger(slog.Default())
}

func (p *slogProvider) GetLoggerWithName(name string) Logger {
	return NewSlogLogger(slog.Default().With(ComponentKey, name))
}

func (p *slogProvider) SetLevel(level Level) {
	p.level.Set(slog.Level(level))
}

// ---------------------------------------------------------------------------
// zerolog backend
// ---------------------------------------------------------------------------

type zerologLogger struct {
	l zerolog.Logger
}

// NewZerologLogger adapts a zerolog.Logger to Logger.
func NewZerologLogger(l zerolog.Logger) Logger {
	return &zerologLogger{l: l}
}

func (z *zerologLogger) Debug(msg string, fields ...any) { z.l.Debug().Fields(fields).Msg(msg) }
func (z *zerologLogger) Info(msg string, fields ...any)  { z.l.Info().Fields(fields).Msg(msg) }
func (z *zerologLogger) Warn(msg string, fields ...any)  { z.l.Warn().Fields(fields).Msg(msg) }
func (z *zerologLogger) Error(msg string, fields ...any) { z.l.Error().Fields(fields).Msg(msg) }

func (z *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{l: z.l.With().Fields(fields).Logger()}
}

func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return z.l.GetLevel() <= toZerologLevel(level)
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// ZerologProvider hands out loggers derived from a base zerolog.Logger.
type ZerologProvider struct {
	mu   sync.Mutex
	base zerolog.Logger
}

// NewZerologProvider creates a provider around base.
func NewZerologProvider(base zerolog.Logger) *ZerologProvider {
	return &ZerologProvider{base: base}
}

func (p *ZerologProvider) GetLogger() Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return NewZerologLogger(p.base)
}

func (p *ZerologProvider) GetLoggerWithName(name string) Logger {
	p.mu.Lock()
	defer p.mu.Unlock()
	return NewZerologLogger(p.base.With().Str(ComponentKey, name).Logger())
}

func (p *ZerologProvider) SetLevel(level Level) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.base = p.base.Level(toZerologLevel(level))
}

// RouteWarningsToZerolog sends every pkg/errors warning to l at warn level.
// Warnings implementing zerolog.LogObjectMarshaler contribute their fields.
func RouteWarningsToZerolog(l zerolog.Logger) {
	perrors.SetZerologWarnFunc(func(w error) {
		ev := l.Warn()
		if m, ok := w.(zerolog.LogObjectMarshaler); ok {
			ev = ev.EmbedObject(m)
		}
		ev.Msg(w.Error())
	})
}
