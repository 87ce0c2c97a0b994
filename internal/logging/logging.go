// Package logging provides a leveled printf-style logger on top of zap.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.FatalLevel
	}
}

// ParseLevel parses a log level string. Unknown names give LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the line encoding.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Option configures a Logger.
type Option func(*Logger)

// WithOutput sets the destination. The default is stderr.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) { l.output = w }
}

// WithFormat sets the line encoding. The default is FormatConsole.
func WithFormat(f Format) Option {
	return func(l *Logger) { l.format = f }
}

// Logger is a leveled logger. It is safe for concurrent use.
type Logger struct {
	mu     sync.Mutex
	level  zap.AtomicLevel
	output io.Writer
	format Format
	sugar  *zap.SugaredLogger
}

// New creates a logger writing lines at or above level.
func New(level Level, opts ...Option) *Logger {
	l := &Logger{
		level:  zap.NewAtomicLevelAt(level.zap()),
		output: os.Stderr,
		format: FormatConsole,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.build()
	return l
}

func (l *Logger) build() {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05.000"),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	var enc zapcore.Encoder
	if l.format == FormatJSON {
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		enc = zapcore.NewJSONEncoder(cfg)
	} else {
		cfg.EncodeLevel = bracketLevel
		enc = zapcore.NewConsoleEncoder(cfg)
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(l.output), l.level)
	l.sugar = zap.New(core).Sugar()
}

// bracketLevel renders levels as [INFO], [WARN] and so on.
func bracketLevel(lvl zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + lvl.CapitalString() + "]")
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.build()
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zap())
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level Level) bool {
	return l.level.Enabled(level.zap())
}

// Zap returns the underlying structured logger.
func (l *Logger) Zap() *zap.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar.Desugar()
}

func (l *Logger) logger() *zap.SugaredLogger {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sugar
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	l.logger().Debugf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...any) {
	l.logger().Infof(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.logger().Warnf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.logger().Errorf(format, args...)
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	if err := l.logger().Sync(); err != nil {
		return fmt.Errorf("sync logger: %w", err)
	}
	return nil
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(LevelError+1, WithOutput(io.Discard))
}
