// Package log is the leveled logger used by dispatch hosts. Terminal output
// is colored by level; file output is plain and rotated by lumberjack.
package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes where and how a Logger writes.
type Config struct {
	Name       string    `yaml:"name"`
	Level      Level     `yaml:"level"`
	Format     string    `yaml:"format"` // "text" (default) or "json"
	File       string    `yaml:"file"`
	NoTerminal bool      `yaml:"no_terminal"`
	NoColor    bool      `yaml:"no_color"`
	TimeFormat string    `yaml:"time_format"`
	Rotation   *Rotation `yaml:"rotation"`

	// Output replaces the terminal writer (stderr); used by tests and hosts
	// that capture logs.
	Output io.Writer `yaml:"-"`
}

// Rotation configures the rotating file writer
type Rotation struct {
	MaxSize    int  `yaml:"max_size"` // megabytes
	MaxBackups int  `yaml:"max_backups"`
	MaxAge     int  `yaml:"max_age"` // days
	Compress   bool `yaml:"compress"`
}

// DefaultRotation is used when a file is configured without rotation settings
var DefaultRotation = Rotation{MaxSize: 128, MaxBackups: 5, MaxAge: 16}

// Logger writes leveled lines to the terminal and an optional rotating file.
// Named children share writers and level with their parent.
type Logger struct {
	shared *shared
	name   string
	debug  bool
}

type shared struct {
	mu         sync.Mutex
	level      atomic.Int32
	terminal   io.Writer
	file       *lumberjack.Logger
	json       bool
	color      bool
	timeFormat string
}

type logEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Service   string `json:"service,omitempty"`
	Message   string `json:"message"`
}

// New creates a logger from cfg.
func New(cfg Config) (*Logger, error) {
	s := &shared{
		timeFormat: cfg.TimeFormat,
		color:      !cfg.NoColor,
	}
	s.level.Store(int32(cfg.Level))

	switch cfg.Format {
	case "", "text":
	case "json":
		s.json = true
	default:
		return nil, fmt.Errorf("invalid log format %q, expected text or json", cfg.Format)
	}
	if s.timeFormat == "" {
		s.timeFormat = "2006-01-02 15:04:05"
	}

	if !cfg.NoTerminal {
		s.terminal = cfg.Output
		if s.terminal == nil {
			s.terminal = os.Stderr
		}
	}
	if cfg.File != "" {
		rotation := DefaultRotation
		if cfg.Rotation != nil {
			rotation = *cfg.Rotation
		}
		s.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    rotation.MaxSize,
			MaxBackups: rotation.MaxBackups,
			MaxAge:     rotation.MaxAge,
			Compress:   rotation.Compress,
		}
	}
	if s.terminal == nil && s.file == nil {
		s.terminal = os.Stderr
	}

	return &Logger{shared: s, name: cfg.Name}, nil
}

// Discard returns a logger that writes nothing
func Discard() *Logger {
	l, _ := New(Config{Output: io.Discard, Level: Error + 1})
	return l
}

// Level returns the current minimum level
func (l *Logger) Level() Level { return Level(l.shared.level.Load()) }

// SetLevel changes the minimum level for this logger and its relatives
func (l *Logger) SetLevel(level Level) { l.shared.level.Store(int32(level)) }

// Enabled reports whether lines at level are written
func (l *Logger) Enabled(level Level) bool { return l.debug || level >= l.Level() }

// Debugging returns a copy that writes every level regardless of the shared
// minimum. The copy shares writers with l.
func (l *Logger) Debugging() *Logger {
	return &Logger{shared: l.shared, name: l.name, debug: true}
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// Named returns a child logger whose name is appended to the parent's.
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "/" + name
	}
	return &Logger{shared: l.shared, name: name, debug: l.debug}
}

// Close closes the rotating file, if any
func (l *Logger) Close() error {
	if l.shared.file == nil {
		return nil
	}
	return l.shared.file.Close()
}

func (l *Logger) log(level Level, msg string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	s := l.shared
	timestamp := time.Now().Format(s.timeFormat)
	message := fmt.Sprintf(msg, args...)

	var plain, colored string
	if s.json {
		entry := logEntry{Timestamp: timestamp, Level: level.String(), Service: l.name, Message: message}
		data, err := json.Marshal(entry)
		if err != nil {
			return
		}
		plain = string(data) + "\n"
		colored = plain
	} else {
		prefix := fmt.Sprintf("[%s] %-5s", timestamp, level)
		if l.name != "" {
			prefix = fmt.Sprintf("%s [%s]", prefix, l.name)
		}
		plain = prefix + " " + message + "\n"
		colored = plain
		if s.color {
			colored = paint(level, prefix) + " " + message + "\n"
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal != nil {
		_, _ = io.WriteString(s.terminal, colored)
	}
	if s.file != nil {
		_, _ = io.WriteString(s.file, plain)
	}
}

// Debug logs at debug level
func (l *Logger) Debug(msg string, args ...any) { l.log(Debug, msg, args...) }

// Info logs at info level
func (l *Logger) Info(msg string, args ...any) { l.log(Info, msg, args...) }

// Warn logs at warn level
func (l *Logger) Warn(msg string, args ...any) { l.log(Warn, msg, args...) }

// Error logs at error level
func (l *Logger) Error(msg string, args ...any) { l.log(Error, msg, args...) }
