package logger

import (
	"log/slog"
	"strings"
)

// Config selects the handler, level and base attributes of a logger
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// ForEnvironment returns the defaults for env. Production logs JSON at info;
// everything else logs text at debug with source locations.
func ForEnvironment(env string) Config {
	cfg := Config{
		Level:       LogLevelDebug,
		Format:      LogFormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
		Environment: env,
		AddSource:   true,
	}
	switch strings.ToLower(env) {
	case EnvironmentProduction, "production":
		cfg.Level = LogLevelInfo
		cfg.Format = LogFormatJSON
		cfg.AddSource = false
	case EnvironmentTest:
		cfg.Level = LogLevelWarn
		cfg.AddSource = false
	case "":
		cfg.Environment = EnvironmentDev
	}
	return cfg
}

// LogLevel parses Level, falling back to info
func (c Config) LogLevel() slog.Level {
	level := strings.ToLower(c.Level)
	if level == LogLevelWarning {
		level = LogLevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// IsJSON reports whether Format asks for the JSON handler
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every record the logger writes
func (c Config) BaseAttributes() []slog.Attr {
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, c.Version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}
