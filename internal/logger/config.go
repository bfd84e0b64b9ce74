package logger

import (
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Format string        `yaml:"format"`
	Level  zapcore.Level `yaml:"level"`
}

// NewConfig returns a new instance of Config with defaults.
func NewConfig() Config {
	return Config{
		Format: "auto",
		Level:  zapcore.InfoLevel,
	}
}

// ParseConfig builds a Config from the textual settings of gale.yaml or the
// command line. Empty values keep the defaults.
func ParseConfig(format, level string) (Config, error) {
	c := NewConfig()
	if format != "" {
		c.Format = format
	}
	if level != "" {
		if err := c.Level.UnmarshalText([]byte(level)); err != nil {
			return c, errors.Wrapf(err, "log level %q", level)
		}
	}
	return c, nil
}
