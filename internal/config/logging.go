package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ConfigureLogging sets the global logrus level, formatter and output.
func ConfigureLogging(cfg Config, out io.Writer) error {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q (use text or json)", cfg.LogFormat)
	}

	logrus.SetLevel(level)
	if out != nil {
		logrus.SetOutput(out)
	}
	return nil
}
