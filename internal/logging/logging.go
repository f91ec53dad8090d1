// Package logging builds the diagnostic logger shared by one harukit
// invocation. User-facing output does not go through it.
package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// ParseLevel maps a HARUKIT_LOG_LEVEL value to a logrus level. Unknown or
// empty values fall back to warn.
func ParseLevel(value string) logrus.Level {
	level, err := logrus.ParseLevel(strings.TrimSpace(value))
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

// New creates a logger writing to out. verbose forces debug level.
func New(out io.Writer, level string, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(ParseLevel(level))
	}

	return logger
}
