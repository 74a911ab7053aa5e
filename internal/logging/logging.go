// Package logging configures the application logger.
package logging

import (
	"os"

	"fintrack/internal/config"

	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// Setup builds the shared logrus logger. Production gets JSON output for log
// shipping, development keeps the readable text formatter.
func Setup() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(logrus.InfoLevel)

	if config.IsProduction() {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger = l
	return l
}

// L returns the shared logger, initialising it on first use.
func L() *logrus.Logger {
	if logger == nil {
		return Setup()
	}
	return logger
}
