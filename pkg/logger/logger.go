package logger

import (
	"github.com/sirupsen/logrus"
)

// New builds the process-wide JSON logger. The level string comes from
// configuration; unknown values fall back to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}
