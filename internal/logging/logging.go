package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// InitLogger sets up the shared logger and applies the given level. The
// logger instance is created once; later calls only adjust the level, so
// packages that grabbed it during init see the change.
func InitLogger(level logrus.Level) {
	once.Do(func() {
		logger = logrus.New()
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	logger.SetLevel(level)
}

// GetLogger returns the shared logger, initializing it at info level when
// InitLogger was never called.
func GetLogger() *logrus.Logger {
	if logger == nil {
		InitLogger(logrus.InfoLevel)
	}
	return logger
}
