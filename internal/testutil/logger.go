package testutil

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
