// README: Process logger: logrus with JSON output.
package infra

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a JSON logger at level. Unknown levels fall back to info.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
