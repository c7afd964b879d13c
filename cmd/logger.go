package cmd

import (
	"github.com/sirupsen/logrus"
)

// newLogger builds the per-run logger. Verbose runs log at debug level so
// individual measurements and poll attempts are visible alongside the
// formatter's step output.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})

	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}
