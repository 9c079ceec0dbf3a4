package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log is the process wide logger. It starts as a quiet stderr logger so
// packages and tests can log before Init runs.
var Log = newDefault()

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	return l
}

// Init configures Log from LOG_LEVEL and LOG_FORMAT. Call it once from main.
func Init() {
	Log = logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	Log.SetOutput(os.Stdout)
}

// Entity returns a log entry tagged with an entity name and id.
func Entity(name string, id uint64) *logrus.Entry {
	return Log.WithFields(logrus.Fields{
		"entity": name,
		"id":     id,
	})
}
