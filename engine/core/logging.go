package core

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	if singleton == nil {
		once.Do(
			func() {
				l := log.NewWithOptions(os.Stderr, log.Options{
					ReportCaller:    true,
					ReportTimestamp: true,
					TimeFormat:      time.RFC3339,
					Prefix:          "Vetro 🔮 ",
				})
				l.SetLevel(log.InfoLevel)
				singleton = &logger{l}
			})
	}
	return singleton
}

// SetLogLevel parses a level name ("debug", "info", "warn", "error", "fatal")
// and applies it. Unknown names keep the current level.
func SetLogLevel(level string) {
	l, err := log.ParseLevel(level)
	if err != nil {
		LogWarn("unknown log level '%s', keeping current level", level)
		return
	}
	getLogger().SetLevel(l)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}
