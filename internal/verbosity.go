package internal

import (
	"github.com/sirupsen/logrus"
)

// DEFAULT_VERBOSITY is the verbosity of the command line tools.
const DEFAULT_VERBOSITY = 2

// LogLevel maps a verbosity, 0 (most verbose) to 5 (fatal errors only),
// to a log level. Out of range values are clamped.
func LogLevel(verbosity int) logrus.Level {
	levels := [...]logrus.Level{
		logrus.TraceLevel,
		logrus.DebugLevel,
		logrus.InfoLevel,
		logrus.WarnLevel,
		logrus.ErrorLevel,
		logrus.FatalLevel,
	}

	return levels[min(max(verbosity, 0), len(levels)-1)]
}
