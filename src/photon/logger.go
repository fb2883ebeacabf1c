package photon

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var levelNames = map[string]logrus.Level{
	"debug":   logrus.DebugLevel,
	"info":    logrus.InfoLevel,
	"warn":    logrus.WarnLevel,
	"warning": logrus.WarnLevel,
	"error":   logrus.ErrorLevel,
}

var baseLogger = newBaseLogger(os.Stderr)

func newBaseLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	return l
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	baseLogger.SetLevel(l)
}

// GetLogLevel returns the current global log level.
func GetLogLevel() logrus.Level { return baseLogger.GetLevel() }

// SetLogOutput redirects log output to w.
func SetLogOutput(w io.Writer) { baseLogger.SetOutput(w) }

// SetLogFile routes log output to a size-rotated file. The returned closer
// flushes and closes the file; callers should defer it.
func SetLogFile(path string, maxSizeMB int) io.Closer {
	if maxSizeMB <= 0 {
		maxSizeMB = 5
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: 3,
		MaxAge:     7,
	}
	baseLogger.SetOutput(lj)
	return lj
}

func logf(l logrus.Level, format string, args ...interface{}) {
	if !baseLogger.IsLevelEnabled(l) {
		return
	}
	// Without args the input is already a finished message; formatting it again
	// would turn literal % characters into %!x(MISSING).
	if len(args) == 0 {
		baseLogger.Log(l, format)
		return
	}
	baseLogger.Log(l, fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(logrus.DebugLevel, format, a...) }
func Infof(format string, a ...interface{})  { logf(logrus.InfoLevel, format, a...) }
func Warnf(format string, a ...interface{})  { logf(logrus.WarnLevel, format, a...) }
func Errorf(format string, a ...interface{}) { logf(logrus.ErrorLevel, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
