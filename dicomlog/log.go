// Package dicomlog provides the package-wide structured logger through which
// the library reports anomalies worth surfacing to an operator: the P10
// parser warns when bytes are written after the stream has ended, and the
// charset package warns when a registered Specific Character Set term maps
// to an encoding that golang.org/x/text does not provide.
package dicomlog

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// logger is the package-wide logrus instance. Callers that want the
// library's warnings folded into their own logging pipeline should replace
// it with SetLogger rather than relying on logrus's global state.
var logger atomic.Value

func init() {
	logger.Store(logrus.StandardLogger())
}

// SetLogger replaces the logger used for all subsequent log calls. Safe to
// call concurrently with logging.
func SetLogger(l *logrus.Logger) {
	logger.Store(l)
}

func get() *logrus.Logger {
	return logger.Load().(*logrus.Logger)
}

// WithField returns a log entry carrying one structured field, the usual
// entry point for call sites (e.g. WithField("tag", t.String()).Warn(...)).
func WithField(key string, value interface{}) *logrus.Entry {
	return get().WithField(key, value)
}

// WithFields returns a log entry carrying multiple structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return get().WithFields(fields)
}

// Warnf logs a formatted warning with no structured fields.
func Warnf(format string, args ...interface{}) {
	get().Warnf(format, args...)
}

// Debugf logs a formatted debug message with no structured fields.
func Debugf(format string, args ...interface{}) {
	get().Debugf(format, args...)
}
