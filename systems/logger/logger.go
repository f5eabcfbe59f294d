// Package logger provides logrus-backed implementation of cmdswitch logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/sirupsen/logrus"
)

// Console logger implementation.
type consoleLogger struct {
	logger *logrus.Logger
}

// NewConsoleLogger constructs a new console logger with the requested level.
func NewConsoleLogger(level string) common.ILoggerProvider {
	return newConsoleLogger(os.Stdout, level)
}

// Constructs logger writing into provided writer.
func newConsoleLogger(out io.Writer, level string) *consoleLogger {
	l := logrus.New()
	l.Out = out
	l.Level = getLogLevel(level)
	l.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "Jan _2 15:04:05.000",
	}

	return &consoleLogger{
		logger: l,
	}
}

// SetLevel changes logging level.
func (p *consoleLogger) SetLevel(level string) {
	p.logger.SetLevel(getLogLevel(level))
}

// Debug prints debug level message.
func (p *consoleLogger) Debug(msg string, fields ...string) {
	p.logger.WithFields(withFields(fields...)).Debug(msg)
}

// Info prints info level message.
func (p *consoleLogger) Info(msg string, fields ...string) {
	p.logger.WithFields(withFields(fields...)).Info(msg)
}

// Warn prints warning level message.
func (p *consoleLogger) Warn(msg string, fields ...string) {
	p.logger.WithFields(withFields(fields...)).Warn(msg)
}

// Error prints error level message.
func (p *consoleLogger) Error(msg string, err error, fields ...string) {
	p.logger.WithFields(withFields(withError(err, fields)...)).Error(msg)
}

// Fatal prints fatal level message and exits.
func (p *consoleLogger) Fatal(msg string, err error, fields ...string) {
	p.logger.WithFields(withFields(withError(err, fields)...)).Fatal(msg)
}

// Flush isn't needed for a console logger.
func (p *consoleLogger) Flush() {
}

// Appends error description to the fields.
func withError(err error, fields []string) []string {
	if nil == err {
		return fields
	}

	return append(fields, common.LogErrorToken, err.Error())
}

// Helper method to add generic fields to the output.
func withFields(fields ...string) logrus.Fields {
	fLen := len(fields)
	result := make(logrus.Fields, fLen/2)
	for ii := 0; ii < fLen; ii += 2 {
		if ii+1 >= fLen {
			break
		}

		result[fields[ii]] = fields[ii+1]
	}

	return result
}

// Converts configured level into logrus one.
func getLogLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "dbg":
		return logrus.DebugLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error", "err":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
