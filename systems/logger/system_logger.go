package logger

import (
	"github.com/go-home-io/cmdswitch/common"
)

// System logger implementation.
type systemLogger struct {
	logger       common.ILoggerProvider
	systemFields []string
}

// NewSystemLogger constructs a new logger which adds system name
// to every message sent through the main logger.
func NewSystemLogger(logger common.ILoggerProvider, system string) common.ILoggerProvider {
	return &systemLogger{
		logger:       logger,
		systemFields: []string{common.LogSystemToken, system},
	}
}

// Debug sends debug level message.
func (l *systemLogger) Debug(msg string, fields ...string) {
	l.logger.Debug(msg, append(fields, l.systemFields...)...)
}

// Info sends info level message.
func (l *systemLogger) Info(msg string, fields ...string) {
	l.logger.Info(msg, append(fields, l.systemFields...)...)
}

// Warn sends warning level message.
func (l *systemLogger) Warn(msg string, fields ...string) {
	l.logger.Warn(msg, append(fields, l.systemFields...)...)
}

// Error sends error level message.
func (l *systemLogger) Error(msg string, err error, fields ...string) {
	l.logger.Error(msg, err, append(fields, l.systemFields...)...)
}

// Fatal sends fatal level message and exits.
func (l *systemLogger) Fatal(msg string, err error, fields ...string) {
	l.logger.Fatal(msg, err, append(fields, l.systemFields...)...)
}

// Flush flushes logger buffer if any.
func (l *systemLogger) Flush() {
	l.logger.Flush()
}
