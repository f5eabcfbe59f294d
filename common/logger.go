// Package common contains types shared by every cmdswitch system.
package common

// ILoggerProvider defines logger provider which is passed to every system.
// Fields are key-value pairs, odd trailing keys are ignored.
type ILoggerProvider interface {
	Debug(msg string, fields ...string)
	Info(msg string, fields ...string)
	Warn(msg string, fields ...string)
	Error(msg string, err error, fields ...string)
	Fatal(msg string, err error, fields ...string)
	Flush()
}

// ILevelLogger defines logger which level could be changed after creation.
type ILevelLogger interface {
	SetLevel(level string)
}
