package mqtt

import "fmt"

// ErrConnectionFailed defines broker connection error.
type ErrConnectionFailed struct {
	Broker string
}

// Error formats output.
func (e *ErrConnectionFailed) Error() string {
	return fmt.Sprintf("failed to connect to %s", e.Broker)
}
