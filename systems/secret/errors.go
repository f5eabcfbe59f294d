package secret

import "fmt"

// ErrUnknownSecret defines missing secret error.
type ErrUnknownSecret struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownSecret) Error() string {
	return fmt.Sprintf("secret %s is not found", e.Name)
}
