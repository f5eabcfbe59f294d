package server

import "fmt"

// ErrUnknownState defines unsupported requested state error.
type ErrUnknownState struct {
	State string
}

// Error formats output.
func (e *ErrUnknownState) Error() string {
	return fmt.Sprintf("state %s is unknown", e.State)
}

// ErrNoMatches defines glob without matching switches error.
type ErrNoMatches struct {
	Pattern string
}

// Error formats output.
func (e *ErrNoMatches) Error() string {
	return fmt.Sprintf("no switches match %s", e.Pattern)
}

// ErrBadRequest defines generic server error.
type ErrBadRequest struct {
}

// Error formats output.
func (e *ErrBadRequest) Error() string {
	return "bad request"
}
