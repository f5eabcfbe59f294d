package bridge

import "fmt"

// ErrUnknownAccessory defines unknown accessory error.
type ErrUnknownAccessory struct {
	ID string
}

// Error formats output.
func (e *ErrUnknownAccessory) Error() string {
	return fmt.Sprintf("accessory %s is not registered", e.ID)
}

// ErrDuplicateAccessory defines repeated registration error.
type ErrDuplicateAccessory struct {
	ID string
}

// Error formats output.
func (e *ErrDuplicateAccessory) Error() string {
	return fmt.Sprintf("accessory %s is already registered", e.ID)
}
