package switches

import "fmt"

// ErrUnknownSwitch defines unknown switch error.
type ErrUnknownSwitch struct {
	Name string
}

// Error formats output.
func (e *ErrUnknownSwitch) Error() string {
	return fmt.Sprintf("switch %s is unknown", e.Name)
}

// ErrCommandFailed defines failed state transition error.
type ErrCommandFailed struct {
	Name    string
	Command string
	Stderr  string
}

// Error formats output.
func (e *ErrCommandFailed) Error() string {
	if "" == e.Stderr {
		return fmt.Sprintf("switch %s: command failed", e.Name)
	}

	return fmt.Sprintf("switch %s: command failed: %s", e.Name, e.Stderr)
}

// ErrInvalidConfig defines switch definition without a name.
type ErrInvalidConfig struct {
}

// Error formats output.
func (*ErrInvalidConfig) Error() string {
	return "switch name is missing"
}
