package mqtt

import (
	"fmt"
	"strings"

	"github.com/go-home-io/cmdswitch/utils"
	"github.com/spf13/cast"
)

const (
	payloadOn      = "ON"
	payloadOff     = "OFF"
	payloadOnline  = "online"
	payloadOffline = "offline"
)

// Topics builds cmdswitch topics under the configured prefix.
type Topics struct {
	prefix string
}

// State returns retained state topic of the switch.
//
// Example: cmdswitch/htpc/state
func (t Topics) State(name string) string {
	return fmt.Sprintf("%s/%s/state", t.prefix, utils.NormalizeName(name))
}

// SetWildcard returns subscription topic for state change requests.
func (t Topics) SetWildcard() string {
	return fmt.Sprintf("%s/+/set", t.prefix)
}

// Status returns service availability topic.
func (t Topics) Status() string {
	return fmt.Sprintf("%s/status", t.prefix)
}

// SwitchFromSet extracts normalized switch name from the set topic.
func (t Topics) SwitchFromSet(topic string) (string, bool) {
	rest := strings.TrimPrefix(topic, t.prefix+"/")
	if rest == topic || !strings.HasSuffix(rest, "/set") {
		return "", false
	}

	name := strings.TrimSuffix(rest, "/set")
	if "" == name || strings.Contains(name, "/") {
		return "", false
	}

	return name, true
}

// Returns state payload.
func statePayload(on bool) string {
	if on {
		return payloadOn
	}

	return payloadOff
}

// Parses requested state. ON/OFF are accepted along with boolean-like values.
func parsePayload(payload []byte) (bool, error) {
	value := strings.TrimSpace(string(payload))
	switch strings.ToUpper(value) {
	case payloadOn:
		return true, nil
	case payloadOff:
		return false, nil
	}

	return cast.ToBoolE(value)
}
