package wizard

import (
	"errors"
	"sort"
	"testing"

	"github.com/go-home-io/cmdswitch/mocks"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/switches"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Registry stub.
type fakeRegistry struct {
	configs   map[string]*providers.SwitchConfig
	upsertErr error
}

func (f *fakeRegistry) Names() []string {
	names := make([]string, 0, len(f.configs))
	for k := range f.configs {
		names = append(names, k)
	}

	sort.Strings(names)
	return names
}

func (f *fakeRegistry) Upsert(cfg *providers.SwitchConfig) (*switches.Switch, error) {
	if nil != f.upsertErr {
		return nil, f.upsertErr
	}

	f.configs[cfg.Name] = cfg
	return nil, nil
}

func (f *fakeRegistry) Remove(name string) {
	delete(f.configs, name)
}

func (f *fakeRegistry) Configs() []*providers.SwitchConfig {
	result := make([]*providers.SwitchConfig, 0)
	for _, v := range f.Names() {
		result = append(result, f.configs[v])
	}

	return result
}

func getWizard(names ...string) (*Wizard, *fakeRegistry, *[][]*providers.SwitchConfig) {
	reg := &fakeRegistry{configs: make(map[string]*providers.SwitchConfig)}
	for _, v := range names {
		reg.configs[v] = &providers.SwitchConfig{Name: v}
	}

	saved := make([][]*providers.SwitchConfig, 0)
	w := NewWizard(&ConstructWizard{
		Registry: reg,
		Logger:   mocks.FakeNewLogger(nil),
		Save: func(configs []*providers.SwitchConfig) error {
			saved = append(saved, configs)
			return nil
		},
	})

	return w, reg, &saved
}

func selection(idx int) *Request {
	return &Request{Response: &Response{Selections: []int{idx}}}
}

func inputs(data map[string]string) *Request {
	return &Request{Response: &Response{Inputs: data}}
}

// Tests adding a new switch.
func TestAddSwitch(t *testing.T) {
	w, reg, saved := getWizard()

	p := w.Handle("s", nil)
	assert.Equal(t, "Before You Start...", p.Title)
	assert.Equal(t, interfaceInstruction, p.Interface)

	p = w.Handle("s", &Request{})
	assert.Equal(t, "What do you want to do?", p.Title)
	require.Equal(t, 3, len(p.Items))
	assert.Equal(t, "Add New Switch", p.Items[0].Title)

	p = w.Handle("s", selection(0))
	assert.Equal(t, "New Switch", p.Title)
	assert.Equal(t, "name", p.Items[0].ID)

	p = w.Handle("s", inputs(map[string]string{"name": "HTPC"}))
	assert.Equal(t, "HTPC", p.Title)
	require.Equal(t, 8, len(p.Items))
	assert.Equal(t, "on_cmd", p.Items[0].ID)
	assert.Equal(t, "wakeonlan XX:XX:XX:XX:XX:XX", p.Items[0].Placeholder)

	p = w.Handle("s", inputs(map[string]string{"on_cmd": "wol", "polling": "true", "interval": "5"}))
	assert.Equal(t, "Success", p.Title)

	cfg := reg.configs["HTPC"]
	require.NotNil(t, cfg)
	assert.Equal(t, "wol", providers.StringValue(cfg.OnCmd))
	assert.Nil(t, cfg.OffCmd)
	polling, _ := cfg.PollingValue()
	assert.True(t, polling)
	interval, _ := cfg.IntervalValue()
	assert.Equal(t, 5, interval)

	p = w.Handle("s", &Request{})
	assert.Equal(t, TypeComplete, p.Type)
	require.Equal(t, 1, len(*saved))
	assert.Equal(t, "HTPC", (*saved)[0][0].Name)

	p = w.Handle("s", nil)
	assert.Equal(t, "Before You Start...", p.Title, "session wasn't reset")
}

// Tests missing name.
func TestAddSwitchWithoutName(t *testing.T) {
	w, reg, _ := getWizard()

	w.Handle("s", nil)
	w.Handle("s", nil)
	w.Handle("s", selection(0))
	p := w.Handle("s", inputs(map[string]string{"name": "  "}))
	assert.Equal(t, "Error", p.Title)
	assert.Equal(t, "Name of the switch is missing.", p.Detail)
	assert.Empty(t, reg.configs)

	p = w.Handle("s", nil)
	assert.Equal(t, "What do you want to do?", p.Title)
}

// Tests modifying existing switch.
func TestModifySwitch(t *testing.T) {
	w, reg, saved := getWizard("A", "B")

	w.Handle("s", nil)
	w.Handle("s", nil)
	p := w.Handle("s", selection(1))
	assert.Equal(t, "Which switch do you want to modify?", p.Title)
	require.Equal(t, 2, len(p.Items))
	assert.Equal(t, "B", p.Items[1].Title)

	p = w.Handle("s", selection(1))
	assert.Equal(t, "B", p.Title)
	for _, v := range p.Items {
		assert.Equal(t, placeholderUnchanged, v.Placeholder)
	}

	p = w.Handle("s", inputs(map[string]string{"off_cmd": "halt", "on_cmd": ""}))
	assert.Equal(t, "Success", p.Title)
	assert.Nil(t, reg.configs["B"].OnCmd, "blank input was applied")
	assert.Equal(t, "halt", providers.StringValue(reg.configs["B"].OffCmd))

	w.Handle("s", nil)
	assert.Equal(t, 1, len(*saved))
}

// Tests removing a switch.
func TestRemoveSwitch(t *testing.T) {
	w, reg, saved := getWizard("A", "B")

	w.Handle("s", nil)
	w.Handle("s", nil)
	p := w.Handle("s", selection(2))
	assert.Equal(t, "Which switch do you want to remove?", p.Title)

	p = w.Handle("s", selection(0))
	assert.Equal(t, "The switch is now removed.", p.Detail)
	assert.Equal(t, []string{"B"}, reg.Names())

	p = w.Handle("s", nil)
	assert.Equal(t, TypeComplete, p.Type)
	require.Equal(t, 1, len(*saved))
	assert.Equal(t, 1, len((*saved)[0]))
}

// Tests modification without configured switches.
func TestNoSwitches(t *testing.T) {
	w, _, _ := getWizard()

	w.Handle("s", nil)
	w.Handle("s", nil)
	p := w.Handle("s", selection(2))
	assert.Equal(t, "Unavailable", p.Title)
	assert.Equal(t, "No switch is configured.", p.Detail)

	p = w.Handle("s", nil)
	assert.Equal(t, "What do you want to do?", p.Title)
}

// Tests invalid selections.
func TestInvalidSelection(t *testing.T) {
	w, _, _ := getWizard("A")

	w.Handle("s", nil)
	w.Handle("s", nil)
	p := w.Handle("s", &Request{})
	assert.Equal(t, "Error", p.Title)

	w.Handle("s", nil)
	p = w.Handle("s", selection(7))
	assert.Equal(t, "Error", p.Title)

	w.Handle("s", nil)
	w.Handle("s", selection(1))
	p = w.Handle("s", selection(5))
	assert.Equal(t, "Error", p.Title)
}

// Tests that sessions are independent and can be terminated.
func TestSessions(t *testing.T) {
	w, _, _ := getWizard()

	w.Handle("a", nil)
	p := w.Handle("b", nil)
	assert.Equal(t, "Before You Start...", p.Title)

	assert.Nil(t, w.Handle("a", &Request{Type: TypeTerminate}))
	p = w.Handle("a", nil)
	assert.Equal(t, "Before You Start...", p.Title)

	p = w.Handle("b", nil)
	assert.Equal(t, "What do you want to do?", p.Title)
}

// Tests failures.
func TestFailures(t *testing.T) {
	w, reg, _ := getWizard()
	reg.upsertErr = errors.New("test")

	w.Handle("s", nil)
	w.Handle("s", nil)
	w.Handle("s", selection(0))
	w.Handle("s", inputs(map[string]string{"name": "A"}))
	p := w.Handle("s", inputs(map[string]string{}))
	assert.Equal(t, "Error", p.Title)

	w.save = func([]*providers.SwitchConfig) error { return errors.New("test") }
	w.Handle("s", nil)
	w.Handle("s", selection(0))
	w.Handle("s", inputs(map[string]string{"name": "A"}))
	reg.upsertErr = nil
	w.Handle("s", inputs(map[string]string{}))
	p = w.Handle("s", nil)
	assert.Equal(t, "Failed to save configuration.", p.Detail)
}
