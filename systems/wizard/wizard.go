// Package wizard contains interactive switch set-up dialogue.
package wizard

import (
	"strings"
	"sync"
	"time"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/switches"
	"github.com/patrickmn/go-cache"
)

// DefaultSessionTTL defines how long abandoned dialogue is kept.
const DefaultSessionTTL = 10 * time.Minute

// Dialogue step.
type step int

const (
	stepInstruction step = iota
	stepChooseOperation
	stepChooseTarget
	stepEditFields
	stepConfirm
)

// Chosen operation.
type operation int

const (
	operationAdd operation = iota
	operationModify
	operationRemove
)

// Per-session dialogue context.
type session struct {
	step      step
	operation operation
	targets   []string
	name      string
}

// IRegistry defines switch registry operations used by the dialogue.
type IRegistry interface {
	Names() []string
	Upsert(*providers.SwitchConfig) (*switches.Switch, error)
	Remove(name string)
	Configs() []*providers.SwitchConfig
}

// Wizard drives set-up dialogues.
type Wizard struct {
	mutex    sync.Mutex
	sessions *cache.Cache
	registry IRegistry
	save     func([]*providers.SwitchConfig) error
	logger   common.ILoggerProvider
	handlers map[step]func(*session, *Request) *Page
}

// ConstructWizard has data required for a new wizard.
type ConstructWizard struct {
	Registry   IRegistry
	Save       func([]*providers.SwitchConfig) error
	Logger     common.ILoggerProvider
	SessionTTL time.Duration
}

// NewWizard constructs a new wizard.
func NewWizard(ctor *ConstructWizard) *Wizard {
	ttl := ctor.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	w := &Wizard{
		sessions: cache.New(ttl, 2*ttl),
		registry: ctor.Registry,
		save:     ctor.Save,
		logger:   ctor.Logger,
	}

	w.handlers = map[step]func(*session, *Request) *Page{
		stepInstruction:     w.instruction,
		stepChooseOperation: w.chooseOperation,
		stepChooseTarget:    w.chooseTarget,
		stepEditFields:      w.editFields,
		stepConfirm:         w.confirm,
	}

	return w
}

// Handle processes a single dialogue request.
// Returns nil once dialogue was terminated.
func (w *Wizard) Handle(sessionID string, req *Request) *Page {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if nil != req && TypeTerminate == req.Type {
		w.sessions.Delete(sessionID)
		w.logger.Debug("Dialogue is terminated", common.LogSessionToken, sessionID)
		return nil
	}

	s := &session{step: stepInstruction}
	if v, ok := w.sessions.Get(sessionID); ok {
		s = v.(*session)
	}

	if nil == req {
		req = &Request{}
	}

	if nil == req.Response {
		req.Response = &Response{}
	}

	page := w.handlers[s.step](s, req)
	if TypeComplete == page.Type {
		w.sessions.Delete(sessionID)
	} else {
		w.sessions.SetDefault(sessionID, s)
	}

	return page
}

// Shows instruction.
func (w *Wizard) instruction(s *session, _ *Request) *Page {
	s.step = stepChooseOperation
	return welcomePage()
}

// Shows possible operations.
func (w *Wizard) chooseOperation(s *session, _ *Request) *Page {
	s.step = stepChooseTarget
	return operationsPage()
}

// Processes chosen operation.
func (w *Wizard) chooseTarget(s *session, req *Request) *Page {
	selection, ok := firstSelection(req)
	if !ok {
		s.step = stepChooseOperation
		return errorPage("Nothing is selected.")
	}

	switch selection {
	case choiceAdd:
		s.operation = operationAdd
		s.step = stepEditFields
		return newSwitchPage()
	case choiceModify, choiceRemove:
	default:
		s.step = stepChooseOperation
		return errorPage("Unknown operation.")
	}

	names := w.registry.Names()
	if 0 == len(names) {
		s.step = stepChooseOperation
		return instructionPage("Unavailable", "No switch is configured.")
	}

	title := "Which switch do you want to modify?"
	s.operation = operationModify
	if choiceRemove == selection {
		title = "Which switch do you want to remove?"
		s.operation = operationRemove
	}

	s.targets = names
	s.step = stepEditFields
	return listPage(title, names)
}

// Processes chosen switch or new switch name.
func (w *Wizard) editFields(s *session, req *Request) *Page {
	if operationAdd == s.operation {
		name := strings.TrimSpace(req.Response.Inputs["name"])
		if "" == name {
			s.step = stepChooseOperation
			return errorPage("Name of the switch is missing.")
		}

		s.name = name
		s.targets = nil
		s.step = stepConfirm
		return fieldsPage(name, false)
	}

	selection, ok := firstSelection(req)
	if !ok || selection >= len(s.targets) {
		s.step = stepChooseOperation
		return errorPage("Name of the switch is missing.")
	}

	name := s.targets[selection]
	s.targets = nil
	if operationRemove == s.operation {
		w.registry.Remove(name)
		w.logger.Info("Switch is removed by user", common.LogSwitchNameToken, name)
		s.step = stepConfirm
		s.name = ""
		return instructionPage("Success", "The switch is now removed.")
	}

	s.name = name
	s.step = stepConfirm
	return fieldsPage(name, true)
}

// Applies entered fields, or saves configuration after removal.
func (w *Wizard) confirm(s *session, req *Request) *Page {
	if "" != s.name {
		cfg := configFromInputs(s.name, req.Response.Inputs)
		s.name = ""
		if _, err := w.registry.Upsert(cfg); err != nil {
			w.logger.Error("Failed to update switch", err, common.LogSwitchNameToken, cfg.Name)
			s.step = stepChooseOperation
			return errorPage("Failed to update the switch.")
		}

		return instructionPage("Success", "The new switch is now updated.")
	}

	if err := w.save(w.registry.Configs()); err != nil {
		w.logger.Error("Failed to save configuration", err)
		s.step = stepChooseOperation
		return errorPage("Failed to save configuration.")
	}

	return &Page{Type: TypeComplete, Title: "Saved"}
}

// Builds partial switch definition: blank inputs are left unspecified.
func configFromInputs(name string, inputs map[string]string) *providers.SwitchConfig {
	cfg := &providers.SwitchConfig{Name: name}
	value := func(key string) (string, bool) {
		v := strings.TrimSpace(inputs[key])
		return v, "" != v
	}

	if v, ok := value("on_cmd"); ok {
		cfg.OnCmd = providers.String(v)
	}
	if v, ok := value("off_cmd"); ok {
		cfg.OffCmd = providers.String(v)
	}
	if v, ok := value("state_cmd"); ok {
		cfg.StateCmd = providers.String(v)
	}
	if v, ok := value("polling"); ok {
		cfg.Polling = v
	}
	if v, ok := value("interval"); ok {
		cfg.Interval = v
	}

	cfg.Manufacturer, _ = value("manufacturer")
	cfg.Model, _ = value("model")
	cfg.Serial, _ = value("serial")
	return cfg
}

func firstSelection(req *Request) (int, bool) {
	if 0 == len(req.Response.Selections) || req.Response.Selections[0] < 0 {
		return 0, false
	}

	return req.Response.Selections[0], true
}
