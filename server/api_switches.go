package server

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/wizard"
	"github.com/gorilla/mux"
)

// Returns all switches with stored states.
func (s *CmdSwitchServer) getSwitches(writer http.ResponseWriter, _ *http.Request) {
	respond(writer, s.commandListSwitches())
}

// Returns current switch state.
func (s *CmdSwitchServer) getSwitch(writer http.ResponseWriter, request *http.Request) {
	sw, err := s.commandGetSwitch(mux.Vars(request)[string(urlSwitchName)])
	if err != nil {
		respondError(writer, err)
		return
	}

	respond(writer, sw)
}

// Adds or partially updates switch.
func (s *CmdSwitchServer) putSwitch(writer http.ResponseWriter, request *http.Request) {
	cfg := &providers.SwitchConfig{}
	b, _ := ioutil.ReadAll(request.Body)
	if len(b) > 0 {
		if err := json.Unmarshal(b, cfg); err != nil {
			respondError(writer, &ErrBadRequest{})
			return
		}
	}

	cfg.Name = mux.Vars(request)[string(urlSwitchName)]
	sw, err := s.commandUpsertSwitch(cfg)
	if err != nil {
		respondError(writer, err)
		return
	}

	respond(writer, sw)
}

// Removes switch.
func (s *CmdSwitchServer) deleteSwitch(writer http.ResponseWriter, request *http.Request) {
	respondOkError(writer, s.commandRemoveSwitch(mux.Vars(request)[string(urlSwitchName)]))
}

// Changes switch state.
func (s *CmdSwitchServer) switchCommand(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	respondOkError(writer, s.commandSetState(vars[string(urlSwitchName)], vars[string(urlState)]))
}

// Changes state of every switch matching the pattern.
func (s *CmdSwitchServer) groupCommand(writer http.ResponseWriter, request *http.Request) {
	vars := mux.Vars(request)
	results, err := s.commandSetGroupState(vars[string(urlPattern)], vars[string(urlState)])
	if err != nil {
		respondError(writer, err)
		return
	}

	respond(writer, results)
}

// Processes single set-up dialogue step.
func (s *CmdSwitchServer) wizardStep(writer http.ResponseWriter, request *http.Request) {
	req := &wizard.Request{}
	b, _ := ioutil.ReadAll(request.Body)
	if len(b) > 0 {
		if err := json.Unmarshal(b, req); err != nil {
			respondError(writer, &ErrBadRequest{})
			return
		}
	}

	page := s.wizard.Handle(mux.Vars(request)[string(urlSession)], req)
	if nil == page {
		respondOk(writer)
		return
	}

	respond(writer, page)
}
