package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/systems/switches"
)

// Plain HTTP_200 API response.
func respondOk(writer http.ResponseWriter) {
	respond(writer, map[string]string{"status": "OK"})
}

// Generic API respond.
func respond(writer http.ResponseWriter, data interface{}) {
	respondStatus(writer, http.StatusOK, data)
}

// Responds with JSON and provided status.
func respondStatus(writer http.ResponseWriter, status int, data interface{}) {
	d, err := json.Marshal(data)
	if err != nil {
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	writer.Write(d) // nolint: gosec, errcheck
}

// Validates whether error is not null and responds different status
// depending on it.
func respondOkError(writer http.ResponseWriter, err error) {
	if err != nil {
		respondError(writer, err)
	} else {
		respondOk(writer)
	}
}

// Error API response. Status depends on the error type.
func respondError(writer http.ResponseWriter, err error) {
	respondStatus(writer, errorStatus(err), map[string]string{"status": "ERROR", "problem": err.Error()})
}

// Maps known errors to HTTP statuses.
func errorStatus(err error) int {
	switch err.(type) {
	case *switches.ErrUnknownSwitch, *ErrNoMatches:
		return http.StatusNotFound
	case *switches.ErrInvalidConfig, *ErrUnknownState, *ErrBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Logger middleware for the API.
func (s *CmdSwitchServer) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Logger.Debug("REST invocation", common.LogURLToken, r.RequestURI, common.LogSystemToken, logSystem)
		next.ServeHTTP(w, r)
	})
}

// Basic auth middleware for the API. Does nothing if users store is disabled.
func (s *CmdSwitchServer) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		security := s.Settings.Security()
		if nil == security || !security.Enabled() {
			next.ServeHTTP(w, r)
			return
		}

		if _, err := security.Authorize(r.Header); err != nil {
			s.Logger.Warn("Unauthorized access attempt", common.LogURLToken, r.RequestURI,
				common.LogSystemToken, logSystem)
			respondUnAuth(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Plain HTTP_401 API response.
func respondUnAuth(writer http.ResponseWriter) {
	writer.Header().Set("WWW-Authenticate", `Basic realm="cmdswitch"`)
	http.Error(writer, "Unauthorized", http.StatusUnauthorized)
}

// Converts URL state into a boolean.
func parseState(state string) (bool, error) {
	switch state {
	case stateOn:
		return true, nil
	case stateOff:
		return false, nil
	default:
		return false, &ErrUnknownState{State: state}
	}
}
