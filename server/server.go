// Package server contains cmdswitch HTTP control surface.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/go-home-io/cmdswitch/providers"
	"github.com/go-home-io/cmdswitch/systems/switches"
	"github.com/go-home-io/cmdswitch/systems/wizard"
	"github.com/gobwas/glob"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	// Logger system representation.
	logSystem = "server"
)

// ISwitchRegistry defines switch registry operations exposed by the API.
type ISwitchRegistry interface {
	Names() []string
	Get(name string) (*switches.Switch, bool)
	State(name string) (bool, bool)
	Upsert(*providers.SwitchConfig) (*switches.Switch, error)
	Remove(name string)
	Match(pattern glob.Glob) []string
}

// ISwitchController defines switch state operations exposed by the API.
type ISwitchController interface {
	GetPowerState(name string) (bool, error)
	SetPowerState(name string, on bool) error
}

// IWizard defines set-up dialogue.
type IWizard interface {
	Handle(sessionID string, req *wizard.Request) *wizard.Page
}

// CmdSwitchServer describes HTTP control surface.
type CmdSwitchServer struct {
	Settings providers.ISettingsProvider
	Logger   common.ILoggerProvider

	registry   ISwitchRegistry
	controller ISwitchController
	bridge     providers.IBridgeProvider
	wizard     IWizard

	wsSettings websocket.Upgrader
	httpServer *http.Server
}

// ConstructServer has data required for a new server.
type ConstructServer struct {
	Settings   providers.ISettingsProvider
	Registry   ISwitchRegistry
	Controller ISwitchController
	Bridge     providers.IBridgeProvider
	Wizard     IWizard
}

// NewServer constructs a new server.
func NewServer(ctor *ConstructServer) *CmdSwitchServer {
	s := &CmdSwitchServer{
		Settings:   ctor.Settings,
		Logger:     ctor.Settings.SystemLogger(),
		registry:   ctor.Registry,
		controller: ctor.Controller,
		bridge:     ctor.Bridge,
		wizard:     ctor.Wizard,
		wsSettings: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.Settings.Platform().API.Port),
		Handler: s.Router(),
	}

	return s
}

// Start launches HTTP server.
func (s *CmdSwitchServer) Start() {
	go func() {
		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			s.Logger.Fatal("Failed to start server", err, common.LogSystemToken, logSystem)
		}
	}()

	s.Logger.Info(fmt.Sprintf("Started server on port %d", s.Settings.Platform().API.Port),
		common.LogSystemToken, logSystem)
}

// Shutdown gracefully stops HTTP server.
func (s *CmdSwitchServer) Shutdown(ctx context.Context) error {
	return errors.Wrap(s.httpServer.Shutdown(ctx), "shutdown failed")
}

// Router returns API handler with recovery and CORS.
func (s *CmdSwitchServer) Router() http.Handler {
	router := mux.NewRouter()
	s.registerAPI(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(&recoveryLogger{logger: s.Logger}),
	)(cors(router))
}

// All API registration.
func (s *CmdSwitchServer) registerAPI(router *mux.Router) {
	publicRouter := router.PathPrefix("/pub").Subrouter()
	publicRouter.HandleFunc("/ping", s.ping).Methods(http.MethodGet)

	apiRouter := router.PathPrefix(routeAPI).Subrouter()
	apiRouter.HandleFunc("/switch", s.getSwitches).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/switch/{%s}", urlSwitchName), s.getSwitch).Methods(http.MethodGet)
	apiRouter.HandleFunc(fmt.Sprintf("/switch/{%s}", urlSwitchName), s.putSwitch).Methods(http.MethodPut)
	apiRouter.HandleFunc(fmt.Sprintf("/switch/{%s}", urlSwitchName), s.deleteSwitch).Methods(http.MethodDelete)
	apiRouter.HandleFunc(fmt.Sprintf("/switch/{%s}/{%s}", urlSwitchName, urlState),
		s.switchCommand).Methods(http.MethodPost)
	apiRouter.HandleFunc(fmt.Sprintf("/command/{%s}/{%s}", urlPattern, urlState),
		s.groupCommand).Methods(http.MethodPost)
	apiRouter.HandleFunc(fmt.Sprintf("/wizard/{%s}", urlSession), s.wizardStep).Methods(http.MethodPost)
	apiRouter.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	apiRouter.Use(s.logMiddleware)
	apiRouter.Use(s.authMiddleware)
}

// Sends recovered panics into the system logger.
type recoveryLogger struct {
	logger common.ILoggerProvider
}

// Println implements handlers.RecoveryHandlerLogger.
func (r *recoveryLogger) Println(v ...interface{}) {
	r.logger.Error("Recovered from panic", errors.New(fmt.Sprint(v...)), common.LogSystemToken, logSystem)
}
