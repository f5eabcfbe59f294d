package server

// muxKeys describes enum with known API tokens.
type muxKeys string

const (
	// urlSwitchName describes switch name URL param.
	urlSwitchName muxKeys = "name"
	// urlState describes requested state URL param.
	urlState muxKeys = "state"
	// urlPattern describes switches glob URL param.
	urlPattern muxKeys = "pattern"
	// urlSession describes set-up wizard session URL param.
	urlSession muxKeys = "session"
	// routeAPI describes base api prefix.
	routeAPI = "/api/v1"
	// stateOn describes "on" URL state.
	stateOn = "on"
	// stateOff describes "off" URL state.
	stateOff = "off"
)
