package server

import (
	"net/http"

	"github.com/go-home-io/cmdswitch/common"
	"github.com/gorilla/websocket"
)

// Handles WS upgrade request.
func (s *CmdSwitchServer) handleWS(writer http.ResponseWriter, request *http.Request) {
	c, err := s.wsSettings.Upgrade(writer, request, nil)
	if err != nil {
		s.Logger.Error("Failed to establish a WS connection", err, common.LogSystemToken, logSystem)
		return
	}

	go s.processWSConnection(c)
}

// Pushes characteristic updates into WS connection.
//noinspection GoUnhandledErrorResult
func (s *CmdSwitchServer) processWSConnection(conn *websocket.Conn) {
	defer conn.Close() // nolint: errcheck

	outgoing := make(chan []byte, 1)
	stop := make(chan struct{})
	go s.processIncomingWSMessages(conn, outgoing, stop)

	subID, updates := s.bridge.Subscribe()
	defer s.bridge.Unsubscribe(subID)

	for {
		select {
		case <-stop:
			return
		case msg := <-outgoing:
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case msg, ok := <-updates:
			if !ok {
				return
			}

			if err := conn.WriteJSON(msg); err != nil {
				s.Logger.Debug("Failed to send WS update", common.LogSystemToken, logSystem,
					common.LogErrorToken, err.Error())
				return
			}
		}
	}
}

// Processes incoming WS messages. Only "ping" is supported.
// Writes are done by the connection loop since gorilla connections
// support a single concurrent writer.
func (s *CmdSwitchServer) processIncomingWSMessages(conn *websocket.Conn, outgoing chan []byte,
	stop chan struct{}) {
	defer close(stop)
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.Logger.Debug("Closing WS connection", common.LogSystemToken, logSystem)
			return
		}

		if "ping" == string(message) {
			select {
			case outgoing <- []byte("pong"):
			default:
			}
		}
	}
}
