package api

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The chat UI is served from this process; same-origin is fine and
	// command-line clients send no Origin at all.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS serves the WebSocket chat endpoint. Each connection carries
// one session: the first reply returns the session ID and subsequent
// messages reuse it unless the client sends its own.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	s.logger.Info("websocket connected", "remote", r.RemoteAddr)

	var sessionID string
	for {
		var req ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("websocket closed", "remote", r.RemoteAddr)
			} else {
				s.logger.Debug("websocket read failed", "error", err)
			}
			return
		}
		if req.SessionID != "" {
			sessionID = req.SessionID
		}

		res := s.asst.ProcessTurn(r.Context(), sessionID, req.Message)
		sessionID = res.SessionID

		if err := conn.WriteJSON(ChatResponse{
			SessionID: res.SessionID,
			Reply:     res.Reply,
			Intent:    string(res.Intent),
		}); err != nil {
			s.logger.Debug("websocket write failed", "error", err)
			return
		}
	}
}
