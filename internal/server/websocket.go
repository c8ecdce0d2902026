package server

import (
	"bytes"
	"encoding/json"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin checks are delegated to the CORS configuration of the
		// surrounding deployment.
		return true
	},
}

// wsResponse is the payload sent back for every processed frame.
type wsResponse struct {
	Status string        `json:"status"` // "completed" or "error"
	Result *DetectResult `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// detectWebSocketHandler serves streaming clients: every binary message is a
// complete encoded image, answered with one JSON detection result.
func (s *Server) detectWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()
	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.serveWebSocket(conn)
}

func (s *Server) serveWebSocket(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		if messageType != websocket.BinaryMessage {
			s.writeWSError(conn, "expected a binary image frame")
			continue
		}

		detectRequestsTotal.WithLabelValues("websocket", "received").Inc()
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			detectRequestsTotal.WithLabelValues("websocket", "error").Inc()
			s.writeWSError(conn, "invalid image format")
			continue
		}

		detectRequestsTotal.WithLabelValues("websocket", "ok").Inc()
		s.writeWSMessage(conn, wsResponse{Status: "completed", Result: s.detect(img)})
	}
}

func (s *Server) writeWSError(conn *websocket.Conn, message string) {
	s.writeWSMessage(conn, wsResponse{Status: "error", Error: message})
}

func (s *Server) writeWSMessage(conn *websocket.Conn, resp wsResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WebSocket message", "error", err)
	}
}
