package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

type wsEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		return
	}
	defer ws.CloseNow()

	ctx := r.Context()

	id, updates := s.hub.Subscribe()
	defer s.hub.Unsubscribe(id)

	// Current state first, then live updates.
	if err := writeSnapshot(ctx, ws, s.hub.Last()); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				ws.Close(websocket.StatusNormalClosure, "stream ended")
				return
			}
			if err := writeSnapshot(ctx, ws, snap); err != nil {
				return
			}
		}
	}
}

func writeSnapshot(ctx context.Context, ws *websocket.Conn, snap Snapshot) error {
	data, err := json.Marshal(wsEnvelope{Type: "state", Data: snap})
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return ws.Write(writeCtx, websocket.MessageText, data)
}
