package webserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/sentinelflow/sentinelflow/internal/stats"
)

func startTestServer(t *testing.T) (*Hub, *Server) {
	t.Helper()
	hub := NewHub()
	srv := New(hub, Options{Host: "127.0.0.1", Port: 0})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return hub, srv
}

func TestStateEndpoint(t *testing.T) {
	hub, srv := startTestServer(t)
	hub.Publish(Snapshot{
		Running: true,
		Order:   "ORD-002",
		Steps:   []string{"checking"},
		Stats:   stats.Aggregate{OrdersChecked: 3, EmailsDrafted: 1},
	})

	resp, err := http.Get(srv.URL() + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	defer resp.Body.Close()

	var snap Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}
	if !snap.Running || snap.Order != "ORD-002" || snap.Stats.OrdersChecked != 3 {
		t.Errorf("snapshot = %+v", snap)
	}
}

func TestWebSocketPushesUpdates(t *testing.T) {
	hub, srv := startTestServer(t)
	hub.Publish(Snapshot{Output: "initial"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ws, _, err := websocket.Dial(ctx, "ws://127.0.0.1:"+strconv.Itoa(srv.Port())+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer ws.CloseNow()

	read := func() Snapshot {
		t.Helper()
		_, data, err := ws.Read(ctx)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var env struct {
			Type string   `json:"type"`
			Data Snapshot `json:"data"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if env.Type != "state" {
			t.Fatalf("envelope type = %q", env.Type)
		}
		return env.Data
	}

	if snap := read(); snap.Output != "initial" {
		t.Errorf("first frame output = %q, want current state", snap.Output)
	}

	hub.Publish(Snapshot{Output: "updated"})
	if snap := read(); snap.Output != "updated" {
		t.Errorf("second frame output = %q", snap.Output)
	}
}

func TestHubPublishDoesNotBlockOnSlowSubscriber(t *testing.T) {
	hub := NewHub()
	id, _ := hub.Subscribe()
	defer hub.Unsubscribe(id)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Snapshot{Output: "x"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}
}
