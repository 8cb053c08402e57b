package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// serveEvents starts a test server whose /ws endpoint sends the given raw
// messages and then closes the connection.
func serveEvents(t *testing.T, messages ...string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		for _, msg := range messages {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		}
		// Brief pause so the close doesn't race the last write
		time.Sleep(20 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	return server
}

func TestClient_ReceivesEventsInOrder(t *testing.T) {
	var messages []string
	for i := 0; i < 5; i++ {
		messages = append(messages,
			fmt.Sprintf(`{"event":"tracking_update","data":{"hand_count":%d}}`, i))
	}
	server := serveEvents(t, messages...)

	client, err := Dial(context.Background(), server.URL, testLogger())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	for i := 0; i < 5; i++ {
		select {
		case env := <-client.Events():
			if env.Event != "tracking_update" {
				t.Fatalf("event %d: got %q, want tracking_update", i, env.Event)
			}
			var payload struct {
				HandCount int `json:"hand_count"`
			}
			if err := json.Unmarshal(env.Data, &payload); err != nil {
				t.Fatalf("event %d: decoding payload: %v", i, err)
			}
			if payload.HandCount != i {
				t.Fatalf("event %d delivered out of order: hand_count=%d", i, payload.HandCount)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestClient_ChannelClosesOnDisconnect(t *testing.T) {
	server := serveEvents(t, `{"event":"hand_update","data":{}}`)

	client, err := Dial(context.Background(), server.URL, testLogger())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	// Drain the single event, then expect the channel to close.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-client.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("event channel did not close after server disconnect")
		}
	}
}

func TestClient_MalformedMessagesAreSkipped(t *testing.T) {
	server := serveEvents(t,
		`this is not json`,
		`{"event":"hand_update","data":{"gesture":"fist"}}`,
	)

	client, err := Dial(context.Background(), server.URL, testLogger())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer client.Close()

	select {
	case env, ok := <-client.Events():
		if !ok {
			t.Fatal("channel closed before the valid event arrived")
		}
		if env.Event != "hand_update" {
			t.Errorf("got event %q, want hand_update", env.Event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the valid event")
	}
}

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"http://localhost:5000", "ws://localhost:5000/ws", false},
		{"https://tracker.local", "wss://tracker.local/ws", false},
		{"ws://localhost:5000", "ws://localhost:5000/ws", false},
		{"ftp://nope", "", true},
	}

	for _, tt := range tests {
		got, err := websocketURL(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("websocketURL(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("websocketURL(%q): %v", tt.in, err)
			continue
		}
		if !strings.EqualFold(got, tt.want) {
			t.Errorf("websocketURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
