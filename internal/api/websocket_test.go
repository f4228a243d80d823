package api

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/amterp/sprintboard/internal/id"
	"github.com/amterp/sprintboard/internal/store"
	"github.com/amterp/sprintboard/testutil"
)

func newTestHub(t *testing.T) *WebSocketHub {
	t.Helper()
	boards := store.NewBoardStore(testutil.TestBoard())
	hub := NewWebSocketHub(boards)
	boards.Subscribe(hub)
	return hub
}

func newTestClient(hub *WebSocketHub) *WebSocketClient {
	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}
	hub.addClient(client)
	return client
}

// receive reads one queued message from the client's send channel.
func receive(t *testing.T, client *WebSocketClient) WebSocketMessage {
	t.Helper()
	select {
	case msg := <-client.send:
		var received WebSocketMessage
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		return received
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Did not receive message")
		return WebSocketMessage{}
	}
}

func TestWebSocketHub_AddRemoveClient(t *testing.T) {
	hub := newTestHub(t)

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	if hub.ClientCount() != 1 {
		t.Errorf("Expected 1 client, got %d", hub.ClientCount())
	}

	hub.removeClient(client)
	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestWebSocketHub_RemoveClientClosesChannel(t *testing.T) {
	hub := newTestHub(t)

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	hub.removeClient(client)

	// Verify channel is closed by checking if receive returns immediately
	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("Channel should be closed")
		}
	default:
		t.Error("Channel should be closed and readable")
	}
}

func TestWebSocketHub_RemoveClientIdempotent(t *testing.T) {
	hub := newTestHub(t)

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	hub.removeClient(client)
	hub.removeClient(client) // Should not panic

	if hub.ClientCount() != 0 {
		t.Errorf("Expected 0 clients, got %d", hub.ClientCount())
	}
}

func TestWebSocketHub_Broadcast(t *testing.T) {
	hub := newTestHub(t)

	client1 := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}
	client2 := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client1)
	hub.addClient(client2)

	testData := []byte(`{"test": "data"}`)
	hub.broadcast(testData)

	// Both clients should receive the message
	select {
	case msg := <-client1.send:
		if string(msg) != string(testData) {
			t.Errorf("Client 1 got %q, want %q", msg, testData)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Client 1 did not receive message")
	}

	select {
	case msg := <-client2.send:
		if string(msg) != string(testData) {
			t.Errorf("Client 2 got %q, want %q", msg, testData)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Client 2 did not receive message")
	}
}

func TestWebSocketHub_BroadcastToRemovedClient(t *testing.T) {
	hub := newTestHub(t)

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	hub.addClient(client)
	hub.removeClient(client)

	// This should not panic even though client's channel is closed
	hub.broadcast([]byte(`{"test": "data"}`))
}

func TestWebSocketHub_TrySendRecovery(t *testing.T) {
	hub := newTestHub(t)

	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 10),
	}

	// Close the channel to simulate a removed client
	close(client.send)

	// trySend should recover from the panic and not crash
	hub.trySend(client, []byte(`test`))
	// If we get here without panic, the test passes
}

func TestWebSocketHub_BroadcastFullBuffer(t *testing.T) {
	hub := newTestHub(t)

	// Create a client with a full buffer
	client := &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, 1), // Small buffer
	}
	hub.addClient(client)

	// Fill the buffer
	client.send <- []byte("first")

	// This broadcast should trigger removal due to full buffer
	hub.broadcast([]byte("second"))

	// Client should be removed
	if hub.ClientCount() != 0 {
		t.Errorf("Expected client to be removed due to full buffer, got %d clients", hub.ClientCount())
	}
}

func TestWebSocketHub_OnBoardChange(t *testing.T) {
	hub := newTestHub(t)
	client := newTestClient(hub)

	hub.OnBoardChange(testutil.TestBoard())

	received := receive(t, client)
	if received.Type != MessageTypeBoard {
		t.Errorf("Type = %q, want %q", received.Type, MessageTypeBoard)
	}

	var resp BoardResponse
	if err := json.Unmarshal(received.Data, &resp); err != nil {
		t.Fatalf("Failed to unmarshal board: %v", err)
	}
	if len(resp.Columns) != 3 {
		t.Errorf("Expected 3 columns, got %d", len(resp.Columns))
	}
}

func TestWebSocketHub_HandleDragEnd(t *testing.T) {
	hub := newTestHub(t)
	client := newTestClient(hub)

	hub.handleMessage(client, []byte(`{"type":"drag_end","data":{"reason":"DROP",`+
		`"source":{"droppableId":"todo","index":1},"destination":{"droppableId":"doing","index":0}}}`))

	received := receive(t, client)
	if received.Type != MessageTypeBoard {
		t.Fatalf("Type = %q, want %q", received.Type, MessageTypeBoard)
	}

	current := hub.boards.Current()
	if colID, idx, _ := current.FindCard("b"); colID != "doing" || idx != 0 {
		t.Errorf("Expected b at doing[0], got %s[%d]", colID, idx)
	}
}

func TestWebSocketHub_HandleDragEndCancelled(t *testing.T) {
	hub := newTestHub(t)
	client := newTestClient(hub)

	hub.handleMessage(client, []byte(`{"type":"drag_end","data":{"reason":"CANCEL",`+
		`"source":{"droppableId":"todo","index":1},"destination":null}}`))

	received := receive(t, client)
	if received.Type != MessageTypeBoard {
		t.Errorf("Type = %q, want %q", received.Type, MessageTypeBoard)
	}
	if colID, idx, _ := hub.boards.Current().FindCard("b"); colID != "todo" || idx != 1 {
		t.Errorf("Expected b to stay at todo[1], got %s[%d]", colID, idx)
	}
}

func TestWebSocketHub_HandleMessageErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"invalid json", `{`, "invalid JSON message"},
		{"unknown type", `{"type":"shout"}`, "unknown message type"},
		{"bad payload", `{"type":"drag_end","data":{"source":{"droppableId":"todo","index":-1}}}`, "gesture"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hub := newTestHub(t)
			sender := newTestClient(hub)
			other := newTestClient(hub)

			hub.handleMessage(sender, []byte(tt.raw))

			received := receive(t, sender)
			if received.Type != MessageTypeError {
				t.Fatalf("Type = %q, want %q", received.Type, MessageTypeError)
			}
			if !strings.Contains(string(received.Data), tt.want) {
				t.Errorf("Error %s does not mention %q", received.Data, tt.want)
			}

			select {
			case msg := <-other.send:
				t.Errorf("Other client should not receive errors, got %s", msg)
			default:
			}
		})
	}
}

func TestWebSocket_EndToEnd(t *testing.T) {
	boards := store.NewBoardStore(testutil.TestBoard())
	srv := NewServer(boards, store.NewCounterStore(), id.NewSequence("card"), ServerOptions{})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var initial WebSocketMessage
	if err := conn.ReadJSON(&initial); err != nil {
		t.Fatalf("Failed to read initial board: %v", err)
	}
	if initial.Type != MessageTypeBoard {
		t.Fatalf("Initial message type = %q, want %q", initial.Type, MessageTypeBoard)
	}

	err = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"drag_end","data":{`+
		`"source":{"droppableId":"todo","index":0},"destination":{"droppableId":"done","index":0}}}`))
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var update WebSocketMessage
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("Failed to read update: %v", err)
	}
	var resp BoardResponse
	if err := json.Unmarshal(update.Data, &resp); err != nil {
		t.Fatalf("Failed to unmarshal board: %v", err)
	}
	if got := cardIDs(resp.Columns[2]); !equalIDs(got, []string{"a"}) {
		t.Errorf("Expected done [a], got %v", got)
	}
}
