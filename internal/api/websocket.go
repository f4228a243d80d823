package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/amterp/sprintboard/internal/board"
	"github.com/amterp/sprintboard/internal/model"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// Message types exchanged over the WebSocket.
const (
	MessageTypeBoard   = "board"    // server -> client: the current board
	MessageTypeError   = "error"    // server -> client: a rejected message
	MessageTypeDragEnd = "drag_end" // client -> server: a finished drag
)

// BoardDispatcher is the part of the board store the hub needs.
type BoardDispatcher interface {
	Current() model.Board
	Dispatch(a board.Action) (model.Board, error)
}

// WebSocketHub is the gesture channel of a session. Clients send drag_end
// messages; every board change is pushed back to all connected clients.
type WebSocketHub struct {
	boards  BoardDispatcher
	mu      sync.RWMutex
	clients map[*WebSocketClient]bool
	log     *logrus.Entry
}

// WebSocketClient represents a connected WebSocket client.
type WebSocketClient struct {
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

// WebSocketMessage is the JSON envelope for messages in both directions.
type WebSocketMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewWebSocketHub creates a new WebSocket hub.
func NewWebSocketHub(boards BoardDispatcher) *WebSocketHub {
	return &WebSocketHub{
		boards:  boards,
		clients: make(map[*WebSocketClient]bool),
		log:     logrus.WithField("component", "websocket"),
	}
}

// OnBoardChange implements store.BoardSubscriber.
func (h *WebSocketHub) OnBoardChange(b model.Board) {
	data, err := encodeMessage(MessageTypeBoard, toBoardResponse(b))
	if err != nil {
		h.log.WithError(err).Error("Failed to marshal board")
		return
	}
	h.broadcast(data)
}

// handleMessage applies one client message. Rejections go back to the
// sending client only.
func (h *WebSocketHub) handleMessage(client *WebSocketClient, raw []byte) {
	var msg WebSocketMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.reply(client, MessageTypeError, map[string]string{"error": "invalid JSON message"})
		return
	}

	switch msg.Type {
	case MessageTypeDragEnd:
		gesture, err := decodeDragEnd(msg.Data)
		if err != nil {
			h.reply(client, MessageTypeError, map[string]string{"error": err.Error()})
			return
		}
		if _, err := h.boards.Dispatch(board.Drag{Gesture: gesture}); err != nil {
			h.reply(client, MessageTypeError, map[string]string{"error": err.Error()})
		}
	default:
		h.reply(client, MessageTypeError, map[string]string{"error": "unknown message type: " + msg.Type})
	}
}

func (h *WebSocketHub) reply(client *WebSocketClient, msgType string, data any) {
	encoded, err := encodeMessage(msgType, data)
	if err != nil {
		h.log.WithError(err).Error("Failed to marshal reply")
		return
	}
	h.trySend(client, encoded)
}

func encodeMessage(msgType string, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WebSocketMessage{Type: msgType, Data: payload})
}

// broadcast sends a message to all connected clients.
func (h *WebSocketHub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.trySend(client, data)
	}
}

// trySend attempts to send data to a client, handling the case where
// the client's channel was closed between snapshot and send.
func (h *WebSocketHub) trySend(client *WebSocketClient, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed by removeClient - client already cleaned up
		}
	}()

	select {
	case client.send <- data:
	default:
		// Client buffer full, close it
		h.removeClient(client)
	}
}

func (h *WebSocketHub) addClient(client *WebSocketClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// ServeWS handles WebSocket connection requests.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &WebSocketClient{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.addClient(client)

	// Start read/write goroutines
	go client.writePump()
	go client.readPump()

	// Send the current board so the client can render immediately
	h.reply(client, MessageTypeBoard, toBoardResponse(h.boards.Current()))
}

// readPump reads gesture messages from the WebSocket connection.
func (c *WebSocketClient) readPump() {
	defer func() {
		// Only call removeClient here - closing send channel signals writePump to exit
		// writePump is responsible for closing the connection
		c.hub.removeClient(c)
	}()

	c.conn.SetReadLimit(maxBodyBytes)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Warn("WebSocket read error")
			}
			break
		}
		c.hub.handleMessage(c, message)
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(30 * time.Second) // Ping interval
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// Each message is its own frame so the client always receives valid JSON
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			n := len(c.send)
			for i := 0; i < n; i++ {
				queuedMsg := <-c.send
				if err := c.conn.WriteMessage(websocket.TextMessage, queuedMsg); err != nil {
					return
				}
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
