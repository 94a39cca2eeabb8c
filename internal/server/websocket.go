package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/yosina/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client is one WebSocket connection. Replies are queued on send and
// written by writePump, the only goroutine that writes data frames.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	requestID string
	limiter   *tokenBucket

	closeOnce sync.Once
	done      chan struct{}
}

func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// Hub tracks the live WebSocket connections.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub. Run must be started before clients connect.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run handles registrations until ctx is cancelled, then closes every
// remaining client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			logging.WebSocketEvent("client_connected", n, "request_id", client.requestID)

		case client := <-h.unregister:
			h.mu.Lock()
			delete(h.clients, client)
			n := len(h.clients)
			h.mu.Unlock()
			client.close()
			logging.WebSocketEvent("client_disconnected", n, "request_id", client.requestID)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.close()
			}
			h.mu.Unlock()
			return
		}
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (s *Server) upgrader() *websocket.Upgrader {
	u := &websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
	if origins := s.cfg.WebSocket.AllowedOrigins; len(origins) > 0 {
		u.CheckOrigin = func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if !isOriginAllowed(origin, origins) {
				logging.WarnContext(r.Context(), "websocket origin rejected", "origin", origin)
				return false
			}
			return true
		}
	}
	return u
}

// handleWebSocket upgrades the connection. Each text frame is a JSON
// TransliterateRequest; each reply is a JSON TransliterateResponse.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader().Upgrade(w, r, nil)
	if err != nil {
		logging.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(s.cfg.WebSocket.MaxMessageSize)

	rate := float64(s.cfg.WebSocket.MaxMessageRate)
	client := &Client{
		hub:       s.hub,
		conn:      conn,
		send:      make(chan []byte, 16),
		requestID: logging.GetRequestID(r.Context()),
		limiter:   newTokenBucket(rate*2, rate),
		done:      make(chan struct{}),
	}
	if !s.hub.add(client) {
		conn.Close()
		return
	}

	ctx := logging.WithRequestID(context.Background(), client.requestID)
	go client.writePump()
	go s.readPump(ctx, client)
}

func (s *Server) readPump(ctx context.Context, c *Client) {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait)) //nolint:errcheck
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.WarnContext(ctx, "websocket unexpected close", "error", err)
			}
			return
		}

		if !c.limiter.allow() {
			logging.WarnContext(ctx, "websocket message rate exceeded")
			c.conn.WriteControl(websocket.CloseMessage, //nolint:errcheck
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "rate limit exceeded"),
				time.Now().Add(writeWait))
			return
		}

		reply := s.reply(ctx, message)
		data, err := json.Marshal(reply)
		if err != nil {
			logging.ErrorContext(ctx, "failed to marshal websocket reply", "error", err)
			return
		}
		select {
		case c.send <- data:
		case <-c.done:
			return
		}
	}
}

func (s *Server) reply(ctx context.Context, message []byte) TransliterateResponse {
	var req TransliterateRequest
	if err := json.Unmarshal(message, &req); err != nil {
		return TransliterateResponse{
			RequestID: logging.GetRequestID(ctx),
			Error:     &APIError{Code: "INVALID_JSON", Message: err.Error()},
		}
	}
	resp, err := s.transliterate(ctx, &req)
	if err != nil {
		_, resp.Error = classify(err)
	}
	return resp
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck
			c.conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return
		}
	}
}
