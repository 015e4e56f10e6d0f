package http

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chris-hammersley/family-chart/layout"
	"github.com/chris-hammersley/family-chart/store"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
)

// wsEnvelope wraps every message sent to a websocket client with a
// type tag, mirroring the teacher's MessageEnvelope discrimination for
// its websocket output.
type wsEnvelope struct {
	Type    string         `json:"type"`
	MainID  string         `json:"main_id,omitempty"`
	Payload *layout.Result `json:"payload,omitempty"`
}

// hub tracks connected websocket clients and fans a layout.Result out
// to all of them whenever the store recomputes. Grounded on the
// teacher's output/websocket Output client map + per-connection write
// mutex, pared down to this gateway's single message type (no ack
// tracking — a client that falls behind just gets the next broadcast).
type hub struct {
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*wsClient
}

type wsClient struct {
	conn  *websocket.Conn
	write sync.Mutex
}

func newHub() *hub {
	return &hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*wsClient),
	}
}

// handleWS upgrades the connection and registers it for broadcasts.
// There is no client->server message protocol; the connection is
// read-only from the client's side, so the read loop only exists to
// detect close and keep pong handling alive.
func (g *Gateway) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.hub.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	client := &wsClient{conn: conn}
	g.hub.add(conn, client)
	defer g.hub.remove(conn)

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(2 * wsPingInterval))
	})

	g.sendSnapshot(client)
	g.readUntilClosed(conn)
}

func (g *Gateway) sendSnapshot(c *wsClient) {
	env := wsEnvelope{Type: "snapshot", MainID: g.store.MainID(), Payload: g.store.GetTree()}
	_ = c.send(env)
}

func (g *Gateway) readUntilClosed(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *hub) add(conn *websocket.Conn, c *wsClient) {
	h.mu.Lock()
	h.clients[conn] = c
	h.mu.Unlock()
}

func (h *hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// broadcast sends result to every connected client. A failed or
// timed-out send is ignored and not retried; the client stays
// registered until its read loop in handleWS sees the connection close.
func (h *hub) broadcast(result *layout.Result, props store.UpdateProps) {
	env := wsEnvelope{Type: "update", Payload: result}
	if props.Initial {
		env.Type = "snapshot"
	}

	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(1)
		go func(c *wsClient) {
			defer wg.Done()
			_ = c.send(env)
		}(c)
	}
	wg.Wait()
}

func (c *wsClient) send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	c.write.Lock()
	defer c.write.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}
