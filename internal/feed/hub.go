// Package feed broadcasts session events as JSON over websockets, so external
// renderers can animate turns and show results without touching game state.
package feed

import (
	"cmp"
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/colormerge/internal/games/merge"
)

const (
	sendQueue    = 64
	maxGames     = 256
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 30 * time.Second
)

// Message kinds. A snapshot is sent for every live game when a client
// connects, and to everyone when a game starts or restarts.
const (
	KindTurn     = "turn"
	KindEnd      = "end"
	KindSnapshot = "snapshot"
)

// Message is one event on the wire.
type Message struct {
	Kind     string           `json:"kind"`
	GameID   string           `json:"game_id"`
	Turn     *merge.TurnEvent `json:"turn,omitempty"`
	End      *merge.EndEvent  `json:"end,omitempty"`
	Snapshot *merge.Snapshot  `json:"snapshot,omitempty"`
}

// liveGame is the latest state of one game followed by the hub.
type liveGame struct {
	gameID string
	snap   merge.Snapshot
	seq    uint64 // order of first appearance
}

// client is one websocket subscriber with a bounded send queue.
type client struct {
	ws   *websocket.Conn
	send chan []byte
}

// enqueue drops the message when the client is too slow to keep up, so a
// stalled viewer never blocks the game loop.
func (c *client) enqueue(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, nil) //nolint:errcheck
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)) //nolint:errcheck
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client frames and detects disconnects.
func (c *client) readPump(h *Hub) {
	defer h.remove(c)
	c.ws.SetReadLimit(1 << 10)
	c.ws.SetReadDeadline(time.Now().Add(pongTimeout)) //nolint:errcheck
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// Hub fans events out to every connected client.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	games    map[*Observer]*liveGame
	seq      uint64
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewHub creates an empty hub. A nil logger discards logs.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		games:   make(map[*Observer]*liveGame),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Viewers are local tools; any origin may subscribe.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and subscribes the connection.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{ws: ws, send: make(chan []byte, sendQueue)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	// Queued under the lock so no turn can overtake the snapshots.
	for _, g := range h.liveGames() {
		if b, ok := h.encode(Message{Kind: KindSnapshot, GameID: g.gameID, Snapshot: &g.snap}); ok {
			c.enqueue(b)
		}
	}
	n := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("feed client connected", "remote", r.RemoteAddr, "clients", n)

	go c.writePump()
	go c.readPump(h)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Games returns the number of live games the hub follows.
func (h *Hub) Games() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games)
}

// liveGames returns the followed games oldest first. Callers hold h.mu.
func (h *Hub) liveGames() []*liveGame {
	out := make([]*liveGame, 0, len(h.games))
	for _, g := range h.games {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b *liveGame) int { return cmp.Compare(a.seq, b.seq) })
	return out
}

func (h *Hub) encode(msg Message) ([]byte, bool) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("cannot encode feed message", "kind", msg.Kind, "error", err)
		return nil, false
	}
	return b, true
}

// Broadcast sends msg to every client.
func (h *Hub) Broadcast(msg Message) {
	b, ok := h.encode(msg)
	if !ok {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		c.enqueue(b)
	}
}

// track records the latest state of o's game. Games whose player vanished
// without closing them are evicted oldest first past maxGames.
func (h *Hub) track(o *Observer, snap merge.Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if g, ok := h.games[o]; ok {
		g.snap = snap
		return
	}
	h.seq++
	h.games[o] = &liveGame{gameID: o.gameID, snap: snap, seq: h.seq}

	for len(h.games) > maxGames {
		var oldest *Observer
		for k, g := range h.games {
			if oldest == nil || g.seq < h.games[oldest].seq {
				oldest = k
			}
		}
		delete(h.games, oldest)
	}
}

func (h *Hub) untrack(o *Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.games, o)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// Observer publishes one game's session events to the hub.
type Observer struct {
	hub    *Hub
	gameID string
}

var _ merge.StateObserver = (*Observer)(nil)

// Observer returns a session observer tagging events with gameID.
func (h *Hub) Observer(gameID string) *Observer {
	return &Observer{hub: h, gameID: gameID}
}

// TurnPlayed broadcasts the turn.
func (o *Observer) TurnPlayed(ev merge.TurnEvent) {
	o.hub.Broadcast(Message{Kind: KindTurn, GameID: o.gameID, Turn: &ev})
}

// SessionEnded broadcasts the result.
func (o *Observer) SessionEnded(ev merge.EndEvent) {
	o.hub.Broadcast(Message{Kind: KindEnd, GameID: o.gameID, End: &ev})
}

// StateChanged keeps the game's latest state for clients that connect later.
// Fresh games are announced right away.
func (o *Observer) StateChanged(snap merge.Snapshot) {
	o.hub.track(o, snap)
	if snap.Turn == 0 && snap.State == merge.StateReady {
		o.hub.Broadcast(Message{Kind: KindSnapshot, GameID: o.gameID, Snapshot: &snap})
	}
}

// GameClosed stops following the game.
func (o *Observer) GameClosed() {
	o.hub.untrack(o)
}
