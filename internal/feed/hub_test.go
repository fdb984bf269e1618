package feed

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/colormerge/internal/core"
	"github.com/vovakirdan/colormerge/internal/games/merge"
)

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}
	return ws
}

func readMessage(t *testing.T, ws *websocket.Conn) Message {
	t.Helper()

	ws.SetReadDeadline(time.Now().Add(2 * time.Second)) //nolint:errcheck
	_, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
	return msg
}

func TestObserverBroadcastsTurnAndEnd(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()
	ws := dial(t, h)

	obs := h.Observer("merge_rhythm")
	obs.TurnPlayed(merge.TurnEvent{Turn: 3, Direction: "left", Score: 40, Multiplier: 1.15})
	obs.SessionEnded(merge.EndEvent{Reason: merge.StateBoardLocked, Score: 40, NewBest: true})

	turn := readMessage(t, ws)
	if turn.Kind != KindTurn || turn.GameID != "merge_rhythm" {
		t.Fatalf("first message = %s/%s, want turn/merge_rhythm", turn.Kind, turn.GameID)
	}
	if turn.Turn == nil || turn.Turn.Turn != 3 || turn.Turn.Score != 40 {
		t.Errorf("turn payload = %+v", turn.Turn)
	}
	if turn.End != nil {
		t.Error("turn message carries an end payload")
	}

	end := readMessage(t, ws)
	if end.Kind != KindEnd {
		t.Fatalf("second message kind = %s, want end", end.Kind)
	}
	if end.End == nil || end.End.Reason != merge.StateBoardLocked || !end.End.NewBest {
		t.Errorf("end payload = %+v", end.End)
	}
}

func TestHubDropsDisconnectedClients(t *testing.T) {
	h := NewHub(nil)
	ws := dial(t, h)

	ws.Close()

	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("disconnected client still registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Broadcasting with no clients must not block or panic.
	h.Broadcast(Message{Kind: KindTurn})
}

func TestEnqueueDropsWhenFull(t *testing.T) {
	c := &client{send: make(chan []byte, 1)}
	c.enqueue([]byte("a"))
	c.enqueue([]byte("b"))

	if got := string(<-c.send); got != "a" {
		t.Errorf("queued %q, want the first message", got)
	}
	select {
	case b := <-c.send:
		t.Errorf("queue kept overflow message %q", b)
	default:
	}
}

func TestLateClientGetsSnapshot(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	game := merge.NewTimer()
	game.AddObserver(h.Observer(merge.IDTimer))
	cfg := core.DefaultConfig()
	cfg.Seed = 11
	game.Reset(cfg)

	ws := dial(t, h)
	msg := readMessage(t, ws)
	if msg.Kind != KindSnapshot || msg.GameID != merge.IDTimer {
		t.Fatalf("first message = %s/%s, want snapshot/%s", msg.Kind, msg.GameID, merge.IDTimer)
	}
	if msg.Snapshot == nil || msg.Snapshot.Levels != game.Snapshot().Levels {
		t.Errorf("snapshot = %+v, want the live board", msg.Snapshot)
	}

	game.Close()
	if h.Games() != 0 {
		t.Errorf("closed game still followed: %d", h.Games())
	}
}

func TestFreshGameAnnounced(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()
	ws := dial(t, h)

	obs := h.Observer(merge.IDRhythm)
	obs.StateChanged(merge.Snapshot{Variant: "rhythm", Generation: 2, State: merge.StateReady})
	obs.StateChanged(merge.Snapshot{Variant: "rhythm", Generation: 2, Turn: 1, State: merge.StatePlaying})
	obs.TurnPlayed(merge.TurnEvent{Turn: 1})

	if msg := readMessage(t, ws); msg.Kind != KindSnapshot || msg.Snapshot == nil || msg.Snapshot.Generation != 2 {
		t.Fatalf("first message = %+v, want the new game's snapshot", msg)
	}
	// Mid-game state changes are only kept, the turn itself is the update.
	if msg := readMessage(t, ws); msg.Kind != KindTurn {
		t.Errorf("second message kind = %s, want turn", msg.Kind)
	}
	if h.Games() != 1 {
		t.Errorf("Games() = %d, want 1", h.Games())
	}
}

func TestTrackEvictsOldest(t *testing.T) {
	h := NewHub(nil)
	first := h.Observer("g")
	first.StateChanged(merge.Snapshot{Turn: 1})
	for range maxGames {
		h.Observer("g").StateChanged(merge.Snapshot{Turn: 1})
	}

	if h.Games() != maxGames {
		t.Fatalf("Games() = %d, want %d", h.Games(), maxGames)
	}
	h.mu.Lock()
	_, kept := h.games[first]
	h.mu.Unlock()
	if kept {
		t.Error("oldest game was not evicted")
	}
}
