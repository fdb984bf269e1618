package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colormerge/internal/games/merge"
)

// Key prefixes of the persisted merge records.
const (
	bestKeyPrefix        = "color-merge-high-score/"
	leaderboardKeyPrefix = "color-merge-scoreboard/"
)

// BestKey returns the kv key holding a variant's best score.
func BestKey(gameID string) string {
	return bestKeyPrefix + gameID
}

// LeaderboardKey returns the kv key holding a variant's leaderboard.
func LeaderboardKey(gameID string) string {
	return leaderboardKeyPrefix + gameID
}

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("storage: key not found")

// kvConn is satisfied by both *sql.DB and *sql.Tx.
type kvConn interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// Get returns the raw JSON stored under key.
func (s *Store) Get(key string) ([]byte, error) {
	return get(s.db, key)
}

// Put stores v as JSON under key, replacing any previous value.
func (s *Store) Put(key string, v any) error {
	return put(s.db, key, v)
}

// Update reads key and writes back what fn returns, in one transaction.
// fn gets nil when the key is absent; returning write=false keeps the value.
func (s *Store) Update(key string, fn func(data []byte) (v any, write bool)) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot update %s: %w", key, err)
	}
	defer tx.Rollback() //nolint:errcheck

	data, err := get(tx, key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	v, write := fn(data)
	if !write {
		return nil
	}
	if err := put(tx, key, v); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot update %s: %w", key, err)
	}
	return nil
}

func get(c kvConn, key string) ([]byte, error) {
	var value string
	err := c.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return []byte(value), nil
}

func put(c kvConn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", key, err)
	}

	_, err = c.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Keeper persists one variant's best score and leaderboard in the kv table.
type Keeper struct {
	store  *Store
	gameID string
	logger *log.Logger
}

var _ merge.ScoreKeeper = (*Keeper)(nil)

// Keeper returns the score keeper for gameID. A nil logger discards read errors.
func (s *Store) Keeper(gameID string, logger *log.Logger) *Keeper {
	return &Keeper{store: s, gameID: gameID, logger: logger}
}

// LoadBest returns the stored best score. Missing, non-numeric or negative
// values load as 0.
func (k *Keeper) LoadBest() int {
	data, ok := k.load(BestKey(k.gameID))
	if !ok {
		return 0
	}
	return k.decodeBest(data)
}

// SubmitBest stores score when it beats the stored best and returns the
// best after the call. Concurrent sessions never lower it.
func (k *Keeper) SubmitBest(score int) (int, error) {
	best := score
	err := k.store.Update(BestKey(k.gameID), func(data []byte) (any, bool) {
		if stored := k.decodeBest(data); stored >= score {
			best = stored
			return nil, false
		}
		return score, true
	})
	return best, err
}

// LoadLeaderboard returns the stored leaderboard. Data that is not a JSON
// array loads as empty; entries that are not whole positive numbers are dropped.
func (k *Keeper) LoadLeaderboard() merge.Leaderboard {
	data, ok := k.load(LeaderboardKey(k.gameID))
	if !ok {
		return nil
	}
	return k.decodeLeaderboard(data)
}

// SubmitScore inserts a finished score into the stored leaderboard and
// returns the result. Entries added by other sessions are kept.
func (k *Keeper) SubmitScore(score int) (merge.Leaderboard, error) {
	var board merge.Leaderboard
	err := k.store.Update(LeaderboardKey(k.gameID), func(data []byte) (any, bool) {
		board = k.decodeLeaderboard(data).Insert(score, merge.LeaderboardSize)
		if score <= 0 {
			return nil, false
		}
		return board, true
	})
	return board, err
}

func (k *Keeper) decodeBest(data []byte) int {
	if data == nil {
		return 0
	}
	var best float64
	if err := json.Unmarshal(data, &best); err != nil || !isWhole(best) || best < 0 {
		k.warn("ignoring corrupt best score", BestKey(k.gameID), err)
		return 0
	}
	return int(best)
}

func (k *Keeper) decodeLeaderboard(data []byte) merge.Leaderboard {
	if data == nil {
		return nil
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		k.warn("ignoring corrupt leaderboard", LeaderboardKey(k.gameID), err)
		return nil
	}

	var board merge.Leaderboard
	for _, v := range raw {
		n, ok := v.(float64)
		if !ok || !isWhole(n) || n <= 0 {
			continue
		}
		board = board.Insert(int(n), merge.LeaderboardSize)
	}
	return board
}

func (k *Keeper) load(key string) ([]byte, bool) {
	data, err := k.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			k.warn("cannot load record", key, err)
		}
		return nil, false
	}
	return data, true
}

func (k *Keeper) warn(msg, key string, err error) {
	if k.logger != nil {
		k.logger.Warn(msg, "key", key, "error", err)
	}
}

// maxExactInt is the largest integer a JSON number holds exactly.
const maxExactInt = 1 << 53

func isWhole(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) && f <= maxExactInt
}
