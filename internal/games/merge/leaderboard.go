package merge

import (
	"slices"
	"sync"
)

// LeaderboardSize is the number of historical scores kept.
const LeaderboardSize = 10

// Leaderboard is a list of the best finished scores, highest first.
type Leaderboard []int

// Insert returns a new leaderboard with score added, sorted descending and
// truncated to limit entries. Non-positive scores are not recorded.
func (l Leaderboard) Insert(score, limit int) Leaderboard {
	out := slices.Clone(l)
	if score > 0 {
		out = append(out, score)
	}
	slices.SortFunc(out, func(a, b int) int { return b - a })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Best returns the top entry, or 0 when empty.
func (l Leaderboard) Best() int {
	if len(l) == 0 {
		return 0
	}
	return l[0]
}

// ScoreKeeper persists the best score and the leaderboard across sessions.
// Several sessions may share one keeper, so writes merge with what is stored
// instead of replacing it. Loads never fail: missing or corrupt data yields
// zero values.
type ScoreKeeper interface {
	LoadBest() int
	LoadLeaderboard() Leaderboard

	// SubmitBest stores score if it beats the stored best and returns the
	// best after the call.
	SubmitBest(score int) (int, error)

	// SubmitScore inserts a finished score into the stored leaderboard and
	// returns the updated leaderboard.
	SubmitScore(score int) (Leaderboard, error)
}

// MemoryKeeper is an in-process ScoreKeeper, used when no database is available.
type MemoryKeeper struct {
	mu    sync.Mutex
	best  int
	board Leaderboard
}

// NewMemoryKeeper creates an empty in-memory keeper.
func NewMemoryKeeper() *MemoryKeeper {
	return &MemoryKeeper{}
}

// LoadBest returns the stored best score.
func (k *MemoryKeeper) LoadBest() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.best
}

// SubmitBest raises the stored best to score.
func (k *MemoryKeeper) SubmitBest(score int) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.best = max(k.best, score)
	return k.best, nil
}

// LoadLeaderboard returns a copy of the stored leaderboard.
func (k *MemoryKeeper) LoadLeaderboard() Leaderboard {
	k.mu.Lock()
	defer k.mu.Unlock()
	return slices.Clone(k.board)
}

// SubmitScore inserts score into the stored leaderboard.
func (k *MemoryKeeper) SubmitScore(score int) (Leaderboard, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.board = k.board.Insert(score, LeaderboardSize)
	return slices.Clone(k.board), nil
}
