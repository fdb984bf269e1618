package merge

import (
	"io"
	"math/rand"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// State is the session lifecycle state.
type State string

const (
	StateReady          State = "ready"
	StatePlaying        State = "playing"
	StateBoardLocked    State = "board_locked"
	StateHealthDepleted State = "health_depleted"
	StateTimedOut       State = "timed_out"
)

// Terminal reports whether the state ends the session.
func (s State) Terminal() bool {
	switch s {
	case StateBoardLocked, StateHealthDepleted, StateTimedOut:
		return true
	default:
		return false
	}
}

// SessionConfig configures a new session.
type SessionConfig struct {
	Strategy  Strategy    // Required
	Keeper    ScoreKeeper // Nil means an in-memory keeper
	Seed      int64
	Logger    *log.Logger // Nil discards logs
	Observers []Observer
}

// Session owns one player's board, score and meters. It is not safe for
// concurrent use: inputs and ticks must be delivered from one goroutine.
type Session struct {
	strategy  Strategy
	keeper    ScoreKeeper
	rng       *rand.Rand
	logger    *log.Logger
	observers []Observer

	board       Board
	state       State
	score       int
	best        int
	bestAtStart int
	leaderboard Leaderboard
	nextID      int
	turn        int
	generation  uint64
	lastTurn    *TurnEvent
	lastEnd     *EndEvent
}

// NewSession creates a session. Call Reset before the first input.
func NewSession(cfg SessionConfig) *Session {
	keeper := cfg.Keeper
	if keeper == nil {
		keeper = NewMemoryKeeper()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Session{
		strategy:    cfg.Strategy,
		keeper:      keeper,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		logger:      logger,
		observers:   slices.Clone(cfg.Observers),
		state:       StateReady,
		best:        keeper.LoadBest(),
		leaderboard: keeper.LoadLeaderboard(),
		nextID:      1,
	}
}

// AddObserver registers an observer for subsequent turns.
func (s *Session) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Reseed replaces the spawn RNG.
func (s *Session) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// Reset starts a fresh game at now: empty board with two spawned tiles and
// fresh meters. Only the persisted best score and leaderboard survive.
func (s *Session) Reset(now time.Time) {
	s.generation++
	s.board = EmptyBoard()
	s.state = StateReady
	s.score = 0
	s.nextID = 1
	s.turn = 0
	s.lastTurn = nil
	s.lastEnd = nil
	s.best = max(s.best, s.keeper.LoadBest())
	s.bestAtStart = s.best
	s.leaderboard = s.keeper.LoadLeaderboard()

	s.strategy.Reset(now)

	for range 2 {
		s.spawn()
	}

	s.logger.Debug("session reset", "variant", s.strategy.Name(), "generation", s.generation)
}

// spawn drops one random tile, reporting false when the board is full.
func (s *Session) spawn() (Tile, Coord, bool) {
	tile, at, ok := Spawn(&s.board, s.rng, s.nextID)
	if ok {
		s.nextID++
	}
	return tile, at, ok
}

// ApplyInput plays dir at now. It returns the turn event and true when the
// move was accepted. Illegal moves and input after the session ended are
// ignored without touching any state.
func (s *Session) ApplyInput(dir Direction, now time.Time) (TurnEvent, bool) {
	if s.state.Terminal() {
		return TurnEvent{}, false
	}

	// A deadline that passed before the tick noticed still ends the game.
	if s.strategy.Expired(now) {
		s.finish(StateTimedOut)
		return TurnEvent{}, false
	}

	res := Move(s.board, dir, s.nextID)
	if !res.Moved {
		return TurnEvent{}, false
	}

	s.state = StatePlaying
	s.board = res.Board
	s.nextID = res.NextID
	s.turn++

	bonus := s.strategy.Apply(TurnContext{Now: now, Gained: res.Gained})
	s.score += bonus.TurnScore
	if s.score > s.best {
		s.best = s.score
		s.submitBest()
	}

	ev := s.buildTurnEvent(dir, res, bonus, now)
	if tile, at, ok := s.spawn(); ok {
		ev.SpawnedID = tile.ID
		ev.SpawnedLevel = tile.Level
		ev.SpawnedAt = at
	}
	ev.Board = s.board
	s.lastTurn = &ev

	s.logger.Debug("turn",
		"n", s.turn,
		"dir", dir,
		"gained", res.Gained,
		"turn_score", bonus.TurnScore,
		"score", s.score,
		"multiplier", bonus.Multiplier,
	)

	for _, o := range s.observers {
		o.TurnPlayed(ev)
	}

	switch {
	case Locked(s.board):
		s.finish(StateBoardLocked)
	case bonus.Depleted:
		s.finish(StateHealthDepleted)
	}

	return ev, true
}

func (s *Session) buildTurnEvent(dir Direction, res MoveResult, bonus Bonus, now time.Time) TurnEvent {
	merged := make([]int, 0, len(res.MergedIDs))
	for id := range res.MergedIDs {
		merged = append(merged, id)
	}
	slices.Sort(merged)

	events := make([]MergeEvent, len(res.MergeEvents))
	for i, e := range res.MergeEvents {
		e.Points = bonus.ScalePoints(e.Points)
		events[i] = e
	}

	ev := TurnEvent{
		Turn:         s.turn,
		Direction:    dir.String(),
		Motions:      res.Motions,
		MergedIDs:    merged,
		MergeEvents:  events,
		MergedLevels: slices.Clone(res.MergedLevels),
		Gained:       res.Gained,
		TurnScore:    bonus.TurnScore,
		Score:        s.score,
		Best:         s.best,
		Multiplier:   bonus.Multiplier,
		FlatBonus:    bonus.Flat,
	}

	if bonus.Judgement != nil {
		m := s.strategy.Meter(now)
		ev.Grade = bonus.Judgement.Grade
		ev.Health = &m.Health
		ev.Combo = &m.Combo
	}
	return ev
}

// Hold stops the turn clock for d, e.g. while the board cannot be shown.
// Strategies without a deadline ignore it.
func (s *Session) Hold(d time.Duration) {
	if h, ok := s.strategy.(holder); ok && !s.state.Terminal() && d > 0 {
		h.Hold(d)
	}
}

// Tick runs time-driven rules at now. It reports true when the tick ended
// the session. Ticks after the session ended are no-ops.
func (s *Session) Tick(now time.Time) bool {
	if s.state.Terminal() {
		return false
	}
	if s.strategy.Expired(now) {
		s.finish(StateTimedOut)
		return true
	}
	return false
}

// submitBest offers the current score to the keeper and adopts any higher
// best stored by another session.
func (s *Session) submitBest() {
	best, err := s.keeper.SubmitBest(s.score)
	if err != nil {
		s.logger.Warn("could not persist best score", "best", s.score, "error", err)
		return
	}
	s.best = max(s.best, best)
}

// finish moves the session into a terminal state and records the score.
func (s *Session) finish(reason State) {
	if s.state.Terminal() {
		return
	}
	s.state = reason

	if s.score > s.bestAtStart {
		s.submitBest()
	} else {
		s.best = max(s.best, s.keeper.LoadBest())
	}
	// Another session may have set a higher best while this one ran.
	newBest := s.score > s.bestAtStart && s.score >= s.best

	board, err := s.keeper.SubmitScore(s.score)
	if err != nil {
		s.logger.Warn("could not persist leaderboard", "error", err)
		board = s.leaderboard.Insert(s.score, LeaderboardSize)
	}
	s.leaderboard = board

	ev := EndEvent{
		Reason:      reason,
		Score:       s.score,
		Best:        s.best,
		NewBest:     newBest,
		Leaderboard: slices.Clone(s.leaderboard),
	}
	s.lastEnd = &ev

	s.logger.Info("session ended",
		"variant", s.strategy.Name(),
		"reason", reason,
		"score", s.score,
		"turns", s.turn,
		"new_best", newBest,
	)

	for _, o := range s.observers {
		o.SessionEnded(ev)
	}
}

// Board returns the current board.
func (s *Session) Board() Board {
	return s.board
}

// State returns the lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Score returns the cumulative score.
func (s *Session) Score() int {
	return s.score
}

// Best returns the best score seen, including the current game.
func (s *Session) Best() int {
	return s.best
}

// Leaderboard returns a copy of the best finished scores.
func (s *Session) Leaderboard() Leaderboard {
	return slices.Clone(s.leaderboard)
}

// Turn returns the number of accepted turns.
func (s *Session) Turn() int {
	return s.turn
}

// Generation increments on every Reset. Deferred callbacks scheduled for an
// older generation must be dropped.
func (s *Session) Generation() uint64 {
	return s.generation
}

// Strategy returns the scoring strategy.
func (s *Session) Strategy() Strategy {
	return s.strategy
}

// Meter returns the strategy HUD view at now.
func (s *Session) Meter(now time.Time) Meter {
	return s.strategy.Meter(now)
}

// LastTurn returns the most recent accepted turn of this game, or nil.
func (s *Session) LastTurn() *TurnEvent {
	return s.lastTurn
}

// LastEnd returns the terminal event of this game, or nil while playing.
func (s *Session) LastEnd() *EndEvent {
	return s.lastEnd
}
