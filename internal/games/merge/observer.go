package merge

// TurnEvent describes one accepted turn for renderers, audio and feeds.
type TurnEvent struct {
	Turn         int              `json:"turn"`
	Direction    string           `json:"direction"`
	Board        [Size][Size]Tile `json:"board"`
	Motions      map[int]Motion   `json:"motions"`
	MergedIDs    []int            `json:"merged_ids"`
	SpawnedID    int              `json:"spawned_id"` // 0 when nothing spawned
	SpawnedLevel int              `json:"spawned_level"`
	SpawnedAt    Coord            `json:"spawned_at"`
	MergeEvents  []MergeEvent     `json:"merge_events"`  // Points after the turn's scaling
	MergedLevels []int            `json:"merged_levels"` // In creation order
	Gained       int              `json:"gained"`        // Raw merge score
	TurnScore    int              `json:"turn_score"`
	Score        int              `json:"score"`
	Best         int              `json:"best"`
	Multiplier   float64          `json:"multiplier"`
	FlatBonus    int              `json:"flat_bonus,omitempty"`
	Grade        Grade            `json:"grade,omitempty"`

	// Set on rhythm turns only, including when health drops to zero.
	Health *int `json:"health,omitempty"`
	Combo  *int `json:"combo,omitempty"`
}

// EndEvent describes a session reaching a terminal state.
type EndEvent struct {
	Reason      State       `json:"reason"`
	Score       int         `json:"score"`
	Best        int         `json:"best"`
	NewBest     bool        `json:"new_best"`
	Leaderboard Leaderboard `json:"leaderboard"`
}

// Observer receives session notifications. Calls happen synchronously on the
// goroutine that drives the session, after the state has been updated.
type Observer interface {
	TurnPlayed(ev TurnEvent)
	SessionEnded(ev EndEvent)
}

// StateObserver is an Observer that also follows the whole game state. It
// gets a Snapshot after every reset, accepted turn and timeout, and
// GameClosed once the player leaves the game.
type StateObserver interface {
	Observer
	StateChanged(s Snapshot)
	GameClosed()
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnTurn func(TurnEvent)
	OnEnd  func(EndEvent)
}

// TurnPlayed calls OnTurn if set.
func (o ObserverFuncs) TurnPlayed(ev TurnEvent) {
	if o.OnTurn != nil {
		o.OnTurn(ev)
	}
}

// SessionEnded calls OnEnd if set.
func (o ObserverFuncs) SessionEnded(ev EndEvent) {
	if o.OnEnd != nil {
		o.OnEnd(ev)
	}
}
