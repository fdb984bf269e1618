package merge

// Snapshot is the complete state of a game at one moment. Two games fed the
// same seed and inputs produce equal snapshots.
type Snapshot struct {
	Variant    string          `json:"variant"`
	Generation uint64          `json:"generation"`
	Turn       int             `json:"turn"`
	Score      int             `json:"score"`
	Best       int             `json:"best"`
	Levels     [Size][Size]int `json:"levels"`
	MaxLevel   int             `json:"max_level"`
	Multiplier float64         `json:"multiplier"`
	Health     int             `json:"health"`
	Combo      int             `json:"combo"`
	State      State           `json:"state"`
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Variant: string(g.variant), State: StateReady}
	}

	s := g.session
	m := s.Meter(g.now())
	return Snapshot{
		Variant:    string(g.variant),
		Generation: s.Generation(),
		Turn:       s.Turn(),
		Score:      s.Score(),
		Best:       s.Best(),
		Levels:     Levels(s.Board()),
		MaxLevel:   MaxLevel(s.Board()),
		Multiplier: m.Multiplier,
		Health:     m.Health,
		Combo:      m.Combo,
		State:      s.State(),
	}
}

// publish hands the current snapshot to state observers.
func (g *Game) publish() {
	var snap *Snapshot
	for _, o := range g.observers {
		so, ok := o.(StateObserver)
		if !ok {
			continue
		}
		if snap == nil {
			s := g.Snapshot()
			snap = &s
		}
		so.StateChanged(*snap)
	}
}

// Close tells state observers that the player left the game.
func (g *Game) Close() {
	for _, o := range g.observers {
		if so, ok := o.(StateObserver); ok {
			so.GameClosed()
		}
	}
}
