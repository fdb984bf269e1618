package merge

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in a fixed order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Motion records where a surviving tile came from and where it ended.
// A merged tile starts at the cell of the first tile of its pair.
type Motion struct {
	ID   int   `json:"id"`
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

// Moved reports whether the tile changed cells.
func (m Motion) Moved() bool {
	return m.From != m.To
}

// MergeEvent is a merge at its destination cell with the points it earned.
type MergeEvent struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Points int `json:"points"`
}

// MoveResult is the outcome of applying a direction to a board.
type MoveResult struct {
	Board        Board
	Moved        bool
	Gained       int
	Motions      map[int]Motion
	MergedIDs    map[int]struct{}
	MergedLevels []int
	MergeEvents  []MergeEvent
	NextID       int
}

// Merged reports whether the tile id was created by a merge this turn.
func (r MoveResult) Merged(id int) bool {
	_, ok := r.MergedIDs[id]
	return ok
}

// lineEntry is an occupied cell read from a line in travel order.
type lineEntry struct {
	tile Tile
	from Coord
}

// lineCoord maps a line index and a position along the line, counted from the
// edge tiles travel towards, to a board cell.
func lineCoord(dir Direction, index, pos int) Coord {
	switch dir {
	case DirRight:
		return Coord{Row: index, Col: Size - 1 - pos}
	case DirUp:
		return Coord{Row: pos, Col: index}
	case DirDown:
		return Coord{Row: Size - 1 - pos, Col: index}
	default:
		return Coord{Row: index, Col: pos}
	}
}

// readLine returns the occupied cells of a line nearest-first in travel order.
func readLine(b Board, dir Direction, index int) []lineEntry {
	line := make([]lineEntry, 0, Size)
	for pos := range Size {
		c := lineCoord(dir, index, pos)
		if t := b.At(c); !t.Empty() {
			line = append(line, lineEntry{tile: t, from: c})
		}
	}
	return line
}

// Move slides every line of the board in dir and merges equal neighbours.
// Merges resolve in a single pass in travel order: a tile takes part in at
// most one merge and a freshly merged tile never merges again that turn.
// New tiles created by merges are numbered from nextID.
func Move(b Board, dir Direction, nextID int) MoveResult {
	res := MoveResult{
		Motions:   make(map[int]Motion),
		MergedIDs: make(map[int]struct{}),
		NextID:    nextID,
	}

	for index := range Size {
		line := readLine(b, dir, index)
		pos := 0

		for i := 0; i < len(line); i++ {
			current := line[i]
			tile := current.tile

			if i+1 < len(line) && line[i+1].tile.Level == tile.Level {
				tile = Tile{ID: res.NextID, Level: tile.Level + 1}
				res.NextID++
				i++ // the following tile is consumed

				points := tile.Value()
				to := lineCoord(dir, index, pos)
				res.Gained += points
				res.MergedIDs[tile.ID] = struct{}{}
				res.MergedLevels = append(res.MergedLevels, tile.Level)
				res.MergeEvents = append(res.MergeEvents, MergeEvent{Row: to.Row, Col: to.Col, Points: points})
			}

			to := lineCoord(dir, index, pos)
			res.Board[to.Row][to.Col] = tile
			res.Motions[tile.ID] = Motion{ID: tile.ID, From: current.from, To: to}
			pos++
		}
	}

	for _, m := range res.Motions {
		if m.Moved() || res.Merged(m.ID) {
			res.Moved = true
			break
		}
	}

	return res
}

// CanMove returns true if some direction would change the board.
func CanMove(b Board) bool {
	return !Locked(b)
}
