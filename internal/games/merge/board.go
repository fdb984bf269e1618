// Package merge implements Color Merge, a 2048-style tile merging puzzle with
// rhythm-timing and turn-timer scoring variants.
//
// The package splits into a pure core (Board, Move, the scoring strategies and
// the Session state machine) and a Game adapter that plugs a Session into the
// arcade platform for input, ticking and rendering.
package merge

import "math/rand"

// Size is the board dimension. The board is always Size x Size.
const Size = 4

// SpawnLevel2Prob is the probability of spawning a level 2 tile instead of level 1.
const SpawnLevel2Prob = 0.10

// Coord addresses a board cell.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is a single tile. Its value is 2^Level; Level 0 marks an empty cell.
// ID is unique within a session and only tracks motion across one turn.
type Tile struct {
	ID    int `json:"id"`
	Level int `json:"level"`
}

// Empty reports whether the cell holds no tile.
func (t Tile) Empty() bool {
	return t.Level == 0
}

// Value returns the displayed and scored value 2^Level, or 0 for an empty cell.
func (t Tile) Value() int {
	if t.Empty() {
		return 0
	}
	return 1 << t.Level
}

// Board is a Size x Size grid indexed [row][col].
type Board [Size][Size]Tile

// EmptyBoard returns a board with no tiles.
func EmptyBoard() Board {
	return Board{}
}

// At returns the tile at c.
func (b Board) At(c Coord) Tile {
	return b[c.Row][c.Col]
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(b Board) []Coord {
	var cells []Coord
	for r := range Size {
		for c := range Size {
			if b[r][c].Empty() {
				cells = append(cells, Coord{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(b Board) bool {
	for r := range Size {
		for c := range Size {
			if b[r][c].Empty() {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two side-adjacent tiles share a level.
func HasPossibleMerge(b Board) bool {
	for r := range Size {
		for c := range Size {
			t := b[r][c]
			if t.Empty() {
				continue
			}
			if c < Size-1 && b[r][c+1].Level == t.Level {
				return true
			}
			if r < Size-1 && b[r+1][c].Level == t.Level {
				return true
			}
		}
	}
	return false
}

// Locked returns true when the board is full and no adjacent pair can merge.
func Locked(b Board) bool {
	return !HasEmptyCell(b) && !HasPossibleMerge(b)
}

// TileCount returns the number of occupied cells.
func TileCount(b Board) int {
	n := 0
	for r := range Size {
		for c := range Size {
			if !b[r][c].Empty() {
				n++
			}
		}
	}
	return n
}

// MaxLevel returns the highest tile level on the board, 0 for an empty board.
func MaxLevel(b Board) int {
	maxLevel := 0
	for r := range Size {
		for c := range Size {
			maxLevel = max(maxLevel, b[r][c].Level)
		}
	}
	return maxLevel
}

// Levels returns the level matrix of the board (0 = empty).
func Levels(b Board) [Size][Size]int {
	var levels [Size][Size]int
	for r := range Size {
		for c := range Size {
			levels[r][c] = b[r][c].Level
		}
	}
	return levels
}

// BoardFromLevels builds a board from a level matrix, numbering tiles in
// row-major order starting at firstID. It returns the next unused id.
func BoardFromLevels(levels [Size][Size]int, firstID int) (Board, int) {
	var b Board
	id := firstID
	for r := range Size {
		for c := range Size {
			if levels[r][c] <= 0 {
				continue
			}
			b[r][c] = Tile{ID: id, Level: levels[r][c]}
			id++
		}
	}
	return b, id
}

// Spawn places a new tile with the given id into a uniformly random empty cell.
// The level is 1, or 2 with probability SpawnLevel2Prob.
// Returns false when the board has no empty cell.
func Spawn(b *Board, rng *rand.Rand, id int) (Tile, Coord, bool) {
	empty := EmptyCells(*b)
	if len(empty) == 0 {
		return Tile{}, Coord{}, false
	}

	cell := empty[rng.Intn(len(empty))]

	level := 1
	if rng.Float64() < SpawnLevel2Prob {
		level = 2
	}

	tile := Tile{ID: id, Level: level}
	b[cell.Row][cell.Col] = tile
	return tile, cell, true
}
