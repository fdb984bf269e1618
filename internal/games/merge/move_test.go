package merge

import (
	"math/rand"
	"testing"
)

func rowBoard(row [Size]int) Board {
	b, _ := BoardFromLevels([Size][Size]int{row}, 1)
	return b
}

func rowLevels(b Board) [Size]int {
	return Levels(b)[0]
}

func TestMoveRow(t *testing.T) {
	tests := []struct {
		name   string
		dir    Direction
		input  [Size]int
		want   [Size]int
		gained int
		moved  bool
	}{
		{"simple merge", DirLeft, [Size]int{1, 1, 0, 0}, [Size]int{2, 0, 0, 0}, 4, true},
		{"single pass", DirLeft, [Size]int{1, 1, 1, 0}, [Size]int{2, 1, 0, 0}, 4, true},
		{"double merge", DirLeft, [Size]int{1, 1, 1, 1}, [Size]int{2, 2, 0, 0}, 8, true},
		{"merged tile does not merge again", DirLeft, [Size]int{2, 1, 1, 0}, [Size]int{2, 2, 0, 0}, 4, true},
		{"no merge possible", DirLeft, [Size]int{1, 2, 3, 4}, [Size]int{1, 2, 3, 4}, 0, false},
		{"slide with gap", DirLeft, [Size]int{0, 0, 1, 1}, [Size]int{2, 0, 0, 0}, 4, true},
		{"merge across gaps", DirLeft, [Size]int{1, 0, 0, 1}, [Size]int{2, 0, 0, 0}, 4, true},
		{"already compact", DirLeft, [Size]int{3, 1, 0, 0}, [Size]int{3, 1, 0, 0}, 0, false},
		{"right travel order", DirRight, [Size]int{1, 1, 1, 0}, [Size]int{0, 0, 1, 2}, 4, true},
		{"right slide", DirRight, [Size]int{0, 4, 0, 0}, [Size]int{0, 0, 0, 4}, 0, true},
		{"empty row", DirLeft, [Size]int{}, [Size]int{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := rowBoard(tt.input)
			res := Move(b, tt.dir, 100)

			if got := rowLevels(res.Board); got != tt.want {
				t.Errorf("Move(%v, %s) = %v, want %v", tt.input, tt.dir, got, tt.want)
			}
			if res.Gained != tt.gained {
				t.Errorf("gained = %d, want %d", res.Gained, tt.gained)
			}
			if res.Moved != tt.moved {
				t.Errorf("moved = %v, want %v", res.Moved, tt.moved)
			}
		})
	}
}

func TestMoveColumns(t *testing.T) {
	levels := [Size][Size]int{
		{1, 2, 1, 0},
		{1, 0, 1, 0},
		{0, 2, 1, 0},
		{0, 0, 1, 1},
	}
	b, next := BoardFromLevels(levels, 1)

	up := Move(b, DirUp, next)
	wantUp := [Size][Size]int{
		{2, 3, 2, 1},
		{0, 0, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if got := Levels(up.Board); got != wantUp {
		t.Errorf("Move up:\n got %v\nwant %v", got, wantUp)
	}
	if up.Gained != 4+8+4+4 {
		t.Errorf("Move up gained = %d, want 20", up.Gained)
	}

	down := Move(b, DirDown, next)
	wantDown := [Size][Size]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 2, 0},
		{2, 3, 2, 1},
	}
	if got := Levels(down.Board); got != wantDown {
		t.Errorf("Move down:\n got %v\nwant %v", got, wantDown)
	}
}

func TestMoveMergeBookkeeping(t *testing.T) {
	b := rowBoard([Size]int{1, 1, 0, 0}) // ids 1 and 2
	res := Move(b, DirLeft, 3)

	tile := res.Board[0][0]
	if tile.ID != 3 || tile.Level != 2 {
		t.Fatalf("merged tile = %+v, want id 3 level 2", tile)
	}
	if !res.Merged(3) {
		t.Error("merged id 3 not recorded")
	}
	if res.NextID != 4 {
		t.Errorf("NextID = %d, want 4", res.NextID)
	}

	m, ok := res.Motions[3]
	if !ok {
		t.Fatal("no motion for merged tile")
	}
	if m.From != (Coord{0, 0}) || m.To != (Coord{0, 0}) {
		t.Errorf("motion = %+v, want (0,0)->(0,0)", m)
	}
	if _, ok := res.Motions[1]; ok {
		t.Error("consumed tile 1 still has a motion")
	}

	if len(res.MergeEvents) != 1 {
		t.Fatalf("merge events = %v, want one", res.MergeEvents)
	}
	if e := res.MergeEvents[0]; e.Row != 0 || e.Col != 0 || e.Points != 4 {
		t.Errorf("merge event = %+v, want {0 0 4}", e)
	}
	if len(res.MergedLevels) != 1 || res.MergedLevels[0] != 2 {
		t.Errorf("merged levels = %v, want [2]", res.MergedLevels)
	}
}

func TestMoveKeepsIDsOfSlidingTiles(t *testing.T) {
	b := rowBoard([Size]int{0, 0, 3, 0}) // id 1 at (0,2)
	res := Move(b, DirLeft, 2)

	if res.Board[0][0].ID != 1 {
		t.Errorf("tile id = %d, want 1", res.Board[0][0].ID)
	}
	m := res.Motions[1]
	if m.From != (Coord{0, 2}) || m.To != (Coord{0, 0}) || !m.Moved() {
		t.Errorf("motion = %+v, want (0,2)->(0,0)", m)
	}
}

func TestMoveTileCountAndIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := range 200 {
		b := EmptyBoard()
		id := 1
		for range rng.Intn(Size*Size) + 1 {
			if _, _, ok := Spawn(&b, rng, id); ok {
				id++
			}
		}

		for _, dir := range Directions {
			res := Move(b, dir, id)
			if got, want := TileCount(res.Board), TileCount(b)-len(res.MergedIDs); got != want {
				t.Fatalf("case %d %s: tile count = %d, want %d", i, dir, got, want)
			}

			if res.Moved {
				continue
			}
			if res.Board != b {
				t.Fatalf("case %d %s: unmoved board changed", i, dir)
			}
			if res.Gained != 0 || len(res.MergeEvents) != 0 {
				t.Fatalf("case %d %s: unmoved board gained %d", i, dir, res.Gained)
			}
		}
	}
}

func TestLocked(t *testing.T) {
	tests := []struct {
		name   string
		levels [Size][Size]int
		want   bool
	}{
		{
			name: "checkerboard",
			levels: [Size][Size]int{
				{1, 2, 1, 2},
				{2, 1, 2, 1},
				{1, 2, 1, 2},
				{2, 1, 2, 1},
			},
			want: true,
		},
		{
			name: "horizontal pair",
			levels: [Size][Size]int{
				{1, 1, 3, 4},
				{2, 3, 4, 5},
				{3, 4, 5, 6},
				{4, 5, 6, 7},
			},
			want: false,
		},
		{
			name: "vertical pair",
			levels: [Size][Size]int{
				{1, 2, 1, 2},
				{2, 1, 2, 1},
				{1, 2, 1, 2},
				{2, 1, 2, 2},
			},
			want: false,
		},
		{
			name: "one empty cell",
			levels: [Size][Size]int{
				{1, 2, 1, 2},
				{2, 1, 2, 1},
				{1, 2, 1, 2},
				{2, 1, 2, 0},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := BoardFromLevels(tt.levels, 1)
			if got := Locked(b); got != tt.want {
				t.Errorf("Locked() = %v, want %v", got, tt.want)
			}
			if tt.want {
				for _, dir := range Directions {
					if Move(b, dir, 100).Moved {
						t.Errorf("locked board moved %s", dir)
					}
				}
			}
		})
	}
}

func TestSpawnFillsBoard(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	b := EmptyBoard()

	for id := 1; id <= Size*Size; id++ {
		tile, at, ok := Spawn(&b, rng, id)
		if !ok {
			t.Fatalf("spawn %d failed on a board with room", id)
		}
		if tile.Level != 1 && tile.Level != 2 {
			t.Errorf("spawned level %d, want 1 or 2", tile.Level)
		}
		if b.At(at) != tile {
			t.Errorf("tile not placed at %v", at)
		}
	}

	if _, _, ok := Spawn(&b, rng, 99); ok {
		t.Error("spawn succeeded on a full board")
	}
	if TileCount(b) != Size*Size {
		t.Errorf("tile count = %d, want %d", TileCount(b), Size*Size)
	}
}

func TestSpawnLevelDistribution(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	level2 := 0
	const n = 5000

	for i := range n {
		b := EmptyBoard()
		tile, _, _ := Spawn(&b, rng, i+1)
		if tile.Level == 2 {
			level2++
		}
	}

	ratio := float64(level2) / n
	if ratio < 0.07 || ratio > 0.13 {
		t.Errorf("level 2 ratio = %.3f, want about %.2f", ratio, SpawnLevel2Prob)
	}
}
