package t2048

import (
	"math/rand"
	"testing"
)

func TestIsLoss(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want bool
	}{
		{
			name: "full without pairs",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: true,
		},
		{
			name: "horizontal pair",
			rows: [][]int{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: false,
		},
		{
			name: "vertical pair",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 4096},
			},
			want: false,
		},
		{
			name: "empty cell",
			rows: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
			want: false,
		},
		{
			name: "checkerboard",
			rows: [][]int{
				{2, 4},
				{4, 2},
			},
			want: true,
		},
		{
			name: "row and column share a value but are not adjacent",
			rows: [][]int{
				{2, 4, 2},
				{4, 2, 4},
				{2, 4, 2},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLoss(GridFromRows(tt.rows)); got != tt.want {
				t.Errorf("IsLoss = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsLossMatchesAnyMove(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := range 500 {
		// Dense grids with few distinct values exercise both outcomes.
		g := NewGrid(2 + trial%4)
		for i := range g.Sides() {
			for j := range g.Sides() {
				g.Set(i, j, Tile{Value: 1 << (1 + rng.Intn(4))})
			}
		}
		if IsLoss(g) == AnyMove(g) {
			t.Fatalf("IsLoss = %v disagrees with AnyMove on\n%v", IsLoss(g), g)
		}
	}
}

func TestIsWin(t *testing.T) {
	if IsWin(MoveOutcome{Changed: true}) {
		t.Error("plain move should not win")
	}
	if !IsWin(MoveOutcome{Changed: true, ReachedTarget: true}) {
		t.Error("move reaching the target should win")
	}
}
