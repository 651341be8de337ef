package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

const testOwner = "alice"

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func newTestModel(t *testing.T, store *storage.Store, resume *t2048.Snapshot) Model {
	t.Helper()
	game, err := registry.Create("2048")
	if err != nil {
		t.Fatalf("registry.Create() failed: %v", err)
	}
	return NewModel(game, testRuntime(), Options{
		Store:  store,
		Owner:  testOwner,
		Resume: resume,
	})
}

// send feeds msg to m and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model, cmd
}

// checkerboard has no empty cell and no equal neighbours.
func checkerboard(score int) t2048.Snapshot {
	tiles := map[t2048.Coord]int{}
	for i := range 4 {
		for j := range 4 {
			v := 2
			if (i+j)%2 == 1 {
				v = 4
			}
			tiles[t2048.Coord{I: i, J: j}] = v
		}
	}
	return t2048.Snapshot{Sides: 4, Tiles: tiles, Score: t2048.Score{Current: score, Best: score}}
}

func TestModelSavesSnapshotAfterMove(t *testing.T) {
	store := openTestStore(t)
	resume := &t2048.Snapshot{
		Sides: 4,
		Tiles: map[t2048.Coord]int{{I: 0, J: 0}: 2, {I: 1, J: 0}: 2},
	}
	m := newTestModel(t, store, resume)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, TickMsg{})

	if got := m.State().Score; got != 4 {
		t.Fatalf("score after merge = %d, want 4", got)
	}
	snap, err := store.LoadSnapshot(testOwner, "2048")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if snap == nil {
		t.Fatal("no snapshot saved after a move")
	}
	if snap.Score.Current != 4 {
		t.Errorf("saved score = %d, want 4", snap.Score.Current)
	}
	if got := snap.Tiles[t2048.Coord{I: 0, J: 0}]; got != 4 {
		t.Errorf("saved (0,0) = %d, want 4", got)
	}
	if len(snap.Tiles) != 2 {
		t.Errorf("saved %d tiles, want merged tile plus spawn", len(snap.Tiles))
	}
}

func TestModelNoMoveSavesNothing(t *testing.T) {
	store := openTestStore(t)
	resume := &t2048.Snapshot{
		Sides: 4,
		Tiles: map[t2048.Coord]int{{I: 0, J: 0}: 2},
	}
	m := newTestModel(t, store, resume)

	// The tile already sits against the left wall.
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	_, _ = send(t, m, TickMsg{})

	snap, err := store.LoadSnapshot(testOwner, "2048")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if snap != nil {
		t.Errorf("snapshot saved for a move that changed nothing: %+v", snap)
	}
}

func TestModelGameOverRecordsScore(t *testing.T) {
	store := openTestStore(t)
	lost := checkerboard(120)
	if err := store.SaveSnapshot(testOwner, "2048", lost); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	m := newTestModel(t, store, &lost)
	m, _ = send(t, m, TickMsg{})
	m, _ = send(t, m, TickMsg{}) // Recorded once only

	if !m.State().GameOver {
		t.Fatal("restored full board is not game over")
	}
	scores, err := store.AllScores("2048")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 120 {
		t.Errorf("scores = %+v, want one entry of 120", scores)
	}
	snap, err := store.LoadSnapshot(testOwner, "2048")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if snap != nil {
		t.Error("lost game is still saved")
	}
}

func TestModelRestartRecordsFinalScore(t *testing.T) {
	store := openTestStore(t)
	resume := &t2048.Snapshot{
		Sides: 4,
		Tiles: map[t2048.Coord]int{{I: 0, J: 0}: 8},
		Score: t2048.Score{Current: 50, Best: 50},
	}
	m := newTestModel(t, store, resume)

	m, _ = send(t, m, runeKey('r'))
	m, _ = send(t, m, TickMsg{})

	if got := m.State().Score; got != 0 {
		t.Errorf("score after restart = %d, want 0", got)
	}
	if got := m.State().Best; got != 50 {
		t.Errorf("best after restart = %d, want 50", got)
	}
	best, err := store.HighScore("2048")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if best != 50 {
		t.Errorf("HighScore() = %d, want 50", best)
	}
}

func TestModelDiscardsInvalidResume(t *testing.T) {
	store := openTestStore(t)
	bad := t2048.Snapshot{
		Sides: 5, // Saved for another board
		Tiles: map[t2048.Coord]int{{I: 4, J: 4}: 2},
		Score: t2048.Score{Current: 10},
	}
	if err := store.SaveSnapshot(testOwner, "2048", bad); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	m := newTestModel(t, store, &bad)

	if got := m.State().Score; got != 0 {
		t.Errorf("score = %d, want fresh game", got)
	}
	snap, err := store.LoadSnapshot(testOwner, "2048")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if snap != nil {
		t.Error("invalid saved game was kept")
	}
}

func TestModelSeedsBestFromStore(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveScore("2048", 900); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	m := newTestModel(t, store, nil)
	if got := m.State().Best; got != 900 {
		t.Errorf("Best = %d, want 900", got)
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := newTestModel(t, nil, nil)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, TickMsg{})

	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	m := newTestModel(t, nil, nil)

	back, cmd := send(t, m, runeKey('b'))
	if !back.BackToMenu() {
		t.Error("b did not request the menu")
	}
	if cmd != nil {
		t.Error("back inside a session should not quit the program")
	}

	quit, cmd := send(t, m, runeKey('q'))
	if !quit.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if quit.View() != "" {
		t.Error("view after quit should be empty")
	}
}

func TestModelResizeKeepsBoard(t *testing.T) {
	resume := &t2048.Snapshot{
		Sides: 4,
		Tiles: map[t2048.Coord]int{{I: 2, J: 2}: 16},
		Score: t2048.Score{Current: 32},
	}
	m := newTestModel(t, nil, resume)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 20, Height: 10})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = send(t, m, TickMsg{})

	if got := m.State().Score; got != 32 {
		t.Errorf("score after resize = %d, want 32", got)
	}
}
