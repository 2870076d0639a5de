package storage

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/game"
)

func TestLoadMissing(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Load(4)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if ok {
		t.Error("Load() reported a saved game in an empty database")
	}

	if _, ok, _ := store.LastSaved(4); ok {
		t.Error("LastSaved() reported a save in an empty database")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTestStore(t)

	want := game.Saved{
		Cells: [][]int{
			{2, 0, 0, 4},
			{0, 1024, 0, 0},
			{0, 0, 8, 0},
			{16, 0, 0, 2048},
		},
		Score:      20480,
		BestScore:  30000,
		AlreadyWon: true,
		Maxed:      true,
		SessionID:  "session-abc",
	}
	if err := store.Save(4, want); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, ok, err := store.Load(4)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v", ok, err)
	}

	for i := range 4 {
		for j := range 4 {
			if got.Cells[i][j] != want.Cells[i][j] {
				t.Errorf("cell %d-%d = %d, want %d", i, j, got.Cells[i][j], want.Cells[i][j])
			}
		}
	}
	if got.Score != want.Score || got.BestScore != want.BestScore ||
		got.AlreadyWon != want.AlreadyWon || got.Maxed != want.Maxed || got.SessionID != want.SessionID {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}

	if _, ok, err := store.LastSaved(4); err != nil || !ok {
		t.Errorf("LastSaved() = %v, %v", ok, err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	store := openTestStore(t)

	first := game.Saved{Cells: [][]int{{2, 2}, {0, 0}}, Score: 4, AlreadyWon: true, SessionID: "a"}
	second := game.Saved{Cells: [][]int{{0, 0}, {0, 8}}, Score: 12, SessionID: "b"}

	store.Save(2, first)
	if err := store.Save(2, second); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, _, err := store.Load(2)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got.Cells[0][0] != 0 || got.Cells[1][1] != 8 || got.Score != 12 || got.AlreadyWon || got.SessionID != "b" {
		t.Errorf("Load() = %+v, want second save", got)
	}
}

func TestSizesDoNotCollide(t *testing.T) {
	store := openTestStore(t)

	store.Save(4, game.Saved{Cells: [][]int{{2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, Score: 4})
	store.Save(5, game.Saved{Cells: [][]int{
		{0, 0, 0, 0, 64},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0},
	}, Score: 500})

	small, _, _ := store.Load(4)
	big, _, _ := store.Load(5)

	if small.Score != 4 || small.Cells[0][0] != 2 {
		t.Errorf("4x4 save = %+v", small)
	}
	if big.Score != 500 || big.Cells[0][4] != 64 || len(big.Cells) != 5 {
		t.Errorf("5x5 save = %+v", big)
	}

	if _, ok, _ := store.Load(6); ok {
		t.Error("Load(6) found a save that was never written")
	}
}

func TestClearGame(t *testing.T) {
	store := openTestStore(t)

	store.Save(4, game.Saved{Cells: [][]int{{2, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}}, BestScore: 90})
	store.Save(5, game.Saved{Cells: make([][]int, 5), Score: 1})

	if err := store.ClearGame(4); err != nil {
		t.Fatalf("ClearGame() failed: %v", err)
	}

	if _, ok, _ := store.Load(4); ok {
		t.Error("Load(4) still finds a cleared game")
	}
	if _, ok, _ := store.Load(5); !ok {
		t.Error("ClearGame(4) removed the 5x5 game")
	}
}

func TestLoadRejectsCorruptValue(t *testing.T) {
	store := openTestStore(t)

	store.Save(2, game.Saved{Cells: [][]int{{2, 0}, {0, 0}}})
	if _, err := store.db.Exec("UPDATE prefs SET value = 'x' WHERE namespace = ? AND key = ?", Namespace(2), "0-0"); err != nil {
		t.Fatalf("corrupting row failed: %v", err)
	}

	if _, _, err := store.Load(2); err == nil {
		t.Error("Load() accepted a non-numeric cell")
	}
}

func TestControllerRestoresFromStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "game.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	cfg := game.DefaultConfig()
	cfg.Seed = 7
	c, err := game.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	if _, err := c.LoadOrNew(); err != nil {
		t.Fatalf("LoadOrNew() failed: %v", err)
	}
	for _, dir := range []board.Direction{board.DirLeft, board.DirUp, board.DirRight, board.DirDown} {
		if _, err := c.Move(dir); err != nil {
			t.Fatalf("Move(%v) failed: %v", dir, err)
		}
	}
	want := c.Snapshot()
	store.Close()

	// A fresh process sees the same session
	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	restored, err := game.New(cfg, store, nil)
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	ok, err := restored.LoadOrNew()
	if err != nil || !ok {
		t.Fatalf("LoadOrNew() = %v, %v", ok, err)
	}

	got := restored.Snapshot()
	wantGrid, _ := board.FromCells(want.Cells)
	if !restored.Grid().Equal(wantGrid) {
		t.Errorf("restored grid:\n%v\nwant:\n%v", restored.Grid(), wantGrid)
	}
	if got.Score != want.Score || got.BestScore != want.BestScore ||
		got.AlreadyWon != want.AlreadyWon || got.SessionID != want.SessionID {
		t.Errorf("restored = %+v, want %+v", got, want)
	}
}
