package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/board"
)

var (
	// ErrNotPlaying is returned for moves or transitions the current state does not allow.
	ErrNotPlaying = errors.New("game: not playing")
	// ErrSizeMismatch is returned when a restored grid does not match the configured size.
	ErrSizeMismatch = errors.New("game: saved grid size mismatch")
)

// State is the controller's position in the session lifecycle.
type State int

const (
	StateIdle    State = iota // No grid loaded yet
	StatePlaying              // Accepting moves
	StateWon                  // Target reached; moves still accepted
	StateOver                 // No accessible moves
	StateMaxed                // Tile or score ceiling reached
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateOver:
		return "over"
	case StateMaxed:
		return "maxed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state only allows starting a new game.
func (s State) Terminal() bool {
	return s == StateOver || s == StateMaxed
}

// Controller owns the grid of one session and is its only mutator.
// It is not safe for concurrent use; the host serializes calls.
type Controller struct {
	cfg      Config
	grid     *board.Grid
	spawner  *board.Spawner
	store    Persistence
	listener StepListener

	state      State
	score      int
	bestScore  int
	alreadyWon bool
	sessionID  string

	// Presentation metadata, valid until the next move or new game
	lastMove board.MoveResult
	spawned  []board.Tile
}

// New creates a controller in StateIdle. store and listener may be nil.
func New(cfg Config, store Persistence, listener StepListener) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := board.New(cfg.Size)
	if err != nil {
		return nil, err
	}

	spawner := board.NewSpawner(rand.New(rand.NewSource(cfg.Seed)))
	spawner.SetFourProbability(cfg.FourProbability)

	return &Controller{
		cfg:      cfg,
		grid:     grid,
		spawner:  spawner,
		store:    store,
		listener: listener,
		state:    StateIdle,
	}, nil
}

// LoadOrNew restores the saved session for the configured size, or starts a
// new game when nothing (or an all-empty grid) is saved.
// It reports whether a genuine saved game was restored.
func (c *Controller) LoadOrNew() (bool, error) {
	if c.store == nil {
		return false, c.NewGame()
	}

	saved, ok, err := c.store.Load(c.cfg.Size)
	if err != nil {
		return false, fmt.Errorf("game: load: %w", err)
	}
	if !ok || saved.IsFresh() {
		if ok {
			c.bestScore = saved.BestScore
		}
		return false, c.NewGame()
	}

	grid, err := board.FromCells(saved.Cells)
	if err != nil {
		return false, fmt.Errorf("game: restore: %w", err)
	}
	if grid.Size() != c.cfg.Size {
		return false, fmt.Errorf("%w: saved %d, configured %d", ErrSizeMismatch, grid.Size(), c.cfg.Size)
	}

	c.grid = grid
	c.score = saved.Score
	c.bestScore = max(saved.BestScore, saved.Score)
	c.alreadyWon = saved.AlreadyWon
	c.sessionID = saved.SessionID
	if c.sessionID == "" {
		c.sessionID = uuid.NewString()
	}
	c.lastMove = board.MoveResult{}
	c.spawned = nil
	c.state = StatePlaying
	if saved.Maxed {
		c.state = StateMaxed
	}

	return true, nil
}

// NewGame clears the grid, places two tiles and resets score and win flag.
// The best score is kept.
func (c *Controller) NewGame() error {
	c.grid.Clear()

	tiles, err := c.spawner.SpawnTwo(c.grid)
	if err != nil {
		return fmt.Errorf("game: new game: %w", err)
	}

	c.spawned = tiles
	c.lastMove = board.MoveResult{}
	c.score = 0
	c.alreadyWon = false
	c.sessionID = uuid.NewString()
	c.state = StatePlaying

	return c.persist()
}

// Move applies one direction. A move that changes nothing returns
// Changed == false and has no other effect. A changed move spawns a tile,
// updates score and state, persists the session and notifies the listener.
func (c *Controller) Move(dir board.Direction) (board.MoveResult, error) {
	if !dir.Valid() {
		return board.MoveResult{}, fmt.Errorf("%w: %d", board.ErrInvalidDirection, int(dir))
	}
	if c.state != StatePlaying && c.state != StateWon {
		return board.MoveResult{}, fmt.Errorf("%w: state %s", ErrNotPlaying, c.state)
	}

	res := board.Move(c.grid, dir)
	if !res.Changed {
		return res, nil
	}
	c.lastMove = res

	// A changed move always leaves at least one empty cell
	tile, err := c.spawner.SpawnOne(c.grid)
	if err != nil {
		return res, fmt.Errorf("game: spawn after %s: %w", dir, err)
	}
	c.spawned = []board.Tile{tile}

	// The ceiling step is not scored; the session is saved as maxed
	if res.StepMax >= c.cfg.Ceiling || c.score+res.StepScore >= c.cfg.Ceiling {
		c.state = StateMaxed
		err = c.persist()
		c.notify(res)
		return res, err
	}

	c.score += res.StepScore
	if c.score > c.bestScore {
		c.bestScore = c.score
	}

	switch {
	case !c.grid.Accessible():
		c.state = StateOver
	case !c.alreadyWon && res.StepMax == c.cfg.Target:
		c.alreadyWon = true
		c.state = StateWon
	default:
		c.state = StatePlaying
	}

	err = c.persist()
	c.notify(res)
	return res, err
}

// Continue resumes play after a win.
func (c *Controller) Continue() error {
	if c.state != StateWon {
		return fmt.Errorf("%w: cannot continue from %s", ErrNotPlaying, c.state)
	}
	c.state = StatePlaying
	return nil
}

// Accessible reports whether any move could still change the grid.
func (c *Controller) Accessible() bool {
	return c.grid.Accessible()
}

// CheckAccessibility polls the grid and moves an active session to
// StateOver when no move can change it. It returns the accessibility.
func (c *Controller) CheckAccessibility() bool {
	ok := c.grid.Accessible()
	if !ok && (c.state == StatePlaying || c.state == StateWon) {
		c.state = StateOver
	}
	return ok
}

func (c *Controller) notify(res board.MoveResult) {
	if c.listener != nil {
		c.listener.OnStep(res.StepScore, res.StepMax)
	}
}

func (c *Controller) persist() error {
	if c.store == nil {
		return nil
	}
	if err := c.store.Save(c.cfg.Size, c.Saved()); err != nil {
		return fmt.Errorf("game: save: %w", err)
	}
	return nil
}

// Saved returns the session in its persisted form.
func (c *Controller) Saved() Saved {
	return Saved{
		Cells:      c.grid.Cells(),
		Score:      c.score,
		BestScore:  c.bestScore,
		AlreadyWon: c.alreadyWon,
		Maxed:      c.state == StateMaxed,
		SessionID:  c.sessionID,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Score returns the cumulative score of the session.
func (c *Controller) Score() int { return c.score }

// BestScore returns the best score seen for this grid size.
func (c *Controller) BestScore() int { return c.bestScore }

// AlreadyWon reports whether the target was reached this session.
func (c *Controller) AlreadyWon() bool { return c.alreadyWon }

// Size returns the grid dimension.
func (c *Controller) Size() int { return c.cfg.Size }

// Target returns the winning tile value.
func (c *Controller) Target() int { return c.cfg.Target }

// SessionID identifies the current game; it changes on every new game.
func (c *Controller) SessionID() string { return c.sessionID }

// Grid returns a copy of the current grid.
func (c *Controller) Grid() *board.Grid { return c.grid.Clone() }

// LastMove returns the metadata of the last changed move.
// It is the zero MoveResult after a new game or restore.
func (c *Controller) LastMove() board.MoveResult { return c.lastMove }

// Spawned returns the tiles placed by the last move (one) or new game (two).
func (c *Controller) Spawned() []board.Tile {
	out := make([]board.Tile, len(c.spawned))
	copy(out, c.spawned)
	return out
}

// Snapshot captures the session for display and determinism tests.
type Snapshot struct {
	Size       int
	Cells      [][]int
	Score      int
	BestScore  int
	MaxTile    int
	AlreadyWon bool
	State      State
	SessionID  string
}

// Snapshot returns the current session snapshot.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Size:       c.cfg.Size,
		Cells:      c.grid.Cells(),
		Score:      c.score,
		BestScore:  c.bestScore,
		MaxTile:    c.grid.Max(),
		AlreadyWon: c.alreadyWon,
		State:      c.state,
		SessionID:  c.sessionID,
	}
}
