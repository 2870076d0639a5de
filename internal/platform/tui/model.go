package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/game"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Options configures a game screen.
type Options struct {
	Variant registry.Variant
	Game    game.Config
	Store   *storage.Store // Saved games and scores; nil disables both
	Logger  *log.Logger
}

// stepLog receives controller step events. It is shared by every copy of
// the Model value.
type stepLog struct {
	seq       int
	stepScore int
	stepMax   int
}

func (s *stepLog) OnStep(stepScore, stepMax int) {
	s.seq++
	s.stepScore = stepScore
	s.stepMax = stepMax
}

// Model is the Bubble Tea model for one game screen.
type Model struct {
	ctrl    *game.Controller
	variant registry.Variant
	store   *storage.Store
	logger  *log.Logger
	steps   *stepLog
	keys    KeyMap
	help    help.Model

	width        int
	height       int
	highlightSeq int    // Step whose merged/spawned tiles are emphasized; 0 for none
	savedSession string // Session whose score is already recorded
	quitting     bool
}

// NewModel creates the controller for the variant and restores its saved game.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cfg := opts.Game
	cfg.Size = opts.Variant.Size
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	steps := &stepLog{}
	var persistence game.Persistence
	if opts.Store != nil {
		persistence = opts.Store
	}

	ctrl, err := game.New(cfg, persistence, steps)
	if err != nil {
		return Model{}, err
	}

	restored, err := ctrl.LoadOrNew()
	if err != nil {
		return Model{}, err
	}
	if restored {
		logger.Info("restored saved game", "variant", opts.Variant.ID, "score", ctrl.Score())
		ctrl.CheckAccessibility()
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		ctrl:    ctrl,
		variant: opts.Variant,
		store:   opts.Store,
		logger:  logger,
		steps:   steps,
		keys:    DefaultKeyMap(),
		help:    h,
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case highlightDoneMsg:
		if msg.seq == m.highlightSeq {
			m.highlightSeq = 0
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.recordScore()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.NewGame):
		m.recordScore()
		if err := m.ctrl.NewGame(); err != nil {
			m.logger.Warn("cannot save new game", "variant", m.variant.ID, "err", err)
		}
		m.highlightSeq = 0
		return m, nil

	case key.Matches(msg, m.keys.Continue):
		if m.ctrl.State() == game.StateWon {
			m.ctrl.Continue() //nolint:errcheck // State checked above
		}
		return m, nil
	}

	dir, ok := m.keys.Direction(msg)
	if !ok {
		return m, nil
	}

	res, err := m.ctrl.Move(dir)
	switch {
	case errors.Is(err, game.ErrNotPlaying):
		return m, nil
	case err != nil:
		// The move itself was applied; only persisting it failed
		m.logger.Warn("cannot save game", "variant", m.variant.ID, "err", err)
	}
	if !res.Changed {
		return m, nil
	}

	m.logger.Debug("move",
		"dir", dir,
		"step_score", m.steps.stepScore,
		"step_max", m.steps.stepMax,
		"state", m.ctrl.State(),
	)

	if m.ctrl.State().Terminal() {
		m.recordScore()
	}

	m.highlightSeq = m.steps.seq
	return m, highlightCmd(m.steps.seq)
}

// recordScore saves the session's score to the scoreboard once.
func (m *Model) recordScore() {
	if m.store == nil || m.ctrl.Score() == 0 {
		return
	}
	session := m.ctrl.SessionID()
	if session == m.savedSession {
		return
	}

	snap := m.ctrl.Snapshot()
	if err := m.store.SaveScore(m.variant.ID, session, snap.Score, snap.MaxTile); err != nil {
		m.logger.Warn("cannot save score", "variant", m.variant.ID, "err", err)
		return
	}
	m.savedSession = session
	m.logger.Info("score saved", "variant", m.variant.ID, "score", snap.Score, "max_tile", snap.MaxTile)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#edc22e"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder

	b.WriteString(title.Render("2048"))
	b.WriteString(muted.Render("  " + m.variant.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Score %d   Best %d", m.ctrl.Score(), m.ctrl.BestScore())
	if m.highlightSeq != 0 && m.steps.stepScore > 0 {
		b.WriteString(muted.Render(fmt.Sprintf("  +%d", m.steps.stepScore)))
	}
	b.WriteString("\n\n")

	b.WriteString(RenderBoard(BoardView{
		Grid:      m.ctrl.Grid(),
		LastMove:  m.ctrl.LastMove(),
		Spawned:   m.ctrl.Spawned(),
		Highlight: m.highlightSeq != 0,
	}))
	b.WriteString("\n")

	if overlay := m.overlay(); overlay != "" {
		b.WriteString(overlay)
		b.WriteString("\n")
	}

	b.WriteString(muted.Render(m.help.View(m.keys)))

	if m.width > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// overlay returns the message for the current state, if any.
func (m Model) overlay() string {
	switch m.ctrl.State() {
	case game.StateWon:
		return renderOverlay(
			fmt.Sprintf("You reached %d!", m.ctrl.Target()),
			"Press C to keep going",
		)
	case game.StateOver:
		return renderOverlay(
			"GAME OVER",
			fmt.Sprintf("Max tile: %d", m.ctrl.Snapshot().MaxTile),
			"Press R to restart",
		)
	case game.StateMaxed:
		return renderOverlay(
			"MAXIMUM REACHED",
			"No tile can grow any further",
			"Press R to restart",
		)
	}
	return ""
}

// Controller exposes the session for callers that inspect the final state.
func (m Model) Controller() *game.Controller {
	return m.ctrl
}

// Run starts the Bubble Tea program for one game screen.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
