package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/board"
)

// Board palette
var (
	frameColor     = lipgloss.Color("#bbada0")
	emptyCellColor = lipgloss.Color("#cdc1b4")
	darkTextColor  = lipgloss.Color("#776e65")
	lightTextColor = lipgloss.Color("#f9f6f2")
)

// tileColors maps the upper bound of a value band to its background.
var tileColors = []struct {
	upTo  int
	color lipgloss.Color
}{
	{2, "#eee4da"},
	{4, "#ede0c8"},
	{8, "#f2b179"},
	{16, "#f59563"},
	{32, "#f67c5f"},
	{64, "#f65e3b"},
	{128, "#edcf72"},
	{256, "#edcc61"},
	{512, "#edc850"},
	{1024, "#edc53f"},
	{2048, "#e5b804"},
	{4096, "#a8b825"},
	{8192, "#50b811"},
}

// tileBackground returns the background color of a tile.
func tileBackground(value int) lipgloss.Color {
	if value == 0 {
		return emptyCellColor
	}
	for _, band := range tileColors {
		if value <= band.upTo {
			return band.color
		}
	}
	return "#c40dd4"
}

// tileForeground returns the text color of a tile.
func tileForeground(value int) lipgloss.Color {
	if value <= 4 {
		return darkTextColor
	}
	return lightTextColor
}

// cellWidth returns the inner width of every cell, wide enough for the
// largest tile plus one column of padding on each side.
func cellWidth(g *board.Grid) int {
	return max(4, len(strconv.Itoa(g.Max()))) + 2
}

// BoardView carries what the board renderer needs for one frame.
type BoardView struct {
	Grid      *board.Grid
	LastMove  board.MoveResult
	Spawned   []board.Tile
	Highlight bool // Emphasize merged and spawned tiles
}

func (v BoardView) spawnedAt(row, col int) bool {
	for _, t := range v.Spawned {
		if t.Row == row && t.Col == col {
			return true
		}
	}
	return false
}

// RenderBoard draws the grid as colored tiles inside a frame.
func RenderBoard(v BoardView) string {
	g := v.Grid
	width := cellWidth(g)
	size := g.Size()

	rows := make([]string, size)
	for row := range size {
		cells := make([]string, size)
		for col := range size {
			val, _ := g.Get(row, col)

			style := lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Background(tileBackground(val)).
				Foreground(tileForeground(val))

			if v.Highlight && val != 0 {
				if v.LastMove.Merged(row, col) {
					style = style.Bold(true)
				}
				if v.spawnedAt(row, col) {
					style = style.Underline(true)
				}
			}

			text := ""
			if val != 0 {
				text = strconv.Itoa(val)
			}
			cells[col] = style.Render(text)
		}
		rows[row] = strings.Join(cells, " ")
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frameColor).
		Padding(0, 1)

	return frame.Render(strings.Join(rows, "\n"))
}

// renderOverlay draws a boxed multi-line message.
func renderOverlay(lines ...string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("229")).
		Padding(0, 2).
		Align(lipgloss.Center)
	return box.Render(strings.Join(lines, "\n"))
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}
