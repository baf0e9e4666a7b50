package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/dungeonforge/internal/world"
)

// Regenerate produces a fresh tile grid when the user presses 'r'.
type Regenerate func() (*world.Grid, error)

// Viewer displays a tile grid in the terminal with panning and
// on-demand regeneration.
type Viewer struct {
	screen  *Screen
	grid    *world.Grid
	regen   Regenerate
	offX    int
	offY    int
	status  string
	running bool
}

// NewViewer creates a viewer over the given grid. regen may be nil, in
// which case 'r' does nothing.
func NewViewer(screen *Screen, grid *world.Grid, regen Regenerate) *Viewer {
	return &Viewer{screen: screen, grid: grid, regen: regen}
}

// Run enters the event loop. It returns when the user quits.
func (v *Viewer) Run() error {
	v.running = true
	for v.running {
		v.draw()
		v.handleEvent(v.screen.PollEvent())
	}
	return nil
}

func (v *Viewer) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		v.handleKey(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
}

func (v *Viewer) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.running = false
	case tcell.KeyUp:
		v.pan(0, -1)
	case tcell.KeyDown:
		v.pan(0, 1)
	case tcell.KeyLeft:
		v.pan(-1, 0)
	case tcell.KeyRight:
		v.pan(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			v.running = false
		case 'r', 'R':
			v.regenerate()
		}
	}
}

func (v *Viewer) pan(dx, dy int) {
	v.offX = max(0, min(v.offX+dx, max(0, v.grid.Width-1)))
	v.offY = max(0, min(v.offY+dy, max(0, v.grid.Height-1)))
}

func (v *Viewer) regenerate() {
	if v.regen == nil {
		return
	}
	grid, err := v.regen()
	if err != nil {
		v.status = "regeneration failed: " + err.Error()
		return
	}
	v.grid = grid
	v.offX, v.offY = 0, 0
	v.status = ""
}

func (v *Viewer) draw() {
	v.screen.Clear()

	width, height := v.screen.Size()
	mapHeight := height - 1 // bottom row is the status line

	for sy := 0; sy < mapHeight; sy++ {
		for sx := 0; sx < width; sx++ {
			tile := v.grid.Tile(v.offX+sx, v.offY+sy)
			v.screen.SetContent(sx, sy, tile.Rune(), tileStyle(tile))
		}
	}

	status := v.status
	if status == "" {
		status = "arrows pan | r regenerate | q quit"
	}
	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range status {
		if i >= width {
			break
		}
		v.screen.SetContent(i, height-1, ch, statusStyle)
	}

	v.screen.Show()
}

func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileCorridor:
		return tcell.StyleDefault.Foreground(tcell.ColorTeal)
	case world.TileSpawn:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case world.TileStairs:
		return tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	default:
		return tcell.StyleDefault
	}
}
