// Package terminal draws the game in a terminal with tcell and turns key
// presses into game events.
package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/ayusman/pinchflap/internal/game"
	"github.com/ayusman/pinchflap/internal/geom"
)

const tooSmallText = "terminal too small"

const (
	pipeRune   = '█'
	groundRune = '▒'
	groundAlt  = '░'
	pinchRune  = '●'
)

var (
	styleDefault = tcell.StyleDefault
	stylePipe    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleGround  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleActor   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	stylePinch   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Reverse(true)
)

// Screen renders snapshots to a tcell screen. The bottom row is a status
// line; the rest of the terminal shows the world scaled to fit.
type Screen struct {
	screen tcell.Screen
	log    zerolog.Logger
}

// New initializes the controlling terminal. A failure here is fatal for the
// program since there is nothing to draw on.
func New(log zerolog.Logger) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	return NewWithScreen(s, log), nil
}

// NewWithScreen wraps an already initialized tcell screen.
func NewWithScreen(s tcell.Screen, log zerolog.Logger) *Screen {
	s.SetStyle(styleDefault)
	s.HideCursor()
	s.Clear()
	return &Screen{
		screen: s,
		log:    log.With().Str("component", "terminal").Logger(),
	}
}

// Render draws one snapshot and shows it. A terminal with no room for the
// playfield gets a notice instead.
func (s *Screen) Render(snap game.Snapshot) error {
	cols, rows := s.screen.Size()
	s.screen.Clear()

	vp, ok := newViewport(cols, rows-1, snap.WorldWidth, snap.WorldHeight)
	if !ok {
		s.drawText(0, 0, cols, tooSmallText, styleDefault)
		s.screen.Show()
		return nil
	}

	for _, o := range snap.Obstacles {
		s.fill(vp, o.Upper, pipeRune, stylePipe)
		s.fill(vp, o.Lower, pipeRune, stylePipe)
	}
	s.drawGround(vp, snap.GroundY, snap.GroundOffset)
	s.fill(vp, snap.Actor.Bounds, actorRune(snap.Actor.Rotation, snap.Actor.Frame), styleActor)
	s.drawStatus(cols, rows-1, snap)

	s.screen.Show()
	return nil
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.screen.Fini()
}

func (s *Screen) fill(vp viewport, r geom.Rect, ch rune, style tcell.Style) {
	x0, y0, x1, y1 := vp.cells(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			s.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (s *Screen) drawGround(vp viewport, groundY, offset float64) {
	top := int(math.Floor(groundY * vp.sy))
	shift := int(math.Floor(offset * vp.sx))
	for y := max(top, 0); y < vp.rows; y++ {
		for x := 0; x < vp.cols; x++ {
			ch := groundRune
			if (x+shift)%4 == 0 {
				ch = groundAlt
			}
			s.screen.SetContent(x, y, ch, nil, styleGround)
		}
	}
}

func (s *Screen) drawStatus(cols, row int, snap game.Snapshot) {
	for x := 0; x < cols; x++ {
		s.screen.SetContent(x, row, ' ', nil, styleStatus)
	}
	s.drawText(0, row, cols, statusText(snap), styleStatus)
	if snap.Pinching && cols > 0 {
		s.screen.SetContent(cols-1, row, pinchRune, nil, stylePinch)
	}
}

func (s *Screen) drawText(x, y, cols int, text string, style tcell.Style) {
	for _, r := range text {
		if x >= cols {
			return
		}
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// statusText describes the run state and the keys that apply to it.
func statusText(snap game.Snapshot) string {
	id := snap.RunID
	if len(id) > 8 {
		id = id[:8]
	}
	switch snap.State {
	case game.StateIdle:
		return fmt.Sprintf(" READY %s | Enter: start  Space/pinch: flap  q: quit", id)
	case game.StateRunning:
		return fmt.Sprintf(" RUN %s | pipes %d | Space/pinch: flap  r: reset  q: quit", id, len(snap.Obstacles))
	case game.StateEnded:
		return fmt.Sprintf(" HIT %s (%s) | r: reset  q: quit", snap.Cause, id)
	default:
		return " " + snap.State.String()
	}
}

// actorRune picks a glyph from the pitch and wing frame. Positive rotation
// is nose up.
func actorRune(rotation float64, frame int) rune {
	switch {
	case rotation > 10:
		return '/'
	case rotation < -30:
		return '\\'
	case frame%2 == 1:
		return 'v'
	default:
		return '>'
	}
}

// viewport maps world pixels onto terminal cells.
type viewport struct {
	cols, rows int
	sx, sy     float64
}

func newViewport(cols, rows int, worldW, worldH float64) (viewport, bool) {
	if cols <= 0 || rows <= 0 || worldW <= 0 || worldH <= 0 {
		return viewport{}, false
	}
	return viewport{
		cols: cols,
		rows: rows,
		sx:   float64(cols) / worldW,
		sy:   float64(rows) / worldH,
	}, true
}

// cells returns the half-open cell range covered by r, clipped to the
// viewport. Any rect with positive area covers at least one cell when it
// lies inside the viewport.
func (v viewport) cells(r geom.Rect) (x0, y0, x1, y1 int) {
	x0 = clampInt(int(math.Floor(r.X*v.sx)), 0, v.cols)
	y0 = clampInt(int(math.Floor(r.Y*v.sy)), 0, v.rows)
	x1 = clampInt(int(math.Ceil(r.Right()*v.sx)), 0, v.cols)
	y1 = clampInt(int(math.Ceil(r.Bottom()*v.sy)), 0, v.rows)
	return x0, y0, x1, y1
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
