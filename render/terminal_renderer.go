// Package render draws simulation snapshots on a tcell screen
// World space is y-up; the bottom screen row is the status bar
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/golang/geo/r2"

	"github.com/lixenwraith/mazecar/simulation"
)

const statusRows = 1

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{screen: screen}
}

// viewport maps the arena onto the screen area above the status bar
type viewport struct {
	arena         r2.Rect
	width, height int
}

// cell converts a world point to a screen cell, y flipped; ok is false off screen
func (v viewport) cell(p r2.Point) (x, y int, ok bool) {
	size := v.arena.Size()
	if size.X <= 0 || size.Y <= 0 || v.width <= 0 || v.height <= 0 {
		return 0, 0, false
	}
	fx := (p.X - v.arena.X.Lo) / size.X * float64(v.width)
	fy := (v.arena.Y.Hi - p.Y) / size.Y * float64(v.height)
	if math.IsNaN(fx) || math.IsNaN(fy) {
		return 0, 0, false
	}
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	// Right and top edges belong to the last cell
	if x == v.width && p.X == v.arena.X.Hi {
		x--
	}
	if y == v.height && p.Y == v.arena.Y.Lo {
		y--
	}
	return x, y, x >= 0 && x < v.width && y >= 0 && y < v.height
}

// span returns the inclusive cell range covered by a world rect, clipped to the viewport
func (v viewport) span(r r2.Rect) (x0, y0, x1, y1 int) {
	size := v.arena.Size()
	x0 = int(math.Floor((r.X.Lo - v.arena.X.Lo) / size.X * float64(v.width)))
	x1 = int(math.Ceil((r.X.Hi-v.arena.X.Lo)/size.X*float64(v.width))) - 1
	y0 = int(math.Floor((v.arena.Y.Hi - r.Y.Hi) / size.Y * float64(v.height)))
	y1 = int(math.Ceil((v.arena.Y.Hi-r.Y.Lo)/size.Y*float64(v.height))) - 1
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, v.width-1), min(y1, v.height-1)
	return x0, y0, x1, y1
}

// ToScreen maps a world point into screen cells for the current screen size
func (r *TerminalRenderer) ToScreen(p r2.Point, arena r2.Rect) (x, y int, ok bool) {
	return r.viewport(arena).cell(p)
}

func (r *TerminalRenderer) viewport(arena r2.Rect) viewport {
	w, h := r.screen.Size()
	return viewport{arena: arena, width: w, height: h - statusRows}
}

// RenderFrame renders the entire frame
func (r *TerminalRenderer) RenderFrame(snap simulation.Snapshot, status []string, paused bool) {
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(defaultStyle)
	r.screen.Clear()

	vp := r.viewport(snap.Arena)
	if vp.width > 0 && vp.height > 0 {
		r.drawObstacles(vp, snap, defaultStyle)
		if snap.Running {
			r.drawCar(vp, snap, defaultStyle)
		}
	}
	r.drawStatusBar(snap, status, paused)

	r.screen.Show()
}

func (r *TerminalRenderer) drawObstacles(vp viewport, snap simulation.Snapshot, defaultStyle tcell.Style) {
	wallStyle := defaultStyle.Foreground(RgbObstacle)
	decoStyle := defaultStyle.Foreground(RgbDecoration)

	for _, o := range snap.Obstacles {
		if o.Passable {
			// Decorative cells show a dot at their center
			if x, y, ok := vp.cell(o.Rect.Center()); ok {
				r.screen.SetContent(x, y, '·', nil, decoStyle)
			}
			continue
		}
		x0, y0, x1, y1 := vp.span(o.Rect)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				r.screen.SetContent(x, y, '█', nil, wallStyle)
			}
		}
	}
}

func (r *TerminalRenderer) drawCar(vp viewport, snap simulation.Snapshot, defaultStyle tcell.Style) {
	bodyStyle := defaultStyle.Foreground(CarColor(snap.Phase))
	x0, y0, x1, y1 := vp.span(snap.Car)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.screen.SetContent(x, y, '▒', nil, bodyStyle)
		}
	}

	if x, y, ok := vp.cell(snap.Center); ok {
		r.screen.SetContent(x, y, IndicatorGlyph(snap.Indicator), nil, bodyStyle.Bold(true))
		if y > 0 {
			r.screen.SetContent(x, y-1, HeadGlyph(snap.HeadAngle), nil, defaultStyle.Foreground(RgbHead))
		}
	}

	feelerStyle := defaultStyle.Foreground(RgbFeeler)
	if x, y, ok := vp.cell(snap.LeftFeeler); ok {
		r.screen.SetContent(x, y, 'L', nil, feelerStyle)
	}
	if x, y, ok := vp.cell(snap.RightFeeler); ok {
		r.screen.SetContent(x, y, 'R', nil, feelerStyle)
	}
}

// drawStatusBar writes the time, pause badge and status metrics on the bottom row
func (r *TerminalRenderer) drawStatusBar(snap simulation.Snapshot, status []string, paused bool) {
	w, h := r.screen.Size()
	if h <= 0 {
		return
	}
	y := h - 1
	barStyle := tcell.StyleDefault.Background(RgbStatusBg).Foreground(RgbStatusText)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, barStyle)
	}

	x := 0
	if paused {
		x = r.drawText(x, y, w, " PAUSED ", tcell.StyleDefault.Background(RgbStatusPaused).Foreground(RgbStatusText))
		x++
	}
	text := fmt.Sprintf("t=%.2fs  %s", snap.Time.Seconds(), strings.Join(status, "  "))
	r.drawText(x, y, w, text, barStyle)
}

// drawText writes s from x, clipped at limit; returns the column after the last rune
func (r *TerminalRenderer) drawText(x, y, limit int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= limit {
			break
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	return x
}
