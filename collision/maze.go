package collision

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mazecar/component"
	"github.com/lixenwraith/mazecar/maze"
	"github.com/lixenwraith/mazecar/vmath"
)

// probeSize is the side of the tiny query box used to look up a point in the index
const probeSize = 1e-6

// Obstacle is one layout cell; passable cells are decorative and never collide
type Obstacle struct {
	Rect     r2.Rect
	Passable bool
	Row, Col int
	Token    string

	order  int // insertion order among blocking obstacles
	bounds rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (o *Obstacle) Bounds() rtreego.Rect {
	return o.bounds
}

// Contains reports whether p lies inside the obstacle, edges included
func (o *Obstacle) Contains(p r2.Point) bool {
	return vmath.Contains(o.Rect, p)
}

// Maze bounces the car off the first blocking obstacle, in insertion order, that contains a feeler
// An R-tree narrows the candidates; the lowest insertion index among them always wins,
// which is exactly what a linear scan in insertion order would return
type Maze struct {
	bounds   r2.Rect
	cells    []*Obstacle // every cell in scan order, for drawing
	blocking []*Obstacle // collision set in insertion order
	index    *rtreego.Rtree
	env      *Env
}

// NewMaze creates an empty maze laid out over bounds
func NewMaze(bounds r2.Rect, env *Env) *Maze {
	return &Maze{
		bounds: bounds,
		index:  rtreego.NewTree(2, 25, 50),
		env:    env,
	}
}

func (m *Maze) Name() string {
	return "maze"
}

// Bounds returns the area the layout grid is stretched over
func (m *Maze) Bounds() r2.Rect {
	return m.bounds
}

// Cells returns every cell added so far in scan order, decorative ones included
func (m *Maze) Cells() []*Obstacle {
	return m.cells
}

// Obstacles returns the blocking obstacles in insertion order
func (m *Maze) Obstacles() []*Obstacle {
	return m.blocking
}

// AddObstacles instantiates one cell per layout token in row-major order
// Row 0 is the top of the maze; only blocking cells join the collision set
func (m *Maze) AddObstacles(layout maze.Layout) error {
	rows, cols := layout.Rows(), layout.Cols()
	if rows == 0 || cols == 0 {
		return maze.ErrEmptyLayout
	}
	size := m.bounds.Size()
	cw, ch := size.X/float64(cols), size.Y/float64(rows)
	top := m.bounds.Y.Hi

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			origin := r2.Point{X: m.bounds.X.Lo + float64(c)*cw, Y: top - float64(r+1)*ch}
			o := &Obstacle{
				Rect:     vmath.RectFromOrigin(origin, cw, ch),
				Passable: !layout.Blocking(r, c),
				Row:      r,
				Col:      c,
				Token:    layout.Token(r, c),
			}
			m.cells = append(m.cells, o)
			if o.Passable {
				continue
			}
			if err := m.insert(o); err != nil {
				return errors.Wrapf(err, "cell %d,%d", r, c)
			}
		}
	}
	return nil
}

// AddObstacle appends a single blocking obstacle outside any layout grid
func (m *Maze) AddObstacle(rect r2.Rect) (*Obstacle, error) {
	o := &Obstacle{Rect: rect, Row: -1, Col: -1, Token: "x"}
	if err := m.insert(o); err != nil {
		return nil, err
	}
	m.cells = append(m.cells, o)
	return o, nil
}

func (m *Maze) insert(o *Obstacle) error {
	size := o.Rect.Size()
	bounds, err := rtreego.NewRect(rtreego.Point{o.Rect.X.Lo, o.Rect.Y.Lo}, []float64{size.X, size.Y})
	if err != nil {
		return errors.Wrap(err, "obstacle must have positive size")
	}
	o.bounds = bounds
	o.order = len(m.blocking)
	m.blocking = append(m.blocking, o)
	m.index.Insert(o)
	return nil
}

// Collide returns the feeler flags of the first obstacle containing either feeler,
// (false, false) when none does
func (m *Maze) Collide(car *component.Car) (left, right bool) {
	l, r := car.Feelers()
	o := m.First(l, r)
	if o == nil {
		return false, false
	}
	return o.Contains(l), o.Contains(r)
}

// First returns the earliest inserted blocking obstacle containing any of points
func (m *Maze) First(points ...r2.Point) *Obstacle {
	var best *Obstacle
	for _, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			continue
		}
		probe, err := rtreego.NewRect(
			rtreego.Point{p.X - probeSize/2, p.Y - probeSize/2},
			[]float64{probeSize, probeSize},
		)
		if err != nil {
			continue
		}
		for _, s := range m.index.SearchIntersect(probe) {
			o := s.(*Obstacle)
			if (best == nil || o.order < best.order) && o.Contains(p) {
				best = o
			}
		}
	}
	return best
}

// Bounce schedules a turn when a feeler is inside an obstacle; no-op while the car is turning
func (m *Maze) Bounce(car *component.Car) bool {
	return bounce(m, m.env, car)
}
