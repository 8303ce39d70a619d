package maze

import (
	"math/rand"
	"time"
)

// Grid cell states used while carving
const (
	wall    = true
	passage = false
)

// Token written for open cells of a generated layout
const openToken = "o"

type point struct {
	x, y int
}

// GenConfig controls layout generation
type GenConfig struct {
	Cols, Rows int

	// Braiding: 0.0 keeps a perfect maze (tree), 1.0 removes every dead end it safely can
	Braiding float64

	Seed int64 // 0 = time seeded
}

// Generate carves a maze with a recursive backtracker, strips the border so the arena
// walls act as the outer boundary, braids dead ends into loops and opens the center cell
// where the car starts
func Generate(cfg GenConfig) Layout {
	rows := ensureOdd(cfg.Rows)
	cols := ensureOdd(cfg.Cols)

	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
		for x := range grid[y] {
			grid[y][x] = wall
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	center := point{(cols / 2) | 1, (rows / 2) | 1}
	if center.x >= cols-1 {
		center.x = cols - 2
	}
	if center.y >= rows-1 {
		center.y = rows - 2
	}
	carve(grid, center, rng)
	stripBorders(grid)
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}
	grid[rows/2][cols/2] = passage

	cells := make([][]string, rows)
	for y := range grid {
		cells[y] = make([]string, cols)
		for x, isWall := range grid[y] {
			if isWall {
				cells[y][x] = "x"
			} else {
				cells[y][x] = openToken
			}
		}
	}
	return Layout{cells: cells}
}

// carve runs the recursive backtracker (iterative stack) over odd cells
func carve(grid [][]bool, start point, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	grid[start.y][start.x] = passage
	stack := []point{start}
	jumps := []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		var options []point
		for _, d := range jumps {
			nx, ny := curr.x+d.x, curr.y+d.y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] == wall {
				options = append(options, d)
			}
		}
		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		d := options[rng.Intn(len(options))]
		grid[curr.y+d.y/2][curr.x+d.x/2] = passage
		next := point{curr.x + d.x, curr.y + d.y}
		grid[next.y][next.x] = passage
		stack = append(stack, next)
	}
}

// braid knocks a wall out of dead ends with the given probability
// A wall is only removed if that does not open a 2x2 plaza or leave an isolated pillar
func braid(grid [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] == wall || exits(grid, x, y) != 1 || rng.Float64() >= probability {
				continue
			}
			var candidates []point
			for _, d := range []point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}} {
				nx, ny := x+d.x, y+d.y
				wx, wy := x+d.x/2, y+d.y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if grid[ny][nx] == passage && grid[wy][wx] == wall && safeToOpen(grid, wx, wy) {
					candidates = append(candidates, point{wx, wy})
				}
			}
			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				grid[c.y][c.x] = passage
			}
		}
	}
}

func exits(grid [][]bool, x, y int) int {
	n := 0
	for _, d := range []point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		if open(grid, x+d.x, y+d.y) {
			n++
		}
	}
	return n
}

// open treats out-of-range cells as walls
func open(grid [][]bool, x, y int) bool {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[0]) {
		return false
	}
	return grid[y][x] == passage
}

func safeToOpen(grid [][]bool, x, y int) bool {
	// No 2x2 plazas around (x,y)
	for _, q := range [][3]point{
		{{-1, -1}, {0, -1}, {-1, 0}},
		{{0, -1}, {1, -1}, {1, 0}},
		{{-1, 0}, {-1, 1}, {0, 1}},
		{{1, 0}, {0, 1}, {1, 1}},
	} {
		if open(grid, x+q[0].x, y+q[0].y) && open(grid, x+q[1].x, y+q[1].y) && open(grid, x+q[2].x, y+q[2].y) {
			return false
		}
	}

	// No wall neighbor left without another wall connection
	ortho := []point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for _, d := range ortho {
		nx, ny := x+d.x, y+d.y
		if ny < 0 || ny >= len(grid) || nx < 0 || nx >= len(grid[0]) || grid[ny][nx] != wall {
			continue
		}
		links := 0
		for _, d2 := range ortho {
			mx, my := nx+d2.x, ny+d2.y
			if mx == x && my == y {
				continue
			}
			if my >= 0 && my < len(grid) && mx >= 0 && mx < len(grid[0]) && grid[my][mx] == wall {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

func stripBorders(grid [][]bool) {
	rows, cols := len(grid), len(grid[0])
	for x := 0; x < cols; x++ {
		grid[0][x] = passage
		grid[rows-1][x] = passage
	}
	for y := 0; y < rows; y++ {
		grid[y][0] = passage
		grid[y][cols-1] = passage
	}
}

// ensureOdd rounds down to an odd size of at least 3
func ensureOdd(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
