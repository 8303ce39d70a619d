package maze

import (
	"bufio"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mazecar/parameter"
)

// Layout parse errors; all are fatal configuration errors
var (
	ErrEmptyLayout  = errors.New("layout has no rows")
	ErrRaggedLayout = errors.New("layout rows have inconsistent column counts")
	ErrBadToken     = errors.New("layout token must be a single character")
)

// Layout is a row-major grid of single-character cells; row 0 is the top row
type Layout struct {
	cells [][]string
}

// NewLayout builds a layout from rows of tokens, validating shape and tokens
func NewLayout(rows [][]string) (Layout, error) {
	if len(rows) == 0 {
		return Layout{}, ErrEmptyLayout
	}
	cols := len(rows[0])
	cells := make([][]string, len(rows))
	for r, row := range rows {
		if len(row) != cols {
			return Layout{}, errors.Wrapf(ErrRaggedLayout, "row %d has %d columns, want %d", r+1, len(row), cols)
		}
		for c, tok := range row {
			if utf8.RuneCountInString(tok) != 1 {
				return Layout{}, errors.Wrapf(ErrBadToken, "row %d column %d: %q", r+1, c+1, tok)
			}
		}
		cells[r] = append([]string(nil), row...)
	}
	return Layout{cells: cells}, nil
}

// Parse reads a layout: one row per line, tokens separated by single spaces,
// "x" marking a blocking cell. Trailing blank lines are ignored
func Parse(r io.Reader) (Layout, error) {
	var rows [][]string
	blank := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			blank++
			continue
		}
		if blank > 0 && len(rows) > 0 {
			return Layout{}, errors.Wrapf(ErrRaggedLayout, "blank row before line %d", len(rows)+blank+1)
		}
		blank = 0
		rows = append(rows, strings.Split(line, parameter.LayoutSeparator))
	}
	if err := scanner.Err(); err != nil {
		return Layout{}, errors.Wrap(err, "reading layout")
	}
	return NewLayout(rows)
}

// LoadFile parses the layout file at path
func LoadFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, errors.Wrap(err, "opening layout")
	}
	defer f.Close()

	layout, err := Parse(f)
	if err != nil {
		return Layout{}, errors.Wrapf(err, "layout %s", path)
	}
	return layout, nil
}

// Rows returns the number of rows
func (l Layout) Rows() int {
	return len(l.cells)
}

// Cols returns the number of columns
func (l Layout) Cols() int {
	if len(l.cells) == 0 {
		return 0
	}
	return len(l.cells[0])
}

// Token returns the raw token at row, col
func (l Layout) Token(row, col int) string {
	return l.cells[row][col]
}

// Blocking reports whether the cell at row, col is an obstacle
func (l Layout) Blocking(row, col int) bool {
	return l.cells[row][col] == parameter.LayoutBlockToken
}

// BlockingCount returns the number of obstacle cells
func (l Layout) BlockingCount() int {
	n := 0
	for r := range l.cells {
		for c := range l.cells[r] {
			if l.Blocking(r, c) {
				n++
			}
		}
	}
	return n
}

// String renders the layout back into its file format
func (l Layout) String() string {
	var b strings.Builder
	for _, row := range l.cells {
		b.WriteString(strings.Join(row, parameter.LayoutSeparator))
		b.WriteByte('\n')
	}
	return b.String()
}
