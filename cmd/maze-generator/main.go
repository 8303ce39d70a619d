// Command maze-generator writes a generated obstacle layout in the file format mazecar loads
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/lixenwraith/mazecar/maze"
	"github.com/lixenwraith/mazecar/parameter"
)

func main() {
	cols := flag.Int("cols", parameter.GeneratedCols, "Columns [odd preferred]")
	rows := flag.Int("rows", parameter.GeneratedRows, "Rows [odd preferred]")
	braid := flag.Float64("braiding", parameter.GeneratedBraiding, "Braiding factor [0.0 - 1.0]")
	seed := flag.Int64("seed", 0, "Random seed, 0 for time seeded")
	out := flag.String("o", "", "Output file (default stdout)")
	preview := flag.Bool("preview", false, "Also draw the layout with block glyphs on stderr")
	flag.Parse()

	cfg := maze.GenConfig{Cols: *cols, Rows: *rows, Braiding: *braid, Seed: *seed}
	if err := run(cfg, *out, *preview); err != nil {
		fmt.Fprintf(os.Stderr, "maze-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg maze.GenConfig, out string, preview bool) error {
	layout := maze.Generate(cfg)

	w := io.Writer(os.Stdout)
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		defer f.Close()
		w = f
	}
	if _, err := io.WriteString(w, layout.String()); err != nil {
		return errors.Wrap(err, "writing layout")
	}

	if preview {
		fmt.Fprintf(os.Stderr, "Grid Dimensions: %dx%d, %d blocking\n", layout.Cols(), layout.Rows(), layout.BlockingCount())
		fmt.Fprint(os.Stderr, draw(layout))
	}
	return nil
}

// draw renders walls as full blocks, two columns per cell to keep the aspect
func draw(l maze.Layout) string {
	var b strings.Builder
	for r := 0; r < l.Rows(); r++ {
		for c := 0; c < l.Cols(); c++ {
			if l.Blocking(r, c) {
				b.WriteString("██")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
