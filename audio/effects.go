package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mazecar/parameter"
)

// decay applies a linear fade from full gain to silence over total samples
type decay struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1 - float64(d.pos)/float64(d.total)
		if gain < 0 {
			gain = 0
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.pos++
	}
	return n, ok
}

func (d *decay) Err() error {
	return d.streamer.Err()
}

// NewBump creates a short decaying sine at freq
func NewBump(rate beep.SampleRate, freq float64, duration time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, errors.Wrapf(err, "bump tone at %gHz", freq)
	}
	total := rate.N(duration)
	return &effects.Volume{
		Streamer: &decay{streamer: beep.Take(total, sine), total: total},
		Base:     2,
		Volume:   parameter.BumpVolume,
	}, nil
}

// BumpFrequency picks the pitch: lower when both feelers hit
func BumpFrequency(left, right bool) float64 {
	if left && right {
		return parameter.BumpFreqWide
	}
	return parameter.BumpFreqNarrow
}
