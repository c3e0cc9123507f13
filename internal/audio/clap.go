package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// ClapStreamer is a synthetic beep.Streamer that stays silent except for a
// short loud square burst every Every frames. It stands in for a
// microphone in demos and headless runs.
type ClapStreamer struct {
	FrameSamples int
	Every        int     // Frames between bursts
	Amplitude    float64 // Burst amplitude in [0, 1]

	pos int
}

// NewClapStreamer returns a clap generator aligned to frames of
// frameSamples samples.
func NewClapStreamer(frameSamples, every int) *ClapStreamer {
	return &ClapStreamer{
		FrameSamples: frameSamples,
		Every:        every,
		Amplitude:    0.5,
	}
}

// Stream implements beep.Streamer. It never runs out.
func (c *ClapStreamer) Stream(samples [][2]float64) (int, bool) {
	period := c.FrameSamples * c.Every
	for i := range samples {
		v := 0.0
		if period > 0 && c.pos%period < c.FrameSamples {
			// Square wave at a quarter of the sample rate.
			if (c.pos/2)%2 == 0 {
				v = c.Amplitude
			} else {
				v = -c.Amplitude
			}
		}
		samples[i] = [2]float64{v, v}
		c.pos++
	}
	return len(samples), true
}

// Err implements beep.Streamer.
func (c *ClapStreamer) Err() error { return nil }

// NewClapSource returns a Source that claps for the first frame of every
// Every frames, then falls silent after limit frames when limit > 0.
func NewClapSource(frameSamples, every, limit int) *StreamerSource {
	var s beep.Streamer = NewClapStreamer(frameSamples, every)
	if limit > 0 {
		s = beep.Take(frameSamples*limit, s)
	}
	return NewStreamerSource(s, nil)
}

// Level converts an RMS value into a 0..1 meter reading on a log scale
// spanning 60 dB below full scale.
func Level(rms float64) float64 {
	if rms <= 0 {
		return 0
	}
	db := 20 * math.Log10(rms/math.MaxInt16)
	return math.Max(0, math.Min(1, (db+60)/60))
}
