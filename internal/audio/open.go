package audio

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
)

// Source kinds accepted by Open.
const (
	KindNone = "none"
	KindWAV  = "wav"
	KindPCM  = "pcm"
	KindClap = "clap"
)

// Options selects and sizes an audio source.
type Options struct {
	Kind       string
	Path       string // File for wav and pcm; "-" reads pcm from stdin
	SampleRate int
	TickRate   int
	ClapEvery  int
	ClapLimit  int // Frames before the clap source ends, 0 for endless
}

// Live reports whether frames arrive in real time, so the host should
// read them as they come instead of once per tick.
func (o Options) Live() bool {
	return o.Kind == KindPCM
}

// FrameSamples returns the frame size implied by the options.
func (o Options) FrameSamples() int {
	return FrameSize(o.rate(), o.TickRate)
}

func (o Options) rate() beep.SampleRate {
	if o.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return beep.SampleRate(o.SampleRate)
}

// Open builds the source described by opts. KindNone yields a nil Source
// and no error.
func Open(opts Options) (Source, error) {
	switch opts.Kind {
	case "", KindNone:
		return nil, nil
	case KindWAV:
		return OpenWAV(opts.Path, opts.rate())
	case KindPCM:
		if opts.Path == "" || opts.Path == "-" {
			return NewPCMSource(os.Stdin), nil
		}
		f, err := os.Open(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("audio: open %s: %w", opts.Path, err)
		}
		return NewPCMSource(f), nil
	case KindClap:
		every := opts.ClapEvery
		if every <= 0 {
			every = 30
		}
		return NewClapSource(opts.FrameSamples(), every, opts.ClapLimit), nil
	default:
		return nil, fmt.Errorf("audio: unknown source %q", opts.Kind)
	}
}
