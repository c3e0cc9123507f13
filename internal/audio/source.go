// Package audio provides the microphone side of the game: sources that
// deliver fixed-size frames of signed 16-bit mono samples, one frame per
// simulation tick.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate matches common microphone capture settings.
const DefaultSampleRate = beep.SampleRate(44100)

// resampleQuality is passed to beep.Resample.
const resampleQuality = 4

// Source yields audio frames. ReadFrame fills buf and returns the number
// of samples written; it returns io.EOF once the source is exhausted.
type Source interface {
	ReadFrame(buf []int16) (int, error)
	Close() error
}

// FrameSize returns the number of samples covering one tick.
func FrameSize(rate beep.SampleRate, tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	// Divide after converting a whole second so 44100/60 stays 735.
	n := rate.N(time.Second) / tickRate
	if n < 1 {
		n = 1
	}
	return n
}

// StreamerSource reads frames from a beep.Streamer, mixing stereo down to
// mono and scaling [-1, 1] samples to int16.
type StreamerSource struct {
	streamer beep.Streamer
	closer   io.Closer
	scratch  [][2]float64
	done     bool
}

// NewStreamerSource wraps s. closer may be nil.
func NewStreamerSource(s beep.Streamer, closer io.Closer) *StreamerSource {
	return &StreamerSource{streamer: s, closer: closer}
}

// ReadFrame implements Source.
func (s *StreamerSource) ReadFrame(buf []int16) (int, error) {
	if s.done {
		return 0, io.EOF
	}
	if cap(s.scratch) < len(buf) {
		s.scratch = make([][2]float64, len(buf))
	}
	scratch := s.scratch[:len(buf)]

	total := 0
	for total < len(buf) {
		n, ok := s.streamer.Stream(scratch[total:])
		for i := total; i < total+n; i++ {
			buf[i] = toInt16((scratch[i][0] + scratch[i][1]) / 2)
		}
		total += n
		if !ok {
			s.done = true
			break
		}
		if n == 0 {
			break
		}
	}

	if err := s.streamer.Err(); err != nil {
		return total, fmt.Errorf("audio: stream: %w", err)
	}
	if total == 0 && s.done {
		return 0, io.EOF
	}
	return total, nil
}

// Close releases the underlying decoder, if any.
func (s *StreamerSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// OpenWAV decodes a WAV file and resamples it to rate.
func OpenWAV(path string, rate beep.SampleRate) (*StreamerSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}

	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	var s beep.Streamer = stream
	// The decoder maps 16 and 24 bit samples onto [-0.5, 0.5].
	if format.Precision > 1 {
		s = &effects.Gain{Streamer: s, Gain: 1}
	}
	if format.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, rate, s)
	}
	return NewStreamerSource(s, stream), nil
}

// PCMSource reads raw little-endian signed 16-bit mono PCM, the format
// produced by `arecord -f S16_LE -c 1` or `sox -t raw -e signed -b 16`.
type PCMSource struct {
	r      io.Reader
	closer io.Closer
	raw    []byte
}

// NewPCMSource wraps r. If r is an io.Closer other than stdin it is
// closed by Close.
func NewPCMSource(r io.Reader) *PCMSource {
	p := &PCMSource{r: r}
	if c, ok := r.(io.Closer); ok && r != os.Stdin {
		p.closer = c
	}
	return p
}

// ReadFrame implements Source. It blocks until a full frame is available,
// which paces live captures in real time.
func (p *PCMSource) ReadFrame(buf []int16) (int, error) {
	need := len(buf) * 2
	if cap(p.raw) < need {
		p.raw = make([]byte, need)
	}
	raw := p.raw[:need]

	n, err := io.ReadFull(p.r, raw)
	samples := n / 2
	for i := 0; i < samples; i++ {
		buf[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}

	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, nil
	case err != nil:
		return samples, err
	}
	return samples, nil
}

// Close implements Source.
func (p *PCMSource) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(math.Round(v * math.MaxInt16))
}
