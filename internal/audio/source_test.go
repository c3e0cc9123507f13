package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/voiceflap/internal/engine"
)

func TestFrameSize(t *testing.T) {
	tests := []struct {
		rate beep.SampleRate
		tick int
		want int
	}{
		{44100, 60, 735},
		{48000, 60, 800},
		{16000, 50, 320},
		{44100, 0, 735},
	}

	for _, tt := range tests {
		if got := FrameSize(tt.rate, tt.tick); got != tt.want {
			t.Errorf("FrameSize(%d, %d) = %d, want %d", tt.rate, tt.tick, got, tt.want)
		}
	}
}

func TestPCMSourceDecodesLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	in := []int16{0, 1, -1, 32767, -32768, 1234}
	if err := binary.Write(&buf, binary.LittleEndian, in); err != nil {
		t.Fatal(err)
	}

	src := NewPCMSource(&buf)
	frame := make([]int16, 4)

	n, err := src.ReadFrame(frame)
	if err != nil || n != 4 {
		t.Fatalf("first frame: n=%d err=%v", n, err)
	}
	for i := 0; i < 4; i++ {
		if frame[i] != in[i] {
			t.Errorf("sample %d = %d, want %d", i, frame[i], in[i])
		}
	}

	// Short final frame.
	n, err = src.ReadFrame(frame)
	if err != nil || n != 2 {
		t.Fatalf("second frame: n=%d err=%v", n, err)
	}
	if frame[0] != -32768 || frame[1] != 1234 {
		t.Errorf("second frame = %v", frame[:2])
	}

	if _, err := src.ReadFrame(frame); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestClapSourceTriggersEngine(t *testing.T) {
	const frameSamples = 100
	src := NewClapSource(frameSamples, 10, 0)
	frame := make([]int16, frameSamples)

	for i := 0; i < 20; i++ {
		n, err := src.ReadFrame(frame)
		if err != nil || n != frameSamples {
			t.Fatalf("frame %d: n=%d err=%v", i, n, err)
		}
		loud := engine.RMS(frame) > engine.AudioThreshold
		want := i%10 == 0
		if loud != want {
			t.Errorf("frame %d loud = %v, want %v (rms %.1f)", i, loud, want, engine.RMS(frame))
		}
	}
}

func TestClapSourceLimit(t *testing.T) {
	src := NewClapSource(50, 5, 3)
	frame := make([]int16, 50)

	for i := 0; i < 3; i++ {
		if _, err := src.ReadFrame(frame); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if _, err := src.ReadFrame(frame); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after limit, got %v", err)
	}
}

func TestStreamerSourceMixesToMono(t *testing.T) {
	s := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{1, 0}
		}
		return len(samples), true
	})

	src := NewStreamerSource(s, nil)
	frame := make([]int16, 8)
	if _, err := src.ReadFrame(frame); err != nil {
		t.Fatal(err)
	}
	want := int16(math.Round(0.5 * math.MaxInt16))
	for i, v := range frame {
		if v != want {
			t.Errorf("sample %d = %d, want %d", i, v, want)
		}
	}
}

func TestOpenWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clap.wav")
	samples := make([]int16, 1000)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 10000
		} else {
			samples[i] = -10000
		}
	}
	writeWAV(t, path, 44100, samples)

	src, err := OpenWAV(path, 44100)
	if err != nil {
		t.Fatalf("OpenWAV: %v", err)
	}
	defer src.Close()

	frame := make([]int16, 500)
	n, err := src.ReadFrame(frame)
	if err != nil || n != 500 {
		t.Fatalf("ReadFrame: n=%d err=%v", n, err)
	}
	if rms := engine.RMS(frame); rms < 9000 || rms > 11000 {
		t.Errorf("rms = %.1f, want about 10000", rms)
	}
}

func TestOpenWAVKeepsFullScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shout.wav")
	samples := make([]int16, 735)
	for i := range samples {
		samples[i] = 3000
		if i%2 == 1 {
			samples[i] = -3000
		}
	}
	writeWAV(t, path, 44100, samples)

	src, err := OpenWAV(path, 44100)
	if err != nil {
		t.Fatalf("OpenWAV: %v", err)
	}
	defer src.Close()

	frame := make([]int16, len(samples))
	if n, err := src.ReadFrame(frame); err != nil || n != len(samples) {
		t.Fatalf("ReadFrame: n=%d err=%v", n, err)
	}
	if frame[0] != 3000 || frame[1] != -3000 {
		t.Errorf("first samples = %d, %d, want 3000, -3000", frame[0], frame[1])
	}
	if rms := engine.RMS(frame); math.Abs(rms-3000) > 2 {
		t.Errorf("rms = %.1f, want 3000", rms)
	}
	if !engine.New(engine.WithSeed(1)).SubmitAudio(frame) {
		t.Error("a frame above the threshold should flap")
	}
}

func TestOpenKinds(t *testing.T) {
	src, err := Open(Options{Kind: KindNone})
	if err != nil || src != nil {
		t.Errorf("none: src=%v err=%v", src, err)
	}

	src, err = Open(Options{Kind: KindClap, TickRate: 60, ClapEvery: 4})
	if err != nil || src == nil {
		t.Fatalf("clap: src=%v err=%v", src, err)
	}
	src.Close()

	if _, err := Open(Options{Kind: "mp3"}); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Open(Options{Kind: KindWAV, Path: filepath.Join(t.TempDir(), "missing.wav")}); err == nil {
		t.Error("expected error for missing wav")
	}
}

func TestLevel(t *testing.T) {
	if Level(0) != 0 {
		t.Error("Level(0) should be 0")
	}
	if got := Level(math.MaxInt16); got != 1 {
		t.Errorf("Level(full scale) = %f, want 1", got)
	}
	if got := Level(1); got != 0 {
		t.Errorf("Level(1) = %f, want 0", got)
	}
}

// writeWAV writes a minimal 16-bit mono PCM WAV file.
func writeWAV(t *testing.T, path string, rate int, samples []int16) {
	t.Helper()

	var buf bytes.Buffer
	dataLen := len(samples) * 2
	le := binary.LittleEndian

	buf.WriteString("RIFF")
	binary.Write(&buf, le, uint32(36+dataLen))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(&buf, le, uint32(16))
	binary.Write(&buf, le, uint16(1)) // PCM
	binary.Write(&buf, le, uint16(1)) // mono
	binary.Write(&buf, le, uint32(rate))
	binary.Write(&buf, le, uint32(rate*2))
	binary.Write(&buf, le, uint16(2))
	binary.Write(&buf, le, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, le, uint32(dataLen))
	binary.Write(&buf, le, samples)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}
