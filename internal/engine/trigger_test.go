package engine

import (
	"testing"
)

func loudBuffer(n int) []int16 {
	buf := make([]int16, n)
	for i := range buf {
		if i%2 == 0 {
			buf[i] = 3000
		} else {
			buf[i] = -3000
		}
	}
	return buf
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name    string
		samples []int16
		want    float64
	}{
		{"empty", nil, 0},
		{"silence", []int16{0, 0, 0}, 0},
		{"square", []int16{3, -3, 3, -3}, 3},
		{"mixed", []int16{0, 4, 0, -4}, 2.8284271247461903},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.samples); got != tt.want {
				t.Errorf("RMS() = %v, expected %v", got, tt.want)
			}
		})
	}
}

func TestAudioTriggerCooldown(t *testing.T) {
	s := New(WithSeed(5))

	if !s.SubmitAudio(loudBuffer(256)) {
		t.Fatal("Loud buffer with no cooldown should flap")
	}
	if s.Actor().Velocity != Lift {
		t.Errorf("Velocity = %f, expected %f", s.Actor().Velocity, Lift)
	}
	if s.Cooldown() != AudioCooldown {
		t.Errorf("Cooldown = %d, expected %d", s.Cooldown(), AudioCooldown)
	}

	// Same frame, still loud: ignored.
	if s.SubmitAudio(loudBuffer(256)) {
		t.Error("Second loud buffer inside the cooldown should not flap")
	}

	for i := 0; i < AudioCooldown-1; i++ {
		s.Update()
		if s.SubmitAudio(loudBuffer(256)) {
			t.Fatalf("Flap accepted with %d frames of cooldown left", s.Cooldown())
		}
	}

	s.Update()
	if s.Cooldown() != 0 {
		t.Fatalf("Cooldown = %d after %d frames, expected 0", s.Cooldown(), AudioCooldown)
	}
	if !s.SubmitAudio(loudBuffer(256)) {
		t.Error("Flap should be accepted once the cooldown elapsed")
	}
}

func TestAudioTriggerIgnoresQuietAndEmpty(t *testing.T) {
	s := New(WithSeed(5))

	quiet := make([]int16, 256)
	for i := range quiet {
		quiet[i] = 500
	}

	if s.SubmitAudio(quiet) {
		t.Error("Quiet buffer should not flap")
	}
	if s.SubmitAudio(nil) {
		t.Error("Empty buffer should be a no-op")
	}
	if s.SubmitAudio([]int16{}) {
		t.Error("Zero-length buffer should be a no-op")
	}
	if s.Cooldown() != 0 {
		t.Errorf("Rejected buffers should not start the cooldown, got %d", s.Cooldown())
	}
}

func TestAudioTriggerIgnoredAfterGameOver(t *testing.T) {
	s := New(WithSeed(5))
	s.status.GameOver = true

	if s.SubmitAudio(loudBuffer(64)) {
		t.Error("Audio should not flap after game over")
	}
	if s.Actor().Velocity != 0 {
		t.Errorf("Velocity changed after game over: %f", s.Actor().Velocity)
	}
}

func TestAudioDoesNotRetainBuffer(t *testing.T) {
	s := New(WithSeed(5))
	buf := loudBuffer(32)
	s.SubmitAudio(buf)

	for i := range buf {
		buf[i] = 0
	}
	if s.Actor().Velocity != Lift {
		t.Error("Mutating the caller's buffer should not affect the session")
	}
}

func TestSubmitPitchHasNoEffect(t *testing.T) {
	s := New(WithSeed(5))
	before := s.Actor()
	s.SubmitPitch(440)
	if s.Actor() != before {
		t.Error("SubmitPitch should not change the actor")
	}
}
