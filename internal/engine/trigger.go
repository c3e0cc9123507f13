package engine

import "math"

// Flap applies the upward impulse unless the run is over.
func (s *Session) Flap() {
	if s.status.Terminal() {
		return
	}
	s.actor.Velocity = Lift
	s.emit(EventFlap, -1)
}

// SubmitAudio feeds one buffer of signed 16-bit samples to the trigger.
// A buffer loud enough flaps when the cooldown has elapsed, then restarts
// the cooldown. It reports whether a flap was applied. The slice is only
// read during the call.
func (s *Session) SubmitAudio(samples []int16) bool {
	if len(samples) == 0 || s.status.Terminal() || s.cooldown > 0 {
		return false
	}
	if RMS(samples) <= AudioThreshold {
		return false
	}
	s.Flap()
	s.cooldown = AudioCooldown
	return true
}

// SubmitPitch accepts a pitch estimate in Hz. Pitch does not drive the
// simulation yet.
func (s *Session) SubmitPitch(hz float64) {}

// Cooldown returns the frames left before an audio flap is accepted.
func (s *Session) Cooldown() int {
	return s.cooldown
}

// RMS returns the root-mean-square amplitude of the samples.
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range samples {
		f := float64(v)
		sum += f * f
	}
	return math.Sqrt(sum / float64(len(samples)))
}
