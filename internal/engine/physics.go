package engine

import "math"

// Update advances the simulation by one frame and returns the actor's
// vertical position. Once the run is over it returns the last position
// without changing anything.
func (s *Session) Update() float64 {
	return s.Step().Y
}

// Step advances the simulation by one frame.
func (s *Session) Step() FrameResult {
	s.events = s.events[:0]
	if s.status.Terminal() {
		return FrameResult{Y: s.actor.Y}
	}

	s.frame++
	if s.cooldown > 0 {
		s.cooldown--
	}

	s.status.TimeLeft -= FrameTime
	expired := s.status.TimeLeft <= 0
	if expired {
		s.status.TimeLeft = 0
	}

	// The frame the timer runs out on still moves the world.
	s.integrate()

	blocked, correction := s.resolveCollisions()
	if s.status.GameOver {
		return s.result(blocked, correction)
	}

	s.scroll(blocked, correction)
	if !blocked {
		s.spawn()
	}
	s.reap()
	s.awardPasses()

	if expired {
		s.status.Victory = true
		s.logger.Debug("round finished", "score", s.status.Score, "health", s.status.Health, "frame", s.frame)
		s.emit(EventVictory, -1)
	}

	return s.result(blocked, correction)
}

func (s *Session) result(blocked bool, correction float64) FrameResult {
	res := FrameResult{
		Y:          s.actor.Y,
		Blocked:    blocked,
		Correction: correction,
	}
	if len(s.events) > 0 {
		res.Events = make([]Event, len(s.events))
		copy(res.Events, s.events)
	}
	return res
}

// integrate applies one fixed step of gravity. The ceiling stops upward
// motion; the floor only clamps the position.
func (s *Session) integrate() {
	s.actor.Velocity += Gravity
	s.actor.Y += s.actor.Velocity

	if s.actor.Y > FloorY {
		s.actor.Y = FloorY
	}
	if s.actor.Y < 0 {
		s.actor.Y = 0
		s.actor.Velocity = 0
	}
}

// overlapsHorizontally reports whether the actor's horizontal extent
// touches the obstacle column. Touching counts so an actor resting against
// a pipe stays blocked instead of alternating between frames.
func overlapsHorizontally(o Obstacle) bool {
	return ActorX+ActorRadius >= o.X && ActorX-ActorRadius <= o.Right()
}

// resolveCollisions checks every obstacle in the actor's column. It applies
// damage once per obstacle, pushes the actor back into the gap on vertical
// hits, and reports whether scrolling is blocked along with the uniform
// shift that removes frontal interpenetration.
func (s *Session) resolveCollisions() (blocked bool, correction float64) {
	for i := range s.obstacles {
		o := &s.obstacles[i]
		if !overlapsHorizontally(*o) {
			continue
		}

		gapTop, gapBottom := o.GapTop(), o.GapBottom()
		hitTop := s.actor.Top() < gapTop
		hitBottom := s.actor.Bottom() > gapBottom
		if !hitTop && !hitBottom {
			continue
		}

		if !o.Collided {
			o.Collided = true
			s.status.Health -= HitDamage
			s.emit(EventHit, i)
			if s.status.Health <= 0 {
				s.status.Health = 0
				s.status.GameOver = true
				s.logger.Debug("actor destroyed", "score", s.status.Score, "frame", s.frame)
				s.emit(EventGameOver, i)
				return blocked, correction
			}
		}

		if ActorX <= o.X+FrontalTolerance {
			blocked = true
			correction = math.Max(correction, ActorX+ActorRadius-o.X)
			continue
		}

		s.snapIntoGap(gapTop, gapBottom, hitTop, hitBottom)
	}
	return blocked, correction
}

// snapIntoGap moves the actor just inside the gap boundary it crossed and
// reflects or kills its vertical velocity.
func (s *Session) snapIntoGap(gapTop, gapBottom float64, hitTop, hitBottom bool) {
	if gapBottom-gapTop < ActorDiameter+2*SnapEpsilon {
		s.actor.Y = (gapTop + gapBottom) / 2
		s.actor.Velocity = 0
		return
	}

	v := s.actor.Velocity
	switch {
	case hitTop:
		s.actor.Y = gapTop + ActorRadius + SnapEpsilon
		if v < -BounceSpeed {
			s.actor.Velocity = -v * BounceDamping
		} else {
			s.actor.Velocity = 0
		}
	case hitBottom:
		s.actor.Y = gapBottom - ActorRadius - SnapEpsilon
		if v > BounceSpeed {
			s.actor.Velocity = -v * BounceDamping
		} else {
			s.actor.Velocity = 0
		}
	}
}
