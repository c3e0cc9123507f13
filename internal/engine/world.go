package engine

// scroll moves every obstacle left by ScrollSpeed, or on a blocked frame
// leaves them in place and applies the uniform correction so spacing
// between obstacles is preserved.
func (s *Session) scroll(blocked bool, correction float64) {
	if blocked {
		if correction <= 0 {
			return
		}
		for i := range s.obstacles {
			s.obstacles[i].X += correction
		}
		return
	}
	for i := range s.obstacles {
		s.obstacles[i].X -= ScrollSpeed
	}
}

// spawn appends a new obstacle once the newest one has moved far enough
// from the spawn horizon.
func (s *Session) spawn() {
	if len(s.obstacles) == 0 {
		s.obstacles = append(s.obstacles, s.newObstacle(WorldWidth))
		return
	}

	last := s.obstacles[len(s.obstacles)-1]
	if last.X < WorldWidth-last.NextSpawnDistance {
		s.obstacles = append(s.obstacles, s.newObstacle(last.X+last.NextSpawnDistance))
	}
}

// reap drops obstacles from the front once they have left the view.
func (s *Session) reap() {
	n := 0
	for n < len(s.obstacles) && s.obstacles[n].X < ReapX {
		n++
	}
	if n == 0 {
		return
	}
	s.obstacles = append(s.obstacles[:0], s.obstacles[n:]...)
}

// awardPasses scores every obstacle whose right edge is behind the actor.
func (s *Session) awardPasses() {
	for i := range s.obstacles {
		o := &s.obstacles[i]
		if o.Passed || o.Right() >= ActorX-ActorRadius {
			continue
		}
		o.Passed = true
		s.status.Score += PassReward
		s.emit(EventPassed, i)
	}
}

func (s *Session) newObstacle(x float64) Obstacle {
	mult := GapMultipliers[s.rng.Intn(len(GapMultipliers))]
	return Obstacle{
		X:                 x,
		GapCenter:         s.randomGapCenter(),
		GapHeight:         ActorDiameter * mult,
		NextSpawnDistance: s.randomSpawnDistance(),
	}
}

func (s *Session) randomGapCenter() float64 {
	return float64(GapCenterMin + s.rng.Intn(GapCenterRange))
}

func (s *Session) randomSpawnDistance() float64 {
	return float64(SpawnDistanceMin + s.rng.Intn(SpawnDistanceRange))
}
