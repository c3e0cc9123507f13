package engine

// World and actor constants. Coordinates are in world units: x grows to the
// right, y grows downward, the playfield spans [0, FloorY] vertically.
const (
	Gravity     = 1.2   // Velocity added every frame
	Lift        = -20.0 // Velocity set by a flap (negative = up)
	FloorY      = 2000.0
	StartY      = 1000.0
	ActorX      = 300.0 // Fixed horizontal center of the actor
	ActorRadius = 40.0
	ScrollSpeed = 18.0 // Obstacle movement per unblocked frame
	PipeWidth   = 300.0
	WorldWidth  = 4000.0 // Spawn horizon
)

// ActorDiameter is the unit gap heights are measured in.
const ActorDiameter = ActorRadius * 2

// Spawner ranges.
const (
	GapCenterMin       = 700
	GapCenterRange     = 600
	SpawnDistanceMin   = 600
	SpawnDistanceRange = 600
	InitialGapFactor   = 3.0
	ReapX              = -PipeWidth // Left edge below this means the right edge left the view
)

// GapMultipliers are the gap heights, in actor diameters, a spawned obstacle may get.
var GapMultipliers = [...]float64{2, 3, 4, 5}

// Rules.
const (
	PassReward = 100
	MaxHealth  = 100
	HitDamage  = 20
	RoundTime  = 180.0 // Seconds on the countdown
	FrameTime  = 0.016 // Seconds removed from the countdown per frame
)

// Collision response.
const (
	FrontalTolerance = 2.0
	BounceSpeed      = 6.0
	BounceDamping    = 0.5
	SnapEpsilon      = 0.5
)

// Audio trigger.
const (
	AudioThreshold = 2000.0 // RMS in int16 sample units
	AudioCooldown  = 8      // Frames before another audio flap is accepted
)
