package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/orrery/components"
)

// CometParams controls spawning and retirement of comets.
type CometParams struct {
	TrailCapacity  int
	MaxAgeMin      int
	MaxAgeSpan     int
	SpeedMin       float64
	SpeedSpan      float64
	Jitter         float64
	EscapeDistance float64
}

// DefaultCometParams returns the stock comet behaviour.
func DefaultCometParams() CometParams {
	return CometParams{
		TrailCapacity:  50,
		MaxAgeMin:      800,
		MaxAgeSpan:     400,
		SpeedMin:       0.5,
		SpeedSpan:      1.0,
		Jitter:         0.25,
		EscapeDistance: 2000,
	}
}

// fallbackDirection replaces a zero-length heading so a comet spawned at
// the centre still gets a finite velocity.
var fallbackDirection = r3.Vec{Z: -1}

// RetiredComet describes a comet removed during a tick.
type RetiredComet struct {
	ID       uint32
	Age      int32
	MaxAge   int32
	Position r3.Vec
	Reason   components.RetireReason
}

// CometSystem owns the live comet set. Comet state lives in an ECS world;
// live keeps spawn order so removal during a tick is a reverse index walk.
type CometSystem struct {
	world  *ecs.World
	mapper *ecs.Map4[components.Position, components.Velocity, components.Lifetime, components.Trail]
	filter *ecs.Filter2[components.Position, components.Trail]
	live   []ecs.Entity
	params CometParams
	rng    *rand.Rand
	nextID uint32

	// OnRetire, if set, is called for every comet removed by Tick.
	OnRetire func(RetiredComet)
}

// NewCometSystem creates an empty comet system.
func NewCometSystem(params CometParams, rng *rand.Rand) *CometSystem {
	if params.TrailCapacity < 1 {
		params.TrailCapacity = 1
	}
	if params.MaxAgeSpan < 1 {
		params.MaxAgeSpan = 1
	}
	world := ecs.NewWorld()
	return &CometSystem{
		world:  world,
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Lifetime, components.Trail](world),
		filter: ecs.NewFilter2[components.Position, components.Trail](world),
		params: params,
		rng:    rng,
	}
}

// Params returns the spawn and retirement parameters.
func (s *CometSystem) Params() CometParams {
	return s.params
}

// Spawn creates a comet at origin heading roughly toward the centre and
// returns its serial ID.
func (s *CometSystem) Spawn(origin r3.Vec) uint32 {
	dir := safeUnit(r3.Scale(-1, origin))
	jitter := r3.Vec{
		X: (s.rng.Float64() - 0.5) * 2 * s.params.Jitter,
		Y: (s.rng.Float64() - 0.5) * 2 * s.params.Jitter,
		Z: (s.rng.Float64() - 0.5) * 2 * s.params.Jitter,
	}
	dir = safeUnit(r3.Add(dir, jitter))
	speed := s.params.SpeedMin + s.rng.Float64()*s.params.SpeedSpan
	maxAge := s.params.MaxAgeMin + s.rng.Intn(s.params.MaxAgeSpan)

	return s.spawn(origin, r3.Scale(speed, dir), int32(maxAge))
}

// SpawnWith creates a comet with explicit velocity and lifetime.
func (s *CometSystem) SpawnWith(origin, velocity r3.Vec, maxAge int32) uint32 {
	return s.spawn(origin, velocity, maxAge)
}

func (s *CometSystem) spawn(origin, velocity r3.Vec, maxAge int32) uint32 {
	id := s.nextID
	s.nextID++

	pos := components.Position{Vec: origin}
	vel := components.Velocity{Vec: velocity}
	life := components.Lifetime{ID: id, Age: 0, MaxAge: maxAge}
	trail := components.NewTrail(s.params.TrailCapacity, origin)

	e := s.mapper.NewEntity(&pos, &vel, &life, &trail)
	s.live = append(s.live, e)
	return id
}

// Tick advances every live comet by one frame, retiring those past their
// age or escape distance. Each live comet is visited exactly once.
func (s *CometSystem) Tick() {
	for i := len(s.live) - 1; i >= 0; i-- {
		e := s.live[i]
		pos, vel, life, trail := s.mapper.Get(e)

		pos.Vec = r3.Add(pos.Vec, vel.Vec)
		life.Age++

		reason, retire := s.shouldRetire(pos.Vec, life)
		if retire {
			retired := RetiredComet{
				ID:       life.ID,
				Age:      life.Age,
				MaxAge:   life.MaxAge,
				Position: pos.Vec,
				Reason:   reason,
			}
			s.remove(i)
			if s.OnRetire != nil {
				s.OnRetire(retired)
			}
			continue
		}

		trail.Push(pos.Vec)
	}
}

func (s *CometSystem) shouldRetire(p r3.Vec, life *components.Lifetime) (components.RetireReason, bool) {
	if life.Age > life.MaxAge {
		return components.RetireExpired, true
	}
	if r3.Norm(p) > s.params.EscapeDistance {
		return components.RetireEscaped, true
	}
	return 0, false
}

// remove deletes the i-th live comet from the world and the live list.
func (s *CometSystem) remove(i int) {
	s.world.RemoveEntity(s.live[i])
	s.live = append(s.live[:i], s.live[i+1:]...)
}

// Len returns the number of live comets.
func (s *CometSystem) Len() int {
	return len(s.live)
}

// Clear removes every comet without reporting retirements.
func (s *CometSystem) Clear() {
	for i := len(s.live) - 1; i >= 0; i-- {
		s.remove(i)
	}
}

// CometView is a read-only snapshot of one comet for rendering and tests.
type CometView struct {
	ID       uint32
	Position r3.Vec
	Velocity r3.Vec
	Age      int32
	MaxAge   int32
	Trail    []r3.Vec // padded buffer, len == trail capacity
}

// Live returns snapshots of the live comets in spawn order.
func (s *CometSystem) Live() []CometView {
	out := make([]CometView, 0, len(s.live))
	for _, e := range s.live {
		pos, vel, life, trail := s.mapper.Get(e)
		out = append(out, CometView{
			ID:       life.ID,
			Position: pos.Vec,
			Velocity: vel.Vec,
			Age:      life.Age,
			MaxAge:   life.MaxAge,
			Trail:    trail.Buffer,
		})
	}
	return out
}

// Each calls fn with the position and padded trail buffer of every live
// comet. fn must not spawn or tick.
func (s *CometSystem) Each(fn func(pos r3.Vec, trail []r3.Vec)) {
	query := s.filter.Query()
	for query.Next() {
		pos, trail := query.Get()
		fn(pos.Vec, trail.Buffer)
	}
}

// safeUnit normalizes v, substituting the fallback direction for a
// zero-length or non-finite input.
func safeUnit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 || !finite(v) || math.IsInf(n, 0) {
		return fallbackDirection
	}
	return r3.Scale(1/n, v)
}
