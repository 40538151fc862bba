package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ojrac/opensimplex-go"
)

const (
	starCandidates = 9000
	starThreshold  = 0.3
	starNoiseScale = 3.5
)

// star is one background point on the celestial sphere.
type star struct {
	pos   rl.Vector3
	color rl.Color
}

// Starfield is a fixed backdrop of stars on a sphere around the origin.
// Density is shaped by simplex noise so stars cluster into loose bands.
type Starfield struct {
	stars []star
}

// NewStarfield generates a starfield of the given radius from seed.
func NewStarfield(seed int64, radius float64) *Starfield {
	noise := opensimplex.NewNormalized(seed)
	golden := math.Pi * (3 - math.Sqrt(5))

	sf := &Starfield{}
	for i := 0; i < starCandidates; i++ {
		// Fibonacci sphere: even coverage without a rng
		y := 1 - 2*(float64(i)+0.5)/starCandidates
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		x, z := math.Cos(theta)*r, math.Sin(theta)*r

		n := noise.Eval3(x*starNoiseScale, y*starNoiseScale, z*starNoiseScale)
		if n < starThreshold+0.35*hash01(i) {
			continue
		}

		b := uint8(120 + 135*math.Min(1, (n-starThreshold)/(1-starThreshold)))
		sf.stars = append(sf.stars, star{
			pos:   rl.NewVector3(float32(x*radius), float32(y*radius), float32(z*radius)),
			color: rl.Color{R: b, G: b, B: uint8(math.Min(255, float64(b)+20)), A: 255},
		})
	}
	return sf
}

// Len returns the number of stars.
func (s *Starfield) Len() int {
	return len(s.stars)
}

// Draw renders the stars. Must be called inside a 3D mode block.
func (s *Starfield) Draw() {
	for i := range s.stars {
		rl.DrawPoint3D(s.stars[i].pos, s.stars[i].color)
	}
}

// hash01 maps an index to a stable pseudo-random value in [0,1).
func hash01(i int) float64 {
	h := uint32(i)*2654435761 + 0x9e3779b9
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	return float64(h) / float64(math.MaxUint32+1)
}
