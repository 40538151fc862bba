package game

import (
	"fmt"

	"github.com/pthm-cable/orrery/components"
	"github.com/pthm-cable/orrery/systems"
)

// Info is the flat set of display fields for the selected entity.
// The zero value is the blank panel.
type Info struct {
	Name          string
	RealDistance  string
	RealRadius    string
	OrbitalPeriod string
	SimRadius     string
	SimDistance   string
	SimSpeed      string
}

// Placeholder values shown for ring systems.
const (
	ringDistance = "Planetary ring system"
	ringRadius   = "Variable"
	noValue      = "—"
)

// project computes the info fields for a picked target. The second result
// is false when the reference table has no entry for a body, in which case
// the panel keeps its previous contents.
func (g *Game) project(target systems.Pickable) (Info, bool) {
	if target.Kind == components.PickRing {
		name := g.bodies[target.Body].Name + " rings"
		for _, r := range g.rings {
			if r.Node == target.Node {
				name = r.Name
				break
			}
		}
		return Info{
			Name:          name,
			RealDistance:  ringDistance,
			RealRadius:    ringRadius,
			OrbitalPeriod: noValue,
			SimRadius:     noValue,
			SimDistance:   noValue,
			SimSpeed:      noValue,
		}, true
	}

	rec := g.bodies[target.Body]
	ref, ok := g.refs.Lookup(rec.Name)
	if !ok {
		return Info{}, false
	}
	body := g.registry.Body(rec.ID)
	return Info{
		Name:          rec.Name,
		RealDistance:  ref.RealDistance,
		RealRadius:    ref.RealRadius,
		OrbitalPeriod: ref.OrbitalPeriod,
		SimRadius:     fmt.Sprintf("%.2f units", body.Radius),
		SimDistance:   fmt.Sprintf("%.1f units", body.Distance),
		SimSpeed:      fmt.Sprintf("%.4f", body.AngularSpeed),
	}, true
}
