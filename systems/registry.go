package systems

import "slices"

// SystemInfo describes one frame system for the perf panel.
type SystemInfo struct {
	ID          string // Perf phase name when Timed
	Name        string // Display name
	Description string
	Category    string // Panel grouping: simulation, interaction, internal
	Timed       bool   // Runs as a timed phase of every frame step
}

// SystemRegistry holds system metadata in frame order, so the UI and the
// perf collector agree on names.
type SystemRegistry struct {
	systems []SystemInfo
	names   map[string]string
}

// NewSystemRegistry creates a registry with the orrery's systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{names: make(map[string]string)}
	reg.Register(SystemInfo{ID: "orbits", Name: "Orbits", Description: "Advances orbital offsets and spin", Category: "simulation", Timed: true})
	reg.Register(SystemInfo{ID: "transforms", Name: "Transforms", Description: "Resolves world transforms of the scene graph", Category: "simulation", Timed: true})
	reg.Register(SystemInfo{ID: "comets", Name: "Comets", Description: "Moves comets, records trails, retires old ones", Category: "simulation", Timed: true})
	reg.Register(SystemInfo{ID: "picking", Name: "Picking", Description: "Resolves pointer rays on click", Category: "interaction"})
	reg.Register(SystemInfo{ID: "camera", Name: "Camera", Description: "Follows the selection or runs the free control", Category: "interaction", Timed: true})
	reg.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Counts events and flushes output", Category: "internal", Timed: true})
	return reg
}

// Register appends a system.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.names[info.ID] = info.Name
}

// Name returns the display name for id, or id itself when unknown.
func (r *SystemRegistry) Name(id string) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return id
}

// Categories returns the categories in first-seen order.
func (r *SystemRegistry) Categories() []string {
	var cats []string
	for _, info := range r.systems {
		if !slices.Contains(cats, info.Category) {
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// InCategory returns the systems of one category in frame order.
func (r *SystemRegistry) InCategory(category string) []SystemInfo {
	var out []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			out = append(out, info)
		}
	}
	return out
}

// Timed returns the IDs of the timed systems in frame order.
func (r *SystemRegistry) Timed() []string {
	var ids []string
	for _, info := range r.systems {
		if info.Timed {
			ids = append(ids, info.ID)
		}
	}
	return ids
}
