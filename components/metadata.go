package components

// String returns the display name for a BodyKind.
func (k BodyKind) String() string {
	names := BodyKindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// BodyKindNames returns the display names for all body kinds.
// The order matches the BodyKind constants.
func BodyKindNames() []string {
	return []string{"Primary", "Planet", "Satellite"}
}

// String returns the display name for a PickKind.
func (k PickKind) String() string {
	switch k {
	case PickBody:
		return "Body"
	case PickRing:
		return "Ring"
	default:
		return "Unknown"
	}
}

// RetireReason records why a comet left the live set.
type RetireReason uint8

const (
	RetireExpired RetireReason = iota // age exceeded max age
	RetireEscaped                     // drifted past the escape distance
)

// String returns the snake_case name used in logs and CSV output.
func (r RetireReason) String() string {
	switch r {
	case RetireExpired:
		return "expired"
	case RetireEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}
