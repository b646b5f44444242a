package common

// LayerMask is a bit set of collision layers used to filter spatial queries.
type LayerMask uint32

const (
	LayerDefault LayerMask = 1 << iota
	LayerGround
	LayerPlayer
)

const LayerAll = ^LayerMask(0)

// Contains reports whether any bit of other is set in m.
func (m LayerMask) Contains(other LayerMask) bool {
	return m&other != 0
}

// LayerNamed resolves a layer name from a tuning spec. Unknown names map to
// the default layer.
func LayerNamed(name string) LayerMask {
	switch name {
	case "ground":
		return LayerGround
	case "player":
		return LayerPlayer
	case "all":
		return LayerAll
	default:
		return LayerDefault
	}
}

// MaskOf combines named layers into a single mask.
func MaskOf(names ...string) LayerMask {
	var m LayerMask
	for _, n := range names {
		m |= LayerNamed(n)
	}
	return m
}
