// Package collision implements the movement queries a character controller
// runs against static level geometry: shape casts, depenetration and
// move-and-slide.
package collision

import "strings"

// Layer is a single collision layer bit.
type Layer uint32

// Collision layers. Level geometry is the only layer movement queries see.
const (
	LayerLevel Layer = 1 << iota
	LayerPlayer
	LayerAttackable
	LayerSword
	LayerSensor
)

// LayerMask is a set of layers.
type LayerMask uint32

// MaskAll matches every layer.
const MaskAll = LayerMask(^uint32(0))

// Mask builds a mask from layers.
func Mask(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= LayerMask(l)
	}
	return m
}

// Contains reports whether l is in the mask.
func (m LayerMask) Contains(l Layer) bool {
	return m&LayerMask(l) != 0
}

// String returns the lowercase layer name.
func (l Layer) String() string {
	switch l {
	case LayerLevel:
		return "level"
	case LayerPlayer:
		return "player"
	case LayerAttackable:
		return "attackable"
	case LayerSword:
		return "sword"
	case LayerSensor:
		return "sensor"
	default:
		return "unknown"
	}
}

// ParseLayer parses a layer name as written in level files.
// An empty name is the level layer.
func ParseLayer(name string) (Layer, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "level":
		return LayerLevel, true
	case "player":
		return LayerPlayer, true
	case "attackable":
		return LayerAttackable, true
	case "sword":
		return LayerSword, true
	case "sensor":
		return LayerSensor, true
	}
	return 0, false
}

// BodyID identifies a body in a Level. Zero is never assigned.
type BodyID uint64

// Filter selects which bodies a query may hit.
type Filter struct {
	Mask    LayerMask
	Exclude []BodyID
}

// MovementFilter is the filter every controller query uses: level geometry
// only, never the querying body itself.
func MovementFilter(self BodyID) Filter {
	return Filter{
		Mask:    Mask(LayerLevel),
		Exclude: []BodyID{self},
	}
}

// Allows reports whether the filter lets a query see b.
func (f Filter) Allows(b *Body) bool {
	if !f.Mask.Contains(b.Layer) {
		return false
	}
	for _, id := range f.Exclude {
		if id == b.ID {
			return false
		}
	}
	return true
}
