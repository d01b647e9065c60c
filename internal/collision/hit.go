package collision

import "github.com/Faultbox/hopper/pkg/math"

// Hit describes the first contact along a cast.
type Hit struct {
	// Distance travelled along the cast direction before contact.
	Distance float32
	// Point is the contact point on the surface that was hit.
	Point math.Vec3
	// Normal is the surface normal, pointing away from the surface.
	Normal math.Vec3
	// Body is the body that was hit.
	Body BodyID
}

// HitResponse tells MoveAndSlide what to do with a contact.
type HitResponse uint8

const (
	// HitAccept slides along the contact.
	HitAccept HitResponse = iota
	// HitIgnore passes through the contact for the rest of the move.
	HitIgnore
)

// MoveResult is the outcome of MoveAndSlide.
type MoveResult struct {
	Position math.Vec3
	Velocity math.Vec3
	// Unimpeded is true when the move touched nothing at all.
	Unimpeded bool
}

// Queries are the movement primitives a character controller consumes.
// Implementations must be safe for concurrent read-only use.
type Queries interface {
	// MoveAndSlide integrates pos by vel*dt, removing velocity that would
	// penetrate any contacted surface or any of the given constraint planes.
	// onHit may be nil.
	MoveAndSlide(shape Box, pos, vel math.Vec3, dt float32, planes []math.Vec3, filter Filter, onHit func(*Hit) HitResponse) MoveResult

	// CastMove sweeps shape from pos along dir for up to maxDistance and
	// returns the distance it can travel while staying skin away from the
	// surface.
	CastMove(shape Box, pos, dir math.Vec3, maxDistance, skin float32, filter Filter) (Hit, bool)

	// Depenetrate returns the smallest offset that moves shape at pos out of
	// all overlapping geometry.
	Depenetrate(shape Box, pos math.Vec3, filter Filter) math.Vec3

	// CastShape sweeps shape from pos along dir for up to maxDistance and
	// returns the raw contact distance.
	CastShape(shape Box, pos, dir math.Vec3, maxDistance float32, filter Filter) (Hit, bool)
}
