package collision

import (
	"sync"

	"github.com/Faultbox/hopper/pkg/math"
)

// DefaultSkin is the gap MoveAndSlide keeps between a shape and the surfaces
// it slides along.
const DefaultSkin = 0.01

const (
	maxSlideIterations        = 4
	maxDepenetrationPasses    = 4
	minMoveDistance           = 1e-6
	minPenetration            = 1e-5
	planeClipPasses           = 3
	penetratingVelocityMargin = -1e-6
)

// Body is a box registered in a Level.
type Body struct {
	ID     BodyID
	Name   string
	Layer  Layer
	Bounds AABB
}

// Level is a set of axis-aligned boxes that movement queries run against.
// Queries take a read lock, so any number of controllers can query in
// parallel. Mutations should happen between ticks.
type Level struct {
	mu     sync.RWMutex
	bodies []Body
	index  map[BodyID]int
	nextID BodyID
	skin   float32
}

// NewLevel creates an empty level.
func NewLevel() *Level {
	return &Level{
		index: make(map[BodyID]int),
		skin:  DefaultSkin,
	}
}

// Skin returns the slide skin width.
func (l *Level) Skin() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.skin
}

// SetSkin sets the slide skin width.
func (l *Level) SetSkin(skin float32) {
	l.mu.Lock()
	l.skin = skin
	l.mu.Unlock()
}

// AddStatic adds a box on the level layer.
func (l *Level) AddStatic(name string, bounds AABB) BodyID {
	return l.Add(name, LayerLevel, bounds)
}

// Add adds a box on the given layer and returns its id.
func (l *Level) Add(name string, layer Layer, bounds AABB) BodyID {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	id := l.nextID
	l.index[id] = len(l.bodies)
	l.bodies = append(l.bodies, Body{ID: id, Name: name, Layer: layer, Bounds: bounds})
	return id
}

// SetBounds moves a body. It returns false for an unknown id.
func (l *Level) SetBounds(id BodyID, bounds AABB) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return false
	}
	l.bodies[i].Bounds = bounds
	return true
}

// Remove deletes a body. It returns false for an unknown id.
func (l *Level) Remove(id BodyID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[id]
	if !ok {
		return false
	}
	last := len(l.bodies) - 1
	if i != last {
		l.bodies[i] = l.bodies[last]
		l.index[l.bodies[i].ID] = i
	}
	l.bodies = l.bodies[:last]
	delete(l.index, id)
	return true
}

// Body returns a copy of the body with the given id.
func (l *Level) Body(id BodyID) (Body, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return Body{}, false
	}
	return l.bodies[i], true
}

// Len returns the number of bodies.
func (l *Level) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bodies)
}

// CastShape implements Queries.
func (l *Level) CastShape(shape Box, pos, dir math.Vec3, maxDistance float32, filter Filter) (Hit, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.castShape(shape, pos, dir, maxDistance, filter)
}

// CastMove implements Queries.
func (l *Level) CastMove(shape Box, pos, dir math.Vec3, maxDistance, skin float32, filter Filter) (Hit, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.castMove(shape, pos, dir, maxDistance, skin, filter)
}

// Depenetrate implements Queries.
func (l *Level) Depenetrate(shape Box, pos math.Vec3, filter Filter) math.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.depenetrate(shape, pos, filter)
}

// MoveAndSlide implements Queries.
func (l *Level) MoveAndSlide(shape Box, pos, vel math.Vec3, dt float32, planes []math.Vec3, filter Filter, onHit func(*Hit) HitResponse) MoveResult {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pos = pos.Add(l.depenetrate(shape, pos, filter))

	contacts := make([]math.Vec3, 0, len(planes)+maxSlideIterations)
	contacts = append(contacts, planes...)
	vel = clipVelocity(vel, contacts)

	unimpeded := true
	ignored := make([]BodyID, 0, 2)
	remaining := dt

	for i := 0; i < maxSlideIterations && remaining > 0; i++ {
		motion := vel.Scale(remaining)
		dist := motion.Length()
		if dist < minMoveDistance {
			break
		}
		dir := motion.Scale(1 / dist)

		f := filter
		if len(ignored) > 0 {
			f.Exclude = append(append([]BodyID(nil), filter.Exclude...), ignored...)
		}

		hit, ok := l.castMove(shape, pos, dir, dist, l.skin, f)
		if !ok {
			pos = pos.Add(motion)
			break
		}

		unimpeded = false
		if onHit != nil && onHit(&hit) == HitIgnore {
			ignored = append(ignored, hit.Body)
			continue
		}

		pos = pos.Add(dir.Scale(hit.Distance))
		remaining *= 1 - hit.Distance/dist
		contacts = append(contacts, hit.Normal)
		vel = clipVelocity(vel, contacts)
	}

	return MoveResult{Position: pos, Velocity: vel, Unimpeded: unimpeded}
}

func (l *Level) castShape(shape Box, pos, dir math.Vec3, maxDistance float32, filter Filter) (Hit, bool) {
	dir, ok := dir.TryNormalize()
	if !ok || maxDistance < 0 {
		return Hit{}, false
	}

	r := newRay(pos, dir)
	best := Hit{Distance: maxDistance}
	found := false

	for i := range l.bodies {
		b := &l.bodies[i]
		if !filter.Allows(b) {
			continue
		}
		t, n, hit := r.intersect(b.Bounds.Expand(shape.HalfExtents))
		if !hit || t > best.Distance || (found && t == best.Distance) {
			continue
		}
		best = Hit{Distance: t, Normal: n, Body: b.ID}
		found = true
	}

	if !found {
		return Hit{}, false
	}
	best.Point = contactPoint(pos.Add(dir.Scale(best.Distance)), best.Normal, shape.HalfExtents)
	return best, true
}

func (l *Level) castMove(shape Box, pos, dir math.Vec3, maxDistance, skin float32, filter Filter) (Hit, bool) {
	hit, ok := l.castShape(shape, pos, dir, maxDistance+skin, filter)
	if !ok {
		return Hit{}, false
	}
	safe := hit.Distance - skin
	if safe < 0 {
		safe = 0
	}
	if safe > maxDistance {
		safe = maxDistance
	}
	hit.Distance = safe
	return hit, true
}

func (l *Level) depenetrate(shape Box, pos math.Vec3, filter Filter) math.Vec3 {
	var offset math.Vec3
	for pass := 0; pass < maxDepenetrationPasses; pass++ {
		bounds := shape.At(pos.Add(offset))
		moved := false
		for i := range l.bodies {
			b := &l.bodies[i]
			if !filter.Allows(b) || !bounds.Overlaps(b.Bounds) {
				continue
			}
			push := pushOut(bounds, b.Bounds)
			if push.LengthSquared() < minPenetration*minPenetration {
				continue
			}
			offset = offset.Add(push)
			bounds = shape.At(pos.Add(offset))
			moved = true
		}
		if !moved {
			break
		}
	}
	return offset
}

// clipVelocity removes every component of v that points into one of the
// planes. When sequential clipping cannot satisfy all planes, v is slid
// along the crease of two of them or stopped.
func clipVelocity(v math.Vec3, planes []math.Vec3) math.Vec3 {
	if len(planes) == 0 {
		return v
	}

	for pass := 0; pass < planeClipPasses; pass++ {
		clean := true
		for _, n := range planes {
			if d := v.Dot(n); d < 0 {
				v = v.Sub(n.Scale(d))
				clean = false
			}
		}
		if clean {
			return v
		}
	}
	if satisfies(v, planes) {
		return v
	}

	for i := 0; i < len(planes); i++ {
		for j := i + 1; j < len(planes); j++ {
			crease, ok := planes[i].Cross(planes[j]).TryNormalize()
			if !ok {
				continue
			}
			slid := crease.Scale(v.Dot(crease))
			if satisfies(slid, planes) {
				return slid
			}
		}
	}
	return math.Vec3{}
}

func satisfies(v math.Vec3, planes []math.Vec3) bool {
	for _, n := range planes {
		if v.Dot(n) < penetratingVelocityMargin {
			return false
		}
	}
	return true
}
