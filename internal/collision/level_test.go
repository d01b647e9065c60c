package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hopper/pkg/math"
)

const eps = 1e-4

func v3(x, y, z float32) math.Vec3 {
	return math.Vec3{X: x, Y: y, Z: z}
}

// floorLevel is a 20x20 slab whose top face is y=0.
func floorLevel(t *testing.T) (*Level, BodyID) {
	t.Helper()
	l := NewLevel()
	id := l.AddStatic("floor", NewAABB(v3(-10, -1, -10), v3(10, 0, 10)))
	require.NotZero(t, id)
	return l, id
}

func TestCastShapeDown(t *testing.T) {
	l, floor := floorLevel(t)
	shape := NewBox(1, 1, 1)

	hit, ok := l.CastShape(shape, v3(0, 2, 0), math.Down, 5, MovementFilter(0))
	require.True(t, ok)
	assert.InDelta(t, 1.5, hit.Distance, eps)
	assert.Equal(t, math.Up, hit.Normal)
	assert.Equal(t, floor, hit.Body)
	assert.InDelta(t, 0, hit.Point.Y, eps)
}

func TestCastShapeOutOfRange(t *testing.T) {
	l, _ := floorLevel(t)
	_, ok := l.CastShape(NewBox(1, 1, 1), v3(0, 2, 0), math.Down, 1, MovementFilter(0))
	assert.False(t, ok)
}

func TestCastShapeZeroDirection(t *testing.T) {
	l, _ := floorLevel(t)
	_, ok := l.CastShape(NewBox(1, 1, 1), v3(0, 2, 0), math.Vec3{}, 5, MovementFilter(0))
	assert.False(t, ok)
}

func TestCastShapeRestingSurfaceNotHitSideways(t *testing.T) {
	l, _ := floorLevel(t)
	// Touching the floor exactly, moving along it.
	_, ok := l.CastShape(NewBox(1, 1, 1), v3(0, 0.5, 0), math.Right, 5, MovementFilter(0))
	assert.False(t, ok)
}

func TestCastShapeLeavingSurface(t *testing.T) {
	l, _ := floorLevel(t)
	// Slightly embedded and moving out of the floor.
	_, ok := l.CastShape(NewBox(1, 1, 1), v3(0, 0.45, 0), math.Up, 5, MovementFilter(0))
	assert.False(t, ok)
}

func TestCastMoveKeepsSkin(t *testing.T) {
	l, _ := floorLevel(t)

	hit, ok := l.CastMove(NewBox(1, 1, 1), v3(0, 2, 0), math.Down, 5, 0.01, MovementFilter(0))
	require.True(t, ok)
	assert.InDelta(t, 1.49, hit.Distance, eps)

	// Contact inside the skin clamps to zero.
	hit, ok = l.CastMove(NewBox(1, 1, 1), v3(0, 0.505, 0), math.Down, 1, 0.01, MovementFilter(0))
	require.True(t, ok)
	assert.Zero(t, hit.Distance)
}

func TestCastMoveHitsWithinSkinBeyondDistance(t *testing.T) {
	l, _ := floorLevel(t)
	// The surface is 0.505 away; casting 0.5 with 0.01 skin still reports it.
	hit, ok := l.CastMove(NewBox(1, 1, 1), v3(0, 1.005, 0), math.Down, 0.5, 0.01, MovementFilter(0))
	require.True(t, ok)
	assert.InDelta(t, 0.495, hit.Distance, eps)
}

func TestDepenetrate(t *testing.T) {
	l, _ := floorLevel(t)

	offset := l.Depenetrate(NewBox(1, 1, 1), v3(0, 0.3, 0), MovementFilter(0))
	assert.InDelta(t, 0, offset.X, eps)
	assert.InDelta(t, 0.2, offset.Y, eps)
	assert.InDelta(t, 0, offset.Z, eps)

	offset = l.Depenetrate(NewBox(1, 1, 1), v3(0, 3, 0), MovementFilter(0))
	assert.Equal(t, math.Vec3{}, offset)
}

func TestDepenetrateSidePush(t *testing.T) {
	l := NewLevel()
	l.AddStatic("wall", NewAABB(v3(1, -5, -5), v3(2, 5, 5)))

	offset := l.Depenetrate(NewBox(1, 1, 1), v3(0.6, 0, 0), MovementFilter(0))
	assert.InDelta(t, -0.1, offset.X, eps)
	assert.InDelta(t, 0, offset.Y, eps)
}

func TestMoveAndSlideUnimpeded(t *testing.T) {
	l, _ := floorLevel(t)

	res := l.MoveAndSlide(NewBox(1, 1, 1), v3(0, 3, 0), v3(1, 0, 2), 0.5, nil, MovementFilter(0), nil)
	assert.True(t, res.Unimpeded)
	assert.InDelta(t, 0.5, res.Position.X, eps)
	assert.InDelta(t, 3, res.Position.Y, eps)
	assert.InDelta(t, 1, res.Position.Z, eps)
	assert.Equal(t, v3(1, 0, 2), res.Velocity)
}

func TestMoveAndSlideAlongFloor(t *testing.T) {
	l, _ := floorLevel(t)

	res := l.MoveAndSlide(NewBox(1, 1, 1), v3(0, 0.51, 0), v3(2, -1, 0), 1, nil, MovementFilter(0), nil)
	assert.False(t, res.Unimpeded)
	assert.InDelta(t, 0, res.Velocity.Y, eps)
	assert.InDelta(t, 2, res.Velocity.X, eps)
	assert.GreaterOrEqual(t, res.Position.Y, float32(0.5))
	assert.InDelta(t, 2, res.Position.X, 0.05)
}

func TestMoveAndSlideIntoWall(t *testing.T) {
	l := NewLevel()
	l.AddStatic("wall", NewAABB(v3(2, -10, -10), v3(3, 10, 10)))

	res := l.MoveAndSlide(NewBox(1, 1, 1), math.Vec3{}, v3(5, 0, 1), 1, nil, MovementFilter(0), nil)
	assert.False(t, res.Unimpeded)
	assert.InDelta(t, 0, res.Velocity.X, eps)
	assert.InDelta(t, 1, res.Velocity.Z, eps)
	assert.LessOrEqual(t, res.Position.X, float32(1.5))
	assert.Greater(t, res.Position.X, float32(1.4))
}

func TestMoveAndSlideConstraintPlanes(t *testing.T) {
	l := NewLevel()

	res := l.MoveAndSlide(NewBox(1, 1, 1), math.Vec3{}, v3(1, -3, 0), 1, []math.Vec3{math.Up}, MovementFilter(0), nil)
	assert.True(t, res.Unimpeded)
	assert.Equal(t, v3(1, 0, 0), res.Velocity)
	assert.InDelta(t, 0, res.Position.Y, eps)
	assert.InDelta(t, 1, res.Position.X, eps)
}

func TestMoveAndSlideOnHitIgnore(t *testing.T) {
	l := NewLevel()
	wall := l.AddStatic("wall", NewAABB(v3(2, -10, -10), v3(3, 10, 10)))

	var seen []BodyID
	res := l.MoveAndSlide(NewBox(1, 1, 1), math.Vec3{}, v3(5, 0, 0), 1, nil, MovementFilter(0), func(h *Hit) HitResponse {
		seen = append(seen, h.Body)
		return HitIgnore
	})
	assert.Equal(t, []BodyID{wall}, seen)
	assert.False(t, res.Unimpeded)
	assert.InDelta(t, 5, res.Position.X, eps)
}

func TestMoveAndSlideOnHitSeesFloorPoint(t *testing.T) {
	l, _ := floorLevel(t)

	var hit Hit
	calls := 0
	l.MoveAndSlide(NewBox(1, 1, 1), v3(1, 2, 0), v3(0, -10, 0), 1, nil, MovementFilter(0), func(h *Hit) HitResponse {
		hit = *h
		calls++
		return HitAccept
	})
	require.Equal(t, 1, calls)
	assert.Equal(t, math.Up, hit.Normal)
	assert.InDelta(t, 1, hit.Point.X, eps)
	assert.InDelta(t, 0, hit.Point.Y, eps)
}

func TestFilterLayersAndExclusion(t *testing.T) {
	l := NewLevel()
	self := l.Add("player", LayerPlayer, NewAABB(v3(-0.5, -0.5, -0.5), v3(0.5, 0.5, 0.5)))
	l.Add("trigger", LayerSensor, NewAABB(v3(-10, -3, -10), v3(10, -2, 10)))
	floor := l.AddStatic("floor", NewAABB(v3(-10, -6, -10), v3(10, -5, 10)))

	hit, ok := l.CastShape(NewBox(1, 1, 1), math.Vec3{}, math.Down, 10, MovementFilter(self))
	require.True(t, ok)
	assert.Equal(t, floor, hit.Body)

	f := Filter{Mask: MaskAll, Exclude: []BodyID{self}}
	hit, ok = l.CastShape(NewBox(1, 1, 1), math.Vec3{}, math.Down, 10, f)
	require.True(t, ok)
	assert.NotEqual(t, floor, hit.Body)
	assert.InDelta(t, 1.5, hit.Distance, eps)
}

func TestLevelMutations(t *testing.T) {
	l := NewLevel()
	a := l.AddStatic("a", NewAABB(v3(0, 0, 0), v3(1, 1, 1)))
	b := l.AddStatic("b", NewAABB(v3(5, 0, 0), v3(6, 1, 1)))
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, l.Len())

	moved := NewAABB(v3(2, 2, 2), v3(3, 3, 3))
	assert.True(t, l.SetBounds(b, moved))
	body, ok := l.Body(b)
	require.True(t, ok)
	assert.Equal(t, moved, body.Bounds)

	assert.True(t, l.Remove(a))
	assert.False(t, l.Remove(a))
	assert.False(t, l.SetBounds(a, moved))
	assert.Equal(t, 1, l.Len())

	body, ok = l.Body(b)
	require.True(t, ok)
	assert.Equal(t, "b", body.Name)
}

func TestClipVelocity(t *testing.T) {
	tests := []struct {
		name   string
		v      math.Vec3
		planes []math.Vec3
		want   math.Vec3
	}{
		{"no planes", v3(1, -1, 0), nil, v3(1, -1, 0)},
		{"away from plane", v3(1, 2, 0), []math.Vec3{math.Up}, v3(1, 2, 0)},
		{"into floor", v3(1, -2, 3), []math.Vec3{math.Up}, v3(1, 0, 3)},
		{"corner", v3(-1, -1, 1), []math.Vec3{math.Up, math.Right}, v3(0, 0, 1)},
		{"opposed walls", v3(1, 0, 0), []math.Vec3{math.Right, math.Left}, math.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clipVelocity(tt.v, tt.planes)
			assert.InDelta(t, tt.want.X, got.X, eps)
			assert.InDelta(t, tt.want.Y, got.Y, eps)
			assert.InDelta(t, tt.want.Z, got.Z, eps)
		})
	}
}
