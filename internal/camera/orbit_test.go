package camera

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/hopper/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestNewOrbit(t *testing.T) {
	c := NewOrbit()
	if c.Distance != minDistance {
		t.Errorf("Distance = %v, want %v", c.Distance, minDistance)
	}
	if c.Centering() {
		t.Error("new camera should not be centering")
	}
}

func TestHandleStickPansAndZooms(t *testing.T) {
	c := NewOrbit()

	c.HandleStick(math.Vec2{X: 1}, 0.5)
	if want := float32(panSpeed * 0.5); !near(c.Yaw.Get(), want) {
		t.Errorf("Yaw = %v, want %v", c.Yaw.Get(), want)
	}
	if c.VisualYaw() != c.Yaw {
		t.Error("visual yaw should follow manual pans")
	}

	c.HandleStick(math.Vec2{Y: -1}, 10)
	if c.Zoom != 1 || c.Distance != maxDistance {
		t.Errorf("zoom = %v distance = %v, want clamped to max", c.Zoom, c.Distance)
	}

	c.HandleStick(math.Vec2{Y: 1}, 10)
	if c.Zoom != 0 || c.Distance != minDistance {
		t.Errorf("zoom = %v distance = %v, want clamped to min", c.Zoom, c.Distance)
	}
}

func TestCenterTurnsVisualYaw(t *testing.T) {
	c := NewOrbit()
	c.Center(math.NewAngle(1))

	if !near(c.Yaw.Get(), 1) {
		t.Fatalf("Yaw = %v, want 1", c.Yaw.Get())
	}
	if !c.Centering() {
		t.Fatal("expected centering after Center")
	}

	// Stick input is ignored mid-turn.
	c.HandleStick(math.Vec2{X: 1}, 1)
	if !near(c.Yaw.Get(), 1) {
		t.Errorf("Yaw changed while centering: %v", c.Yaw.Get())
	}

	for i := 0; i < 100 && c.Centering(); i++ {
		c.Update(1.0 / 64)
	}
	if c.Centering() {
		t.Fatal("camera never finished centering")
	}
	if c.VisualYaw() != c.Yaw {
		t.Errorf("VisualYaw = %v, want %v", c.VisualYaw().Get(), c.Yaw.Get())
	}
}

func TestCenterTakesShortWayAround(t *testing.T) {
	c := NewOrbit()
	c.HandleStick(math.Vec2{X: 1}, 2.7/panSpeed)
	start := c.VisualYaw()

	c.Center(math.NewAngle(-3))
	c.Update(1.0 / 64)

	// From about 2.7 rad the short way to -3 rad is through +Pi.
	if c.VisualYaw().Diff(start) <= 0 {
		t.Errorf("expected a positive turn, went from %v to %v", start.Get(), c.VisualYaw().Get())
	}
}

func TestOffset(t *testing.T) {
	c := NewOrbit()
	off := c.Offset()

	if !near(off.Length(), c.Distance) {
		t.Errorf("offset length = %v, want %v", off.Length(), c.Distance)
	}
	if off.Z >= 0 {
		t.Errorf("camera should sit behind the target at yaw 0, got %v", off)
	}
	if off.Y <= 0 {
		t.Errorf("camera should look down from above, got %v", off)
	}
}
