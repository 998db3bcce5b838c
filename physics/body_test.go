package physics

import (
	"math"
	"testing"

	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/leveldata"
)

const step = 1.0 / 60

func testConfig() BodyConfig {
	return DefaultBodyConfig(18, 20)
}

func TestBodyFallsToFloorAndSleeps(t *testing.T) {
	b := NewBody(nil, gamemath.Vec3{X: 1, Y: 2, Z: 1}, testConfig())
	if b.IsGrounded() {
		t.Fatal("body above the floor reported grounded")
	}

	for i := 0; i < 120 && b.IsActive(); i++ {
		b.Step(step)
	}

	if !b.IsGrounded() {
		t.Fatalf("body at %+v not grounded after falling", b.Position())
	}
	if b.Position().Y != 0 {
		t.Fatalf("height = %v, want floor", b.Position().Y)
	}
	if b.IsActive() {
		t.Fatal("resting body did not go to sleep")
	}
}

func TestSleepingBodyIgnoresVelocityUntilActivated(t *testing.T) {
	b := NewBody(nil, gamemath.Vec3{X: 1, Z: 1}, testConfig())
	b.Step(step)
	if b.IsActive() {
		t.Fatal("expected body at rest to sleep")
	}

	b.SetLinearVelocity(gamemath.Vec3{X: 6})
	b.Step(step)
	if got := b.Position().X; got != 1 {
		t.Fatalf("sleeping body moved to x=%v", got)
	}

	b.Activate(true)
	b.Step(step)
	if got := b.Position().X; got <= 1 {
		t.Fatalf("activated body did not move, x=%v", got)
	}
}

func TestJumpLeavesGround(t *testing.T) {
	b := NewBody(nil, gamemath.Vec3{}, testConfig())
	b.SetLinearVelocity(gamemath.Vec3{Y: 6})
	if b.IsGrounded() {
		t.Fatal("body with upward velocity reported grounded")
	}
	b.Step(step)
	if b.Position().Y <= 0 {
		t.Fatalf("body did not rise, y=%v", b.Position().Y)
	}
}

func TestWallStopsHorizontalMotion(t *testing.T) {
	arena := &leveldata.ArenaData{
		Width: 10,
		Depth: 10,
		Walls: []leveldata.WallRect{{X: 6, Z: 0, W: 1, D: 10}},
	}
	space := NewArenaSpace(arena)
	b := NewBody(space, gamemath.Vec3{X: 3, Z: 5}, testConfig())

	for i := 0; i < 120; i++ {
		b.SetLinearVelocity(gamemath.Vec3{X: 5})
		b.Activate(true)
		b.Step(step)
	}

	right := b.Position().X + b.cfg.Width/2
	if right > 6+1/PixelsPerUnit {
		t.Fatalf("body passed through wall, right edge at %v", right)
	}
	if math.Abs(right-6) > 0.2 {
		t.Fatalf("body stopped short of wall, right edge at %v", right)
	}
}

func TestPositionRoundTripsThroughResolvSpace(t *testing.T) {
	want := gamemath.Vec3{X: 2.25, Y: 0.5, Z: 7.75}
	b := NewBody(nil, gamemath.Vec3{}, testConfig())
	b.SetPosition(want)
	got := b.Position()
	if math.Abs(got.X-want.X) > 1e-9 || got.Y != want.Y || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Fatalf("Position = %+v, want %+v", got, want)
	}
}
