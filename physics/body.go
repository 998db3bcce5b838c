package physics

import (
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/tags"
	"github.com/solarlune/resolv"
)

const groundEpsilon = 1e-6

// BodyConfig sizes a Body and sets its vertical dynamics.
type BodyConfig struct {
	Width        float64 // Footprint along X, world units
	Depth        float64 // Footprint along Z, world units
	Gravity      float64
	MaxFallSpeed float64
	FloorY       float64
}

// DefaultBodyConfig returns a player-sized body.
func DefaultBodyConfig(gravity, maxFall float64) BodyConfig {
	return BodyConfig{
		Width:        0.6,
		Depth:        0.6,
		Gravity:      gravity,
		MaxFallSpeed: maxFall,
	}
}

// Body is a kinematic player body. It sleeps once it comes to rest on the
// floor; writers must Activate it before expecting it to move again.
type Body struct {
	cfg    BodyConfig
	obj    *resolv.Object
	height float64
	vel    gamemath.Vec3
	active bool
}

// NewBody creates a body centred on spawn. space may be nil, in which case
// horizontal motion is unobstructed.
func NewBody(space *resolv.Space, spawn gamemath.Vec3, cfg BodyConfig) *Body {
	w, d := cfg.Width*PixelsPerUnit, cfg.Depth*PixelsPerUnit
	obj := resolv.NewObject(0, 0, w, d, tags.ResolvPlayer)
	obj.SetShape(resolv.NewRectangle(0, 0, w, d))
	if space != nil {
		space.Add(obj)
	}

	b := &Body{cfg: cfg, obj: obj, active: true}
	b.SetPosition(spawn)
	return b
}

// Remove takes the body out of its collision space.
func (b *Body) Remove() {
	if b.obj.Space != nil {
		b.obj.Space.Remove(b.obj)
	}
}

func (b *Body) Position() gamemath.Vec3 {
	return gamemath.Vec3{
		X: b.obj.X/PixelsPerUnit + b.cfg.Width/2,
		Y: b.height,
		Z: b.obj.Y/PixelsPerUnit + b.cfg.Depth/2,
	}
}

func (b *Body) SetPosition(p gamemath.Vec3) {
	b.obj.X = (p.X - b.cfg.Width/2) * PixelsPerUnit
	b.obj.Y = (p.Z - b.cfg.Depth/2) * PixelsPerUnit
	b.obj.Update()
	b.height = p.Y
}

func (b *Body) LinearVelocity() gamemath.Vec3 {
	return b.vel
}

func (b *Body) SetLinearVelocity(v gamemath.Vec3) {
	b.vel = v
}

// IsGrounded reports whether the body rests on the floor and is not rising.
func (b *Body) IsGrounded() bool {
	return b.height <= b.cfg.FloorY+groundEpsilon && b.vel.Y <= 0
}

func (b *Body) IsActive() bool {
	return b.active
}

func (b *Body) Activate(active bool) {
	b.active = active
}

// Step integrates the body over dt seconds. Sleeping bodies do not move.
func (b *Body) Step(dt float64) {
	if !b.active || dt <= 0 {
		return
	}

	// --- Gravity ---
	b.vel.Y -= b.cfg.Gravity * dt
	if b.vel.Y < -b.cfg.MaxFallSpeed {
		b.vel.Y = -b.cfg.MaxFallSpeed
	}

	// --- Horizontal, against walls ---
	b.moveX(b.vel.X * dt * PixelsPerUnit)
	b.moveZ(b.vel.Z * dt * PixelsPerUnit)

	// --- Vertical, against the floor ---
	b.height += b.vel.Y * dt
	if b.height <= b.cfg.FloorY {
		b.height = b.cfg.FloorY
		if b.vel.Y < 0 {
			b.vel.Y = 0
		}
	}

	if b.IsGrounded() && b.vel == (gamemath.Vec3{}) {
		b.active = false
	}
}

func (b *Body) moveX(dx float64) {
	if dx == 0 {
		return
	}
	if b.obj.Space == nil {
		b.obj.X += dx
		return
	}
	if check := b.obj.Check(dx, 0, tags.ResolvSolid); check != nil {
		if walls := check.ObjectsByTags(tags.ResolvSolid); len(walls) > 0 {
			contact := check.ContactWithObject(walls[0])
			dx = contact.X()
			b.vel.X = 0
		}
	}
	b.obj.X += dx
	b.obj.Update()
}

func (b *Body) moveZ(dz float64) {
	if dz == 0 {
		return
	}
	if b.obj.Space == nil {
		b.obj.Y += dz
		return
	}
	if check := b.obj.Check(0, dz, tags.ResolvSolid); check != nil {
		if walls := check.ObjectsByTags(tags.ResolvSolid); len(walls) > 0 {
			contact := check.ContactWithObject(walls[0])
			dz = contact.Y()
			b.vel.Z = 0
		}
	}
	b.obj.Y += dz
	b.obj.Update()
}
