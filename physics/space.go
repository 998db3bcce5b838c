// Package physics provides a small kinematic body for the prediction engine
// and the authoritative server. Horizontal motion collides against arena walls
// through a resolv space laid out top-down (resolv X is world X, resolv Y is
// world Z); vertical motion is plain gravity over a flat floor.
package physics

import (
	"math"

	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/automoto/doomerang-predict/tags"
	"github.com/solarlune/resolv"
)

// PixelsPerUnit scales world units into resolv space, which assumes
// pixel-sized coordinates.
const PixelsPerUnit = 16.0

const cellSize = 16

// NewArenaSpace builds a resolv.Space from parsed arena walls.
func NewArenaSpace(arena *leveldata.ArenaData) *resolv.Space {
	w := int(math.Ceil(arena.Width * PixelsPerUnit))
	h := int(math.Ceil(arena.Depth * PixelsPerUnit))
	space := resolv.NewSpace(w, h, cellSize, cellSize)

	for _, r := range arena.Walls {
		x, y := r.X*PixelsPerUnit, r.Z*PixelsPerUnit
		pw, ph := r.W*PixelsPerUnit, r.D*PixelsPerUnit
		obj := resolv.NewObject(x, y, pw, ph, tags.ResolvSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, pw, ph))
		space.Add(obj)
	}

	return space
}
