// Package leveldata provides TMX arena parsing shared between client and server.
// It has no dependencies on ebitengine, donburi, or resolv; pure data only.
//
// Arenas are authored top-down: the map's X axis is world X and the map's Y
// axis is world Z. One tile is one world unit.
package leveldata

// ArenaData holds all collision-relevant data parsed from a TMX arena file.
type ArenaData struct {
	Walls       []WallRect
	SpawnPoints []SpawnPoint
	Width       float64 // World units along X
	Depth       float64 // World units along Z
}

// WallRect is a solid footprint on the horizontal plane, in world units.
type WallRect struct {
	X, Z, W, D float64
}

// SpawnPoint represents a player spawn location on the ground plane.
type SpawnPoint struct {
	X, Z  float64
	Index int
}

// Spawn returns the spawn point for the n-th player, cycling through the
// arena's spawns. ok is false if the arena has none.
func (a *ArenaData) Spawn(n int) (SpawnPoint, bool) {
	if a == nil || len(a.SpawnPoints) == 0 {
		return SpawnPoint{}, false
	}
	if n < 0 {
		n = -n
	}
	return a.SpawnPoints[n%len(a.SpawnPoints)], true
}
