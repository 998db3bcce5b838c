package factory

import (
	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/yohamta/donburi/ecs"
)

// CreateArena spawns wall entities for every wall in the arena.
func CreateArena(ecs *ecs.ECS, arena *leveldata.ArenaData) {
	for _, r := range arena.Walls {
		CreateWall(ecs, r)
	}
}
