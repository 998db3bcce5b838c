package factory

import (
	"github.com/automoto/doomerang-predict/archetypes"
	"github.com/automoto/doomerang-predict/components"
	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateWall spawns a drawable wall. Collision lives in the prediction
// space, not on the entity.
func CreateWall(ecs *ecs.ECS, r leveldata.WallRect) *donburi.Entry {
	wall := archetypes.Wall.Spawn(ecs)
	components.Wall.SetValue(wall, components.WallData{WallRect: r})
	return wall
}
