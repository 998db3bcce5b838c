package archetypes

import (
	"github.com/automoto/doomerang-predict/components"
	cfg "github.com/automoto/doomerang-predict/config"
	"github.com/automoto/doomerang-predict/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Wall = newArchetype(
		tags.Wall,
		components.Wall,
	)
	// NetPlayer is a player mirrored from server snapshots. Synced components
	// are added on top when the entity is first seen.
	NetPlayer = newArchetype(
		tags.Player,
		components.NetInterp,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
