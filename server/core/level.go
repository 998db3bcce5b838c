package core

import (
	"fmt"
	"log"

	"github.com/automoto/doomerang-predict/assets"
	"github.com/automoto/doomerang-predict/physics"
	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/solarlune/resolv"
)

// ServerArena holds the server's collision space and spawn data for an arena.
type ServerArena struct {
	Name  string
	Data  *leveldata.ArenaData
	Space *resolv.Space
}

// NewServerArena builds a resolv.Space from parsed arena data.
func NewServerArena(name string, data *leveldata.ArenaData) *ServerArena {
	log.Printf("[server] loaded arena %s: %d walls, %d spawn points, %.0fx%.0f",
		name, len(data.Walls), len(data.SpawnPoints), data.Width, data.Depth)

	return &ServerArena{
		Name:  name,
		Data:  data,
		Space: physics.NewArenaSpace(data),
	}
}

// LoadServerArena loads one of the embedded arenas by name.
func LoadServerArena(name string) (*ServerArena, error) {
	data, err := assets.LoadArena(name)
	if err != nil {
		return nil, fmt.Errorf("load server arena: %w", err)
	}
	return NewServerArena(name, data), nil
}
