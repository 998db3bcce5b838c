package assets

import (
	"embed"
	"fmt"

	"github.com/automoto/doomerang-predict/shared/leveldata"
)

const (
	levelsDir    = "levels"
	DefaultArena = "arena"
)

//go:embed levels
var assetFS embed.FS

// LoadArena loads an embedded arena by stem name (e.g. "arena").
func LoadArena(name string) (*leveldata.ArenaData, error) {
	data, err := leveldata.LoadArena(assetFS, fmt.Sprintf("%s/%s.tmx", levelsDir, name))
	if err != nil {
		return nil, fmt.Errorf("load arena %q: %w", name, err)
	}
	return data, nil
}

// ArenaNames lists the embedded arenas in sorted order.
func ArenaNames() ([]string, error) {
	_, names, err := leveldata.LoadAllArenas(assetFS, levelsDir)
	return names, err
}
