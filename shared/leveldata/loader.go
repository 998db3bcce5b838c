package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

const (
	wallLayerName  = "walls"
	spawnGroupName = "PlayerSpawn"
)

// LoadArena parses a TMX file and returns its wall footprints and spawn
// points in world units. It takes an fs.FS so callers can pass embed.FS
// (client) or os.DirFS (server).
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: invalid tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	data := &ArenaData{
		Width: float64(levelMap.Width),
		Depth: float64(levelMap.Height),
	}

	for _, layer := range levelMap.Layers {
		if layer.Name != wallLayerName {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				data.Walls = append(data.Walls, WallRect{
					X: float64(x),
					Z: float64(y),
					W: 1,
					D: 1,
				})
			}
		}
		break
	}

	// Object coordinates are in pixels; convert to tiles.
	for _, og := range levelMap.ObjectGroups {
		if og.Name != spawnGroupName {
			continue
		}
		for _, o := range og.Objects {
			data.SpawnPoints = append(data.SpawnPoints, SpawnPoint{
				X:     o.X / tileW,
				Z:     o.Y / tileH,
				Index: o.Properties.GetInt("spawnIndex"),
			})
		}
	}

	sort.Slice(data.SpawnPoints, func(i, j int) bool {
		return data.SpawnPoints[i].Index < data.SpawnPoints[j].Index
	})

	return data, nil
}

// LoadAllArenas discovers all .tmx files in dir within fsys, loads each, and
// returns a map keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string) (map[string]*ArenaData, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*ArenaData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		arenas[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return arenas, names, nil
}
