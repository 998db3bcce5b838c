package main

import (
	"context"
	"flag"
	"image"
	"log"

	"github.com/automoto/doomerang-predict/assets"
	"github.com/automoto/doomerang-predict/config"
	"github.com/automoto/doomerang-predict/network"
	"github.com/automoto/doomerang-predict/scenes"
	"github.com/automoto/doomerang-predict/settings"
	"github.com/automoto/doomerang-predict/shared/netconfig"
	"github.com/automoto/doomerang-predict/shared/protocol"
	"github.com/automoto/doomerang-predict/telemetry"
	"github.com/hajimehoshi/ebiten/v2"
)

const appName = "doomerang-predict"

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type Game struct {
	bounds image.Rectangle
	scene  Scene
}

func NewGame(scene Scene) *Game {
	return &Game{
		bounds: image.Rectangle{},
		scene:  scene,
	}
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, config.C.Width, config.C.Height)
	return config.C.Width, config.C.Height
}

func main() {
	address := flag.String("address", "", "Server address (host:port)")
	name := flag.String("name", "", "Player name")
	arenaName := flag.String("arena", assets.DefaultArena, "Arena to load; must match the server")
	flag.Parse()

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatalf("Failed to register network components: %v", err)
	}

	tuning, err := netconfig.LoadPrediction()
	if err != nil {
		log.Fatalf("Invalid prediction config: %v", err)
	}

	// Initialize persistence and load saved settings
	var store settings.Store
	if m, err := settings.Open(appName); err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	} else {
		store = m
	}
	saved, err := settings.Load(store)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
	}

	if *address == "" {
		*address = saved.ServerAddress
	}
	if *address == "" {
		*address = config.Net.ServerAddress
	}
	if *name == "" {
		*name = saved.PlayerName
	}
	if *name == "" {
		*name = config.Net.PlayerName
	}

	arena, err := assets.LoadArena(*arenaName)
	if err != nil {
		log.Fatalf("Failed to load arena %q: %v", *arenaName, err)
	}

	ctx := context.Background()
	metrics, err := telemetry.Setup(ctx, appName)
	if err != nil {
		log.Fatalf("Failed to set up metrics: %v", err)
	}
	defer func() {
		if err := metrics.Shutdown(ctx); err != nil {
			log.Printf("Warning: metrics shutdown: %v", err)
		}
	}()

	recorder, err := telemetry.NewRecorder(metrics.MeterProvider(), *name)
	if err != nil {
		log.Fatalf("Failed to create telemetry recorder: %v", err)
	}

	client := network.NewClient()
	client.Connect(*address, config.Net.Version, *name)

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle("doomerang: prediction")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)
	ebiten.SetFullscreen(saved.Fullscreen)

	scene := scenes.NewNetworkedScene(scenes.Options{
		Client:   client,
		Arena:    arena,
		Tuning:   tuning,
		Recorder: recorder,
		Metrics:  metrics,
		Store:    store,
		Saved:    saved,
		Address:  *address,
		Version:  config.Net.Version,
		Name:     *name,
	})

	if err := ebiten.RunGame(NewGame(scene)); err != nil {
		log.Printf("Game exited: %v", err)
	}
	client.Disconnect()
}
