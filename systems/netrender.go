package systems

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/automoto/doomerang-predict/components"
	cfg "github.com/automoto/doomerang-predict/config"
	"github.com/automoto/doomerang-predict/fonts"
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/automoto/doomerang-predict/shared/netcomponents"
	"github.com/automoto/doomerang-predict/tags"
	"github.com/automoto/doomerang-predict/telemetry"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

// heightLift is how far up the screen one unit of height is drawn.
const heightLift = 0.5

var walls = donburi.NewQuery(filter.Contains(tags.Wall, components.Wall))

// viewCenter is the world point drawn at the middle of the screen.
func viewCenter(pred *NetPrediction, arena *leveldata.ArenaData) gamemath.Vec3 {
	if pred.Ready() {
		return pred.View.Position
	}
	return gamemath.Vec3{X: arena.Width / 2, Z: arena.Depth / 2}
}

func toScreen(p, center gamemath.Vec3) (float32, float32) {
	x := (p.X-center.X)*cfg.C.Scale + float64(cfg.C.Width)/2
	y := (p.Z-center.Z-p.Y*heightLift)*cfg.C.Scale + float64(cfg.C.Height)/2
	return float32(x), float32(y)
}

// NewArenaRenderer draws the floor and walls top-down around the view.
func NewArenaRenderer(pred *NetPrediction, arena *leveldata.ArenaData) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		center := viewCenter(pred, arena)
		scale := float32(cfg.C.Scale)

		fx, fy := toScreen(gamemath.Vec3{}, center)
		vector.DrawFilledRect(screen, fx, fy, float32(arena.Width)*scale, float32(arena.Depth)*scale, cfg.UI.FloorColor, false)

		walls.Each(e.World, func(entry *donburi.Entry) {
			w := components.Wall.Get(entry)
			x, y := toScreen(gamemath.Vec3{X: w.X, Z: w.Z}, center)
			vector.DrawFilledRect(screen, x, y, float32(w.W)*scale, float32(w.D)*scale, cfg.UI.WallColor, false)
		})
	}
}

// NewPlayersRenderer draws every synced player, the local one at its
// predicted position, plus the local player's last authoritative position.
func NewPlayersRenderer(pred *NetPrediction, arena *leveldata.ArenaData) func(*ecs.ECS, *ebiten.Image) {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		center := viewCenter(pred, arena)
		face := fonts.HUD.Get()

		if cfg.Debug.ShowServerGhost && pred.HasServer {
			drawPlayer(screen, pred.ServerPos, center, cfg.UI.ServerGhostColor)
		}

		esync.NetworkEntityQuery.Each(e.World, func(entry *donburi.Entry) {
			if !entry.HasComponent(netcomponents.NetPosition) {
				return
			}
			pos := netcomponents.NetPosition.Get(entry).Vec()

			clr := cfg.UI.RemotePlayer
			if entry.HasComponent(tags.LocalPlayer) {
				clr = cfg.UI.LocalPlayerColor
			}
			drawPlayer(screen, pos, center, clr)

			if entry.HasComponent(netcomponents.NetPlayerState) {
				state := netcomponents.NetPlayerState.Get(entry)
				x, y := toScreen(pos, center)
				half := float32(cfg.Player.DrawSize*cfg.C.Scale) / 2
				label := fmt.Sprintf("%s (%s)", state.Name, state.StateID)
				text.Draw(screen, label, face, int(x-half), int(y-half)-4, cfg.White)
			}
		})

		if pred.Ready() && pred.Moving {
			pos := pred.Body.Position()
			tip := pos.Add(pred.Heading.Scale(cfg.Player.DrawSize))
			x0, y0 := toScreen(pos, center)
			x1, y1 := toScreen(tip, center)
			vector.StrokeLine(screen, x0, y0, x1, y1, 2, cfg.UI.HeadingColor, false)
		}
	}
}

func drawPlayer(screen *ebiten.Image, pos, center gamemath.Vec3, clr color.Color) {
	size := float32(cfg.Player.DrawSize * cfg.C.Scale)

	// Shadow on the floor, then the body lifted by its height.
	sx, sy := toScreen(gamemath.Vec3{X: pos.X, Z: pos.Z}, center)
	vector.DrawFilledRect(screen, sx-size/2, sy-size/4, size, size/2, cfg.BlackOverlay, false)

	x, y := toScreen(pos, center)
	vector.DrawFilledRect(screen, x-size/2, y-size/2, size, size, clr, false)
}

// metricsRefresh is how many frames the HUD reuses one metrics reading.
const metricsRefresh = 15

// NewNetworkHUD draws connection state and prediction statistics. metrics
// may be nil.
func NewNetworkHUD(pred *NetPrediction, status func() string, metrics *telemetry.Metrics) func(*ecs.ECS, *ebiten.Image) {
	var (
		totals telemetry.Totals
		frames int
	)
	return func(e *ecs.ECS, screen *ebiten.Image) {
		if metrics != nil && frames%metricsRefresh == 0 {
			t, err := metrics.Collect(context.Background())
			if err != nil {
				log.Printf("[hud] %v", err)
			} else {
				totals = t
			}
		}
		frames++

		entityCount := 0
		esync.NetworkEntityQuery.Each(e.World, func(_ *donburi.Entry) {
			entityCount++
		})

		lines := []string{
			fmt.Sprintf("Online: %s - Entities: %d", status(), entityCount),
			fmt.Sprintf("[F1] prediction: %s  [F2] reconciliation: %s  [F3] ghost: %s",
				onOff(pred.PredictionEnabled()), onOff(pred.ReconciliationEnabled()), onOff(cfg.Debug.ShowServerGhost)),
		}

		if pred.Ready() {
			st := pred.Controller.Stats()
			peak := 0.0
			if pred.Recorder != nil {
				peak = pred.Recorder.Peak()
			}
			lines = append(lines,
				fmt.Sprintf("pending: %d  jumping: %t  damping: %t",
					len(pred.Controller.Pending()), pred.Controller.Jumping(), pred.Controller.Damping()),
				fmt.Sprintf("corrections: %d  last: %.3f  peak: %.3f",
					st.CorrectionCount, st.LastCorrection.Length(), peak),
				fmt.Sprintf("snapshots: %d applied  %d skipped  %d stale  replayed: %d",
					st.SnapshotsApplied, st.SnapshotsSkipped, st.StaleSnapshots, st.InputsReplayed),
				fmt.Sprintf("prediction error: %.3f", st.LastPredictionError),
			)
			if metrics != nil {
				lines = append(lines, fmt.Sprintf("session: %d corrections  mean %.3f  max %.3f  %d replayed",
					totals.Corrections, totals.MeanDistance(), totals.DistanceMax, totals.Replayed))
			}
		} else {
			lines = append(lines, "waiting for local player...")
		}

		margin := float32(cfg.UI.HUDMargin)
		lineH := float32(cfg.UI.HUDLineHeight)
		width := float32(0)
		for _, l := range lines {
			if w := float32(len(l) * 7); w > width {
				width = w
			}
		}
		vector.DrawFilledRect(screen, margin/2, margin/2, width+margin, lineH*float32(len(lines))+margin/2, cfg.UI.HUDTextBgColor, false)

		face := fonts.HUD.Get()
		for i, l := range lines {
			text.Draw(screen, l, face, int(margin), int(margin+lineH*float32(i+1)-4), cfg.UI.HUDTextColor)
		}
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
