package systems

import (
	"log"

	"github.com/automoto/doomerang-predict/camera"
	cfg "github.com/automoto/doomerang-predict/config"
	"github.com/automoto/doomerang-predict/physics"
	"github.com/automoto/doomerang-predict/prediction"
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/automoto/doomerang-predict/shared/netcomponents"
	"github.com/automoto/doomerang-predict/shared/netconfig"
	"github.com/automoto/doomerang-predict/telemetry"
	"github.com/leap-fish/necs/esync"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/ecs"
)

// NetPrediction owns client-side prediction state for the local player. The
// controller is created once the local entity shows up in a snapshot.
type NetPrediction struct {
	Controller *prediction.Controller
	Body       *physics.Body
	View       *camera.Orbit
	Recorder   *telemetry.Recorder
	Space      *resolv.Space
	NetID      esync.NetworkId

	// Last authoritative state for the local player, drawn as a ghost.
	ServerPos gamemath.Vec3
	HasServer bool

	// Latest movement intent reported by the controller, for drawing.
	Heading gamemath.Vec3
	Moving  bool

	tuning       netconfig.PredictionConfig
	transport    prediction.Transport
	predictionOn bool
	reconcileOn  bool
}

// NewNetPrediction builds the prediction collision space from arena data.
func NewNetPrediction(arena *leveldata.ArenaData, tuning netconfig.PredictionConfig, transport prediction.Transport, recorder *telemetry.Recorder) *NetPrediction {
	return &NetPrediction{
		Space:        physics.NewArenaSpace(arena),
		View:         camera.NewOrbit(cfg.Camera.Pitch, cfg.Camera.FollowSmoothing),
		Recorder:     recorder,
		tuning:       tuning,
		transport:    transport,
		predictionOn: true,
		reconcileOn:  true,
	}
}

// Ready reports whether the local player has been found.
func (p *NetPrediction) Ready() bool {
	return p.Controller != nil
}

// Attach creates the local body at the server's spawn position and the
// controller that drives it.
func (p *NetPrediction) Attach(id esync.NetworkId, spawn gamemath.Vec3) {
	if p.Body != nil {
		p.Body.Remove()
	}
	p.Body = physics.NewBody(p.Space, spawn, physics.DefaultBodyConfig(p.tuning.Gravity, p.tuning.MaxFallSpeed))
	p.View.Snap(spawn)
	p.NetID = id

	var observer prediction.StatsObserver
	if p.Recorder != nil {
		observer = p.Recorder
	}
	p.Controller = prediction.New(prediction.EntityID(id), prediction.Deps{
		Body:      p.Body,
		View:      p.View,
		Transport: p.transport,
		Animator:  p,
		Observer:  observer,
	}, p.tuning)
	p.Controller.SetPredictionEnabled(p.predictionOn)
	p.Controller.SetReconciliationEnabled(p.reconcileOn)

	log.Printf("[prediction] local player attached: netID=%d at (%.1f, %.1f)", id, spawn.X, spawn.Z)
}

// MovementIntent records the latest intent for drawing the heading marker.
func (p *NetPrediction) MovementIntent(dir gamemath.Vec3, moving bool) {
	if moving {
		p.Heading = dir
	}
	p.Moving = moving
}

// ServerUpdate feeds one authoritative snapshot to the controller.
func (p *NetPrediction) ServerUpdate(snapshot prediction.Snapshot) {
	if !p.Ready() {
		return
	}
	if auth, ok := snapshot[p.Controller.ID()]; ok {
		p.ServerPos = auth.Position
		p.HasServer = true
	}
	p.Controller.ProcessServerUpdate(snapshot)
}

// Respawn puts the body back on the authority's position and clears any
// pending inputs and timers. Used when the server moved the player far enough
// that blending would take seconds.
func (p *NetPrediction) Respawn(pos gamemath.Vec3) {
	if !p.Ready() {
		return
	}
	p.Body.SetPosition(pos)
	p.Body.SetLinearVelocity(gamemath.Vec3{})
	p.Body.Activate(true)
	p.View.Snap(pos)
	p.Controller.Reset()
	if p.Recorder != nil {
		p.Recorder.ResetPeak()
	}
	log.Printf("[prediction] local player respawned at (%.1f, %.1f)", pos.X, pos.Z)
}

func (p *NetPrediction) SetPredictionEnabled(on bool) {
	p.predictionOn = on
	if p.Ready() {
		p.Controller.SetPredictionEnabled(on)
	}
}

func (p *NetPrediction) SetReconciliationEnabled(on bool) {
	p.reconcileOn = on
	if p.Ready() {
		p.Controller.SetReconciliationEnabled(on)
	}
}

func (p *NetPrediction) PredictionEnabled() bool {
	return p.predictionOn
}

func (p *NetPrediction) ReconciliationEnabled() bool {
	return p.reconcileOn
}

// NewNetPredictionSystem returns an update system that advances the local
// player's timers and damping, integrates its body and mirrors the result
// onto its NetPosition so renderers see the predicted state.
func NewNetPredictionSystem(pred *NetPrediction) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		if !pred.Ready() {
			return
		}

		dt := frameSeconds()
		pred.Controller.Update(dt)
		pred.Body.Step(dt)

		entity := esync.FindByNetworkId(e.World, pred.NetID)
		if !e.World.Valid(entity) {
			return
		}
		entry := e.World.Entry(entity)
		if !entry.HasComponent(netcomponents.NetPosition) {
			return
		}
		netcomponents.NetPosition.SetValue(entry, netcomponents.PositionFromVec(pred.Body.Position()))

		if entry.HasComponent(netcomponents.NetPlayerState) {
			state := netcomponents.NetPlayerState.Get(entry)
			vel := pred.Body.LinearVelocity()
			state.StateID = netconfig.DeriveState(pred.Body.IsGrounded(), vel.Horizontal().LengthSq())
			if pred.Controller.Jumping() {
				state.StateID = netconfig.Jump
			}
			state.IsLocal = true
		}
	}
}
