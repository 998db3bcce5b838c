package scenes

import (
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/automoto/doomerang-predict/archetypes"
	"github.com/automoto/doomerang-predict/components"
	"github.com/automoto/doomerang-predict/network"
	"github.com/automoto/doomerang-predict/prediction"
	"github.com/automoto/doomerang-predict/settings"
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/automoto/doomerang-predict/shared/netcomponents"
	"github.com/automoto/doomerang-predict/shared/netconfig"
	"github.com/automoto/doomerang-predict/systems"
	"github.com/automoto/doomerang-predict/systems/factory"
	"github.com/automoto/doomerang-predict/tags"
	"github.com/automoto/doomerang-predict/telemetry"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	cfg "github.com/automoto/doomerang-predict/config"
)

// teleportDistance is how far the authoritative position may jump between two
// snapshots before the local player is snapped instead of blended.
const teleportDistance = 4.0

// Options holds what the networked scene needs from main.
type Options struct {
	Client   *network.Client
	Arena    *leveldata.ArenaData
	Tuning   netconfig.PredictionConfig
	Recorder *telemetry.Recorder
	Metrics  *telemetry.Metrics
	Store    settings.Store
	Saved    settings.Saved
	Address  string
	Version  string
	Name     string
}

type NetworkedScene struct {
	opts       Options
	ecsWorld   *ecs.ECS
	prediction *systems.NetPrediction
	once       sync.Once
	presentIDs map[esync.NetworkId]bool

	lastServerPos gamemath.Vec3
	retryAt       time.Time
}

func NewNetworkedScene(opts Options) *NetworkedScene {
	return &NetworkedScene{
		opts:       opts,
		prediction: systems.NewNetPrediction(opts.Arena, opts.Tuning, opts.Client, opts.Recorder),
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

func (ns *NetworkedScene) Update() {
	ns.once.Do(ns.configure)

	state := ns.opts.Client.State()
	if state == network.StateDisconnected || state == network.StateError {
		ns.reconnect(state)
		return
	}
	ns.retryAt = time.Time{}

	if snap := ns.opts.Client.LatestSnapshot(); snap != nil {
		ns.applySnapshot(*snap)
	}

	ns.ecsWorld.Update()
}

func (ns *NetworkedScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if ns.ecsWorld == nil {
		return
	}

	ns.ecsWorld.Draw(screen)
}

func (ns *NetworkedScene) configure() {
	ns.ecsWorld = ecs.NewECS(donburi.NewWorld())
	factory.CreateArena(ns.ecsWorld, ns.opts.Arena)

	saved := &ns.opts.Saved
	ns.prediction.SetPredictionEnabled(saved.PredictionEnabled)
	ns.prediction.SetReconciliationEnabled(saved.ReconciliationEnabled)
	cfg.Debug.ShowServerGhost = saved.ShowServerGhost

	status := func() string {
		return ns.opts.Client.State().String()
	}

	ns.ecsWorld.AddSystem(systems.NewNetCameraSystem(ns.prediction))
	ns.ecsWorld.AddSystem(systems.NewNetworkInputSystem(ns.opts.Client.SendInput, ns.prediction))
	ns.ecsWorld.AddSystem(systems.NewToggleSystem(ns.prediction, ns.opts.Store, saved))
	ns.ecsWorld.AddSystem(systems.NewNetPredictionSystem(ns.prediction))
	ns.ecsWorld.AddSystem(systems.NewNetInterpSystem(ns.opts.Tuning))
	ns.ecsWorld.AddRenderer(cfg.Default, systems.NewArenaRenderer(ns.prediction, ns.opts.Arena))
	ns.ecsWorld.AddRenderer(cfg.Default, systems.NewPlayersRenderer(ns.prediction, ns.opts.Arena))
	ns.ecsWorld.AddRenderer(cfg.HUD, systems.NewNetworkHUD(ns.prediction, status, ns.opts.Metrics))
}

// reconnect redials after cfg.Net.ReconnectWait. Mirrored entities are
// dropped; the server hands out new network ids on the next join.
func (ns *NetworkedScene) reconnect(state network.ClientState) {
	now := time.Now()
	if ns.retryAt.IsZero() {
		if err := ns.opts.Client.LastError(); err != nil {
			log.Printf("[networked] %s: %v", state, err)
		} else {
			log.Printf("[networked] %s, retrying in %s", state, cfg.Net.ReconnectWait)
		}
		ns.retryAt = now.Add(cfg.Net.ReconnectWait)
		ns.clearNetworkEntities()
		return
	}
	if now.Before(ns.retryAt) {
		return
	}

	ns.opts.Client.Disconnect()
	ns.opts.Client.Connect(ns.opts.Address, ns.opts.Version, ns.opts.Name)
	ns.retryAt = now.Add(cfg.Net.ReconnectWait)
}

func (ns *NetworkedScene) clearNetworkEntities() {
	if ns.ecsWorld == nil {
		return
	}
	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(ns.ecsWorld.World, func(entry *donburi.Entry) {
		stale = append(stale, entry)
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

func (ns *NetworkedScene) applySnapshot(snapshot esync.WorldSnapshot) {
	world := ns.ecsWorld.World
	token := ns.opts.Client.Token()

	clear(ns.presentIDs)

	for _, ent := range snapshot {
		ns.presentIDs[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				continue
			}
			compData = append(compData, instance)
		}

		entity := esync.FindByNetworkId(world, ent.Id)
		if !world.Valid(entity) {
			entry := archetypes.NetPlayer.Spawn(ns.ecsWorld, componentTypesFromInstances(compData)...)
			entry.AddComponent(esync.NetworkIdComponent)
			esync.NetworkIdComponent.SetValue(entry, ent.Id)
			entity = entry.Entity()
		}
		entry := world.Entry(entity)

		state, hasState := findState(compData)
		if hasState && state.Token == token {
			ns.applyLocal(entry, ent.Id, state, compData)
		} else {
			ns.applyRemote(entry, compData)
		}
	}

	var gone []*donburi.Entry
	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !ns.presentIDs[*id] {
			gone = append(gone, entry)
		}
	})
	for _, entry := range gone {
		entry.Remove()
	}
}

// applyLocal hands the local player's authoritative state to prediction
// instead of overwriting the predicted position.
func (ns *NetworkedScene) applyLocal(entry *donburi.Entry, id esync.NetworkId, state netcomponents.NetPlayerStateData, compData []any) {
	pos, hasPos := findPosition(compData)
	if !hasPos {
		return
	}
	serverPos := pos.Vec()

	if !entry.HasComponent(tags.LocalPlayer) {
		entry.AddComponent(tags.LocalPlayer)
	}
	if !entry.HasComponent(netcomponents.NetPlayerState) {
		entry.AddComponent(netcomponents.NetPlayerState)
	}
	local := netcomponents.NetPlayerState.Get(entry)
	local.Token = state.Token
	local.Name = state.Name
	local.Grounded = state.Grounded
	local.LastSequence = state.LastSequence
	local.IsLocal = true

	pred := ns.prediction
	if !pred.Ready() || pred.NetID != id {
		applyComponentToEntry(entry, pos)
		pred.Attach(id, serverPos)
		ns.lastServerPos = serverPos
		return
	}

	jumped := serverPos.Sub(ns.lastServerPos).Length() > teleportDistance
	ns.lastServerPos = serverPos
	if jumped {
		pred.ServerPos = serverPos
		pred.Respawn(serverPos)
		return
	}

	pred.ServerUpdate(prediction.Snapshot{
		prediction.EntityID(id): {
			Position:              serverPos,
			LastProcessedSequence: state.LastSequence,
		},
	})
}

// applyRemote starts a new interpolation leg toward the snapshot position and
// applies everything else directly.
func (ns *NetworkedScene) applyRemote(entry *donburi.Entry, compData []any) {
	var vel gamemath.Vec3
	for _, data := range compData {
		if v, ok := data.(netcomponents.NetVelocityData); ok {
			vel = v.Vec()
			break
		}
	}

	for _, data := range compData {
		pos, ok := data.(netcomponents.NetPositionData)
		if !ok || !entry.HasComponent(components.NetInterp) {
			applyComponentToEntry(entry, data)
			continue
		}
		interp := components.NetInterp.Get(entry)
		current := pos.Vec()
		if interp.Initialized && entry.HasComponent(netcomponents.NetPosition) {
			current = netcomponents.NetPosition.Get(entry).Vec()
		} else {
			applyComponentToEntry(entry, data)
		}
		interp.Retarget(current, pos.Vec(), vel)
	}
}

func findState(compData []any) (netcomponents.NetPlayerStateData, bool) {
	for _, data := range compData {
		if v, ok := data.(netcomponents.NetPlayerStateData); ok {
			return v, true
		}
	}
	return netcomponents.NetPlayerStateData{}, false
}

func findPosition(compData []any) (netcomponents.NetPositionData, bool) {
	for _, data := range compData {
		if v, ok := data.(netcomponents.NetPositionData); ok {
			return v, true
		}
	}
	return netcomponents.NetPositionData{}, false
}

func componentTypesFromInstances(components []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range components {
		switch data.(type) {
		case netcomponents.NetPositionData:
			ctypes = append(ctypes, netcomponents.NetPosition)
		case netcomponents.NetVelocityData:
			ctypes = append(ctypes, netcomponents.NetVelocity)
		case netcomponents.NetPlayerStateData:
			ctypes = append(ctypes, netcomponents.NetPlayerState)
		}
	}
	return ctypes
}

func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetPositionData:
		if !entry.HasComponent(netcomponents.NetPosition) {
			entry.AddComponent(netcomponents.NetPosition)
		}
		netcomponents.NetPosition.SetValue(entry, v)
	case netcomponents.NetVelocityData:
		if !entry.HasComponent(netcomponents.NetVelocity) {
			entry.AddComponent(netcomponents.NetVelocity)
		}
		netcomponents.NetVelocity.SetValue(entry, v)
	case netcomponents.NetPlayerStateData:
		if !entry.HasComponent(netcomponents.NetPlayerState) {
			entry.AddComponent(netcomponents.NetPlayerState)
		}
		netcomponents.NetPlayerState.SetValue(entry, v)
	}
}
