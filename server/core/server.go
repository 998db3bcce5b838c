package core

import (
	"log"
	"sync"

	"github.com/automoto/doomerang-predict/physics"
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/automoto/doomerang-predict/shared/messages"
	"github.com/automoto/doomerang-predict/shared/netcomponents"
	"github.com/automoto/doomerang-predict/shared/netconfig"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
)

const commandBuffer = 1024

// Options configures a Server.
type Options struct {
	TickRate int
	Name     string
	Version  string // Required client version, empty accepts any
	Arena    *ServerArena
	Movement netconfig.PredictionConfig
}

// Server manages the game state and client connections
type Server struct {
	opts      Options
	world     donburi.World
	loop      *TickLoop
	transport *transports.WsServerTransport

	// Router callbacks run on necs goroutines; they only queue work here and
	// the game loop applies it between ticks.
	cmds chan func()

	mu      sync.RWMutex
	players map[*router.NetworkClient]*player
	spawned int
}

// NewServer creates a new game server
func NewServer(opts Options) *Server {
	world := donburi.NewWorld()

	s := &Server{
		opts:    opts,
		world:   world,
		cmds:    make(chan func(), commandBuffer),
		players: make(map[*router.NetworkClient]*player),
	}
	s.loop = NewTickLoop(opts.TickRate,
		TickStage{Name: "commands", Run: func() error { s.ProcessCommands(); return nil }},
		TickStage{Name: "simulate", Run: func() error { s.Simulate(); return nil }},
		TickStage{Name: "sync", Run: srvsync.DoSync},
	)

	srvsync.UseEsync(world)
	s.setupRouterCallbacks()

	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	log.Printf("[server] %q listening on :%d (arena %s, %d Hz)", s.opts.Name, port, s.opts.Arena.Name, s.opts.TickRate)
	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

// Ticks is the number of simulation ticks run so far.
func (s *Server) Ticks() uint64 {
	return s.loop.Ticks()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("[server] client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("[server] client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("[server] client %s disconnected", client.Id())
		}
		s.enqueue(func() { s.leave(client) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(func() { s.join(client, req) })
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.enqueue(func() {
			s.mu.RLock()
			p := s.players[client]
			s.mu.RUnlock()
			if p != nil {
				p.enqueue(input)
			}
		})
	})

	router.On(func(client *router.NetworkClient, evt messages.JumpEvent) {
		log.Printf("[server] jump from %s (token=%s)", client.Id(), evt.Token)
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("[server] client error: %v", err)
	})
}

func (s *Server) enqueue(cmd func()) {
	select {
	case s.cmds <- cmd:
	default:
		log.Println("[server] command queue full, dropping command")
	}
}

// ProcessCommands applies everything the router callbacks queued since the
// last tick. Must be called from the game loop.
func (s *Server) ProcessCommands() {
	for {
		select {
		case cmd := <-s.cmds:
			cmd()
		default:
			return
		}
	}
}

func (s *Server) join(client *router.NetworkClient, req messages.JoinRequest) {
	if s.opts.Version != "" && req.Version != s.opts.Version {
		log.Printf("[server] rejecting %s: version %q, want %q", client.Id(), req.Version, s.opts.Version)
		return
	}
	if req.Token == "" {
		log.Printf("[server] rejecting %s: empty join token", client.Id())
		return
	}

	s.mu.RLock()
	_, joined := s.players[client]
	s.mu.RUnlock()
	if joined {
		return
	}

	var spawnPos gamemath.Vec3
	space := s.opts.Arena.Space
	if sp, ok := s.opts.Arena.Data.Spawn(s.spawned); ok {
		spawnPos = gamemath.Vec3{X: sp.X, Z: sp.Z}
	}
	s.spawned++

	cfg := s.opts.Movement
	body := physics.NewBody(space, spawnPos, physics.DefaultBodyConfig(cfg.Gravity, cfg.MaxFallSpeed))

	entity := s.world.Create(
		netcomponents.NetPosition,
		netcomponents.NetVelocity,
		netcomponents.NetPlayerState,
	)
	entry := s.world.Entry(entity)
	netcomponents.NetPosition.SetValue(entry, netcomponents.PositionFromVec(spawnPos))
	netcomponents.NetPlayerState.SetValue(entry, netcomponents.NetPlayerStateData{
		StateID:  netconfig.Idle,
		Token:    req.Token,
		Name:     req.PlayerName,
		Grounded: true,
	})

	err := srvsync.NetworkSync(s.world, &entity,
		srvsync.WithInterp(netcomponents.NetPosition, netcomponents.NetVelocity),
		netcomponents.NetPlayerState,
	)
	if err != nil {
		log.Printf("[server] failed to set up network sync for %s: %v", req.PlayerName, err)
		body.Remove()
		s.world.Remove(entity)
		return
	}

	s.mu.Lock()
	s.players[client] = &player{
		entity: entity,
		body:   body,
		token:  req.Token,
		name:   req.PlayerName,
	}
	s.mu.Unlock()

	log.Printf("[server] player %q joined at (%.1f, %.1f)", req.PlayerName, spawnPos.X, spawnPos.Z)
}

func (s *Server) leave(client *router.NetworkClient) {
	s.mu.Lock()
	p, exists := s.players[client]
	delete(s.players, client)
	s.mu.Unlock()

	if !exists {
		return
	}
	p.body.Remove()
	if s.world.Valid(p.entity) {
		s.world.Remove(p.entity)
	}
	log.Printf("[server] player %q removed", p.name)
}

// Simulate applies every queued input in order and publishes the resulting
// state, stamped with the last sequence processed for each player.
func (s *Server) Simulate() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.players {
		for _, in := range p.queue {
			stepInput(p.body, &p.move, in, s.opts.Movement)
			p.lastSeq = in.Sequence
		}
		p.queue = p.queue[:0]

		if !s.world.Valid(p.entity) {
			continue
		}
		s.publish(s.world.Entry(p.entity), p)
	}
}

func (s *Server) publish(entry *donburi.Entry, p *player) {
	pos := p.body.Position()
	vel := p.body.LinearVelocity()
	grounded := p.body.IsGrounded()

	netcomponents.NetPosition.SetValue(entry, netcomponents.PositionFromVec(pos))
	netcomponents.NetVelocity.SetValue(entry, netcomponents.VelocityFromVec(vel))

	state := netcomponents.NetPlayerState.Get(entry)
	state.StateID = netconfig.DeriveState(grounded, vel.Horizontal().LengthSq())
	state.Grounded = grounded
	state.LastSequence = p.lastSeq
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined players
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
