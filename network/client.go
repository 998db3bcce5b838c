package network

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/automoto/doomerang-predict/shared/messages"
	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
)

const writeTimeout = 2 * time.Second

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

func (s ClientState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateJoinedGame:
		return "joined"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	token     string
	conn      *websocket.Conn

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins
}

// NewClient creates a client with a fresh join token. The server copies the
// token onto the player's synced state, which is how the client recognises
// its own entity in snapshots.
func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		token:      uuid.NewString(),
		snapshotCh: make(chan esync.WorldSnapshot, 1),
	}
}

// Connect dials the server in a background goroutine and sends the join
// request once the socket is up.
func (c *Client) Connect(address, version, playerName string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	token := c.token
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		log.Println("[client] connected to server")
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
			Token:      token,
		})
		if err != nil {
			c.setError(fmt.Errorf("failed to send join request: %w", err))
			return
		}
		c.mu.Lock()
		if c.state == StateConnected {
			c.state = StateJoinedGame
		}
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] disconnected: %v", err)
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Token is the join token identifying this client's player entity.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageBinary, payload)
}

// SendInput sends one sequenced input. Inputs are dropped silently until the
// join request has gone out.
func (c *Client) SendInput(input messages.PlayerInput) error {
	if c.State() != StateJoinedGame {
		return nil
	}
	return c.SendMessage(input)
}

// NotifyJump tells the server a jump started. It never blocks the caller; a
// failed send is only logged.
func (c *Client) NotifyJump() {
	if c.State() != StateJoinedGame {
		return
	}
	evt := messages.JumpEvent{Token: c.Token(), Timestamp: time.Now().UnixMilli()}
	go func() {
		if err := c.SendMessage(evt); err != nil {
			log.Printf("[client] jump notify failed: %v", err)
		}
	}()
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
