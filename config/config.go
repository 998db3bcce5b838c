package config

import (
	"image/color"
	"time"
)

// Config holds the window and world-to-screen layout.
type Config struct {
	Width  int
	Height int
	Scale  float64 // Screen pixels per world unit
}

// CameraConfig tunes the orbit camera that movement intent is resolved against.
type CameraConfig struct {
	FollowSmoothing float64 // How fast camera follows player (0.0-1.0)
	Pitch           float64 // Radians, negative looks down
	TurnSpeed       float64 // Radians per second while a turn key is held
}

// UIConfig contains HUD and debug-draw colors.
type UIConfig struct {
	HUDTextBgColor color.RGBA
	HUDTextColor   color.RGBA
	HUDMargin      float64
	HUDLineHeight  float64

	FloorColor       color.RGBA
	WallColor        color.RGBA
	LocalPlayerColor color.RGBA
	RemotePlayer     color.RGBA
	ServerGhostColor color.RGBA
	HeadingColor     color.RGBA
}

// PlayerConfig contains client-only player values. Movement tuning is shared
// with the server and lives in shared/netconfig.
type PlayerConfig struct {
	AttackLock time.Duration
	DrawSize   float64 // World units
}

// NetConfig holds connection defaults, overridable by CLI flags.
type NetConfig struct {
	ServerAddress string
	PlayerName    string
	Version       string
	ReconnectWait time.Duration
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	ShowServerGhost bool // Draw the last authoritative position of the local player
	ShowLedger      bool // Draw pending inputs' recorded positions
}

var C *Config
var Camera CameraConfig
var UI UIConfig
var Player PlayerConfig
var Net NetConfig
var Debug DebugConfig

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	LightRed     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
)

func init() {
	C = &Config{
		Width:  800,
		Height: 600,
		Scale:  40,
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.1,
		Pitch:           -0.6,
		TurnSpeed:       2.5,
	}

	UI = UIConfig{
		HUDTextBgColor: BlackOverlay,
		HUDTextColor:   White,
		HUDMargin:      8,
		HUDLineHeight:  16,

		FloorColor:       color.RGBA{R: 30, G: 30, B: 40, A: 255},
		WallColor:        DarkBlue,
		LocalPlayerColor: LightGreen,
		RemotePlayer:     Orange,
		ServerGhostColor: color.RGBA{R: 255, G: 255, B: 255, A: 90},
		HeadingColor:     Yellow,
	}

	Player = PlayerConfig{
		AttackLock: 300 * time.Millisecond,
		DrawSize:   0.6,
	}

	Net = NetConfig{
		ServerAddress: "localhost:7373",
		PlayerName:    "Player",
		Version:       "",
		ReconnectWait: 2 * time.Second,
	}

	Debug = DebugConfig{
		ShowServerGhost: true,
		ShowLedger:      false,
	}
}
