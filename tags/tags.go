package tags

import "github.com/yohamta/donburi"

var (
	Player      = donburi.NewTag().SetName("Player")
	LocalPlayer = donburi.NewTag().SetName("LocalPlayer")
	Wall        = donburi.NewTag().SetName("Wall")
)

// Resolv tags for physics collision
const (
	ResolvSolid  = "solid"
	ResolvPlayer = "Player"
)
