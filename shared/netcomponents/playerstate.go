package netcomponents

import (
	"github.com/automoto/doomerang-predict/shared/netconfig"
	"github.com/yohamta/donburi"
)

type NetPlayerStateData struct {
	StateID      netconfig.StateID
	Token        string // Join token chosen by the owning client
	Name         string
	Grounded     bool
	LastSequence uint64 // Last input sequence processed by the server (for prediction reconciliation)
	IsLocal      bool   // Client-side only, not synced
}

var NetPlayerState = donburi.NewComponentType[NetPlayerStateData]()
