// Package netconfig defines lightweight types shared between client and server
// for network serialization and movement tuning. It must have zero
// dependencies on ebiten or any graphics library so the dedicated server
// binary stays headless.
package netconfig

// StateID identifies a character movement state for animation and logic.
type StateID int

const (
	StateNone StateID = -1

	Idle StateID = iota
	Running
	Jump
	Attacking
)

// StateToName maps StateID to a display name.
var StateToName = map[StateID]string{
	Idle:      "idle",
	Running:   "running",
	Jump:      "jump",
	Attacking: "attacking",
}

func (s StateID) String() string {
	if name, ok := StateToName[s]; ok {
		return name
	}
	return "unknown"
}

// DeriveState picks the movement state for a player from its physical state.
func DeriveState(grounded bool, horizontalSpeedSq float64) StateID {
	if !grounded {
		return Jump
	}
	if horizontalSpeedSq >= 0.01 {
		return Running
	}
	return Idle
}
