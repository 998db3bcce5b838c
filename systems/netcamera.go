package systems

import (
	"github.com/automoto/doomerang-predict/config"
	"github.com/yohamta/donburi/ecs"
)

// NewNetCameraSystem returns an update system that turns the view on the turn
// bindings and follows the local player's predicted body.
func NewNetCameraSystem(pred *NetPrediction) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		if !pred.Ready() {
			return
		}

		turn := 0.0
		if actionPressed(config.ActionTurnLeft) {
			turn--
		}
		if actionPressed(config.ActionTurnRight) {
			turn++
		}
		if turn != 0 {
			pred.View.Turn(turn * config.Camera.TurnSpeed * frameSeconds())
		}

		pred.View.Follow(pred.Body.Position())
	}
}
