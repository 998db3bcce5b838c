package systems

import (
	"log"
	"time"

	cfg "github.com/automoto/doomerang-predict/config"
	"github.com/automoto/doomerang-predict/shared/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// NewNetworkInputSystem returns an ECS system that polls input, applies it
// locally through the prediction controller and sends the sequenced input to
// the server. Every frame is sent: the server acknowledges by sequence, so a
// skipped frame would leave a gap the client replays forever.
func NewNetworkInputSystem(sendFn func(messages.PlayerInput) error, pred *NetPrediction) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		if !pred.Ready() {
			return
		}

		if actionJustPressed(cfg.ActionAttack) {
			pred.Controller.StartAttackLock(cfg.Player.AttackLock)
		}

		dt := frameSeconds()
		intent := ReadIntent()
		seq := pred.Controller.ProcessInput(intent, dt)

		input := messages.NewPlayerInput(seq, intent)
		input.Yaw = pred.View.Yaw
		input.DeltaTime = dt
		input.Timestamp = time.Now().UnixMilli()

		if err := sendFn(input); err != nil {
			log.Printf("[netinput] send error: %v", err)
		}
	}
}

// ReadIntent samples the movement bindings for this frame.
func ReadIntent() messages.IntentSample {
	return messages.IntentSample{
		Forward:  actionPressed(cfg.ActionMoveForward),
		Backward: actionPressed(cfg.ActionMoveBackward),
		Left:     actionPressed(cfg.ActionMoveLeft),
		Right:    actionPressed(cfg.ActionMoveRight),
		Jump:     actionPressed(cfg.ActionJump),
	}
}

func actionPressed(action cfg.ActionID) bool {
	binding := cfg.Input.Bindings[action]
	for _, k := range binding.Keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}
		for _, b := range binding.StandardGamepadButtons {
			if ebiten.IsStandardGamepadButtonPressed(id, b) {
				return true
			}
		}
	}
	return false
}

func actionJustPressed(action cfg.ActionID) bool {
	binding := cfg.Input.Bindings[action]
	for _, k := range binding.Keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		for _, b := range binding.StandardGamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, b) {
				return true
			}
		}
	}
	return false
}

// frameSeconds is the fixed update step ebiten runs the game at.
func frameSeconds() float64 {
	return 1 / float64(ebiten.TPS())
}
