package systems

import (
	"log"

	cfg "github.com/automoto/doomerang-predict/config"
	"github.com/automoto/doomerang-predict/settings"
	"github.com/yohamta/donburi/ecs"
)

// NewToggleSystem returns an update system for the debug toggles. Changes are
// persisted through store so they survive a restart.
func NewToggleSystem(pred *NetPrediction, store settings.Store, saved *settings.Saved) func(*ecs.ECS) {
	return func(e *ecs.ECS) {
		changed := false

		if actionJustPressed(cfg.ActionTogglePrediction) {
			pred.SetPredictionEnabled(!pred.PredictionEnabled())
			log.Printf("[netinput] prediction enabled=%t", pred.PredictionEnabled())
			changed = true
		}
		if actionJustPressed(cfg.ActionToggleReconciliation) {
			pred.SetReconciliationEnabled(!pred.ReconciliationEnabled())
			log.Printf("[netinput] reconciliation enabled=%t", pred.ReconciliationEnabled())
			changed = true
		}
		if actionJustPressed(cfg.ActionToggleGhost) {
			cfg.Debug.ShowServerGhost = !cfg.Debug.ShowServerGhost
			changed = true
		}

		if !changed {
			return
		}
		saved.PredictionEnabled = pred.PredictionEnabled()
		saved.ReconciliationEnabled = pred.ReconciliationEnabled()
		saved.ShowServerGhost = cfg.Debug.ShowServerGhost
		if err := settings.Save(store, *saved); err != nil {
			log.Printf("Warning: Could not save settings: %v", err)
		}
	}
}
