package systems

import (
	"github.com/automoto/doomerang-predict/components"
	"github.com/automoto/doomerang-predict/shared/netcomponents"
	"github.com/automoto/doomerang-predict/shared/netconfig"
	"github.com/automoto/doomerang-predict/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/filter"
)

var remotePlayers = donburi.NewQuery(filter.And(
	filter.Contains(tags.Player, components.NetInterp, netcomponents.NetPosition),
	filter.Not(filter.Contains(tags.LocalPlayer)),
))

// NewNetInterpSystem returns an update system that moves remote players
// between their last two snapshots, one server tick per leg.
func NewNetInterpSystem(tuning netconfig.PredictionConfig) func(*ecs.ECS) {
	leg := tuning.ReplayStep()
	return func(e *ecs.ECS) {
		step := frameSeconds() / leg
		remotePlayers.Each(e.World, func(entry *donburi.Entry) {
			interp := components.NetInterp.Get(entry)
			if !interp.Initialized {
				return
			}
			netcomponents.NetPosition.SetValue(entry, netcomponents.PositionFromVec(interp.Advance(step, leg)))
		})
	}
}
