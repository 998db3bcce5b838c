package netcomponents

import (
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/yohamta/donburi"
)

type NetVelocityData struct {
	SpeedX, SpeedY, SpeedZ float64
}

var NetVelocity = donburi.NewComponentType[NetVelocityData]()

func (v NetVelocityData) Vec() gamemath.Vec3 {
	return gamemath.Vec3{X: v.SpeedX, Y: v.SpeedY, Z: v.SpeedZ}
}

func VelocityFromVec(v gamemath.Vec3) NetVelocityData {
	return NetVelocityData{SpeedX: v.X, SpeedY: v.Y, SpeedZ: v.Z}
}

// LerpNetVelocity interpolates between two velocities
func LerpNetVelocity(from, to NetVelocityData, t float64) *NetVelocityData {
	return &NetVelocityData{
		SpeedX: from.SpeedX + (to.SpeedX-from.SpeedX)*t,
		SpeedY: from.SpeedY + (to.SpeedY-from.SpeedY)*t,
		SpeedZ: from.SpeedZ + (to.SpeedZ-from.SpeedZ)*t,
	}
}
