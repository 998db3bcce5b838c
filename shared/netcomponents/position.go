package netcomponents

import (
	"github.com/automoto/doomerang-predict/shared/gamemath"
	"github.com/yohamta/donburi"
)

type NetPositionData struct {
	X, Y, Z float64
}

var NetPosition = donburi.NewComponentType[NetPositionData]()

func (p NetPositionData) Vec() gamemath.Vec3 {
	return gamemath.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

func PositionFromVec(v gamemath.Vec3) NetPositionData {
	return NetPositionData{X: v.X, Y: v.Y, Z: v.Z}
}

// LerpNetPosition interpolates between two positions
func LerpNetPosition(from, to NetPositionData, t float64) *NetPositionData {
	return &NetPositionData{
		X: from.X + (to.X-from.X)*t,
		Y: from.Y + (to.Y-from.Y)*t,
		Z: from.Z + (to.Z-from.Z)*t,
	}
}
