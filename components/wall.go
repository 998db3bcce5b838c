package components

import (
	"github.com/automoto/doomerang-predict/shared/leveldata"
	"github.com/yohamta/donburi"
)

type WallData struct {
	leveldata.WallRect
}

var Wall = donburi.NewComponentType[WallData]()
