package scenes

import (
	"fmt"

	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/game"
	"github.com/decker502/starfall/pkg/utils"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// 场景名称
const (
	SceneStarfield = "starfield"
	SceneBlackHole = "blackhole"
	SceneLayered   = "layered"
)

// Names 返回全部场景名称，顺序即 Tab 轮换顺序
func Names() []string {
	return []string{SceneStarfield, SceneBlackHole, SceneLayered}
}

// Factory 按名称创建场景
//
// 每次创建都使用新的实体管理器、帧时钟和随机源，场景之间不共享状态。
type Factory struct {
	Config *config.BackdropConfig

	// Seed 非 0 时每个场景用固定种子，便于复现
	Seed int64

	// Thunder 闪电出现时调用，可为 nil
	Thunder game.ThunderPlayer

	// NewClock 创建帧时钟，nil 时使用墙钟
	NewClock func() *utils.FrameClock
}

// Create 实现 game.SceneFactory
func (f *Factory) Create(name string) (game.Scene, error) {
	if f.Config == nil {
		return nil, fmt.Errorf("scene factory has no config")
	}

	newClock := f.NewClock
	if newClock == nil {
		newClock = utils.NewWallFrameClock
	}

	switch name {
	case SceneStarfield:
		return NewStarfieldScene(f.Config, utils.NewRandomSource(f.Seed), newClock(), f.Thunder), nil
	case SceneBlackHole:
		return NewBlackHoleScene(f.Config, utils.NewRandomSource(f.Seed), newClock()), nil
	case SceneLayered:
		return NewLayeredScene(
			NewStarfieldScene(f.Config, utils.NewRandomSource(f.Seed), newClock(), f.Thunder),
			NewBlackHoleScene(f.Config, utils.NewRandomSource(f.Seed), newClock()),
		), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", name)
	}
}
