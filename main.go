package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/starfall/pkg/app"
	"github.com/decker502/starfall/pkg/embedded"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Backdrop config YAML (default: last opened or built-in)")
	sceneFlag   = flag.String("scene", "", "Start scene: starfield, blackhole or layered")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	embedded.Init(dataFS)

	application, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Scene:      *sceneFlag,
		Seed:       *seedFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	window := application.WindowConfig()
	ebiten.SetWindowSize(window.Width, window.Height)
	ebiten.SetWindowTitle(window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(application.Fullscreen())

	if err := ebiten.RunGame(application); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	application.Close()
}
