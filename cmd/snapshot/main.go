// Package main renders a single backdrop frame to PNG or SVG without a window.
//
// Usage:
//
//	go run ./cmd/snapshot [flags]
//
// Flags:
//
//	--scene <name>     starfield, blackhole or layered (default starfield)
//	--config <path>    Backdrop config YAML (default: built-in defaults)
//	--width/--height   Frame size in pixels
//	--seconds <n>      Simulated time before the frame is captured
//	--seed <n>         Random seed
//	--strike           Force a lightning strike at its peak in the captured frame
//	--out <path>       Output file, .png or .svg
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/game"
	"github.com/decker502/starfall/pkg/render"
	"github.com/decker502/starfall/pkg/scenes"
	"github.com/decker502/starfall/pkg/utils"
)

var (
	sceneFlag   = flag.String("scene", scenes.SceneStarfield, "Scene to render: starfield, blackhole or layered")
	configFlag  = flag.String("config", "", "Backdrop config YAML (default: built-in defaults)")
	widthFlag   = flag.Int("width", 1280, "Frame width in pixels")
	heightFlag  = flag.Int("height", 720, "Frame height in pixels")
	secondsFlag = flag.Float64("seconds", 3, "Simulated seconds before capture")
	fpsFlag     = flag.Int("fps", 60, "Simulation ticks per second")
	seedFlag    = flag.Int64("seed", 1, "Random seed")
	strikeFlag  = flag.Bool("strike", false, "Force a lightning strike into the frame")
	outFlag     = flag.String("out", "snapshot.png", "Output file (.png or .svg)")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

// options 一次快照的参数
type options struct {
	Scene   string
	Config  *config.BackdropConfig
	Width   int
	Height  int
	Seconds float64
	FPS     int
	Seed    int64
	Strike  bool
	Format  string // "png" 或 "svg"
}

// strikePeak 强制闪电后推进的时间，落在包络的保持段
const strikePeak = 0.2

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultBackdropConfig()
	if *configFlag != "" {
		loaded, err := config.LoadBackdropConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	format, err := formatFromPath(*outFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Create(*outFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create %s: %v\n", *outFlag, err)
		os.Exit(1)
	}

	err = run(options{
		Scene:   *sceneFlag,
		Config:  cfg,
		Width:   *widthFlag,
		Height:  *heightFlag,
		Seconds: *secondsFlag,
		FPS:     *fpsFlag,
		Seed:    *seedFlag,
		Strike:  *strikeFlag,
		Format:  format,
	}, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s (%dx%d, %s, %.1fs)\n", *outFlag, *widthFlag, *heightFlag, *sceneFlag, *secondsFlag)
}

// formatFromPath 根据扩展名选择输出格式
func formatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", nil
	case ".svg":
		return "svg", nil
	default:
		return "", fmt.Errorf("unsupported output extension %q (want .png or .svg)", filepath.Ext(path))
	}
}

// run 模拟场景并把最后一帧写到 w
func run(opts options, w io.Writer) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		return fmt.Errorf("fps must be > 0, got %d", opts.FPS)
	}

	factory := &scenes.Factory{
		Config:   opts.Config,
		Seed:     opts.Seed,
		NewClock: func() *utils.FrameClock { return utils.NewFrameClock(0) },
	}
	scene, err := factory.Create(opts.Scene)
	if err != nil {
		return err
	}
	defer scene.Close()

	scene.Resize(opts.Width, opts.Height)
	simulate(scene, opts.Seconds, opts.FPS)

	if opts.Strike {
		if starfield := starfieldOf(scene); starfield != nil {
			starfield.Lightning().Spawn()
			scene.Update(strikePeak)
		}
	}

	switch opts.Format {
	case "png":
		surface := render.NewRasterSurface(opts.Width, opts.Height)
		defer surface.Close()
		scene.Draw(surface)
		return surface.EncodePNG(w)
	case "svg":
		surface := render.NewSVGSurface(w, opts.Width, opts.Height)
		scene.Draw(surface)
		surface.End()
		return nil
	default:
		return fmt.Errorf("unsupported format %q", opts.Format)
	}
}

// simulate 以固定步长推进场景
func simulate(scene game.Scene, seconds float64, fps int) {
	dt := 1.0 / float64(fps)
	frames := int(seconds * float64(fps))
	for i := 0; i < frames; i++ {
		scene.Update(dt)
	}
}

// starfieldOf 找到场景中的星空层
func starfieldOf(scene game.Scene) *scenes.StarfieldScene {
	switch s := scene.(type) {
	case *scenes.StarfieldScene:
		return s
	case *scenes.LayeredScene:
		return s.Background()
	default:
		return nil
	}
}
