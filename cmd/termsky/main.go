// Package main draws the animated backdrop in a terminal.
//
// Each character cell shows two pixels using the upper half block, colored
// with 24-bit terminal colors.
//
// Usage:
//
//	go run ./cmd/termsky [flags]
//
// Controls:
//
//	Tab        - Next scene (starfield, blackhole, layered)
//	l          - Toggle lightning
//	t          - Toggle thunder
//	q/Escape   - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/starfall/internal/audio"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/game"
	"github.com/decker502/starfall/pkg/render"
	"github.com/decker502/starfall/pkg/scenes"
)

var (
	sceneFlag   = flag.String("scene", scenes.SceneStarfield, "Start scene: starfield, blackhole or layered")
	configFlag  = flag.String("config", "", "Backdrop config YAML (default: built-in defaults)")
	scaleFlag   = flag.Float64("scale", 4, "Logical pixels per terminal pixel")
	fpsFlag     = flag.Int("fps", 30, "Frames per second")
	seedFlag    = flag.Int64("seed", 0, "Random seed (0 = time based)")
	thunderFlag = flag.Bool("thunder", false, "Play thunder (also enabled by lightning.thunder in the config)")
	logFlag     = flag.String("log", "", "Write logs to this file (the terminal is owned by the renderer)")
)

// viewer 终端查看器
type viewer struct {
	screen       tcell.Screen
	surface      *render.TerminalSurface
	sceneManager *game.SceneManager
	config       *config.BackdropConfig
	speaker      *audio.SpeakerPlayer
	lightning    bool
}

// newViewer 组装查看器；speaker 可为 nil
func newViewer(screen tcell.Screen, cfg *config.BackdropConfig, scale float64, seed int64, speaker *audio.SpeakerPlayer) *viewer {
	v := &viewer{
		screen:    screen,
		surface:   render.NewTerminalSurface(screen, scale),
		config:    cfg,
		speaker:   speaker,
		lightning: cfg.Lightning.Enabled,
	}

	factory := &scenes.Factory{Config: cfg, Seed: seed}
	if speaker != nil {
		factory.Thunder = speaker
	}
	v.sceneManager = game.NewSceneManager(factory.Create, scenes.Names()...)
	return v
}

// start 切换到启动场景并按终端尺寸布局
func (v *viewer) start(scene string) error {
	if err := v.sceneManager.SwitchTo(scene); err != nil {
		return err
	}
	v.sceneManager.Resize(v.surface.Size())
	return nil
}

// handleEvent 处理终端事件，返回 false 表示退出
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			if err := v.sceneManager.Cycle(); err != nil {
				log.Printf("[TermSky] Warning: %v", err)
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'l':
				v.toggleLightning()
			case 't':
				v.toggleThunder()
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.surface.Sync()
		v.sceneManager.Resize(v.surface.Size())
	}
	return true
}

// toggleLightning 开关闪电；之后切换的场景沿用
func (v *viewer) toggleLightning() {
	v.lightning = !v.lightning
	v.config.Lightning.Enabled = v.lightning
	if toggler, ok := v.sceneManager.GetCurrentScene().(game.LightningToggler); ok {
		toggler.SetLightningEnabled(v.lightning)
	}
}

// toggleThunder 雷声静音开关
func (v *viewer) toggleThunder() {
	if v.speaker == nil {
		return
	}
	v.speaker.SetMuted(!v.speaker.Muted())
	log.Printf("[TermSky] Thunder muted: %v", v.speaker.Muted())
}

// frame 推进并绘制一帧
func (v *viewer) frame(deltaTime float64) {
	v.sceneManager.Update(deltaTime)
	v.sceneManager.Draw(v.surface)
	v.surface.Flush()
}

// run 事件在独立 goroutine 中读取，经 channel 交给渲染循环
func (v *viewer) run(fps int) {
	interval := time.Second / time.Duration(fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !v.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			v.frame(now.Sub(last).Seconds())
			last = now
		}
	}
}

// close 关闭场景和声音
func (v *viewer) close() {
	v.sceneManager.Close()
	if v.speaker != nil {
		v.speaker.Cleanup()
	}
}

func main() {
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logFlag != "" {
		f, err := os.OpenFile(*logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if *fpsFlag <= 0 {
		fmt.Fprintf(os.Stderr, "Error: fps must be > 0\n")
		os.Exit(1)
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

	var speaker *audio.SpeakerPlayer
	if *thunderFlag || cfg.Lightning.Thunder {
		speaker = audio.NewSpeakerPlayer(rand.New(rand.NewSource(time.Now().UnixNano())), cfg.Lightning.ThunderVolume)
		if err := speaker.Initialize(); err != nil {
			// 没有声卡时静默运行
			log.Printf("[TermSky] Audio initialization failed: %v", err)
			speaker = nil
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	v := newViewer(screen, cfg, *scaleFlag, *seedFlag, speaker)
	if err := v.start(*sceneFlag); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v.run(*fpsFlag)
	v.close()
	screen.Fini()
}
