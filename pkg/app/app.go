// Package app 提供查看器应用的核心包装器
//
// 该包把窗口、场景切换、按键和设置持久化组装成 ebiten.Game，
// main.go 只负责解析参数和设置窗口。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"github.com/quasilyte/gdata/v2"

	thunder "github.com/decker502/starfall/internal/audio"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/game"
	"github.com/decker502/starfall/pkg/render"
	"github.com/decker502/starfall/pkg/scenes"
	"github.com/decker502/starfall/pkg/utils"
)

// AppName gdata 存储目录名
const AppName = "starfall"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 背景配置文件，为空则使用上次打开的文件或内置配置
	ConfigPath string
	// Scene 启动场景，为空则使用上次的场景
	Scene string
	// Seed 随机种子，0 表示每次不同
	Seed int64
}

// command 查看器操作
type command int

const (
	cmdNone command = iota
	cmdCycleScene
	cmdToggleLightning
	cmdToggleThunder
	cmdOpenConfig
	cmdToggleFullscreen
	cmdQuit
)

// keyBindings 按键到操作的映射
var keyBindings = []struct {
	key ebiten.Key
	cmd command
}{
	{ebiten.KeyTab, cmdCycleScene},
	{ebiten.KeyL, cmdToggleLightning},
	{ebiten.KeyT, cmdToggleThunder},
	{ebiten.KeyO, cmdOpenConfig},
	{ebiten.KeyF11, cmdToggleFullscreen},
	{ebiten.KeyEscape, cmdQuit},
}

// thunderSwitch 可开关的雷声播放器
type thunderSwitch interface {
	game.ThunderPlayer
	SetEnabled(enabled bool)
	Enabled() bool
	SetVolume(volume float64)
}

// dialogResult 文件对话框的返回
type dialogResult struct {
	path string
	err  error
}

// App 是查看器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	config       *config.BackdropConfig
	configPath   string
	sceneManager *game.SceneManager
	factory      *scenes.Factory
	settings     *game.SettingsManager
	thunder      thunderSwitch
	surface      *render.EbitenSurface

	lightning bool
	width     int
	height    int

	// 对话框在独立 goroutine 中阻塞，结果经 channel 交回 Update
	dialogResults chan dialogResult
	dialogOpen    bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数

	// 以下字段便于测试替换
	openDialog    func() (string, error)
	setFullscreen func(bool)
}

// NewApp 创建并初始化查看器应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 设置存储不可用时降级为仅内存
	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	if path := utils.GetStoragePath(); path != "" {
		log.Printf("[App] Storage path: %s", path)
	}
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (settings will not persist)", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)

	backdrop, path, err := loadStartupConfig(cfg.ConfigPath, settings.GetSettings().ConfigPath)
	if err != nil {
		return nil, err
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(int(thunder.SampleRate))
	player := game.NewAudioThunderPlayer(audioContext, rand.New(rand.NewSource(rand.Int63())), 1)

	a := newApp(backdrop, path, settings, player, cfg.Seed)

	sceneName := cfg.Scene
	if sceneName == "" {
		sceneName = settings.GetSettings().Scene
	}
	if err := a.start(sceneName, cfg.Scene != ""); err != nil {
		return nil, err
	}

	return a, nil
}

// newApp 组装应用，不打开窗口和音频设备
func newApp(backdrop *config.BackdropConfig, path string, settings *game.SettingsManager, player thunderSwitch, seed int64) *App {
	s := settings.GetSettings()

	a := &App{
		config:        backdrop,
		configPath:    path,
		settings:      settings,
		thunder:       player,
		surface:       render.NewEbitenSurface(),
		lightning:     backdrop.Lightning.Enabled && s.Lightning,
		dialogResults: make(chan dialogResult, 1),
		openDialog:    selectConfigFile,
		setFullscreen: ebiten.SetFullscreen,
	}
	a.applyThunder()

	a.factory = &scenes.Factory{
		Config:  backdrop,
		Seed:    seed,
		Thunder: player,
	}
	a.applyLightning()
	a.sceneManager = game.NewSceneManager(a.factory.Create, scenes.Names()...)
	return a
}

// start 切换到启动场景
// explicit 为 false 时（来自设置）场景名无效则回退到星空
func (a *App) start(name string, explicit bool) error {
	if name == "" {
		name = scenes.SceneStarfield
	}
	err := a.sceneManager.SwitchTo(name)
	if err == nil {
		return nil
	}
	if explicit {
		return err
	}
	log.Printf("[App] Warning: %v, falling back to %s", err, scenes.SceneStarfield)
	return a.sceneManager.SwitchTo(scenes.SceneStarfield)
}

// loadStartupConfig 按 命令行 > 上次打开 > 内置 的顺序加载配置
// 上次打开的文件失效时回退到内置配置
func loadStartupConfig(flagPath, savedPath string) (*config.BackdropConfig, string, error) {
	if flagPath != "" {
		cfg, err := config.LoadBackdropConfig(flagPath)
		if err != nil {
			return nil, "", fmt.Errorf("配置加载失败: %w", err)
		}
		return cfg, flagPath, nil
	}

	if savedPath != "" {
		cfg, err := config.LoadBackdropConfig(savedPath)
		if err == nil {
			return cfg, savedPath, nil
		}
		log.Printf("[App] Warning: %v (using built-in config)", err)
	}

	cfg, err := config.LoadBackdropConfig(config.DefaultConfigPath)
	if err != nil {
		return nil, "", fmt.Errorf("内置配置加载失败: %w", err)
	}
	return cfg, "", nil
}

// selectConfigFile 打开系统文件对话框选择 YAML 配置
func selectConfigFile() (string, error) {
	return zenity.SelectFile(
		zenity.Title("Open Backdrop Config"),
		zenity.FileFilters{{
			Name:     "YAML",
			Patterns: []string{"*.yaml", "*.yml"},
		}},
	)
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.config.Window.Width, a.config.Window.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.config.Window.Width, a.config.Window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	for _, binding := range keyBindings {
		if inpututil.IsKeyJustPressed(binding.key) {
			if err := a.handleCommand(binding.cmd); err != nil {
				return err
			}
		}
	}

	a.pollDialog()

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// handleCommand 执行一个查看器操作
// 返回 ebiten.Termination 表示退出
func (a *App) handleCommand(cmd command) error {
	switch cmd {
	case cmdCycleScene:
		if err := a.sceneManager.Cycle(); err != nil {
			log.Printf("[App] Warning: %v", err)
			return nil
		}
		a.settings.SetScene(a.sceneManager.CurrentName())
		a.saveSettings()

	case cmdToggleLightning:
		a.lightning = !a.lightning
		a.applyLightning()
		if toggler, ok := a.sceneManager.GetCurrentScene().(game.LightningToggler); ok {
			toggler.SetLightningEnabled(a.lightning)
		}
		a.settings.SetLightning(a.lightning)
		a.saveSettings()

	case cmdToggleThunder:
		enabled := !a.thunder.Enabled()
		a.thunder.SetEnabled(enabled)
		a.settings.SetThunder(enabled)
		a.saveSettings()
		log.Printf("[App] Thunder enabled: %v", enabled)

	case cmdOpenConfig:
		a.requestConfigFile()

	case cmdToggleFullscreen:
		a.toggleFullscreen()

	case cmdQuit:
		a.Close()
		return ebiten.Termination
	}
	return nil
}

// applyThunder 按当前配置和用户设置同步雷声开关与音量
// 用户按过 T 时以设置为准，否则跟随配置文件
func (a *App) applyThunder() {
	s := a.settings.GetSettings()
	a.thunder.SetEnabled(s.ThunderEnabled(a.config.Lightning.Thunder))
	a.thunder.SetVolume(a.config.Lightning.ThunderVolume * s.ThunderVolume)
}

// applyLightning 让之后创建的场景继承当前闪电开关
func (a *App) applyLightning() {
	a.config.Lightning.Enabled = a.lightning
}

// requestConfigFile 在后台打开文件对话框，同一时间只打开一个
func (a *App) requestConfigFile() {
	if a.dialogOpen {
		return
	}
	a.dialogOpen = true
	go func() {
		path, err := a.openDialog()
		a.dialogResults <- dialogResult{path: path, err: err}
	}()
}

// pollDialog 取回对话框结果，不阻塞
func (a *App) pollDialog() {
	select {
	case res := <-a.dialogResults:
		a.dialogOpen = false
		a.applyDialogResult(res)
	default:
	}
}

// applyDialogResult 加载选中的配置并重建当前场景
func (a *App) applyDialogResult(res dialogResult) {
	if res.err != nil {
		if !errors.Is(res.err, zenity.ErrCanceled) {
			log.Printf("[App] Warning: file dialog failed: %v", res.err)
		}
		return
	}

	if err := a.ReloadConfig(res.path); err != nil {
		log.Printf("[App] Warning: %v (keeping current config)", err)
	}
}

// ReloadConfig 加载新的背景配置，并用它重建当前场景
func (a *App) ReloadConfig(path string) error {
	cfg, err := config.LoadBackdropConfig(path)
	if err != nil {
		return err
	}

	// 沿用当前闪电开关；新配置本身禁用闪电时关闭
	a.lightning = a.lightning && cfg.Lightning.Enabled
	a.config = cfg
	a.configPath = path
	a.factory.Config = cfg
	a.applyLightning()
	a.applyThunder()

	name := a.sceneManager.CurrentName()
	if name == "" {
		name = scenes.SceneStarfield
	}
	if err := a.sceneManager.SwitchTo(name); err != nil {
		return err
	}

	a.settings.SetConfigPath(path)
	a.saveSettings()
	log.Printf("[App] Reloaded config from %s", path)
	return nil
}

// toggleFullscreen F11 切换全屏
func (a *App) toggleFullscreen() {
	fullscreen := !a.settings.GetSettings().Fullscreen
	a.setFullscreen(fullscreen)
	if !fullscreen {
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}
	a.settings.SetFullscreen(fullscreen)
	a.saveSettings()
}

// saveSettings 保存失败只记录日志
func (a *App) saveSettings() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	a.surface.Bind(screen)
	a.sceneManager.Draw(a.surface)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时用背景色填充 letterbox
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 窗口即容器：逻辑尺寸等于窗口尺寸，变化时通知场景
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != a.width || outsideHeight != a.height {
		a.width, a.height = outsideWidth, outsideHeight
		a.sceneManager.Resize(outsideWidth, outsideHeight)
		log.Printf("[App] Layout %dx%d", outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close 关闭当前场景并保存设置；可重复调用
func (a *App) Close() {
	a.sceneManager.Close()
	a.saveSettings()
}

// WindowConfig 返回窗口配置
func (a *App) WindowConfig() config.WindowConfig {
	return a.config.Window
}

// Fullscreen 是否以全屏启动
func (a *App) Fullscreen() bool {
	return a.settings.GetSettings().Fullscreen
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}
