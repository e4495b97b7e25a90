package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 查看器设置，跨会话保存
type ViewerSettings struct {
	// 场景设置
	Scene      string `yaml:"scene"`      // 上次激活的场景名称
	ConfigPath string `yaml:"configPath"` // 上次打开的配置文件，空表示内置配置

	// 效果开关
	Lightning     bool    `yaml:"lightning"`         // 闪电开关
	Thunder       *bool   `yaml:"thunder,omitempty"` // 雷声开关，nil 表示跟随配置文件
	ThunderVolume float64 `yaml:"thunderVolume"`     // 雷声音量 0.0 ~ 1.0

	// 显示设置
	Fullscreen bool `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		Scene:         "",
		ConfigPath:    "",
		Lightning:     true,
		ThunderVolume: 1.0,
		Fullscreen:    false,
	}
}

// SettingsManager 设置管理器
// 负责查看器设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager  // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不影响创建，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认设置
// 文件中缺失的字段保留默认值
func (sm *SettingsManager) Load() error {
	// 降级模式：无法持久化，使用默认设置
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.ThunderVolume = clampVolume(loaded.ThunderVolume)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *ViewerSettings {
	return sm.settings
}

// SetScene 记录当前场景
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetScene(name string) {
	sm.settings.Scene = name
}

// SetConfigPath 记录上次打开的配置文件
func (sm *SettingsManager) SetConfigPath(path string) {
	sm.settings.ConfigPath = path
}

// SetLightning 设置闪电开关
func (sm *SettingsManager) SetLightning(enabled bool) {
	sm.settings.Lightning = enabled
}

// SetThunder 设置雷声开关
func (sm *SettingsManager) SetThunder(enabled bool) {
	sm.settings.Thunder = &enabled
}

// ThunderEnabled 返回用户选择的雷声开关，未选择过时返回 fallback
func (s *ViewerSettings) ThunderEnabled(fallback bool) bool {
	if s.Thunder == nil {
		return fallback
	}
	return *s.Thunder
}

// SetThunderVolume 设置雷声音量，限制在 0.0 ~ 1.0 范围内
func (sm *SettingsManager) SetThunderVolume(volume float64) {
	sm.settings.ThunderVolume = clampVolume(volume)
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
