package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	thunder "github.com/decker502/starfall/internal/audio"
)

// ThunderPlayer 闪电出现时播放雷声
type ThunderPlayer interface {
	PlayThunder()
}

// AudioThunderPlayer 通过 ebiten/audio 播放合成雷声
type AudioThunderPlayer struct {
	context *audio.Context
	noise   thunder.NoiseSource
	volume  float64
	enabled bool

	// 保留仍在播放的播放器，结束后在下一次播放时回收
	players []*audio.Player
}

// NewAudioThunderPlayer 创建雷声播放器
//
// 参数：
//   - context: 采样率必须为 thunder.SampleRate
//   - noise: 噪声来源
//   - volume: 音量 0.0 ~ 1.0
func NewAudioThunderPlayer(context *audio.Context, noise thunder.NoiseSource, volume float64) *AudioThunderPlayer {
	return &AudioThunderPlayer{
		context: context,
		noise:   noise,
		volume:  clampVolume(volume),
		enabled: true,
	}
}

// SetEnabled 雷声开关
func (p *AudioThunderPlayer) SetEnabled(enabled bool) {
	p.enabled = enabled
	if enabled {
		return
	}
	for _, player := range p.players {
		player.Pause()
	}
	p.players = nil
}

// Enabled 是否开启雷声
func (p *AudioThunderPlayer) Enabled() bool {
	return p.enabled
}

// SetVolume 设置音量，只影响之后播放的雷声
func (p *AudioThunderPlayer) SetVolume(volume float64) {
	p.volume = clampVolume(volume)
}

// PlayThunder 合成并播放一段雷声
func (p *AudioThunderPlayer) PlayThunder() {
	if !p.enabled || p.context == nil {
		return
	}

	p.recycle()

	pcm := thunder.NewPCMStream(thunder.NewRumble(p.noise, p.volume))
	player := p.context.NewPlayerFromBytes(pcm.Bytes())
	player.Play()
	p.players = append(p.players, player)

	log.Printf("[ThunderPlayer] 播放雷声 (%d bytes, volume %.2f)", pcm.Length(), p.volume)
}

// recycle 丢弃已经播放完的播放器
func (p *AudioThunderPlayer) recycle() {
	active := p.players[:0]
	for _, player := range p.players {
		if player.IsPlaying() {
			active = append(active, player)
		}
	}
	p.players = active
}
