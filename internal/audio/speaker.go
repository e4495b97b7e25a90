package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Format 雷声缓冲格式：立体声 16 位
var Format = beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

// Render 在调用方 goroutine 上合成一段雷声并缓存
// 噪声源只在这里被读取，播放线程不再触碰它
func Render(noise NoiseSource, volume float64) *beep.Buffer {
	buf := beep.NewBuffer(Format)
	buf.Append(NewRumble(noise, volume))
	return buf
}

// SpeakerPlayer 通过 beep/speaker 播放雷声，供终端查看器使用
type SpeakerPlayer struct {
	mu          sync.Mutex
	noise       NoiseSource
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSpeakerPlayer 创建播放器，需调用 Initialize 打开声卡
func NewSpeakerPlayer(noise NoiseSource, volume float64) *SpeakerPlayer {
	return &SpeakerPlayer{
		noise:  noise,
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Initialize 初始化 speaker 并挂上混音器，可重复调用
func (sp *SpeakerPlayer) Initialize() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		return nil
	}

	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sp.mixer)
	sp.initialized = true
	return nil
}

// SetMuted 静音开关
func (sp *SpeakerPlayer) SetMuted(muted bool) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	sp.muted = muted
}

// Muted 是否静音
func (sp *SpeakerPlayer) Muted() bool {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.muted
}

// PlayThunder 播放一段雷声；未初始化或静音时忽略
func (sp *SpeakerPlayer) PlayThunder() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized || sp.muted {
		return
	}

	buf := Render(sp.noise, sp.volume)
	speaker.Lock()
	sp.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// Cleanup 停止所有声音
func (sp *SpeakerPlayer) Cleanup() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}

	speaker.Clear()
	sp.initialized = false
}
