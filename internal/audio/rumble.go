// Package audio 合成闪电雷声
//
// Rumble 是一个 beep.Streamer：低通滤波的噪声乘以起伏衰减包络。
// 终端查看器直接交给 beep/speaker 播放；
// 窗口模式通过 PCMStream 转成 16 位 PCM 交给 ebiten/audio。
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	// SampleRate 雷声采样率
	SampleRate = beep.SampleRate(48000)

	rumbleDuration = 2500 * time.Millisecond
	rumbleAttack   = 0.02 // 秒
	rumbleDecay    = 0.8  // 秒，指数衰减时间常数
	rumbleCutoff   = 140  // Hz
	rumbleRollHz   = 1.7
	rumbleGain     = 6
)

// NoiseSource 噪声来源，*rand.Rand 满足此接口
type NoiseSource interface {
	Float64() float64
}

// Rumble 雷声合成器
type Rumble struct {
	noise    NoiseSource
	volume   float64
	rate     beep.SampleRate
	total    int
	position int

	alpha    float64 // 一阶低通系数
	filtered float64
}

// NewRumble 创建一段雷声，volume 范围 [0, 1]
func NewRumble(noise NoiseSource, volume float64) *Rumble {
	return &Rumble{
		noise:  noise,
		volume: math.Max(0, math.Min(1, volume)),
		rate:   SampleRate,
		total:  SampleRate.N(rumbleDuration),
		alpha:  1 - math.Exp(-2*math.Pi*rumbleCutoff/float64(SampleRate)),
	}
}

// Len 返回总采样数
func (r *Rumble) Len() int {
	return r.total
}

// Stream 实现 beep.Streamer
func (r *Rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if r.position >= r.total {
			return i, i > 0
		}

		white := r.noise.Float64()*2 - 1
		r.filtered += r.alpha * (white - r.filtered)

		t := float64(r.position) / float64(r.rate)
		val := r.filtered * rumbleGain * r.volume * envelope(t)
		val = math.Max(-1, math.Min(1, val))

		samples[i][0] = val
		samples[i][1] = val
		r.position++
	}
	return len(samples), true
}

// Err 实现 beep.Streamer
func (r *Rumble) Err() error { return nil }

// envelope 快速起音、指数衰减，并叠加缓慢的滚动起伏
func envelope(t float64) float64 {
	attack := math.Min(t/rumbleAttack, 1)
	decay := math.Exp(-t / rumbleDecay)
	roll := 0.6 + 0.4*math.Sin(2*math.Pi*rumbleRollHz*t)
	return attack * decay * roll
}
