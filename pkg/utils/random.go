package utils

import (
	"math/rand"
	"time"
)

// RandomSource 随机数来源
//
// 所有随机视觉参数（星星位置、闪电抖动、粒子路径点）都从注入的 RandomSource 读取，
// 测试中传入固定种子即可复现。*rand.Rand 满足此接口。
type RandomSource interface {
	Float64() float64
}

// NewRandomSource 创建随机数来源
// seed 为 0 时使用当前时间作为种子
func NewRandomSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandomSign 以 50% 概率返回 1 或 -1
func RandomSign(rng RandomSource) float64 {
	if rng.Float64() > 0.5 {
		return 1
	}
	return -1
}
