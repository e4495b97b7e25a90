//go:build !mobile

// 桌面构建下的占位：真正的绑定入口在 mobile.go，只有 -tags mobile 时编译。
package mobile

// Dummy 空导出函数，让包在桌面构建时也能被引用
func Dummy() {}
