//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot 应用私有数据目录的根
const androidDataRoot = "/data/data"

// EnsureStorageDir 在 gdata.Open 之前创建 Android 上的设置目录
// gdata 使用 /data/data/{package}/ 存储，但不会预先创建子目录
func EnsureStorageDir() error {
	root, err := androidAppDir()
	if err != nil {
		return err
	}
	if err := ensureWritableDir(filepath.Join(root, "settings")); err != nil {
		return fmt.Errorf("settings storage unavailable: %w", err)
	}
	return nil
}

// GetStoragePath 返回应用的私有数据目录，仅用于日志
func GetStoragePath() string {
	root, err := androidAppDir()
	if err != nil {
		return ""
	}
	return root
}

func androidAppDir() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to detect Android app: %w", err)
	}
	pkg, err := packageFromCmdline(data)
	if err != nil {
		return "", fmt.Errorf("failed to detect Android app: %w", err)
	}
	return filepath.Join(androidDataRoot, pkg), nil
}
