package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// writeCheckFile 可写性检查时临时写入的文件名
const writeCheckFile = ".write_test"

// ensureWritableDir 创建目录并确认当前进程可以在其中写文件
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	check := filepath.Join(dir, writeCheckFile)
	if err := os.WriteFile(check, nil, 0644); err != nil {
		return fmt.Errorf("directory %s is not writable: %w", dir, err)
	}
	return os.Remove(check)
}

// packageFromCmdline 从 /proc/self/cmdline 的内容解析进程所属的应用包名
//
// cmdline 各参数以 NUL 分隔，第一个参数是进程名；
// 独立进程的名字形如 "com.example.app:remote"，冒号后的部分不属于包名。
func packageFromCmdline(data []byte) (string, error) {
	name, _, _ := bytes.Cut(data, []byte{0})
	name = bytes.TrimSpace(name)
	name, _, _ = bytes.Cut(name, []byte{':'})
	if len(name) == 0 {
		return "", fmt.Errorf("empty process name in cmdline")
	}
	return string(name), nil
}
