//go:build !android

package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStorageDefault(t *testing.T) {
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() = %v, want nil", err)
	}
	if path := GetStoragePath(); path != "" {
		t.Errorf("GetStoragePath() = %q, want empty", path)
	}
}

func TestPackageFromCmdline(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{"主进程", "com.decker502.starfall\x00", "com.decker502.starfall", false},
		{"带参数", "com.decker502.starfall\x00--flag\x00", "com.decker502.starfall", false},
		{"独立进程", "com.decker502.starfall:audio\x00", "com.decker502.starfall", false},
		{"空内容", "", "", true},
		{"只有分隔符", "\x00\x00", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := packageFromCmdline([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("package = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEnsureWritableDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "settings", "nested")

	if err := ensureWritableDir(dir); err != nil {
		t.Fatalf("ensureWritableDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
	// 检查文件不残留
	if _, err := os.Stat(filepath.Join(dir, writeCheckFile)); !os.IsNotExist(err) {
		t.Error("write check file should be removed")
	}
	// 已存在时再次调用成功
	if err := ensureWritableDir(dir); err != nil {
		t.Errorf("second call failed: %v", err)
	}

	// 路径被普通文件占用时报错
	blocked := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocked, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := ensureWritableDir(blocked); err == nil {
		t.Error("expected error when path is a regular file")
	}
}
