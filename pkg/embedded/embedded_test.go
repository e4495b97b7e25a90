package embedded

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func resetState() {
	dataFS = nil
	initialized = false
}

func TestIsInitialized(t *testing.T) {
	resetState()
	defer resetState()

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(fstest.MapFS{})

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

func TestReadFileNotInitialized(t *testing.T) {
	resetState()

	_, err := ReadFile("data/backdrop.yaml")
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

func TestReadFileEmbedded(t *testing.T) {
	resetState()
	defer resetState()

	Init(fstest.MapFS{
		"data/backdrop.yaml": &fstest.MapFile{Data: []byte("starfield: {}\n")},
	})

	for _, path := range []string{"data/backdrop.yaml", "./data/backdrop.yaml"} {
		data, err := ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%q) error: %v", path, err)
		}
		if string(data) != "starfield: {}\n" {
			t.Errorf("ReadFile(%q) = %q", path, data)
		}
	}

	if !Exists("data/backdrop.yaml") {
		t.Error("Exists should report embedded file")
	}
	if Exists("data/missing.yaml") {
		t.Error("Exists should not report missing embedded file")
	}

	matches, err := Glob("data/*.yaml")
	if err != nil {
		t.Fatalf("Glob error: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Glob matches = %v", matches)
	}

	if _, err := Glob("assets/*.png"); err == nil {
		t.Error("Glob outside data/ should fail")
	}
}

func TestReadFileFromDisk(t *testing.T) {
	resetState()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("lightning: {}\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	// 磁盘文件不需要初始化
	data, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%q) error: %v", path, err)
	}
	if string(data) != "lightning: {}\n" {
		t.Errorf("unexpected content %q", data)
	}
	if !Exists(path) {
		t.Error("Exists should report disk file")
	}
}
