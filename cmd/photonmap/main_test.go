package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukaszgryglicki/photonmap/internal/photonmap"
)

const tinyScene = `{"lights": [{"type": "point", "position": [0, 1, 0]}],
 "spheres": [{"center": [0, 0, 0], "radius": 0.5}]}`

func TestRun_ProfileFlushedOnError(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PROFILE", "1")
	if err := run([]string{"missing.json"}); err == nil {
		t.Fatal("expected an error for a missing config")
	}
	st, err := os.Stat("cpu.out")
	if err != nil {
		t.Fatal(err)
	}
	if st.Size() == 0 {
		t.Fatal("cpu.out is empty, profile was not stopped")
	}
}

func TestRun_ReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	cfg := filepath.Join(dir, "tiny.json")
	if err := os.WriteFile(cfg, []byte(tinyScene), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := run([]string{"-no_such_flag"}); err == nil {
		t.Fatal("unknown flag accepted")
	}
	if err := run([]string{"-resolution", "0x4", cfg}); !errors.Is(err, photonmap.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if err := run([]string{"-max_bounces", "-3", cfg}); !errors.Is(err, photonmap.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if err := run([]string{"-merge", filepath.Join(dir, "m.png"), filepath.Join(dir, "none.raw")}); err == nil {
		t.Fatal("merge of a missing file succeeded")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
