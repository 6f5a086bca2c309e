package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		nested := filepath.Join(base, "a", "b", "c")
		if err := EnsureDir(nested); err != nil {
			t.Fatalf("EnsureDir: %v", err)
		}
		info, err := os.Stat(nested)
		if err != nil {
			t.Fatalf("stat created dir: %v", err)
		}
		if !info.IsDir() {
			t.Error("created path is not a directory")
		}
	})

	t.Run("existing directory is not an error", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		if err := EnsureDir(base); err != nil {
			t.Fatalf("EnsureDir on existing dir: %v", err)
		}
	})

	t.Run("file in the way is an error", func(t *testing.T) {
		t.Parallel()

		base := t.TempDir()
		file := filepath.Join(base, "occupied")
		if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
			t.Fatalf("write file: %v", err)
		}
		if err := EnsureDir(filepath.Join(file, "child")); err == nil {
			t.Error("expected error creating dir under a regular file")
		}
	})
}

func TestEnsureDirForFile(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	target := filepath.Join(base, "logs", "server-stdout.log")
	if err := EnsureDirForFile(target); err != nil {
		t.Fatalf("EnsureDirForFile: %v", err)
	}
	if err := os.WriteFile(target, []byte("ok"), 0o600); err != nil {
		t.Fatalf("file not creatable after EnsureDirForFile: %v", err)
	}
}
