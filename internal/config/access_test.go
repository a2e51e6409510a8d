package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDirectoryAccess_Unset(t *testing.T) {
	result := CheckDirectoryAccess("test", "")
	if !result.Passed {
		t.Fatalf("expected unset path to be skipped as passing, got: %s", result.Detail)
	}
}

func TestConfigCheckDirectories(t *testing.T) {
	cfg := Default()
	cfg.Library.TVDir = t.TempDir()
	cfg.Paths.LibraryDir = t.TempDir()
	cfg.Paths.ReviewDir = ""
	cfg.Paths.LogDir = ""

	results := cfg.CheckDirectories()
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("expected %s to pass, got: %s", r.Name, r.Detail)
		}
	}
}
