package fsutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/cctok/pkg/fsutil"
)

// realDir resolves platform symlinks in temp dirs (e.g. /var -> /private/var).
func realDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("eval temp dir: %v", err)
	}
	return dir
}

func fold(path string) string {
	if fsutil.CaseInsensitive() {
		return strings.ToLower(path)
	}
	return path
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	t.Run("relative path resolved against base", func(t *testing.T) {
		t.Parallel()

		dir := realDir(t)
		if err := os.MkdirAll(filepath.Join(dir, "src"), 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, err := fsutil.Canonicalize("src/../src/./a.c", dir)
		if err != nil {
			t.Fatalf("Canonicalize() error = %v", err)
		}

		want := fold(filepath.Join(dir, "src", "a.c"))
		if got != want {
			t.Errorf("Canonicalize() = %q, want %q", got, want)
		}
	})

	t.Run("symlinked directory resolves to target", func(t *testing.T) {
		t.Parallel()

		dir := realDir(t)
		target := filepath.Join(dir, "real")
		link := filepath.Join(dir, "link")
		if err := os.MkdirAll(target, 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(filepath.Join(target, "a.c"), []byte("int x;"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		viaLink, err := fsutil.Canonicalize(filepath.Join(link, "a.c"), "")
		if err != nil {
			t.Fatalf("Canonicalize(link) error = %v", err)
		}
		direct, err := fsutil.Canonicalize(filepath.Join(target, "a.c"), "")
		if err != nil {
			t.Fatalf("Canonicalize(target) error = %v", err)
		}

		if viaLink != direct {
			t.Errorf("link path %q != target path %q", viaLink, direct)
		}
	})

	t.Run("missing file keeps resolved ancestor", func(t *testing.T) {
		t.Parallel()

		dir := realDir(t)
		target := filepath.Join(dir, "real")
		link := filepath.Join(dir, "link")
		if err := os.MkdirAll(target, 0755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.Symlink(target, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		got, err := fsutil.Canonicalize(filepath.Join(link, "gen", "out.c"), "")
		if err != nil {
			t.Fatalf("Canonicalize() error = %v", err)
		}

		want := fold(filepath.Join(target, "gen", "out.c"))
		if got != want {
			t.Errorf("Canonicalize() = %q, want %q", got, want)
		}
	})

	t.Run("empty path is an error", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.Canonicalize("", "/"); err == nil {
			t.Fatal("expected error for empty path")
		}
	})
}
