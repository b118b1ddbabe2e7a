package install

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func buildZip(t *testing.T, dir string, files map[string]string) string {
	t.Helper()

	zipPath := filepath.Join(dir, "fixture.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip: %v", err)
	}
	defer func() { _ = f.Close() }()

	w := zip.NewWriter(f)
	for name, content := range files {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to add entry %s: %v", name, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish zip: %v", err)
	}
	return zipPath
}

func TestExtractZipFlat(t *testing.T) {
	tmp := t.TempDir()
	zipPath := buildZip(t, tmp, map[string]string{
		"deno":      "binary bytes",
		"README.md": "docs",
	})

	dest := filepath.Join(tmp, "out")
	if err := extractZip(zipPath, dest); err != nil {
		t.Fatalf("extractZip failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dest, "deno"))
	if err != nil {
		t.Fatalf("Extracted file missing: %v", err)
	}
	if string(data) != "binary bytes" {
		t.Errorf("Extracted content mismatch: %q", data)
	}
}

func TestExtractZipStripsCommonRoot(t *testing.T) {
	tmp := t.TempDir()
	zipPath := buildZip(t, tmp, map[string]string{
		"deno-2.0.0/deno":        "binary bytes",
		"deno-2.0.0/LICENSE":     "license",
		"deno-2.0.0/docs/README": "docs",
	})

	dest := filepath.Join(tmp, "out")
	if err := extractZip(zipPath, dest); err != nil {
		t.Fatalf("extractZip failed: %v", err)
	}

	// The single root folder is stripped so the executable lands
	// directly under the destination.
	if _, err := os.Stat(filepath.Join(dest, "deno")); err != nil {
		t.Errorf("Expected deno directly under dest: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "docs", "README")); err != nil {
		t.Errorf("Expected nested entry preserved: %v", err)
	}
}

func TestExtractZipMixedRootsNotStripped(t *testing.T) {
	tmp := t.TempDir()
	zipPath := buildZip(t, tmp, map[string]string{
		"deno-2.0.0/deno": "binary bytes",
		"other/file":      "x",
	})

	dest := filepath.Join(tmp, "out")
	if err := extractZip(zipPath, dest); err != nil {
		t.Fatalf("extractZip failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "deno-2.0.0", "deno")); err != nil {
		t.Errorf("Mixed-root archive should keep its layout: %v", err)
	}
}

func TestExtractZipRejectsEscape(t *testing.T) {
	tmp := t.TempDir()
	zipPath := buildZip(t, tmp, map[string]string{
		"../evil": "payload",
	})

	dest := filepath.Join(tmp, "out")
	if err := extractZip(zipPath, dest); err == nil {
		t.Fatal("Expected extraction to reject a path escaping the destination")
	}

	if _, err := os.Stat(filepath.Join(tmp, "evil")); err == nil {
		t.Error("Escaping entry was written outside the destination")
	}
}

func TestMarkExecutables(t *testing.T) {
	tmp := t.TempDir()

	if err := os.WriteFile(filepath.Join(tmp, "deno"), []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(tmp, "docs"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	if err := markExecutables(tmp); err != nil {
		t.Fatalf("markExecutables failed: %v", err)
	}

	info, err := os.Stat(filepath.Join(tmp, "deno"))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm()&0111 == 0 {
		t.Errorf("Expected executable bits set, got %v", info.Mode())
	}
}
