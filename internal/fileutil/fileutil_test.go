package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestWriteAtomic(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := filepath.Join("/data", "nested", "records.json")

	if err := WriteAtomic(fsys, path, []byte("first"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteAtomic(fsys, path, []byte("second"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("content mismatch: got %q, want %q", got, "second")
	}

	entries, err := afero.ReadDir(fsys, filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestWriteAtomicOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := WriteAtomic(afero.NewOsFs(), path, []byte("a = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode mismatch: got %v", info.Mode().Perm())
	}
}

func TestReadIfExists(t *testing.T) {
	fsys := afero.NewMemMapFs()

	data, ok, err := ReadIfExists(fsys, "/missing.json")
	if err != nil || ok || data != nil {
		t.Fatalf("expected missing file to report ok=false, got (%q, %v, %v)", data, ok, err)
	}

	if err := afero.WriteFile(fsys, "/present.json", []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	data, ok, err = ReadIfExists(fsys, "/present.json")
	if err != nil || !ok || string(data) != "[]" {
		t.Fatalf("unexpected read result (%q, %v, %v)", data, ok, err)
	}
}
