package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "out.txt")

	if err := WriteFileAtomic(p, []byte("hello")); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "hello" {
		t.Errorf("content = %q", raw)
	}

	// overwrite goes through the same rename path
	if err := WriteFileAtomic(p, []byte("world")); err != nil {
		t.Fatal(err)
	}
	raw, _ = os.ReadFile(p)
	if string(raw) != "world" {
		t.Errorf("content after rewrite = %q", raw)
	}

	// no temp files left behind
	entries, err := os.ReadDir(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

func TestExistsAndIsDir(t *testing.T) {
	tmp := t.TempDir()
	if !IsDir(tmp) {
		t.Error("tempdir should be a dir")
	}
	p := filepath.Join(tmp, "f")
	if Exists(p) {
		t.Error("file should not exist yet")
	}
	os.WriteFile(p, []byte("x"), 0o644)
	if !Exists(p) {
		t.Error("file should exist")
	}
	if IsDir(p) {
		t.Error("file is not a dir")
	}
}
