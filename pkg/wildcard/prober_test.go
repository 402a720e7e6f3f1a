// SPDX-License-Identifier: MPL-2.0

package wildcard

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestOSProberListsOnlyDirectories(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"2019.4.16f1", "2021.1.0a3"} {
		if err := os.Mkdir(filepath.Join(root, dir), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	names, err := NewOSProber().ListDirs(root)
	if err != nil {
		t.Fatalf("ListDirs() error = %v", err)
	}
	slices.Sort(names)
	want := []string{"2019.4.16f1", "2021.1.0a3"}
	if !slices.Equal(names, want) {
		t.Errorf("ListDirs() = %v, want %v", names, want)
	}
}

func TestOSProberMemoizesListings(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	victim := filepath.Join(root, "2019.4.16f1")
	if err := os.Mkdir(victim, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	probe := NewOSProber()
	if _, err := probe.ListDirs(root); err != nil {
		t.Fatalf("ListDirs() error = %v", err)
	}

	// Removing the directory must not affect the cached listing.
	if err := os.Remove(victim); err != nil {
		t.Fatalf("remove: %v", err)
	}
	names, err := probe.ListDirs(root)
	if err != nil {
		t.Fatalf("ListDirs() error = %v", err)
	}
	if !slices.Contains(names, "2019.4.16f1") {
		t.Errorf("ListDirs() = %v, want cached listing containing %q", names, "2019.4.16f1")
	}
}

func TestOSProberReportsUnreadableDirectory(t *testing.T) {
	t.Parallel()

	_, err := NewOSProber().ListDirs(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("ListDirs() error = nil, want error for missing directory")
	}
}

func TestResolveAgainstRealFilesystem(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, dir := range []string{"2019.4.9f1", "2019.4.16f1", "2020.1.0b2"} {
		if err := os.MkdirAll(filepath.Join(root, dir, "Editor"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	got, err := Resolve(filepath.ToSlash(root)+"/2019.*/Editor", NewOSProber())
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	want := filepath.Join(root, "2019.4.9f1", "Editor")
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}
