// SPDX-License-Identifier: MPL-2.0

package source_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"typedump/internal/layout"
	"typedump/internal/render/source"
	"typedump/internal/testutil"
	"typedump/pkg/dumpopts"
	"typedump/pkg/typemodel"
)

// mustNotExist fails the test when path exists.
func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("%s exists, want absent (stat err = %v)", path, err)
	}
}

func TestWriteByNamespace(t *testing.T) {
	t.Parallel()

	t.Run("nested directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteByNamespace(filepath.Join(dir, "dump.cs"), dumpopts.OrderIndex.Comparator(), false); err != nil {
			t.Fatalf("WriteByNamespace() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump")
		core := string(testutil.MustReadFile(t, filepath.Join(root, "Game", "Core.cs")))
		indexOf(t, core, "struct Apple")
		indexOf(t, core, "class Zebra")
		if strings.Contains(core, "Logger") || strings.Contains(core, "Anchor") {
			t.Error("namespace artifact contains types from other namespaces")
		}

		testutil.MustReadFile(t, filepath.Join(root, "System", "Diagnostics.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "-.cs"))
	})

	t.Run("flattened", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteByNamespace(filepath.Join(dir, "dump.cs"), dumpopts.OrderIndex.Comparator(), true); err != nil {
			t.Fatalf("WriteByNamespace() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump")
		testutil.MustReadFile(t, filepath.Join(root, "Game.Core.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "System.Diagnostics.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "-.cs"))
		mustNotExist(t, filepath.Join(root, "Game"))
	})

	t.Run("entries within a namespace follow the comparator", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteByNamespace(filepath.Join(dir, "dump.cs"), dumpopts.OrderName.Comparator(), true); err != nil {
			t.Fatalf("WriteByNamespace() error = %v, want nil", err)
		}

		core := string(testutil.MustReadFile(t, filepath.Join(dir, "dump", "Game.Core.cs")))
		if indexOf(t, core, "struct Apple") > indexOf(t, core, "class Zebra") {
			t.Error("name order violated within the namespace artifact")
		}
	})
}

func TestWriteByAssembly(t *testing.T) {
	t.Parallel()

	t.Run("inline attributes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteByAssembly(filepath.Join(dir, "dump.cs"), dumpopts.OrderIndex.Comparator(), false); err != nil {
			t.Fatalf("WriteByAssembly() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump")
		main := string(testutil.MustReadFile(t, filepath.Join(root, "Assembly-CSharp.cs")))
		indexOf(t, main, `[assembly: AssemblyTitle("Assembly-CSharp")]`)
		indexOf(t, main, "class Zebra")
		indexOf(t, main, "enum Anchor")

		corlib := string(testutil.MustReadFile(t, filepath.Join(root, "mscorlib.cs")))
		indexOf(t, corlib, "class Logger")
		if strings.Contains(corlib, "[assembly:") {
			t.Error("attribute text leaked into another assembly's artifact")
		}

		mustNotExist(t, filepath.Join(root, "Assembly-CSharp.AssemblyInfo.cs"))
	})

	t.Run("separate attributes", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteByAssembly(filepath.Join(dir, "dump.cs"), dumpopts.OrderIndex.Comparator(), true); err != nil {
			t.Fatalf("WriteByAssembly() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump")
		main := string(testutil.MustReadFile(t, filepath.Join(root, "Assembly-CSharp.cs")))
		if strings.Contains(main, "[assembly:") {
			t.Error("attribute text inlined despite separation")
		}
		info := string(testutil.MustReadFile(t, filepath.Join(root, "Assembly-CSharp.AssemblyInfo.cs")))
		indexOf(t, info, `[assembly: AssemblyTitle("Assembly-CSharp")]`)
	})
}

func TestWriteByClass(t *testing.T) {
	t.Parallel()

	t.Run("namespace directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteByClass(filepath.Join(dir, "dump.cs"), false); err != nil {
			t.Fatalf("WriteByClass() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump")
		testutil.MustReadFile(t, filepath.Join(root, "Game", "Core", "Zebra.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "Game", "Core", "Apple.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "System", "Diagnostics", "Logger.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "-", "Anchor.cs"))
	})

	t.Run("flattened full names", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteByClass(filepath.Join(dir, "dump.cs"), true); err != nil {
			t.Fatalf("WriteByClass() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump")
		testutil.MustReadFile(t, filepath.Join(root, "Game.Core.Zebra.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "Anchor.cs"))
		mustNotExist(t, filepath.Join(root, "Game"))
	})

	t.Run("colliding names get the index suffix", func(t *testing.T) {
		t.Parallel()

		model := &typemodel.Model{
			Image: "a.dll",
			Entries: []typemodel.TypeEntry{
				{Index: 10, Name: "Dup", Kind: typemodel.KindClass},
				{Index: 11, Name: "Dup", Kind: typemodel.KindClass},
			},
		}
		dir := t.TempDir()
		r := source.NewRenderer(model, layout.RenderOptions{})
		if err := r.WriteByClass(filepath.Join(dir, "dump.cs"), false); err != nil {
			t.Fatalf("WriteByClass() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump", "-")
		first := string(testutil.MustReadFile(t, filepath.Join(root, "Dup.cs")))
		second := string(testutil.MustReadFile(t, filepath.Join(root, "Dup.11.cs")))
		indexOf(t, first, "TypeDefIndex: 10")
		indexOf(t, second, "TypeDefIndex: 11")
	})
}

func TestWriteClassTree(t *testing.T) {
	t.Parallel()

	t.Run("assembly then namespace nesting", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteClassTree(filepath.Join(dir, "dump.cs"), false); err != nil {
			t.Fatalf("WriteClassTree() error = %v, want nil", err)
		}

		root := filepath.Join(dir, "dump")
		testutil.MustReadFile(t, filepath.Join(root, "Assembly-CSharp", "Game", "Core", "Zebra.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "Assembly-CSharp", "-", "Anchor.cs"))
		testutil.MustReadFile(t, filepath.Join(root, "mscorlib", "System", "Diagnostics", "Logger.cs"))
		mustNotExist(t, filepath.Join(root, "Assembly-CSharp", "AssemblyInfo.cs"))
	})

	t.Run("separate attributes emit per-assembly artifacts", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{})
		if err := r.WriteClassTree(filepath.Join(dir, "dump.cs"), true); err != nil {
			t.Fatalf("WriteClassTree() error = %v, want nil", err)
		}

		info := string(testutil.MustReadFile(t, filepath.Join(dir, "dump", "Assembly-CSharp", "AssemblyInfo.cs")))
		indexOf(t, info, `[assembly: AssemblyTitle("Assembly-CSharp")]`)
	})

	t.Run("exclusions apply to file-per-type layouts", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		r := source.NewRenderer(testModel(), layout.RenderOptions{ExcludedNamespaces: []string{"System"}})
		if err := r.WriteClassTree(filepath.Join(dir, "dump.cs"), false); err != nil {
			t.Fatalf("WriteClassTree() error = %v, want nil", err)
		}

		mustNotExist(t, filepath.Join(dir, "dump", "mscorlib"))
		testutil.MustReadFile(t, filepath.Join(dir, "dump", "Assembly-CSharp", "Game", "Core", "Zebra.cs"))
	})
}

func TestTreeRootKeepsDotfileBase(t *testing.T) {
	t.Parallel()

	// A dotfile-named plan has no extension to strip; the grouped layouts
	// treat the whole name as the root directory.
	dir := t.TempDir()
	r := source.NewRenderer(testModel(), layout.RenderOptions{})
	if err := r.WriteByClass(filepath.Join(dir, ".dump"), true); err != nil {
		t.Fatalf("WriteByClass() error = %v, want nil", err)
	}
	testutil.MustReadFile(t, filepath.Join(dir, ".dump", "Anchor.cs"))
}
