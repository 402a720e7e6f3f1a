// SPDX-License-Identifier: MPL-2.0

package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"testing"

	"typedump/internal/issue"
	"typedump/internal/testutil"
	"typedump/pkg/types"

	"github.com/google/go-cmp/cmp"
)

// useTempConfigDir points the loader at an empty config directory under
// t.TempDir() and moves the working directory there, so neither a real
// user config nor a typedump.cue in the checkout leaks into the test.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	dir := filepath.Join(tmp, AppName)
	testutil.MustMkdirAll(t, dir, 0o755)
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)
	t.Cleanup(testutil.MustChdir(t, tmp))
	return dir
}

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig()

	want := &Config{
		Dump: DumpConfig{
			Layout:             LayoutSingle,
			Sort:               SortIndex,
			ExcludedNamespaces: DefaultExcludedNamespaces(),
		},
		Output: OutputConfig{
			SourceFile: "types.cs",
			ScriptFile: "script.json",
		},
		UI: UIConfig{ColorScheme: ColorSchemeAuto},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}

	if len(got.Dump.ExcludedNamespaces) == 0 {
		t.Error("default exclusion list should not be empty")
	}

	// The defaults themselves must satisfy validation.
	if isValid, errs := got.IsValid(); !isValid {
		t.Errorf("default config should be valid, got: %v", errs)
	}
}

func TestConfigDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("exercises the XDG branch")
	}

	restore := testutil.MustSetenv(t, "XDG_CONFIG_HOME", "/tmp/xdg-test")
	defer restore()

	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg-test", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}

	// Without XDG_CONFIG_HOME the directory lands under ~/.config.
	restoreUnset := testutil.MustUnsetenv(t, "XDG_CONFIG_HOME")
	defer restoreUnset()

	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir() error: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error: %v", err)
	}
	if want := filepath.Join(home, ".config", AppName); dir != want {
		t.Errorf("ConfigDir() = %s, want %s", dir, want)
	}
}

func TestLoadAndSave(t *testing.T) {
	useTempConfigDir(t)

	cfg := &Config{
		Dump: DumpConfig{
			Layout:             LayoutTree,
			Sort:               SortName,
			Flatten:            true,
			SuppressMetadata:   true,
			MustCompile:        true,
			SeparateAttrs:      true,
			ExcludedNamespaces: []NamespacePrefix{"System", "Mono"},
		},
		Toolchain: ToolchainConfig{
			Root:       `C:\Program Files\Unity\Hub\Editor\*\Editor\Data`,
			Assemblies: `C:\Program Files\Unity\Hub\Editor\*\Editor\Data\MonoBleedingEdge\lib\mono\unityaot*`,
		},
		Output: OutputConfig{
			Directory:  "/tmp/typedump-out",
			SourceFile: "dump.cs",
			ScriptFile: "addresses.json",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeDark,
			Verbose:     true,
		},
	}

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Everything Save wrote must come back, including the Windows glob
	// patterns that CUE quoting has to survive.
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("save/load round trip mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoad_ReturnsDefaultsWhenNoConfigFile(t *testing.T) {
	useTempConfigDir(t)

	cfg, resolvedPath, err := LoadWithPath(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithPath() error: %v", err)
	}

	if resolvedPath != "" {
		t.Errorf("resolved path = %q, want empty when no file is found", resolvedPath)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config without a file should equal the defaults (-want +got):\n%s", diff)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	dir := useTempConfigDir(t)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() error: %v", err)
	}

	cfgPath := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	before := testutil.MustReadFile(t, cfgPath)
	if len(before) == 0 {
		t.Fatal("generated config file is empty")
	}

	// A second call must leave the existing file untouched.
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second call: %v", err)
	}
	if after := testutil.MustReadFile(t, cfgPath); !bytes.Equal(before, after) {
		t.Error("second CreateDefaultConfig() call rewrote the file")
	}

	// The generated file must round-trip through schema validation.
	loaded, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("generated default config failed to load: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), loaded); diff != "" {
		t.Errorf("round-tripped defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentityConstants(t *testing.T) {
	if AppName != "typedump" || ConfigFileName != "typedump" || ConfigFileExt != "cue" {
		t.Errorf("config file identity changed: app %q, file %q.%q", AppName, ConfigFileName, ConfigFileExt)
	}
	if EnvPrefix != "TYPEDUMP" {
		t.Errorf("EnvPrefix = %q; changing it breaks every documented TYPEDUMP_* override", EnvPrefix)
	}
}

func TestLoad_ActionableErrorFormat(t *testing.T) {
	dir := useTempConfigDir(t)

	// Wrong type for dump.layout: schema unification must fail.
	cfgPath := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	testutil.MustWriteFile(t, cfgPath, []byte(`dump: layout: 123`))

	_, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err == nil {
		t.Fatal("expected Load() to fail for a mistyped config")
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "load configuration") {
		t.Errorf("error should name the operation, got: %s", errStr)
	}
	if !strings.Contains(errStr, cfgPath) {
		t.Errorf("error should name the offending file, got: %s", errStr)
	}
}

func TestLoad_CustomPath_Valid(t *testing.T) {
	tmpDir := t.TempDir()
	customPath := filepath.Join(tmpDir, "custom-typedump.cue")

	validConfig := `dump: {
	layout: "namespace"
	sort: "name"
}
`
	testutil.MustWriteFile(t, customPath, []byte(validConfig))

	restoreWd := testutil.MustChdir(t, tmpDir)
	defer restoreWd()

	cfg, resolvedPath, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(customPath),
	})
	if err != nil {
		t.Fatalf("LoadWithPath() error: %v", err)
	}

	if cfg.Dump.Layout != LayoutNamespace || cfg.Dump.Sort != SortName {
		t.Errorf("custom file values not applied: layout=%s sort=%s", cfg.Dump.Layout, cfg.Dump.Sort)
	}
	if cfg.Output.SourceFile != "types.cs" {
		t.Errorf("fields absent from the file should keep defaults, got source_file=%q", cfg.Output.SourceFile)
	}
	if resolvedPath != customPath {
		t.Errorf("resolved path = %s, want %s", resolvedPath, customPath)
	}
}

func TestLoad_CustomPath_NotFound_ReturnsError(t *testing.T) {
	missing := "/this/path/does/not/exist/typedump.cue"

	_, err := NewProvider().Load(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(missing),
	})
	if err == nil {
		t.Fatal("expected Load() to fail for a missing --config file")
	}

	errStr := err.Error()
	for _, want := range []string{"load configuration", missing, "config file not found"} {
		if !strings.Contains(errStr, want) {
			t.Errorf("error missing %q, got: %s", want, errStr)
		}
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("expected error to be *issue.ActionableError")
	}
	wantSuggestion := "Double-check the --config path"
	hasSuggestion := slices.ContainsFunc(ae.Suggestions, func(s string) bool {
		return strings.Contains(s, wantSuggestion)
	})
	if !hasSuggestion {
		t.Errorf("suggestions missing %q, got: %v", wantSuggestion, ae.Suggestions)
	}
}

func TestLoad_RejectsBadConfigFiles(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantTokens []string // substrings the error message must carry
		wantPath   bool     // the offending file must be named
	}{
		{
			name:       "broken CUE syntax",
			content:    `this is not valid CUE syntax {{{{`,
			wantTokens: []string{"load configuration"},
			wantPath:   true,
		},
		{
			name:     "unknown top-level field",
			content:  `dmup: layout: "single"`,
			wantPath: true,
		},
		{
			name:     "layout outside the enum",
			content:  `dump: layout: "spiral"`,
			wantPath: true,
		},
		{
			name:       "duplicated exclusion prefix",
			content:    `dump: excluded_namespaces: ["System", "Mono", "System"]`,
			wantTokens: []string{"duplicate prefix"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "typedump.cue")
			testutil.MustWriteFile(t, path, []byte(tt.content))

			_, err := NewProvider().Load(context.Background(), LoadOptions{
				ConfigFilePath: types.FilesystemPath(path),
			})
			if err == nil {
				t.Fatal("expected Load() to fail")
			}

			errStr := err.Error()
			for _, want := range tt.wantTokens {
				if !strings.Contains(errStr, want) {
					t.Errorf("error missing %q: %s", want, errStr)
				}
			}
			if tt.wantPath && !strings.Contains(errStr, path) {
				t.Errorf("error should name the offending file: %s", errStr)
			}
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	// No config file; the env var alone must override the default.
	useTempConfigDir(t)

	restoreEnv := testutil.MustSetenv(t, "TYPEDUMP_DUMP_LAYOUT", "class")
	defer restoreEnv()

	cfg, err := NewProvider().Load(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Dump.Layout != LayoutClass {
		t.Errorf("Dump.Layout = %s, want class (from TYPEDUMP_DUMP_LAYOUT)", cfg.Dump.Layout)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProvider().Load(ctx, LoadOptions{})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error should wrap context.Canceled, got: %v", err)
	}
}

func TestValidateExclusions(t *testing.T) {
	tests := []struct {
		name     string
		prefixes []NamespacePrefix
		wantErr  bool
	}{
		{"empty list", nil, false},
		{"distinct prefixes", []NamespacePrefix{"System", "Mono", "Unity"}, false},
		{"exact duplicate", []NamespacePrefix{"System", "System"}, true},
		{"duplicate after trimming", []NamespacePrefix{"System", " System "}, true},
		{"shadowing is allowed", []NamespacePrefix{"Unity", "UnityEngine"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateExclusions("dump.excluded_namespaces", tt.prefixes)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got: %v", err)
			}
		})
	}
}

func TestGenerateCUE_ContainsAllSections(t *testing.T) {
	content := GenerateCUE(DefaultConfig())

	for _, want := range []string{"dump:", "output:", "ui:", "layout:", "excluded_namespaces:", "color_scheme:"} {
		if !strings.Contains(content, want) {
			t.Errorf("generated CUE missing %q:\n%s", want, content)
		}
	}

	// Empty toolchain paths are omitted entirely.
	if strings.Contains(content, "toolchain:") {
		t.Errorf("generated CUE should omit empty toolchain section:\n%s", content)
	}
}

func TestGenerateCUE_EmitsToolchainWhenSet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Toolchain.Root = "/opt/unity/editor"

	content := GenerateCUE(cfg)

	if !strings.Contains(content, "toolchain:") || !strings.Contains(content, "/opt/unity/editor") {
		t.Errorf("generated CUE should carry the toolchain root:\n%s", content)
	}
}

func TestReset_ClearsOverride(t *testing.T) {
	SetConfigDirOverride("/dir/override")

	Reset()

	if configDirOverride != "" {
		t.Error("Reset() should clear the config dir override")
	}
}
