// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"typedump/internal/config"
)

// execConfigCommand runs a `typedump config` subcommand through the full
// command tree with a stubbed config provider.
func execConfigCommand(t *testing.T, provider ConfigProvider, args ...string) (*bytes.Buffer, *bytes.Buffer, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	app, err := NewApp(Dependencies{
		Config: provider,
		Dumper: &stubDumpService{},
		Stdout: &out,
		Stderr: &errOut,
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}

	root := NewRootCommand(app)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"config"}, args...))

	return &out, &errOut, root.Execute()
}

// overrideConfigDir points the config package at a fresh temp dir for the
// duration of the test.
func overrideConfigDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	config.SetConfigDirOverride(dir)
	t.Cleanup(config.Reset)
	return dir
}

func TestConfigDump_PrintsRawCUE(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Dump.Layout = config.LayoutNamespace
	cfg.Toolchain.Root = "/opt/sdk/*"

	out, _, err := execConfigCommand(t, &staticConfigProvider{cfg: cfg}, "dump")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if out.String() != config.GenerateCUE(cfg) {
		t.Errorf("config dump output does not match generated CUE:\n%s", out.String())
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigShow_Defaults(t *testing.T) {
	overrideConfigDir(t)

	out, _, err := execConfigCommand(t, config.NewProvider(), "show")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	got := out.String()
	for _, token := range []string{
		"Current Configuration",
		"(using defaults)",
		"layout: single",
		"sort: index",
		"(not configured)",
		"source_file: types.cs",
		"color_scheme: auto",
	} {
		if !strings.Contains(got, token) {
			t.Errorf("config show output missing %q:\n%s", token, got)
		}
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigShow_WithFile(t *testing.T) {
	dir := overrideConfigDir(t)

	cfg := config.DefaultConfig()
	cfg.Dump.Layout = config.LayoutTree
	cfg.Output.Directory = "artifacts"
	cfgPath := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
	if err := os.WriteFile(cfgPath, []byte(config.GenerateCUE(cfg)), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := execConfigCommand(t, config.NewProvider(), "show")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	got := out.String()
	for _, token := range []string{cfgPath, "layout: tree", "directory: artifacts"} {
		if !strings.Contains(got, token) {
			t.Errorf("config show output missing %q:\n%s", token, got)
		}
	}
	if strings.Contains(got, "(using defaults)") {
		t.Error("config show should report the resolved file, not defaults")
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigSet_WritesValue(t *testing.T) {
	dir := overrideConfigDir(t)

	out, _, err := execConfigCommand(t, &staticConfigProvider{cfg: config.DefaultConfig()}, "set", "dump.layout", "tree")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !strings.Contains(out.String(), "Set dump.layout = tree") {
		t.Errorf("missing confirmation output:\n%s", out.String())
	}

	content, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(content), `layout: "tree"`) {
		t.Errorf("written config missing new layout:\n%s", content)
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigSet_BooleanAndPathKeys(t *testing.T) {
	dir := overrideConfigDir(t)
	cfgPath := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)

	tests := []struct {
		key, value, wantInFile string
	}{
		{"dump.flatten", "true", "flatten: true"},
		{"ui.verbose", "1", "verbose: true"},
		{"toolchain.root", "/opt/sdk/*", `root: "/opt/sdk/*"`},
		{"output.source_file", "dump.cs", `source_file: "dump.cs"`},
		{"ui.color_scheme", "dark", `color_scheme: "dark"`},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, _, err := execConfigCommand(t, &staticConfigProvider{cfg: config.DefaultConfig()}, "set", tt.key, tt.value)
			if err != nil {
				t.Fatalf("Execute() error: %v", err)
			}

			content, err := os.ReadFile(cfgPath)
			if err != nil {
				t.Fatalf("config file not written: %v", err)
			}
			if !strings.Contains(string(content), tt.wantInFile) {
				t.Errorf("written config missing %q:\n%s", tt.wantInFile, content)
			}
		})
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigSet_InvalidValue(t *testing.T) {
	dir := overrideConfigDir(t)

	_, _, err := execConfigCommand(t, &staticConfigProvider{cfg: config.DefaultConfig()}, "set", "dump.layout", "bogus")
	if err == nil {
		t.Fatal("expected error for invalid layout value")
	}
	if !strings.Contains(err.Error(), "invalid layout scheme") {
		t.Errorf("error = %q, want invalid layout scheme", err)
	}

	if _, statErr := os.Stat(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)); statErr == nil {
		t.Error("invalid value must not be persisted")
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigSet_UnknownKey(t *testing.T) {
	overrideConfigDir(t)

	_, _, err := execConfigCommand(t, &staticConfigProvider{cfg: config.DefaultConfig()}, "set", "nope.nothing", "x")
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown configuration key") {
		t.Errorf("error = %q, want unknown key message", err)
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigPath_PrintsLocations(t *testing.T) {
	dir := overrideConfigDir(t)

	out, _, err := execConfigCommand(t, config.NewProvider(), "path")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "Config directory: "+dir) {
		t.Errorf("missing config directory line:\n%s", got)
	}
	wantFile := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
	if !strings.Contains(got, "Config file: "+wantFile) {
		t.Errorf("missing config file line:\n%s", got)
	}
}

// Not parallel: mutates the package-level config directory override.
func TestConfigInit_CreatesDefaultFile(t *testing.T) {
	dir := overrideConfigDir(t)

	out, _, err := execConfigCommand(t, config.NewProvider(), "init")
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(out.String(), "Created default configuration") {
		t.Errorf("missing confirmation output:\n%s", out.String())
	}

	content, err := os.ReadFile(filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt))
	if err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(string(content), `layout: "single"`) {
		t.Errorf("default config missing expected content:\n%s", content)
	}
}
