// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"typedump/internal/issue"
	"typedump/pkg/cueutil"
	"typedump/pkg/platform"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is used for the per-user config directory and anywhere the
	// tool names itself in generated files.
	AppName = "typedump"
	// Config files are named typedump.cue wherever they live.
	ConfigFileName = "typedump"
	ConfigFileExt  = "cue"
	// EnvPrefix is the prefix of environment variable overrides
	// (e.g. TYPEDUMP_DUMP_LAYOUT overrides dump.layout).
	EnvPrefix = "TYPEDUMP"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the per-user typedump configuration directory:
// %APPDATA% on Windows, ~/Library/Application Support on macOS, and
// $XDG_CONFIG_HOME (falling back to ~/.config) everywhere else.
//
//nolint:revive // config.ConfigDir stutters, but it reads better than Dir at call sites
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var base string

	switch runtime.GOOS {
	case platform.Windows:
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolving home directory: %w", err)
			}
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, AppName), nil
}

// loadWithOptions runs one complete load pass: defaults first, then the
// config file (if one is found), then environment overrides on top. It
// touches no package-level state, so Load can layer caching over it.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("config load canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	// Best-effort .env preload so TYPEDUMP_* overrides work from a local
	// dotenv file; a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("dump.layout", defaults.Dump.Layout)
	v.SetDefault("dump.sort", defaults.Dump.Sort)
	v.SetDefault("dump.flatten", defaults.Dump.Flatten)
	v.SetDefault("dump.suppress_metadata", defaults.Dump.SuppressMetadata)
	v.SetDefault("dump.must_compile", defaults.Dump.MustCompile)
	v.SetDefault("dump.separate_attrs", defaults.Dump.SeparateAttrs)
	v.SetDefault("dump.excluded_namespaces", defaults.Dump.ExcludedNamespaces)
	v.SetDefault("toolchain.root", defaults.Toolchain.Root)
	v.SetDefault("toolchain.assemblies", defaults.Toolchain.Assemblies)
	v.SetDefault("output.directory", defaults.Output.Directory)
	v.SetDefault("output.source_file", defaults.Output.SourceFile)
	v.SetDefault("output.script_file", defaults.Output.ScriptFile)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	// Environment variable overrides: TYPEDUMP_UI_VERBOSE, TYPEDUMP_DUMP_LAYOUT, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	// A custom config file path set via --config is used exclusively; its
	// absence or failure is never papered over with defaults.
	if opts.ConfigFilePath != "" {
		customPath := string(opts.ConfigFilePath)
		if !fileExists(customPath) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(customPath).
				WithSuggestion("Double-check the --config path").
				WithSuggestion("Make sure the file exists and is readable").
				WithSuggestion("Use 'typedump config show' to see default configuration").
				Wrap(fmt.Errorf("config file not found: %s", customPath)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, customPath); err != nil {
			return nil, "", cueLoadError(customPath, err)
		}
		resolvedPath = customPath
	} else {
		cfgDir, err := configDirWithOverride(string(opts.ConfigDirPath))
		if err != nil {
			return nil, "", err
		}

		// Config directory first, then the working directory; missing files
		// in both places mean defaults, not an error.
		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", cueLoadError(cuePath, err)
			}
			resolvedPath = cuePath
		} else if localCuePath := ConfigFileName + "." + ConfigFileExt; fileExists(localCuePath) {
			if err := loadCUEIntoViper(v, localCuePath); err != nil {
				return nil, "", cueLoadError(localCuePath, err)
			}
			resolvedPath = localCuePath
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("decoding merged config: %w", err)
	}

	// Validate exclusion-list constraints that CUE cannot express:
	// prefix uniqueness after whitespace normalization.
	if err := validateExclusions("dump.excluded_namespaces", cfg.Dump.ExcludedNamespaces); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithSuggestion("Remove the duplicated namespace prefix").
			WithSuggestion("Prefixes match by string prefix, so one entry already covers its sub-namespaces").
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

// configDirWithOverride prefers an explicit directory from LoadOptions and
// falls back to the platform default.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// cueLoadError wraps a CUE parse/validation failure with the context and
// suggestions shown for every config file the loader touches.
func cueLoadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Fix the CUE syntax or type errors reported above").
		WithSuggestion("Compare the file against 'typedump config show'").
		WithSuggestion("See 'typedump config --help' for configuration options").
		Wrap(err).
		BuildError()
}

// loadCUEIntoViper parses a CUE config file, validates it against the
// embedded #Config schema, and merges the result into Viper.
//
// The config decodes to map[string]any for Viper's merge rather than to a
// struct, and validation runs with Concrete(false) because every field is
// optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(configSchema)
	if schema.Err() != nil {
		return fmt.Errorf("embedded config schema does not compile: %w", schema.Err())
	}

	file := ctx.CompileBytes(data, cue.Filename(path))
	if file.Err() != nil {
		return cueutil.FormatError(file.Err(), path)
	}

	// Unifying with #Config rejects unknown fields and type mismatches.
	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(file)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var fields map[string]any
	if err := unified.Decode(&fields); err != nil {
		return cueutil.FormatError(err, path)
	}

	// MergeConfigMap keeps Viper's defaults underneath and leaves env
	// overrides winning.
	if err := v.MergeConfigMap(fields); err != nil {
		return fmt.Errorf("merging config file over defaults: %w", err)
	}

	return nil
}

// validateExclusions checks the exclusion list for a constraint that CUE
// cannot express: prefixes must be unique after whitespace normalization.
// A duplicated prefix is almost always a merge mistake, and silently keeping
// both would hide it.
//
// The fieldName parameter is used in error messages to identify which list
// failed validation.
func validateExclusions(fieldName string, prefixes []NamespacePrefix) error {
	seen := make(map[string]int) // normalized prefix -> index of first occurrence

	for i, prefix := range prefixes {
		normalized := strings.TrimSpace(string(prefix))
		if firstIdx, exists := seen[normalized]; exists {
			return fmt.Errorf("%s[%d]: duplicate prefix %q (same as %s[%d])", fieldName, i, prefix, fieldName, firstIdx)
		}
		seen[normalized] = i
	}

	return nil
}

// fileExists reports whether path names an existing file (not a directory).
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// configFilePath resolves the config file location, creating the config
// directory if needed.
func configFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// writeConfig serializes the configuration to CUE and writes it to path.
func writeConfig(path string, cfg *Config) error {
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// CreateDefaultConfig writes a default config file unless one already exists.
func CreateDefaultConfig() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}
	if fileExists(cfgPath) {
		return nil
	}
	return writeConfig(cfgPath, DefaultConfig())
}

// Save writes the configuration to the default config file, replacing any
// existing contents.
func Save(cfg *Config) error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}
	return writeConfig(cfgPath, cfg)
}

// GenerateCUE renders cfg as a commented CUE document in the same shape
// CreateDefaultConfig writes. Empty toolchain paths and output directory
// are omitted so the generated file stays minimal.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// typedump configuration file\n")
	sb.WriteString("// See the project README for documentation.\n\n")

	sb.WriteString("dump: {\n")
	fmt.Fprintf(&sb, "\tlayout: %q\n", cfg.Dump.Layout)
	fmt.Fprintf(&sb, "\tsort: %q\n", cfg.Dump.Sort)
	fmt.Fprintf(&sb, "\tflatten: %v\n", cfg.Dump.Flatten)
	fmt.Fprintf(&sb, "\tsuppress_metadata: %v\n", cfg.Dump.SuppressMetadata)
	fmt.Fprintf(&sb, "\tmust_compile: %v\n", cfg.Dump.MustCompile)
	fmt.Fprintf(&sb, "\tseparate_attrs: %v\n", cfg.Dump.SeparateAttrs)
	if len(cfg.Dump.ExcludedNamespaces) > 0 {
		sb.WriteString("\texcluded_namespaces: [\n")
		for _, prefix := range cfg.Dump.ExcludedNamespaces {
			fmt.Fprintf(&sb, "\t\t%q,\n", prefix)
		}
		sb.WriteString("\t]\n")
	}
	sb.WriteString("}\n")

	if cfg.Toolchain.Root != "" || cfg.Toolchain.Assemblies != "" {
		sb.WriteString("\ntoolchain: {\n")
		if cfg.Toolchain.Root != "" {
			fmt.Fprintf(&sb, "\troot: %q\n", cfg.Toolchain.Root)
		}
		if cfg.Toolchain.Assemblies != "" {
			fmt.Fprintf(&sb, "\tassemblies: %q\n", cfg.Toolchain.Assemblies)
		}
		sb.WriteString("}\n")
	}

	sb.WriteString("\noutput: {\n")
	if cfg.Output.Directory != "" {
		fmt.Fprintf(&sb, "\tdirectory: %q\n", cfg.Output.Directory)
	}
	fmt.Fprintf(&sb, "\tsource_file: %q\n", cfg.Output.SourceFile)
	fmt.Fprintf(&sb, "\tscript_file: %q\n", cfg.Output.ScriptFile)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
