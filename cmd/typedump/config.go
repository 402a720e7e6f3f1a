// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"typedump/internal/config"
	"typedump/internal/issue"
	"typedump/pkg/fspath"
	"typedump/pkg/types"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `typedump config` command tree.
// Subcommands that only read configuration values use the App's
// ConfigProvider; show reports the resolved file path too, which the
// provider interface does not expose, so it loads through the package.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage typedump configuration",
		Long: `Manage typedump configuration.

Configuration is stored in:
  - Linux: ~/.config/typedump/typedump.cue
  - macOS: ~/Library/Application Support/typedump/typedump.cue
  - Windows: %APPDATA%\typedump\typedump.cue

A typedump.cue in the current directory takes effect when no file exists
at the standard location.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfigFile(cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(cmd.OutOrStdout())
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setConfigValue(cmd.Context(), app, cmd.OutOrStdout(), args[0], args[1])
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{
				ConfigFilePath: types.FilesystemPath(configPathFromFlags(cmd)),
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	cfg, resolvedPath, err := config.LoadWithPath(cmd.Context(), config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(configPathFromFlags(cmd)),
	})
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("auto"); renderErr == nil {
			fmt.Fprint(stderr, rendered)
		}
		return err
	}

	// Style definitions using shared color palette
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(stdout, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(stdout)

	if resolvedPath != "" {
		fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("Config file"), resolvedPath)
	} else {
		fmt.Fprintf(stdout, "%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Fprintln(stdout)

	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("dump"))
	fmt.Fprintf(stdout, "  layout: %s\n", valueStyle.Render(cfg.Dump.Layout.String()))
	fmt.Fprintf(stdout, "  sort: %s\n", valueStyle.Render(cfg.Dump.Sort.String()))
	fmt.Fprintf(stdout, "  flatten: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Dump.Flatten)))
	fmt.Fprintf(stdout, "  suppress_metadata: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Dump.SuppressMetadata)))
	fmt.Fprintf(stdout, "  must_compile: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Dump.MustCompile)))
	fmt.Fprintf(stdout, "  separate_attrs: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.Dump.SeparateAttrs)))
	fmt.Fprintf(stdout, "  excluded_namespaces:\n")
	if len(cfg.Dump.ExcludedNamespaces) == 0 {
		fmt.Fprintf(stdout, "    %s\n", SubtitleStyle.Render("(none configured)"))
	} else {
		for _, prefix := range cfg.Dump.ExcludedNamespaces {
			fmt.Fprintf(stdout, "    - %s\n", valueStyle.Render(prefix.String()))
		}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("toolchain"))
	fmt.Fprintf(stdout, "  root: %s\n", pathOrUnset(valueStyle.Render(cfg.Toolchain.Root.String()), cfg.Toolchain.Root == ""))
	fmt.Fprintf(stdout, "  assemblies: %s\n", pathOrUnset(valueStyle.Render(cfg.Toolchain.Assemblies.String()), cfg.Toolchain.Assemblies == ""))

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("output"))
	fmt.Fprintf(stdout, "  directory: %s\n", pathOrUnset(valueStyle.Render(cfg.Output.Directory.String()), cfg.Output.Directory == ""))
	fmt.Fprintf(stdout, "  source_file: %s\n", valueStyle.Render(cfg.Output.SourceFile.String()))
	fmt.Fprintf(stdout, "  script_file: %s\n", valueStyle.Render(cfg.Output.ScriptFile.String()))

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s:\n", keyStyle.Render("ui"))
	fmt.Fprintf(stdout, "  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Fprintf(stdout, "  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

// pathOrUnset substitutes a muted placeholder for empty path values.
func pathOrUnset(rendered string, empty bool) string {
	if empty {
		return SubtitleStyle.Render("(not configured)")
	}
	return rendered
}

func initConfigFile(stdout io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err := config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	cfgFile := config.ConfigFileName + "." + config.ConfigFileExt
	fmt.Fprintf(stdout, "%s Created default configuration at %s\n",
		SuccessStyle.Render("✓"), fspath.JoinStr(types.FilesystemPath(cfgDir), cfgFile))
	return nil
}

func showConfigPath(stdout io.Writer) error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	cfgFile := config.ConfigFileName + "." + config.ConfigFileExt
	fmt.Fprintf(stdout, "Config directory: %s\n", cfgDir)
	fmt.Fprintf(stdout, "Config file: %s\n", fspath.JoinStr(types.FilesystemPath(cfgDir), cfgFile))

	return nil
}

func setConfigValue(ctx context.Context, app *App, stdout io.Writer, key, value string) error {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{})
	if err != nil {
		return err
	}

	boolValue := value == "true" || value == "1"

	switch key {
	case "dump.layout":
		layout := config.LayoutScheme(value)
		if ok, errs := layout.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.Dump.Layout = layout

	case "dump.sort":
		sort := config.SortOrder(value)
		if ok, errs := sort.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.Dump.Sort = sort

	case "dump.flatten":
		cfg.Dump.Flatten = boolValue

	case "dump.suppress_metadata":
		cfg.Dump.SuppressMetadata = boolValue

	case "dump.must_compile":
		cfg.Dump.MustCompile = boolValue

	case "dump.separate_attrs":
		cfg.Dump.SeparateAttrs = boolValue

	case "toolchain.root":
		path := config.ToolchainPath(value)
		if ok, errs := path.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.Toolchain.Root = path

	case "toolchain.assemblies":
		path := config.ToolchainPath(value)
		if ok, errs := path.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.Toolchain.Assemblies = path

	case "output.directory":
		dir := config.OutputDirPath(value)
		if ok, errs := dir.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.Output.Directory = dir

	case "output.source_file":
		name := config.ArtifactFileName(value)
		if ok, errs := name.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.Output.SourceFile = name

	case "output.script_file":
		name := config.ArtifactFileName(value)
		if ok, errs := name.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.Output.ScriptFile = name

	case "ui.color_scheme":
		scheme := config.ColorScheme(value)
		if ok, errs := scheme.IsValid(); !ok {
			return errors.Join(errs...)
		}
		cfg.UI.ColorScheme = scheme

	case "ui.verbose":
		cfg.UI.Verbose = boolValue

	default:
		return fmt.Errorf("unknown configuration key: %s\nValid keys: dump.layout, dump.sort, dump.flatten, dump.suppress_metadata, dump.must_compile, dump.separate_attrs, toolchain.root, toolchain.assemblies, output.directory, output.source_file, output.script_file, ui.color_scheme, ui.verbose", key)
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(stdout, "%s Set %s = %s\n", SuccessStyle.Render("✓"), key, value)
	return nil
}
