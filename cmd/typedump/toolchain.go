// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"typedump/internal/config"
	"typedump/internal/issue"
	"typedump/pkg/types"
	"typedump/pkg/wildcard"

	"github.com/spf13/cobra"
)

// newToolchainCommand creates the `typedump toolchain` command tree.
func newToolchainCommand(app *App) *cobra.Command {
	toolchainCmd := &cobra.Command{
		Use:   "toolchain",
		Short: "Inspect toolchain path resolution",
		Long: `Inspect toolchain path resolution.

Solution mode locates the toolchain through configured paths that may
contain '*' wildcard segments. Each '*' segment expands to the
lexicographically greatest matching child directory, which selects the
newest SDK under the common version naming schemes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	toolchainCmd.AddCommand(newToolchainResolveCommand(app))

	return toolchainCmd
}

// newToolchainResolveCommand creates the `typedump toolchain resolve` command.
// It resolves each argument the same way solution mode would, without
// probing for marker files, so users can check their configured patterns.
func newToolchainResolveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <path>...",
		Short: "Resolve wildcard toolchain paths against the filesystem",
		Long: `Resolve wildcard toolchain paths against the filesystem.

Each path is expanded segment by segment: literal segments pass through,
and every '*' segment is replaced with the lexicographically greatest
matching child directory of the path resolved so far. A segment with no
match stays as literal text, so the printed path also shows where
resolution stopped finding directories.

Examples:
  typedump toolchain resolve '/opt/dotnet/sdk/*'
  typedump toolchain resolve 'C:\Program Files\dotnet\sdk\*\ref'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToolchainResolve(cmd, app, args)
		},
	}
}

func runToolchainResolve(cmd *cobra.Command, app *App, args []string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	// One prober for all arguments so paths sharing a prefix reuse its
	// memoized directory listings.
	prober := wildcard.NewOSProber()

	for _, pattern := range args {
		resolved, err := wildcard.Resolve(pattern, prober)
		if err != nil {
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			if errors.Is(err, wildcard.ErrUnsupportedPath) {
				if rendered, renderErr := issue.Get(issue.UnsupportedWildcardPathId).Render(resolveRenderStyle(cmd, app)); renderErr == nil {
					fmt.Fprint(stderr, rendered)
				}
			}
			fmt.Fprintf(stderr, "\n%s %v\n", ErrorStyle.Render("Error:"), err)
			return &ExitError{Code: types.ExitFailure, Err: err}
		}
		fmt.Fprintf(stdout, "%s %s\n", CmdStyle.Render(pattern), resolved)
	}

	return nil
}

// resolveRenderStyle picks the issue card style from configuration, falling
// back to terminal auto-detection when the config cannot load.
func resolveRenderStyle(cmd *cobra.Command, app *App) string {
	cfg, err := app.Config.Load(cmd.Context(), config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(configPathFromFlags(cmd)),
	})
	if err != nil {
		return "auto"
	}
	return glamourStyle(cfg.UI.ColorScheme)
}
