// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"typedump/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version, Commit, and BuildDate identify the binary. Release builds inject
// them via -ldflags; a plain `go build` leaves the defaults.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command with all subcommands attached.
// Handlers read --verbose and --config through the command's flag set, so
// separate App instances never share flag state.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "typedump",
		Short: "Reconstruct type listings from native binaries",
		Long: TitleStyle.Render("typedump") + SubtitleStyle.Render(" - Reconstruct type listings from native binaries") + `

typedump renders the type and metadata model recovered from an
ahead-of-time compiled binary into readable artifacts: type listings
in one of five layouts (single, namespace, assembly, class, tree),
per-image script files for reverse engineering tools, and optionally
a buildable solution referencing a resolved toolchain.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'typedump init' to create a starter config
  2. Point typedump at a binary and its metadata bundle
  3. Inspect the generated artifacts and the run manifest

` + SubtitleStyle.Render("Examples:") + `
  typedump dump ./game.so ./metadata.json           Dump with config defaults
  typedump dump -l tree -s name ./app ./meta.json   Tree layout, name order
  typedump toolchain resolve '/opt/sdk/*'           Resolve a wildcard path
  typedump config show                              Show current configuration`,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.config/typedump/typedump.cue)")

	rootCmd.AddCommand(newDumpCommand(app))
	rootCmd.AddCommand(newToolchainCommand(app))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString renders the version line shown by --version.
func getVersionString() string {
	if Version == "dev" {
		return "dev (local build)"
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
}

// Execute builds the production App and runs the root command.
// This is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("Error:"), err)
		os.Exit(1)
	}

	// Use fang.Execute for enhanced Cobra styling.
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version.
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay renders err for the terminal. ActionableErrors
// print through their Format method, which in verbose mode includes the
// full cause chain; anything else prints as plain text.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// verboseFromFlags reads the persistent --verbose flag from any command in
// the tree. Cobra merges inherited persistent flags into the command's flag
// set during execution.
func verboseFromFlags(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return false
	}
	return verbose
}

// configPathFromFlags reads the persistent --config flag from any command in
// the tree.
func configPathFromFlags(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return ""
	}
	return path
}
