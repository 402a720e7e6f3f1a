// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"typedump/internal/config"
	"typedump/internal/issue"
	"typedump/pkg/dumpopts"
	"typedump/pkg/fspath"
	"typedump/pkg/types"

	"github.com/spf13/cobra"
)

// newDumpCommand creates the `typedump dump` command. Every option defaults
// from configuration and can be overridden per run by its flag.
func newDumpCommand(app *App) *cobra.Command {
	dumpCmd := &cobra.Command{
		Use:   "dump <binary> <metadata>",
		Short: "Render type listings and scripts from a binary",
		Long: `Render type listings and scripts from a binary and its metadata bundle.

The binary is analyzed together with the extracted metadata bundle into
one or more images. Each image renders a source artifact in the selected
layout and a script artifact for reverse engineering tools; a run
manifest is written next to the first source artifact.

Layouts:
  single      one flat artifact with every type
  namespace   one artifact (or directory) per namespace
  assembly    one artifact (or directory) per source assembly
  class       one artifact per type, grouped by namespace directory
  tree        one artifact per type, nested under assembly then namespace

The class and tree layouts always order types by name; --sort applies to
the other layouts. Solution mode (--solution) forces the tree layout with
compile tidying and separate assembly attributes, and requires the
toolchain paths to be configured or passed.

Examples:
  typedump dump ./game.so ./metadata.json
  typedump dump -l namespace --flatten ./app.exe ./metadata.json
  typedump dump --solution --toolchain-root '/opt/sdk/*' --toolchain-assemblies '/opt/sdk/*/ref' ./app ./meta.json
  typedump dump -e none ./app ./meta.json           Disable namespace exclusion`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, app, args)
		},
	}

	flags := dumpCmd.Flags()
	flags.StringP("layout", "l", "", "artifact layout: single, namespace, assembly, class, tree (default from config)")
	flags.StringP("sort", "s", "", "type ordering: index, name (default from config)")
	flags.Bool("flatten", false, "collapse per-directory layouts into single artifacts")
	flags.Bool("suppress-metadata", false, "omit pointers, offsets, and indices from output")
	flags.Bool("must-compile", false, "tidy declarations so the output compiles")
	flags.Bool("separate-attrs", false, "write assembly attributes to their own artifact")
	flags.Bool("solution", false, "emit a buildable solution (forces tree layout)")
	flags.StringArrayP("exclude-ns", "e", nil, "namespace prefix to exclude (repeatable; 'none' disables exclusion)")
	flags.StringP("output", "o", "", "source artifact path (default from config)")
	flags.String("script-output", "", "script artifact path (default from config)")
	flags.String("toolchain-root", "", "toolchain install root, '*' segments allowed (solution mode)")
	flags.String("toolchain-assemblies", "", "toolchain reference assemblies root, '*' segments allowed (solution mode)")

	return dumpCmd
}

func runDump(cmd *cobra.Command, app *App, args []string) error {
	stderr := cmd.ErrOrStderr()
	verbose := verboseFromFlags(cmd)

	cfg, err := loadConfigWithFallback(cmd.Context(), app.Config, configPathFromFlags(cmd), stderr)
	if err != nil {
		if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("auto"); renderErr == nil {
			fmt.Fprint(stderr, rendered)
		}
		fmt.Fprintf(stderr, "\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: types.ExitFailure, Err: err}
	}

	// Apply verbose from config if not set via flag.
	if !verbose {
		verbose = cfg.UI.Verbose
	}

	req := DumpRequest{
		BinaryPath:   args[0],
		MetadataPath: args[1],
		Options:      dumpOptionsFromInputs(cmd, cfg),
		Verbose:      verbose,
	}

	code, runErr := app.Dumper.Run(cmd.Context(), req)
	if runErr != nil {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		// An interrupt is not a diagnosable failure; skip the issue card.
		if errors.Is(runErr, context.Canceled) {
			return &ExitError{Code: code, Err: runErr}
		}

		issueID, styledMsg := classifyDumpError(runErr, req, verbose)
		if rendered, renderErr := issue.Get(issueID).Render(glamourStyle(cfg.UI.ColorScheme)); renderErr == nil {
			fmt.Fprint(stderr, rendered)
		}
		fmt.Fprint(stderr, styledMsg)
		return &ExitError{Code: code, Err: runErr}
	}

	if !code.IsSuccess() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: code}
	}

	return nil
}

// dumpOptionsFromInputs merges configuration defaults with flag overrides
// into the options of one run. A flag only overrides its config default when
// it was set on the command line, so `--flatten=false` still wins over a
// config file that enables flattening.
func dumpOptionsFromInputs(cmd *cobra.Command, cfg *config.Config) dumpopts.Options {
	return dumpopts.Options{
		Layout:                     dumpopts.Schema(stringOption(cmd, "layout", string(cfg.Dump.Layout))),
		Sort:                       dumpopts.Order(stringOption(cmd, "sort", string(cfg.Dump.Sort))),
		FlattenHierarchy:           boolOption(cmd, "flatten", cfg.Dump.Flatten),
		SuppressMetadata:           boolOption(cmd, "suppress-metadata", cfg.Dump.SuppressMetadata),
		MustCompile:                boolOption(cmd, "must-compile", cfg.Dump.MustCompile),
		SeparateAssemblyAttributes: boolOption(cmd, "separate-attrs", cfg.Dump.SeparateAttrs),
		CreateSolution:             boolOption(cmd, "solution", false),
		ExcludedNamespaces:         excludedNamespaces(cmd, cfg),
		ToolchainRoot:              types.WildcardPath(stringOption(cmd, "toolchain-root", string(cfg.Toolchain.Root))),
		ToolchainAssembliesRoot:    types.WildcardPath(stringOption(cmd, "toolchain-assemblies", string(cfg.Toolchain.Assemblies))),
		OutputBasePath:             artifactBasePath(cmd, "output", cfg, string(cfg.Output.SourceFile)),
		ScriptBasePath:             artifactBasePath(cmd, "script-output", cfg, string(cfg.Output.ScriptFile)),
	}
}

// excludedNamespaces merges the --exclude-ns flag with the configured list.
// The flag replaces the config list entirely when given. The literal "none"
// anywhere in the effective list disables exclusion.
func excludedNamespaces(cmd *cobra.Command, cfg *config.Config) []string {
	if cmd.Flags().Changed("exclude-ns") {
		entries, err := cmd.Flags().GetStringArray("exclude-ns")
		if err != nil || slices.Contains(entries, dumpopts.ExclusionDisabled) {
			return nil
		}
		return entries
	}

	prefixes := make([]string, 0, len(cfg.Dump.ExcludedNamespaces))
	for _, prefix := range cfg.Dump.ExcludedNamespaces {
		if string(prefix) == dumpopts.ExclusionDisabled {
			return nil
		}
		prefixes = append(prefixes, string(prefix))
	}
	return prefixes
}

// artifactBasePath resolves one artifact base path: the flag when given,
// otherwise the configured directory joined with the configured file name.
func artifactBasePath(cmd *cobra.Command, flagName string, cfg *config.Config, fileName string) types.FilesystemPath {
	if path := stringOption(cmd, flagName, ""); path != "" {
		return types.FilesystemPath(path)
	}
	return fspath.JoinStr(types.FilesystemPath(cfg.Output.Directory), fileName)
}

// stringOption returns the flag value when set on the command line, the
// config default otherwise.
func stringOption(cmd *cobra.Command, name, configDefault string) string {
	if cmd.Flags().Changed(name) {
		if value, err := cmd.Flags().GetString(name); err == nil {
			return value
		}
	}
	return configDefault
}

// boolOption returns the flag value when set on the command line, the config
// default otherwise.
func boolOption(cmd *cobra.Command, name string, configDefault bool) bool {
	if cmd.Flags().Changed(name) {
		if value, err := cmd.Flags().GetBool(name); err == nil {
			return value
		}
	}
	return configDefault
}
