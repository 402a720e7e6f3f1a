// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"typedump/internal/config"
	"typedump/pkg/dumpopts"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"
)

// ErrInitAborted is returned when the user interrupts the init prompts.
var ErrInitAborted = errors.New("init aborted")

type (
	// initPrompter abstracts the interactive prompts so runInit can be
	// tested without a real terminal.
	initPrompter interface {
		Select(message string, options []string, defaultIndex int) (int, error)
		Confirm(message string, defaultValue bool) (bool, error)
		Input(message, defaultValue string) (string, error)
	}

	surveyPrompter struct{}
)

// Select prompts for one choice out of options and returns its index.
func (surveyPrompter) Select(message string, options []string, defaultIndex int) (int, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if defaultIndex >= 0 && defaultIndex < len(options) {
		prompt.Default = options[defaultIndex]
	}

	var out string
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return slices.Index(options, out), nil
}

// Confirm prompts for a yes/no answer.
func (surveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	var out bool
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

// Input prompts for a free-form text answer.
func (surveyPrompter) Input(message, defaultValue string) (string, error) {
	var out string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

// translateSurveyErr maps survey's interrupt sentinel to ErrInitAborted.
func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrInitAborted
	}
	return err
}

// newInitCommand creates the `typedump init` command.
func newInitCommand() *cobra.Command {
	var (
		initForce    bool
		initDefaults bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a typedump.cue config in the current directory",
		Long: `Create a typedump.cue config in the current directory.

The command walks through the dump defaults interactively and writes the
answers as a starter config. Use --defaults to skip the prompts and write
the built-in defaults unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, surveyPrompter{}, initForce, initDefaults)
		},
	}

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing typedump.cue")
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false, "write built-in defaults without prompting")

	return initCmd
}

func runInit(cmd *cobra.Command, prompter initPrompter, force, defaults bool) error {
	stdout := cmd.OutOrStdout()

	filename := config.ConfigFileName + "." + config.ConfigFileExt

	// Check if file exists
	if _, err := os.Stat(filename); err == nil && !force {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	cfg := config.DefaultConfig()
	if !defaults {
		var err error
		cfg, err = promptForConfig(prompter)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(filename, []byte(config.GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Fprintf(stdout, "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(stdout, "  1. Adjust the config to match your project")
	fmt.Fprintln(stdout, "  2. Run 'typedump dump <binary> <metadata>' to generate artifacts")
	fmt.Fprintln(stdout, "  3. Run 'typedump config show' to review the effective configuration")

	return nil
}

// promptForConfig walks through the dump defaults and returns the answers as
// a configuration. It starts from the built-in defaults so every prompt has
// a sensible preselection.
func promptForConfig(prompter initPrompter) (*config.Config, error) {
	cfg := config.DefaultConfig()

	layouts := schemaNames()
	layoutIdx, err := prompter.Select("Default artifact layout:", layouts, slices.Index(layouts, string(cfg.Dump.Layout)))
	if err != nil {
		return nil, err
	}
	if layoutIdx >= 0 {
		cfg.Dump.Layout = config.LayoutScheme(layouts[layoutIdx])
	}

	orders := orderNames()
	sortIdx, err := prompter.Select("Default type ordering:", orders, slices.Index(orders, string(cfg.Dump.Sort)))
	if err != nil {
		return nil, err
	}
	if sortIdx >= 0 {
		cfg.Dump.Sort = config.SortOrder(orders[sortIdx])
	}

	keepExclusions, err := prompter.Confirm("Exclude runtime and engine namespaces from output?", true)
	if err != nil {
		return nil, err
	}
	if !keepExclusions {
		cfg.Dump.ExcludedNamespaces = nil
	}

	root, err := prompter.Input("Toolchain install root ('*' segments allowed, empty to skip):", string(cfg.Toolchain.Root))
	if err != nil {
		return nil, err
	}
	cfg.Toolchain.Root = config.ToolchainPath(strings.TrimSpace(root))

	if cfg.Toolchain.Root != "" {
		assemblies, err := prompter.Input("Toolchain reference assemblies root:", string(cfg.Toolchain.Assemblies))
		if err != nil {
			return nil, err
		}
		cfg.Toolchain.Assemblies = config.ToolchainPath(strings.TrimSpace(assemblies))
	}

	outDir, err := prompter.Input("Default artifact directory (empty for current directory):", string(cfg.Output.Directory))
	if err != nil {
		return nil, err
	}
	cfg.Output.Directory = config.OutputDirPath(strings.TrimSpace(outDir))

	return cfg, nil
}

// schemaNames returns the layout names in their canonical order.
func schemaNames() []string {
	schemas := dumpopts.AllSchemas()
	names := make([]string, len(schemas))
	for i, schema := range schemas {
		names[i] = schema.String()
	}
	return names
}

// orderNames returns the sort order names in their canonical order.
func orderNames() []string {
	orders := dumpopts.AllOrders()
	names := make([]string, len(orders))
	for i, order := range orders {
		names[i] = order.String()
	}
	return names
}
