// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"typedump/internal/analysis"
	"typedump/internal/app/dump"
	"typedump/internal/config"
	"typedump/internal/layout"
	"typedump/internal/render/script"
	"typedump/internal/render/source"
	"typedump/pkg/dumpopts"
	"typedump/pkg/typemodel"
	"typedump/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer — all Cobra command handlers receive an App reference and delegate
	// business logic through its service interfaces (Config, Dumper).
	App struct {
		Config ConfigProvider
		Dumper DumpService
		stdout io.Writer
		stderr io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply mock implementations
	// to isolate specific service behavior.
	Dependencies struct {
		Config ConfigProvider
		Dumper DumpService
		Stdout io.Writer
		Stderr io.Writer
	}

	// DumpRequest captures all CLI dump inputs as an immutable value.
	// It is the request-scoped data contract between the CLI layer (Cobra handlers)
	// and the DumpService implementation.
	DumpRequest struct {
		// BinaryPath is the native binary to analyze.
		BinaryPath string
		// MetadataPath is the metadata bundle extracted from the binary.
		MetadataPath string
		// Options carries the dump options after config defaults and flag
		// overrides have been merged.
		Options dumpopts.Options
		// Verbose enables verbose diagnostic output.
		Verbose bool
	}

	// DumpService runs one dump request and reports its exit code.
	// Implementations must not write artifacts anywhere but the paths named by
	// the request options; progress logging goes to the App's stderr.
	DumpService interface {
		Run(ctx context.Context, req DumpRequest) (types.ExitCode, error)
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// appDumpService implements DumpService by assembling the production dump
	// orchestrator per request: the analysis engine, the model builder, the
	// source renderer, and the script renderer.
	appDumpService struct {
		stderr io.Writer
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Dumper == nil {
		deps.Dumper = &appDumpService{stderr: deps.Stderr}
	}

	return &App{
		Config: deps.Config,
		Dumper: deps.Dumper,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}, nil
}

// Run assembles the production orchestrator and executes the request. The
// run logger writes to stderr so progress reporting never mixes with
// artifact or stdout output.
func (s *appDumpService) Run(ctx context.Context, req DumpRequest) (types.ExitCode, error) {
	logger := log.NewWithOptions(s.stderr, log.Options{ReportTimestamp: true})
	if req.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	orch, err := dump.NewOrchestrator(dump.OrchestratorOptions{
		Analyzer: analysis.NewEngine(logger),
		Builder:  analysis.NewBuilder(),
		RendererFactory: func(model *typemodel.Model, opts layout.RenderOptions) layout.SourceRenderer {
			return source.NewRenderer(model, opts)
		},
		ScriptRenderer: script.NewRenderer(),
		Logger:         logger,
	})
	if err != nil {
		return types.ExitFailure, err
	}

	return orch.Run(ctx, dump.Request{
		BinaryPath:   req.BinaryPath,
		MetadataPath: req.MetadataPath,
		Options:      req.Options,
	})
}

// loadConfigWithFallback loads configuration via the provider. On failure with
// the default search path it warns on stderr and returns defaults so the
// command stays operational; an explicit --config path must load, so its
// error is returned for the caller to surface.
//
// The loader only returns errors for files that exist: a missing file on the
// default search path silently yields defaults, so an error here means a
// config file exists but is malformed (or the config dir is undeterminable).
func loadConfigWithFallback(ctx context.Context, provider ConfigProvider, cfgPath string, stderr io.Writer) (*config.Config, error) {
	cfg, err := provider.Load(ctx, config.LoadOptions{ConfigFilePath: types.FilesystemPath(cfgPath)})
	if err == nil {
		return cfg, nil
	}

	// When the user explicitly specified a config path, do not silently fall
	// back to defaults.
	if cfgPath != "" {
		return nil, err
	}

	fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+"failed to load config, using defaults: "+formatErrorForDisplay(err, false))
	return config.DefaultConfig(), nil
}
