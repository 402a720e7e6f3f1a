// SPDX-License-Identifier: MPL-2.0

package dump

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"typedump/internal/analysis"
	"typedump/internal/artifact"
	"typedump/internal/layout"
	"typedump/internal/manifest"
	"typedump/internal/render/source"
	"typedump/internal/stopwatch"
	"typedump/pkg/dumpopts"
	"typedump/pkg/fspath"
	"typedump/pkg/typemodel"
	"typedump/pkg/types"
	"typedump/pkg/wildcard"
)

type (
	// Request is one dump invocation: the input pair plus the run options.
	Request struct {
		BinaryPath   string
		MetadataPath string
		Options      dumpopts.Options
	}

	// Analyzer loads a binary+metadata pair into ordered images.
	Analyzer interface {
		LoadFromFile(binaryPath, metadataPath string) ([]analysis.Image, error)
	}

	// ModelBuilder converts one image into its type model.
	ModelBuilder interface {
		BuildModel(img analysis.Image) (*typemodel.Model, error)
	}

	// RendererFactory builds the source renderer for one image's model.
	RendererFactory func(model *typemodel.Model, opts layout.RenderOptions) layout.SourceRenderer

	// ScriptRenderer writes the per-image script artifact.
	ScriptRenderer interface {
		WriteScript(model *typemodel.Model, path string) error
	}

	// OrchestratorOptions configures orchestrator construction.
	//
	// Required fields: Analyzer, Builder, RendererFactory, and ScriptRenderer
	// must be non-nil. Prober, Clock, and Logger are optional and default to
	// the OS prober, the real clock, and the package-level logger.
	OrchestratorOptions struct {
		Analyzer        Analyzer
		Builder         ModelBuilder
		RendererFactory RendererFactory
		ScriptRenderer  ScriptRenderer

		Prober wildcard.Prober
		Clock  stopwatch.Clock
		Logger *log.Logger
	}

	// Orchestrator sequences one dump run. Construct with NewOrchestrator.
	Orchestrator struct {
		analyzer Analyzer
		builder  ModelBuilder
		factory  RendererFactory
		script   ScriptRenderer
		prober   wildcard.Prober
		clock    stopwatch.Clock
		logger   *log.Logger
	}
)

// NewOrchestrator creates an orchestrator from opts.
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	if opts.Analyzer == nil {
		return nil, errors.New("analyzer must not be nil")
	}
	if opts.Builder == nil {
		return nil, errors.New("model builder must not be nil")
	}
	if opts.RendererFactory == nil {
		return nil, errors.New("renderer factory must not be nil")
	}
	if opts.ScriptRenderer == nil {
		return nil, errors.New("script renderer must not be nil")
	}

	o := &Orchestrator{
		analyzer: opts.Analyzer,
		builder:  opts.Builder,
		factory:  opts.RendererFactory,
		script:   opts.ScriptRenderer,
		prober:   opts.Prober,
		clock:    opts.Clock,
		logger:   opts.Logger,
	}
	if o.prober == nil {
		o.prober = wildcard.NewOSProber()
	}
	if o.clock == nil {
		o.clock = stopwatch.RealClock{}
	}
	if o.logger == nil {
		o.logger = log.Default()
	}
	return o, nil
}

// Run executes one dump run and reports its exit code. Inputs are probed in
// order (the metadata is not probed when the binary is missing), the
// toolchain is resolved only in solution mode and before any analysis, the
// analyzer runs once, and images render strictly in discovery order. A
// failure on image k fails the run but retains the artifacts already written
// for images 0..k-1. On success the run manifest is written next to the
// first source artifact; the manifest is an artifact, so its failure fails
// the run too.
func (o *Orchestrator) Run(ctx context.Context, req Request) (types.ExitCode, error) {
	if err := req.Options.Validate(); err != nil {
		return types.ExitFailure, err
	}
	if _, err := os.Stat(req.BinaryPath); err != nil {
		return types.ExitFailure, &InputNotFoundError{Path: req.BinaryPath}
	}
	if _, err := os.Stat(req.MetadataPath); err != nil {
		return types.ExitFailure, &InputNotFoundError{Path: req.MetadataPath}
	}

	toolchain, err := o.resolveToolchain(req.Options)
	if err != nil {
		return types.ExitFailure, err
	}

	started := o.clock.Now()
	timings := make(map[string]time.Duration)
	watch := stopwatch.New(o.clock, func(label string, elapsed time.Duration) {
		timings[label] = elapsed
		o.logger.Info("finished", "scope", label, "elapsed", elapsed)
	})

	o.logger.Info("starting dump run",
		"binary", req.BinaryPath, "metadata", req.MetadataPath,
		"layout", req.Options.Layout, "sort", req.Options.Sort,
		"solution", req.Options.CreateSolution)

	var images []analysis.Image
	if analyzeErr := watch.Measure("analysis", func() error {
		var loadErr error
		images, loadErr = o.analyzer.LoadFromFile(req.BinaryPath, req.MetadataPath)
		return loadErr
	}); analyzeErr != nil {
		return types.ExitFailure, &AnalysisFailureError{Binary: req.BinaryPath, Metadata: req.MetadataPath, Cause: analyzeErr}
	}
	if len(images) == 0 {
		return types.ExitFailure, &AnalysisFailureError{Binary: req.BinaryPath, Metadata: req.MetadataPath}
	}

	effective := req.Options.Effective()
	renderOpts := layout.RenderOptions{
		ExcludedNamespaces: effective.ExcludedNamespaces,
		SuppressMetadata:   effective.SuppressMetadata,
		MustCompile:        effective.MustCompile,
	}
	engine := layout.NewEngine(toolchain, o.logger)

	run := manifest.Run{
		Binary:    req.BinaryPath,
		Metadata:  req.MetadataPath,
		Layout:    effective.Layout.String(),
		Sort:      effective.Sort.String(),
		Solution:  req.Options.CreateSolution,
		StartedAt: started,
	}

	for i, img := range images {
		// Cancellation takes effect between images, never mid-artifact.
		if err := ctx.Err(); err != nil {
			return types.ExitFailure, err
		}

		sourcePath := artifact.PlanPath(string(req.Options.OutputBasePath), i)
		scriptPath := artifact.PlanPath(string(req.Options.ScriptBasePath), i)
		scope := fmt.Sprintf("image %d (%s)", i, img.Name)

		var model *typemodel.Model
		if imageErr := watch.Measure(scope, func() error {
			var buildErr error
			model, buildErr = o.builder.BuildModel(img)
			if buildErr != nil {
				return buildErr
			}
			if dispatchErr := engine.Dispatch(model, req.Options, sourcePath, o.factory(model, renderOpts)); dispatchErr != nil {
				return dispatchErr
			}
			return o.script.WriteScript(model, scriptPath)
		}); imageErr != nil {
			o.logger.Error("image failed, artifacts from earlier images are retained",
				"image", img.Name, "index", i, "err", imageErr)
			return types.ExitFailure, imageErr
		}

		run.Images = append(run.Images, manifest.Image{
			Name:       img.Name,
			Types:      len(model.Entries),
			SourcePath: sourcePath,
			ScriptPath: scriptPath,
			Elapsed:    timings[scope].String(),
		})
	}

	run.Duration = o.clock.Since(started).String()
	manifestPath := string(fspath.JoinStr(fspath.Dir(req.Options.OutputBasePath), manifest.FileName))
	if err := manifest.Write(manifestPath, run); err != nil {
		return types.ExitFailure, err
	}

	o.logger.Info("dump run complete", "images", len(images), "manifest", manifestPath)
	return types.ExitSuccess, nil
}

// resolveToolchain resolves both wildcard paths and probes each resolved
// directory for existence and for its marker file. Only solution mode
// consults the toolchain. A wildcard resolution miss is not an error here;
// it surfaces as a missing path at the probe.
func (o *Orchestrator) resolveToolchain(opts dumpopts.Options) (layout.ToolchainPaths, error) {
	if !opts.CreateSolution {
		return layout.ToolchainPaths{}, nil
	}

	root, err := o.resolveMarkedPath(opts.ToolchainRoot, source.ToolchainMarkerFile)
	if err != nil {
		return layout.ToolchainPaths{}, err
	}
	assemblies, err := o.resolveMarkedPath(opts.ToolchainAssembliesRoot, source.AssembliesMarkerFile)
	if err != nil {
		return layout.ToolchainPaths{}, err
	}
	o.logger.Debug("toolchain resolved", "root", root, "assemblies", assemblies)
	return layout.ToolchainPaths{Root: root, AssembliesRoot: assemblies}, nil
}

func (o *Orchestrator) resolveMarkedPath(path types.WildcardPath, marker string) (string, error) {
	resolved, err := wildcard.Resolve(string(path), o.prober)
	if err != nil {
		return "", err
	}
	if _, statErr := os.Stat(resolved); statErr != nil {
		return "", &InputNotFoundError{Path: resolved}
	}
	markerPath := filepath.Join(resolved, marker)
	if _, statErr := os.Stat(markerPath); statErr != nil {
		return "", &InputNotFoundError{Path: markerPath}
	}
	return resolved, nil
}
