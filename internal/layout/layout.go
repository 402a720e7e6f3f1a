// SPDX-License-Identifier: MPL-2.0

package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"typedump/pkg/dumpopts"
	"typedump/pkg/typemodel"
)

var (
	// ErrUnsupportedCombination is the sentinel error wrapped by UnsupportedCombinationError.
	ErrUnsupportedCombination = errors.New("unsupported layout/sort combination")
	// ErrNilModel is returned when Dispatch is handed no model to render.
	ErrNilModel = errors.New("nil type model")
)

type (
	// Comparator orders two type entries; negative when a sorts before b.
	Comparator func(a, b typemodel.TypeEntry) int

	// RenderOptions carries the per-run flags a source renderer honors across
	// every strategy: the exclusion set, metadata suppression, and compile
	// tidying. The dispatch engine never applies them itself.
	RenderOptions struct {
		ExcludedNamespaces []string
		SuppressMetadata   bool
		MustCompile        bool
	}

	// SourceRenderer renders one image's type model into source artifacts.
	// Implementations hold the model; the engine supplies the planned path,
	// the comparator, and the strategy-specific flags.
	SourceRenderer interface {
		WriteSingleFile(path string, cmp Comparator) error
		WriteByNamespace(path string, cmp Comparator, flatten bool) error
		WriteByAssembly(path string, cmp Comparator, separateAttributes bool) error
		WriteByClass(path string, flatten bool) error
		WriteClassTree(path string, separateAttributes bool) error
		WriteSolution(path, toolchainRoot, toolchainAssembliesRoot string) error
	}

	// ToolchainPaths carries the resolved toolchain locations consumed by
	// solution mode. Both are concrete paths; wildcard resolution happens
	// before the engine is constructed.
	ToolchainPaths struct {
		Root           string
		AssembliesRoot string
	}

	// UnsupportedCombinationError is returned when the effective
	// (layout, sort) pair has no dispatch strategy.
	// It wraps ErrUnsupportedCombination for errors.Is() compatibility.
	UnsupportedCombinationError struct {
		Layout dumpopts.Schema
		Sort   dumpopts.Order
	}

	// Engine dispatches one image's model to exactly one rendering strategy.
	Engine struct {
		toolchain ToolchainPaths
		logger    *log.Logger
	}
)

// Excludes reports whether types in the given namespace are omitted from
// output. Matching is by prefix, so excluding "System" also excludes
// "System.IO". An empty exclusion set excludes nothing.
func (o RenderOptions) Excludes(namespace string) bool {
	for _, prefix := range o.ExcludedNamespaces {
		if strings.HasPrefix(namespace, prefix) {
			return true
		}
	}
	return false
}

// Error implements the error interface for UnsupportedCombinationError.
func (e *UnsupportedCombinationError) Error() string {
	return fmt.Sprintf("no dispatch strategy for layout %q with sort %q", e.Layout, e.Sort)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *UnsupportedCombinationError) Unwrap() error { return ErrUnsupportedCombination }

// NewEngine creates a dispatch engine. Toolchain paths are only consulted in
// solution mode; a nil logger falls back to the package-level default.
func NewEngine(toolchain ToolchainPaths, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{toolchain: toolchain, logger: logger}
}

// Dispatch invokes exactly one rendering strategy for the model, selected by
// the effective (layout, sort) pair after the solution-mode override. Class
// and tree layouts ignore the sort order; their ordering comes from the
// directory listing itself. Every combination outside the defined strategies
// returns an UnsupportedCombinationError, never a silent no-op.
func (e *Engine) Dispatch(model *typemodel.Model, opts dumpopts.Options, artifactPath string, r SourceRenderer) error {
	if model == nil {
		return ErrNilModel
	}

	effective := opts.Effective()
	e.logger.Debug("dispatching image",
		"image", model.Image, "layout", effective.Layout, "sort", effective.Sort,
		"solution", effective.CreateSolution, "path", artifactPath)

	if effective.CreateSolution {
		return r.WriteSolution(artifactPath, e.toolchain.Root, e.toolchain.AssembliesRoot)
	}

	switch effective.Layout {
	case dumpopts.SchemaSingle:
		cmp := effective.Sort.Comparator()
		if cmp == nil {
			return &UnsupportedCombinationError{Layout: effective.Layout, Sort: effective.Sort}
		}
		return r.WriteSingleFile(artifactPath, cmp)
	case dumpopts.SchemaNamespace:
		cmp := effective.Sort.Comparator()
		if cmp == nil {
			return &UnsupportedCombinationError{Layout: effective.Layout, Sort: effective.Sort}
		}
		return r.WriteByNamespace(artifactPath, cmp, effective.FlattenHierarchy)
	case dumpopts.SchemaAssembly:
		cmp := effective.Sort.Comparator()
		if cmp == nil {
			return &UnsupportedCombinationError{Layout: effective.Layout, Sort: effective.Sort}
		}
		return r.WriteByAssembly(artifactPath, cmp, effective.SeparateAssemblyAttributes)
	case dumpopts.SchemaClass:
		return r.WriteByClass(artifactPath, effective.FlattenHierarchy)
	case dumpopts.SchemaTree:
		return r.WriteClassTree(artifactPath, effective.SeparateAssemblyAttributes)
	default:
		return &UnsupportedCombinationError{Layout: effective.Layout, Sort: effective.Sort}
	}
}
