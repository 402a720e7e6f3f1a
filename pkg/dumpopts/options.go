// SPDX-License-Identifier: MPL-2.0

package dumpopts

import (
	"errors"
	"strings"

	"typedump/pkg/types"
)

// ExclusionDisabled is the CLI literal that turns namespace exclusion off.
const ExclusionDisabled = "none"

// ErrToolchainPathRequired is returned when solution mode is requested
// without both toolchain paths configured.
var ErrToolchainPathRequired = errors.New("solution mode requires both toolchain paths")

// Options carries the configuration of one dump run. It is immutable for the
// duration of the run; the solution-mode override is applied through
// Effective, never by mutating the configured values.
type Options struct {
	// ExcludedNamespaces omits every type whose namespace starts with one of
	// these prefixes from all layouts. An empty slice disables exclusion.
	ExcludedNamespaces []string

	// Layout selects the artifact partitioning strategy.
	Layout Schema

	// Sort selects the in-artifact ordering key for layouts that use one.
	Sort Order

	// FlattenHierarchy collapses directory trees into single artifacts for
	// the layouts that support it (namespace, class).
	FlattenHierarchy bool

	// SuppressMetadata instructs the renderer to omit method pointers, field
	// offsets, and type indices from emitted text.
	SuppressMetadata bool

	// MustCompile instructs the renderer to tidy emitted declarations so the
	// output compiles (keyword escaping, attribute pruning).
	MustCompile bool

	// SeparateAssemblyAttributes splits assembly-level attribute text into
	// its own artifact in the layouts that emit it.
	SeparateAssemblyAttributes bool

	// CreateSolution enables solution mode: tree layout plus a buildable
	// project/solution descriptor referencing the resolved toolchain paths.
	CreateSolution bool

	// ToolchainRoot locates the toolchain installation; may contain '*'
	// segments. Consulted only in solution mode.
	ToolchainRoot types.WildcardPath

	// ToolchainAssembliesRoot locates the toolchain's reference assemblies;
	// may contain '*' segments. Consulted only in solution mode.
	ToolchainAssembliesRoot types.WildcardPath

	// OutputBasePath is the base path of the source artifact; disambiguated
	// per image by the artifact path planner.
	OutputBasePath types.FilesystemPath

	// ScriptBasePath is the base path of the script artifact, disambiguated
	// the same way.
	ScriptBasePath types.FilesystemPath
}

// Effective returns the options the layout dispatch actually honors.
// Solution mode behaves as tree layout with forced compile tidying and
// separate assembly attribute artifacts; everything else passes through.
func (o Options) Effective() Options {
	if !o.CreateSolution {
		return o
	}
	effective := o
	effective.Layout = SchemaTree
	effective.MustCompile = true
	effective.SeparateAssemblyAttributes = true
	return effective
}

// ExcludesNamespace reports whether types in the given namespace are omitted
// from output. Matching is by prefix, so excluding "System" also excludes
// "System.IO". An empty exclusion list excludes nothing.
func (o Options) ExcludesNamespace(namespace string) bool {
	for _, prefix := range o.ExcludedNamespaces {
		if strings.HasPrefix(namespace, prefix) {
			return true
		}
	}
	return false
}

// Validate checks that every enum field carries a defined value, that both
// artifact base paths are present, and that the toolchain paths are
// structurally valid.
func (o Options) Validate() error {
	if err := o.Layout.Validate(); err != nil {
		return err
	}
	if err := o.Sort.Validate(); err != nil {
		return err
	}
	if ok, errs := o.OutputBasePath.IsValid(); !ok {
		return errors.Join(errs...)
	}
	if ok, errs := o.ScriptBasePath.IsValid(); !ok {
		return errors.Join(errs...)
	}
	if err := o.ToolchainRoot.Validate(); err != nil {
		return err
	}
	if err := o.ToolchainAssembliesRoot.Validate(); err != nil {
		return err
	}
	if o.CreateSolution && (o.ToolchainRoot == "" || o.ToolchainAssembliesRoot == "") {
		return ErrToolchainPathRequired
	}
	return nil
}
