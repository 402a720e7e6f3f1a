// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"typedump/pkg/platform"
)

const (
	// LayoutSingle renders every type into one flat artifact.
	// Layout values are defined locally to avoid coupling config to
	// pkg/dumpopts; the CLI casts to dumpopts.Schema at the boundary.
	LayoutSingle LayoutScheme = "single"
	// LayoutNamespace renders one artifact (or directory) per namespace.
	LayoutNamespace LayoutScheme = "namespace"
	// LayoutAssembly renders one artifact (or directory) per source assembly.
	LayoutAssembly LayoutScheme = "assembly"
	// LayoutClass renders one artifact per type, grouped by namespace directory.
	LayoutClass LayoutScheme = "class"
	// LayoutTree renders one artifact per type nested under assembly then namespace.
	LayoutTree LayoutScheme = "tree"

	// SortIndex orders types by their numeric declaration index.
	SortIndex SortOrder = "index"
	// SortName orders types by ordinal name comparison.
	SortName SortOrder = "name"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidLayoutScheme is returned when a LayoutScheme value is not recognized.
	ErrInvalidLayoutScheme = errors.New("invalid layout scheme")
	// ErrInvalidSortOrder is returned when a SortOrder value is not recognized.
	ErrInvalidSortOrder = errors.New("invalid sort order")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidNamespacePrefix is returned when a NamespacePrefix value is whitespace-only.
	ErrInvalidNamespacePrefix = errors.New("invalid namespace prefix")
	// ErrInvalidToolchainPath is returned when a ToolchainPath value is whitespace-only.
	ErrInvalidToolchainPath = errors.New("invalid toolchain path")
	// ErrInvalidOutputDirPath is returned when an OutputDirPath value is whitespace-only.
	ErrInvalidOutputDirPath = errors.New("invalid output dir path")
	// ErrInvalidArtifactFileName is the sentinel error wrapped by InvalidArtifactFileNameError.
	ErrInvalidArtifactFileName = errors.New("invalid artifact file name")
	// ErrInvalidDumpConfig is the sentinel error wrapped by InvalidDumpConfigError.
	ErrInvalidDumpConfig = errors.New("invalid dump config")
	// ErrInvalidToolchainConfig is the sentinel error wrapped by InvalidToolchainConfigError.
	ErrInvalidToolchainConfig = errors.New("invalid toolchain config")
	// ErrInvalidOutputConfig is the sentinel error wrapped by InvalidOutputConfigError.
	ErrInvalidOutputConfig = errors.New("invalid output config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// LayoutScheme specifies the artifact partitioning strategy used when no
	// --layout flag is given. Defined locally to avoid coupling config to
	// pkg/dumpopts; the CLI casts to dumpopts.Schema at the boundary.
	LayoutScheme string

	// InvalidLayoutSchemeError is returned when a LayoutScheme value is not recognized.
	// It wraps ErrInvalidLayoutScheme for errors.Is() compatibility.
	InvalidLayoutSchemeError struct {
		Value LayoutScheme
	}

	// SortOrder specifies the in-artifact ordering key used when no --sort
	// flag is given. Defined locally to avoid coupling config to pkg/dumpopts;
	// the CLI casts to dumpopts.Order at the boundary.
	SortOrder string

	// InvalidSortOrderError is returned when a SortOrder value is not recognized.
	// It wraps ErrInvalidSortOrder for errors.Is() compatibility.
	InvalidSortOrderError struct {
		Value SortOrder
	}

	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// NamespacePrefix represents one entry of the default namespace exclusion
	// list. Matching is by string prefix, so "System" also covers "System.IO".
	// A valid prefix must be non-empty and not whitespace-only.
	NamespacePrefix string

	// InvalidNamespacePrefixError is returned when a NamespacePrefix value is
	// empty or whitespace-only. It wraps ErrInvalidNamespacePrefix for errors.Is().
	InvalidNamespacePrefixError struct {
		Value NamespacePrefix
	}

	// ToolchainPath represents a filesystem path to a toolchain installation
	// root. The path may contain '*' wildcard segments that are resolved at
	// run time. The zero value ("") is valid and means "not configured";
	// solution mode then requires the path on the command line.
	ToolchainPath string

	// InvalidToolchainPathError is returned when a ToolchainPath value is
	// non-empty but whitespace-only.
	InvalidToolchainPathError struct {
		Value ToolchainPath
	}

	// OutputDirPath represents a filesystem path to the default artifact
	// directory. The zero value ("") is valid and means "current directory".
	// Non-zero values must not be whitespace-only.
	OutputDirPath string

	// InvalidOutputDirPathError is returned when an OutputDirPath value is
	// non-empty but whitespace-only.
	InvalidOutputDirPathError struct {
		Value OutputDirPath
	}

	// ArtifactFileName represents the default file name of a generated
	// artifact. A valid name must be non-empty, must not contain path
	// separators, and must not be a Windows reserved device name.
	ArtifactFileName string

	// InvalidArtifactFileNameError is returned when an ArtifactFileName value
	// violates one of the naming constraints. Reason carries the specific
	// constraint for the error message.
	InvalidArtifactFileNameError struct {
		Value  ArtifactFileName
		Reason string
	}

	// InvalidDumpConfigError is returned when a DumpConfig has invalid fields.
	// It wraps ErrInvalidDumpConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidDumpConfigError struct {
		FieldErrors []error
	}

	// InvalidToolchainConfigError is returned when a ToolchainConfig has invalid fields.
	// It wraps ErrInvalidToolchainConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidToolchainConfigError struct {
		FieldErrors []error
	}

	// InvalidOutputConfigError is returned when an OutputConfig has invalid fields.
	// It wraps ErrInvalidOutputConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidOutputConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Dump provides the defaults for the dump command's options.
		Dump DumpConfig `json:"dump" mapstructure:"dump"`
		// Toolchain locates the toolchain install for solution mode.
		Toolchain ToolchainConfig `json:"toolchain" mapstructure:"toolchain"`
		// Output configures default artifact placement and naming.
		Output OutputConfig `json:"output" mapstructure:"output"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// DumpConfig holds the defaults for dump options. Every field can be
	// overridden per run by the corresponding command-line flag.
	DumpConfig struct {
		// Layout selects the artifact partitioning strategy.
		Layout LayoutScheme `json:"layout" mapstructure:"layout"`
		// Sort selects the in-artifact ordering key.
		Sort SortOrder `json:"sort" mapstructure:"sort"`
		// Flatten collapses directory trees into single artifacts for the
		// layouts that support it.
		Flatten bool `json:"flatten" mapstructure:"flatten"`
		// SuppressMetadata omits pointers, offsets, and indices from output.
		SuppressMetadata bool `json:"suppress_metadata" mapstructure:"suppress_metadata"`
		// MustCompile tidies emitted declarations so the output compiles.
		MustCompile bool `json:"must_compile" mapstructure:"must_compile"`
		// SeparateAttrs splits assembly-level attributes into their own artifact.
		SeparateAttrs bool `json:"separate_attrs" mapstructure:"separate_attrs"`
		// ExcludedNamespaces lists namespace prefixes omitted from output.
		ExcludedNamespaces []NamespacePrefix `json:"excluded_namespaces" mapstructure:"excluded_namespaces"`
	}

	// ToolchainConfig locates the toolchain installation referenced by
	// solution-mode project descriptors. Both paths may contain '*' wildcard
	// segments resolved at run time.
	ToolchainConfig struct {
		// Root is the toolchain installation root.
		Root ToolchainPath `json:"root" mapstructure:"root"`
		// Assemblies is the toolchain's reference assemblies root.
		Assemblies ToolchainPath `json:"assemblies" mapstructure:"assemblies"`
	}

	// OutputConfig configures default artifact placement and naming.
	OutputConfig struct {
		// Directory is the base directory for artifacts when --output is not given.
		Directory OutputDirPath `json:"directory" mapstructure:"directory"`
		// SourceFile is the default source artifact file name.
		SourceFile ArtifactFileName `json:"source_file" mapstructure:"source_file"`
		// ScriptFile is the default script artifact file name.
		ScriptFile ArtifactFileName `json:"script_file" mapstructure:"script_file"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the DumpConfig has valid fields.
// It delegates to Layout.IsValid(), Sort.IsValid(), and each excluded
// namespace prefix's IsValid(). Bool fields need no validation.
func (c DumpConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Layout.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Sort.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	for _, prefix := range c.ExcludedNamespaces {
		if valid, fieldErrs := prefix.IsValid(); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidDumpConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidDumpConfigError.
func (e *InvalidDumpConfigError) Error() string {
	return fmt.Sprintf("invalid dump config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidDumpConfig for errors.Is() compatibility.
func (e *InvalidDumpConfigError) Unwrap() error { return ErrInvalidDumpConfig }

// IsValid returns whether the ToolchainConfig has valid fields.
// It delegates to Root.IsValid() and Assemblies.IsValid().
func (c ToolchainConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Root.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Assemblies.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidToolchainConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolchainConfigError.
func (e *InvalidToolchainConfigError) Error() string {
	return fmt.Sprintf("invalid toolchain config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidToolchainConfig for errors.Is() compatibility.
func (e *InvalidToolchainConfigError) Unwrap() error { return ErrInvalidToolchainConfig }

// IsValid returns whether the OutputConfig has valid fields.
// It delegates to Directory.IsValid(), SourceFile.IsValid(), and
// ScriptFile.IsValid().
func (c OutputConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Directory.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.SourceFile.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.ScriptFile.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidOutputConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputConfigError.
func (e *InvalidOutputConfigError) Error() string {
	return fmt.Sprintf("invalid output config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidOutputConfig for errors.Is() compatibility.
func (e *InvalidOutputConfigError) Unwrap() error { return ErrInvalidOutputConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to Dump.IsValid(), Toolchain.IsValid(), Output.IsValid(),
// and UI.IsValid().
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Dump.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Toolchain.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidLayoutSchemeError.
func (e *InvalidLayoutSchemeError) Error() string {
	return fmt.Sprintf("invalid layout scheme %q (valid: single, namespace, assembly, class, tree)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidLayoutSchemeError) Unwrap() error {
	return ErrInvalidLayoutScheme
}

// String returns the string representation of the LayoutScheme.
func (l LayoutScheme) String() string { return string(l) }

// IsValid returns whether the LayoutScheme is one of the defined layouts,
// and a list of validation errors if it is not.
func (l LayoutScheme) IsValid() (bool, []error) {
	switch l {
	case LayoutSingle, LayoutNamespace, LayoutAssembly, LayoutClass, LayoutTree:
		return true, nil
	default:
		return false, []error{&InvalidLayoutSchemeError{Value: l}}
	}
}

// Error implements the error interface for InvalidSortOrderError.
func (e *InvalidSortOrderError) Error() string {
	return fmt.Sprintf("invalid sort order %q (valid: index, name)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidSortOrderError) Unwrap() error {
	return ErrInvalidSortOrder
}

// String returns the string representation of the SortOrder.
func (s SortOrder) String() string { return string(s) }

// IsValid returns whether the SortOrder is one of the defined sort orders,
// and a list of validation errors if it is not.
func (s SortOrder) IsValid() (bool, []error) {
	switch s {
	case SortIndex, SortName:
		return true, nil
	default:
		return false, []error{&InvalidSortOrderError{Value: s}}
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// String returns the string representation of the NamespacePrefix.
func (p NamespacePrefix) String() string { return string(p) }

// IsValid returns whether the NamespacePrefix is valid.
// A valid prefix must be non-empty and not whitespace-only.
func (p NamespacePrefix) IsValid() (bool, []error) {
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidNamespacePrefixError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidNamespacePrefixError.
func (e *InvalidNamespacePrefixError) Error() string {
	return fmt.Sprintf("invalid namespace prefix %q: must be non-empty", e.Value)
}

// Unwrap returns ErrInvalidNamespacePrefix for errors.Is() compatibility.
func (e *InvalidNamespacePrefixError) Unwrap() error { return ErrInvalidNamespacePrefix }

// String returns the string representation of the ToolchainPath.
func (p ToolchainPath) String() string { return string(p) }

// IsValid returns whether the ToolchainPath is valid.
// The zero value ("") is valid (means "not configured").
// Non-zero values must not be whitespace-only.
func (p ToolchainPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidToolchainPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidToolchainPathError.
func (e *InvalidToolchainPathError) Error() string {
	return fmt.Sprintf("invalid toolchain path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidToolchainPath for errors.Is() compatibility.
func (e *InvalidToolchainPathError) Unwrap() error { return ErrInvalidToolchainPath }

// String returns the string representation of the OutputDirPath.
func (p OutputDirPath) String() string { return string(p) }

// IsValid returns whether the OutputDirPath is valid.
// The zero value ("") is valid (means "current directory").
// Non-zero values must not be whitespace-only.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputDirPathError.
func (e *InvalidOutputDirPathError) Error() string {
	return fmt.Sprintf("invalid output dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidOutputDirPath for errors.Is() compatibility.
func (e *InvalidOutputDirPathError) Unwrap() error { return ErrInvalidOutputDirPath }

// String returns the string representation of the ArtifactFileName.
func (n ArtifactFileName) String() string { return string(n) }

// IsValid returns whether the ArtifactFileName is valid.
// A valid name must be non-empty, must not contain path separators, and must
// not be a Windows reserved device name (artifacts are written on every
// platform a dump may later be copied to).
func (n ArtifactFileName) IsValid() (bool, []error) {
	if strings.TrimSpace(string(n)) == "" {
		return false, []error{&InvalidArtifactFileNameError{Value: n, Reason: "must be non-empty"}}
	}
	if strings.ContainsAny(string(n), `/\`) {
		return false, []error{&InvalidArtifactFileNameError{Value: n, Reason: "must not contain path separators"}}
	}
	if platform.IsWindowsReservedName(string(n)) {
		return false, []error{&InvalidArtifactFileNameError{Value: n, Reason: "is a Windows reserved device name"}}
	}
	return true, nil
}

// Error implements the error interface for InvalidArtifactFileNameError.
func (e *InvalidArtifactFileNameError) Error() string {
	return fmt.Sprintf("invalid artifact file name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidArtifactFileName for errors.Is() compatibility.
func (e *InvalidArtifactFileNameError) Unwrap() error { return ErrInvalidArtifactFileName }

// DefaultExcludedNamespaces returns the namespace prefixes excluded from
// output when neither config nor flags provide a list. These cover the
// runtime and engine namespaces that dominate a typical dump without
// carrying application types.
func DefaultExcludedNamespaces() []NamespacePrefix {
	return []NamespacePrefix{
		"System",
		"Mono",
		"Microsoft.Reflection",
		"Microsoft.Win32",
		"Internal.Runtime",
		"Unity",
		"UnityEditor",
		"UnityEngine",
		"UnityEngineInternal",
		"AOT",
		"JetBrains.Annotations",
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Dump: DumpConfig{
			Layout:             LayoutSingle,
			Sort:               SortIndex,
			Flatten:            false,
			SuppressMetadata:   false,
			MustCompile:        false,
			SeparateAttrs:      false,
			ExcludedNamespaces: DefaultExcludedNamespaces(),
		},
		Toolchain: ToolchainConfig{
			Root:       "", // Solution mode requires an explicit path when empty
			Assemblies: "",
		},
		Output: OutputConfig{
			Directory:  "", // Will use current directory if empty
			SourceFile: "types.cs",
			ScriptFile: "script.json",
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
