// SPDX-License-Identifier: MPL-2.0

package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	// bundleMagic is the marker every metadata bundle must carry.
	bundleMagic = "TDMP"
	// bundleVersion is the only bundle revision this build understands.
	bundleVersion = 1
)

// ErrInvalidBundle is the sentinel error wrapped by InvalidBundleError.
var ErrInvalidBundle = errors.New("invalid metadata bundle")

type (
	// metadataBundle is the on-disk shape of an extracted metadata file. One
	// bundle holds every module (image) recovered from the paired binary.
	metadataBundle struct {
		Magic   string         `json:"magic"`
		Version int            `json:"version"`
		Modules []moduleRecord `json:"modules"`
	}

	moduleRecord struct {
		Name               string       `json:"name"`
		Types              []TypeRecord `json:"types"`
		AssemblyAttributes []string     `json:"assemblyAttributes,omitempty"`
	}

	// TypeRecord is one reconstructed type as serialized in the bundle.
	TypeRecord struct {
		Index      int            `json:"index"`
		Name       string         `json:"name"`
		Namespace  string         `json:"namespace,omitempty"`
		Assembly   string         `json:"assembly,omitempty"`
		Kind       string         `json:"kind,omitempty"`
		BaseType   string         `json:"baseType,omitempty"`
		Attributes []string       `json:"attributes,omitempty"`
		Fields     []FieldRecord  `json:"fields,omitempty"`
		Methods    []MethodRecord `json:"methods,omitempty"`
	}

	// FieldRecord is one field of a reconstructed type.
	FieldRecord struct {
		Name     string `json:"name"`
		Type     string `json:"type"`
		Offset   uint32 `json:"offset"`
		IsStatic bool   `json:"static,omitempty"`
	}

	// MethodRecord is one method of a reconstructed type.
	MethodRecord struct {
		Name       string `json:"name"`
		Signature  string `json:"signature"`
		ReturnType string `json:"returnType"`
		Pointer    uint64 `json:"pointer,omitempty"`
	}

	// InvalidBundleError is returned when a metadata file exists but cannot
	// be used: malformed JSON, wrong magic, or an unsupported revision.
	InvalidBundleError struct {
		Path   string
		Reason string
	}
)

// Error implements the error interface.
func (e *InvalidBundleError) Error() string {
	return fmt.Sprintf("metadata bundle %q: %s", e.Path, e.Reason)
}

// Unwrap returns ErrInvalidBundle so callers can use errors.Is for programmatic detection.
func (e *InvalidBundleError) Unwrap() error { return ErrInvalidBundle }

// readBundle parses and validates the metadata bundle at path.
func readBundle(path string) (*metadataBundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata bundle: %w", err)
	}

	var bundle metadataBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, &InvalidBundleError{Path: path, Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	if bundle.Magic != bundleMagic {
		return nil, &InvalidBundleError{Path: path, Reason: fmt.Sprintf("magic %q, want %q", bundle.Magic, bundleMagic)}
	}
	if bundle.Version != bundleVersion {
		return nil, &InvalidBundleError{Path: path, Reason: fmt.Sprintf("unsupported version %d, want %d", bundle.Version, bundleVersion)}
	}
	if len(bundle.Modules) == 0 {
		return nil, &InvalidBundleError{Path: path, Reason: "bundle holds no modules"}
	}
	for i, mod := range bundle.Modules {
		if mod.Name == "" {
			return nil, &InvalidBundleError{Path: path, Reason: fmt.Sprintf("module %d has an empty name", i)}
		}
	}
	return &bundle, nil
}
