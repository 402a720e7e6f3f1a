// SPDX-License-Identifier: MPL-2.0

package analysis

import "github.com/charmbracelet/log"

type (
	// Image is one module recovered from the binary+metadata pair. Images
	// keep the bundle's order; that order decides artifact numbering
	// downstream.
	Image struct {
		// Name is the module name as recorded in the bundle ("Assembly-CSharp.dll", ...).
		Name string
		// Format and Arch describe the container the image was paired with.
		Format BinaryFormat
		Arch   string
		// Types holds the image's reconstructed type records in bundle order.
		Types []TypeRecord
		// AssemblyAttributes are the assembly-level attribute strings, if any.
		AssemblyAttributes []string
	}

	// Engine pairs a binary with its extracted metadata bundle and produces
	// the ordered images a dump run works on.
	Engine struct {
		logger *log.Logger
	}
)

// NewEngine creates an analysis engine. A nil logger falls back to the
// package-level default.
func NewEngine(logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{logger: logger}
}

// LoadFromFile sniffs the binary's container, reads the metadata bundle, and
// returns the bundle's modules as ordered images. The binary is identified
// only; its sections are never parsed, the bundle is the source of truth for
// type content.
func (e *Engine) LoadFromFile(binaryPath, metadataPath string) ([]Image, error) {
	info, err := DetectFormat(binaryPath)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("binary container identified",
		"path", binaryPath, "format", info.Format, "arch", info.Arch, "wordsize", info.WordSize)

	bundle, err := readBundle(metadataPath)
	if err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(bundle.Modules))
	for _, mod := range bundle.Modules {
		images = append(images, Image{
			Name:               mod.Name,
			Format:             info.Format,
			Arch:               info.Arch,
			Types:              mod.Types,
			AssemblyAttributes: mod.AssemblyAttributes,
		})
	}
	e.logger.Info("analysis complete", "images", len(images), "format", info.Format)
	return images, nil
}
