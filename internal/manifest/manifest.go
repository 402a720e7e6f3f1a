// SPDX-License-Identifier: MPL-2.0

// Package manifest writes the run manifest: a TOML summary of one completed
// dump run, placed next to the first source artifact so downstream tooling
// can locate every artifact the run produced.
package manifest

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"typedump/internal/artifact"
)

// FileName is the manifest's file name within the output directory.
const FileName = "typedump-run.toml"

type (
	// Run summarizes one completed dump run.
	Run struct {
		Binary    string    `toml:"binary"`
		Metadata  string    `toml:"metadata"`
		Layout    string    `toml:"layout"`
		Sort      string    `toml:"sort"`
		Solution  bool      `toml:"solution"`
		StartedAt time.Time `toml:"started_at"`
		Duration  string    `toml:"duration"`
		Images    []Image   `toml:"images"`
	}

	// Image records the artifacts written for one image.
	Image struct {
		Name       string `toml:"name"`
		Types      int    `toml:"types"`
		SourcePath string `toml:"source_path"`
		ScriptPath string `toml:"script_path"`
		Elapsed    string `toml:"elapsed"`
	}
)

// Write renders the run manifest as TOML at path. The manifest is an
// artifact of the run; a write failure fails the run.
func Write(path string, run Run) error {
	data, err := toml.Marshal(run)
	if err != nil {
		return fmt.Errorf("encoding run manifest: %w", err)
	}
	return artifact.WriteFile(path, data)
}

// Read loads a run manifest from path.
func Read(path string) (Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("reading run manifest: %w", err)
	}
	var run Run
	if err := toml.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("decoding run manifest: %w", err)
	}
	return run, nil
}
