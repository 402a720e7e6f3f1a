// SPDX-License-Identifier: MPL-2.0

package source

import (
	"crypto/sha1"
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"typedump/internal/artifact"
)

const (
	// ToolchainMarkerFile must exist under the resolved toolchain root for
	// the install to be considered usable.
	ToolchainMarkerFile = "sdk.version"
	// AssembliesMarkerFile must exist under the resolved assemblies root; it
	// doubles as the core reference the project descriptor links against.
	AssembliesMarkerFile = "mscorlib.dll"

	// csharpProjectTypeGUID is the well-known project type identifier C#
	// projects carry in solution descriptors.
	csharpProjectTypeGUID = "{FAE04EC0-301F-11D3-BF4B-00C04F79EFBC}"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templateSet = pongo2.NewSet("typedump", pongo2.NewFSLoader(templateFS))

// WriteSolution renders the class tree with attribute separation forced,
// then emits a project and a solution descriptor next to it, referencing the
// resolved toolchain paths so the generated tree builds against the local
// install.
func (r *Renderer) WriteSolution(path, toolchainRoot, toolchainAssembliesRoot string) error {
	if err := r.WriteClassTree(path, true); err != nil {
		return err
	}

	root := treeRoot(path)
	project := artifact.SafeFileName(strings.TrimSuffix(r.model.Image, filepath.Ext(r.model.Image)))
	ctx := pongo2.Context{
		"project_name":      project,
		"project_guid":      descriptorGUID(project),
		"project_type_guid": csharpProjectTypeGUID,
		"toolchain_root":    toolchainRoot,
		"assemblies_root":   toolchainAssembliesRoot,
		"core_assembly":     AssembliesMarkerFile,
	}

	csproj, err := renderTemplate("project.csproj.tmpl", ctx)
	if err != nil {
		return err
	}
	if err := artifact.WriteFile(filepath.Join(root, project+".csproj"), csproj); err != nil {
		return err
	}

	sln, err := renderTemplate("solution.sln.tmpl", ctx)
	if err != nil {
		return err
	}
	return artifact.WriteFile(filepath.Join(root, project+".sln"), sln)
}

func renderTemplate(name string, ctx pongo2.Context) ([]byte, error) {
	tmpl, err := templateSet.FromFile("templates/" + name)
	if err != nil {
		return nil, fmt.Errorf("loading template %s: %w", name, err)
	}
	out, err := tmpl.ExecuteBytes(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering template %s: %w", name, err)
	}
	return out, nil
}

// descriptorGUID derives a stable GUID-formatted identifier from the project
// name so repeated runs produce byte-identical descriptors.
func descriptorGUID(name string) string {
	sum := sha1.Sum([]byte(name))
	return strings.ToUpper(fmt.Sprintf("{%x-%x-%x-%x-%x}",
		sum[0:4], sum[4:6], sum[6:8], sum[8:10], sum[10:16]))
}
