// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	BinaryNotFoundId Id = iota + 1
	MetadataNotFoundId
	MetadataParseErrorId
	AnalysisFailedId
	ToolchainNotFoundId
	UnsupportedWildcardPathId
	UnsupportedLayoutId
	ArtifactWriteFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // registry key
	mdMsg    MarkdownMsg // Markdown body rendered to the terminal
	docLinks []HttpLink  // project documentation for this failure class
	extLinks []HttpLink  // third-party references worth a look
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render produces the terminal form of the issue, appending a "See also"
// list when the issue carries links.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks)+len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	binaryNotFoundIssue = &Issue{
		id: BinaryNotFoundId,
		mdMsg: `
# Binary not found!

The application binary you pointed typedump at does not exist.

## Things you can try:
- Check the path for typos:
~~~
$ typedump dump ./GameAssembly.so ./metadata.json
~~~

- Make sure the binary was extracted from the application package first
- Use an absolute path if the binary lives outside the current directory`,
	}

	metadataNotFoundIssue = &Issue{
		id: MetadataNotFoundId,
		mdMsg: `
# Metadata bundle not found!

typedump needs the companion metadata bundle produced by the extraction
step, and the path you gave does not exist. The binary itself was found.

## Things you can try:
- Run your extractor first; the dump step consumes its output
- Check the bundle path for typos
- Pass the bundle explicitly as the second argument:
~~~
$ typedump dump ./GameAssembly.so ./extracted/metadata.json
~~~`,
	}

	metadataParseErrorIssue = &Issue{
		id: MetadataParseErrorId,
		mdMsg: `
# Failed to read metadata bundle!

The metadata bundle exists but could not be parsed.

## Common causes:
- The bundle was produced by an incompatible extractor version
- The file is truncated, or is not a metadata bundle at all
- The document is corrupt

## Things you can try:
- Re-run the extractor to regenerate the bundle
- Run with verbose mode for the exact parse error:
~~~
$ typedump --verbose dump <binary> <metadata>
~~~`,
	}

	analysisFailedIssue = &Issue{
		id: AnalysisFailedId,
		mdMsg: `
# Analysis produced no images!

The binary and metadata pair was read, but no analyzable image came out
of it.

## Common causes:
- The binary is not the application's main code module
- Binary and metadata come from different builds of the application
- The binary's container format is not recognized (not ELF, PE, or Mach-O)

## Things you can try:
- Verify binary and metadata were taken from the same application build
- Point typedump at the main code module, not a helper library`,
	}

	toolchainNotFoundIssue = &Issue{
		id: ToolchainNotFoundId,
		mdMsg: `
# Toolchain not found!

Solution mode writes a project descriptor referencing a locally installed
toolchain, and the configured location did not resolve to one.

## How the lookup works:
- Each ` + "`*`" + ` segment in the configured path matches the greatest directory name
- The resolved root must contain ` + "`sdk.version`" + `
- The resolved assemblies directory must contain ` + "`mscorlib.dll`" + `

## Things you can try:
- Point --toolchain-root at your install; wildcards are fine:
~~~
$ typedump dump --solution --toolchain-root "/opt/unity/editors/*" <binary> <metadata>
~~~

- Persist the paths in your config file:
~~~cue
toolchain: {
	root:       "/opt/unity/editors/*"
	assemblies: "/opt/unity/editors/*/Data/MonoBleedingEdge/lib/mono/4.5"
}
~~~

- Check the resolution yourself:
~~~
$ typedump toolchain resolve "/opt/unity/editors/*"
~~~`,
	}

	unsupportedWildcardPathIssue = &Issue{
		id: UnsupportedWildcardPathId,
		mdMsg: `
# Unsupported wildcard path!

Wildcard resolution needs an anchored starting point, and this path does
not have one.

## Paths we cannot resolve:
- A ` + "`*`" + ` in the very first segment of a relative path (` + "`*/sdk`" + `)
- UNC network paths (` + "`\\\\host\\share\\...`" + `)

## Things you can try:
- Make the first segment literal, or use an absolute path
- Map the network share to a drive letter first`,
	}

	unsupportedLayoutIssue = &Issue{
		id: UnsupportedLayoutId,
		mdMsg: `
# Unsupported layout combination!

The layout/sort combination you requested is not one typedump knows how
to write.

## Valid layouts:
- **single**: everything in one file
- **namespace**: one file per namespace
- **assembly**: one file per assembly
- **class**: one file per class
- **tree**: a namespace directory tree

## Valid sort orders:
- **index**: by type definition index
- **name**: by full type name

The class and tree layouts ignore the sort order.

## Example:
~~~
$ typedump dump --layout namespace --sort name <binary> <metadata>
~~~`,
	}

	artifactWriteFailedIssue = &Issue{
		id: ArtifactWriteFailedId,
		mdMsg: `
# Failed to write artifact!

An output artifact could not be written.

## Common causes:
- The output directory is not writable
- The disk is full
- An existing file blocks a directory typedump needs to create

## Things you can try:
- Point --output somewhere writable:
~~~
$ typedump dump --output ./out/types.cs <binary> <metadata>
~~~

- Artifacts already written for earlier images are retained; fix the
  cause and re-run to regenerate the rest`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the typedump configuration file.

## Configuration file locations:
- Linux: ~/.config/typedump/typedump.cue
- macOS: ~/Library/Application Support/typedump/typedump.cue
- Windows: %APPDATA%\typedump\typedump.cue
- Fallback: ./typedump.cue

## Things you can try:
- Create a default configuration:
~~~
$ typedump init
~~~

- Check the configuration syntax
- Remove the config file to use defaults

## Example configuration:
~~~cue
dump: {
	layout: "tree"
	excluded_namespaces: ["System", "UnityEngine"]
}

ui: {
	color_scheme: "auto"
	verbose:      false
}
~~~`,
	}

	issues = map[Id]*Issue{
		binaryNotFoundIssue.Id():          binaryNotFoundIssue,
		metadataNotFoundIssue.Id():        metadataNotFoundIssue,
		metadataParseErrorIssue.Id():      metadataParseErrorIssue,
		analysisFailedIssue.Id():          analysisFailedIssue,
		toolchainNotFoundIssue.Id():       toolchainNotFoundIssue,
		unsupportedWildcardPathIssue.Id(): unsupportedWildcardPathIssue,
		unsupportedLayoutIssue.Id():       unsupportedLayoutIssue,
		artifactWriteFailedIssue.Id():     artifactWriteFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

// Values returns every registered issue, ordered by ID.
func Values() []*Issue {
	all := maps.Values(issues)
	slices.SortFunc(all, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return all
}

func Get(id Id) *Issue {
	return issues[id]
}
