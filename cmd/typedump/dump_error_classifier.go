// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"typedump/internal/analysis"
	"typedump/internal/app/dump"
	"typedump/internal/issue"
	"typedump/internal/layout"
	"typedump/pkg/dumpopts"
	"typedump/pkg/types"
	"typedump/pkg/wildcard"
)

// classifyDumpError maps dump pipeline failures to issue catalog IDs and
// returns a styled message for CLI rendering. It preserves actionable error details.
//
// Case order matters for errors that wrap each other: a malformed metadata
// bundle surfaces inside an AnalysisFailureError, so the bundle sentinel is
// checked first; filesystem errors from the analysis phase must classify as
// analysis failures before the artifact-write fallback sees them.
func classifyDumpError(err error, req DumpRequest, verbose bool) (issueID issue.Id, styledMsg string) {
	issueID = issue.AnalysisFailedId

	var notFound *dump.InputNotFoundError
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, analysis.ErrInvalidBundle):
		issueID = issue.MetadataParseErrorId
	case errors.Is(err, dump.ErrAnalysisFailure):
		issueID = issue.AnalysisFailedId
	case errors.Is(err, wildcard.ErrUnsupportedPath),
		errors.Is(err, types.ErrInvalidWildcardPath):
		issueID = issue.UnsupportedWildcardPathId
	case errors.Is(err, layout.ErrUnsupportedCombination),
		errors.Is(err, dumpopts.ErrInvalidSchema),
		errors.Is(err, dumpopts.ErrInvalidOrder):
		issueID = issue.UnsupportedLayoutId
	case errors.Is(err, dumpopts.ErrToolchainPathRequired):
		issueID = issue.ToolchainNotFoundId
	case errors.As(err, &notFound):
		switch notFound.Path {
		case req.BinaryPath:
			issueID = issue.BinaryNotFoundId
		case req.MetadataPath:
			issueID = issue.MetadataNotFoundId
		default:
			// Input probes cover the binary, the metadata bundle, and the
			// resolved toolchain directories with their marker files; any
			// other probed path belongs to the toolchain.
			issueID = issue.ToolchainNotFoundId
		}
	case errors.Is(err, types.ErrInvalidFilesystemPath), errors.As(err, &pathErr):
		// After analysis succeeded, the remaining filesystem operations are
		// artifact and manifest writes.
		issueID = issue.ArtifactWriteFailedId
	}

	return issueID, fmt.Sprintf("\n%s %s\n", ErrorStyle.Render("Error:"), formatErrorForDisplay(err, verbose))
}
