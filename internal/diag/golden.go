package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"tally/internal/source"
)

type shortDiagnostic struct {
	Kind    string
	Code    string
	Path    string
	Line    uint32
	Column  uint32
	Message string
}

// FormatShortDiagnostics renders diagnostics one per line:
//
//	<kind> <code> <path>:<line>:<col> <message>
//
// Entries are sorted by path, position and code so batch output is stable.
// Paths are relative to the FileSet base directory; virtual names are kept.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		if d == nil {
			continue
		}
		path, ok := resolvePath(fs, d.Span.File)
		if !ok {
			continue
		}
		start := d.Span.Start.Human()
		rendered = append(rendered, shortDiagnostic{
			Kind:    d.Kind.Slug(),
			Code:    d.Code.ID(),
			Path:    path,
			Line:    start.Line,
			Column:  start.Col,
			Message: sanitizeMessage(d.Message),
		})
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Kind, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func resolvePath(fs *source.FileSet, id source.FileID) (string, bool) {
	if int(id) >= fs.Len() {
		return "", false
	}
	file := fs.Get(id)
	return normalizePath(file.FormatPath("relative", fs.BaseDir())), true
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
