package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tally/internal/diag"
	"tally/internal/source"
)

// Render produces the plain text form of one diagnostic:
//
//	Runtime Error: Division by zero
//	File <stdin>, line 1
//	Traceback (most recent call last):
//	  in <stdin>, at 1
//
//	5 / 0
//	    ^
func Render(d *diag.Diagnostic, fs *source.FileSet) string {
	return render(d, fs, PrettyOpts{}, plainPalette)
}

// Pretty пишет диагностики подряд, разделяя их пустой строкой.
// Цвет включается опцией.
func Pretty(w io.Writer, diags []*diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	pal := plainPalette
	if opts.Color {
		pal = colorPalette()
	}
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, render(d, fs, opts, pal)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

type palette struct {
	header func(a ...any) string
	where  func(a ...any) string
	frame  func(a ...any) string
	caret  func(a ...any) string
}

var plainPalette = palette{
	header: fmt.Sprint,
	where:  fmt.Sprint,
	frame:  fmt.Sprint,
	caret:  fmt.Sprint,
}

func colorPalette() palette {
	header := color.New(color.FgRed, color.Bold)
	header.EnableColor()
	where := color.New(color.FgCyan)
	where.EnableColor()
	frame := color.New(color.Faint)
	frame.EnableColor()
	caret := color.New(color.FgRed, color.Bold)
	caret.EnableColor()
	return palette{
		header: header.SprintFunc(),
		where:  where.SprintFunc(),
		frame:  frame.SprintFunc(),
		caret:  caret.SprintFunc(),
	}
}

func render(d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) string {
	var b strings.Builder
	b.WriteString(pal.header(d.Kind.String() + ": " + d.Message))
	b.WriteByte('\n')

	var file *source.File
	name := "<unknown>"
	if fs != nil && int(d.Span.File) < fs.Len() {
		file = fs.Get(d.Span.File)
		name = formatPath(file, fs, opts.PathMode)
	}
	b.WriteString(pal.where(fmt.Sprintf("File %s, line %d", name, d.Span.Start.Line+1)))

	if d.HasTraceback() {
		b.WriteString("\nTraceback (most recent call last):")
		for _, fr := range d.Traceback {
			b.WriteByte('\n')
			b.WriteString(pal.frame(fmt.Sprintf("  in %s, at %d", fr.Name, fr.Span.Start.Line+1)))
		}
	}

	if file != nil {
		b.WriteString("\n\n")
		excerpt := StringWithArrows(file, d.Span)
		lines := strings.Split(excerpt, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteByte('\n')
			}
			// нечётные строки - каретки
			if i%2 == 1 {
				line = pal.caret(line)
			}
			b.WriteString(line)
		}
	}
	return b.String()
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", fs.BaseDir())
	}
}
