package output

import (
	"fmt"
	"io"
	"os"
)

// Formats understood by Writer.
const (
	FormatHuman = "human"
	FormatTable = "table"
	FormatJSON  = "json"
)

// Writer prints labelled result sets. Data goes to Stdout; diagnostics
// go to Stderr.
type Writer struct {
	Format string
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Writer for format on the process streams.
func New(format string) *Writer {
	return &Writer{
		Format: format,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Section prints one result set: the label followed by its documents.
// Every document must marshal to a BSON document (a struct, map or bson.D).
func (w *Writer) Section(name, label string, docs []any) error {
	switch w.Format {
	case FormatJSON:
		return writeJSONSection(w.Stdout, name, label, docs)
	case FormatTable:
		return writeTableSection(w.Stdout, label, docs)
	case FormatHuman, "":
		return writeHumanSection(w.Stdout, label, docs)
	default:
		return fmt.Errorf("unknown output format %q", w.Format)
	}
}

// Info prints a one-line message in human and table modes. In JSON mode it
// is a no-op so stdout stays machine-readable.
func (w *Writer) Info(format string, args ...any) {
	if w.Format == FormatJSON {
		return
	}
	fmt.Fprintln(w.Stdout, StyledText(fmt.Sprintf(format, args...), infoStyle))
}

// Error prints err to Stderr.
func (w *Writer) Error(err error) {
	fmt.Fprintf(w.Stderr, "%s %s\n", StyledText("Error:", errorStyle), err)
}
