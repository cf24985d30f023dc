package output

import (
	"fmt"
	"io"
	"strings"
)

// Formatter is the interface all output formatters implement. Format writes
// a rendering of the response to w; it never mutates the response.
type Formatter interface {
	// Format renders the response and writes it to w.
	Format(w io.Writer, response any) error

	// Name returns the formatter name (e.g. "json", "csv").
	Name() string
}

// DefaultFormat is the human-friendly default output format.
const DefaultFormat = "text"

// New returns the formatter for the given format name.
func New(format string) (Formatter, error) {
	switch format {
	case "json":
		return &JSONFormatter{}, nil
	case "jsonl":
		return &JSONLFormatter{}, nil
	case "csv":
		return &CSVFormatter{}, nil
	case "text", "":
		return &TextFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: %s)", format, strings.Join(Names(), ", "))
	}
}

// Names returns the valid format names.
func Names() []string {
	return []string{"text", "json", "jsonl", "csv"}
}
