package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/mmoney-cli/mmoney/pkg/ordered"
)

// TextFormatter renders normalized records as key=value lines, sorted
// lexicographically by key within each record. Consecutive records are
// separated by a literal "---" line, with no separator before the first or
// after the last. Suited for grep/awk extraction.
type TextFormatter struct{}

// Name returns the formatter name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes each extracted record as sorted key=value lines.
func (f *TextFormatter) Format(w io.Writer, response any) error {
	for i, record := range ExtractRecords(response) {
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}
		m, ok := record.(*ordered.Map)
		if !ok {
			if _, err := fmt.Fprintf(w, "%s\n", scalarText(record)); err != nil {
				return err
			}
			continue
		}
		flat := Flatten(m)
		keys := append([]string(nil), flat.Keys()...)
		sort.Strings(keys)
		for _, key := range keys {
			value, _ := flat.Get(key)
			if _, err := fmt.Fprintf(w, "%s=%s\n", key, scalarText(value)); err != nil {
				return err
			}
		}
	}
	return nil
}
