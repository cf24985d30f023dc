package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter renders the raw, unnormalized response as pretty-printed
// JSON with 2-space indentation. Key order follows the response's own
// iteration order.
type JSONFormatter struct{}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the response as indented JSON followed by a newline.
func (f *JSONFormatter) Format(w io.Writer, response any) error {
	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}

// JSONLFormatter renders one compact JSON object per record, one per line,
// in normalization order. Zero records emit zero lines.
type JSONLFormatter struct{}

// Name returns the formatter name.
func (f *JSONLFormatter) Name() string {
	return "jsonl"
}

// Format writes each extracted record as a single JSON line.
func (f *JSONLFormatter) Format(w io.Writer, response any) error {
	for _, record := range ExtractRecords(response) {
		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}
