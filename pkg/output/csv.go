package output

import (
	"bytes"
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"github.com/mmoney-cli/mmoney/pkg/ordered"
)

// CSVFormatter renders normalized records as CSV. The column set is the
// union of every flattened key across all records, sorted lexicographically
// so that heterogeneous record shapes still produce a deterministic header.
// Missing keys and null values render as empty fields. Zero records emit
// zero bytes, not even a header.
type CSVFormatter struct{}

// Name returns the formatter name.
func (f *CSVFormatter) Name() string {
	return "csv"
}

// Format writes the records as a header row plus one row per record.
func (f *CSVFormatter) Format(w io.Writer, response any) error {
	records := ExtractRecords(response)
	if len(records) == 0 {
		return nil
	}

	flattened := make([]*ordered.Map, 0, len(records))
	for _, record := range records {
		flattened = append(flattened, flattenRecord(record))
	}

	columns := map[string]struct{}{}
	for _, record := range flattened {
		for _, key := range record.Keys() {
			columns[key] = struct{}{}
		}
	}
	header := make([]string, 0, len(columns))
	for key := range columns {
		header = append(header, key)
	}
	sort.Strings(header)

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, record := range flattened {
		for i, key := range header {
			if value, ok := record.Get(key); ok {
				row[i] = scalarText(value)
			} else {
				row[i] = ""
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	out := strings.TrimRight(buf.String(), "\n")
	_, err := io.WriteString(w, out+"\n")
	return err
}

// flattenRecord flattens a mapping record; a non-mapping record becomes a
// single "value" column.
func flattenRecord(record any) *ordered.Map {
	if m, ok := record.(*ordered.Map); ok {
		return Flatten(m)
	}
	flat := ordered.NewMap()
	flat.Set("value", record)
	return flat
}
