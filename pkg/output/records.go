// Package output renders service responses to the terminal.
//
// The package has two layers. The normalizer (this file) turns an arbitrary
// nested response into the flat list of records it logically contains,
// independent of which envelope key the service nested them under. The
// formatters (json.go, csv.go, text.go) render either the raw
// response or its normalized records in a deterministic, scriptable shape.
package output

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mmoney-cli/mmoney/pkg/ordered"
)

// collectionKeys are envelope field names known to hold record lists.
var collectionKeys = []string{
	"accounts",
	"results",
	"transactions",
	"categories",
	"householdTransactionTags",
	"credentials",
	"budgetData",
	"recurringTransactions",
	"splits",
	"snapshots",
	"history",
}

// ExtractRecords extracts the list of records a response logically contains.
//
// The service's response envelopes are heterogeneous and operation-specific,
// so extraction degrades gracefully, first match wins:
//
//  1. A sequence is returned verbatim.
//  2. A mapping whose entries (in iteration order) include a sub-mapping
//     with a "results" sequence yields that inner sequence; this unwraps one
//     level of paginated-envelope nesting.
//  3. Otherwise the first entry (in iteration order) whose key is a known
//     collection field and whose value is a sequence yields that sequence.
//  4. Any other mapping is treated as a single record.
//  5. Scalars and null yield no records.
//
// Extraction never drops or duplicates a record relative to the response.
func ExtractRecords(response any) []any {
	switch v := response.(type) {
	case []any:
		return v
	case *ordered.Map:
		for _, key := range v.Keys() {
			value, _ := v.Get(key)
			if inner, ok := value.(*ordered.Map); ok {
				if results, ok := inner.Get("results"); ok {
					if seq, ok := results.([]any); ok {
						return seq
					}
				}
			}
		}
		for _, key := range v.Keys() {
			if !isCollectionKey(key) {
				continue
			}
			value, _ := v.Get(key)
			if seq, ok := value.([]any); ok {
				return seq
			}
		}
		return []any{v}
	default:
		return nil
	}
}

func isCollectionKey(key string) bool {
	for _, k := range collectionKeys {
		if key == k {
			return true
		}
	}
	return false
}

// Flatten reduces a nested record to a single level by joining nested
// mapping keys with dots, parent keys before children in the record's own
// iteration order. Sequence values are replaced by their compact JSON text
// (empty sequences by the empty string); scalars, including null, are kept
// untouched. Flattening an already-flat record returns an equal record.
func Flatten(record *ordered.Map) *ordered.Map {
	flat := ordered.NewMap()
	flattenInto(flat, "", record)
	return flat
}

func flattenInto(flat *ordered.Map, prefix string, m *ordered.Map) {
	for _, key := range m.Keys() {
		value, _ := m.Get(key)
		joined := key
		if prefix != "" {
			joined = prefix + "." + key
		}
		switch v := value.(type) {
		case *ordered.Map:
			flattenInto(flat, joined, v)
		case []any:
			flat.Set(joined, sequenceText(v))
		default:
			flat.Set(joined, v)
		}
	}
}

func sequenceText(seq []any) string {
	if len(seq) == 0 {
		return ""
	}
	data, err := json.Marshal(seq)
	if err != nil {
		return fmt.Sprintf("%v", seq)
	}
	return string(data)
}

// scalarText renders a flattened leaf for csv and text output. Null renders
// as the empty field.
func scalarText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
