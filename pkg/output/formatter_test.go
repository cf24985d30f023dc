package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func render(t *testing.T, format, response string) string {
	t.Helper()
	f, err := New(format)
	if err != nil {
		t.Fatalf("New(%q): %v", format, err)
	}
	var buf bytes.Buffer
	if err := f.Format(&buf, decode(t, response)); err != nil {
		t.Fatalf("Format: %v", err)
	}
	return buf.String()
}

func TestNew(t *testing.T) {
	for _, name := range Names() {
		f, err := New(name)
		if err != nil {
			t.Errorf("New(%q) error = %v", name, err)
			continue
		}
		if f.Name() != name {
			t.Errorf("New(%q).Name() = %q", name, f.Name())
		}
	}

	if _, err := New("xml"); err == nil {
		t.Error("New(\"xml\") must fail")
	}

	f, err := New("")
	if err != nil || f.Name() != DefaultFormat {
		t.Errorf("New(\"\") = %v, %v; want the %s formatter", f, err, DefaultFormat)
	}
}

func TestJSONFormat(t *testing.T) {
	got := render(t, "json", `{"z":1,"accounts":[{"id":"a"}]}`)
	want := "{\n  \"z\": 1,\n  \"accounts\": [\n    {\n      \"id\": \"a\"\n    }\n  ]\n}\n"
	if got != want {
		t.Errorf("json output = %q, want %q", got, want)
	}
}

func TestJSONLFormat(t *testing.T) {
	got := render(t, "jsonl", `{"accounts":[{"id":"a","n":1},{"id":"b"}]}`)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("every jsonl line must be newline terminated")
	}
	for i, line := range lines {
		var v map[string]interface{}
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			t.Errorf("line %d is not valid JSON: %v", i, err)
		}
	}
	if lines[0] != `{"id":"a","n":1}` || lines[1] != `{"id":"b"}` {
		t.Errorf("unexpected lines: %v", lines)
	}
}

func TestJSONLEmptyRecords(t *testing.T) {
	if got := render(t, "jsonl", `[]`); got != "" {
		t.Errorf("jsonl of zero records = %q, want zero lines", got)
	}
}

func TestCSVFormat(t *testing.T) {
	// Two records with heterogeneous shapes; header must be the sorted
	// union of both records' flattened keys.
	response := `{"accounts":[{"id":"1","balance":{"current":100}},{"id":"2","name":"Savings"}]}`
	got := render(t, "csv", response)

	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows: %q", len(lines), got)
	}
	if lines[0] != "balance.current,id,name" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "100,1," {
		t.Errorf("row 1 = %q", lines[1])
	}
	if lines[2] != ",2,Savings" {
		t.Errorf("row 2 = %q", lines[2])
	}
	if strings.HasSuffix(got, "\n\n") {
		t.Error("trailing newline must be trimmed to one")
	}
}

func TestCSVZeroRecords(t *testing.T) {
	if got := render(t, "csv", `{"accounts":[]}`); got != "" {
		t.Errorf("csv of zero records = %q, want zero bytes", got)
	}
	if got := render(t, "csv", `null`); got != "" {
		t.Errorf("csv of null = %q, want zero bytes", got)
	}
}

func TestCSVNullAndListValues(t *testing.T) {
	got := render(t, "csv", `[{"id":"1","note":null,"tags":[{"t":"x"}]}]`)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != "id,note,tags" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != `1,,"[{""t"":""x""}]"` {
		t.Errorf("row = %q", lines[1])
	}
}

func TestCSVNonMappingRecord(t *testing.T) {
	got := render(t, "csv", `["a","b"]`)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if lines[0] != "value" || lines[1] != "a" || lines[2] != "b" {
		t.Errorf("unexpected csv: %v", lines)
	}
}

func TestTextFormat(t *testing.T) {
	got := render(t, "text", `{"accounts":[{"z":"last","a":{"b":1}},{"id":"2"}]}`)
	want := "a.b=1\nz=last\n---\nid=2\n"
	if got != want {
		t.Errorf("text output = %q, want %q", got, want)
	}
}

func TestTextZeroRecords(t *testing.T) {
	if got := render(t, "text", `[]`); got != "" {
		t.Errorf("text of zero records = %q, want zero lines", got)
	}
}

func TestTextNonMappingRecord(t *testing.T) {
	got := render(t, "text", `["x",null,3]`)
	want := "x\n---\n\n---\n3\n"
	if got != want {
		t.Errorf("text output = %q, want %q", got, want)
	}
}
