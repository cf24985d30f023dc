package ordered

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodePreservesKeyOrder(t *testing.T) {
	// Keys deliberately not in sorted order.
	input := `{"zeta":1,"alpha":2,"mid":{"b":true,"a":null}}`

	v, err := Decode([]byte(input))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	m, ok := v.(*Map)
	if !ok {
		t.Fatalf("Decode() = %T, want *Map", v)
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Keys() = %v", got)
	}

	inner, _ := m.Get("mid")
	im, ok := inner.(*Map)
	if !ok {
		t.Fatalf("nested value = %T, want *Map", inner)
	}
	if got := im.Keys(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("nested Keys() = %v", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"object", `{"z":1,"a":"x","n":null,"b":false}`},
		{"nested", `{"outer":{"y":[1,2,{"k":"v"}],"x":3.5}}`},
		{"array root", `[{"b":1},{"a":2}]`},
		{"scalar root", `"hello"`},
		{"number precision", `{"big":12345678901234567890,"dec":0.1}`},
		{"empty object", `{}`},
		{"empty array", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.input))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			out, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(out) != tt.input {
				t.Errorf("round trip = %s, want %s", out, tt.input)
			}
		})
	}
}

func TestMarshalIndentKeepsOrder(t *testing.T) {
	v, err := Decode([]byte(`{"z":1,"a":2}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	want := "{\n  \"z\": 1,\n  \"a\": 2\n}"
	if string(out) != want {
		t.Errorf("MarshalIndent() = %q, want %q", out, want)
	}
}

func TestSetOverwriteKeepsPosition(t *testing.T) {
	m := NewMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 3)

	if got := m.Keys(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Keys() = %v", got)
	}
	v, _ := m.Get("a")
	if v != 3 {
		t.Errorf("Get(a) = %v, want 3", v)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestDecodeScalars(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{`null`, nil},
		{`true`, true},
		{`"s"`, "s"},
		{`42`, json.Number("42")},
	}
	for _, tt := range tests {
		v, err := Decode([]byte(tt.input))
		if err != nil {
			t.Fatalf("Decode(%s) error = %v", tt.input, err)
		}
		if v != tt.want {
			t.Errorf("Decode(%s) = %#v, want %#v", tt.input, v, tt.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	// Trailing bytes must be rejected whether they form a valid JSON
	// token ({"b":2}, 2) or not (extra).
	for _, input := range []string{``, `{`, `{"a":}`, `{"a":1} extra`, `{"a":1} {"b":2}`, `[1] 2`} {
		if _, err := Decode([]byte(input)); err == nil {
			t.Errorf("Decode(%q) succeeded, want error", input)
		}
	}
}

func TestUnmarshalJSONRequiresObject(t *testing.T) {
	var m Map
	if err := json.Unmarshal([]byte(`{"x":1}`), &m); err != nil {
		t.Fatalf("Unmarshal object: %v", err)
	}
	if !m.Has("x") {
		t.Error("expected key x after unmarshal")
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &m); err == nil {
		t.Error("Unmarshal array into Map must fail")
	}
}
