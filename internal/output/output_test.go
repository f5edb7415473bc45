package output

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/mj1618/macpaste/internal/model"
	"github.com/mj1618/macpaste/internal/policy"
	"gopkg.in/yaml.v3"
)

// capture runs fn with stdout redirected and returns what it wrote.
func capture(t *testing.T, fn func() error) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()
	w.Close()
	os.Stdout = old

	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String()
}

func TestPrintYAML(t *testing.T) {
	windows := []model.Window{
		{App: "Safari", PID: 1234, Title: "GitHub", ID: 42, Bounds: model.Bounds{X: 10, Y: 20, Width: 100, Height: 30}},
	}

	out := capture(t, func() error { return PrintYAML(windows) })

	if bytes.Count([]byte(out), []byte("\n")) <= 1 {
		t.Errorf("YAML output should be multi-line, got:\n%s", out)
	}
	var decoded []model.Window
	if err := yaml.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(decoded) != 1 || decoded[0].App != "Safari" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded[0].Bounds.Width != 100 {
		t.Errorf("bounds width = %v, want 100", decoded[0].Bounds.Width)
	}
}

func TestPrint_JSONCompactAndPretty(t *testing.T) {
	origFormat, origPretty := OutputFormat, PrettyOutput
	defer func() { OutputFormat, PrettyOutput = origFormat, origPretty }()

	rules := []policy.Rule{{Name: "Terminal", Skip: true}}

	OutputFormat = FormatJSON
	PrettyOutput = false
	compact := capture(t, func() error { return Print(rules) })
	if bytes.Count([]byte(compact), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", compact)
	}

	PrettyOutput = true
	pretty := capture(t, func() error { return Print(rules) })
	if bytes.Count([]byte(pretty), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", pretty)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal([]byte(compact), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := decoded[0]["no_focus"]; ok {
		t.Error("false no_focus should be omitted")
	}
}

func TestPrint_UnsupportedFormat(t *testing.T) {
	orig := OutputFormat
	defer func() { OutputFormat = orig }()
	OutputFormat = Format("xml")
	if err := Print(1); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatYAML, "yaml": FormatYAML, "json": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("agent"); err == nil {
		t.Error("ParseFormat(\"agent\") should fail")
	}
}
