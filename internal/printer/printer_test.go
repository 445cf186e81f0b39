package printer

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pypeek/pypeek/internal/summary"
)

// Test Plan for printer:
// - Text output lists classes, methods, top-level functions, entry point
// - Functions without returns render the (no return) placeholder
// - Verbose mode adds condition annotations with ok/negated markers
// - JSON output round-trips the model

func sampleSummary() *summary.ModuleSummary {
	return &summary.ModuleSummary{
		ModuleDoc: "Sample module.",
		Classes: []summary.Class{
			{
				Name: "Greeter",
				Methods: []summary.FunctionInfo{
					{
						Name:       "greet",
						Parameters: []string{"self", "name"},
						Doc:        "Say hello.\nLonger description.",
						Returns: []summary.ReturnInfo{
							{SourceLine: "return name", Conditions: []string{"name"}},
							{SourceLine: "return None", Conditions: []string{"not (name)"}},
						},
					},
				},
			},
		},
		TopLevelFunctions: []summary.FunctionInfo{
			{Name: "helper", Parameters: []string{}, Returns: []summary.ReturnInfo{}},
		},
		MainFunction: &summary.FunctionInfo{
			Name:       "main",
			Parameters: []string{},
			Returns: []summary.ReturnInfo{
				{SourceLine: "return 0", Conditions: []string{}},
			},
		},
		IsExecutable: true,
	}
}

func TestText_Plain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Text(&buf, "/tmp/sample.py", sampleSummary(), Options{})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "sample.py")
	assert.Contains(t, out, "Sample module.")
	assert.Contains(t, out, "class Greeter")
	assert.Contains(t, out, "* greet(self, name)")
	assert.Contains(t, out, "doc: Say hello.")
	assert.NotContains(t, out, "Longer description")
	assert.Contains(t, out, "-> return name")
	assert.Contains(t, out, "* helper()")
	assert.Contains(t, out, "(no return)")
	assert.Contains(t, out, "Entry point:")
	assert.Contains(t, out, "Executable: yes")

	// Conditions only render in verbose mode.
	assert.NotContains(t, out, "[when:")
}

func TestText_Verbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := Text(&buf, "sample.py", sampleSummary(), Options{Verbose: true})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "-> return name  [when: name] +")
	assert.Contains(t, out, "-> return None  [when: not (name)] -")

	// An unconditional return carries no annotation even in verbose mode.
	assert.Contains(t, out, "-> return 0\n")
}

func TestText_NotExecutable(t *testing.T) {
	t.Parallel()

	ms := &summary.ModuleSummary{}
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, "x.py", ms, Options{}))
	assert.Contains(t, buf.String(), "Executable: no")
}

func TestJSON_RoundTrip(t *testing.T) {
	t.Parallel()

	ms := sampleSummary()
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, ms))

	var decoded summary.ModuleSummary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, ms.ModuleDoc, decoded.ModuleDoc)
	assert.Equal(t, ms.Classes, decoded.Classes)
	assert.Equal(t, ms.TopLevelFunctions, decoded.TopLevelFunctions)
	assert.Equal(t, ms.MainFunction, decoded.MainFunction)
	assert.Equal(t, ms.IsExecutable, decoded.IsExecutable)
}
