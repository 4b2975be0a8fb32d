package automaton

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseYAMLCalculatorFile(t *testing.T) {
	data, err := os.ReadFile("testdata/calculator.yaml")
	require.NoError(t, err)

	a, err := ParseYAML(data)
	require.NoError(t, err)
	assert.True(t, a.Equal(newCalculator(t)))
}

func TestYAMLRoundTrip(t *testing.T) {
	a := newCalculator(t)

	data, err := yaml.Marshal(a)
	require.NoError(t, err)

	b, err := ParseYAML(data)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Definition(), b.Definition())
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "unknown transition end",
			data: "states: [A]\ntransitions: [A___0___B]\ninitial: A\n",
			want: ErrUnknownStateReference,
		},
		{
			name: "unknown initial state",
			data: "states: [A]\ninitial: B\n",
			want: ErrUnknownStateReference,
		},
		{
			name: "unknown accepting state",
			data: "states: [A]\ninitial: A\naccepting: [B]\n",
			want: ErrUnknownStateReference,
		},
		{
			name: "long symbol",
			data: "states: [A]\ntransitions: [{from: A, symbol: ab, to: A}]\ninitial: A\n",
			want: ErrInvalidTransitionSymbol,
		},
		{
			name: "long alphabet symbol",
			data: "states: [A]\nalphabet: [ab]\ninitial: A\n",
			want: ErrMalformedAutomaton,
		},
		{
			name: "scalar without separators",
			data: "states: [A]\ntransitions: [A0A]\ninitial: A\n",
			want: ErrMalformedText,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseYAML([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, a)
		})
	}

	_, err := ParseYAML([]byte("states: {"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	want := newCalculator(t)

	for _, path := range []string{"testdata/calculator.dfa", "testdata/calculator.yaml"} {
		t.Run(path, func(t *testing.T) {
			a, err := LoadFile(path)
			require.NoError(t, err)
			assert.True(t, a.Equal(want))
		})
	}

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.dfa"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.dfa")
	require.NoError(t, os.WriteFile(bad, []byte(definition("A___01___B")), 0o644))
	_, err = LoadFile(bad)
	assert.ErrorIs(t, err, ErrInvalidTransitionSymbol)
}
