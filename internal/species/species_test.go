package species

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpeciesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "species.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	params := Defaults()
	require.Len(t, params, 2)

	assert.Equal(t, "aedes_albopictus", params[0].Name)
	assert.Equal(t, 8.7, params[0].TminC)
	assert.Equal(t, 39.6, params[0].TmaxC)
	assert.Equal(t, 6.33e-5, params[0].Scale)

	assert.Equal(t, "culex_pipiens", params[1].Name)
	assert.Equal(t, 0.1, params[1].TminC)
	assert.Equal(t, 38.5, params[1].TmaxC)
	assert.Equal(t, 3.76e-5, params[1].Scale)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	params, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), params)
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeSpeciesFile(t, `
species "aedes_aegypti" {
  tmin_c = 11.36
  tmax_c = 39.17
  scale  = 7.86e-5
}

species "culex_pipiens" {
  tmin_c = 0.1
  tmax_c = 38.5
  scale  = 3.76e-5
}
`)

	params, err := Load(path)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "aedes_aegypti", params[0].Name)
	assert.Equal(t, 11.36, params[0].TminC)
	assert.Equal(t, 7.86e-5, params[0].Scale)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "thresholds inverted",
			content: `
species "x" {
  tmin_c = 40.0
  tmax_c = 10.0
  scale  = 1e-5
}
`,
			wantErr: "must be below",
		},
		{
			name: "zero scale",
			content: `
species "x" {
  tmin_c = 5.0
  tmax_c = 35.0
  scale  = 0.0
}
`,
			wantErr: "must be positive",
		},
		{
			name: "duplicate name",
			content: `
species "x" {
  tmin_c = 5.0
  tmax_c = 35.0
  scale  = 1e-5
}
species "x" {
  tmin_c = 6.0
  tmax_c = 36.0
  scale  = 2e-5
}
`,
			wantErr: "defined twice",
		},
		{
			name:    "no blocks",
			content: `# nothing here`,
			wantErr: "no species blocks",
		},
		{
			name:    "not hcl",
			content: `{{{`,
			wantErr: "parse species file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSpeciesFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.Error(t, err)
}
