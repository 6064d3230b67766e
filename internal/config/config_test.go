package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		fileConfig string
		env        map[string]string

		want          *Config
		wantErrorPart string
	}{
		{
			name:       "Defaults apply when the file is empty",
			fileConfig: "",
			want: &Config{
				API: APIConfig{
					BaseURL:       "http://localhost:5000",
					RetryAttempts: 3,
				},
				Outputs: OutputsConfig{
					NotesDirectory: "downloads",
				},
			},
		},
		{
			name: "File values override defaults",
			fileConfig: `
api:
  base_url: https://studymate.example.com
  retry_attempts: 5
outputs:
  notes_directory: /tmp/notes
`,
			want: &Config{
				API: APIConfig{
					BaseURL:       "https://studymate.example.com",
					RetryAttempts: 5,
				},
				Outputs: OutputsConfig{
					NotesDirectory: "/tmp/notes",
				},
			},
		},
		{
			name:       "Environment variables override the file",
			fileConfig: "api:\n  base_url: https://file.example.com\n",
			env: map[string]string{
				"STUDYMATE_API_BASE_URL": "https://env.example.com",
				"STUDYMATE_API_TOKEN":    "secret-token",
			},
			want: &Config{
				API: APIConfig{
					BaseURL:       "https://env.example.com",
					Token:         "secret-token",
					RetryAttempts: 3,
				},
				Outputs: OutputsConfig{
					NotesDirectory: "downloads",
				},
			},
		},
		{
			name:          "Invalid base URL is rejected",
			fileConfig:    "api:\n  base_url: not-a-url\n",
			wantErrorPart: "api.base_url",
		},
		{
			name:          "Empty notes directory is rejected",
			fileConfig:    "outputs:\n  notes_directory: \"\"\n",
			wantErrorPart: "outputs.notes_directory",
		},
		{
			name:          "Malformed YAML is rejected",
			fileConfig:    "api: [not a mapping",
			wantErrorPart: "could not be read",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.env {
				t.Setenv(key, value)
			}
			configFile := writeConfigFile(t, tc.fileConfig)

			got, err := Load(configFile)

			if tc.wantErrorPart != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErrorPart)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	assert.Error(t, err)
}
