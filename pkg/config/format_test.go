package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/linguo/pkg/config"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.OutputFormat
		wantErr bool
	}{
		{"text", config.FormatText, false},
		{"JSON", config.FormatJSON, false},
		{" yaml ", config.FormatYAML, false},
		{"html", config.FormatHTML, false},
		{"sarif", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    config.CountMode
		wantErr bool
	}{
		{"files", config.ModeFiles, false},
		{"Lines", config.ModeLines, false},
		{"bytes", config.ModeBytes, false},
		{"words", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := config.ParseMode(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColor(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"auto", "always", "never", "NEVER"} {
		_, err := config.ParseColor(valid)
		require.NoError(t, err, valid)
	}

	_, err := config.ParseColor("sometimes")
	require.Error(t, err)
}

func TestFormats(t *testing.T) {
	t.Parallel()

	for _, f := range config.Formats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("diff").IsValid())
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, config.Enabled(nil, true))
	assert.False(t, config.Enabled(nil, false))
	assert.False(t, config.Enabled(config.Bool(false), true))
	assert.True(t, config.Enabled(config.Bool(true), false))
}
