package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/config"
)

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts config.TemplateOptions
	}{
		{"minimal", config.TemplateOptions{}},
		{"full", config.TemplateOptions{Full: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := config.GenerateTemplate(tt.opts)
			require.NoError(t, err)
			assert.Contains(t, string(data), "# gobbcode configuration")

			cfg, err := config.FromYAML(data)
			require.NoError(t, err, "template must load back as config")
			assert.Equal(t, config.FormatHTML, cfg.Output.Format)
			assert.False(t, cfg.IsCaseInsensitive())
		})
	}
}

func TestGenerateTemplate_FullListsBuiltins(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Full: true, IncludeRules: []string{"bold", "youtube"}})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "#   bold")
	assert.Contains(t, out, "#   youtube")
	assert.NotContains(t, out, "#   italic")
}

func TestGenerateTemplate_JSON(t *testing.T) {
	t.Parallel()

	data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "output")
	assert.Contains(t, decoded, "server")
}
