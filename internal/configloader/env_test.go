package configloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobbcode/pkg/config"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromEnvironment(map[string]string{
		"GOBBCODE_CASE_INSENSITIVE":           "true",
		"GOBBCODE_ONLY":                       "bold,italic",
		"GOBBCODE_OUTPUT_FORMAT":              "markdown",
		"GOBBCODE_OUTPUT_SANITIZE":            "false",
		"GOBBCODE_SERVER_RENDER_TIMEOUT":      "750ms",
		"GOBBCODE_SERVER_RATE_LIMIT_REQUESTS": "10",
		"GOBBCODE_SERVER_REDIS_URL":           "redis://localhost:6379/1",
		"GOBBCODE_JOBS":                       "2",
		"UNRELATED":                           "x",
	})
	require.NoError(t, err)

	assert.True(t, cfg.IsCaseInsensitive())
	assert.Equal(t, []string{"bold", "italic"}, cfg.Only)
	assert.Equal(t, config.FormatMarkdown, cfg.Output.Format)
	require.NotNil(t, cfg.Output.Sanitize)
	assert.False(t, *cfg.Output.Sanitize)
	assert.Equal(t, 750*time.Millisecond, cfg.Server.RenderTimeout)
	assert.Equal(t, 10, cfg.Server.RateLimitRequests)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Server.RedisURL)
	assert.Equal(t, 2, cfg.Jobs)
}

func TestLoadFromEnvironment_UnsetLeavesZero(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromEnvironment(map[string]string{})
	require.NoError(t, err)

	assert.Nil(t, cfg.CaseInsensitive)
	assert.Nil(t, cfg.Output.Sanitize)
	assert.Empty(t, cfg.Only)
	assert.Empty(t, cfg.Rules)
	assert.Zero(t, cfg.Server.RenderTimeout)
}

func TestLoadFromEnvironment_CustomRules(t *testing.T) {
	t.Parallel()

	cfg, err := loadFromEnvironment(map[string]string{
		"GOBBCODE_RULES_0_NAME":    "spoiler",
		"GOBBCODE_RULES_0_PATTERN": `\[SPOILER\](.*?)\[/SPOILER\]`,
		"GOBBCODE_RULES_0_REPLACE": "<details>$1</details>",
		"GOBBCODE_RULES_0_CONTENT": "$1",
	})
	require.NoError(t, err)

	require.Len(t, cfg.Rules, 1)
	assert.Equal(t, "spoiler", cfg.Rules[0].Name)
	assert.Equal(t, "<details>$1</details>", cfg.Rules[0].Replace)
}

func TestLoadFromEnvironment_BadValue(t *testing.T) {
	t.Parallel()

	_, err := loadFromEnvironment(map[string]string{"GOBBCODE_SERVER_CACHE_TTL": "soon"})
	assert.Error(t, err)
}
