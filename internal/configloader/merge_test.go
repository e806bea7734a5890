package configloader

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobbcode/pkg/config"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.CaseInsensitive = config.Bool(true)
	base.Only = []string{"bold"}
	base.Rules = []config.CustomRule{
		{Name: "a", Pattern: "a"},
		{Name: "b", Pattern: "b"},
	}

	override := &config.Config{
		CaseInsensitive: config.Bool(false),
		Rules: []config.CustomRule{
			{Name: "b", Pattern: "B"},
			{Name: "c", Pattern: "c"},
		},
		Output: config.OutputConfig{AnnotateCode: config.Bool(true)},
		Server: config.ServerConfig{CacheTTL: time.Hour},
	}

	merged := merge(base, override)

	assert.False(t, merged.IsCaseInsensitive())
	assert.Equal(t, []string{"bold"}, merged.Only, "empty override keeps base list")
	assert.Equal(t, []config.CustomRule{
		{Name: "a", Pattern: "a"},
		{Name: "b", Pattern: "B"},
		{Name: "c", Pattern: "c"},
	}, merged.Rules)
	assert.True(t, config.BoolValue(merged.Output.AnnotateCode))
	assert.Equal(t, config.FormatHTML, merged.Output.Format)
	assert.Equal(t, time.Hour, merged.Server.CacheTTL)
	assert.Equal(t, config.DefaultAddr, merged.Server.Addr)

	// Inputs are not modified.
	assert.True(t, base.IsCaseInsensitive())
	assert.Len(t, base.Rules, 2)
	assert.Equal(t, "b", base.Rules[1].Pattern)
}

func TestMerge_Nil(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Same(t, cfg, merge(nil, cfg))
	assert.Same(t, cfg, merge(cfg, nil))
}

func TestMerge_CLIFields(t *testing.T) {
	t.Parallel()

	merged := merge(config.NewConfig(), &config.Config{Jobs: 4, Write: true, OutDir: "dist", Report: "json"})

	assert.Equal(t, 4, merged.Jobs)
	assert.True(t, merged.Write)
	assert.Equal(t, "dist", merged.OutDir)
	assert.Equal(t, "json", merged.Report)
}
