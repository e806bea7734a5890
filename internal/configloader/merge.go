package configloader

import "github.com/yaklabco/gobbcode/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so false can win
//   - Name lists: override replaces base entirely if non-empty
//   - Custom rules: merged by name; a rule in override replaces the base
//     rule of the same name in place, new names are appended
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.CaseInsensitive != nil {
		result.CaseInsensitive = config.Bool(*override.CaseInsensitive)
	}

	if len(override.Only) > 0 {
		result.Only = append([]string(nil), override.Only...)
	}
	if len(override.Except) > 0 {
		result.Except = append([]string(nil), override.Except...)
	}
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	result.Rules = mergeRules(result.Rules, override.Rules)
	result.Output = mergeOutput(result.Output, override.Output)
	result.Server = mergeServer(result.Server, override.Server)

	// CLI-only fields.
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Write {
		result.Write = true
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Report != "" {
		result.Report = override.Report
	}

	return result
}

// mergeRules merges custom rules by name, keeping first-seen order.
func mergeRules(base, override []config.CustomRule) []config.CustomRule {
	if len(override) == 0 {
		return base
	}

	result := append([]config.CustomRule(nil), base...)
	for _, rule := range override {
		replaced := false
		for i := range result {
			if result[i].Name == rule.Name {
				result[i] = rule
				replaced = true
				break
			}
		}
		if !replaced {
			result = append(result, rule)
		}
	}
	return result
}

func mergeOutput(base, override config.OutputConfig) config.OutputConfig {
	result := base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Sanitize != nil {
		result.Sanitize = config.Bool(*override.Sanitize)
	}
	if override.AnnotateCode != nil {
		result.AnnotateCode = config.Bool(*override.AnnotateCode)
	}
	if override.Extension != "" {
		result.Extension = override.Extension
	}

	return result
}

func mergeServer(base, override config.ServerConfig) config.ServerConfig {
	result := base

	if override.Addr != "" {
		result.Addr = override.Addr
	}
	if override.ReadTimeout != 0 {
		result.ReadTimeout = override.ReadTimeout
	}
	if override.WriteTimeout != 0 {
		result.WriteTimeout = override.WriteTimeout
	}
	if override.RenderTimeout != 0 {
		result.RenderTimeout = override.RenderTimeout
	}
	if override.RateLimitRequests != 0 {
		result.RateLimitRequests = override.RateLimitRequests
	}
	if override.RateLimitWindow != 0 {
		result.RateLimitWindow = override.RateLimitWindow
	}
	if override.RedisURL != "" {
		result.RedisURL = override.RedisURL
	}
	if override.CacheTTL != 0 {
		result.CacheTTL = override.CacheTTL
	}
	if override.CachePrefix != "" {
		result.CachePrefix = override.CachePrefix
	}

	return result
}
