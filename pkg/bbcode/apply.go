package bbcode

import (
	"context"
	"regexp"
)

// applyUntilFixpoint replaces every match of re with tmpl, repeating
// until re no longer matches.
func applyUntilFixpoint(re *regexp.Regexp, tmpl, source string) string {
	for re.MatchString(source) {
		source = re.ReplaceAllString(source, tmpl)
	}
	return source
}

func applyUntilFixpointContext(ctx context.Context, re *regexp.Regexp, tmpl, source string) (string, error) {
	for re.MatchString(source) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		source = re.ReplaceAllString(source, tmpl)
	}
	return source, nil
}
