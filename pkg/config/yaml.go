package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ToYAML encodes c with two-space indentation. A nil config encodes to nil.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := errors.Join(enc.Encode(c), enc.Close()); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// ToYAMLWithHeader is ToYAML preceded by a comment block and a blank line.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	body, err := c.ToYAML()
	if err != nil || header == "" {
		return body, err
	}
	return append([]byte(strings.TrimRight(header, "\n")+"\n\n"), body...), nil
}

// FromYAML decodes a config file. Unknown keys are errors, so a misspelt
// rule field fails loudly. JSON documents decode too.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	switch {
	case errors.Is(err, io.EOF): // empty or comments only
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.CaseInsensitive = clonePtr(c.CaseInsensitive)
	clone.Only = slices.Clone(c.Only)
	clone.Except = slices.Clone(c.Except)
	clone.Rules = slices.Clone(c.Rules)
	clone.Ignore = slices.Clone(c.Ignore)
	clone.Output.Sanitize = clonePtr(c.Output.Sanitize)
	clone.Output.AnnotateCode = clonePtr(c.Output.AnnotateCode)
	return &clone
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
