package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/randalmurphal/emitkit/pkg/emitter"
)

// ErrNotAList indicates the descriptor key does not hold a list of maps.
var ErrNotAList = errors.New("channel descriptors must be a list of maps")

// Descriptors decodes the list at key into channel descriptors. Each entry
// accepts name, role, sticky, sticky_last and description. A missing key
// yields no descriptors. Every invalid entry is reported.
func (c Config) Descriptors(key string) ([]emitter.Descriptor, error) {
	raw, ok := c.data[key]
	if !ok {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: %w, got %T", key, ErrNotAList, raw)
	}

	var (
		descs []emitter.Descriptor
		errs  error
	)
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%s[%d]: %w, got %T", key, i, ErrNotAList, item))
			continue
		}
		entry := New(m)
		d := emitter.Property().
			Name(entry.String("name", "")).
			Role(emitter.Role(entry.String("role", ""))).
			Sticky(entry.Bool("sticky", false)).
			StickyLast(entry.Bool("sticky_last", false)).
			Description(entry.String("description", "")).
			Build()
		if d.Name != "" {
			if err := d.Validate(); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("%s[%d]: %w", key, i, err))
				continue
			}
		}
		descs = append(descs, d)
	}
	if errs != nil {
		return nil, errs
	}
	return descs, nil
}

// LoadDescriptors reads the "channels" list from a YAML or JSON file.
func LoadDescriptors(path string) ([]emitter.Descriptor, error) {
	cfg, err := FromFile(path)
	if err != nil {
		return nil, err
	}
	return cfg.Descriptors("channels")
}
