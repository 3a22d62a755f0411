package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/randalmurphal/emitkit/pkg/emitter"
	"github.com/randalmurphal/emitkit/pkg/emitter/config"
)

const channelsYAML = `
channels:
  - name: progress
    role: notify
    sticky_last: true
    description: percent complete
  - name: audit
    role: observe
  - name: settled
    role: resolution
    sticky: true
`

func TestDescriptorsFromYAML(t *testing.T) {
	cfg, err := config.FromYAML([]byte(channelsYAML))
	require.NoError(t, err)

	descs, err := cfg.Descriptors("channels")
	require.NoError(t, err)
	require.Len(t, descs, 3)

	assert.Equal(t, emitter.Descriptor{
		Name:        "progress",
		Role:        emitter.RoleNotify,
		Sticky:      true,
		StickyLast:  true,
		Description: "percent complete",
	}, descs[0])
	assert.Equal(t, emitter.RoleObserve, descs[1].Role)
	assert.True(t, descs[2].Sticky)

	em, err := emitter.NewWithChannels(descs)
	require.NoError(t, err)
	_, ok := em.Lookup("progress")
	assert.True(t, ok)
}

func TestDescriptorsFromJSON(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"channels": [{"name": "audit", "role": "observe"}]}`))
	require.NoError(t, err)

	descs, err := cfg.Descriptors("channels")
	require.NoError(t, err)
	assert.Equal(t, []emitter.Descriptor{{Name: "audit", Role: emitter.RoleObserve}}, descs)
}

func TestDescriptorsMissingKey(t *testing.T) {
	descs, err := config.New(nil).Descriptors("channels")
	assert.NoError(t, err)
	assert.Empty(t, descs)
}

func TestDescriptorsInvalid(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
channels:
  - name: then
    role: notify
  - name: x
    role: bogus
  - just a string
`))
	require.NoError(t, err)

	_, err = cfg.Descriptors("channels")
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.ErrorIs(t, err, emitter.ErrReservedName)
	assert.ErrorIs(t, err, emitter.ErrInvalidRole)
	assert.ErrorIs(t, err, config.ErrNotAList)
}

func TestDescriptorsNotAList(t *testing.T) {
	cfg := config.New(map[string]any{"channels": "progress"})
	_, err := cfg.Descriptors("channels")
	assert.ErrorIs(t, err, config.ErrNotAList)
}

func TestLoadDescriptors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "channels.yml")
	require.NoError(t, os.WriteFile(path, []byte(channelsYAML), 0o600))

	descs, err := config.LoadDescriptors(path)
	require.NoError(t, err)
	assert.Len(t, descs, 3)

	_, err = config.LoadDescriptors(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
