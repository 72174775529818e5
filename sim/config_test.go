package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("level: sandbox\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTickRate, cfg.TickRate)
	assert.InDelta(t, 1.0/60, cfg.Timestep, 1e-12)
	assert.Equal(t, DefaultSteps, cfg.Steps)
	assert.True(t, cfg.scriptsEnabled())
}

func TestParseConfigTimestepWins(t *testing.T) {
	cfg, err := ParseConfig([]byte("timestep: 0.01\ntick_rate: 30\nscripts: false\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Timestep)
	assert.False(t, cfg.scriptsEnabled())
}

func TestParseConfigInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative_timestep", "timestep: -1\n"},
		{"negative_steps", "steps: -5\n"},
		{"negative_workers", "workers: -2\n"},
		{"negative_tick_rate", "tick_rate: -60\n"},
		{"body_without_prefab", "bodies:\n  - name: x\n    position: [0, 0]\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(c.yaml))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfigSample(t *testing.T) {
	cfg, err := LoadConfig("../configs/sandbox.yaml")
	require.NoError(t, err)
	assert.Equal(t, "sandbox", cfg.Level)
	assert.Len(t, cfg.Bodies, 3)
}
