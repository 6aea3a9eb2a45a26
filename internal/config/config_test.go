package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBadConstants(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"alpha above one", func(c *Config) { c.Learn.Alpha = 1.5 }},
		{"gamma negative", func(c *Config) { c.Learn.Gamma = -0.1 }},
		{"epsilon floor above start", func(c *Config) { c.Learn.EpsilonMin = 0.5 }},
		{"thresholds not increasing", func(c *Config) { c.MediumMax = c.CloseMax }},
		{"negative punch cost", func(c *Config) { c.Punches.Far.Cost = -1 }},
		{"negative dodge cost", func(c *Config) { c.Dodge.Cost = -5 }},
		{"evade prob above one", func(c *Config) { c.Dodge.EvadeProb = 1.2 }},
		{"inverted damage range", func(c *Config) { c.Punches.Close.DamageMax = c.Punches.Close.DamageMin - 1 }},
		{"zero round length", func(c *Config) { c.RoundTicks = 0 }},
		{"start gap outside arena", func(c *Config) { c.StartGap = c.ArenaLength + 10 }},
		{"negative regen", func(c *Config) { c.RegenIdle = -0.1 }},
		{"super chance above one", func(c *Config) { c.Damage.SuperChance = 2 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fight.yaml")
	body := []byte("round_ticks: 120\nrounds_per_bout: 3\nlearn:\n  alpha: 0.2\n")
	require.NoError(t, os.WriteFile(path, body, 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.RoundTicks)
	assert.Equal(t, 3, cfg.RoundsPerBout)
	assert.Equal(t, 0.2, cfg.Learn.Alpha)
	// untouched keys keep their defaults
	assert.Equal(t, Default().MaxHealth, cfg.MaxHealth)
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fight.yaml")
	require.NoError(t, os.WriteFile(path, []byte("learn:\n  gamma: 3.0\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
