package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"qboxing/internal/arena"
	"qboxing/internal/config"
	"qboxing/internal/util"
)

func TestBatchSeedIndependentOfScheduling(t *testing.T) {
	// Fight i always gets the same seed, so batch results do not depend on
	// which worker picks up which job.
	for i := 0; i < 10; i++ {
		assert.Equal(t, batchSeed(12345, i), batchSeed(12345, i))
	}
	assert.NotEqual(t, batchSeed(12345, 0), batchSeed(12345, 1))
	assert.NotEqual(t, batchSeed(12345, 3), batchSeed(99, 3))
}

func TestBatchFightReproducibleFromSeed(t *testing.T) {
	cfg := config.Default()
	cfg.RoundsPerBout = 2
	cfg.RoundTicks = 200

	run := func(i int) arena.FightRecord {
		rng := util.New(batchSeed(cfg.Seed, i))
		red := arena.NewAgent("red", cfg, rng)
		blue := arena.NewAgent("blue", cfg, rng)
		return arena.NewFight(cfg, red, blue, rng, nil).Run()
	}

	assert.Equal(t, run(4), run(4))
}
