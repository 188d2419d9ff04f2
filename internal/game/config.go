package game

import (
	"math/rand"
	"time"

	"github.com/samdwyer/memorygame/internal/memory"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible deals.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// TickInterval is the countdown step; one tick removes one second.
	TickInterval time.Duration

	// Timing holds the mismatch and win display delays.
	Timing memory.Timing
}

// DefaultConfig returns a one-second countdown with the standard delays.
func DefaultConfig() Config {
	return Config{
		TickInterval: time.Second,
		Timing:       memory.DefaultTiming(),
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.TickInterval <= 0 {
		c.TickInterval = def.TickInterval
	}
	if c.Timing.MismatchDelay <= 0 {
		c.Timing.MismatchDelay = def.Timing.MismatchDelay
	}
	if c.Timing.WinDelay <= 0 {
		c.Timing.WinDelay = def.Timing.WinDelay
	}
	return c
}

// NewRNG returns a generator seeded from Seed, or from the clock when Seed is 0.
func (c Config) NewRNG() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSession creates an idle session using this configuration.
func (c Config) NewSession() *memory.Session {
	c = c.withDefaults()
	return memory.NewSession(c.NewRNG(), c.Timing)
}
