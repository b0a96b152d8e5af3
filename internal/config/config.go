// Copyright ©2020 BlinnikovAA. All rights reserved.
// This file is part of yagogame.
//
// yagogame is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// yagogame is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with yagogame.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads settings of the decay othello client from environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/yagoggame/decaymaster/game"
)

// Config holds client settings
type Config struct {
	// Seed of the decay sampler, 0 means a random one
	Seed int64 `env:"SEED" envDefault:"0"`
	// SettleDelay is the pause between a placement and the decay draw
	SettleDelay time.Duration `env:"SETTLE_DELAY" envDefault:"1s"`
	// BlinkDelay is how long a decay target is highlighted
	BlinkDelay time.Duration `env:"BLINK_DELAY" envDefault:"1200ms"`
	// AfterDecayDelay is the pause after a target decayed
	AfterDecayDelay time.Duration `env:"AFTER_DECAY_DELAY" envDefault:"120ms"`
	// BlinkCount is the number of blinks shown during BlinkDelay
	BlinkCount int `env:"BLINK_COUNT" envDefault:"3"`
	// Sound enables audio cues
	Sound bool `env:"SOUND" envDefault:"true"`
	// PassWhenExhausted forces a side without accent units to pass
	PassWhenExhausted bool `env:"PASS_WHEN_EXHAUSTED" envDefault:"false"`
	// Debug enables logging to LogFile
	Debug   bool   `env:"DEBUG" envDefault:"false"`
	LogFile string `env:"LOG_FILE" envDefault:"decayothello.log"`
}

// Program is the client name used in error output
const Program = "decayothello"

// EnvPrefix prefixes every environment variable of Config
const EnvPrefix = "DECAYOTHELLO_"

// Load parses Config from DECAYOTHELLO_* environment variables and validates it
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("failed to read %s* environment: %w", EnvPrefix, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that delays are not negative and blinks are positive
func (c Config) Validate() error {
	for name, d := range map[string]time.Duration{
		"settle delay":      c.SettleDelay,
		"blink delay":       c.BlinkDelay,
		"after decay delay": c.AfterDecayDelay,
	} {
		if d < 0 {
			return fmt.Errorf("invalid config: negative %s: %v", name, d)
		}
	}
	if c.BlinkCount < 1 {
		return fmt.Errorf("invalid config: blink count %d < 1", c.BlinkCount)
	}
	return nil
}

// Pacing returns pauses of the decay phase
func (c Config) Pacing() game.Pacing {
	return game.Pacing{
		Settle:     c.SettleDelay,
		Blink:      c.BlinkDelay,
		AfterDecay: c.AfterDecayDelay,
	}
}

// BlinkPeriod is the duration of one on or off state of a blinking target
func (c Config) BlinkPeriod() time.Duration {
	if c.BlinkCount < 1 {
		return c.BlinkDelay
	}
	return c.BlinkDelay / time.Duration(2*c.BlinkCount)
}

// Fail reports err of the client on stderr and exits with code 1
func Fail(err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", Program, err)
	os.Exit(1)
}
