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

// Command decayothello is a hotseat terminal game of decay othello.
package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/yagoggame/decaymaster/game"
	"github.com/yagoggame/decaymaster/game/decay"
	"github.com/yagoggame/decaymaster/internal/config"
	"github.com/yagoggame/decaymaster/internal/random"
	"github.com/yagoggame/decaymaster/internal/sound"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Fail(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		config.Fail(fmt.Errorf("failed to create logger: %w", err))
	}
	defer logger.Sync()

	seed, source, err := random.ResolveSeed(cfg.Seed, random.NewSeed)
	if err != nil {
		config.Fail(err)
	}
	logger.Info("decay sampler seeded", zap.Int64("seed", seed), zap.String("source", source))

	screen, err := tcell.NewScreen()
	if err != nil {
		config.Fail(fmt.Errorf("failed to create screen: %w", err))
	}
	if err := screen.Init(); err != nil {
		config.Fail(fmt.Errorf("failed to init screen: %w", err))
	}
	defer screen.Fini()
	screen.EnableMouse()

	sm := sound.NewManager(cfg.Sound)
	if err := sm.Initialize(); err != nil {
		// the game runs without sound
		logger.Warn("audio initialization failed", zap.Error(err))
	}
	defer sm.Cleanup()

	u := newUI(screen, nil, sm, logger)
	g, err := game.NewGame(&game.Options{
		Sampler:           decay.NewSampler(seed),
		Pacing:            cfg.Pacing(),
		PassWhenExhausted: cfg.PassWhenExhausted,
		Observer:          u.observe,
		Logger:            logger,
	})
	if err != nil {
		screen.Fini()
		config.Fail(err)
	}
	defer g.End()
	u.game = g

	run(u, cfg.BlinkPeriod())
}

// run serves terminal events until the user quits
func run(u *ui, blinkPeriod time.Duration) {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	if blinkPeriod <= 0 {
		blinkPeriod = 200 * time.Millisecond
	}
	ticker := time.NewTicker(blinkPeriod)
	defer ticker.Stop()

	u.draw()
	for {
		select {
		case ev := <-events:
			if !u.handle(ev) {
				return
			}
		case <-ticker.C:
			state, err := u.game.State()
			if err != nil || !u.blink(state) {
				continue
			}
		}
		u.draw()
	}
}

// newLogger logs to cfg.LogFile in debug mode: the terminal belongs to the screen
func newLogger(cfg config.Config) (*zap.Logger, error) {
	if !cfg.Debug {
		return zap.NewNop(), nil
	}
	zcfg := zap.NewDevelopmentConfig()
	zcfg.OutputPaths = []string{cfg.LogFile}
	zcfg.ErrorOutputPaths = []string{cfg.LogFile}
	return zcfg.Build()
}
