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

package decaymaster

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/yagoggame/decaymaster/game"
)

// action is a kind of a pool command
type action int

// set of actions of GamersPool
const (
	addCMD         action = iota // add a gamer
	removeCMD                    // remove a gamer
	listCMD                      // list gamers
	getCMD                       // get a gamer
	joinCMD                      // join a game or start a new one
	releaseGameCMD               // leave a game
	releaseCMD                   // release the pool
)

// command is a request to the pool goroutine
type command struct {
	act   action
	gamer *game.Gamer
	id    int
	rez   chan<- interface{}
}

// pool holds state of a GamersPool. It is touched only by the pool goroutine.
type pool struct {
	gamers map[int]*game.Gamer
	// ids of gamers awaiting a partner, earliest first
	waiting []int
	opts    *Options
	logger  *zap.Logger
}

func newPool(opts *Options) *pool {
	return &pool{
		gamers: make(map[int]*game.Gamer),
		opts:   opts,
		logger: opts.Logger,
	}
}

// serve processes commands until the pool is released.
func (gp GamersPool) serve(p *pool) {
	for cmd := range gp {
		if cmd.act == releaseCMD {
			p.releaseAll()
			close(gp)
			close(cmd.rez)
			return
		}
		p.handle(cmd)
	}
}

func (p *pool) handle(cmd *command) {
	defer close(cmd.rez)

	var rez interface{}
	switch cmd.act {
	case addCMD:
		rez = p.add(cmd.gamer)
	case removeCMD:
		rez = p.remove(cmd.id)
	case listCMD:
		rez = p.list()
	case getCMD:
		rez = p.get(cmd.id)
	case joinCMD:
		rez = p.join(cmd.id)
	case releaseGameCMD:
		rez = p.releaseGame(cmd.id)
	}
	if rez != nil {
		cmd.rez <- rez
	}
}

func (p *pool) add(gamer *game.Gamer) interface{} {
	if _, ok := p.gamers[gamer.ID]; ok {
		return fmt.Errorf("failed to add gamer with id %d to a pool: %w", gamer.ID, ErrIDOccupied)
	}
	gCpy := *gamer
	p.gamers[gCpy.ID] = &gCpy
	p.logger.Debug("gamer added", zap.Int("gamer_id", gCpy.ID), zap.String("name", gCpy.Name))
	return nil
}

func (p *pool) remove(id int) interface{} {
	gamer, ok := p.gamers[id]
	if !ok {
		return fmt.Errorf("failed to rm gamer for id %d: %w", id, ErrIDNotFound)
	}
	p.leave(gamer)
	delete(p.gamers, id)
	gCpy := *gamer
	return &gCpy
}

func (p *pool) list() interface{} {
	rez := make([]*game.Gamer, 0, len(p.gamers))
	for _, g := range p.gamers {
		gCpy := *g
		rez = append(rez, &gCpy)
	}
	sort.Slice(rez, func(i, j int) bool { return rez[i].ID < rez[j].ID })
	return rez
}

func (p *pool) get(id int) interface{} {
	gamer, ok := p.gamers[id]
	if !ok {
		return fmt.Errorf("failed to get gamer for id %d: %w", id, ErrIDNotFound)
	}
	gCpy := *gamer
	return &gCpy
}

func (p *pool) join(id int) interface{} {
	gamer, ok := p.gamers[id]
	if !ok {
		return fmt.Errorf("failed to join gamer with id %d to a game: %w", id, ErrIDNotFound)
	}
	if gamer.GetGame() != nil {
		return fmt.Errorf("failed to join gamer with id %d to a game: %w", id, ErrGamerOccupied)
	}

	if p.pair(gamer) {
		return nil
	}
	if err := p.startGame(gamer); err != nil {
		return err
	}
	return nil
}

// pair seats gamer in the game of the earliest waiting gamer and begins the play.
// Waiting gamers whose game refuses a partner are dropped from the queue.
func (p *pool) pair(gamer *game.Gamer) bool {
	for len(p.waiting) > 0 {
		host := p.gamers[p.waiting[0]]
		p.waiting = p.waiting[1:]
		if host == nil || host.GetGame() == nil {
			continue
		}

		//the Game keeps its own copy of a gamer
		gCpy := *gamer
		if err := host.GetGame().Join(&gCpy); err != nil {
			p.logger.Debug("waiting game refused partner", zap.Int("host_id", host.ID), zap.Error(err))
			continue
		}
		gamer.SetGame(host.GetGame())

		if err := gamer.GetGame().BeginPlay(); err != nil {
			p.logger.Warn("failed to begin play", zap.Int("gamer_id", gamer.ID), zap.Error(err))
		}
		p.logger.Info("gamers paired", zap.Int("black_id", host.ID), zap.Int("white_id", gamer.ID))
		return true
	}
	return false
}

// startGame creates a game for gamer and queues it to await a partner.
func (p *pool) startGame(gamer *game.Gamer) error {
	opts := p.opts.Game
	gm, err := game.NewGame(&opts)
	if err != nil {
		return fmt.Errorf("failed to create game for gamer with id %d: %w", gamer.ID, errors.Join(ErrGamerGameStart, err))
	}

	gCpy := *gamer
	if err := gm.Join(&gCpy); err != nil {
		p.discard(gm, gamer.ID)
		return fmt.Errorf("failed to join gamer with id %d to a game: %w", gamer.ID, errors.Join(ErrGamerGameStart, err))
	}
	gamer.SetGame(gm)
	p.waiting = append(p.waiting, gamer.ID)
	p.logger.Debug("gamer awaits partner", zap.Int("gamer_id", gamer.ID))
	return nil
}

// discard ends a game nobody is seated in
func (p *pool) discard(gm game.Game, id int) {
	if err := gm.End(); err != nil {
		p.logger.Debug("failed to end unused game", zap.Int("gamer_id", id), zap.Error(err))
	}
}

func (p *pool) releaseGame(id int) interface{} {
	gamer, ok := p.gamers[id]
	if !ok {
		return fmt.Errorf("failed to release game for id %d: %w", id, ErrIDNotFound)
	}
	p.leave(gamer)
	return nil
}

// releaseAll makes every gamer vacant
func (p *pool) releaseAll() {
	for _, g := range p.gamers {
		p.leave(g)
	}
	p.logger.Debug("pool released", zap.Int("gamers", len(p.gamers)))
}

// leave leaves a game of gamer, in any case gamer becomes vacant
func (p *pool) leave(gamer *game.Gamer) {
	p.unqueue(gamer.ID)
	if gamer.GetGame() == nil {
		return
	}
	if err := gamer.GetGame().Leave(gamer.ID); err != nil {
		p.logger.Debug("failed to leave game", zap.Int("gamer_id", gamer.ID), zap.Error(err))
	}
	gamer.SetGame(nil)
}

func (p *pool) unqueue(id int) {
	for i, w := range p.waiting {
		if w == id {
			p.waiting = append(p.waiting[:i], p.waiting[i+1:]...)
			return
		}
	}
}

// recoverReleased turns a send on the closed pool into ErrPoolReleased
func recoverReleased(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(error); ok && strings.Contains(e.Error(), "send on closed channel") {
		*err = ErrPoolReleased
		return
	}
	panic(r)
}
