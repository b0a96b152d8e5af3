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

// Package decaymaster provides a thread safe pool of gamers, paired into decay othello games.
package decaymaster

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/yagoggame/decaymaster/game"
)

var (
	// ErrNilGamer error occurs when nil gamer is passed
	ErrNilGamer = errors.New("failed to operate on nil gamer")
	// ErrIDNotFound error occurs when no gamer with such id in the pool
	ErrIDNotFound = errors.New("no gamer with such id in the Pool")
	// ErrIDOccupied error occurs when a gamer with such id is already in the pool
	ErrIDOccupied = errors.New("id occupied")
	// ErrGamerOccupied error occurs when a gamer already plays
	ErrGamerOccupied = errors.New("gamer already joined to another game")
	// ErrGamerGameStart error occurs when a gamer can't start a new game
	ErrGamerGameStart = errors.New("gamer failed to start a new game")
	// ErrPoolReleased error occurs on access to a released pool
	ErrPoolReleased = errors.New("pool is released")
	// ErrUnexpectedResult error occurs on a result of unknown type
	ErrUnexpectedResult = errors.New("unexpected result type")
)

// Options configure games created by a GamersPool
type Options struct {
	// Game is a template of options for every new game.
	// Its Logger defaults to Logger of the pool. A Sampler set here is
	// shared by all games and must be safe for concurrent use; nil gives
	// every game its own one.
	Game game.Options
	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// GamersPool is a chanel based pool of gamers. Gamers asking for a game
// are paired in order of arrival, each pair plays its own Game.
type GamersPool chan *command

// NewGamersPool creates the pool of gamers.
// Release must be called when the pool is not needed any more.
func NewGamersPool(opts *Options) GamersPool {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Game.Logger == nil {
		o.Game.Logger = o.Logger
	}

	gp := make(GamersPool)
	go gp.serve(newPool(&o))
	return gp
}

// AddGamer puts a copy of gamer to the pool. Ids are unique within the pool.
func (gp GamersPool) AddGamer(gamer *game.Gamer) error {
	if gamer == nil {
		return ErrNilGamer
	}
	_, err := gp.exec(&command{act: addCMD, gamer: gamer})
	return err
}

// RmGamer takes a gamer out of the pool. The gamer leaves its game first.
func (gp GamersPool) RmGamer(id int) (*game.Gamer, error) {
	rez, err := gp.exec(&command{act: removeCMD, id: id})
	if err != nil {
		return nil, err
	}
	return asGamer(rez)
}

// ListGamers returns copies of all gamers ordered by id.
// A released pool has no gamers.
func (gp GamersPool) ListGamers() []*game.Gamer {
	rez, err := gp.exec(&command{act: listCMD})
	if err != nil {
		return nil
	}
	gamers, _ := rez.([]*game.Gamer)
	return gamers
}

// JoinGame seats a gamer in the game of the earliest waiting gamer,
// which begins the play, or starts a new game to wait in.
func (gp GamersPool) JoinGame(id int) error {
	_, err := gp.exec(&command{act: joinCMD, id: id})
	return err
}

// ReleaseGame makes the gamer leave its game.
func (gp GamersPool) ReleaseGame(id int) error {
	_, err := gp.exec(&command{act: releaseGameCMD, id: id})
	return err
}

// GetGamer returns a copy of the gamer with id.
func (gp GamersPool) GetGamer(id int) (*game.Gamer, error) {
	rez, err := gp.exec(&command{act: getCMD, id: id})
	if err != nil {
		return nil, err
	}
	return asGamer(rez)
}

// Release makes every gamer leave its game and closes the pool.
func (gp GamersPool) Release() {
	gp.exec(&command{act: releaseCMD})
}

// exec passes cmd to the pool goroutine and waits for its result.
// An error sent back as the result is returned as err.
func (gp GamersPool) exec(cmd *command) (rez interface{}, err error) {
	defer recoverReleased(&err)

	c := make(chan interface{})
	cmd.rez = c
	gp <- cmd

	rez = <-c
	if e, ok := rez.(error); ok {
		return nil, e
	}
	return rez, nil
}

func asGamer(rez interface{}) (*game.Gamer, error) {
	if gamer, ok := rez.(*game.Gamer); ok {
		return gamer, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
}
