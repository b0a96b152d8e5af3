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

// Package game provides thread safe decay othello game entity and some data structures to maintain it
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/yagoggame/decaymaster/game/interfaces"
)

var (
	// ErrUnknownID error occurs when a gamer with unknown id addresses the game
	ErrUnknownID = errors.New("unknown gamer id")
	// ErrNoPlace error occurs when a third gamer tries to join
	ErrNoPlace = errors.New("no vacant place in the game")
	// ErrResourceNotAvailable error occurs when the game is already finished
	ErrResourceNotAvailable = errors.New("game resource is not available")
	// ErrGameDestroyed error reported to awaiting gamers when the game ends
	ErrGameDestroyed = errors.New("game destroyed")
	// ErrOtherGamerLeft error reported to awaiting gamers when the opponent leaves
	ErrOtherGamerLeft = errors.New("other gamer left the game")
	// ErrCancelled error occurs when awaiting is cancelled by context
	ErrCancelled = errors.New("cancelled")
	// ErrUnexpectedResult error occurs on a result of unknown type
	ErrUnexpectedResult = errors.New("unexpected result type")
)

// Game - datatype based on chanel, to provide a thread safe game entity.
type Game chan *gameCommand

// NewGame creates the Game arranged for setup.
// Game must be finished by calling of End() method.
func NewGame(opts *Options) (Game, error) {
	s, err := newSession(opts)
	if err != nil {
		return nil, err
	}
	g := make(Game)
	g.run(s)
	return g, nil
}

// End - releases game resources and close a Game object as chanel.
// A running decay phase is dropped.
func (g Game) End() (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: endCMD, rez: c}
	<-c
	return nil
}

// ID returns the unique id of the game session
func (g Game) ID() (id string, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: idCMD})
	if err != nil {
		return "", err
	}
	id, ok := rez.(string)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return id, nil
}

// Join - try to join gamer to this Game. The first gamer plays Black.
func (g Game) Join(gamer *Gamer) (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: joinCMD, gamer: gamer, rez: c}

	if err, ok := (<-c).(error); ok {
		return err
	}
	return nil
}

// GamerState - returns a copy of Internal State of a gamer (to prevent a manual changing).
func (g Game) GamerState(id int) (state *GamerState, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: gamerStateCMD, id: id})
	if err != nil {
		return nil, err
	}
	state, ok := rez.(*GamerState)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return state, nil
}

// Leave - leave a game.
// No methods of this Game object should be invoked by this gamer after this call - it will return an error.
func (g Game) Leave(id int) (err error) {
	defer recoverAsErr(&err)

	_, err = g.request(&gameCommand{act: leaveCMD, id: id})
	return err
}

// TryPlace places a stone of accent at (x, y) for the side to move.
// On success the decay phase starts; use WaitIdle to await its end.
func (g Game) TryPlace(x, y int, accent interfaces.Accent) (err error) {
	defer recoverAsErr(&err)

	_, err = g.request(&gameCommand{act: placeCMD, turn: interfaces.TurnData{X: x, Y: y}, accent: accent})
	return err
}

// MakeTurn - tries to make a turn for a joined gamer.
func (g Game) MakeTurn(id int, turn interfaces.TurnData, accent interfaces.Accent) (err error) {
	defer recoverAsErr(&err)

	_, err = g.request(&gameCommand{act: makeTurnCMD, id: id, turn: turn, accent: accent})
	return err
}

// CycleSetupAccent recolors the initial stone at (x, y) to the next available accent.
func (g Game) CycleSetupAccent(x, y int) (accent interfaces.Accent, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: cycleCMD, turn: interfaces.TurnData{X: x, Y: y}})
	if err != nil {
		return interfaces.NoAccent, err
	}
	accent, ok := rez.(interfaces.Accent)
	if !ok {
		return interfaces.NoAccent, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return accent, nil
}

// BeginPlay leaves setup; Black moves first.
func (g Game) BeginPlay() (err error) {
	defer recoverAsErr(&err)

	_, err = g.request(&gameCommand{act: beginCMD})
	return err
}

// Reset starts the game over in setup. Joined gamers keep their sides.
func (g Game) Reset() (err error) {
	defer recoverAsErr(&err)

	_, err = g.request(&gameCommand{act: resetCMD})
	return err
}

// State returns a snapshot of the whole game.
func (g Game) State() (state *Snapshot, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: stateCMD})
	if err != nil {
		return nil, err
	}
	state, ok := rez.(*Snapshot)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return state, nil
}

// LegalMoves returns legal moves of the side to move.
func (g Game) LegalMoves() (moves []interfaces.TurnData, err error) {
	return g.LegalMovesOf(interfaces.NoSide)
}

// LegalMovesOf returns legal moves of side. NoSide means the side to move.
func (g Game) LegalMovesOf(side interfaces.Side) (moves []interfaces.TurnData, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: legalCMD, side: side})
	if err != nil {
		return nil, err
	}
	moves, ok := rez.([]interfaces.TurnData)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return moves, nil
}

// CellAt returns the stone at (x, y).
func (g Game) CellAt(x, y int) (cell interfaces.Cell, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: cellCMD, turn: interfaces.TurnData{X: x, Y: y}})
	if err != nil {
		return interfaces.Cell{}, err
	}
	cell, ok := rez.(interfaces.Cell)
	if !ok {
		return interfaces.Cell{}, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return cell, nil
}

// Score returns count of stones per side.
func (g Game) Score() (score interfaces.Score, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: scoreCMD})
	if err != nil {
		return nil, err
	}
	score, ok := rez.(interfaces.Score)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return score, nil
}

// InventoryOf returns remaining units of accent for side.
func (g Game) InventoryOf(side interfaces.Side, accent interfaces.Accent) (count int, err error) {
	defer recoverAsErr(&err)

	rez, err := g.request(&gameCommand{act: inventoryCMD, side: side, accent: accent})
	if err != nil {
		return 0, err
	}
	count, ok := rez.(int)
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrUnexpectedResult, rez)
	}
	return count, nil
}

// WaitIdle waits until no placement is resolving.
func (g Game) WaitIdle(ctx context.Context) (err error) {
	defer recoverAsErr(&err)

	//buffered because when killed by cancelation - internal mechanism can block other invocation on attemption to write to this chanel later
	c := make(chan interface{}, 1)
	g <- &gameCommand{act: wIdleCMD, rez: c}
	return awaitReport(ctx, c)
}

// WaitTurn - waits for gamer's turn.
func (g Game) WaitTurn(ctx context.Context, id int) (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{}, 1)
	g <- &gameCommand{act: wTurnCMD, id: id, rez: c}
	return awaitReport(ctx, c)
}

// request sends cmd and returns its single result, converting an error result to err.
func (g Game) request(cmd *gameCommand) (interface{}, error) {
	c := make(chan interface{})
	cmd.rez = c
	g <- cmd

	rez := <-c
	if err, ok := rez.(error); ok {
		return nil, err
	}
	return rez, nil
}

func awaitReport(ctx context.Context, c <-chan interface{}) error {
	select {
	case rez := <-c:
		if err, ok := rez.(error); ok {
			return err
		}
	case <-ctx.Done():
		return fmt.Errorf("%w: %s", ErrCancelled, ctx.Err())
	}
	return nil
}
