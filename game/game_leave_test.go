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

package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/turn"
)

// TestLeave checks that leaving of a gamer breaks the game for the other one.
func TestLeave(t *testing.T) {
	gamers := []*Gamer{NewGamer("Joe", 1), NewGamer("Nick", 2)}

	game, _ := startedGame(t, Options{Sampler: noDecay})
	joinGamers(t, game, gamers)

	if err := game.Leave(3); !errors.Is(err, ErrUnknownID) {
		t.Errorf("Unexpected Leave err:\nwant: %v,\ngot: %v.", ErrUnknownID, err)
	}

	// White waits for the turn while Black leaves
	white := asyncWaitTurn(game, gamers[1].ID)
	time.Sleep(50 * time.Millisecond)

	if err := game.Leave(gamers[0].ID); err != nil {
		t.Fatalf("Unexpected Leave err: %v", err)
	}

	select {
	case err := <-white:
		if !errors.Is(err, ErrOtherGamerLeft) && !errors.Is(err, turn.ErrGameOver) {
			t.Errorf("Unexpected WaitTurn err:\nwant: %v or %v,\ngot: %v.", ErrOtherGamerLeft, turn.ErrGameOver, err)
		}
	case <-time.After(2 * dur):
		t.Fatalf("WaitTurn was not released")
	}

	if err := game.Join(NewGamer("Buss", 3)); !errors.Is(err, turn.ErrGameOver) {
		t.Errorf("Unexpected Join err:\nwant: %v,\ngot: %v.", turn.ErrGameOver, err)
	}
	if err := game.MakeTurn(gamers[1].ID, interfaces.TurnData{X: 3, Y: 2}, interfaces.Red); !errors.Is(err, turn.ErrGameOver) {
		t.Errorf("Unexpected MakeTurn err:\nwant: %v,\ngot: %v.", turn.ErrGameOver, err)
	}
	if err := game.WaitTurn(context.Background(), gamers[1].ID); !errors.Is(err, turn.ErrGameOver) {
		t.Errorf("Unexpected WaitTurn err:\nwant: %v,\ngot: %v.", turn.ErrGameOver, err)
	}
	// gamer that is not disjoined yet can access to the game data.
	if _, err := game.GamerState(gamers[1].ID); err != nil {
		t.Errorf("Unexpected GamerState err:\nwant: nil,\ngot: %v.", err)
	}

	// the last gamer leaving destroys the game
	if err := game.Leave(gamers[1].ID); err != nil {
		t.Fatalf("Unexpected Leave err: %v", err)
	}
	if _, err := game.ID(); !errors.Is(err, ErrResourceNotAvailable) {
		t.Errorf("Unexpected ID err:\nwant: %v,\ngot: %v.", ErrResourceNotAvailable, err)
	}
}

// TestEndReleasesWaiters checks that End releases every awaiting.
func TestEndReleasesWaiters(t *testing.T) {
	gamers := []*Gamer{NewGamer("Joe", 1), NewGamer("Nick", 2)}

	game, rec := startedGame(t, Options{
		Sampler: allDecay,
		Pacing:  Pacing{Blink: time.Hour},
	})
	joinGamers(t, game, gamers)

	if err := game.MakeTurn(gamers[0].ID, interfaces.TurnData{X: 3, Y: 2}, interfaces.Red); err != nil {
		t.Fatalf("Unexpected MakeTurn err: %v", err)
	}
	select {
	case <-rec.highlighted:
	case <-time.After(dur):
		t.Fatalf("Decay target was not highlighted in %v", dur)
	}

	idle := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dur)
		defer cancel()
		idle <- game.WaitIdle(ctx)
	}()
	white := asyncWaitTurn(game, gamers[1].ID)
	time.Sleep(50 * time.Millisecond)

	if err := game.End(); err != nil {
		t.Fatalf("Unexpected End err: %v", err)
	}

	for _, c := range []<-chan error{idle, white} {
		select {
		case err := <-c:
			if !errors.Is(err, ErrGameDestroyed) && !errors.Is(err, ErrResourceNotAvailable) {
				t.Errorf("Unexpected awaiting err:\nwant: %v or %v,\ngot: %v.", ErrGameDestroyed, ErrResourceNotAvailable, err)
			}
		case <-time.After(2 * dur):
			t.Fatalf("Awaiting was not released by End")
		}
	}
}

// TestEndDuringDecay checks that End stops a decay phase with scheduled stages.
func TestEndDuringDecay(t *testing.T) {
	game, rec := startedGame(t, Options{
		Sampler: allDecay,
		Pacing:  Pacing{Blink: 20 * time.Millisecond, AfterDecay: 20 * time.Millisecond},
	})

	if err := game.TryPlace(3, 2, interfaces.Red); err != nil {
		t.Fatalf("Unexpected TryPlace err: %v", err)
	}
	select {
	case <-rec.highlighted:
	case <-time.After(dur):
		t.Fatalf("Decay target was not highlighted in %v", dur)
	}

	select {
	case ok := <-asyncGameEnd(game):
		if ok == true {
			t.Fatalf("End left the game chanel open")
		}
	case <-time.After(dur):
		t.Fatalf("End did not return in %v", dur)
	}

	// stages scheduled before End never reach the ended game
	cleared := rec.count(DecayCleared)
	time.Sleep(50 * time.Millisecond)
	if n := rec.count(DecayCleared); n != cleared {
		t.Errorf("Decay went on after End:\nwant: %d cleared,\ngot: %d.", cleared, n)
	}
	if n := rec.count(DecayFinished); n != 0 {
		t.Errorf("Unexpected DecayFinished after End: %d", n)
	}
	if _, err := game.ID(); !errors.Is(err, ErrResourceNotAvailable) {
		t.Errorf("Unexpected ID err:\nwant: %v,\ngot: %v.", ErrResourceNotAvailable, err)
	}
}
