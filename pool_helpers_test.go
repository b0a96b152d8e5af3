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
	"reflect"
	"testing"

	"github.com/yagoggame/decaymaster/game"
)

type poolCase struct {
	name  string
	id    int
	gamer *game.Gamer
	want  error
}

var validGamers = []*game.Gamer{
	game.NewGamer("Joe", 1),
	game.NewGamer("Nick", 2),
	game.NewGamer("jack", 3),
	game.NewGamer("Fred", 4),
	game.NewGamer("Izya", 5),
}

var poolJoinTests = []poolCase{
	{name: "Fake ID", id: 0, want: ErrIDNotFound},
	{name: "Joe", id: 1, want: nil},
	{name: "Nick", id: 2, want: nil},
	{name: "jack", id: 3, want: nil},
	{name: "Fred", id: 4, want: nil},
	{name: "Izya", id: 5, want: nil},
	{name: "Occupied", id: 1, want: ErrGamerOccupied},
}

// newTestPool creates a pool filled with copies of validGamers
func newTestPool(t *testing.T) GamersPool {
	t.Helper()

	pool := NewGamersPool(&Options{})
	for _, g := range validGamers {
		gCpy := *g
		if err := pool.AddGamer(&gCpy); err != nil {
			t.Fatalf("Unexpected AddGamer err: %v", err)
		}
	}
	return pool
}

// seatAll asks a game for every valid gamer
func seatAll(t *testing.T, pool GamersPool) {
	t.Helper()

	for _, g := range validGamers {
		if err := pool.JoinGame(g.ID); err != nil {
			t.Fatalf("Unexpected JoinGame err: %v", err)
		}
	}
}

func countSeated(pool GamersPool) int {
	n := 0
	for _, g := range pool.ListGamers() {
		if g.GetGame() != nil {
			n++
		}
	}
	return n
}

// checkVacant checks that exactly released gamers are vacant
func checkVacant(t *testing.T, pool GamersPool, released int) {
	t.Helper()

	want := len(pool.ListGamers()) - released
	if got := countSeated(pool); got != want {
		t.Errorf("Unexpected count of seated gamers:\nwant: %d,\ngot: %d.", want, got)
	}
}

// checkGamerResult calls fn for test.id and compares the returned copy with test.gamer
func checkGamerResult(t *testing.T, test poolCase, fn func(id int) (*game.Gamer, error)) {
	t.Helper()

	got, err := fn(test.id)
	if !errors.Is(err, test.want) {
		t.Errorf("Unexpected err:\nwant: %v,\ngot: %v.", test.want, err)
	}
	if test.want != nil {
		if got != nil {
			t.Errorf("Unexpected gamer:\nwant: nil,\ngot: %v.", got)
		}
		return
	}
	if got == nil || !reflect.DeepEqual(*got, *test.gamer) {
		t.Errorf("Unexpected gamer:\nwant: %v,\ngot: %v.", test.gamer, got)
	}
}

// asyncRelease releases pool and reports whether the pool chanel is still open
func asyncRelease(pool GamersPool) <-chan bool {
	c := make(chan bool, 1)
	go func() {
		pool.Release()
		_, ok := <-pool
		c <- ok
	}()
	return c
}

func checkAllVacant(t *testing.T, pool GamersPool) {
	t.Helper()

	if n := countSeated(pool); n != 0 {
		t.Fatalf("Unexpected count of seated gamers:\nwant: 0,\ngot: %d.", n)
	}
}

// checkJoins runs poolJoinTests and checks that every accepted join seats a gamer
func checkJoins(t *testing.T, pool GamersPool) {
	t.Helper()

	accepted := 0
	for _, test := range poolJoinTests {
		t.Run(test.name, func(t *testing.T) {
			err := pool.JoinGame(test.id)
			if !errors.Is(err, test.want) {
				t.Errorf("Unexpected JoinGame err for id %d:\nwant: %v,\ngot: %v.", test.id, test.want, err)
			}
			if err == nil {
				accepted++
			}
		})
	}

	if seated := countSeated(pool); seated != accepted {
		t.Errorf("Unexpected count of seated gamers:\nwant: %d,\ngot: %d.", accepted, seated)
	}
}

// checkGamesCount checks that gamers are seated in pairs
func checkGamesCount(t *testing.T, pool GamersPool) {
	t.Helper()

	games := make(map[game.Game]bool)
	for _, g := range pool.ListGamers() {
		games[g.GetGame()] = true
	}

	want := (len(validGamers) + 1) / 2
	if len(games) != want {
		t.Errorf("Unexpected number of games for %d gamers:\nwant: %d,\ngot: %d.", len(validGamers), want, len(games))
	}
}
