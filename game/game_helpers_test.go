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
	"sync"
	"testing"
	"time"

	"github.com/yagoggame/decaymaster/game/interfaces"
)

// dur bounds every awaiting in tests
const dur = 2 * time.Second

// Samplers of fixed value: nothing decays with noDecay, every parent decays with allDecay.
const (
	noDecay  = constSampler(0.99)
	allDecay = constSampler(0)
)

type constSampler float64

func (s constSampler) Float64() float64 {
	return float64(s)
}

// scriptSampler returns values in order, then nothing decays
type scriptSampler struct {
	values []float64
}

func (s *scriptSampler) Float64() float64 {
	if len(s.values) == 0 {
		return float64(noDecay)
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v
}

// recorder collects notifications of a game
type recorder struct {
	mu    sync.Mutex
	notes []Notification
	// highlighted receives positions of highlighted decay targets if not nil
	highlighted chan interfaces.TurnData
}

func newRecorder() *recorder {
	return &recorder{highlighted: make(chan interfaces.TurnData, 16)}
}

func (r *recorder) observe(n Notification) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()

	if n.Kind == DecayHighlighted {
		select {
		case r.highlighted <- n.Pos:
		default:
		}
	}
}

func (r *recorder) kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]Kind, len(r.notes))
	for i, n := range r.notes {
		kinds[i] = n.Kind
	}
	return kinds
}

func (r *recorder) count(kind Kind) int {
	n := 0
	for _, k := range r.kinds() {
		if k == kind {
			n++
		}
	}
	return n
}

func (r *recorder) last(kind Kind) (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.notes) - 1; i >= 0; i-- {
		if r.notes[i].Kind == kind {
			return r.notes[i], true
		}
	}
	return Notification{}, false
}

func (r *recorder) clear() {
	r.mu.Lock()
	r.notes = nil
	r.mu.Unlock()
}

// newTestGame creates a game with no pacing observed by a fresh recorder
func newTestGame(t *testing.T, opts Options) (Game, *recorder) {
	t.Helper()

	rec := newRecorder()
	opts.Observer = rec.observe
	game, err := NewGame(&opts)
	if err != nil {
		t.Fatalf("Unexpected NewGame err: %v", err)
	}
	return game, rec
}

// startedGame creates a game in play
func startedGame(t *testing.T, opts Options) (Game, *recorder) {
	t.Helper()

	game, rec := newTestGame(t, opts)
	if err := game.BeginPlay(); err != nil {
		t.Fatalf("Unexpected BeginPlay err: %v", err)
	}
	return game, rec
}

func waitIdle(t *testing.T, game Game) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), dur)
	defer cancel()
	if err := game.WaitIdle(ctx); err != nil {
		t.Fatalf("Unexpected WaitIdle err: %v", err)
	}
}

// place places a stone and waits for the placement to resolve
func place(t *testing.T, game Game, x, y int, accent interfaces.Accent) {
	t.Helper()

	if err := game.TryPlace(x, y, accent); err != nil {
		t.Fatalf("Unexpected TryPlace err at (%d,%d): %v", x, y, err)
	}
	waitIdle(t, game)
}

func mustCell(t *testing.T, game Game, x, y int) interfaces.Cell {
	t.Helper()

	cell, err := game.CellAt(x, y)
	if err != nil {
		t.Fatalf("Unexpected CellAt err at (%d,%d): %v", x, y, err)
	}
	return cell
}

func mustInventory(t *testing.T, game Game, side interfaces.Side, accent interfaces.Accent) int {
	t.Helper()

	n, err := game.InventoryOf(side, accent)
	if err != nil {
		t.Fatalf("Unexpected InventoryOf err: %v", err)
	}
	return n
}

func joinGamers(t *testing.T, game Game, gamers []*Gamer) {
	t.Helper()

	for _, g := range gamers {
		if err := game.Join(g); err != nil {
			t.Fatalf("Unexpected Join err for gamer %s: %v", g, err)
		}
		g.SetGame(game)
	}
}

// asyncWaitTurn runs WaitTurn for gamer and reports its result on the returned chanel
func asyncWaitTurn(game Game, id int) <-chan error {
	c := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dur)
		defer cancel()
		c <- game.WaitTurn(ctx, id)
	}()
	return c
}

func asyncGameEnd(game Game) (signal <-chan interface{}) {
	c := make(chan interface{})

	go func(c chan<- interface{}) {
		game.End()
		_, ok := <-game
		c <- ok
		close(c)
	}(c)

	return c
}

func sameKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
