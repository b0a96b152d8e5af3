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

package turn

import (
	"errors"
	"testing"

	"github.com/yagoggame/decaymaster/game/interfaces"
)

// fakeMoves reports a fixed number of legal moves per side
type fakeMoves map[interfaces.Side]int

func (f fakeMoves) LegalMoves(side interfaces.Side) []interfaces.TurnData {
	return make([]interfaces.TurnData, f[side])
}

type fakeStock map[interfaces.Side]bool

func (f fakeStock) HasAny(side interfaces.Side) bool {
	return f[side]
}

func started(t *testing.T, moves MoveLister) *Controller {
	c := New()
	if _, err := c.Begin(moves); err != nil {
		t.Fatalf("Unexpected Begin err: %v", err)
	}
	return c
}

func TestAcceptByPhase(t *testing.T) {
	both := fakeMoves{interfaces.Black: 1, interfaces.White: 1}

	c := New()
	if err := c.Accept(interfaces.Black); !errors.Is(err, ErrSetup) {
		t.Errorf("Unexpected Accept err in setup:\nwant: %v,\ngot: %v.", ErrSetup, err)
	}

	if _, err := c.Begin(both); err != nil {
		t.Fatalf("Unexpected Begin err: %v", err)
	}
	if _, err := c.Begin(both); !errors.Is(err, ErrStarted) {
		t.Errorf("Unexpected second Begin err:\nwant: %v,\ngot: %v.", ErrStarted, err)
	}
	if err := c.Accept(interfaces.White); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("Unexpected Accept err for White:\nwant: %v,\ngot: %v.", ErrNotYourTurn, err)
	}
	if err := c.Accept(interfaces.Black); err != nil {
		t.Errorf("Unexpected Accept err for Black: %v", err)
	}

	if err := c.StartPlacing(); err != nil {
		t.Fatalf("Unexpected StartPlacing err: %v", err)
	}
	if err := c.Accept(interfaces.Black); !errors.Is(err, ErrBusy) {
		t.Errorf("Unexpected Accept err while placing:\nwant: %v,\ngot: %v.", ErrBusy, err)
	}
	if err := c.StartDecay(); err != nil {
		t.Fatalf("Unexpected StartDecay err: %v", err)
	}
	if err := c.Accept(interfaces.Black); !errors.Is(err, ErrBusy) {
		t.Errorf("Unexpected Accept err while decaying:\nwant: %v,\ngot: %v.", ErrBusy, err)
	}
	if err := c.StartPlacing(); !errors.Is(err, ErrTransition) {
		t.Errorf("Unexpected StartPlacing err while decaying:\nwant: %v,\ngot: %v.", ErrTransition, err)
	}

	out, err := c.Advance(both)
	if err != nil {
		t.Fatalf("Unexpected Advance err: %v", err)
	}
	if out.Current != interfaces.White || out.Moved != interfaces.White || out.Passed != interfaces.NoSide || out.GameOver {
		t.Errorf("Unexpected Advance outcome: %+v", out)
	}
	if c.Phase() != Idle {
		t.Errorf("Unexpected phase after Advance:\nwant: %v,\ngot: %v.", Idle, c.Phase())
	}
	if _, err := c.Advance(both); !errors.Is(err, ErrTransition) {
		t.Errorf("Unexpected Advance err from idle:\nwant: %v,\ngot: %v.", ErrTransition, err)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		moves     fakeMoves
		want      Outcome
		wantPhase Phase
	}{
		{
			name:      "white moves",
			moves:     fakeMoves{interfaces.Black: 1, interfaces.White: 2},
			want:      Outcome{Current: interfaces.White, Moved: interfaces.White},
			wantPhase: Idle,
		},
		{
			name:      "white passes",
			moves:     fakeMoves{interfaces.Black: 1},
			want:      Outcome{Current: interfaces.Black, Passed: interfaces.White, Moved: interfaces.White},
			wantPhase: Idle,
		},
		{
			name:      "nobody moves",
			moves:     fakeMoves{},
			want:      Outcome{Current: interfaces.Black, Passed: interfaces.White, GameOver: true, Moved: interfaces.White},
			wantPhase: GameOver,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := started(t, fakeMoves{interfaces.Black: 1})
			if err := c.StartPlacing(); err != nil {
				t.Fatalf("Unexpected StartPlacing err: %v", err)
			}

			got, err := c.Advance(test.moves)
			if err != nil {
				t.Fatalf("Unexpected Advance err: %v", err)
			}
			if got != test.want {
				t.Errorf("Unexpected outcome:\nwant: %+v,\ngot: %+v.", test.want, got)
			}
			if c.Phase() != test.wantPhase {
				t.Errorf("Unexpected phase:\nwant: %v,\ngot: %v.", test.wantPhase, c.Phase())
			}
		})
	}
}

func TestGameOverReportedOnce(t *testing.T) {
	c := started(t, fakeMoves{interfaces.Black: 1})
	if err := c.StartPlacing(); err != nil {
		t.Fatalf("Unexpected StartPlacing err: %v", err)
	}
	out, err := c.Advance(fakeMoves{})
	if err != nil || !out.GameOver {
		t.Fatalf("Expected game over, got %+v, err: %v", out, err)
	}

	for i := 0; i < 3; i++ {
		if again := c.Resolve(fakeMoves{}); again.GameOver || again.Passed != interfaces.NoSide {
			t.Errorf("Game over reported again: %+v", again)
		}
	}
	for _, side := range interfaces.Sides {
		if err := c.Accept(side); !errors.Is(err, ErrGameOver) {
			t.Errorf("Unexpected Accept err after game over:\nwant: %v,\ngot: %v.", ErrGameOver, err)
		}
	}

	c.Reset()
	if c.Phase() != Setup || c.Current() != interfaces.Black {
		t.Errorf("Unexpected state after Reset: %v, %v", c.Phase(), c.Current())
	}
}

func TestBeginResolvesPass(t *testing.T) {
	c := New()
	out, err := c.Begin(fakeMoves{interfaces.White: 1})
	if err != nil {
		t.Fatalf("Unexpected Begin err: %v", err)
	}
	if out.Passed != interfaces.Black || out.Current != interfaces.White {
		t.Errorf("Unexpected Begin outcome: %+v", out)
	}
}

func TestWithStock(t *testing.T) {
	moves := WithStock(fakeMoves{interfaces.Black: 2, interfaces.White: 2}, fakeStock{interfaces.White: true})
	if n := len(moves.LegalMoves(interfaces.Black)); n != 0 {
		t.Errorf("Unexpected moves for exhausted Black:\nwant: 0,\ngot: %d.", n)
	}
	if n := len(moves.LegalMoves(interfaces.White)); n != 2 {
		t.Errorf("Unexpected moves for White:\nwant: 2,\ngot: %d.", n)
	}

	c := New()
	out, err := c.Begin(moves)
	if err != nil {
		t.Fatalf("Unexpected Begin err: %v", err)
	}
	if out.Passed != interfaces.Black {
		t.Errorf("Exhausted Black should pass, got %+v", out)
	}
}
