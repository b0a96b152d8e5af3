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

// Package turn decides whose turn it is, forces passes and detects the end of a game.
package turn

import (
	"errors"
	"fmt"

	"github.com/yagoggame/decaymaster/game/interfaces"
)

var (
	// ErrNotYourTurn error occurs when a side acts out of its turn
	ErrNotYourTurn = errors.New("not your turn")
	// ErrGameOver error occurs when attempt operation on game wich is over
	ErrGameOver = errors.New("the game is over")
	// ErrBusy error occurs when a placement arrives while the previous one still resolves
	ErrBusy = errors.New("previous move is still resolving")
	// ErrSetup error occurs when a placement arrives before the play began
	ErrSetup = errors.New("the game is in setup")
	// ErrStarted error occurs when setup is attempted after the play began
	ErrStarted = errors.New("the play already began")
	// ErrTransition error occurs on a phase change the machine does not allow
	ErrTransition = errors.New("phase transition not allowed")
)

// Phase is a state of the turn machine
type Phase int

// Set of phases
const (
	Setup Phase = iota
	Idle
	Placing
	Decaying
	GameOver
)

// String provides compatibility with Stringer interface.
func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Idle:
		return "idle"
	case Placing:
		return "placing"
	case Decaying:
		return "decaying"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// MoveLister lists legal moves of a side
type MoveLister interface {
	LegalMoves(side interfaces.Side) []interfaces.TurnData
}

// Outcome reports what Resolve did
type Outcome struct {
	// Passed is the side that was forced to pass, NoSide if none
	Passed interfaces.Side
	// GameOver is true only on the resolution which ended the game
	GameOver bool
	// Current is the side to move after resolution
	Current interfaces.Side
	// Moved is the side the turn went to before resolution, set by Advance only
	Moved interfaces.Side
}

// Controller is the turn state machine:
// Setup -> Idle -> Placing -> Decaying -> Idle ..., any -> GameOver.
type Controller struct {
	current interfaces.Side
	phase   Phase
}

// New produces a Controller in setup with Black to move
func New() *Controller {
	return &Controller{current: interfaces.Black, phase: Setup}
}

// Current returns the side to move
func (c *Controller) Current() interfaces.Side {
	return c.current
}

// Phase returns the current phase
func (c *Controller) Phase() Phase {
	return c.phase
}

// Reset returns the machine to setup with Black to move
func (c *Controller) Reset() {
	c.current = interfaces.Black
	c.phase = Setup
}

// CheckSetup returns nil if setup operations are allowed
func (c *Controller) CheckSetup() error {
	if c.phase != Setup {
		return fmt.Errorf("%w: phase is %v", ErrStarted, c.phase)
	}
	return nil
}

// Begin leaves setup and resolves passes for the first side
func (c *Controller) Begin(moves MoveLister) (Outcome, error) {
	if err := c.CheckSetup(); err != nil {
		return Outcome{}, err
	}
	c.phase = Idle
	return c.Resolve(moves), nil
}

// Accept checks that side may place a stone right now
func (c *Controller) Accept(side interfaces.Side) error {
	switch c.phase {
	case Setup:
		return ErrSetup
	case GameOver:
		return ErrGameOver
	case Placing, Decaying:
		return fmt.Errorf("%w: phase is %v", ErrBusy, c.phase)
	}
	if side != c.current {
		return fmt.Errorf("%w: %v to move, got %v", ErrNotYourTurn, c.current, side)
	}
	return nil
}

// StartPlacing marks an accepted placement as resolving
func (c *Controller) StartPlacing() error {
	return c.transit(Idle, Placing)
}

// StartDecay marks the decay phase of the resolving placement
func (c *Controller) StartDecay() error {
	return c.transit(Placing, Decaying)
}

// Advance finishes a resolved placement: the turn passes unconditionally to
// the opponent, then passes are resolved again since decay may have changed
// which moves are legal.
func (c *Controller) Advance(moves MoveLister) (Outcome, error) {
	if c.phase != Placing && c.phase != Decaying {
		return Outcome{}, fmt.Errorf("%w: advance from %v", ErrTransition, c.phase)
	}
	c.phase = Idle
	c.current = c.current.Opponent()
	moved := c.current
	out := c.Resolve(moves)
	out.Moved = moved
	return out, nil
}

// Resolve forces a pass if the side to move has no legal move, and ends the
// game if the opponent has none either. It is a no-op outside Idle.
func (c *Controller) Resolve(moves MoveLister) Outcome {
	out := Outcome{Current: c.current}
	if c.phase != Idle {
		return out
	}
	if len(moves.LegalMoves(c.current)) > 0 {
		return out
	}

	out.Passed = c.current
	c.current = c.current.Opponent()
	out.Current = c.current

	if len(moves.LegalMoves(c.current)) == 0 {
		c.phase = GameOver
		out.GameOver = true
	}
	return out
}

func (c *Controller) transit(from, to Phase) error {
	if c.phase != from {
		return fmt.Errorf("%w: %v -> %v from %v", ErrTransition, from, to, c.phase)
	}
	c.phase = to
	return nil
}

// Stock tells whether a side still has an accent unit to place
type Stock interface {
	HasAny(side interfaces.Side) bool
}

type stockLister struct {
	moves MoveLister
	stock Stock
}

func (s stockLister) LegalMoves(side interfaces.Side) []interfaces.TurnData {
	if !s.stock.HasAny(side) {
		return nil
	}
	return s.moves.LegalMoves(side)
}

// WithStock wraps moves so that a side without any accent unit left has no
// legal move and is forced to pass.
func WithStock(moves MoveLister, stock Stock) MoveLister {
	return stockLister{moves: moves, stock: stock}
}
