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

// Package decay implements the post-move phase in which parent stones may
// spontaneously turn into daughters of the opposite side.
//
// # Determinism
//
// All randomness comes from the Sampler passed in. Given the same board and
// a Sampler seeded the same way, Plan and Run always pick the same targets.
//
// # Ordering
//
// Parents are sampled row by row, left to right, one draw per parent, and
// targets are applied in that order.
//
// Decay never consults or changes the inventory: a decayed accent unit is
// lost from circulation.
package decay

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/yagoggame/decaymaster/game/interfaces"
)

// ErrPhaseDone error occurs on a step of a phase without targets left
var ErrPhaseDone = errors.New("decay phase is done")

// Probability returns the chance that a parent of accent decays after a move.
// Rarer accents are more stable.
func Probability(accent interfaces.Accent) float64 {
	switch accent {
	case interfaces.Red:
		return 1.0 / 12
	case interfaces.Yellow:
		return 1.0 / 20
	case interfaces.Green:
		return 1.0 / 30
	case interfaces.Blue:
		return 1.0 / 100
	}
	return 0
}

// Sampler yields uniform samples in [0,1). *rand.Rand satisfies it.
type Sampler interface {
	Float64() float64
}

// NewSampler returns a Sampler seeded with seed
func NewSampler(seed int64) Sampler {
	return rand.New(rand.NewSource(seed))
}

// Board is the part of the board engine decay works on
type Board interface {
	Parents() []interfaces.TurnData
	CellAt(td interfaces.TurnData) (interfaces.Cell, error)
	Decay(td interfaces.TurnData) (interfaces.Cell, error)
}

// Target is a parent stone chosen to decay
type Target struct {
	Pos    interfaces.TurnData
	Accent interfaces.Accent
	Sample float64
}

// Step records one applied decay
type Step struct {
	Pos    interfaces.TurnData
	Before interfaces.Cell
	After  interfaces.Cell
}

// Observer is told about every target of Run: Highlight before the stone
// changes, Settle after. Both may block to pace presentation.
type Observer interface {
	Highlight(target Target, board Board)
	Settle(step Step, board Board)
}

// Plan snapshots all parents and draws one sample for each,
// keeping those whose sample falls below their accent's probability.
func Plan(board Board, sampler Sampler) ([]Target, error) {
	parents := board.Parents()
	targets := make([]Target, 0, len(parents))
	for _, pos := range parents {
		cell, err := board.CellAt(pos)
		if err != nil {
			return nil, fmt.Errorf("failed to plan decay at %v: %w", pos, err)
		}
		sample := sampler.Float64()
		if sample < Probability(cell.Accent) {
			targets = append(targets, Target{Pos: pos, Accent: cell.Accent, Sample: sample})
		}
	}
	return targets, nil
}

// Apply performs decay of target on board
func Apply(board Board, target Target) (Step, error) {
	before, err := board.CellAt(target.Pos)
	if err != nil {
		return Step{}, fmt.Errorf("failed to apply decay at %v: %w", target.Pos, err)
	}
	after, err := board.Decay(target.Pos)
	if err != nil {
		return Step{}, fmt.Errorf("failed to apply decay at %v: %w", target.Pos, err)
	}
	return Step{Pos: target.Pos, Before: before, After: after}, nil
}

// Phase is a decay phase in progress: targets are drawn once by Start
// and decayed one by one by Step.
type Phase struct {
	board   Board
	pending []Target
}

// Start draws the targets of a new phase on board
func Start(board Board, sampler Sampler) (*Phase, error) {
	targets, err := Plan(board, sampler)
	if err != nil {
		return nil, err
	}
	return &Phase{board: board, pending: targets}, nil
}

// Next returns the target Step decays next, false when none is left
func (p *Phase) Next() (Target, bool) {
	if p == nil || len(p.pending) == 0 {
		return Target{}, false
	}
	return p.pending[0], true
}

// Len returns the number of targets left
func (p *Phase) Len() int {
	if p == nil {
		return 0
	}
	return len(p.pending)
}

// Step decays the next target. The target is dropped even if it fails.
func (p *Phase) Step() (Step, error) {
	target, ok := p.Next()
	if !ok {
		return Step{}, ErrPhaseDone
	}
	p.pending = p.pending[1:]
	return Apply(p.board, target)
}

// Run performs a whole decay phase synchronously and returns applied steps.
// observer may be nil.
func Run(board Board, sampler Sampler, observer Observer) ([]Step, error) {
	phase, err := Start(board, sampler)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, phase.Len())
	for target, ok := phase.Next(); ok; target, ok = phase.Next() {
		if observer != nil {
			observer.Highlight(target, board)
		}
		step, err := phase.Step()
		if err != nil {
			return steps, err
		}
		steps = append(steps, step)
		if observer != nil {
			observer.Settle(step, board)
		}
	}
	return steps, nil
}
