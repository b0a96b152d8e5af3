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
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yagoggame/decaymaster/game/decay"
	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/turn"
)

// Kind is a type of Notification
type Kind int

// Set of notification kinds
const (
	SetupChanged Kind = iota
	PlayBegun
	Placed
	DecayStarted
	DecayHighlighted
	DecayCleared
	DecayFinished
	TurnChanged
	Passed
	Over
	Reset
)

// String provides compatibility with Stringer interface.
func (k Kind) String() string {
	switch k {
	case SetupChanged:
		return "setup changed"
	case PlayBegun:
		return "play begun"
	case Placed:
		return "placed"
	case DecayStarted:
		return "decay started"
	case DecayHighlighted:
		return "decay highlighted"
	case DecayCleared:
		return "decay cleared"
	case DecayFinished:
		return "decay finished"
	case TurnChanged:
		return "turn changed"
	case Passed:
		return "passed"
	case Over:
		return "game over"
	case Reset:
		return "reset"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Notification tells the presentation layer what happened in a game.
// Only the fields meaningful for Kind are set.
type Notification struct {
	Kind   Kind
	GameID string
	// Side is the acting, passing or next side
	Side   interfaces.Side
	Pos    interfaces.TurnData
	Accent interfaces.Accent
	Flips  []interfaces.TurnData
	// Targets is the number of stones chosen to decay
	Targets int
	Step    decay.Step
	Score   interfaces.Score
}

// Pacing holds pauses of the decay phase.
// Zero pacing resolves a move as fast as the game loop runs.
type Pacing struct {
	// Settle is the pause between a placement and the decay draw
	Settle time.Duration
	// Blink is the pause while a decay target is highlighted
	Blink time.Duration
	// AfterDecay is the pause after a target decayed
	AfterDecay time.Duration
}

// Options configure a new Game
type Options struct {
	// Sampler draws decay samples. nil means a time seeded one.
	Sampler decay.Sampler
	// Stock is the initial accent stock of each side. nil means inventory.DefaultStock.
	Stock map[interfaces.Accent]int
	// Pacing of the decay phase
	Pacing Pacing
	// PassWhenExhausted forces a side without any accent unit to pass
	PassWhenExhausted bool
	// Observer receives notifications from the game goroutine.
	// It must not call methods of the same Game.
	Observer func(Notification)
	// Logger defaults to a no-op logger
	Logger *zap.Logger
}

// Snapshot is a copy of the whole game state
type Snapshot struct {
	ID      string
	Phase   turn.Phase
	Current interfaces.Side
	Field   *interfaces.FieldState
	// Legal lists moves of Current while the game awaits a move
	Legal []interfaces.TurnData
	// Highlighted is the decay target being highlighted, if any
	Highlighted *interfaces.TurnData
	// PendingDecays counts targets of the running decay phase not applied yet
	PendingDecays int
}
