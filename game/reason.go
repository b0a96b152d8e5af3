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
	"errors"

	"github.com/yagoggame/decaymaster/game/field"
	"github.com/yagoggame/decaymaster/game/setup"
	"github.com/yagoggame/decaymaster/game/turn"
)

// Reason is a code of a rejected command for the presentation layer
type Reason string

// Set of reasons
const (
	ReasonNone               Reason = ""
	ReasonIllegalMove        Reason = "illegal_move"
	ReasonInventoryExhausted Reason = "inventory_exhausted"
	ReasonNotYourTurn        Reason = "not_your_turn"
	ReasonGameOver           Reason = "game_over"
	ReasonBusy               Reason = "busy"
	ReasonSetup              Reason = "setup"
	ReasonStarted            Reason = "started"
	ReasonNotInitial         Reason = "not_initial"
	ReasonBadInput           Reason = "bad_input"
	ReasonUnknownGamer       Reason = "unknown_gamer"
	ReasonUnavailable        Reason = "unavailable"
	ReasonUnknown            Reason = "unknown"
)

var reasons = []struct {
	err    error
	reason Reason
}{
	{field.ErrInventoryExhausted, ReasonInventoryExhausted},
	{field.ErrIllegalMove, ReasonIllegalMove},
	{field.ErrSide, ReasonBadInput},
	{field.ErrAccent, ReasonBadInput},
	{field.ErrPosition, ReasonBadInput},
	{turn.ErrNotYourTurn, ReasonNotYourTurn},
	{turn.ErrGameOver, ReasonGameOver},
	{turn.ErrBusy, ReasonBusy},
	{turn.ErrSetup, ReasonSetup},
	{turn.ErrStarted, ReasonStarted},
	{setup.ErrNotInitial, ReasonNotInitial},
	{setup.ErrEmpty, ReasonNotInitial},
	{ErrUnknownID, ReasonUnknownGamer},
	{ErrNoPlace, ReasonUnknownGamer},
	{ErrResourceNotAvailable, ReasonUnavailable},
	{ErrGameDestroyed, ReasonUnavailable},
	{ErrOtherGamerLeft, ReasonGameOver},
}

// ReasonOf maps an error returned by a Game to its reason code
func ReasonOf(err error) Reason {
	if err == nil {
		return ReasonNone
	}
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return ReasonUnknown
}
