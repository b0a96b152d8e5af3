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

// Package setup arranges the initial stones and lets players recolor them before play.
package setup

import (
	"errors"
	"fmt"

	"github.com/yagoggame/decaymaster/game/field"
	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/inventory"
)

var (
	// ErrNotInitial error occurs when a non initial position is recolored
	ErrNotInitial = errors.New("not an initial stone")
	// ErrEmpty error occurs when an initial position holds no stone
	ErrEmpty = errors.New("initial stone is missing")
)

// Stone is a predetermined initial stone
type Stone struct {
	Pos   interfaces.TurnData
	Owner interfaces.Side
}

// InitialStones are the four centre stones, two per side
var InitialStones = []Stone{
	{Pos: interfaces.TurnData{X: 3, Y: 3}, Owner: interfaces.White},
	{Pos: interfaces.TurnData{X: 4, Y: 4}, Owner: interfaces.White},
	{Pos: interfaces.TurnData{X: 3, Y: 4}, Owner: interfaces.Black},
	{Pos: interfaces.TurnData{X: 4, Y: 3}, Owner: interfaces.Black},
}

// IsInitial reports whether td is one of InitialStones
func IsInitial(td interfaces.TurnData) bool {
	for _, s := range InitialStones {
		if s.Pos == td {
			return true
		}
	}
	return false
}

// Arrange puts the initial stones as parents of accent and debits
// one unit from the owner's inventory per stone.
func Arrange(board *field.Field, inv *inventory.Inventory, accent interfaces.Accent) error {
	for _, s := range InitialStones {
		cell := interfaces.Cell{Owner: s.Owner, Accent: accent, LastParentAccent: accent}
		if err := board.Preset(s.Pos, cell); err != nil {
			return fmt.Errorf("failed to arrange initial stone at %v: %w", s.Pos, err)
		}
		inv.Adjust(s.Owner, accent, -1)
	}
	return nil
}

// Cycle recolors the initial stone at td to the next accent the owner still
// has in stock, wrapping around, and moves one unit from the new accent to the
// old one. If no other accent is available the stone is left as is.
// It returns the accent the stone carries afterwards.
func Cycle(board *field.Field, inv *inventory.Inventory, td interfaces.TurnData) (interfaces.Accent, error) {
	if !IsInitial(td) {
		return interfaces.NoAccent, fmt.Errorf("%w: at %v", ErrNotInitial, td)
	}
	cell, err := board.CellAt(td)
	if err != nil {
		return interfaces.NoAccent, err
	}
	if !cell.IsParent() {
		return interfaces.NoAccent, fmt.Errorf("%w: at %v", ErrEmpty, td)
	}

	next := nextAccent(inv, cell.Owner, cell.Accent)
	if next == cell.Accent {
		return cell.Accent, nil
	}

	if err := board.Recolor(td, next); err != nil {
		return cell.Accent, err
	}
	inv.Adjust(cell.Owner, cell.Accent, +1)
	inv.Adjust(cell.Owner, next, -1)
	return next, nil
}

func nextAccent(inv *inventory.Inventory, owner interfaces.Side, current interfaces.Accent) interfaces.Accent {
	idx := 0
	for i, a := range interfaces.Accents {
		if a == current {
			idx = i
		}
	}
	for i := 1; i <= len(interfaces.Accents); i++ {
		a := interfaces.Accents[(idx+i)%len(interfaces.Accents)]
		if inv.Has(owner, a) {
			return a
		}
	}
	return current
}
