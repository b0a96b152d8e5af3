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

package field

import (
	"errors"
	"fmt"

	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/inventory"
)

var (
	// ErrSide error occurs when some of operations is made with No Side
	ErrSide = errors.New("only black and white stones allowed")
	// ErrIllegalMove error occurs when Move captures nothing or targets an occupied cell
	ErrIllegalMove = errors.New("illegal move")
	// ErrPosition error occurs when Move is made with TurnData out of range
	ErrPosition = errors.New("position is out of range")
	// ErrOccupied error occurs when Move is made on occupied position
	ErrOccupied = errors.New("the position is occupied")
	// ErrNoCaptures error occurs when Move would not flip any stone
	ErrNoCaptures = errors.New("the move captures nothing")
	// ErrInventoryExhausted error occurs when there are no units of selected accent left
	ErrInventoryExhausted = errors.New("no units of the accent left")
	// ErrAccent error occurs when operation is made with unknown accent
	ErrAccent = errors.New("unknown accent")
	// ErrNotParent error occurs when a daughter or an empty cell is asked to decay
	ErrNotParent = errors.New("the stone is not a parent")
)

// Size is the board's dimension
const Size = 8

var directions = [8]interfaces.TurnData{
	{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1},
	{X: 1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1},
}

// Field holds stones on the game desk and spends accent units on placement
type Field struct {
	field     [Size][Size]interfaces.Cell
	inventory *inventory.Inventory
}

var _ interfaces.Master = (*Field)(nil)

// New generates an empty Field which spends units from inv.
// nil inv means a fresh inventory with default stock.
func New(inv *inventory.Inventory) *Field {
	if inv == nil {
		inv = inventory.New(nil)
	}
	return &Field{inventory: inv}
}

// Size returns field's size
func (field *Field) Size() int {
	return Size
}

// Inventory returns the inventory the field spends units from
func (field *Field) Inventory() *inventory.Inventory {
	return field.inventory
}

// Reset empties the board. Inventory is left untouched.
func (field *Field) Reset() {
	field.field = [Size][Size]interfaces.Cell{}
}

// Flips returns the stones side would capture by a stone at td.
// It is empty for an occupied or out of range td, so a non-empty result
// means the move is legal.
func (field *Field) Flips(side interfaces.Side, td interfaces.TurnData) []interfaces.TurnData {
	if !side.Valid() || !inBounds(td) || !field.at(td).Empty() {
		return nil
	}

	var flips []interfaces.TurnData
	for _, d := range directions {
		run := make([]interfaces.TurnData, 0, Size)
		pos := interfaces.TurnData{X: td.X + d.X, Y: td.Y + d.Y}
		for inBounds(pos) && field.at(pos).Owner == side.Opponent() {
			run = append(run, pos)
			pos = interfaces.TurnData{X: pos.X + d.X, Y: pos.Y + d.Y}
		}
		if len(run) > 0 && inBounds(pos) && field.at(pos).Owner == side {
			flips = append(flips, run...)
		}
	}
	return flips
}

// LegalMoves returns all positions where side may move, scanned row by row
func (field *Field) LegalMoves(side interfaces.Side) []interfaces.TurnData {
	moves := make([]interfaces.TurnData, 0)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			td := interfaces.TurnData{X: x, Y: y}
			if len(field.Flips(side, td)) > 0 {
				moves = append(moves, td)
			}
		}
	}
	return moves
}

// Move performs move with attempt to put a parent stone of accent for side to position td.
// It returns the flipped positions. State is not changed on error.
func (field *Field) Move(side interfaces.Side, td interfaces.TurnData, accent interfaces.Accent) ([]interfaces.TurnData, error) {
	if err := field.precheck(side, td); err != nil {
		return nil, err
	}
	if !accent.Valid() {
		return nil, fmt.Errorf("%w: got accent: %v", ErrAccent, accent)
	}
	if !field.inventory.Has(side, accent) {
		return nil, fmt.Errorf("%w: %v has no %v", ErrInventoryExhausted, side, accent)
	}
	if err := field.checkPosition(td); err != nil {
		return nil, err
	}

	flips := field.Flips(side, td)
	if len(flips) == 0 {
		return nil, fmt.Errorf("%w: %w at %v", ErrIllegalMove, ErrNoCaptures, td)
	}

	field.inventory.Adjust(side, accent, -1)
	field.field[td.Y][td.X] = interfaces.Cell{
		Owner:            side,
		Accent:           accent,
		LastParentAccent: accent,
	}
	for _, f := range flips {
		field.field[f.Y][f.X] = field.at(f).Toggled(side)
	}
	return flips, nil
}

// CellAt returns the stone at td
func (field *Field) CellAt(td interfaces.TurnData) (interfaces.Cell, error) {
	if !inBounds(td) {
		return interfaces.Cell{}, fmt.Errorf("%w: got turn data: %v", ErrPosition, td)
	}
	return field.at(td), nil
}

// Parents returns positions of all parent stones, scanned row by row
func (field *Field) Parents() []interfaces.TurnData {
	parents := make([]interfaces.TurnData, 0)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if field.field[y][x].IsParent() {
				parents = append(parents, interfaces.TurnData{X: x, Y: y})
			}
		}
	}
	return parents
}

// Decay turns the parent at td into a daughter of the opposite side.
// It returns the stone after decay.
func (field *Field) Decay(td interfaces.TurnData) (interfaces.Cell, error) {
	cell, err := field.CellAt(td)
	if err != nil {
		return interfaces.Cell{}, err
	}
	if !cell.IsParent() {
		return cell, fmt.Errorf("%w: at %v", ErrNotParent, td)
	}

	cell.Owner = cell.Owner.Opponent()
	cell.Accent = interfaces.NoAccent
	field.field[td.Y][td.X] = cell
	return cell, nil
}

// Preset puts cell at td regardless of rules and inventory.
// It is used to arrange initial stones.
func (field *Field) Preset(td interfaces.TurnData, cell interfaces.Cell) error {
	if !inBounds(td) {
		return fmt.Errorf("%w: got turn data: %v", ErrPosition, td)
	}
	if !cell.Owner.Valid() {
		return fmt.Errorf("%w: got side: %v", ErrSide, cell.Owner)
	}
	field.field[td.Y][td.X] = cell
	return nil
}

// Recolor changes the accent of the parent at td, keeping its memory in sync.
func (field *Field) Recolor(td interfaces.TurnData, accent interfaces.Accent) error {
	cell, err := field.CellAt(td)
	if err != nil {
		return err
	}
	if !cell.IsParent() {
		return fmt.Errorf("%w: at %v", ErrNotParent, td)
	}
	if !accent.Valid() {
		return fmt.Errorf("%w: got accent: %v", ErrAccent, accent)
	}
	cell.Accent = accent
	cell.LastParentAccent = accent
	field.field[td.Y][td.X] = cell
	return nil
}

// Score counts stones per side
func (field *Field) Score() interfaces.Score {
	score := interfaces.Score{interfaces.Black: 0, interfaces.White: 0}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if owner := field.field[y][x].Owner; owner != interfaces.NoSide {
				score[owner]++
			}
		}
	}
	return score
}

// State calculate full state description
func (field *Field) State() *interfaces.FieldState {
	state := &interfaces.FieldState{
		Cells:     make([][]interfaces.Cell, Size),
		Score:     field.Score(),
		Inventory: field.inventory.Snapshot(),
		Parents:   field.Parents(),
	}
	for y := range state.Cells {
		state.Cells[y] = make([]interfaces.Cell, Size)
		copy(state.Cells[y], field.field[y][:])
	}
	return state
}

func (field *Field) at(td interfaces.TurnData) interfaces.Cell {
	return field.field[td.Y][td.X]
}

func (field *Field) precheck(side interfaces.Side, td interfaces.TurnData) error {
	if !side.Valid() {
		return fmt.Errorf("%w: got side: %v", ErrSide, side)
	}

	if !inBounds(td) {
		return fmt.Errorf("%w: %w: got turn data: %v", ErrIllegalMove, ErrPosition, td)
	}
	return nil
}

func (field *Field) checkPosition(td interfaces.TurnData) error {
	if !field.at(td).Empty() {
		return fmt.Errorf("%w: %w at %v", ErrIllegalMove, ErrOccupied, td)
	}
	return nil
}

func inBounds(td interfaces.TurnData) bool {
	return td.X >= 0 && td.X < Size && td.Y >= 0 && td.Y < Size
}
