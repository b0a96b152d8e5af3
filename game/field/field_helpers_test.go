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

package field_test

import (
	"testing"

	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/inventory"
	. "github.com/yagoggame/decaymaster/game/field"
)

type stone struct {
	td   interfaces.TurnData
	cell interfaces.Cell
}

func parent(side interfaces.Side, accent interfaces.Accent) interfaces.Cell {
	return interfaces.Cell{Owner: side, Accent: accent, LastParentAccent: accent}
}

func daughter(side interfaces.Side, memory interfaces.Accent) interfaces.Cell {
	return interfaces.Cell{Owner: side, LastParentAccent: memory}
}

// openingStones is the canonical centre with default accent
var openingStones = []stone{
	{td: interfaces.TurnData{X: 3, Y: 3}, cell: parent(interfaces.White, interfaces.Red)},
	{td: interfaces.TurnData{X: 4, Y: 4}, cell: parent(interfaces.White, interfaces.Red)},
	{td: interfaces.TurnData{X: 3, Y: 4}, cell: parent(interfaces.Black, interfaces.Red)},
	{td: interfaces.TurnData{X: 4, Y: 3}, cell: parent(interfaces.Black, interfaces.Red)},
}

// newField prepares a field with stones preset and inventory inv.
func newField(t *testing.T, inv *inventory.Inventory, stones []stone) *Field {
	field := New(inv)
	for _, s := range stones {
		if err := field.Preset(s.td, s.cell); err != nil {
			t.Fatalf("Unexpected Preset(%v) err: %v", s.td, err)
		}
	}
	return field
}

func mustCell(t *testing.T, field *Field, td interfaces.TurnData) interfaces.Cell {
	cell, err := field.CellAt(td)
	if err != nil {
		t.Fatalf("Unexpected CellAt(%v) err: %v", td, err)
	}
	return cell
}

func countOccupied(field *Field) int {
	n := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			cell, _ := field.CellAt(interfaces.TurnData{X: x, Y: y})
			if !cell.Empty() {
				n++
			}
		}
	}
	return n
}
