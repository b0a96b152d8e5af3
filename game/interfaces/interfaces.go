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

package interfaces

import "fmt"

// Side provides datatype of stone's owners
type Side int

// Set of sides
const (
	NoSide Side = 0
	Black  Side = 1
	White  Side = -1
)

// Sides lists playing sides in turn order
var Sides = []Side{Black, White}

// Opponent returns the opposing side
func (s Side) Opponent() Side {
	return -s
}

// Valid reports whether s is a playing side
func (s Side) Valid() bool {
	return s == Black || s == White
}

// String provides compatibility with Stringer interface.
func (s Side) String() string {
	switch s {
	case Black:
		return "Black"
	case White:
		return "White"
	case NoSide:
		return "None"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// Accent marks a stone as a parent. Kinds are listed in cycling order.
type Accent int

// Set of accents
const (
	NoAccent Accent = iota
	Red
	Yellow
	Green
	Blue
)

// Accents lists every accent kind in cycling order
var Accents = []Accent{Red, Yellow, Green, Blue}

// DefaultAccent is carried by the initial stones and preselected for play
const DefaultAccent = Red

// Valid reports whether a is one of Accents
func (a Accent) Valid() bool {
	return a >= Red && a <= Blue
}

// String provides compatibility with Stringer interface.
func (a Accent) String() string {
	switch a {
	case NoAccent:
		return "none"
	case Red:
		return "red"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Accent(%d)", int(a))
}

// TurnData holds a board coordinate: X is the column, Y is the row, both from 0
type TurnData struct {
	X, Y int
}

// String provides compatibility with Stringer interface.
func (td TurnData) String() string {
	return fmt.Sprintf("(%d,%d)", td.X, td.Y)
}

// Cell is a stone on the board. Zero value is an empty cell.
type Cell struct {
	Owner  Side
	Accent Accent
	// LastParentAccent remembers the accent the stone held while a parent
	LastParentAccent Accent
}

// Empty reports whether no stone occupies the cell
func (c Cell) Empty() bool {
	return c.Owner == NoSide
}

// IsParent reports whether the stone carries an accent
func (c Cell) IsParent() bool {
	return !c.Empty() && c.Accent != NoAccent
}

// IsDaughter reports whether the stone is placed and carries no accent
func (c Cell) IsDaughter() bool {
	return !c.Empty() && c.Accent == NoAccent
}

// Toggled returns the stone after a flip to side: parent becomes daughter
// and daughter becomes a parent of its remembered accent.
func (c Cell) Toggled(side Side) Cell {
	rez := Cell{Owner: side, LastParentAccent: c.LastParentAccent}
	if c.Accent == NoAccent {
		rez.Accent = c.LastParentAccent
	}
	return rez
}

// Score holds count of stones per side
type Score map[Side]int

// Total returns count of stones on the board
func (s Score) Total() int {
	return s[Black] + s[White]
}

// Winner returns the side with more stones or NoSide on a draw
func (s Score) Winner() Side {
	switch {
	case s[Black] > s[White]:
		return Black
	case s[White] > s[Black]:
		return White
	}
	return NoSide
}

// FieldState describes the game state on the field
type FieldState struct {
	Cells     [][]Cell
	Score     Score
	Inventory map[Side]map[Accent]int
	Parents   []TurnData
}

// Master interface wraps functions to work with game field and it's state
type Master interface {
	Move(side Side, td TurnData, accent Accent) ([]TurnData, error)
	Flips(side Side, td TurnData) []TurnData
	LegalMoves(side Side) []TurnData
	CellAt(td TurnData) (Cell, error)
	Score() Score
	Size() int
	State() *FieldState
}
