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

package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/yagoggame/decaymaster/game"
	"github.com/yagoggame/decaymaster/game/field"
	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/turn"
)

// board geometry on the screen
const (
	originX = 4
	originY = 2
	cellW   = 3
	panelX  = originX + field.Size*cellW + 4
)

// screenOf returns the screen column and row of the centre of a board cell
func screenOf(td interfaces.TurnData) (int, int) {
	return originX + td.X*cellW + cellW/2, originY + td.Y
}

// cellOf maps a screen position to a board cell
func cellOf(x, y int) (interfaces.TurnData, bool) {
	if x < originX || y < originY {
		return interfaces.TurnData{}, false
	}
	td := interfaces.TurnData{X: (x - originX) / cellW, Y: y - originY}
	if td.X >= field.Size || td.Y >= field.Size {
		return interfaces.TurnData{}, false
	}
	return td, true
}

// accentOfKey maps keys 1-4 to accents
func accentOfKey(r rune) (interfaces.Accent, bool) {
	idx := int(r - '1')
	if idx < 0 || idx >= len(interfaces.Accents) {
		return interfaces.NoAccent, false
	}
	return interfaces.Accents[idx], true
}

func accentColor(accent interfaces.Accent) tcell.Color {
	switch accent {
	case interfaces.Red:
		return tcell.ColorRed
	case interfaces.Yellow:
		return tcell.ColorYellow
	case interfaces.Green:
		return tcell.ColorGreen
	case interfaces.Blue:
		return tcell.ColorBlue
	}
	return tcell.ColorSilver
}

func sideGlyph(side interfaces.Side) rune {
	switch side {
	case interfaces.Black:
		return '●'
	case interfaces.White:
		return '○'
	}
	return '·'
}

// cellLook returns the glyph and the style of a board cell.
// A parent is drawn in the colour of its accent, a daughter in grey.
func cellLook(cell interfaces.Cell, hint, highlighted, blinkOn bool) (rune, tcell.Style) {
	style := tcell.StyleDefault
	if cell.Empty() {
		if hint {
			return '+', style.Foreground(tcell.ColorDarkCyan)
		}
		return '·', style.Foreground(tcell.ColorGray)
	}

	style = style.Foreground(accentColor(cell.Accent)).Bold(cell.IsParent())
	if highlighted && blinkOn {
		style = style.Reverse(true)
	}
	return sideGlyph(cell.Owner), style
}

// accentSelectable tells whether accent keys work in phase
func accentSelectable(phase turn.Phase) bool {
	return phase != turn.Setup
}

// stockRefusal returns the status line for an accent side has no unit of, "" otherwise
func stockRefusal(side interfaces.Side, accent interfaces.Accent, stock int) string {
	if stock > 0 {
		return ""
	}
	return fmt.Sprintf("%v has no %v units left", side, accent)
}

// describe turns a rejected command into a status line
func describe(err error) string {
	switch game.ReasonOf(err) {
	case game.ReasonNone:
		return ""
	case game.ReasonIllegalMove:
		return "illegal move: the stone must outflank opponent stones"
	case game.ReasonInventoryExhausted:
		return "no units of this accent left"
	case game.ReasonNotYourTurn:
		return "not your turn"
	case game.ReasonGameOver:
		return "the game is over, press r to restart"
	case game.ReasonBusy:
		return "wait for the decay to finish"
	case game.ReasonSetup:
		return "press s to start the game"
	case game.ReasonStarted:
		return "initial stones are fixed once the game started"
	case game.ReasonNotInitial:
		return "only initial stones can be recolored"
	}
	return err.Error()
}
