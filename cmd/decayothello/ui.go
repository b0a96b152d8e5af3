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
	"go.uber.org/zap"

	"github.com/yagoggame/decaymaster/game"
	"github.com/yagoggame/decaymaster/game/field"
	"github.com/yagoggame/decaymaster/game/interfaces"
	"github.com/yagoggame/decaymaster/game/turn"
	"github.com/yagoggame/decaymaster/internal/sound"
)

// ui is a hotseat terminal frontend of one game
type ui struct {
	screen tcell.Screen
	game   game.Game
	sound  *sound.Manager
	logger *zap.Logger

	accent  interfaces.Accent
	cursor  interfaces.TurnData
	message string
	blinkOn bool
	buttons tcell.ButtonMask
}

func newUI(screen tcell.Screen, g game.Game, sm *sound.Manager, logger *zap.Logger) *ui {
	return &ui{
		screen:  screen,
		game:    g,
		sound:   sm,
		logger:  logger,
		accent:  interfaces.DefaultAccent,
		cursor:  interfaces.TurnData{X: 3, Y: 2},
		message: "click initial stones to recolor them, press s to start",
	}
}

// observe delivers notifications of the game goroutine to the event loop
func (u *ui) observe(n game.Notification) {
	if err := u.screen.PostEvent(tcell.NewEventInterrupt(n)); err != nil {
		u.logger.Debug("notification dropped", zap.Stringer("kind", n.Kind), zap.Error(err))
	}
}

// handle processes one event, it returns false to quit
func (u *ui) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventInterrupt:
		if n, ok := ev.Data().(game.Notification); ok {
			u.onNotification(n)
		}
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *ui) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		u.moveCursor(0, -1)
	case tcell.KeyDown:
		u.moveCursor(0, 1)
	case tcell.KeyLeft:
		u.moveCursor(-1, 0)
	case tcell.KeyRight:
		u.moveCursor(1, 0)
	case tcell.KeyEnter:
		u.act(u.cursor)
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case 's':
			u.report(u.game.BeginPlay())
		case 'r':
			u.report(u.game.Reset())
		case ' ':
			u.act(u.cursor)
		default:
			if accent, ok := accentOfKey(r); ok {
				u.selectAccent(accent)
			}
		}
	}
	return true
}

func (u *ui) handleMouse(ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0
	u.buttons = ev.Buttons()
	if !pressed {
		return
	}
	td, ok := cellOf(ev.Position())
	if !ok {
		return
	}
	u.cursor = td
	u.act(td)
}

func (u *ui) moveCursor(dx, dy int) {
	x, y := u.cursor.X+dx, u.cursor.Y+dy
	if x < 0 || y < 0 || x >= field.Size || y >= field.Size {
		return
	}
	u.cursor = interfaces.TurnData{X: x, Y: y}
}

// act recolors an initial stone in setup, otherwise places a stone
func (u *ui) act(td interfaces.TurnData) {
	state, err := u.game.State()
	if err != nil {
		u.report(err)
		return
	}
	if state.Phase == turn.Setup {
		_, err := u.game.CycleSetupAccent(td.X, td.Y)
		u.report(err)
		return
	}
	u.report(u.game.TryPlace(td.X, td.Y, u.accent))
}

// selectAccent refuses accents the side to move has no unit of.
// Accent keys are inert during setup.
func (u *ui) selectAccent(accent interfaces.Accent) {
	state, err := u.game.State()
	if err != nil {
		u.report(err)
		return
	}
	if !accentSelectable(state.Phase) {
		return
	}
	n, err := u.game.InventoryOf(state.Current, accent)
	if err != nil {
		u.report(err)
		return
	}
	if msg := stockRefusal(state.Current, accent, n); msg != "" {
		u.message = msg
		u.sound.Play(sound.Error)
		return
	}
	u.accent = accent
	u.message = ""
}

func (u *ui) report(err error) {
	u.message = describe(err)
	if err != nil {
		u.logger.Debug("command rejected", zap.String("reason", string(game.ReasonOf(err))), zap.Error(err))
		u.sound.Play(sound.Error)
	}
}

func (u *ui) onNotification(n game.Notification) {
	switch n.Kind {
	case game.PlayBegun:
		u.message = ""
	case game.DecayHighlighted:
		u.blinkOn = true
		u.sound.Play(sound.Tick)
	case game.DecayCleared:
		u.sound.Play(sound.Decay)
	case game.Passed:
		u.message = fmt.Sprintf("%v has no legal move and passes", n.Side)
	case game.Over:
		u.message = fmt.Sprintf("game over: black %d, white %d, %s",
			n.Score[interfaces.Black], n.Score[interfaces.White], winnerText(n.Side))
		u.sound.Play(sound.Over)
	case game.Reset:
		u.accent = interfaces.DefaultAccent
		u.message = "click initial stones to recolor them, press s to start"
	}
}

// blink toggles the highlighted decay target, it returns true if a redraw is needed
func (u *ui) blink(state *game.Snapshot) bool {
	if state == nil || state.Highlighted == nil {
		return false
	}
	u.blinkOn = !u.blinkOn
	if u.blinkOn {
		u.sound.Play(sound.Tick)
	}
	return true
}

func winnerText(side interfaces.Side) string {
	if side == interfaces.NoSide {
		return "draw"
	}
	return fmt.Sprintf("%v wins", side)
}

func (u *ui) draw() {
	state, err := u.game.State()
	if err != nil {
		return
	}

	u.screen.Clear()
	u.drawBoard(state)
	u.drawPanel(state)
	u.screen.Show()
}

func (u *ui) drawBoard(state *game.Snapshot) {
	hints := make(map[interfaces.TurnData]bool, len(state.Legal))
	for _, td := range state.Legal {
		hints[td] = true
	}

	label := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for i := 0; i < field.Size; i++ {
		x, _ := screenOf(interfaces.TurnData{X: i})
		u.screen.SetContent(x, originY-1, rune('a'+i), nil, label)
		u.screen.SetContent(originX-2, originY+i, rune('1'+i), nil, label)
	}

	for y := 0; y < field.Size; y++ {
		for x := 0; x < field.Size; x++ {
			td := interfaces.TurnData{X: x, Y: y}
			highlighted := state.Highlighted != nil && *state.Highlighted == td
			glyph, style := cellLook(state.Field.Cells[y][x], hints[td], highlighted, u.blinkOn)
			sx, sy := screenOf(td)
			u.screen.SetContent(sx, sy, glyph, nil, style)
			if td == u.cursor {
				u.screen.SetContent(sx-1, sy, '[', nil, tcell.StyleDefault)
				u.screen.SetContent(sx+1, sy, ']', nil, tcell.StyleDefault)
			}
		}
	}
}

func (u *ui) drawPanel(state *game.Snapshot) {
	row := originY
	line := func(text string, style tcell.Style) {
		drawText(u.screen, panelX, row, text, style)
		row++
	}
	plain := tcell.StyleDefault

	line(fmt.Sprintf("to move: %v %c", state.Current, sideGlyph(state.Current)), plain.Bold(true))
	line(fmt.Sprintf("phase:   %v", state.Phase), plain)
	line(fmt.Sprintf("score:   black %d  white %d", state.Field.Score[interfaces.Black], state.Field.Score[interfaces.White]), plain)
	row++

	for _, side := range interfaces.Sides {
		text := fmt.Sprintf("%-6v", side)
		drawText(u.screen, panelX, row, text, plain)
		x := panelX + len(text)
		for i, accent := range interfaces.Accents {
			style := plain.Foreground(accentColor(accent))
			if side == state.Current && accent == u.accent {
				style = style.Reverse(true)
			}
			cell := fmt.Sprintf(" %d:%-2d", i+1, state.Field.Inventory[side][accent])
			drawText(u.screen, x, row, cell, style)
			x += len(cell)
		}
		row++
	}
	row++

	if state.Phase == turn.Decaying || state.Phase == turn.Placing {
		line(fmt.Sprintf("decay pending: %d", state.PendingDecays), plain.Foreground(tcell.ColorOrange))
	}
	line(u.message, plain.Foreground(tcell.ColorYellow))
	row++
	line("1-4 accent  click/enter place  s start  r reset  q quit", plain.Foreground(tcell.ColorGray))
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
