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

	"github.com/yagoggame/decaymaster/game/interfaces"
)

// Gamer is a member of a pool, seated in at most one Game
type Gamer struct {
	Name string // may repeat across gamers
	ID   int    // unique within a pool
	game Game   // nil while the gamer is vacant
}

// NewGamer returns a vacant gamer
func NewGamer(name string, id int) *Gamer {
	return &Gamer{Name: name, ID: id}
}

func (g *Gamer) String() string {
	return fmt.Sprintf("[ id: %d, name: %q, seated: %t ]", g.ID, g.Name, g.game != nil)
}

// GetGame returns the game the gamer is seated in
func (g *Gamer) GetGame() Game {
	return g.game
}

// SetGame seats the gamer in game, nil makes it vacant
func (g *Gamer) SetGame(game Game) {
	g.game = game
}

// GamerState is a seat of a gamer in a Game
type GamerState struct {
	Side interfaces.Side
	Name string
	// Stock is the number of accent units left for Side
	Stock map[interfaces.Accent]int
	// ToMove tells whether the game awaits a placement of this gamer
	ToMove bool
	// pending WaitTurn of the gamer
	turnMSGChan chan<- interface{}
}
