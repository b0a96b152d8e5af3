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

// Package inventory keeps count of accent units each side may still place.
package inventory

import (
	"github.com/yagoggame/decaymaster/game/interfaces"
)

// DefaultStock is the number of units of each accent given to each side
var DefaultStock = map[interfaces.Accent]int{
	interfaces.Red:    12,
	interfaces.Yellow: 8,
	interfaces.Green:  8,
	interfaces.Blue:   4,
}

// Inventory holds remaining accent units per side.
// It is not thread safe: the owning Game serializes access.
type Inventory struct {
	stock  map[interfaces.Accent]int
	counts map[interfaces.Side]map[interfaces.Accent]int
}

// New produces an Inventory where both sides start with stock.
// nil stock means DefaultStock.
func New(stock map[interfaces.Accent]int) *Inventory {
	if stock == nil {
		stock = DefaultStock
	}
	inv := &Inventory{stock: make(map[interfaces.Accent]int, len(stock))}
	for a, n := range stock {
		if n < 0 {
			n = 0
		}
		inv.stock[a] = n
	}
	inv.Reset()
	return inv
}

// Reset restores the initial stock for both sides
func (inv *Inventory) Reset() {
	inv.counts = make(map[interfaces.Side]map[interfaces.Accent]int, len(interfaces.Sides))
	for _, side := range interfaces.Sides {
		counts := make(map[interfaces.Accent]int, len(interfaces.Accents))
		for _, a := range interfaces.Accents {
			counts[a] = inv.stock[a]
		}
		inv.counts[side] = counts
	}
}

// Has reports whether side has at least one unit of accent
func (inv *Inventory) Has(side interfaces.Side, accent interfaces.Accent) bool {
	return inv.Count(side, accent) > 0
}

// HasAny reports whether side has a unit of any accent
func (inv *Inventory) HasAny(side interfaces.Side) bool {
	for _, a := range interfaces.Accents {
		if inv.Has(side, a) {
			return true
		}
	}
	return false
}

// Count returns remaining units of accent for side
func (inv *Inventory) Count(side interfaces.Side, accent interfaces.Accent) int {
	counts, ok := inv.counts[side]
	if !ok {
		return 0
	}
	return counts[accent]
}

// Adjust adds delta to the count of accent for side. The result never
// drops below zero; over-consumption is silently truncated, so callers
// check Has first when that matters.
func (inv *Inventory) Adjust(side interfaces.Side, accent interfaces.Accent, delta int) {
	counts, ok := inv.counts[side]
	if !ok || !accent.Valid() {
		return
	}
	n := counts[accent] + delta
	if n < 0 {
		n = 0
	}
	counts[accent] = n
}

// Snapshot returns a copy of all counts
func (inv *Inventory) Snapshot() map[interfaces.Side]map[interfaces.Accent]int {
	rez := make(map[interfaces.Side]map[interfaces.Accent]int, len(inv.counts))
	for side, counts := range inv.counts {
		cpy := make(map[interfaces.Accent]int, len(counts))
		for a, n := range counts {
			cpy[a] = n
		}
		rez[side] = cpy
	}
	return rez
}
