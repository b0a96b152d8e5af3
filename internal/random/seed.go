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

// Package random provides seed generation for decay samplers.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// Seed sources
const (
	SourceConfig = "config"
	SourceRandom = "random"
)

// NewSeed draws a seed from the operating system entropy source
func NewSeed() (seed int64, err error) {
	if err = binary.Read(crand.Reader, binary.LittleEndian, &seed); err != nil {
		return 0, fmt.Errorf("failed to draw a decay seed: %w", err)
	}
	return seed, nil
}

// ResolveSeed returns configured unless it is zero, otherwise a seed from gen.
// It also reports the source of the seed.
func ResolveSeed(configured int64, gen func() (int64, error)) (int64, string, error) {
	if configured != 0 {
		return configured, SourceConfig, nil
	}
	if gen == nil {
		gen = NewSeed
	}
	seed, err := gen()
	if err != nil {
		return 0, "", err
	}
	return seed, SourceRandom, nil
}
