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

// Package sound plays short audio cues of a decay othello game.
package sound

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a kind of audio cue
type Cue int

// Set of cues
const (
	// Tick sounds on every blink of a decay target
	Tick Cue = iota
	// Decay sounds when a target decays
	Decay
	// Error sounds when a command is rejected
	Error
	// Over sounds at the end of a game
	Over
)

// tone is a sine tone of a cue
type tone struct {
	freq     float64
	duration time.Duration
}

var cues = map[Cue][]tone{
	Tick:  {{freq: 880, duration: 50 * time.Millisecond}},
	Decay: {{freq: 440, duration: 120 * time.Millisecond}},
	Error: {{freq: 120, duration: 150 * time.Millisecond}},
	Over:  {{freq: 523.25, duration: 150 * time.Millisecond}, {freq: 659.25, duration: 150 * time.Millisecond}, {freq: 783.99, duration: 300 * time.Millisecond}},
}

// Manager plays cues. A Manager that is disabled or not initialized is silent.
type Manager struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	mixer       *beep.Mixer
}

// NewManager creates a Manager; a disabled one never touches the audio device
func NewManager(enabled bool) *Manager {
	return &Manager{
		enabled: enabled,
		mixer:   &beep.Mixer{},
	}
}

// Initialize sets up the audio device
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play plays cue
func (m *Manager) Play(cue Cue) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	streamer, err := Streamer(cue)
	if err != nil {
		return
	}
	speaker.Lock()
	m.mixer.Add(streamer)
	speaker.Unlock()
}

// Cleanup stops all sounds and closes the audio device
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// Streamer builds a finite streamer of cue
func Streamer(cue Cue) (beep.Streamer, error) {
	tones, ok := cues[cue]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", cue)
	}

	parts := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		sine, err := generators.SineTone(sampleRate, t.freq)
		if err != nil {
			return nil, fmt.Errorf("failed to build cue %d: %w", cue, err)
		}
		parts = append(parts, beep.Take(sampleRate.N(t.duration), sine))
	}
	return beep.Seq(parts...), nil
}
