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

package sound

import (
	"testing"
)

// TestManagerDisabled verifies that cues are safe to play without the audio device
func TestManagerDisabled(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	m := NewManager(false)
	if err := m.Initialize(); err != nil {
		t.Fatalf("Unexpected Initialize err: %v", err)
	}
	for _, cue := range []Cue{Tick, Decay, Error, Over} {
		m.Play(cue)
	}
	m.Cleanup()
}

func TestStreamerLength(t *testing.T) {
	tests := []struct {
		name  string
		cue   Cue
		tones int
	}{
		{name: "tick", cue: Tick, tones: 1},
		{name: "decay", cue: Decay, tones: 1},
		{name: "error", cue: Error, tones: 1},
		{name: "over", cue: Over, tones: 3},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			streamer, err := Streamer(test.cue)
			if err != nil {
				t.Fatalf("Unexpected Streamer err: %v", err)
			}

			total := 0
			buf := make([][2]float64, 512)
			for {
				n, ok := streamer.Stream(buf)
				total += n
				if !ok || n == 0 {
					break
				}
			}
			if len(cues[test.cue]) != test.tones {
				t.Fatalf("Unexpected tones of cue:\nwant: %d,\ngot: %d.", test.tones, len(cues[test.cue]))
			}
			want := 0
			for _, tone := range cues[test.cue] {
				want += sampleRate.N(tone.duration)
			}
			if total != want {
				t.Errorf("Unexpected cue length:\nwant: %d samples,\ngot: %d.", want, total)
			}
		})
	}

	if _, err := Streamer(Cue(42)); err == nil {
		t.Errorf("Expected error for unknown cue")
	}
}
