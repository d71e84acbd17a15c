// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sound

import "time"

// Clock paces playback. Sleep must block the caller for d.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// MonotonicClock is the wall clock. time.Now carries a monotonic reading, so
// deadlines computed from it are immune to wall clock steps.
type MonotonicClock struct{}

func (MonotonicClock) Now() time.Time { return time.Now() }

func (MonotonicClock) Sleep(d time.Duration) { time.Sleep(d) }
