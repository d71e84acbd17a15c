// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package tick provides the free-running millisecond counter.
package tick

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// Period is the interval between counter increments.
const Period = time.Millisecond

var ErrAlreadyRunning = errors.New("tick: counter already running")

// Source is the read-only view of the counter handed to collaborators.
type Source interface {
	Millis() uint32
}

// Counter counts milliseconds since Start. Only the goroutine installed by
// Start writes it.
type Counter struct {
	ms      atomic.Uint32
	running atomic.Bool
	period  time.Duration
}

// NewCounter returns a stopped counter with the default 1ms period.
func NewCounter() *Counter {
	return &Counter{period: Period}
}

// Start installs the periodic increment. It fails if the counter is already
// running or has no valid period; the caller treats that as fatal.
func (c *Counter) Start(ctx context.Context) error {
	if c.period <= 0 {
		return fmt.Errorf("tick: invalid period %v", c.period)
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	ticker := time.NewTicker(c.period)
	go func() {
		defer ticker.Stop()
		defer c.running.Store(false)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.ms.Add(1)
			}
		}
	}()
	return nil
}

// Millis returns the current count. It wraps after about 49 days.
func (c *Counter) Millis() uint32 {
	return c.ms.Load()
}

// Running reports whether the increment goroutine is installed.
func (c *Counter) Running() bool {
	return c.running.Load()
}

// Elapsed returns the milliseconds between two readings, accounting for a
// single wrap of the counter.
func Elapsed(from, to uint32) uint32 {
	return to - from
}
