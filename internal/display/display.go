// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"unicode/utf8"
)

// MaxLineLen is the longest line, in bytes, that Line returns.
const MaxLineLen = 40

// Color is a monochrome pixel value.
type Color bool

const (
	Black Color = false
	White Color = true
)

// Renderer paints text on the display surface.
type Renderer interface {
	Clear(c Color) error
	// DrawText draws text with its top-left corner at pixel (x, y).
	DrawText(x, y int, text string, fg, bg Color) error
}

// Line formats like fmt.Sprintf and truncates the result to MaxLineLen
// bytes without splitting a rune.
func Line(format string, args ...any) string {
	return Truncate(fmt.Sprintf(format, args...), MaxLineLen)
}

// Truncate shortens s to at most n bytes on a rune boundary.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Splash clears the display and writes one line per row.
func Splash(r Renderer, lines ...string) error {
	if err := r.Clear(Black); err != nil {
		return err
	}
	for i, l := range lines {
		if err := r.DrawText(2, 4+i*LineHeight, Truncate(l, MaxLineLen), White, Black); err != nil {
			return err
		}
	}
	return nil
}
