// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	Width  = 128
	Height = 64

	// LineHeight is the pixel height of one text row in Face7x13.
	LineHeight = 13
)

var face = basicfont.Face7x13

// Drawer is the part of ssd1306.Dev used to push frames.
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
}

// OLED renders text into an off-screen frame and pushes it to the panel on
// every call.
type OLED struct {
	dev   Drawer
	frame *image1bit.VerticalLSB
}

// NewOLED opens an SSD1306 panel on an I2C bus.
func NewOLED(bus i2c.Bus) (*OLED, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.DefaultOpts)
	if err != nil {
		return nil, fmt.Errorf("display: ssd1306 init: %w", err)
	}
	return NewOLEDWithDrawer(dev), nil
}

// NewOLEDWithDrawer wraps an already opened panel.
func NewOLEDWithDrawer(dev Drawer) *OLED {
	return &OLED{
		dev:   dev,
		frame: image1bit.NewVerticalLSB(image.Rect(0, 0, Width, Height)),
	}
}

// Clear fills the whole frame with c.
func (o *OLED) Clear(c Color) error {
	fill := byte(0)
	if c == White {
		fill = 0xFF
	}
	for i := range o.frame.Pix {
		o.frame.Pix[i] = fill
	}
	return o.flush()
}

// DrawText paints the background box of the text, then the glyphs.
func (o *OLED) DrawText(x, y int, text string, fg, bg Color) error {
	adv := font.MeasureString(face, text).Ceil()
	box := image.Rect(x, y, x+adv, y+LineHeight).Intersect(o.frame.Bounds())
	for py := box.Min.Y; py < box.Max.Y; py++ {
		for px := box.Min.X; px < box.Max.X; px++ {
			o.frame.SetBit(px, py, bit(bg))
		}
	}

	drawer := &font.Drawer{
		Dst:  o.frame,
		Src:  &image.Uniform{bit(fg)},
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	drawer.DrawString(text)
	return o.flush()
}

// Frame exposes the off-screen buffer.
func (o *OLED) Frame() *image1bit.VerticalLSB {
	return o.frame
}

func (o *OLED) flush() error {
	if err := o.dev.Draw(o.dev.Bounds(), o.frame, image.Point{}); err != nil {
		return fmt.Errorf("display: draw: %w", err)
	}
	return nil
}

func bit(c Color) image1bit.Bit {
	if c == White {
		return image1bit.On
	}
	return image1bit.Off
}
