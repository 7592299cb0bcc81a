// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pagefont rasterizes a font.Face into a one page high
// page1bit.Font.
//
// Glyphs are rendered with gg into a Width×8 cell, thresholded to one bit and
// packed column by column, LSB at the top.
package pagefont

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/GermanBionicSystems/fmradio/sh1106/page1bit"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultOpts is the recommended default options: printable ASCII with one
// column of spacing.
var DefaultOpts = Opts{
	Spacing: 1,
	First:   ' ',
	Last:    '~',
}

// Opts defines the rasterization.
type Opts struct {
	// Width of a glyph cell in columns. 0 uses the advance of 'M'.
	Width int
	// Spacing is the number of blank columns between two glyphs.
	Spacing int
	// Baseline is the row of the baseline in the cell. 0 uses the ascent of
	// the face, limited to the last row.
	Baseline int
	// First and Last are the range of characters to rasterize.
	First, Last byte
}

// FromFace rasterizes characters First to Last of face.
func FromFace(face font.Face, opts *Opts) (*page1bit.Font, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Last < opts.First {
		return nil, fmt.Errorf("pagefont: invalid range %q-%q", opts.First, opts.Last)
	}
	w := opts.Width
	if w == 0 {
		adv, ok := face.GlyphAdvance('M')
		if !ok {
			return nil, errors.New("pagefont: face has no 'M', Width is required")
		}
		w = adv.Ceil()
	}
	if w <= 0 || w > 64 {
		return nil, fmt.Errorf("pagefont: invalid width %d", w)
	}
	if opts.Spacing < 0 {
		return nil, fmt.Errorf("pagefont: invalid spacing %d", opts.Spacing)
	}
	base := opts.Baseline
	if base == 0 {
		base = face.Metrics().Ascent.Round()
	}
	if base > 7 {
		base = 7
	}
	if base < 0 {
		return nil, fmt.Errorf("pagefont: invalid baseline %d", base)
	}

	n := int(opts.Last) - int(opts.First) + 1
	f := &page1bit.Font{
		Width:   w,
		Spacing: opts.Spacing,
		First:   opts.First,
		Data:    make([]byte, n*w),
	}
	dc := gg.NewContext(w, 8)
	dc.SetFontFace(face)
	for i := 0; i < n; i++ {
		dc.SetRGB(0, 0, 0)
		dc.Clear()
		dc.SetRGB(1, 1, 1)
		dc.DrawString(string(rune(int(opts.First)+i)), 0, float64(base))
		pack(f.Data[i*w:(i+1)*w], dc.Image())
	}
	return f, nil
}

// Default returns Go Mono rasterized at 8 pixels.
func Default() (*page1bit.Font, error) {
	defaultOnce.Do(func() {
		var tt *truetype.Font
		if tt, defaultErr = truetype.Parse(gomono.TTF); defaultErr != nil {
			return
		}
		face := truetype.NewFace(tt, &truetype.Options{Size: 8, DPI: 72, Hinting: font.HintingFull})
		defer face.Close()
		defaultFont, defaultErr = FromFace(face, &Opts{Spacing: 1, Baseline: 6, First: ' ', Last: '~'})
	})
	return defaultFont, defaultErr
}

//

var (
	defaultOnce sync.Once
	defaultFont *page1bit.Font
	defaultErr  error
)

// pack converts the columns of img into page packed bytes.
func pack(dst []byte, img image.Image) {
	for x := range dst {
		var v byte
		for y := 0; y < 8; y++ {
			if page1bit.BitModel.Convert(img.At(x, y)).(page1bit.Bit) {
				v |= 1 << uint(y)
			}
		}
		dst[x] = v
	}
}
