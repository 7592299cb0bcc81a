// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package page1bit

import "io"

// Background is the rule used for the glyph pixels that are not set.
type Background uint8

// Background rules.
const (
	BgNone    Background = iota // keep the existing pixels
	BgWhite                     // set every pixel
	BgBlack                     // clear every pixel
	BgInverse                   // toggle the existing pixels
)

// Font is a fixed width font, one page high. Each glyph is Width page packed
// columns.
type Font struct {
	// Width is the number of columns of a glyph.
	Width int
	// Spacing is the number of columns between two glyphs.
	Spacing int
	// First is the character of the first glyph in Data.
	First byte
	// Data holds the glyphs one after the other.
	Data []byte
}

// Glyph returns the columns of character ch, or nil if the font does not
// have it.
func (f *Font) Glyph(ch byte) []byte {
	if ch < f.First {
		return nil
	}
	i := int(ch-f.First) * f.Width
	if i+f.Width > len(f.Data) {
		return nil
	}
	return f.Data[i : i+f.Width]
}

// Glyph draws the page packed columns cols at column x of page.
//
// Each destination byte is first replaced by the background rule, then the
// glyph bits are combined with c: White ORs them, Black clears them and
// Inverse toggles them. Columns outside the plane are skipped.
func (p *Plane) Glyph(x, page int, cols []byte, c Color, bg Background) {
	if page < 0 || page >= p.pages {
		return
	}
	pos := page*p.w + x
	for i, col := range cols {
		if x+i < 0 || x+i >= p.w {
			continue
		}
		t := background(p.mem.At(pos+i), bg)
		p.mem.Set(pos+i, apply(t, col, c))
	}
}

// Char draws character ch of font f at column x of page.
func (p *Plane) Char(x, page int, ch byte, f *Font, c Color, bg Background) {
	if g := f.Glyph(ch); g != nil {
		p.Glyph(x, page, g, c, bg)
	}
}

// spacing applies the background rule to n columns.
func (p *Plane) spacing(x, page, n int, bg Background) {
	if bg == BgNone || page < 0 || page >= p.pages {
		return
	}
	pos := page*p.w + x
	for i := 0; i < n; i++ {
		if x+i < 0 || x+i >= p.w {
			continue
		}
		p.mem.Set(pos+i, background(p.mem.At(pos+i), bg))
	}
}

func background(v byte, bg Background) byte {
	switch bg {
	case BgWhite:
		return 0xFF
	case BgBlack:
		return 0
	case BgInverse:
		return ^v
	}
	return v
}

// Text writes characters sequentially on a Plane, one page per line.
//
// '\n' moves to the next page and '\r' back to the first column. When a
// glyph does not fit on the current line, the cursor wraps first. The page
// never goes past the last one; text keeps overwriting it instead of
// scrolling.
type Text struct {
	// Color is the rule for the glyph pixels. It defaults to White.
	Color Color
	// Background is the rule for the other pixels. It defaults to BgBlack.
	Background Background

	p    *Plane
	font *Font
	x    int
	page int
}

// NewText returns a Text drawing on p with font f, starting at the top left
// corner.
func (p *Plane) NewText(f *Font) *Text {
	return &Text{Color: White, Background: BgBlack, p: p, font: f}
}

// SetFont changes the font used by the following characters.
func (t *Text) SetFont(f *Font) {
	t.font = f
}

// SetCursor moves the cursor to column x of page.
func (t *Text) SetCursor(x, page int) {
	t.x = x
	t.page = t.clamp(page)
}

// Cursor returns the column and the page of the cursor.
func (t *Text) Cursor() (x, page int) {
	return t.x, t.page
}

// WriteByte implements io.ByteWriter.
func (t *Text) WriteByte(ch byte) error {
	switch ch {
	case '\n':
		t.page = t.clamp(t.page + 1)
		return nil
	case '\r':
		t.x = 0
		return nil
	}
	f := t.font
	if t.x+f.Width > t.p.w {
		t.x = 0
		t.page = t.clamp(t.page + 1)
	}
	if g := f.Glyph(ch); g != nil {
		t.p.Glyph(t.x, t.page, g, t.Color, t.Background)
	} else {
		// Unknown characters show as blanks.
		t.p.spacing(t.x, t.page, f.Width, t.Background)
	}
	t.p.spacing(t.x+f.Width, t.page, f.Spacing, t.Background)
	t.x += f.Width + f.Spacing
	return nil
}

// Write implements io.Writer.
func (t *Text) Write(b []byte) (int, error) {
	for _, ch := range b {
		_ = t.WriteByte(ch)
	}
	return len(b), nil
}

// WriteString implements io.StringWriter.
func (t *Text) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		_ = t.WriteByte(s[i])
	}
	return len(s), nil
}

func (t *Text) clamp(page int) int {
	if page >= t.p.pages {
		return t.p.pages - 1
	}
	if page < 0 {
		return 0
	}
	return page
}

var _ io.Writer = &Text{}
var _ io.ByteWriter = &Text{}
var _ io.StringWriter = &Text{}
