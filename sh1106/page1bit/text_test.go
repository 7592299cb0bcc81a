// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package page1bit

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testFont has 3 column glyphs for 'A' and 'B'.
var testFont = &Font{
	Width:   3,
	Spacing: 1,
	First:   'A',
	Data: []byte{
		0x7E, 0x09, 0x7E, // A
		0x7F, 0x49, 0x36, // B
	},
}

func TestFontGlyph(t *testing.T) {
	if g := testFont.Glyph('B'); !cmp.Equal(g, []byte{0x7F, 0x49, 0x36}) {
		t.Fatalf("Glyph('B') = % x", g)
	}
	for _, ch := range []byte{' ', 'C', 0xFF} {
		if g := testFont.Glyph(ch); g != nil {
			t.Fatalf("Glyph(%q) = % x", ch, g)
		}
	}
}

func TestGlyphRules(t *testing.T) {
	const dst, col = 0xF0, 0x3C
	for _, tc := range []struct {
		c    Color
		bg   Background
		want byte
	}{
		{White, BgNone, dst | col},
		{Black, BgNone, dst &^ col},
		{Inverse, BgNone, dst ^ col},
		{White, BgBlack, col},
		{Black, BgWhite, 0xFF &^ col},
		{Inverse, BgWhite, 0xFF ^ col},
		{White, BgInverse, ^byte(dst) | col},
		{Inverse, BgInverse, ^byte(dst) ^ col},
	} {
		p, mem := newPlane(t, 4, 16, 0)
		mem.Fill(dst, 8, 0)
		p.Glyph(1, 1, []byte{col}, tc.c, tc.bg)
		if got := mem.At(4 + 1); got != tc.want {
			t.Errorf("%s/%d: %#x, want %#x", tc.c, tc.bg, got, tc.want)
		}
		for _, i := range []int{0, 1, 2, 3, 4, 6, 7} {
			if mem.At(i) != dst {
				t.Errorf("%s/%d: byte %d modified", tc.c, tc.bg, i)
			}
		}
	}
}

func TestGlyphClipped(t *testing.T) {
	p, mem := newPlane(t, 4, 8, 0)
	p.Glyph(-1, 0, []byte{1, 2, 3}, White, BgNone)
	p.Glyph(3, 0, []byte{4, 8}, White, BgNone)
	p.Glyph(0, 1, []byte{0xFF}, White, BgNone)
	p.Glyph(0, -1, []byte{0xFF}, White, BgNone)
	if diff := cmp.Diff([]byte{2, 3, 0, 4}, mem.Bytes()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestTextWrap(t *testing.T) {
	// 10 columns: two glyphs with their spacing fit on a line.
	p, mem := newPlane(t, 10, 24, 0)
	mem.Fill(0xAA, 30, 0)
	txt := p.NewText(testFont)
	if n, err := txt.WriteString("ABA"); n != 3 || err != nil {
		t.Fatal(n, err)
	}
	want := []byte{
		0x7E, 0x09, 0x7E, 0x00, 0x7F, 0x49, 0x36, 0x00, 0xAA, 0xAA,
		0x7E, 0x09, 0x7E, 0x00, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
		0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA, 0xAA,
	}
	if diff := cmp.Diff(want, mem.Bytes()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if x, page := txt.Cursor(); x != 4 || page != 1 {
		t.Fatalf("Cursor() = %d, %d", x, page)
	}
}

func TestTextControl(t *testing.T) {
	p, mem := newPlane(t, 16, 16, 0)
	txt := p.NewText(testFont)
	txt.Background = BgNone
	txt.SetCursor(5, 0)
	if _, err := txt.Write([]byte("A\rB\nA")); err != nil {
		t.Fatal(err)
	}
	// 'B' at column 0 of page 0, 'A' at column 5 of page 0, then '\n' keeps
	// the column.
	if g := mem.Bytes()[0:3]; !cmp.Equal(g, []byte{0x7F, 0x49, 0x36}) {
		t.Fatalf("B = % x", g)
	}
	if g := mem.Bytes()[5:8]; !cmp.Equal(g, []byte{0x7E, 0x09, 0x7E}) {
		t.Fatalf("A = % x", g)
	}
	if g := mem.Bytes()[16+4 : 16+7]; !cmp.Equal(g, []byte{0x7E, 0x09, 0x7E}) {
		t.Fatalf("second A = % x", g)
	}
	// The page is clamped to the last one.
	for i := 0; i < 5; i++ {
		_ = txt.WriteByte('\n')
	}
	if _, page := txt.Cursor(); page != 1 {
		t.Fatalf("page = %d", page)
	}
	txt.SetCursor(0, 9)
	if _, page := txt.Cursor(); page != 1 {
		t.Fatalf("page = %d", page)
	}
}

func TestTextUnknownAndColors(t *testing.T) {
	p, mem := newPlane(t, 8, 8, 0)
	mem.Fill(0x0F, 8, 0)
	txt := p.NewText(testFont)
	txt.Color = Black
	txt.Background = BgWhite
	_, _ = txt.WriteString("?A")
	want := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x81, 0xF6, 0x81, 0xFF}
	if diff := cmp.Diff(want, mem.Bytes()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}
