// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pagefont

import (
	"bytes"
	"image"
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestFromFace(t *testing.T) {
	f, err := FromFace(basicfont.Face7x13, nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.Width != 7 || f.Spacing != 1 || f.First != ' ' {
		t.Fatalf("%+v", f)
	}
	if len(f.Data) != 95*7 {
		t.Fatalf("%d bytes", len(f.Data))
	}
	if !bytes.Equal(f.Glyph(' '), make([]byte, 7)) {
		t.Fatalf("space = % x", f.Glyph(' '))
	}
	for _, ch := range []byte("IM#A") {
		if bytes.Equal(f.Glyph(ch), make([]byte, 7)) {
			t.Fatalf("%q is blank", ch)
		}
	}
	if f.Glyph('~'+1) != nil {
		t.Fatal("glyph past the range")
	}
}

func TestFromFaceOpts(t *testing.T) {
	f, err := FromFace(basicfont.Face7x13, &Opts{Width: 5, Baseline: 7, First: '0', Last: '9'})
	if err != nil {
		t.Fatal(err)
	}
	if f.Width != 5 || f.Spacing != 0 || len(f.Data) != 50 {
		t.Fatalf("%+v", f)
	}
	for _, opts := range []*Opts{
		{First: 'z', Last: 'a'},
		{Width: -1, First: 'a', Last: 'z'},
		{Width: 100, First: 'a', Last: 'z'},
		{Spacing: -1, First: 'a', Last: 'z'},
		{Baseline: -3, First: 'a', Last: 'z'},
	} {
		if _, err := FromFace(basicfont.Face7x13, opts); err == nil {
			t.Errorf("%+v: expected error", opts)
		}
	}
}

func TestDefault(t *testing.T) {
	f, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if f.Width < 4 || f.Width > 6 {
		t.Fatalf("width %d", f.Width)
	}
	if !bytes.Equal(f.Glyph(' '), make([]byte, f.Width)) {
		t.Fatal("space must be blank")
	}
	if bytes.Equal(f.Glyph('A'), make([]byte, f.Width)) {
		t.Fatal("'A' is blank")
	}
	if g, _ := Default(); g != f {
		t.Fatal("Default() must be cached")
	}
}

func TestPack(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 8))
	img.Pix[0*2+0] = 0xFF
	img.Pix[3*2+0] = 0x90
	img.Pix[7*2+1] = 0x7F
	dst := make([]byte, 2)
	pack(dst, img)
	if dst[0] != 0x09 || dst[1] != 0 {
		t.Fatalf("% x", dst)
	}
}
