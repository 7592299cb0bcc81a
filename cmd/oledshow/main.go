// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// oledshow draws demo screens on a SH1106 OLED panel.
//
// The panel is driven either directly through the host I²C bus or through the
// polling TWI master emulated on top of it (-twi). The frame buffer can be
// kept in an external I²C SRAM (-sram). Use -term to preview the screens in
// the terminal without any hardware.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/GermanBionicSystems/fmradio/memory"
	"github.com/GermanBionicSystems/fmradio/sh1106"
	"github.com/GermanBionicSystems/fmradio/sh1106/page1bit"
	"github.com/GermanBionicSystems/fmradio/sh1106/pagefont"
	"github.com/GermanBionicSystems/fmradio/termview"
	"github.com/GermanBionicSystems/fmradio/twi"
	"github.com/GermanBionicSystems/fmradio/twi/i2cbridge"
	"github.com/golang/freetype/truetype"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// screen is implemented by sh1106.Dev and termview.Dev.
type screen interface {
	fmt.Stringer
	Plane() *page1bit.Plane
	Flush() error
	Halt() error
}

func mainImpl() error {
	busName := flag.String("bus", "", "I²C bus to use")
	addr := flag.Int("addr", 0x3C, "I²C address of the panel")
	external := flag.Bool("external", false, "panel powered by an external VCC")
	cluster := flag.Int("cluster", page1bit.DefaultCluster, "bytes per data transaction")
	resetPin := flag.String("reset", "", "GPIO connected to the RES pin of the panel")
	viaTWI := flag.Bool("twi", false, "drive the bus through the polling TWI master")
	speed := flag.Int("speed", 100, "bus speed in kHz, with -twi")
	timeout := flag.Duration("timeout", 10*time.Millisecond, "maximum wait for the bus, with -twi")
	sram := flag.Int("sram", 0, "I²C address of an external SRAM holding the frame buffer; 0 to keep it in memory")
	sramBase := flag.Int("sram-base", memory.DefaultDeviceOpts.Base, "first byte of the frame buffer in the SRAM")
	term := flag.Bool("term", false, "preview in the terminal instead of a panel")
	fontPath := flag.String("font", "", "TrueType font file; defaults to Go Mono")
	fontSize := flag.Float64("size", 8, "font size in pixels, with -font")
	demo := flag.String("demo", "all", "demo to run: all, radio, shapes, bitmap")
	delay := flag.Duration("delay", 2*time.Second, "time each screen is shown")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}

	f, err := loadFont(*fontPath, *fontSize)
	if err != nil {
		return err
	}

	var s screen
	if *term {
		t, err := termview.New(&termview.Opts{W: 128, H: 64})
		if err != nil {
			return err
		}
		s = t
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		b, err := i2creg.Open(*busName)
		if err != nil {
			return err
		}
		defer b.Close()

		var bus i2c.Bus = b
		if *viaTWI {
			m, err := twi.New(i2cbridge.New(b), &twi.Opts{
				CPU:   twi.DefaultOpts.CPU,
				Speed: physic.Frequency(*speed) * physic.KiloHertz,
				Wait:  twi.Deadline(*timeout),
			})
			if err != nil {
				return err
			}
			bus = m
		}
		log.Printf("bus: %s", bus)

		opts := sh1106.DefaultOpts
		opts.Addr = uint16(*addr)
		opts.ExternalVCC = *external
		opts.ClusterSize = *cluster
		if *resetPin != "" {
			p := gpioreg.ByName(*resetPin)
			if p == nil {
				return fmt.Errorf("unknown pin %q", *resetPin)
			}
			opts.Reset = p
		}
		if *sram != 0 {
			mopts := memory.DefaultDeviceOpts
			mopts.Addr = uint16(*sram)
			mopts.Base = *sramBase
			mopts.Size = opts.W * opts.H / 8
			mem, err := memory.NewI2C(bus, &mopts)
			if err != nil {
				return err
			}
			log.Printf("frame buffer: %s", mem)
			opts.Storage = mem
		}
		d, err := sh1106.NewI2C(bus, &opts)
		if err != nil {
			return err
		}
		s = d
	}
	defer s.Halt()
	log.Printf("display: %s", s)

	var screens []func(*page1bit.Plane, *page1bit.Font)
	if *demo == "all" {
		for _, name := range []string{"radio", "shapes", "bitmap"} {
			screens = append(screens, demos[name]...)
		}
	} else {
		screens = demos[*demo]
	}
	if len(screens) == 0 {
		return fmt.Errorf("unknown demo %q", *demo)
	}
	for i, draw := range screens {
		if i != 0 {
			time.Sleep(*delay)
		}
		p := s.Plane()
		p.Clear(0)
		draw(p, f)
		if err := s.Flush(); err != nil {
			return err
		}
		if m, ok := p.Memory().(*memory.Device); ok && m.Err() != nil {
			return m.Err()
		}
	}
	time.Sleep(*delay)
	return nil
}

// loadFont rasterizes the TrueType font at path, or returns the default font.
func loadFont(path string, size float64) (*page1bit.Font, error) {
	if path == "" {
		return pagefont.Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tt, err := truetype.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	face := truetype.NewFace(tt, &truetype.Options{Size: size})
	defer face.Close()
	return pagefont.FromFace(face, nil)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "oledshow: %s.\n", err)
		os.Exit(1)
	}
}
