// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command halmock-demo runs a minimal LM75 temperature-sensor driver
// against an expectation script, demonstrating how a driver written
// once against the halmock.I2C contract can be exercised without
// hardware. With -real it talks to an actual bus through periph.io
// instead, using the exact same driver code.
package main

import (
	"flag"
	"fmt"
	"os"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	halmock "github.com/ZaparooProject/go-halmock"
	i2cmock "github.com/ZaparooProject/go-halmock/i2c"
)

const regTemp = 0x00

// Package-level flag variables
var (
	flagReal  bool
	flagBus   string
	flagAddr  uint
	flagDebug bool
)

func init() {
	flag.BoolVar(&flagReal, "real", false, "Use a real I2C bus via periph.io instead of the mock")
	flag.StringVar(&flagBus, "bus", "", "I2C bus name or number (real mode; empty selects the first bus)")
	flag.UintVar(&flagAddr, "addr", 0x48, "7-bit sensor address")
	flag.BoolVar(&flagDebug, "debug", false, "Enable debug output")
}

// lm75 is a minimal driver for the LM75 temperature sensor. It is
// written against the halmock.I2C contract only, so the mock and the
// real bus are interchangeable underneath it.
type lm75 struct {
	bus  halmock.I2C
	addr uint16
}

// Temperature reads the 11-bit temperature register and converts it to
// degrees Celsius.
func (d *lm75) Temperature() (float64, error) {
	buf := make([]byte, 2)
	if err := d.bus.WriteRead(d.addr, []byte{regTemp}, buf); err != nil {
		return 0, fmt.Errorf("read temperature register: %w", err)
	}
	raw := int16(uint16(buf[0])<<8|uint16(buf[1])) >> 5
	return float64(raw) * 0.125, nil
}

// periphBus adapts a periph.io bus to the halmock.I2C contract for the
// -real path.
type periphBus struct {
	bus i2c.Bus
}

func (b *periphBus) Write(addr uint16, p []byte) error {
	return b.bus.Tx(addr, p, nil)
}

func (b *periphBus) Read(addr uint16, p []byte) error {
	return b.bus.Tx(addr, nil, p)
}

func (b *periphBus) WriteRead(addr uint16, w, r []byte) error {
	return b.bus.Tx(addr, w, r)
}

func runMock(addr uint16) error {
	// The script mirrors one temperature read: a register-pointer write
	// followed by a two byte read, answered with 26.125°C.
	bus := i2cmock.NewMock(nil,
		i2cmock.WriteRead(addr, []byte{regTemp}, []byte{0x1A, 0x20}),
	)

	sensor := &lm75{bus: bus, addr: addr}
	temp, err := sensor.Temperature()
	if err != nil {
		return fmt.Errorf("mock sensor read: %w", err)
	}
	fmt.Printf("mock sensor: %.3f °C\n", temp)

	bus.Done()
	return nil
}

func runReal(busName string, addr uint16) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return fmt.Errorf("failed to open I2C bus %q: %w", busName, err)
	}
	defer func() { _ = bus.Close() }()

	sensor := &lm75{bus: &periphBus{bus: bus}, addr: addr}
	temp, err := sensor.Temperature()
	if err != nil {
		return fmt.Errorf("sensor read on %s: %w", bus, err)
	}
	fmt.Printf("%s @ %#02x: %.3f °C\n", bus, addr, temp)
	return nil
}

func main() {
	flag.Parse()

	if flagDebug {
		halmock.SetDebugEnabled(true)
	}

	addr := uint16(flagAddr)
	var err error
	if flagReal {
		err = runReal(flagBus, addr)
	} else {
		err = runMock(addr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
