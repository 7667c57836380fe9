// go-uhf
// Copyright (c) 2025 The Zaparoo Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-uhf.
//
// go-uhf is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-uhf is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-uhf; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

// Command uhftool runs one-shot reader operations: version query, region
// get/set, single inventory and tag memory access.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	uhf "github.com/ZaparooProject/go-uhf"
	"github.com/ZaparooProject/go-uhf/transport/uart"
)

type config struct {
	devicePath *string
	op         *string
	bank       *string
	epc        *string
	data       *string
	addr       *uint
	count      *uint
	timeout    *time.Duration
	debug      *bool
}

func parseFlags() *config {
	cfg := &config{
		devicePath: flag.String("device", "/dev/ttyUSB0", "Serial device path"),
		op: flag.String("op", "version",
			"Operation: version, region, inventory, read, write, tid"),
		bank:    flag.String("bank", "user", "Memory bank for read/write: reserved, epc, tid, user"),
		epc:     flag.String("epc", "", "Target tag EPC as 24 hex digits (read/write/tid)"),
		data:    flag.String("data", "", "Hex data to write"),
		addr:    flag.Uint("addr", 0, "Word address within the bank"),
		count:   flag.Uint("count", 8, "Number of bytes to read (must be even)"),
		timeout: flag.Duration("timeout", 500*time.Millisecond, "Per-frame response timeout"),
		debug:   flag.Bool("debug", false, "Enable debug output"),
	}
	flag.Parse()

	if *cfg.debug {
		uhf.SetDebugEnabled(true)
	}

	return cfg
}

func parseBank(name string) (uhf.Membank, error) {
	switch strings.ToLower(name) {
	case "reserved":
		return uhf.MembankReserved, nil
	case "epc":
		return uhf.MembankEPC, nil
	case "tid":
		return uhf.MembankTID, nil
	case "user":
		return uhf.MembankUser, nil
	default:
		return 0, fmt.Errorf("unknown memory bank: %s", name)
	}
}

func parseEPC(s string) ([12]byte, error) {
	var epc [12]byte
	raw, err := hex.DecodeString(s)
	if err != nil {
		return epc, fmt.Errorf("invalid EPC hex: %w", err)
	}
	if len(raw) != len(epc) {
		return epc, fmt.Errorf("EPC must be %d bytes, got %d", len(epc), len(raw))
	}
	copy(epc[:], raw)
	return epc, nil
}

func runVersion(device *uhf.Device) error {
	version, err := device.Version()
	if err != nil {
		return fmt.Errorf("version query failed: %w", err)
	}
	_, _ = fmt.Println(version)
	return nil
}

func runRegion(device *uhf.Device) error {
	region, err := device.GetRegion()
	if err != nil {
		return fmt.Errorf("region query failed: %w", err)
	}
	_, _ = fmt.Println(region)
	return nil
}

func runInventory(device *uhf.Device) error {
	count, err := device.PollOnce()
	if err != nil && !errors.Is(err, uhf.ErrNoTag) {
		return fmt.Errorf("inventory failed: %w", err)
	}

	_, _ = fmt.Printf("%d tag(s)\n", count)
	for _, tag := range device.Tags() {
		_, _ = fmt.Printf("%s  PC %s  %d dBm (%s)\n",
			tag.EPCHex(), tag.PCHex(), tag.RSSIdBm(), tag.SignalQuality())
	}
	return nil
}

func runRead(device *uhf.Device, cfg *config) error {
	bank, err := parseBank(*cfg.bank)
	if err != nil {
		return err
	}
	epc, err := parseEPC(*cfg.epc)
	if err != nil {
		return err
	}

	if err := device.Select(epc); err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	data, err := device.ReadMemory(bank, uint16(*cfg.addr), int(*cfg.count), 0)
	if err != nil {
		return fmt.Errorf("read failed: %w", err)
	}
	_, _ = fmt.Println(hex.EncodeToString(data))
	return nil
}

func runWrite(device *uhf.Device, cfg *config) error {
	bank, err := parseBank(*cfg.bank)
	if err != nil {
		return err
	}
	epc, err := parseEPC(*cfg.epc)
	if err != nil {
		return err
	}
	data, err := hex.DecodeString(*cfg.data)
	if err != nil {
		return fmt.Errorf("invalid data hex: %w", err)
	}

	if err := device.Select(epc); err != nil {
		return fmt.Errorf("select failed: %w", err)
	}
	if err := device.WriteMemory(bank, uint16(*cfg.addr), data, 0); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	_, _ = fmt.Printf("Wrote %d byte(s)\n", len(data))
	return nil
}

func runTID(device *uhf.Device, cfg *config) error {
	epc, err := parseEPC(*cfg.epc)
	if err != nil {
		return err
	}

	tid, err := device.ReadTID(epc)
	if err != nil {
		return fmt.Errorf("TID read failed: %w", err)
	}
	_, _ = fmt.Println(hex.EncodeToString(tid))
	return nil
}

func run(cfg *config) error {
	transport, err := uart.New(*cfg.devicePath)
	if err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}

	device, err := uhf.New(transport, uhf.WithTimeout(*cfg.timeout))
	if err != nil {
		_ = transport.Close()
		return fmt.Errorf("failed to create device: %w", err)
	}
	defer func() { _ = device.Close() }()

	if err := device.Init(); err != nil {
		return fmt.Errorf("reader did not respond: %w", err)
	}

	switch *cfg.op {
	case "version":
		return runVersion(device)
	case "region":
		return runRegion(device)
	case "inventory":
		return runInventory(device)
	case "read":
		return runRead(device, cfg)
	case "write":
		return runWrite(device, cfg)
	case "tid":
		return runTID(device, cfg)
	default:
		return fmt.Errorf("unknown operation: %s", *cfg.op)
	}
}

func main() {
	cfg := parseFlags()
	if err := run(cfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
