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

// Command uhfscan runs continuous UHF tag inventory, printing arrivals and
// departures until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	uhf "github.com/ZaparooProject/go-uhf"
	"github.com/ZaparooProject/go-uhf/detection"
	// Import the detector to register it
	_ "github.com/ZaparooProject/go-uhf/detection/uart"
	"github.com/ZaparooProject/go-uhf/polling"
	"github.com/ZaparooProject/go-uhf/transport/uart"
)

type config struct {
	devicePath   *string
	region       *string
	power        *uint
	timeout      *time.Duration
	pollInterval *time.Duration
	debug        *bool
}

func parseFlags() *config {
	cfg := &config{
		devicePath: flag.String("device", "",
			"Serial device path (e.g., /dev/ttyUSB0 or COM3). Leave empty for auto-detection."),
		region: flag.String("region", "",
			"Working region to set before scanning: china, usa, europe or korea"),
		power:   flag.Uint("power", 0, "Transmit power in 0.01 dBm units (e.g., 2600 = 26 dBm)"),
		timeout: flag.Duration("timeout", 30*time.Second, "Timeout for device connection (default: 30s)"),
		pollInterval: flag.Duration("poll-interval", 200*time.Millisecond,
			"Pause between inventory cycles (default: 200ms)"),
		debug: flag.Bool("debug", false, "Enable debug output"),
	}
	flag.Parse()

	if *cfg.debug {
		uhf.SetDebugEnabled(true)
	}

	return cfg
}

// newTransport creates a new transport from a device path.
func newTransport(path string) (uhf.Transport, error) {
	if path == "" {
		return nil, errors.New("empty device path")
	}

	transport, err := uart.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create UART transport: %w", err)
	}
	return transport, nil
}

// newTransportFromDevice creates a new transport from a detected device.
func newTransportFromDevice(device detection.DeviceInfo) (uhf.Transport, error) {
	if !strings.EqualFold(device.Transport, "uart") {
		return nil, fmt.Errorf("unsupported transport type: %s", device.Transport)
	}
	transport, err := uart.New(device.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create UART transport: %w", err)
	}
	return transport, nil
}

func parseRegion(name string) (uhf.Region, error) {
	switch strings.ToLower(name) {
	case "china":
		return uhf.RegionChina, nil
	case "usa", "us":
		return uhf.RegionUSA, nil
	case "europe", "eu":
		return uhf.RegionEurope, nil
	case "korea":
		return uhf.RegionKorea, nil
	default:
		return 0, fmt.Errorf("unknown region: %s", name)
	}
}

func buildConnectOptions(cfg *config) []uhf.ConnectOption {
	var connectOpts []uhf.ConnectOption

	if *cfg.devicePath == "" {
		connectOpts = append(connectOpts,
			uhf.WithAutoDetection(),
			uhf.WithTransportFromDeviceFactory(newTransportFromDevice))
		_, _ = fmt.Println("Auto-detecting UHF reader devices...")
	} else {
		connectOpts = append(connectOpts, uhf.WithTransportFactory(newTransport))
		_, _ = fmt.Printf("Opening device: %s\n", *cfg.devicePath)
	}

	connectOpts = append(connectOpts, uhf.WithConnectTimeout(*cfg.timeout))
	return connectOpts
}

func connectToDevice(cfg *config) (*uhf.Device, error) {
	device, err := uhf.ConnectDevice(*cfg.devicePath, buildConnectOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to UHF reader: %w", err)
	}

	if version, versionErr := device.Version(); versionErr == nil {
		_, _ = fmt.Printf("Reader firmware: %s\n", version)
	}

	return device, nil
}

// configureReader applies the optional region and power flags.
func configureReader(device *uhf.Device, cfg *config) error {
	if *cfg.region != "" {
		region, err := parseRegion(*cfg.region)
		if err != nil {
			return err
		}
		if err := device.SetRegion(region); err != nil {
			return fmt.Errorf("failed to set region: %w", err)
		}
		_, _ = fmt.Printf("Region set to %s\n", region)
	}

	if *cfg.power > 0 {
		if *cfg.power > 0xFFFF {
			return fmt.Errorf("power out of range: %d", *cfg.power)
		}
		if err := device.SetTxPower(uint16(*cfg.power)); err != nil {
			return fmt.Errorf("failed to set transmit power: %w", err)
		}
		_, _ = fmt.Printf("Transmit power set to %.2f dBm\n", float64(*cfg.power)/100)
	}

	return nil
}

func setupMonitor(device *uhf.Device, cfg *config) *polling.Monitor {
	monitorConfig := polling.DefaultConfig()
	monitorConfig.PollInterval = *cfg.pollInterval

	monitor := polling.NewMonitor(device, monitorConfig)
	monitor.OnTagArrived = func(tag uhf.Tag) {
		_, _ = fmt.Printf("+ %s  PC %s  %d dBm (%s)\n",
			tag.EPCHex(), tag.PCHex(), tag.RSSIdBm(), tag.SignalQuality())
	}
	monitor.OnTagDeparted = func(tag uhf.Tag) {
		_, _ = fmt.Printf("- %s\n", tag.EPCHex())
	}
	return monitor
}

func main() {
	cfg := parseFlags()

	device, err := connectToDevice(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to connect to device: %v\n", err)
		return
	}
	defer func() { _ = device.Close() }()

	if err := configureReader(device, cfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to configure reader: %v\n", err)
		return
	}

	_, _ = fmt.Printf("Scanning for tags (poll interval: %s), Ctrl-C to stop...\n", *cfg.pollInterval)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	monitor := setupMonitor(device, cfg)
	if err := monitor.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		_, _ = fmt.Fprintf(os.Stderr, "Scan failed: %v\n", err)
	}
}
