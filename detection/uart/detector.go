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

// Package uart provides serial port detection for reader modules
package uart

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/go-uhf/detection"
	"go.bug.st/serial/enumerator"
)

// detector implements the detection.Detector interface for serial ports
type detector struct{}

// New creates a new UART detector
func New() detection.Detector {
	return &detector{}
}

// init registers the detector on package import
func init() {
	detection.RegisterDetector(New())
}

// Transport returns the transport type
func (*detector) Transport() string {
	return "uart"
}

// Detect lists serial ports and keeps the USB ones that look like reader
// adapters. The enumerator covers Linux, macOS and Windows; on Windows a
// registry scan backfills ports the enumerator misses.
func (*detector) Detect(ctx context.Context, opts *detection.Options) ([]detection.DeviceInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("uart detection: %w", err)
	}

	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}

	var devices []detection.DeviceInfo
	for _, port := range ports {
		if !port.IsUSB {
			continue
		}

		vidpid := detection.FormatVIDPID(port.VID, port.PID)
		if detection.IsBlocked(vidpid, opts.Blocklist) {
			continue
		}
		if !detection.IsKnownAdapter(vidpid) {
			continue
		}

		devices = append(devices, detection.DeviceInfo{
			Path:      port.Name,
			Name:      filepath.Base(port.Name),
			Transport: "uart",
			VIDPID:    vidpid,
		})
	}

	fallback, err := platformSerialPorts()
	if err == nil {
		devices = mergePorts(devices, fallback)
	}

	return devices, nil
}

// mergePorts adds fallback entries whose path is not already present
func mergePorts(devices, fallback []detection.DeviceInfo) []detection.DeviceInfo {
	seen := make(map[string]bool, len(devices))
	for _, d := range devices {
		seen[d.Path] = true
	}
	for _, d := range fallback {
		if !seen[d.Path] {
			devices = append(devices, d)
		}
	}
	return devices
}
