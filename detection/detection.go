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

// Package detection finds serial ports that plausibly carry a UHF reader
// module. Detection is passive: ports are located and filtered by USB
// metadata, never probed with commands, because poking random serial
// devices with frame traffic can wedge them.
package detection

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DeviceInfo describes one candidate reader device
type DeviceInfo struct {
	// Path is the OS device path (e.g. /dev/ttyUSB0 or COM3)
	Path string
	// Name is a short human-readable name
	Name string
	// Transport is the transport the detector works for
	Transport string
	// VIDPID is the USB vendor:product pair in "XXXX:YYYY" form, when known
	VIDPID string
}

// Options configures a detection pass
type Options struct {
	// Blocklist holds VID:PID pairs that must never be reported
	Blocklist []string
	// Timeout bounds the whole detection pass
	Timeout time.Duration
}

// DefaultOptions returns the default detection options
func DefaultOptions() Options {
	return Options{
		Blocklist: DefaultBlocklist(),
		Timeout:   2 * time.Second,
	}
}

// Detector locates candidate devices for one transport kind
type Detector interface {
	// Transport returns the transport type this detector covers
	Transport() string
	// Detect returns the candidate devices found
	Detect(ctx context.Context, opts *Options) ([]DeviceInfo, error)
}

var (
	detectorsMu sync.RWMutex
	detectors   []Detector
)

// RegisterDetector adds a detector; called from detector package init
func RegisterDetector(d Detector) {
	detectorsMu.Lock()
	defer detectorsMu.Unlock()
	detectors = append(detectors, d)
}

// DetectAll runs every registered detector and merges their results,
// sorted by path for stable ordering.
func DetectAll(opts *Options) ([]DeviceInfo, error) {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	detectorsMu.RLock()
	active := make([]Detector, len(detectors))
	copy(active, detectors)
	detectorsMu.RUnlock()

	var all []DeviceInfo
	var firstErr error
	for _, d := range active {
		devices, err := d.Detect(ctx, opts)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		all = append(all, devices...)
	}

	if len(all) == 0 && firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })
	return all, nil
}
