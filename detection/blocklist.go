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

package detection

import (
	"fmt"
	"strings"
)

// KnownAdapterVIDPIDs lists the USB serial bridges that reader units and
// their carrier boards commonly ship with. Detection prefers these ports.
var KnownAdapterVIDPIDs = []string{
	"1A86:7523", // WCH CH340
	"1A86:55D4", // WCH CH9102 (M5Stack units)
	"10C4:EA60", // Silicon Labs CP210x
	"0403:6001", // FTDI FT232R
}

// DefaultBlocklist returns a list of known problematic USB devices that
// should not be reported during detection.
// Format: VID:PID in hexadecimal (case-insensitive).
func DefaultBlocklist() []string {
	return []string{
		// Add known problematic devices here as discovered
	}
}

// IsBlocked checks if a USB device is in the blocklist
func IsBlocked(vidpid string, blocklist []string) bool {
	vidpid = strings.ToUpper(strings.TrimSpace(vidpid))

	for _, blocked := range blocklist {
		if vidpid == strings.ToUpper(strings.TrimSpace(blocked)) {
			return true
		}
	}
	return false
}

// IsKnownAdapter checks if a USB device is a serial bridge the reader
// units are known to ship with
func IsKnownAdapter(vidpid string) bool {
	vidpid = strings.ToUpper(strings.TrimSpace(vidpid))

	for _, known := range KnownAdapterVIDPIDs {
		if vidpid == known {
			return true
		}
	}
	return false
}

// FormatVIDPID normalizes separate vendor and product strings into the
// canonical "VVVV:PPPP" upper-case hex form, or "" if either is empty.
func FormatVIDPID(vid, pid string) string {
	vid = strings.ToUpper(strings.TrimSpace(vid))
	pid = strings.ToUpper(strings.TrimSpace(pid))
	if vid == "" || pid == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", vid, pid)
}
