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

/*
Package uhf provides a pure Go driver for JRD-4035/M100 family UHF RFID
reader modules (EPC Gen2 / ISO 18000-6C), such as the M5Stack UNIT UHF RFID.

The module speaks a fixed binary framing protocol over a UART serial link:
every command and response is a length-prefixed, checksummed frame starting
with 0xBB and ending with 0x7E. This library builds command frames, waits
for and validates response frames, and keeps a table of tags discovered
during inventory scans.

Basic Usage:

	import (
	    uhf "github.com/ZaparooProject/go-uhf"
	    "github.com/ZaparooProject/go-uhf/transport/uart"
	)

	// Create a UART transport (115200 8N1 by default)
	transport, err := uart.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}
	defer transport.Close()

	// Create and initialize the reader
	device, err := uhf.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	if err := device.Init(); err != nil {
	    log.Fatal(err)
	}

	// Configure the radio
	if err := device.SetRegion(uhf.RegionUSA); err != nil {
	    log.Fatal(err)
	}
	if err := device.SetTxPower(2600); err != nil { // 26.00 dBm
	    log.Fatal(err)
	}

	// Run one inventory round
	count, err := device.PollOnce()
	if err != nil {
	    log.Fatal(err)
	}
	for _, tag := range device.Tags()[:count] {
	    fmt.Printf("EPC %s RSSI %d dBm\n", tag.EPCHex(), tag.RSSIdBm())
	}

Wire Protocol:

Frames have the layout

	[0xBB][Type][Command][LenMSB][LenLSB][Parameters...][Checksum][0x7E]

where the checksum is the 8-bit sum of all bytes from Type through the last
parameter byte. The receive path validates the start and end markers only;
the module's checksum is not re-verified on receipt (the framing is trusted,
matching the reference firmware).

Error Handling:

All operations return meaningful errors that can be inspected:

	if errors.Is(err, uhf.ErrTransportTimeout) {
	    // No frame terminator arrived within the window
	}
	if errors.Is(err, uhf.ErrDeviceError) {
	    // The module echoed a failure signature
	}

No retries happen inside the driver; a failed operation is reported to the
caller, which is expected to poll again on the next cycle. The polling
subpackage provides a continuous-inventory monitor with its own retry
policy for applications that want one.

Thread Safety:

A Device serializes its operations with an internal mutex, because the
protocol carries no request identifiers and the transport cannot multiplex
overlapping exchanges. Operations from multiple goroutines therefore block
each other rather than corrupt the stream.
*/
package uhf
