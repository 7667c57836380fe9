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

// Package testing builds canned module response frames for driver tests
package testing

import "github.com/ZaparooProject/go-uhf/internal/frame"

// build assembles a complete module-to-host frame with a valid checksum
func build(frameType, cmd byte, params []byte) []byte {
	n := len(params)
	f := make([]byte, 0, n+frame.Overhead)
	f = append(f, frame.Header, frameType, cmd, byte(n>>8), byte(n))
	f = append(f, params...)
	f = append(f, frame.Checksum(f[1:]), frame.End)
	return f
}

// BuildVersionResponse creates a hardware-version response carrying the
// given printable text
func BuildVersionResponse(version string) []byte {
	params := append([]byte{0x00}, []byte(version)...)
	return build(frame.TypeResponse, frame.CmdGetVersion, params)
}

// BuildInventoryNotice creates one inventory notice frame for a tag
func BuildInventoryNotice(rssi byte, pc [2]byte, epc [12]byte) []byte {
	params := make([]byte, 0, frame.InventoryParamLen)
	params = append(params, rssi)
	params = append(params, pc[:]...)
	params = append(params, epc[:]...)
	params = append(params, 0x00, 0x00) // EPC CRC, unchecked by the driver
	return build(frame.TypeNotice, frame.CmdPollSingle, params)
}

// BuildErrorResponse creates a module error frame with the given code
func BuildErrorResponse(code byte) []byte {
	return build(frame.TypeResponse, frame.CmdError, []byte{code})
}

// BuildNoTagResponse creates the error frame the module emits when an
// inventory round finds nothing
func BuildNoTagResponse() []byte {
	return BuildErrorResponse(frame.ErrCodeInventoryFail)
}

// BuildAck creates a success acknowledgment frame for cmd
func BuildAck(cmd byte) []byte {
	return build(frame.TypeResponse, cmd, []byte{0x00})
}

// BuildSelectOK returns the exact set-select success signature
func BuildSelectOK() []byte {
	return append([]byte(nil), frame.SetSelectOK...)
}

// BuildSelectInfoResponse creates a get-select response carrying mask
func BuildSelectInfoResponse(mask [12]byte) []byte {
	params := make([]byte, 0, len(frame.SelectParams)+len(mask))
	params = append(params, frame.SelectParams...)
	params = append(params, mask[:]...)
	return build(frame.TypeResponse, frame.CmdGetSelect, params)
}

// BuildReadResponse creates a read-memory response echoing the tag's PC
// and EPC followed by the requested data
func BuildReadResponse(pc [2]byte, epc [12]byte, data []byte) []byte {
	params := make([]byte, 0, 15+len(data))
	params = append(params, 0x01) // UL: one tag answered
	params = append(params, pc[:]...)
	params = append(params, epc[:]...)
	params = append(params, data...)
	return build(frame.TypeResponse, frame.CmdReadMemory, params)
}

// BuildRegionResponse creates a get-region response
func BuildRegionResponse(region byte) []byte {
	return build(frame.TypeResponse, frame.CmdGetRegion, []byte{region})
}

// Sample tag identities for tests
var (
	// TestEPC1 is a sample 96-bit EPC
	TestEPC1 = [12]byte{0x30, 0x75, 0x1F, 0xEB, 0x70, 0x5C, 0x59, 0x04, 0xE3, 0xD5, 0x0D, 0x70}
	// TestEPC2 is a second, distinct sample EPC
	TestEPC2 = [12]byte{0xE2, 0x00, 0x42, 0x0C, 0x9B, 0x60, 0x01, 0x23, 0x15, 0x00, 0x5A, 0x2B}
	// TestPC is a common Protocol Control word (96-bit EPC length)
	TestPC = [2]byte{0x34, 0x00}
)
