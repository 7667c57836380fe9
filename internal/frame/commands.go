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

package frame

// JRD-4035/M100 command codes
const (
	CmdGetVersion  byte = 0x03 // Hardware/software version query
	CmdSetRegion   byte = 0x07 // Set working region/frequency band
	CmdGetRegion   byte = 0x08 // Query working region
	CmdGetSelect   byte = 0x0B // Query select (EPC filter) parameter
	CmdSetSelect   byte = 0x0C // Set select (EPC filter) parameter
	CmdPollSingle  byte = 0x22 // Single inventory round
	CmdPollMulti   byte = 0x27 // Multiple inventory rounds
	CmdReadMemory  byte = 0x39 // Read tag memory bank
	CmdWriteMemory byte = 0x49 // Write tag memory bank
	CmdSetTxPower  byte = 0xB6 // Set transmit power (0.01 dBm units)
	CmdSetRxParams byte = 0xF0 // Set receiver demodulator parameters
	CmdError       byte = 0xFF // Command echo in module error responses
)

// Module error codes carried in CmdError response frames
const (
	ErrCodeInventoryFail byte = 0x15 // No tag answered the inventory round
	ErrCodeAccessFail    byte = 0x16 // Tag access (password) failure
	ErrCodeReadFail      byte = 0x09 // Memory read failure
	ErrCodeWriteFail     byte = 0x10 // Memory write failure
)

// Fixed parameter positions within well-known response frames. Offsets are
// into the raw frame, not the parameter slice.
const (
	// VersionASCIIOffset is where the version query's printable text starts
	VersionASCIIOffset = 6
	// VersionScanWindow bounds the version text scan
	VersionScanWindow = 50
	// InventoryParamLen is the parameter length of one inventory notice:
	// RSSI(1) + PC(2) + EPC(12) + EPC-CRC(2)
	InventoryParamLen = 17
	// ReadDataOffset is where read-memory response data starts: the
	// parameters lead with UL(1) + PC(2) + EPC(12) echoing the tag.
	ReadDataOffset = 20
	// SelectMaskOffset is where the select mask sits in get-select responses
	SelectMaskOffset = 12
)

// SelectParams are the fixed leading parameter bytes of a set-select
// command: SelParam target/action 0x01, pointer 0x00000020 (bit address of
// the EPC field), mask length 0x60 bits, no truncation. The 12-byte EPC
// mask follows.
var SelectParams = []byte{0x01, 0x00, 0x00, 0x00, 0x20, 0x60, 0x00}

// SetSelectOK is the full acknowledgment frame for a successful set-select.
var SetSelectOK = []byte{0xBB, 0x01, 0x0C, 0x00, 0x01, 0x00, 0x0E, 0x7E}
