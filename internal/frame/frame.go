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

// Package frame builds and parses JRD-4035/M100 protocol frames.
//
// Wire layout:
//
//	[0xBB][Type][Command][LenMSB][LenLSB][Parameters...][Checksum][End=0x7E]
//
// The checksum is the 8-bit sum of all bytes from Type through the last
// parameter byte.
package frame

import "errors"

// Frame markers
const (
	Header byte = 0xBB // First byte of every frame
	End    byte = 0x7E // Frame terminator
)

// Frame type byte values
const (
	TypeCommand  byte = 0x00 // Host to module
	TypeResponse byte = 0x01 // Module to host, reply to a command
	TypeNotice   byte = 0x02 // Module to host, unsolicited (inventory results)
)

// Frame size limits
const (
	// MaxLength is the fixed frame buffer size; parameter payloads must
	// fit a frame of this size.
	MaxLength = 256
	// MinLength is header + type + command + two length bytes + checksum + end
	MinLength = 7
	// Overhead is the number of non-parameter bytes in a frame
	Overhead = 7
)

// Parse errors
var (
	// ErrMarkerInvalid means the start or end marker byte was wrong
	ErrMarkerInvalid = errors.New("frame: invalid start/end marker")
	// ErrTooShort means the buffer cannot hold a complete frame
	ErrTooShort = errors.New("frame: too short")
	// ErrLengthMismatch means the length field disagrees with the buffer size
	ErrLengthMismatch = errors.New("frame: length field mismatch")
	// ErrTooLarge means the parameter payload exceeds the frame buffer
	ErrTooLarge = errors.New("frame: payload too large")
)

// Frame is a decoded protocol frame.
type Frame struct {
	Raw     []byte
	Params  []byte
	Type    byte
	Command byte
}

// Checksum returns the 8-bit sum of data, truncated to a byte. For a full
// frame the covered range is bytes[1:len-2], Type through last parameter.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// Build encodes a command frame for cmd with the given parameter bytes.
func Build(cmd byte, params []byte) ([]byte, error) {
	n := len(params)
	if n > MaxLength-Overhead {
		return nil, ErrTooLarge
	}

	f := make([]byte, 0, n+Overhead)
	f = append(f, Header, TypeCommand, cmd, byte(n>>8), byte(n))
	f = append(f, params...)
	f = append(f, Checksum(f[1:]), End)
	return f, nil
}

// Parse validates buf's markers and length field and splits it into a
// Frame. The checksum byte is NOT re-verified here: the receive path
// trusts the framing, matching the module's reference firmware. Use
// VerifyChecksum where stricter validation is wanted.
func Parse(buf []byte) (*Frame, error) {
	if len(buf) < MinLength {
		return nil, ErrTooShort
	}
	if buf[0] != Header || buf[len(buf)-1] != End {
		return nil, ErrMarkerInvalid
	}

	plen := int(buf[3])<<8 | int(buf[4])
	if plen+Overhead != len(buf) {
		// A 0x7E inside parameter data truncates the receive loop early;
		// such fragments show up here and are rejected.
		return nil, ErrLengthMismatch
	}

	return &Frame{
		Raw:     buf,
		Type:    buf[1],
		Command: buf[2],
		Params:  buf[5 : 5+plen],
	}, nil
}

// VerifyChecksum reports whether a full frame's checksum byte matches its
// contents. Not called on the receive hot path.
func VerifyChecksum(buf []byte) bool {
	if len(buf) < MinLength {
		return false
	}
	return Checksum(buf[1:len(buf)-2]) == buf[len(buf)-2]
}
