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

package uhf

import (
	"time"
)

// Transport is the byte stream the driver runs the framing protocol over.
// The reader module exposes a plain UART, so unlike packet-oriented reader
// chips the framing here lives in the driver: the device reads byte by byte
// until a frame terminator, and the transport only moves raw bytes.
type Transport interface {
	// Write sends raw bytes to the module
	Write(p []byte) (int, error)

	// Read fills p with available bytes. A transport must block for at
	// most the configured read timeout and return (0, nil) when no byte
	// arrived in that window, so the caller's deadline loop stays live.
	Read(p []byte) (int, error)

	// SetReadTimeout bounds how long a single Read may block
	SetReadTimeout(timeout time.Duration) error

	// Flush discards any buffered, unread input bytes
	Flush() error

	// Close closes the transport connection
	Close() error

	// IsConnected returns true if the transport is usable
	IsConnected() bool

	// Type returns the transport type
	Type() TransportType

	// Port returns a human-readable identifier for error reporting
	Port() string
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportUART represents UART/serial transport, the only physical
	// channel the JRD-4035/M100 family exposes.
	TransportUART TransportType = "uart"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)
