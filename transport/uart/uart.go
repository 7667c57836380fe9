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

// Package uart provides the UART transport implementation for the reader
// module
package uart

import (
	"time"

	uhf "github.com/ZaparooProject/go-uhf"
	"go.bug.st/serial"
)

// DefaultBaudRate is the module's factory serial speed
const DefaultBaudRate = 115200

// Transport implements the uhf.Transport interface over a serial port
type Transport struct {
	port      serial.Port
	portName  string
	timeout   time.Duration
	connected bool
}

// New opens portName at the default 115200 8N1
func New(portName string) (*Transport, error) {
	return NewWithBaudRate(portName, DefaultBaudRate)
}

// NewWithBaudRate opens portName at the given speed, 8N1
func NewWithBaudRate(portName string, baudRate int) (*Transport, error) {
	if baudRate <= 0 {
		return nil, uhf.NewTransportError("open", portName, uhf.ErrInvalidParameter, uhf.ErrorTypePermanent)
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, uhf.NewTransportError("open", portName, err, uhf.ErrorTypePermanent)
	}

	t := &Transport{
		port:      port,
		portName:  portName,
		timeout:   50 * time.Millisecond,
		connected: true,
	}
	if err := t.SetReadTimeout(t.timeout); err != nil {
		_ = port.Close()
		return nil, err
	}

	return t, nil
}

// Write sends raw bytes to the module
func (t *Transport) Write(p []byte) (int, error) {
	n, err := t.port.Write(p)
	if err != nil {
		return n, uhf.NewTransportError("write", t.portName, err, uhf.ErrorTypeTransient)
	}
	return n, nil
}

// Read fills p with received bytes. Returns (0, nil) when the read timeout
// expired without data, as the serial library does.
func (t *Transport) Read(p []byte) (int, error) {
	n, err := t.port.Read(p)
	if err != nil {
		return n, uhf.NewTransportError("read", t.portName, err, uhf.ErrorTypeTransient)
	}
	return n, nil
}

// SetReadTimeout bounds how long a single Read may block
func (t *Transport) SetReadTimeout(timeout time.Duration) error {
	t.timeout = timeout
	if err := t.port.SetReadTimeout(timeout); err != nil {
		return uhf.NewTransportError("setReadTimeout", t.portName, err, uhf.ErrorTypeTransient)
	}
	return nil
}

// Flush discards any buffered, unread input bytes
func (t *Transport) Flush() error {
	if err := t.port.ResetInputBuffer(); err != nil {
		return uhf.NewTransportError("flush", t.portName, err, uhf.ErrorTypeTransient)
	}
	return nil
}

// Close closes the serial port
func (t *Transport) Close() error {
	if !t.connected {
		return nil
	}
	t.connected = false
	if err := t.port.Close(); err != nil {
		return uhf.NewTransportError("close", t.portName, err, uhf.ErrorTypeTransient)
	}
	return nil
}

// IsConnected returns true if the port is open
func (t *Transport) IsConnected() bool {
	return t.connected
}

// Type returns the transport type
func (*Transport) Type() uhf.TransportType {
	return uhf.TransportUART
}

// Port returns the serial port path
func (t *Transport) Port() string {
	return t.portName
}
