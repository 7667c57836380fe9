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
	"sync"
	"time"
)

// MockTransport is a scripted byte-stream transport for testing. Writing a
// command frame enqueues the configured response bytes, which subsequent
// Reads then deliver one chunk at a time, the way a UART trickles bytes in.
type MockTransport struct {
	responses    map[byte][][]byte
	errors       map[byte]error
	callCounts   map[byte]int
	ResponseFunc func(cmd byte, written []byte) [][]byte
	written      []byte
	rx           []byte
	readTimeout  time.Duration
	mu           sync.Mutex
	closed       bool
}

// NewMockTransport creates a new mock transport
func NewMockTransport() *MockTransport {
	return &MockTransport{
		responses:   make(map[byte][][]byte),
		errors:      make(map[byte]error),
		callCounts:  make(map[byte]int),
		readTimeout: 10 * time.Millisecond,
	}
}

// SetResponse configures the byte stream delivered after a command with
// the given opcode is written
func (m *MockTransport) SetResponse(cmd byte, response []byte) {
	m.SetResponses(cmd, response)
}

// SetResponses configures multiple frames delivered back to back after a
// command with the given opcode is written (inventory notices arrive this
// way)
func (m *MockTransport) SetResponses(cmd byte, frames ...[]byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, 0, len(frames))
	for _, f := range frames {
		copied = append(copied, append([]byte(nil), f...))
	}
	m.responses[cmd] = copied
}

// SetError makes writes of the given opcode fail with err
func (m *MockTransport) SetError(cmd byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[cmd] = err
}

// GetCallCount returns how many commands with the given opcode were written
func (m *MockTransport) GetCallCount(cmd byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCounts[cmd]
}

// FeedBytes preloads raw bytes for Read without requiring a Write first
func (m *MockTransport) FeedBytes(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rx = append(m.rx, raw...)
}

// Written returns everything written to the transport so far
func (m *MockTransport) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.written...)
}

// LastWrittenFrame returns the bytes of the most recent frame written,
// located by its trailing terminator
func (m *MockTransport) LastWrittenFrame() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.written) == 0 {
		return nil
	}
	// Frames end with 0x7E; find the start of the last one.
	start := 0
	for i := 0; i < len(m.written)-1; i++ {
		if m.written[i] == 0x7E {
			start = i + 1
		}
	}
	return append([]byte(nil), m.written[start:]...)
}

// Write records the command and enqueues its scripted response bytes
func (m *MockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrTransportWrite
	}

	m.written = append(m.written, p...)

	var cmd byte
	if len(p) >= 3 {
		cmd = p[2]
	}
	m.callCounts[cmd]++

	if err, ok := m.errors[cmd]; ok {
		return 0, err
	}

	var frames [][]byte
	if m.ResponseFunc != nil {
		frames = m.ResponseFunc(cmd, append([]byte(nil), p...))
	} else {
		frames = m.responses[cmd]
	}
	for _, f := range frames {
		m.rx = append(m.rx, f...)
	}

	return len(p), nil
}

// Read delivers pending response bytes, or blocks for the read timeout and
// returns (0, nil) when none are pending, matching serial port semantics
func (m *MockTransport) Read(p []byte) (int, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return 0, ErrTransportRead
	}
	if len(m.rx) == 0 {
		timeout := m.readTimeout
		m.mu.Unlock()
		time.Sleep(timeout)
		return 0, nil
	}
	n := copy(p, m.rx)
	m.rx = m.rx[n:]
	m.mu.Unlock()
	return n, nil
}

// SetReadTimeout bounds how long a Read without data blocks
func (m *MockTransport) SetReadTimeout(timeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readTimeout = timeout
	return nil
}

// Flush discards pending unread bytes
func (m *MockTransport) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rx = nil
	return nil
}

// Close marks the transport closed
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// IsConnected returns true until the transport is closed
func (m *MockTransport) IsConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.closed
}

// Type returns TransportMock
func (*MockTransport) Type() TransportType {
	return TransportMock
}

// Port returns a fixed identifier for error reporting
func (*MockTransport) Port() string {
	return "mock"
}
