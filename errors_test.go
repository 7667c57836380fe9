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
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := getIsRetryableTestCases()

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IsRetryable(tt.err)
			if got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func getIsRetryableTestCases() []struct {
	err  error
	name string
	want bool
} {
	return []struct {
		err  error
		name string
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "transport timeout retryable",
			err:  ErrTransportTimeout,
			want: true,
		},
		{
			name: "transport read retryable",
			err:  ErrTransportRead,
			want: true,
		},
		{
			name: "transport write retryable",
			err:  ErrTransportWrite,
			want: true,
		},
		{
			name: "communication failed retryable",
			err:  ErrCommunicationFailed,
			want: true,
		},
		{
			name: "frame corrupted retryable",
			err:  ErrFrameCorrupted,
			want: true,
		},
		{
			name: "checksum mismatch retryable",
			err:  ErrChecksumMismatch,
			want: true,
		},
		{
			name: "device not found not retryable",
			err:  ErrDeviceNotFound,
			want: false,
		},
		{
			name: "no tag not retryable",
			err:  ErrNoTag,
			want: false,
		},
		{
			name: "data too large not retryable",
			err:  ErrDataTooLarge,
			want: false,
		},
		{
			name: "invalid parameter not retryable",
			err:  ErrInvalidParameter,
			want: false,
		},
		{
			name: "fmt-wrapped retryable error",
			err:  fmt.Errorf("inventory: %w", ErrTransportTimeout),
			want: true,
		},
		{
			name: "string-copied error loses identity",
			err:  errors.New("outer: " + ErrTransportTimeout.Error()),
			want: false,
		},
	}
}

func TestIsRetryable_TransportError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		transport *TransportError
		name      string
		want      bool
	}{
		{
			name:      "transport error retryable=true",
			transport: NewTimeoutError("waitFrame", "/dev/ttyUSB0"),
			want:      true,
		},
		{
			name:      "transport error retryable=false",
			transport: NewDataTooLargeError("writeMemory", "/dev/ttyUSB0"),
			want:      false,
		},
		{
			name: "retryable flag wins over wrapped sentinel",
			transport: &TransportError{
				Op:        "write",
				Err:       ErrTransportWrite,
				Type:      ErrorTypePermanent,
				Retryable: false,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IsRetryable(tt.transport)
			if got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want ErrorType
	}{
		{
			name: "nil error permanent",
			err:  nil,
			want: ErrorTypePermanent,
		},
		{
			name: "timeout sentinel",
			err:  ErrTransportTimeout,
			want: ErrorTypeTimeout,
		},
		{
			name: "frame corrupted transient",
			err:  ErrFrameCorrupted,
			want: ErrorTypeTransient,
		},
		{
			name: "invalid parameter permanent",
			err:  ErrInvalidParameter,
			want: ErrorTypePermanent,
		},
		{
			name: "transport error carries its own type",
			err:  NewFrameCorruptedError("parse", "mock"),
			want: ErrorTypeTransient,
		},
		{
			name: "timeout transport error",
			err:  NewTimeoutError("waitFrame", "mock"),
			want: ErrorTypeTimeout,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := GetErrorType(tt.err)
			if got != tt.want {
				t.Errorf("GetErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	t.Parallel()
	withPort := NewTimeoutError("waitFrame", "/dev/ttyUSB0")
	if !strings.Contains(withPort.Error(), "/dev/ttyUSB0") {
		t.Errorf("Error() = %q, want port in message", withPort.Error())
	}
	if !strings.Contains(withPort.Error(), "waitFrame") {
		t.Errorf("Error() = %q, want op in message", withPort.Error())
	}

	noPort := NewTransportError("connect", "", ErrDeviceNotFound, ErrorTypePermanent)
	if strings.Contains(noPort.Error(), "  ") {
		t.Errorf("Error() = %q, want no empty port gap", noPort.Error())
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	t.Parallel()
	err := NewTimeoutError("waitFrame", "mock")
	if !errors.Is(err, ErrTransportTimeout) {
		t.Error("errors.Is() should see through TransportError")
	}

	var te *TransportError
	if !errors.As(fmt.Errorf("outer: %w", err), &te) {
		t.Error("errors.As() should find the TransportError through wrapping")
	}
}
