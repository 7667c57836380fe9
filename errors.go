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
)

// Transport and protocol errors
var (
	// ErrTransportTimeout indicates no frame terminator arrived within the window
	ErrTransportTimeout = errors.New("transport timeout")
	// ErrTransportRead indicates a read operation on the transport failed
	ErrTransportRead = errors.New("transport read failed")
	// ErrTransportWrite indicates a write operation on the transport failed
	ErrTransportWrite = errors.New("transport write failed")
	// ErrCommunicationFailed indicates a command/response exchange broke down
	ErrCommunicationFailed = errors.New("communication failed")
	// ErrFrameCorrupted indicates a received frame had invalid start/end markers
	ErrFrameCorrupted = errors.New("frame corrupted")
	// ErrChecksumMismatch indicates a frame checksum did not match its contents
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Device and usage errors
var (
	// ErrDeviceNotFound indicates no reader module was found
	ErrDeviceNotFound = errors.New("device not found")
	// ErrDeviceError indicates the module echoed a failure signature
	ErrDeviceError = errors.New("device reported error")
	// ErrNoTag indicates no tag answered the operation
	ErrNoTag = errors.New("no tag detected")
	// ErrRegistryFull indicates the tag table hit its fixed capacity
	ErrRegistryFull = errors.New("tag registry full")
	// ErrDataTooLarge indicates a parameter payload exceeds the frame buffer
	ErrDataTooLarge = errors.New("data too large for frame")
	// ErrInvalidParameter indicates an invalid argument was supplied
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrorType classifies errors for retry decisions made by callers
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that will not resolve by retrying
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates an error that may resolve by retrying
	ErrorTypeTransient
	// ErrorTypeTimeout indicates an operation that ran out of time
	ErrorTypeTimeout
)

// TransportError wraps an error from a transport operation with context
// about what was being attempted and whether a retry is worthwhile.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("uhf %s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("uhf %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewTimeoutError creates a TransportError for a timed-out operation
func NewTimeoutError(op, port string) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       ErrTransportTimeout,
		Type:      ErrorTypeTimeout,
		Retryable: true,
	}
}

// NewFrameCorruptedError creates a TransportError for a malformed frame
func NewFrameCorruptedError(op, port string) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       ErrFrameCorrupted,
		Type:      ErrorTypeTransient,
		Retryable: true,
	}
}

// NewDataTooLargeError creates a TransportError for an oversized payload
func NewDataTooLargeError(op, port string) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       ErrDataTooLarge,
		Type:      ErrorTypePermanent,
		Retryable: false,
	}
}

// retryableErrors are the sentinel errors that a caller may retry
var retryableErrors = []error{
	ErrTransportTimeout,
	ErrTransportRead,
	ErrTransportWrite,
	ErrCommunicationFailed,
	ErrFrameCorrupted,
	ErrChecksumMismatch,
}

// IsRetryable reports whether an operation that failed with err is worth
// retrying. Driver operations never retry on their own; this classification
// is for application loops and the polling monitor.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Retryable
	}

	for _, e := range retryableErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// GetErrorType classifies err into an ErrorType
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var te *TransportError
	if errors.As(err, &te) {
		return te.Type
	}

	if errors.Is(err, ErrTransportTimeout) {
		return ErrorTypeTimeout
	}

	for _, e := range retryableErrors {
		if errors.Is(err, e) {
			return ErrorTypeTransient
		}
	}
	return ErrorTypePermanent
}
