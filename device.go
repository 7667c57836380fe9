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
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ZaparooProject/go-uhf/detection"
	"github.com/ZaparooProject/go-uhf/internal/frame"
)

// DeviceConfig contains configuration options for the Device
type DeviceConfig struct {
	// Timeout bounds how long one waitFrame call blocks for a response
	// frame terminator.
	Timeout time.Duration
	// InventoryTimeout caps the overall wall-clock time of one inventory
	// collection loop, on top of the per-frame Timeout. A misbehaving
	// module emitting valid-looking frames forever cannot hold the caller
	// past this cap.
	InventoryTimeout time.Duration
}

// DefaultDeviceConfig returns default device configuration
func DefaultDeviceConfig() *DeviceConfig {
	return &DeviceConfig{
		Timeout:          500 * time.Millisecond,
		InventoryTimeout: 3 * time.Second,
	}
}

const (
	// readSlice is the granularity of deadline checks in the wait loop
	readSlice = 20 * time.Millisecond
	// inventoryCycle is the per-round allowance added to InventoryTimeout
	// when collecting a multi-round poll.
	inventoryCycle = 10 * time.Millisecond
	// initRetryDelay paces version probes during module bring-up
	initRetryDelay = 100 * time.Millisecond
)

// Device drives one JRD-4035/M100 reader module.
//
// The protocol is strictly request/response with no request identifiers,
// so exactly one exchange may be in flight per transport. An internal
// mutex serializes operations; concurrent callers block each other.
type Device struct {
	transport Transport
	config    *DeviceConfig
	tags      *tagTable
	mu        sync.Mutex
}

// New creates a new reader device on the given transport
func New(transport Transport, opts ...Option) (*Device, error) {
	device := &Device{
		transport: transport,
		config:    DefaultDeviceConfig(),
		tags:      newTagTable(),
	}

	for _, opt := range opts {
		if err := opt(device); err != nil {
			return nil, err
		}
	}

	return device, nil
}

// Transport returns the underlying transport
func (d *Device) Transport() Transport {
	return d.transport
}

// SetTimeout sets the per-frame response timeout
func (d *Device) SetTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		return ErrInvalidParameter
	}
	d.config.Timeout = timeout
	return nil
}

// Tags returns a copy of the records from the most recent inventory scan
func (d *Device) Tags() []Tag {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.tags.snapshot()
}

// Close closes the device connection
func (d *Device) Close() error {
	if d.transport != nil {
		if err := d.transport.Close(); err != nil {
			return fmt.Errorf("failed to close transport: %w", err)
		}
	}
	return nil
}

// Init probes the module until it answers a version query. It blocks until
// the module responds or the context is done; bound it with a deadline when
// the module may be absent.
func (d *Device) Init() error {
	return d.InitContext(context.Background())
}

// InitContext probes the module until it answers a version query or ctx is
// done
func (d *Device) InitContext(ctx context.Context) error {
	for {
		version, err := d.VersionContext(ctx)
		if err == nil {
			debugf("module answered version query: %q", version)
			return nil
		}
		if !IsRetryable(err) && !errors.Is(err, ctx.Err()) {
			return fmt.Errorf("module init: %w", err)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("module init: %w", ctx.Err())
		case <-time.After(initRetryDelay):
		}
	}
}

// sendFrame drains stale input and writes one command frame
func (d *Device) sendFrame(cmd []byte) error {
	if err := d.transport.Flush(); err != nil {
		return fmt.Errorf("flush input: %w", err)
	}
	debugHex("send", cmd)
	if _, err := d.transport.Write(cmd); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	return nil
}

// waitFrame accumulates bytes into a scratch buffer until a frame
// terminator is read or the timeout elapses. On success the buffer starts
// with the frame header and ends with the terminator; a spurious
// terminator with no leading header is a corrupted frame, not a frame.
func (d *Device) waitFrame(ctx context.Context, timeout time.Duration) ([]byte, error) {
	deadline := time.Now().Add(timeout)
	buf := make([]byte, 0, frame.MaxLength)
	one := make([]byte, 1)

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("wait frame: %w", ctx.Err())
		default:
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, NewTimeoutError("waitFrame", d.transport.Port())
		}
		if remaining > readSlice {
			remaining = readSlice
		}
		if err := d.transport.SetReadTimeout(remaining); err != nil {
			return nil, fmt.Errorf("set read timeout: %w", err)
		}

		n, err := d.transport.Read(one)
		if err != nil {
			return nil, fmt.Errorf("read frame: %w", err)
		}
		if n == 0 {
			continue
		}

		if len(buf) >= frame.MaxLength {
			return nil, NewFrameCorruptedError("waitFrame", d.transport.Port())
		}
		buf = append(buf, one[0])
		if one[0] == frame.End {
			break
		}
	}

	if buf[0] != frame.Header || buf[len(buf)-1] != frame.End {
		debugHex("drop", buf)
		return nil, NewFrameCorruptedError("waitFrame", d.transport.Port())
	}
	debugHex("recv", buf)
	return buf, nil
}

// transceive performs one synchronous command/response exchange. The
// caller must hold d.mu.
func (d *Device) transceive(ctx context.Context, cmd []byte) (*frame.Frame, error) {
	if err := d.sendFrame(cmd); err != nil {
		return nil, err
	}

	raw, err := d.waitFrame(ctx, d.config.Timeout)
	if err != nil {
		return nil, err
	}

	f, err := frame.Parse(raw)
	if err != nil {
		debugf("unparseable response: %v", err)
		return nil, NewFrameCorruptedError("parse", d.transport.Port())
	}
	return f, nil
}

// deviceError turns a module error echo into a driver error
func deviceError(f *frame.Frame) error {
	code := byte(0)
	if len(f.Params) > 0 {
		code = f.Params[0]
	}
	if code == frame.ErrCodeInventoryFail {
		return fmt.Errorf("%w (code %#02x)", ErrNoTag, code)
	}
	return fmt.Errorf("%w (code %#02x)", ErrDeviceError, code)
}

// TransportFactory creates a transport from a device path
type TransportFactory func(path string) (Transport, error)

// TransportFromDeviceFactory creates a transport from a detected device
type TransportFromDeviceFactory func(device detection.DeviceInfo) (Transport, error)

// ConnectOption represents a functional option for ConnectDevice
type ConnectOption func(*connectConfig) error

// connectConfig holds configuration options for device connection
type connectConfig struct {
	transportFactory       TransportFactory
	transportDeviceFactory TransportFromDeviceFactory
	deviceOptions          []Option
	timeout                time.Duration
	autoDetect             bool
}

// WithAutoDetection enables automatic device detection instead of using a
// specific path
func WithAutoDetection() ConnectOption {
	return func(c *connectConfig) error {
		c.autoDetect = true
		return nil
	}
}

// WithDeviceOptions adds device-level options
func WithDeviceOptions(opts ...Option) ConnectOption {
	return func(c *connectConfig) error {
		c.deviceOptions = append(c.deviceOptions, opts...)
		return nil
	}
}

// WithConnectTimeout bounds device connection and bring-up
func WithConnectTimeout(timeout time.Duration) ConnectOption {
	return func(c *connectConfig) error {
		c.timeout = timeout
		return nil
	}
}

// WithTransportFactory sets the transport factory function
func WithTransportFactory(factory TransportFactory) ConnectOption {
	return func(c *connectConfig) error {
		c.transportFactory = factory
		return nil
	}
}

// WithTransportFromDeviceFactory sets the transport from device factory
// function
func WithTransportFromDeviceFactory(factory TransportFromDeviceFactory) ConnectOption {
	return func(c *connectConfig) error {
		c.transportDeviceFactory = factory
		return nil
	}
}

func applyConnectOptions(opts []ConnectOption) (*connectConfig, error) {
	config := &connectConfig{
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, fmt.Errorf("failed to apply connect option: %w", err)
		}
	}

	return config, nil
}

// ConnectDevice creates and initializes a reader from a path or
// auto-detection. Transport construction is injected through factories so
// this package stays import-cycle free of the transport implementations.
//
// Example usage:
//
//	device, err := uhf.ConnectDevice("/dev/ttyUSB0",
//	    uhf.WithTransportFactory(func(path string) (uhf.Transport, error) {
//	        return uart.New(path)
//	    }))
func ConnectDevice(path string, opts ...ConnectOption) (*Device, error) {
	config, err := applyConnectOptions(opts)
	if err != nil {
		return nil, err
	}

	transport, err := createTransport(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport: %w", err)
	}

	device, err := New(transport, config.deviceOptions...)
	if err != nil {
		_ = transport.Close()
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	ctx := context.Background()
	if config.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.timeout)
		defer cancel()
	}
	if err := device.InitContext(ctx); err != nil {
		_ = transport.Close()
		return nil, err
	}

	return device, nil
}

func createTransport(path string, config *connectConfig) (Transport, error) {
	if config.autoDetect || path == "" {
		return createAutoDetectedTransport(config.transportDeviceFactory)
	}
	return createManualTransport(path, config.transportFactory)
}

// createManualTransport handles creation of transport for a specific path
func createManualTransport(path string, factory TransportFactory) (Transport, error) {
	if factory == nil {
		return nil, errors.New("transport factory not provided")
	}

	transport, err := factory(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create transport for path %s: %w", path, err)
	}

	return transport, nil
}

// createAutoDetectedTransport handles auto-detection of devices
func createAutoDetectedTransport(factory TransportFromDeviceFactory) (Transport, error) {
	if factory == nil {
		return nil, errors.New("transport device factory not provided")
	}

	opts := detection.DefaultOptions()
	devices, err := detection.DetectAll(&opts)
	if err != nil {
		return nil, fmt.Errorf("failed to detect devices: %w", err)
	}

	if len(devices) == 0 {
		return nil, ErrDeviceNotFound
	}

	// Use the first detected device
	return factory(devices[0])
}
