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
	"fmt"
	"strings"

	"github.com/ZaparooProject/go-uhf/internal/frame"
)

// Version queries the module's hardware version string
func (d *Device) Version() (string, error) {
	return d.VersionContext(context.Background())
}

// VersionContext queries the hardware version bounded by ctx
func (d *Device) VersionContext(ctx context.Context) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd, err := frame.Build(frame.CmdGetVersion, []byte{0x00})
	if err != nil {
		return "", fmt.Errorf("build version query: %w", err)
	}

	if err := d.sendFrame(cmd); err != nil {
		return "", err
	}
	raw, err := d.waitFrame(ctx, d.config.Timeout)
	if err != nil {
		return "", err
	}

	// Printable text sits at a fixed offset; scan a bounded window and
	// stop when the lookahead reaches the frame terminator.
	var sb strings.Builder
	for i := 0; i < frame.VersionScanWindow; i++ {
		idx := frame.VersionASCIIOffset + i
		if idx >= len(raw) {
			break
		}
		sb.WriteByte(raw[idx])
		if idx+2 < len(raw) && raw[idx+2] == frame.End {
			break
		}
	}
	if sb.Len() == 0 {
		return "", NewFrameCorruptedError("version", d.transport.Port())
	}
	return sb.String(), nil
}

// SetTxPower sets the transmit power in units of 0.01 dBm, so 2600 means
// 26.00 dBm.
func (d *Device) SetTxPower(power uint16) error {
	return d.SetTxPowerContext(context.Background(), power)
}

// SetTxPowerContext sets the transmit power bounded by ctx
func (d *Device) SetTxPowerContext(ctx context.Context, power uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd, err := frame.Build(frame.CmdSetTxPower, []byte{byte(power >> 8), byte(power)})
	if err != nil {
		return fmt.Errorf("build power command: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return err
	}
	if f.Command != frame.CmdSetTxPower {
		return fmt.Errorf("set tx power: %w", ErrDeviceError)
	}
	return nil
}

// SetRegion sets the module's working region/frequency band
func (d *Device) SetRegion(region Region) error {
	return d.SetRegionContext(context.Background(), region)
}

// SetRegionContext sets the working region bounded by ctx
func (d *Device) SetRegionContext(ctx context.Context, region Region) error {
	if !region.Valid() {
		return fmt.Errorf("%w: region %#02x", ErrInvalidParameter, byte(region))
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	cmd, err := frame.Build(frame.CmdSetRegion, []byte{byte(region)})
	if err != nil {
		return fmt.Errorf("build region command: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return err
	}
	if f.Command == frame.CmdError {
		return deviceError(f)
	}
	if f.Command != frame.CmdSetRegion || len(f.Params) < 1 || f.Params[0] != 0x00 {
		return fmt.Errorf("set region: %w", ErrDeviceError)
	}

	debugf("region set to %s", region)
	return nil
}

// GetRegion queries the module's current working region
func (d *Device) GetRegion() (Region, error) {
	return d.GetRegionContext(context.Background())
}

// GetRegionContext queries the working region bounded by ctx
func (d *Device) GetRegionContext(ctx context.Context) (Region, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd, err := frame.Build(frame.CmdGetRegion, nil)
	if err != nil {
		return 0, fmt.Errorf("build region query: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return 0, err
	}
	if f.Command == frame.CmdError {
		return 0, deviceError(f)
	}
	if f.Command != frame.CmdGetRegion || len(f.Params) < 1 {
		return 0, NewFrameCorruptedError("getRegion", d.transport.Port())
	}

	return Region(f.Params[0]), nil
}

// SetReceiverParams tunes the receiver demodulator: mixer gain code
// (0x00-0x06), IF amplifier gain code (0x00-0x07) and the signal
// demodulation threshold.
func (d *Device) SetReceiverParams(mixerGain, ifGain byte, threshold uint16) error {
	return d.SetReceiverParamsContext(context.Background(), mixerGain, ifGain, threshold)
}

// SetReceiverParamsContext tunes the receiver demodulator bounded by ctx
func (d *Device) SetReceiverParamsContext(
	ctx context.Context, mixerGain, ifGain byte, threshold uint16,
) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	params := []byte{mixerGain, ifGain, byte(threshold >> 8), byte(threshold)}
	cmd, err := frame.Build(frame.CmdSetRxParams, params)
	if err != nil {
		return fmt.Errorf("build receiver params command: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return err
	}
	if f.Command == frame.CmdError {
		return deviceError(f)
	}
	if f.Type != frame.TypeResponse || f.Command != frame.CmdSetRxParams ||
		len(f.Params) < 1 || f.Params[0] != 0x00 {
		return fmt.Errorf("set receiver params: %w", ErrDeviceError)
	}

	debugf("receiver params set: mixer=%#02x if=%#02x threshold=%#04x", mixerGain, ifGain, threshold)
	return nil
}
