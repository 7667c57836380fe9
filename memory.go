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
	"bytes"
	"context"
	"fmt"

	"github.com/ZaparooProject/go-uhf/internal/frame"
)

// Select installs an EPC filter mask so that subsequent read/write
// operations address only the tag with the given EPC.
func (d *Device) Select(epc [12]byte) error {
	return d.SelectContext(context.Background(), epc)
}

// SelectContext installs an EPC filter mask bounded by ctx
func (d *Device) SelectContext(ctx context.Context, epc [12]byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	params := make([]byte, 0, len(frame.SelectParams)+len(epc))
	params = append(params, frame.SelectParams...)
	params = append(params, epc[:]...)

	cmd, err := frame.Build(frame.CmdSetSelect, params)
	if err != nil {
		return fmt.Errorf("build select command: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return err
	}

	// Success is the exact acknowledgment frame, nothing looser.
	if !bytes.Equal(f.Raw, frame.SetSelectOK) {
		return fmt.Errorf("select: %w", ErrDeviceError)
	}
	return nil
}

// SelectParam queries the currently installed EPC filter mask
func (d *Device) SelectParam() ([12]byte, error) {
	return d.SelectParamContext(context.Background())
}

// SelectParamContext queries the EPC filter mask bounded by ctx
func (d *Device) SelectParamContext(ctx context.Context) ([12]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var mask [12]byte
	cmd, err := frame.Build(frame.CmdGetSelect, nil)
	if err != nil {
		return mask, fmt.Errorf("build select query: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return mask, err
	}
	if f.Command == frame.CmdError {
		return mask, deviceError(f)
	}
	if len(f.Raw) < frame.SelectMaskOffset+len(mask) {
		return mask, NewFrameCorruptedError("selectParam", d.transport.Port())
	}

	copy(mask[:], f.Raw[frame.SelectMaskOffset:])
	return mask, nil
}

// ReadMemory reads count bytes from a tag memory bank starting at word
// address addr. count must be even; the module works in 16-bit words.
// Select the target tag first when more than one tag is in the field.
func (d *Device) ReadMemory(bank Membank, addr uint16, count int, password uint32) ([]byte, error) {
	return d.ReadMemoryContext(context.Background(), bank, addr, count, password)
}

// ReadMemoryContext reads tag memory bounded by ctx
func (d *Device) ReadMemoryContext(
	ctx context.Context, bank Membank, addr uint16, count int, password uint32,
) ([]byte, error) {
	if count <= 0 || count%2 != 0 {
		return nil, fmt.Errorf("%w: byte count must be positive and even", ErrInvalidParameter)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	words := uint16(count / 2)
	params := []byte{
		byte(password >> 24), byte(password >> 16), byte(password >> 8), byte(password),
		byte(bank),
		byte(addr >> 8), byte(addr),
		byte(words >> 8), byte(words),
	}
	cmd, err := frame.Build(frame.CmdReadMemory, params)
	if err != nil {
		return nil, fmt.Errorf("build read command: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if f.Command == frame.CmdError {
		return nil, deviceError(f)
	}
	if len(f.Raw) < frame.ReadDataOffset+count {
		return nil, NewFrameCorruptedError("readMemory", d.transport.Port())
	}

	data := make([]byte, count)
	copy(data, f.Raw[frame.ReadDataOffset:])
	return data, nil
}

// WriteMemory writes data to a tag memory bank starting at word address
// addr. len(data) must be even and fit one frame.
func (d *Device) WriteMemory(bank Membank, addr uint16, data []byte, password uint32) error {
	return d.WriteMemoryContext(context.Background(), bank, addr, data, password)
}

// WriteMemoryContext writes tag memory bounded by ctx
func (d *Device) WriteMemoryContext(
	ctx context.Context, bank Membank, addr uint16, data []byte, password uint32,
) error {
	if len(data) == 0 || len(data)%2 != 0 {
		return fmt.Errorf("%w: data length must be positive and even", ErrInvalidParameter)
	}
	if len(data)+9 > frame.MaxLength-frame.Overhead {
		return NewDataTooLargeError("writeMemory", d.transport.Port())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	words := uint16(len(data) / 2)
	params := make([]byte, 0, 9+len(data))
	params = append(params,
		byte(password>>24), byte(password>>16), byte(password>>8), byte(password),
		byte(bank),
		byte(addr>>8), byte(addr),
		byte(words>>8), byte(words),
	)
	params = append(params, data...)

	cmd, err := frame.Build(frame.CmdWriteMemory, params)
	if err != nil {
		return fmt.Errorf("build write command: %w", err)
	}

	f, err := d.transceive(ctx, cmd)
	if err != nil {
		return err
	}
	if f.Command == frame.CmdError {
		return deviceError(f)
	}
	return nil
}

// ReadTID selects the tag with the given EPC and reads the first 8 bytes
// of its TID bank (the chip serial number).
func (d *Device) ReadTID(epc [12]byte) ([]byte, error) {
	return d.ReadTIDContext(context.Background(), epc)
}

// ReadTIDContext reads a tag's TID bounded by ctx
func (d *Device) ReadTIDContext(ctx context.Context, epc [12]byte) ([]byte, error) {
	if err := d.SelectContext(ctx, epc); err != nil {
		return nil, fmt.Errorf("select tag for TID read: %w", err)
	}
	return d.ReadMemoryContext(ctx, MembankTID, 0, 8, 0)
}
