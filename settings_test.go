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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZaparooProject/go-uhf/internal/frame"
	uhftest "github.com/ZaparooProject/go-uhf/internal/testing"
)

// newSettingsDevice builds a device whose mock transport answers the given
// opcode with one canned frame.
func newSettingsDevice(t *testing.T, cmd byte, response []byte) (*Device, *MockTransport) {
	t.Helper()
	mock := NewMockTransport()
	mock.SetResponse(cmd, response)

	device, err := New(mock, WithTimeout(100*time.Millisecond))
	require.NoError(t, err)
	return device, mock
}

func TestVersion(t *testing.T) {
	t.Parallel()
	device, mock := newSettingsDevice(t, frame.CmdGetVersion,
		uhftest.BuildVersionResponse("M100 26dBm Software V1.0"))

	version, err := device.Version()
	require.NoError(t, err)
	assert.Equal(t, "M100 26dBm Software V1.0", version)

	// The query carries a single zero parameter byte.
	sent := mock.LastWrittenFrame()
	require.Len(t, sent, 8)
	assert.Equal(t, frame.CmdGetVersion, sent[2])
	assert.Equal(t, byte(0x00), sent[5])
}

func TestVersion_EmptyResponse(t *testing.T) {
	t.Parallel()
	// A frame too short to carry any text at the version offset.
	device, _ := newSettingsDevice(t, frame.CmdGetVersion,
		[]byte{0xBB, 0x01, 0x03, 0x00, 0x00, 0x7E})

	_, err := device.Version()
	require.ErrorIs(t, err, ErrFrameCorrupted)
}

func TestSetTxPower(t *testing.T) {
	t.Parallel()
	device, mock := newSettingsDevice(t, frame.CmdSetTxPower, uhftest.BuildAck(frame.CmdSetTxPower))

	require.NoError(t, device.SetTxPower(2600))

	// 2600 (26.00 dBm) splits into big-endian parameter bytes.
	sent := mock.LastWrittenFrame()
	require.Len(t, sent, 9)
	assert.Equal(t, frame.CmdSetTxPower, sent[2])
	assert.Equal(t, byte(0x0A), sent[5])
	assert.Equal(t, byte(0x28), sent[6])
}

func TestSetTxPower_Rejected(t *testing.T) {
	t.Parallel()
	device, _ := newSettingsDevice(t, frame.CmdSetTxPower, uhftest.BuildErrorResponse(0x17))

	err := device.SetTxPower(2600)
	require.ErrorIs(t, err, ErrDeviceError)
}

func TestSetRegion(t *testing.T) {
	t.Parallel()
	device, mock := newSettingsDevice(t, frame.CmdSetRegion, uhftest.BuildAck(frame.CmdSetRegion))

	require.NoError(t, device.SetRegion(RegionEurope))

	sent := mock.LastWrittenFrame()
	require.Len(t, sent, 8)
	assert.Equal(t, frame.CmdSetRegion, sent[2])
	assert.Equal(t, byte(RegionEurope), sent[5])
}

func TestSetRegion_Invalid(t *testing.T) {
	t.Parallel()
	device, mock := newSettingsDevice(t, frame.CmdSetRegion, uhftest.BuildAck(frame.CmdSetRegion))

	err := device.SetRegion(Region(0x09))
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Equal(t, 0, mock.GetCallCount(frame.CmdSetRegion), "invalid region must not reach the wire")
}

func TestGetRegion(t *testing.T) {
	t.Parallel()
	device, _ := newSettingsDevice(t, frame.CmdGetRegion, uhftest.BuildRegionResponse(byte(RegionUSA)))

	region, err := device.GetRegion()
	require.NoError(t, err)
	assert.Equal(t, RegionUSA, region)
	assert.Equal(t, "USA (902–928 MHz)", region.String())
}

func TestRegion_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		want   string
		region Region
	}{
		{name: "china", region: RegionChina, want: "CHINA (920–925 MHz)"},
		{name: "usa", region: RegionUSA, want: "USA (902–928 MHz)"},
		{name: "europe", region: RegionEurope, want: "EUROPE (865–868 MHz)"},
		{name: "korea", region: RegionKorea, want: "KOREA (917–923.5 MHz)"},
		{name: "unknown", region: Region(0x55), want: "UNKNOWN"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.region.String())
		})
	}
}

func TestSetReceiverParams(t *testing.T) {
	t.Parallel()
	device, mock := newSettingsDevice(t, frame.CmdSetRxParams, uhftest.BuildAck(frame.CmdSetRxParams))

	require.NoError(t, device.SetReceiverParams(0x03, 0x06, 0x01B0))

	sent := mock.LastWrittenFrame()
	require.Len(t, sent, 11)
	assert.Equal(t, frame.CmdSetRxParams, sent[2])
	assert.Equal(t, []byte{0x03, 0x06, 0x01, 0xB0}, sent[5:9])
}

func TestSetReceiverParams_Rejected(t *testing.T) {
	t.Parallel()
	device, _ := newSettingsDevice(t, frame.CmdSetRxParams, uhftest.BuildErrorResponse(0x17))

	err := device.SetReceiverParams(0x03, 0x06, 0x01B0)
	require.ErrorIs(t, err, ErrDeviceError)
}
