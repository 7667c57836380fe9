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

	"github.com/stretchr/testify/assert"
)

func TestTag_Hex(t *testing.T) {
	t.Parallel()
	tag := Tag{
		RSSI: -61,
		PC:   [2]byte{0x34, 0x00},
		EPC:  [12]byte{0x30, 0x75, 0x1F, 0xEB, 0x70, 0x5C, 0x59, 0x04, 0xE3, 0xD5, 0x0D, 0x70},
	}

	assert.Equal(t, "30751feb705c5904e3d50d70", tag.EPCHex())
	assert.Equal(t, "3400", tag.PCHex())
	assert.Equal(t, -61, tag.RSSIdBm())
}

func TestTag_SignalQuality(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want string
		rssi int8
	}{
		{name: "strong", rssi: -40, want: "Excellent"},
		{name: "boundary excellent", rssi: -50, want: "Good"},
		{name: "good", rssi: -60, want: "Good"},
		{name: "fair", rssi: -70, want: "Fair"},
		{name: "boundary fair", rssi: -75, want: "Weak"},
		{name: "weak", rssi: -90, want: "Weak"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tag := Tag{RSSI: tt.rssi}
			assert.Equal(t, tt.want, tag.SignalQuality())
		})
	}
}

func TestTagTable_InsertIfNew(t *testing.T) {
	t.Parallel()
	table := newTagTable()

	first := Tag{RSSI: -50, EPC: [12]byte{0x01}}
	dupe := Tag{RSSI: -90, EPC: [12]byte{0x01}}
	other := Tag{RSSI: -55, EPC: [12]byte{0x02}}

	assert.True(t, table.insertIfNew(first))
	assert.False(t, table.insertIfNew(dupe), "same EPC must not create a second record")
	assert.True(t, table.insertIfNew(other))
	assert.Equal(t, 2, table.count())

	// The first sighting's RSSI survives the duplicate.
	tags := table.snapshot()
	assert.Equal(t, int8(-50), tags[0].RSSI)
}

func TestTagTable_Reset(t *testing.T) {
	t.Parallel()
	table := newTagTable()
	table.insertIfNew(Tag{EPC: [12]byte{0x01}})

	table.reset()
	table.reset() // safe to repeat
	assert.Equal(t, 0, table.count())

	// A reset table accepts previously seen EPCs again.
	assert.True(t, table.insertIfNew(Tag{EPC: [12]byte{0x01}}))
}

func TestTagTable_Capacity(t *testing.T) {
	t.Parallel()
	table := newTagTable()

	for i := 0; i < MaxTags; i++ {
		tag := Tag{EPC: [12]byte{byte(i >> 8), byte(i)}}
		assert.True(t, table.insertIfNew(tag))
	}
	assert.True(t, table.full())
	assert.Equal(t, MaxTags, table.count())

	overflow := Tag{EPC: [12]byte{0xFF, 0xFF, 0xFF}}
	assert.False(t, table.insertIfNew(overflow))
	assert.Equal(t, MaxTags, table.count())
}

func TestTagTable_SnapshotIsACopy(t *testing.T) {
	t.Parallel()
	table := newTagTable()
	table.insertIfNew(Tag{RSSI: -50, EPC: [12]byte{0x01}})

	snap := table.snapshot()
	snap[0].RSSI = 0

	assert.Equal(t, int8(-50), table.snapshot()[0].RSSI)
}
