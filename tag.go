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
	"encoding/hex"
)

// MaxTags is the fixed capacity of the tag registry for one inventory scan
const MaxTags = 200

// Tag is one discovered tag record from an inventory scan
type Tag struct {
	// RSSI is the received signal strength in dBm
	RSSI int8
	// PC is the tag's Protocol Control word
	PC [2]byte
	// EPC is the tag's Electronic Product Code, its identity key
	EPC [12]byte
}

// EPCHex returns the EPC as a lower-case hex string
func (t *Tag) EPCHex() string {
	return hex.EncodeToString(t.EPC[:])
}

// PCHex returns the Protocol Control word as a lower-case hex string
func (t *Tag) PCHex() string {
	return hex.EncodeToString(t.PC[:])
}

// RSSIdBm returns the signal strength as a plain int
func (t *Tag) RSSIdBm() int {
	return int(t.RSSI)
}

// SignalQuality buckets the tag's RSSI into a human-readable rating
func (t *Tag) SignalQuality() string {
	switch rssi := t.RSSIdBm(); {
	case rssi > -50:
		return "Excellent"
	case rssi > -65:
		return "Good"
	case rssi > -75:
		return "Fair"
	default:
		return "Weak"
	}
}

// tagTable is the fixed-capacity registry of tags seen in the current scan.
// It only ever reflects the most recent inventory operation.
type tagTable struct {
	tags []Tag
}

func newTagTable() *tagTable {
	return &tagTable{tags: make([]Tag, 0, MaxTags)}
}

// reset clears all slots; safe to call repeatedly
func (t *tagTable) reset() {
	t.tags = t.tags[:0]
}

// insertIfNew stores tag in the next free slot unless a record with the
// same EPC byte sequence already exists. The first sighting wins; later
// duplicates (even with a different RSSI) are dropped.
func (t *tagTable) insertIfNew(tag Tag) bool {
	for i := range t.tags {
		if bytes.Equal(t.tags[i].EPC[:], tag.EPC[:]) {
			return false
		}
	}
	if len(t.tags) >= MaxTags {
		return false
	}
	t.tags = append(t.tags, tag)
	return true
}

// full reports whether the registry hit its capacity
func (t *tagTable) full() bool {
	return len(t.tags) >= MaxTags
}

// count returns the number of stored records
func (t *tagTable) count() int {
	return len(t.tags)
}

// snapshot returns a copy of the stored records
func (t *tagTable) snapshot() []Tag {
	out := make([]Tag, len(t.tags))
	copy(out, t.tags)
	return out
}
