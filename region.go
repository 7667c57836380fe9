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

// Region is a working region/frequency band code of the module
type Region byte

// Region codes understood by the module
const (
	RegionChina  Region = 0x01
	RegionUSA    Region = 0x02
	RegionEurope Region = 0x03
	RegionKorea  Region = 0x04
)

// regionNames maps region codes to display names with their frequency band
var regionNames = map[Region]string{
	RegionChina:  "CHINA (920–925 MHz)",
	RegionUSA:    "USA (902–928 MHz)",
	RegionEurope: "EUROPE (865–868 MHz)",
	RegionKorea:  "KOREA (917–923.5 MHz)",
}

// String returns the region's display name with its frequency band,
// or "UNKNOWN" for an unrecognized code.
func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return "UNKNOWN"
}

// Valid reports whether r is a region code the module accepts
func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}

// Membank selects a tag memory bank for read and write operations
type Membank byte

// EPC Gen2 tag memory banks
const (
	MembankReserved Membank = 0x00 // Kill and access passwords
	MembankEPC      Membank = 0x01 // PC + EPC
	MembankTID      Membank = 0x02 // Tag identifier (chip serial)
	MembankUser     Membank = 0x03 // User memory
)
