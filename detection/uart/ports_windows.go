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

//go:build windows

package uart

import (
	"fmt"

	"github.com/ZaparooProject/go-uhf/detection"
	"golang.org/x/sys/windows/registry"
)

// platformSerialPorts lists COM ports from the registry's SERIALCOMM map.
// Some USB bridge drivers register here but are missed by SetupAPI-based
// enumeration, so this backfills the enumerator's results.
func platformSerialPorts() ([]detection.DeviceInfo, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`HARDWARE\DEVICEMAP\SERIALCOMM`, registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("open SERIALCOMM registry key: %w", err)
	}
	defer func() { _ = key.Close() }()

	names, err := key.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("read SERIALCOMM value names: %w", err)
	}

	var devices []detection.DeviceInfo
	for _, name := range names {
		port, _, err := key.GetStringValue(name)
		if err != nil || port == "" {
			continue
		}
		devices = append(devices, detection.DeviceInfo{
			Path:      port,
			Name:      port,
			Transport: "uart",
		})
	}

	return devices, nil
}
