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

// Package polling provides continuous inventory monitoring on top of the
// driver, with arrival/departure tracking and a retry policy for transient
// transport errors. This is the application-side loop the driver itself
// deliberately does not contain.
package polling

import "time"

// Config configures a Monitor
type Config struct {
	// PollInterval is the pause between inventory cycles
	PollInterval time.Duration
	// DepartureTimeout is how long a tag may go unseen before it is
	// reported departed
	DepartureTimeout time.Duration
	// MaxRetries bounds transient-error retries within one cycle
	MaxRetries int
	// RetryDelay paces those retries
	RetryDelay time.Duration
}

// DefaultConfig returns the default monitor configuration
func DefaultConfig() *Config {
	return &Config{
		PollInterval:     200 * time.Millisecond,
		DepartureTimeout: 2 * time.Second,
		MaxRetries:       2,
		RetryDelay:       100 * time.Millisecond,
	}
}
