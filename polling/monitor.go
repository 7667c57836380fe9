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

package polling

import (
	"context"
	"errors"
	"fmt"
	"time"

	uhf "github.com/ZaparooProject/go-uhf"
	"github.com/ZaparooProject/go-uhf/internal/transport"
)

// presence tracks one tag currently considered in the field
type presence struct {
	tag      uhf.Tag
	lastSeen time.Time
}

// Monitor runs continuous inventory cycles and reports tag arrivals and
// departures. Callbacks run on the monitor's goroutine; keep them short.
type Monitor struct {
	device *uhf.Device
	config *Config

	// OnTagArrived fires the first time a tag shows up in the field
	OnTagArrived func(tag uhf.Tag)
	// OnTagDeparted fires after a tag goes unseen for DepartureTimeout
	OnTagDeparted func(tag uhf.Tag)
	// OnCycle fires after every inventory cycle with the tag count
	OnCycle func(count int)

	present map[string]*presence
}

// NewMonitor creates a new inventory monitor
func NewMonitor(device *uhf.Device, config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Monitor{
		device:  device,
		config:  config,
		present: make(map[string]*presence),
	}
}

// Device returns the underlying reader device
func (m *Monitor) Device() *uhf.Device {
	return m.device
}

// Present returns the tags currently considered in the field
func (m *Monitor) Present() []uhf.Tag {
	tags := make([]uhf.Tag, 0, len(m.present))
	for _, p := range m.present {
		tags = append(tags, p.tag)
	}
	return tags
}

// Start runs inventory cycles until ctx is done or a permanent error
// occurs. Transient transport errors are retried within a cycle and then
// skipped until the next cycle.
func (m *Monitor) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		count, err := m.pollCycle(ctx)
		switch {
		case err == nil:
			m.processCycle()
			if m.OnCycle != nil {
				m.OnCycle(count)
			}
		case errors.Is(err, ctx.Err()) && ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(err, uhf.ErrCommunicationFailed):
			// Retries exhausted this cycle; try again next cycle.
		default:
			return fmt.Errorf("inventory cycle: %w", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.config.PollInterval):
		}
	}
}

// Close releases the monitor and its device
func (m *Monitor) Close() error {
	if err := m.device.Close(); err != nil {
		return fmt.Errorf("failed to close device: %w", err)
	}
	return nil
}

// pollCycle runs one inventory round, retrying transient failures
func (m *Monitor) pollCycle(ctx context.Context) (int, error) {
	return transport.WithRetry(transport.RetryConfig{
		Description: "inventory",
		MaxRetries:  m.config.MaxRetries,
		RetryDelay:  m.config.RetryDelay,
	}, func() (int, bool, error) {
		count, err := m.device.PollOnceContext(ctx)
		if err != nil {
			if uhf.IsRetryable(err) && ctx.Err() == nil {
				return 0, true, nil
			}
			return 0, false, err
		}
		return count, false, nil
	})
}

// processCycle folds the scan results into the presence map and fires
// arrival/departure callbacks
func (m *Monitor) processCycle() {
	now := time.Now()

	for _, tag := range m.device.Tags() {
		key := tag.EPCHex()
		if p, ok := m.present[key]; ok {
			p.lastSeen = now
			p.tag = tag
			continue
		}
		m.present[key] = &presence{tag: tag, lastSeen: now}
		if m.OnTagArrived != nil {
			m.OnTagArrived(tag)
		}
	}

	for key, p := range m.present {
		if now.Sub(p.lastSeen) <= m.config.DepartureTimeout {
			continue
		}
		delete(m.present, key)
		if m.OnTagDeparted != nil {
			m.OnTagDeparted(p.tag)
		}
	}
}
