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
	"time"

	"github.com/ZaparooProject/go-uhf/internal/frame"
)

// PollOnce runs a single inventory round. The tag registry is cleared
// first; each tag the module reports is deduplicated by EPC and stored.
// Returns the number of distinct tags discovered; read them with Tags.
func (d *Device) PollOnce() (int, error) {
	return d.PollOnceContext(context.Background())
}

// PollOnceContext runs a single inventory round bounded by ctx
func (d *Device) PollOnceContext(ctx context.Context) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	cmd, err := frame.Build(frame.CmdPollSingle, nil)
	if err != nil {
		return 0, fmt.Errorf("build poll command: %w", err)
	}
	return d.collectInventory(ctx, cmd, d.config.InventoryTimeout)
}

// PollMultiple runs count inventory rounds back to back and collects every
// distinct tag the module reports across them.
func (d *Device) PollMultiple(count uint16) (int, error) {
	return d.PollMultipleContext(context.Background(), count)
}

// PollMultipleContext runs count inventory rounds bounded by ctx
func (d *Device) PollMultipleContext(ctx context.Context, count uint16) (int, error) {
	if count == 0 {
		return 0, ErrInvalidParameter
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// Params: reserved 0x22, then the round count
	cmd, err := frame.Build(frame.CmdPollMulti, []byte{0x22, byte(count >> 8), byte(count)})
	if err != nil {
		return 0, fmt.Errorf("build poll command: %w", err)
	}

	overall := d.config.InventoryTimeout + time.Duration(count)*inventoryCycle
	return d.collectInventory(ctx, cmd, overall)
}

// collectInventory clears the registry, issues cmd, then loops collecting
// inventory notice frames until the module goes quiet (per-frame timeout),
// reports no more tags, the registry fills, or the overall cap elapses.
// The caller must hold d.mu.
func (d *Device) collectInventory(ctx context.Context, cmd []byte, overall time.Duration) (int, error) {
	d.tags.reset()

	if err := d.sendFrame(cmd); err != nil {
		return 0, err
	}

	deadline := time.Now().Add(overall)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return d.tags.count(), fmt.Errorf("inventory: %w", ctx.Err())
		default:
		}

		raw, err := d.waitFrame(ctx, d.config.Timeout)
		if err != nil {
			if errors.Is(err, ErrTransportTimeout) {
				// Module went quiet; the scan is over.
				return d.tags.count(), nil
			}
			if errors.Is(err, ErrFrameCorrupted) {
				// Line noise between notices; keep collecting.
				continue
			}
			return d.tags.count(), err
		}

		f, err := frame.Parse(raw)
		if err != nil {
			continue
		}

		if f.Type == frame.TypeResponse && f.Command == frame.CmdError {
			// The no-tag signature ends the scan; other error echoes are
			// skipped the same way the reference firmware skips them.
			if len(f.Params) > 0 && f.Params[0] == frame.ErrCodeInventoryFail {
				return d.tags.count(), nil
			}
			continue
		}

		tag, ok := parseInventoryNotice(f)
		if !ok {
			continue
		}

		if d.tags.full() {
			debugf("tag registry full at %d records, stopping scan", MaxTags)
			return MaxTags, nil
		}
		if d.tags.insertIfNew(tag) {
			debugf("tag %s rssi %d dBm", tag.EPCHex(), tag.RSSIdBm())
		}
	}

	return d.tags.count(), nil
}

// parseInventoryNotice decodes one inventory notice frame into a Tag.
// Parameter layout: RSSI(1) PC(2) EPC(12) EPC-CRC(2).
func parseInventoryNotice(f *frame.Frame) (Tag, bool) {
	if f.Type != frame.TypeNotice || f.Command != frame.CmdPollSingle {
		return Tag{}, false
	}
	if len(f.Params) != frame.InventoryParamLen {
		return Tag{}, false
	}

	var tag Tag
	tag.RSSI = int8(f.Params[0])
	copy(tag.PC[:], f.Params[1:3])
	copy(tag.EPC[:], f.Params[3:15])
	return tag, true
}
