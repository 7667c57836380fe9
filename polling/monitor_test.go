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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uhf "github.com/ZaparooProject/go-uhf"
	"github.com/ZaparooProject/go-uhf/internal/frame"
	uhftest "github.com/ZaparooProject/go-uhf/internal/testing"
)

func newTestMonitor(t *testing.T) (*Monitor, *uhf.MockTransport) {
	t.Helper()
	mock := uhf.NewMockTransport()

	device, err := uhf.New(mock, uhf.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	config := &Config{
		PollInterval:     10 * time.Millisecond,
		DepartureTimeout: 60 * time.Millisecond,
		MaxRetries:       1,
		RetryDelay:       5 * time.Millisecond,
	}
	return NewMonitor(device, config), mock
}

func TestMonitor_ArrivalAndDeparture(t *testing.T) {
	t.Parallel()
	monitor, mock := newTestMonitor(t)
	mock.SetResponses(frame.CmdPollSingle,
		uhftest.BuildInventoryNotice(0xC3, uhftest.TestPC, uhftest.TestEPC1),
		uhftest.BuildNoTagResponse(),
	)

	arrived := make(chan uhf.Tag, 8)
	departed := make(chan uhf.Tag, 8)
	monitor.OnTagArrived = func(tag uhf.Tag) { arrived <- tag }
	monitor.OnTagDeparted = func(tag uhf.Tag) { departed <- tag }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- monitor.Start(ctx) }()

	select {
	case tag := <-arrived:
		assert.Equal(t, uhftest.TestEPC1, tag.EPC)
		assert.Equal(t, -61, tag.RSSIdBm())
	case <-time.After(2 * time.Second):
		t.Fatal("tag never arrived")
	}

	// The tag leaves the field; only the no-tag signature remains.
	mock.SetResponses(frame.CmdPollSingle, uhftest.BuildNoTagResponse())

	select {
	case tag := <-departed:
		assert.Equal(t, uhftest.TestEPC1, tag.EPC)
	case <-time.After(2 * time.Second):
		t.Fatal("tag never departed")
	}

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

func TestMonitor_ArrivalFiresOnce(t *testing.T) {
	t.Parallel()
	monitor, mock := newTestMonitor(t)
	mock.SetResponses(frame.CmdPollSingle,
		uhftest.BuildInventoryNotice(0xC3, uhftest.TestPC, uhftest.TestEPC1),
		uhftest.BuildNoTagResponse(),
	)

	arrived := make(chan uhf.Tag, 8)
	cycles := make(chan int, 64)
	monitor.OnTagArrived = func(tag uhf.Tag) { arrived <- tag }
	monitor.OnCycle = func(count int) { cycles <- count }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- monitor.Start(ctx) }()

	// Wait until the tag has been seen across several cycles.
	seen := 0
	for seen < 5 {
		select {
		case count := <-cycles:
			if count == 1 {
				seen++
			}
		case <-time.After(2 * time.Second):
			t.Fatal("cycles stopped")
		}
	}
	cancel()
	<-done

	assert.Len(t, arrived, 1, "a tag that stays put must arrive exactly once")
	assert.Len(t, monitor.Present(), 1)
}

func TestMonitor_SkipsCycleOnExhaustedRetries(t *testing.T) {
	t.Parallel()
	monitor, mock := newTestMonitor(t)
	mock.SetError(frame.CmdPollSingle, uhf.ErrTransportWrite)

	arrived := make(chan uhf.Tag, 8)
	monitor.OnTagArrived = func(tag uhf.Tag) { arrived <- tag }

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	err := monitor.Start(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	// Failed cycles are retried and then skipped, never surfaced as a
	// monitor failure.
	assert.Empty(t, arrived)
	assert.Greater(t, mock.GetCallCount(frame.CmdPollSingle), 2)
}

func TestMonitor_Close(t *testing.T) {
	t.Parallel()
	monitor, mock := newTestMonitor(t)

	require.NoError(t, monitor.Close())
	assert.False(t, mock.IsConnected())
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	assert.Positive(t, config.PollInterval)
	assert.Positive(t, config.DepartureTimeout)
	assert.Positive(t, config.MaxRetries)
}
