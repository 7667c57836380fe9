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

package uart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uhf "github.com/ZaparooProject/go-uhf"
)

func TestNew_NonexistentPort(t *testing.T) {
	t.Parallel()
	_, err := New("/dev/nonexistent-uhf-port")
	require.Error(t, err)

	var te *uhf.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "open", te.Op)
	assert.Equal(t, "/dev/nonexistent-uhf-port", te.Port)
	assert.False(t, te.Retryable)
}

func TestNewWithBaudRate_InvalidRate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		baud int
	}{
		{name: "zero", baud: 0},
		{name: "negative", baud: -9600},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewWithBaudRate("/dev/ttyUSB0", tt.baud)
			require.Error(t, err)
			assert.True(t, errors.Is(err, uhf.ErrInvalidParameter))
		})
	}
}

func TestTransport_Type(t *testing.T) {
	t.Parallel()
	var tr Transport
	assert.Equal(t, uhf.TransportUART, tr.Type())
}

func TestTransport_CloseWhenNotConnected(t *testing.T) {
	t.Parallel()
	var tr Transport
	require.NoError(t, tr.Close())
	assert.False(t, tr.IsConnected())
}
