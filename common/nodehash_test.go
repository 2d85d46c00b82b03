// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-ethereum.  If not, see <http://www.gnu.org/licenses/>.

package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexToNodeHashRoundTrip(t *testing.T) {
	const hex40 = "0102030405060708090a0b0c0d0e0f1011121314"
	h, err := HexToNodeHash(hex40)
	require.NoError(t, err)
	require.Equal(t, hex40, h.Hex())

	h2, err := HexToNodeHash("0x" + hex40)
	require.NoError(t, err)
	require.Equal(t, h, h2)
}

func TestHexToNodeHashRejectsWrongLength(t *testing.T) {
	_, err := HexToNodeHash("abcd")
	require.Error(t, err)
}

func TestNodeHashCmpOrdersByByteValue(t *testing.T) {
	low := MustHexToNodeHash("0000000000000000000000000000000000000001")
	high := MustHexToNodeHash("0000000000000000000000000000000000000002")
	require.Equal(t, -1, low.Cmp(high))
	require.Equal(t, 1, high.Cmp(low))
	require.Equal(t, 0, low.Cmp(low))
}

func TestHashGenLessOrdersByGenerationDescThenHashAsc(t *testing.T) {
	low := MustHexToNodeHash("0000000000000000000000000000000000000001")
	high := MustHexToNodeHash("0000000000000000000000000000000000000002")

	a := HashGen{Hash: low, Generation: 5}
	b := HashGen{Hash: high, Generation: 5}
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))

	c := HashGen{Hash: high, Generation: 10}
	d := HashGen{Hash: low, Generation: 3}
	require.True(t, c.Less(d))
}
