// Copyright 2017 The go-ethereum Authors
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

package revset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/revsettest"
)

func TestSingleNodeHashEmitsOnceThenEnds(t *testing.T) {
	repo, h := revsettest.Linear()
	s := NewSingleNodeHash(repo, h["c2"])

	hash, ok, err := s.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, h["c2"], hash)

	_, ok, err = s.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSingleNodeHashUnknownNodeErrors(t *testing.T) {
	repo, _ := revsettest.Linear()
	var raw [common.NodeHashLength]byte
	for i := range raw {
		raw[i] = 0xff
	}
	unknown := common.BytesToNodeHash(raw[:])
	s := NewSingleNodeHash(repo, unknown)

	_, ok, err := s.Next(context.Background())
	require.Error(t, err)
	require.False(t, ok)

	// poisoned: subsequent calls return the same error.
	_, ok, err2 := s.Next(context.Background())
	require.False(t, ok)
	require.Equal(t, err, err2)
}
