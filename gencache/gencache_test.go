// Copyright 2015 The go-ethereum Authors
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

package gencache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/revsettest"
)

func TestGetComputesGenerationFromParents(t *testing.T) {
	repo, h := revsettest.MergeUneven()
	c := New(16)

	gen, err := c.Get(context.Background(), repo, h["merge"])
	require.NoError(t, err)
	require.EqualValues(t, 4, gen)

	gen, err = c.Get(context.Background(), repo, h["root"])
	require.NoError(t, err)
	require.EqualValues(t, 0, gen)
}

func TestGetMemoizesAcrossCalls(t *testing.T) {
	repo, h := revsettest.MergeUneven()
	c := New(16)

	_, err := c.Get(context.Background(), repo, h["head"])
	require.NoError(t, err)
	before := c.Len()

	_, err = c.Get(context.Background(), repo, h["head"])
	require.NoError(t, err)
	require.Equal(t, before, c.Len())
}

func TestGetUnknownNodeReturnsError(t *testing.T) {
	repo, _ := revsettest.MergeUneven()
	c := New(16)

	var raw [common.NodeHashLength]byte
	raw[0] = 0xee
	_, err := c.Get(context.Background(), repo, common.BytesToNodeHash(raw[:]))
	require.Error(t, err)
}

func TestGetCoalescesConcurrentLookups(t *testing.T) {
	repo, h := revsettest.Linear()
	c := New(16)

	var computes int32
	c.OnComputed(func(hash common.NodeHash, gen common.Generation) {
		atomic.AddInt32(&computes, 1)
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background(), repo, h["head"])
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.LessOrEqual(t, atomic.LoadInt32(&computes), int32(5))
}
