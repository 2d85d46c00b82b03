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
	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/repository"
)

// drain pulls every remaining hash out of s, failing the test on error.
func drain(t *testing.T, s NodeStream) []common.NodeHash {
	t.Helper()
	var out []common.NodeHash
	for {
		h, ok, err := s.Next(context.Background())
		require.NoError(t, err)
		if !ok {
			return out
		}
		out = append(out, h)
	}
}

func requireDescendingGenerations(t *testing.T, cache *gencache.Cache, repo repository.Repository, hashes []common.NodeHash) {
	t.Helper()
	var last *common.Generation
	for _, h := range hashes {
		gen, err := cache.Get(context.Background(), repo, h)
		require.NoError(t, err)
		if last != nil {
			require.GreaterOrEqual(t, *last, gen, "output must be non-increasing in generation")
		}
		g := gen
		last = &g
	}
}

func requireNoDuplicates(t *testing.T, hashes []common.NodeHash) {
	t.Helper()
	seen := map[common.NodeHash]bool{}
	for _, h := range hashes {
		require.False(t, seen[h], "duplicate hash %s in output", h)
		seen[h] = true
	}
}
