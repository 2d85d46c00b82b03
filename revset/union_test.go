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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/revsettest"
)

func TestUnionDeduplicatesOverlappingInputs(t *testing.T) {
	repo, h := revsettest.Linear()
	cache := gencache.New(16)

	a := NewSingleNodeHash(repo, h["c2"])
	b := NewSingleNodeHash(repo, h["c2"])
	c := NewSingleNodeHash(repo, h["head"])

	u := NewUnion(repo, cache, a, b, c)
	out := drain(t, u)

	requireNoDuplicates(t, out)
	require.ElementsMatch(t, []common.NodeHash{h["c2"], h["head"]}, out)
	requireDescendingGenerations(t, cache, repo, out)
}

func TestUnionOfEmptyInputsIsEmpty(t *testing.T) {
	repo, _ := revsettest.Linear()
	cache := gencache.New(16)

	u := NewUnion(repo, cache)
	out := drain(t, u)
	require.Empty(t, out)
}

func TestUnionOrdersBandsByDescendingGeneration(t *testing.T) {
	repo, h := revsettest.MergeUneven()
	cache := gencache.New(16)

	u := NewUnion(repo, cache,
		NewSingleNodeHash(repo, h["root"]),
		NewSingleNodeHash(repo, h["left2"]),
		NewSingleNodeHash(repo, h["head"]),
	)
	out := drain(t, u)
	require.Len(t, out, 3)
	requireDescendingGenerations(t, cache, repo, out)
	require.Equal(t, h["head"], out[0])
	require.Equal(t, h["root"], out[len(out)-1])
}
