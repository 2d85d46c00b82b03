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

package revsetmetrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/revsettest"
)

func TestWireCacheCountsHitsAndMisses(t *testing.T) {
	repo, h := revsettest.MergeUneven()
	cache := gencache.New(16)
	c := NewCollector()
	c.WireCache(cache)

	_, err := cache.Get(context.Background(), repo, h["merge"])
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), repo, h["merge"])
	require.NoError(t, err)

	require.Greater(t, counterValue(t, c.CacheMisses), float64(0))
	require.Greater(t, counterValue(t, c.CacheHits), float64(0))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}
