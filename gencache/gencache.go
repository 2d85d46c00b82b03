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

// Package gencache memoises node generations (spec.md §4.2). A single
// Cache is shared by reference across every operator in a query; it
// outlives all of them.
package gencache

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/log"
	"github.com/revsetgraph/core/repository"
	"github.com/revsetgraph/core/revseterrors"
)

// Cache memoises hash -> generation lookups with a bounded-capacity
// LRU and coalesces concurrent lookups for the same missing hash into
// a single underlying repository walk.
type Cache struct {
	lru     *lru.Cache
	flight  singleflight.Group
	onEntry func(hash common.NodeHash, gen common.Generation)

	hits   func()
	misses func()
}

// New returns a Cache backed by an LRU of the given capacity. A small
// integer capacity is acceptable per spec.md §4.2; New panics if
// capacity is not positive, matching the underlying LRU's own
// contract.
func New(capacity int) *Cache {
	c, err := lru.New(capacity)
	if err != nil {
		panic(err)
	}
	return &Cache{lru: c}
}

// OnComputed registers a callback invoked every time this cache
// computes (rather than reuses) a generation. Used by revsetmetrics
// and by tests asserting single-flight coalescing; nil by default.
func (c *Cache) OnComputed(fn func(hash common.NodeHash, gen common.Generation)) {
	c.onEntry = fn
}

// SetCounters wires hit/miss callbacks, used by revsetmetrics to
// expose Prometheus counters without gencache importing metrics
// itself.
func (c *Cache) SetCounters(hits, misses func()) {
	c.hits, c.misses = hits, misses
}

// Get resolves the generation of hash, using the cache if possible and
// the repository otherwise. Concurrent calls for the same hash that is
// not yet cached share one underlying computation.
func (c *Cache) Get(ctx context.Context, repo repository.Repository, hash common.NodeHash) (common.Generation, error) {
	if v, ok := c.lru.Get(hash); ok {
		if c.hits != nil {
			c.hits()
		}
		return v.(common.Generation), nil
	}
	if c.misses != nil {
		c.misses()
	}

	v, err, _ := c.flight.Do(hash.Hex(), func() (interface{}, error) {
		// Re-check: another goroutine may have populated the entry
		// between our initial Get and acquiring the flight key.
		if v, ok := c.lru.Get(hash); ok {
			return v.(common.Generation), nil
		}
		gen, err := c.compute(ctx, repo, hash)
		if err != nil {
			return common.Generation(0), err
		}
		c.lru.Add(hash, gen)
		if c.onEntry != nil {
			c.onEntry(hash, gen)
		}
		log.Trace("computed node generation", "hash", hash, "generation", gen)
		return gen, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(common.Generation), nil
}

// compute resolves the generation of hash by fetching its changeset
// and recursing on its parents, memoising every intermediate result
// via Get so that a wide DAG is only ever walked once per hash,
// whichever operator asks for it first. Recursion depth is bounded by
// DAG depth, matching the repository's immutability guarantee that a
// commit's ancestry never changes shape after creation.
func (c *Cache) compute(ctx context.Context, repo repository.Repository, hash common.NodeHash) (common.Generation, error) {
	cs, err := repo.ChangesetByHash(ctx, hash)
	if err != nil {
		return 0, revseterrors.NewGenerationFetchFailed(hash, revseterrors.NewRepoError(hash, err))
	}
	parents := cs.Parents()
	if len(parents) == 0 {
		return 0, nil
	}
	var max common.Generation
	for _, p := range parents {
		gen, err := c.Get(ctx, repo, p)
		if err != nil {
			return 0, revseterrors.NewGenerationFetchFailed(hash, err)
		}
		if gen > max {
			max = gen
		}
	}
	return max + 1, nil
}

// Len returns the number of entries currently cached, for tests and
// metrics.
func (c *Cache) Len() int { return c.lru.Len() }
