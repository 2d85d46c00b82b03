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
	"sort"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/repository"
	"github.com/revsetgraph/core/revseterrors"
)

// NewIntersect returns a NodeStream of the hashes present in every
// input, each exactly once, in descending-generation order
// (spec.md §4.6). Listed there "for completeness" alongside Difference
// and Ancestors: built on the same generation-banded membership check
// as Difference rather than as a bespoke algorithm.
//
// Fewer than two inputs degenerates sensibly: zero inputs is empty,
// one input passes through unchanged.
func NewIntersect(repo repository.Repository, cache *gencache.Cache, inputs ...NodeStream) NodeStream {
	if len(inputs) == 0 {
		return emptyStream{}
	}
	if len(inputs) == 1 {
		return inputs[0]
	}
	return newMembershipFiltered(repo, cache, inputs[0], inputs[1:], func(memberships, total int) bool {
		return memberships == total
	})
}

// NewDifference returns a NodeStream of the hashes present in minuend
// that are absent from every subtrahend, preserving
// descending-generation order (spec.md §4.6).
func NewDifference(repo repository.Repository, cache *gencache.Cache, minuend NodeStream, subtrahends ...NodeStream) NodeStream {
	if len(subtrahends) == 0 {
		return minuend
	}
	return newMembershipFiltered(repo, cache, minuend, subtrahends, func(memberships, total int) bool {
		return memberships == 0
	})
}

// NewAncestors returns every proper ancestor of start, in
// descending-generation order (spec.md §4.6): an unbounded backward
// walk along parent edges, the same shape as Range's Stage 1 but
// without a lower generation bound and never emitting start itself.
func NewAncestors(repo repository.Repository, cache *gencache.Cache, start common.NodeHash) NodeStream {
	return &ancestorsNodeStream{repo: repo, cache: cache, start: start}
}

// ancestorsNodeStream performs the same backward BFS as Stage 1 of
// Range, but without a lower generation bound, and emits every node
// touched except start itself.
type ancestorsNodeStream struct {
	repo  repository.Repository
	cache *gencache.Cache
	start common.NodeHash

	built bool
	err   error
	byGen map[common.Generation][]common.NodeHash
	gens  []common.Generation
	drain []common.NodeHash
}

func (a *ancestorsNodeStream) Next(ctx context.Context) (common.NodeHash, bool, error) {
	if a.err != nil {
		return common.NodeHash{}, false, a.err
	}
	if !a.built {
		if err := a.build(ctx); err != nil {
			a.err = err
			return common.NodeHash{}, false, err
		}
		a.built = true
	}
	for len(a.drain) == 0 {
		if len(a.gens) == 0 {
			return common.NodeHash{}, false, nil
		}
		gen := a.gens[0]
		a.gens = a.gens[1:]
		a.drain = a.byGen[gen]
		delete(a.byGen, gen)
	}
	h := a.drain[0]
	a.drain = a.drain[1:]
	return h, true, nil
}

func (a *ancestorsNodeStream) build(ctx context.Context) error {
	seen := map[common.NodeHash]bool{a.start: true}
	byGen := map[common.Generation][]common.NodeHash{}

	queue := []common.NodeHash{a.start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		cs, err := a.repo.ChangesetByHash(ctx, cur)
		if err != nil {
			return revseterrors.NewParentsFetchFailed(cur, revseterrors.NewRepoError(cur, err))
		}
		for _, parent := range cs.Parents() {
			if seen[parent] {
				continue
			}
			seen[parent] = true
			gen, err := a.cache.Get(ctx, a.repo, parent)
			if err != nil {
				return err
			}
			byGen[gen] = append(byGen[gen], parent)
			queue = append(queue, parent)
		}
	}

	a.byGen = byGen
	a.gens = make([]common.Generation, 0, len(byGen))
	for g := range byGen {
		a.gens = append(a.gens, g)
	}
	sortGensDescending(a.gens)
	return nil
}

// emptyStream is the zero-input identity for the set operators.
type emptyStream struct{}

func (emptyStream) Next(ctx context.Context) (common.NodeHash, bool, error) {
	return common.NodeHash{}, false, nil
}

// membershipFilter drives a primary stream alongside a set of other
// streams banded by generation, the way Union bands its inputs, and
// emits a primary hash only when its count of matches among the other
// streams' same-generation heads satisfies predicate. Intersect uses
// memberships == total, Difference uses memberships == 0.
//
// Correctness relies on every stream sharing the same generation
// function for a given hash: if a hash appears in another stream at
// all, it surfaces in that stream's output at the same generation the
// primary sees it at. Since an other stream's head can sit at a
// generation above primary's current one (its own descending sequence
// hasn't caught up yet), each round merge-joins every other stream
// forward past any generation primary has already moved beyond, the
// same catch-up Union's own band merge performs across N inputs.
type membershipFilter struct {
	primary     *genStream
	primaryHead *common.HashGen
	primaryDone bool

	others     []*genStream
	otherHeads []*common.HashGen
	otherDone  []bool

	predicate func(memberships, total int) bool

	drain []common.NodeHash
	err   error
}

func newMembershipFiltered(repo repository.Repository, cache *gencache.Cache, primary NodeStream, others []NodeStream, predicate func(int, int) bool) NodeStream {
	m := &membershipFilter{
		primary:   newGenStream(primary, cache, repo),
		predicate: predicate,
	}
	for _, o := range others {
		m.others = append(m.others, newGenStream(o, cache, repo))
	}
	m.otherHeads = make([]*common.HashGen, len(m.others))
	m.otherDone = make([]bool, len(m.others))
	return m
}

func (m *membershipFilter) Next(ctx context.Context) (common.NodeHash, bool, error) {
	if m.err != nil {
		return common.NodeHash{}, false, m.err
	}
	for {
		if len(m.drain) > 0 {
			h := m.drain[0]
			m.drain = m.drain[1:]
			return h, true, nil
		}

		if m.primaryHead == nil && !m.primaryDone {
			hg, ok, err := m.primary.next(ctx)
			if err != nil {
				m.err = err
				return common.NodeHash{}, false, err
			}
			if !ok {
				m.primaryDone = true
			} else {
				m.primaryHead = &hg
			}
		}

		if m.primaryDone && m.primaryHead == nil {
			return common.NodeHash{}, false, nil
		}

		currentGen := m.primaryHead.Generation
		memberships := 0
		for i := range m.others {
			if err := m.catchUpOther(ctx, i, currentGen); err != nil {
				m.err = err
				return common.NodeHash{}, false, err
			}
			if oh := m.otherHeads[i]; oh != nil && oh.Generation == currentGen {
				if oh.Hash == m.primaryHead.Hash {
					memberships++
				}
				m.otherHeads[i] = nil
			}
		}

		if m.predicate(memberships, len(m.others)) {
			m.drain = append(m.drain, m.primaryHead.Hash)
		}
		m.primaryHead = nil
	}
}

// catchUpOther advances the i'th other stream until its head is at a
// generation no higher than currentGen, discarding any heads above it
// along the way: those belong to generations primary has already
// passed and can never match a later primary head (output is strictly
// descending), so leaving them in place would permanently wedge the
// stream behind primary instead of merge-joining forward.
func (m *membershipFilter) catchUpOther(ctx context.Context, i int, currentGen common.Generation) error {
	for {
		if m.otherHeads[i] == nil {
			if m.otherDone[i] {
				return nil
			}
			hg, ok, err := m.others[i].next(ctx)
			if err != nil {
				return err
			}
			if !ok {
				m.otherDone[i] = true
				return nil
			}
			m.otherHeads[i] = &hg
		}
		if m.otherHeads[i].Generation > currentGen {
			m.otherHeads[i] = nil
			continue
		}
		return nil
	}
}

func sortGensDescending(gens []common.Generation) {
	sort.Slice(gens, func(i, j int) bool { return gens[i] > gens[j] })
}
