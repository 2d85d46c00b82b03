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
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/sync/errgroup"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/repository"
)

// unionInput tracks one sub-stream's place in the merge: either it has
// a resolved head waiting to be matched against the current
// generation band, it has signalled end-of-stream (done), or it has
// poisoned itself (err).
type unionInput struct {
	stream *genStream
	head   *common.HashGen
	done   bool
	err    error
}

// UnionNodeStream merges N input streams into one, emitting each
// distinct hash exactly once in strict descending-generation order
// (spec.md §4.4).
type UnionNodeStream struct {
	inputs            []*unionInput
	currentGeneration *common.Generation
	accumulator       mapset.Set[common.NodeHash]
	drain             []common.NodeHash
	err               error
}

// NewUnion returns the deduplicated, descending-generation merge of
// inputs. An empty inputs list yields end-of-stream immediately.
func NewUnion(repo repository.Repository, cache *gencache.Cache, inputs ...NodeStream) NodeStream {
	u := &UnionNodeStream{accumulator: mapset.NewThreadUnsafeSet[common.NodeHash]()}
	for _, in := range inputs {
		u.inputs = append(u.inputs, &unionInput{stream: newGenStream(in, cache, repo)})
	}
	return u
}

// Next implements NodeStream.
func (u *UnionNodeStream) Next(ctx context.Context) (common.NodeHash, bool, error) {
	if u.err != nil {
		return common.NodeHash{}, false, u.err
	}
	for {
		// Drive every input that doesn't currently have a resolved
		// head. Each input's own generation lookup and repository
		// call may block, but distinct inputs are driven concurrently
		// so one slow input does not serialize behind another.
		u.fillHeads(ctx)

		if len(u.drain) > 0 {
			h := u.drain[0]
			u.drain = u.drain[1:]
			return h, true, nil
		}

		if errIn := u.firstError(); errIn != nil {
			u.err = errIn
			return common.NodeHash{}, false, errIn
		}

		u.gcFinished()

		switch {
		case u.currentGeneration == nil && u.accumulator.Cardinality() == 0:
			if gen, ok := u.maxHeadGeneration(); ok {
				u.currentGeneration = &gen
			}
		case u.currentGeneration == nil:
			u.freezeAccumulator()
		default:
			if !u.accumulateBand() {
				u.currentGeneration = nil
			}
		}

		if len(u.inputs) == 0 && len(u.drain) == 0 && u.accumulator.Cardinality() == 0 {
			return common.NodeHash{}, false, nil
		}
	}
}

func (u *UnionNodeStream) fillHeads(ctx context.Context) {
	var g errgroup.Group
	var mu sync.Mutex
	for _, in := range u.inputs {
		in := in
		if in.head != nil || in.done || in.err != nil {
			continue
		}
		g.Go(func() error {
			hg, ok, err := in.stream.next(ctx)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				in.err = err
			case !ok:
				in.done = true
			default:
				in.head = &hg
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (u *UnionNodeStream) firstError() error {
	for _, in := range u.inputs {
		if in.err != nil {
			return in.err
		}
	}
	return nil
}

func (u *UnionNodeStream) gcFinished() {
	live := u.inputs[:0]
	for _, in := range u.inputs {
		if !in.done {
			live = append(live, in)
		}
	}
	u.inputs = live
}

func (u *UnionNodeStream) maxHeadGeneration() (common.Generation, bool) {
	var max common.Generation
	found := false
	for _, in := range u.inputs {
		if in.head == nil {
			continue
		}
		if !found || in.head.Generation > max {
			max = in.head.Generation
			found = true
		}
	}
	return max, found
}

// accumulateBand moves every input whose head is at the current
// generation into the accumulator, freeing those inputs to be
// re-polled for their next hash. It reports whether any input
// contributed, closing the band when none did.
func (u *UnionNodeStream) accumulateBand() bool {
	contributed := false
	for _, in := range u.inputs {
		if in.head != nil && in.head.Generation == *u.currentGeneration {
			contributed = true
			u.accumulator.Add(in.head.Hash)
			in.head = nil
		}
	}
	return contributed
}

func (u *UnionNodeStream) freezeAccumulator() {
	u.drain = u.accumulator.ToSlice()
	sort.Slice(u.drain, func(i, j int) bool { return u.drain[i].Cmp(u.drain[j]) < 0 })
	u.accumulator = mapset.NewThreadUnsafeSet[common.NodeHash]()
}
