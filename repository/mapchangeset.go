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

package repository

import (
	"context"
	"sync"

	"github.com/revsetgraph/core/common"
)

// SimpleChangeset is a Changeset backed by a plain parent slice.
type SimpleChangeset struct {
	ParentHashes []common.NodeHash
}

// Parents implements Changeset.
func (c SimpleChangeset) Parents() []common.NodeHash { return c.ParentHashes }

// MapRepository is an in-memory Repository backed by a map. It is the
// reference implementation used by tests, the fixture builder in
// revsettest, the CLI and the query service; nothing in the revset
// core depends on it directly.
type MapRepository struct {
	mu         sync.RWMutex
	changesets map[common.NodeHash]Changeset
}

// NewMapRepository returns an empty MapRepository.
func NewMapRepository() *MapRepository {
	return &MapRepository{changesets: make(map[common.NodeHash]Changeset)}
}

// Put registers the changeset for hash, overwriting any existing
// entry. It is not safe to call Put concurrently with ChangesetByHash
// lookups that might observe a half-written entry beyond what the
// mutex already serializes; callers should finish populating a
// MapRepository before sharing it across goroutines.
func (r *MapRepository) Put(hash common.NodeHash, cs Changeset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changesets[hash] = cs
}

// PutParents is a convenience wrapper around Put for the common case
// of registering a node by its parent hashes directly.
func (r *MapRepository) PutParents(hash common.NodeHash, parents ...common.NodeHash) {
	r.Put(hash, SimpleChangeset{ParentHashes: parents})
}

// ChangesetByHash implements Repository.
func (r *MapRepository) ChangesetByHash(ctx context.Context, hash common.NodeHash) (Changeset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	cs, ok := r.changesets[hash]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownNode
	}
	return cs, nil
}

// Has reports whether hash has a registered changeset.
func (r *MapRepository) Has(hash common.NodeHash) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.changesets[hash]
	return ok
}
