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

// Package repository defines the capability set the revset core
// consumes (spec.md §4.1, §6): looking up a changeset by hash and
// reading its parents. Everything else a production repository needs
// — blob storage, bookmarks, the bundle wire format — lives outside
// this module.
package repository

import (
	"context"
	"errors"

	"github.com/revsetgraph/core/common"
)

// Failure kinds a Repository surfaces through ChangesetByHash. These
// are sentinel causes; callers compare with errors.Is, and the revset
// core wraps whichever one occurs in a revseterrors.RepoError before
// returning it to its own caller.
var (
	ErrUnknownNode = errors.New("unknown node")
	ErrIO          = errors.New("repository i/o error")
	ErrCorrupt     = errors.New("corrupt changeset data")
)

// Changeset is the minimal view the revset core needs of a revision:
// its parents, 0 to 2 of them, in a stable order.
type Changeset interface {
	Parents() []common.NodeHash
}

// Repository is the abstract provider of changesets that every
// operator in this module is built against. Implementations must be
// safe for concurrent use: operators may issue overlapping lookups for
// distinct hashes, and the generation cache coalesces concurrent
// lookups for the same hash but does not serialize lookups for
// different ones.
type Repository interface {
	ChangesetByHash(ctx context.Context, hash common.NodeHash) (Changeset, error)
}
