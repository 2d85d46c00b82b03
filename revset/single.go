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

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/repository"
	"github.com/revsetgraph/core/revseterrors"
)

// singleNodeHash is the leaf stream of the algebra (spec.md §4.3): it
// yields exactly one hash, provided the repository actually has it.
type singleNodeHash struct {
	hash    common.NodeHash
	repo    repository.Repository
	emitted bool
	err     error
}

// NewSingleNodeHash returns a NodeStream that yields hash once,
// provided repo has a changeset for it, then ends.
func NewSingleNodeHash(repo repository.Repository, hash common.NodeHash) NodeStream {
	return &singleNodeHash{hash: hash, repo: repo}
}

func (s *singleNodeHash) Next(ctx context.Context) (common.NodeHash, bool, error) {
	if s.err != nil {
		return common.NodeHash{}, false, s.err
	}
	if s.emitted {
		return common.NodeHash{}, false, nil
	}
	s.emitted = true
	if _, err := s.repo.ChangesetByHash(ctx, s.hash); err != nil {
		s.err = revseterrors.NewRepoError(s.hash, err)
		return common.NodeHash{}, false, s.err
	}
	return s.hash, true, nil
}
