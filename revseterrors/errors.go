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

// Package revseterrors defines the three error kinds the revset core
// ever returns (spec.md §6, §7). Every other error a caller might see
// from this module is one of these three, possibly wrapping a
// repository-supplied cause.
package revseterrors

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/revsetgraph/core/common"
)

// RepoError reports that the repository could not produce a changeset
// for hash. It is the root cause behind both GenerationFetchFailed and
// ParentsFetchFailed, and may also be returned directly by
// SingleNodeHash.
type RepoError struct {
	Hash common.NodeHash
	Err  error
}

func (e *RepoError) Error() string {
	return fmt.Sprintf("repo error checking for node %s: %v", e.Hash, e.Err)
}

// Unwrap lets errors.Is/errors.As see through to the underlying cause.
func (e *RepoError) Unwrap() error { return e.Err }

// NewRepoError wraps err, attaching hash and a stack-carrying context
// via github.com/pkg/errors.
func NewRepoError(hash common.NodeHash, err error) *RepoError {
	return &RepoError{Hash: hash, Err: errors.Wrapf(err, "changeset lookup for %s", hash)}
}

// GenerationFetchFailed reports that computing the generation of a
// node failed. It always wraps a RepoError.
type GenerationFetchFailed struct {
	Hash common.NodeHash
	Err  error
}

func (e *GenerationFetchFailed) Error() string {
	return fmt.Sprintf("could not fetch node generation for %s: %v", e.Hash, e.Err)
}

func (e *GenerationFetchFailed) Unwrap() error { return e.Err }

// NewGenerationFetchFailed wraps cause (expected to be, or wrap, a
// RepoError) as a GenerationFetchFailed for hash.
func NewGenerationFetchFailed(hash common.NodeHash, cause error) *GenerationFetchFailed {
	return &GenerationFetchFailed{Hash: hash, Err: errors.Wrapf(cause, "generation of %s", hash)}
}

// ParentsFetchFailed reports that the parent list of a node could not
// be retrieved. It always wraps a RepoError.
type ParentsFetchFailed struct {
	Hash common.NodeHash
	Err  error
}

func (e *ParentsFetchFailed) Error() string {
	return fmt.Sprintf("failed to fetch parent nodes of %s: %v", e.Hash, e.Err)
}

func (e *ParentsFetchFailed) Unwrap() error { return e.Err }

// NewParentsFetchFailed wraps cause as a ParentsFetchFailed for hash.
func NewParentsFetchFailed(hash common.NodeHash, cause error) *ParentsFetchFailed {
	return &ParentsFetchFailed{Hash: hash, Err: errors.Wrapf(cause, "parents of %s", hash)}
}
