// Copyright 2014 The go-ethereum Authors
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

package common

// Generation is the depth of a node in the DAG: one plus the maximum
// generation of its parents. Roots (zero parents) have generation 0.
//
// There is no separate "unknown" sentinel distinct from the valid
// generation 0 of a root: absence of a computed value is represented
// by the (ok bool) / error return of whatever is looking it up, the
// same way any other Go lookup does it, rather than by a magic
// constant that would collide with legitimate root generations.
type Generation uint64

// HashGen is the pair (hash, generation) that every operator works in
// terms of once a hash's position in the DAG is known. Ordering is
// primary by generation descending, secondary by hash ascending, so
// that two HashGen values compare deterministically even when their
// generations tie.
type HashGen struct {
	Hash       NodeHash
	Generation Generation
}

// Less reports whether h sorts before other under the operator
// ordering: higher generation first, then lower hash.
func (h HashGen) Less(other HashGen) bool {
	if h.Generation != other.Generation {
		return h.Generation > other.Generation
	}
	return h.Hash.Cmp(other.Hash) < 0
}

// ParentChild records a single discovered DAG edge: child points at
// parent. RangeNodeStream's backward walk (spec.md §4.5, Stage 1)
// accumulates these as it walks from the end node toward the start
// node.
type ParentChild struct {
	Child  HashGen
	Parent HashGen
}
