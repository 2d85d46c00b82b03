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

// Package common holds the value types shared by every layer of the
// revset core: the 20-byte node identifier and the generation number.
package common

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

// NodeHashLength is the number of bytes in a NodeHash.
const NodeHashLength = 20

// NodeHash is the content hash identifying a single revision. It is
// ordered by byte value, giving every operator a deterministic
// tie-break when two hashes share a generation.
type NodeHash [NodeHashLength]byte

// BytesToNodeHash sets the NodeHash to the value of b, left-padding if
// b is shorter than NodeHashLength and truncating from the left if it
// is longer.
func BytesToNodeHash(b []byte) NodeHash {
	var h NodeHash
	if len(b) > NodeHashLength {
		b = b[len(b)-NodeHashLength:]
	}
	copy(h[NodeHashLength-len(b):], b)
	return h
}

// HexToNodeHash sets the NodeHash to the value of the hex string s. It
// accepts an optional "0x" prefix.
func HexToNodeHash(s string) (NodeHash, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return NodeHash{}, fmt.Errorf("invalid node hash %q: %w", s, err)
	}
	if len(raw) != NodeHashLength {
		return NodeHash{}, fmt.Errorf("invalid node hash %q: want %d bytes, got %d", s, NodeHashLength, len(raw))
	}
	return BytesToNodeHash(raw), nil
}

// MustHexToNodeHash is like HexToNodeHash but panics on error. It
// exists for fixtures and tests that build hashes from literals known
// to be valid.
func MustHexToNodeHash(s string) NodeHash {
	h, err := HexToNodeHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Bytes returns the raw bytes of h.
func (h NodeHash) Bytes() []byte { return h[:] }

// Hex returns the hex-encoded string of h, without a leading "0x".
func (h NodeHash) Hex() string { return hex.EncodeToString(h[:]) }

// String implements fmt.Stringer.
func (h NodeHash) String() string { return h.Hex() }

// IsZero reports whether h is the zero hash.
func (h NodeHash) IsZero() bool { return h == NodeHash{} }

// Eq reports whether h and other identify the same node.
func (h NodeHash) Eq(other NodeHash) bool { return h == other }

// Cmp returns -1, 0 or +1 depending on whether h sorts before, equal
// to, or after other by byte value.
func (h NodeHash) Cmp(other NodeHash) int { return bytes.Compare(h[:], other[:]) }

// Copy returns a copy of h. NodeHash is a value type, so this simply
// returns h; the method exists because the spec names it explicitly
// as part of the data model.
func (h NodeHash) Copy() NodeHash { return h }
