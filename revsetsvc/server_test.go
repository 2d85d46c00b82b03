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

package revsetsvc

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/revsettest"
)

func TestHandleRangeReturnsHashesInOrder(t *testing.T) {
	repo, h := revsettest.Linear()
	srv := NewServer(repo, gencache.New(16))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	url := fmt.Sprintf("%s/v1/range/%s/%s", ts.URL, h["c1"].Hex(), h["head"].Hex())
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result queryResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Equal(t, []string{h["head"].Hex(), h["c3"].Hex(), h["c2"].Hex(), h["c1"].Hex()}, result.Hashes)
	require.NotEmpty(t, result.RequestID)
}

func TestHandleRangeBadHashReturnsBadRequest(t *testing.T) {
	repo, _ := revsettest.Linear()
	srv := NewServer(repo, gencache.New(16))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/v1/range/not-a-hash/also-not")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleAncestors(t *testing.T) {
	repo, h := revsettest.MergeUneven()
	srv := NewServer(repo, gencache.New(16))
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(fmt.Sprintf("%s/v1/ancestors/%s", ts.URL, h["merge"].Hex()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result queryResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Hashes, 5)
	require.NotContains(t, result.Hashes, h["merge"].Hex())
}
