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

// Package revsetsvc exposes the revset algebra over HTTP: a
// request/response endpoint per operator for short-lived queries, and
// a websocket endpoint that streams results as they are produced for
// queries whose output may be large. Neither endpoint speaks the
// bundle wire protocol a real sync client would use; both exist purely
// as a query interface onto a Repository already loaded in process.
package revsetsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/log"
	"github.com/revsetgraph/core/repository"
	"github.com/revsetgraph/core/revset"
)

// Server answers revset queries against a single Repository, sharing
// one generation cache across every request the way a long-lived
// query process would.
type Server struct {
	repo  repository.Repository
	cache *gencache.Cache
	log   log.Logger

	upgrader websocket.Upgrader
}

// NewServer returns a Server backed by repo, using cache for every
// request it handles.
func NewServer(repo repository.Repository, cache *gencache.Cache) *Server {
	return &Server{
		repo:  repo,
		cache: cache,
		log:   log.Root().With("component", "revsetsvc"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the httprouter.Router serving this Server's
// endpoints; callers mount it directly or wrap it in their own
// middleware chain.
func (s *Server) Handler() http.Handler {
	r := httprouter.New()
	r.GET("/v1/range/:start/:end", s.withRequestID(s.handleRange))
	r.GET("/v1/union", s.withRequestID(s.handleUnion))
	r.GET("/v1/ancestors/:hash", s.withRequestID(s.handleAncestors))
	r.GET("/v1/stream/range/:start/:end", s.withRequestID(s.handleRangeStream))
	return r
}

type queryResult struct {
	RequestID string   `json:"requestId"`
	Hashes    []string `json:"hashes"`
}

func (s *Server) withRequestID(h httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		reqID := uuid.New().String()
		start := time.Now()
		h(w, req.WithContext(withRequestID(req.Context(), reqID)), ps)
		s.log.Debug("handled request", "path", req.URL.Path, "requestId", reqID, "elapsed", time.Since(start))
	}
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (s *Server) handleRange(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	start, end, ok := parseEndpoints(w, ps)
	if !ok {
		return
	}
	stream := revset.Boxed(revset.NewRange(s.repo, s.cache, start, end))
	s.writeAll(w, req, stream)
}

func (s *Server) handleAncestors(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	hash, err := common.HexToNodeHash(ps.ByName("hash"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	stream := revset.Boxed(revset.NewAncestors(s.repo, s.cache, hash))
	s.writeAll(w, req, stream)
}

func (s *Server) handleUnion(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	hashes, err := parseHashList(req.URL.Query().Get("hash"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	inputs := make([]revset.NodeStream, len(hashes))
	for i, h := range hashes {
		inputs[i] = revset.NewSingleNodeHash(s.repo, h)
	}
	stream := revset.Boxed(revset.NewUnion(s.repo, s.cache, inputs...))
	s.writeAll(w, req, stream)
}

func (s *Server) writeAll(w http.ResponseWriter, req *http.Request, stream revset.NodeStream) {
	var hashes []string
	ctx := req.Context()
	for {
		h, ok, err := stream.Next(ctx)
		if err != nil {
			s.log.Error("stream failed", "requestId", requestIDFrom(ctx), "err", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !ok {
			break
		}
		hashes = append(hashes, h.Hex())
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(queryResult{RequestID: requestIDFrom(req.Context()), Hashes: hashes})
}

func parseEndpoints(w http.ResponseWriter, ps httprouter.Params) (start, end common.NodeHash, ok bool) {
	start, err := common.HexToNodeHash(ps.ByName("start"))
	if err != nil {
		http.Error(w, "bad start hash: "+err.Error(), http.StatusBadRequest)
		return common.NodeHash{}, common.NodeHash{}, false
	}
	end, err = common.HexToNodeHash(ps.ByName("end"))
	if err != nil {
		http.Error(w, "bad end hash: "+err.Error(), http.StatusBadRequest)
		return common.NodeHash{}, common.NodeHash{}, false
	}
	return start, end, true
}

func parseHashList(raw string) ([]common.NodeHash, error) {
	if raw == "" {
		return nil, nil
	}
	var out []common.NodeHash
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i == len(raw) || raw[i] == ',' {
			h, err := common.HexToNodeHash(raw[start:i])
			if err != nil {
				return nil, err
			}
			out = append(out, h)
			start = i + 1
		}
	}
	return out, nil
}
