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
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/revsetgraph/core/revset"
)

// streamMessage is one frame of a websocket range stream: either a
// hash, or a terminal error/done marker.
type streamMessage struct {
	Hash string `json:"hash,omitempty"`
	Done bool   `json:"done,omitempty"`
	Err  string `json:"error,omitempty"`
}

// handleRangeStream upgrades to a websocket connection and pushes each
// hash of the range as soon as RangeNodeStream.Next produces it,
// rather than buffering the whole result the way handleRange does;
// useful for a range wide enough that a client wants to start
// processing before the query finishes.
func (s *Server) handleRangeStream(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
	start, end, ok := parseEndpoints(w, ps)
	if !ok {
		return
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	ctx := req.Context()
	stream := revset.NewRange(s.repo, s.cache, start, end)
	for {
		h, ok, err := stream.Next(ctx)
		if err != nil {
			_ = conn.WriteJSON(streamMessage{Err: err.Error()})
			return
		}
		if !ok {
			_ = conn.WriteJSON(streamMessage{Done: true})
			return
		}
		if err := conn.WriteJSON(streamMessage{Hash: h.Hex()}); err != nil {
			s.log.Debug("websocket write failed, client likely gone", "requestId", requestIDFrom(ctx), "err", err)
			return
		}
	}
}
