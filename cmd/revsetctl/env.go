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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/urfave/cli/v2"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/gencache"
	"github.com/revsetgraph/core/repository"
)

// config is the optional TOML config file layout; command-line flags
// of the same name always take precedence over it.
type config struct {
	CacheSize int `toml:"cache_size"`
}

// env bundles the repository and cache every subcommand queries
// against, built once per invocation from --repo and --cache-size (the
// cache size may also come from the config file).
type env struct {
	repo  repository.Repository
	cache *gencache.Cache
}

// snapshot is the on-disk JSON shape a repository snapshot file takes:
// a flat map of hex node hash to its parent hex hashes.
type snapshot map[string][]string

func loadEnv(c *cli.Context) (*env, error) {
	cacheSize := c.Int("cache-size")
	if path := c.String("config"); path != "" {
		var cfg config
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, cli.Exit(fmt.Sprintf("reading config: %v", err), 1)
		}
		if cfg.CacheSize > 0 && !c.IsSet("cache-size") {
			cacheSize = cfg.CacheSize
		}
	}

	repo, err := loadSnapshot(c.String("repo"))
	if err != nil {
		return nil, cli.Exit(err.Error(), 1)
	}

	return &env{repo: repo, cache: gencache.New(cacheSize)}, nil
}

func loadSnapshot(path string) (*repository.MapRepository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository snapshot: %w", err)
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding repository snapshot: %w", err)
	}

	repo := repository.NewMapRepository()
	for hexHash, hexParents := range snap {
		hash, err := common.HexToNodeHash(hexHash)
		if err != nil {
			return nil, fmt.Errorf("snapshot node %q: %w", hexHash, err)
		}
		parents := make([]common.NodeHash, len(hexParents))
		for i, hp := range hexParents {
			parents[i], err = common.HexToNodeHash(hp)
			if err != nil {
				return nil, fmt.Errorf("snapshot node %q parent %q: %w", hexHash, hp, err)
			}
		}
		repo.PutParents(hash, parents...)
	}
	return repo, nil
}

func parseHash(s string) (common.NodeHash, error) {
	h, err := common.HexToNodeHash(s)
	if err != nil {
		return common.NodeHash{}, cli.Exit(err.Error(), 1)
	}
	return h, nil
}

func parsePair(a, b string) (common.NodeHash, common.NodeHash, error) {
	ha, err := parseHash(a)
	if err != nil {
		return common.NodeHash{}, common.NodeHash{}, err
	}
	hb, err := parseHash(b)
	if err != nil {
		return common.NodeHash{}, common.NodeHash{}, err
	}
	return ha, hb, nil
}
