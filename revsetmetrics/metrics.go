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

// Package revsetmetrics exposes Prometheus counters for the generation
// cache and the revset operators, in the shape of go-ethereum's own
// metrics package but backed directly by client_golang rather than
// go-ethereum's home-grown registry, since nothing else in this module
// needs that registry's sampling/EWMA machinery.
package revsetmetrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/revsetgraph/core/common"
	"github.com/revsetgraph/core/gencache"
)

// Collector bundles every counter this module emits. Callers register
// it with a prometheus.Registerer of their choosing (the default
// registry, or one scoped to a test) and wire it into a gencache.Cache
// via Collector.WireCache.
type Collector struct {
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	StreamEmitted *prometheus.CounterVec
}

// NewCollector builds a Collector whose metrics are namespaced under
// "revset".
func NewCollector() *Collector {
	return &Collector{
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revset",
			Subsystem: "gencache",
			Name:      "hits_total",
			Help:      "Generation cache lookups served from the LRU.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "revset",
			Subsystem: "gencache",
			Name:      "misses_total",
			Help:      "Generation cache lookups that required a repository walk.",
		}),
		StreamEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revset",
			Subsystem: "stream",
			Name:      "emitted_total",
			Help:      "Hashes emitted by each revset operator kind.",
		}, []string{"operator"}),
	}
}

// MustRegister registers every metric in c with reg, panicking on a
// duplicate-registration error the way prometheus's own
// MustRegister helper does.
func (c *Collector) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(c.CacheHits, c.CacheMisses, c.StreamEmitted)
}

// EmittedFor returns a counter for operator, creating the label series
// on first use.
func (c *Collector) EmittedFor(operator string) prometheus.Counter {
	return c.StreamEmitted.WithLabelValues(operator)
}

// WireCache connects cache's hit/miss counters and its OnComputed hook
// to c, so every lookup and every computed generation is observable
// without gencache importing this package itself.
func (c *Collector) WireCache(cache *gencache.Cache) {
	cache.SetCounters(c.CacheHits.Inc, c.CacheMisses.Inc)
	cache.OnComputed(func(hash common.NodeHash, gen common.Generation) {
		c.EmittedFor("gencache.compute").Inc()
	})
}

// SizeGauge returns a GaugeFunc reporting cache's current entry count.
// Callers register it themselves since a GaugeFunc, unlike the other
// metrics here, must be bound to its source at construction time.
func (c *Collector) SizeGauge(cache *gencache.Cache) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "revset",
		Subsystem: "gencache",
		Name:      "entries",
		Help:      "Current number of entries held in the generation cache.",
	}, func() float64 { return float64(cache.Len()) })
}
