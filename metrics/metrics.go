// Cartera Mesh
// Copyright (C) 2026 cartera-mesh
//
// This file is part of Cartera Mesh.
//
// Cartera Mesh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cartera Mesh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Cartera Mesh. If not, see <https://www.gnu.org/licenses/>.

// Package metrics exposes Prometheus counters and gauges for pairing and
// session lifecycle events and RPC round-trip latency (spec §10 domain
// stack wiring, an ambient concern no Non-goal excludes).
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionsActive tracks the number of currently settled sessions.
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mesh",
		Name:      "sessions_active",
		Help:      "Number of currently settled sessions.",
	})

	// PairingsActive tracks whether a pairing is currently installed (0/1)
	// per process; kept as a gauge rather than a bool to let a future
	// multi-pairing deployment sum across instances.
	PairingsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "mesh",
		Name:      "pairings_active",
		Help:      "Number of currently installed pairings (0 or 1 per process).",
	})

	// RPCRequestsTotal counts outbound RPC requests by method and outcome.
	RPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mesh",
		Name:      "rpc_requests_total",
		Help:      "Outbound RPC requests by method and outcome.",
	}, []string{"method", "outcome"})

	// RPCLatencySeconds observes request/response round-trip latency.
	RPCLatencySeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mesh",
		Name:      "rpc_latency_seconds",
		Help:      "RPC request/response round-trip latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	// SessionsDeletedTotal counts session teardowns by reason.
	SessionsDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mesh",
		Name:      "sessions_deleted_total",
		Help:      "Session teardowns by reason (explicit, expired, pairing_delete).",
	}, []string{"reason"})
)

// Handler returns the Prometheus scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
