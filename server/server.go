/*
 * Copyright 2026 The Quill Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package server provides the Quill server which is the main entry point of
// the Quill system. The server is responsible for starting the HTTP API,
// the profiling server and the housekeeping of expired reviews.
package server

import (
	"context"
	gosync "sync"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/backend/housekeeping"
	"github.com/quill-wiki/quill/server/logging"
	"github.com/quill-wiki/quill/server/profiling"
	"github.com/quill-wiki/quill/server/profiling/prometheus"
	"github.com/quill-wiki/quill/server/reviews"
	"github.com/quill-wiki/quill/server/rpc"
)

// Quill is a server of Quill.
// The server serves the review workflow over HTTP and closes the reviews
// whose deadline has passed.
type Quill struct {
	lock gosync.Mutex

	conf            *Config
	backend         *backend.Backend
	housekeeping    *housekeeping.Housekeeping
	rpcServer       *rpc.Server
	profilingServer *profiling.Server

	shutdown   bool
	shutdownCh chan struct{}
}

// New creates a new instance of Quill.
func New(conf *Config) (*Quill, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	metrics, err := prometheus.NewMetrics()
	if err != nil {
		return nil, err
	}

	be, err := backend.New(conf.Backend, conf.Mongo, metrics)
	if err != nil {
		return nil, err
	}

	hk, err := housekeeping.New(
		conf.Housekeeping,
		be.DB,
		be.Background,
		func(ctx context.Context, reviewID types.ID) error {
			_, err := reviews.FinalizeExpired(ctx, be, reviewID)
			return err
		},
		be.Now,
	)
	if err != nil {
		return nil, shutdownOnError(be, err)
	}

	rpcServer, err := rpc.NewServer(conf.RPC, be)
	if err != nil {
		return nil, shutdownOnError(be, err)
	}

	var profilingServer *profiling.Server
	if conf.Profiling != nil {
		profilingServer = profiling.NewServer(conf.Profiling, metrics)
	}

	return &Quill{
		conf:            conf,
		backend:         be,
		housekeeping:    hk,
		rpcServer:       rpcServer,
		profilingServer: profilingServer,
		shutdownCh:      make(chan struct{}),
	}, nil
}

// Start starts the server by opening the rpc port.
func (q *Quill) Start() error {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.housekeeping.Start()

	if q.profilingServer != nil {
		if err := q.profilingServer.Start(); err != nil {
			return err
		}
	}

	return q.rpcServer.Start()
}

// Shutdown shuts down this Quill server.
func (q *Quill) Shutdown(graceful bool) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	if q.shutdown {
		return nil
	}

	q.rpcServer.Shutdown(graceful)
	if q.profilingServer != nil {
		q.profilingServer.Shutdown(graceful)
	}

	if err := q.backend.Shutdown(); err != nil {
		return err
	}

	close(q.shutdownCh)
	q.shutdown = true
	return nil
}

// ShutdownCh returns the shutdown channel.
func (q *Quill) ShutdownCh() <-chan struct{} {
	return q.shutdownCh
}

// RPCAddr returns the address of the RPC.
func (q *Quill) RPCAddr() string {
	return q.conf.RPCAddr()
}

// FinalizeExpiredReviews runs the housekeeping once. It is used for testing.
func (q *Quill) FinalizeExpiredReviews(ctx context.Context) (int, error) {
	return q.housekeeping.FinalizeExpired(ctx)
}

func shutdownOnError(be *backend.Backend, err error) error {
	if shutdownErr := be.Shutdown(); shutdownErr != nil {
		logging.DefaultLogger().Error(shutdownErr)
	}
	return err
}
