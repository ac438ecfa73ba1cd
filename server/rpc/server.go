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

package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quill-wiki/quill/api/types"
	quillerrors "github.com/quill-wiki/quill/pkg/errors"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/logging"
	"github.com/quill-wiki/quill/server/rpc/httphelper"
	"github.com/quill-wiki/quill/server/rpc/interceptors"
)

// HealthPath is the path of the health check.
const HealthPath = "/healthz"

// Server is a normal server that processes the logic requested by the client.
type Server struct {
	conf          *Config
	engine        *gin.Engine
	httpServer    *http.Server
	serviceCancel context.CancelFunc
}

// NewServer creates a new instance of Server.
func NewServer(conf *Config, be *backend.Backend) (*Server, error) {
	readHeaderTimeout, err := time.ParseDuration(conf.ReadHeaderTimeout)
	if err != nil {
		return nil, fmt.Errorf("parse read header timeout: %w", err)
	}

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(
		interceptors.RequestID(),
		interceptors.Logging(be.Metrics),
		gin.CustomRecovery(func(c *gin.Context, recovered any) {
			httphelper.WriteError(c, fmt.Errorf("panic: %v: %w", recovered, quillerrors.Internal("internal error")))
		}),
	)

	if conf.MaxRequestBytes > 0 {
		engine.Use(func(c *gin.Context) {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, conf.MaxRequestBytes)
			c.Next()
		})
	}

	engine.GET(HealthPath, health)
	engine.HEAD(HealthPath, health)

	v1 := engine.Group("/v1")
	if conf.RequestsPerSecond > 0 {
		limiter, err := interceptors.NewRateLimiter(
			conf.RequestsPerSecond,
			conf.RequestBurst,
			conf.LimiterCacheSize,
			clientKeyOf,
		)
		if err != nil {
			return nil, err
		}
		v1.Use(limiter.Handler())
	}

	newDocumentServer(be).register(v1)
	newReviewServer(be).register(v1)
	newDraftServer(be).register(v1)

	serviceCtx, serviceCancel := context.WithCancel(context.Background())
	return &Server{
		conf:   conf,
		engine: engine,
		httpServer: &http.Server{
			Handler:           engine,
			ReadHeaderTimeout: readHeaderTimeout,
			BaseContext: func(net.Listener) context.Context {
				return serviceCtx
			},
		},
		serviceCancel: serviceCancel,
	}, nil
}

// Handler returns the HTTP handler of this server.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start starts this server by opening the rpc port.
func (s *Server) Start() error {
	return s.listenAndServe()
}

// Shutdown shuts down this server. Open watch streams are ended first so
// that a graceful shutdown does not wait for them.
func (s *Server) Shutdown(graceful bool) {
	s.serviceCancel()

	if graceful {
		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			logging.DefaultLogger().Error(err)
		}
		return
	}

	if err := s.httpServer.Close(); err != nil {
		logging.DefaultLogger().Error(err)
	}
}

func (s *Server) listenAndServe() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.conf.Port))
	if err != nil {
		logging.DefaultLogger().Error(err)
		return err
	}

	go func() {
		logging.DefaultLogger().Infof("serving RPC on %d", s.conf.Port)

		var err error
		if s.conf.CertFile != "" && s.conf.KeyFile != "" {
			err = s.httpServer.ServeTLS(lis, s.conf.CertFile, s.conf.KeyFile)
		} else {
			err = s.httpServer.Serve(lis)
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.DefaultLogger().Error(err)
		}
	}()

	return nil
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{Status: "ok"})
}
