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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/server"
	"github.com/quill-wiki/quill/server/backend/database/mongo"
	"github.com/quill-wiki/quill/server/logging"
)

var (
	gracefulTimeout = 10 * time.Second
)

var (
	flagConfPath  string
	flagLogLevel  string
	flagLogFormat string

	rpcReadHeaderTimeout  time.Duration
	housekeepingInterval  time.Duration
	reviewWindow          time.Duration
	countdownTickInterval time.Duration

	mongoConnectionURI     string
	mongoConnectionTimeout time.Duration
	mongoQuillDatabase     string
	mongoPingTimeout       time.Duration
	mongoReviewCacheSize   int

	conf = server.NewConfig()
)

func newServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server [options]",
		Short: "Start Quill server",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf.RPC.ReadHeaderTimeout = rpcReadHeaderTimeout.String()
			conf.Housekeeping.Interval = housekeepingInterval.String()
			conf.Backend.ReviewWindow = reviewWindow.String()
			conf.Backend.CountdownTickInterval = countdownTickInterval.String()

			if mongoConnectionURI != "" {
				conf.Mongo = &mongo.Config{
					ConnectionURI:     mongoConnectionURI,
					ConnectionTimeout: mongoConnectionTimeout.String(),
					QuillDatabase:     mongoQuillDatabase,
					PingTimeout:       mongoPingTimeout.String(),
					ReviewCacheSize:   mongoReviewCacheSize,
				}
			}

			// If config file is given, command-line arguments will be overwritten.
			if flagConfPath != "" {
				parsed, err := server.NewConfigFromFile(flagConfPath)
				if err != nil {
					return err
				}
				conf = parsed
			}

			if err := logging.SetLogLevel(flagLogLevel); err != nil {
				return err
			}
			if err := logging.SetLogFormat(flagLogFormat); err != nil {
				return err
			}
			gin.SetMode(gin.ReleaseMode)

			q, err := server.New(conf)
			if err != nil {
				return err
			}

			if err := q.Start(); err != nil {
				return err
			}

			if code := handleSignal(q); code != 0 {
				return fmt.Errorf("exit code: %d", code)
			}

			return nil
		},
	}
}

func handleSignal(q *server.Quill) int {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	var sig os.Signal
	select {
	case s := <-sigCh:
		sig = s
	case <-q.ShutdownCh():
		// quill is already shutdown
		return 0
	}

	graceful := false
	if sig == syscall.SIGINT || sig == syscall.SIGTERM {
		graceful = true
	}

	gracefulCh := make(chan struct{})
	go func() {
		if err := q.Shutdown(graceful); err != nil {
			return
		}
		close(gracefulCh)
	}()

	select {
	case <-sigCh:
		return 1
	case <-time.After(gracefulTimeout):
		return 1
	case <-gracefulCh:
		return 0
	}
}

func init() {
	cmd := newServerCmd()
	cmd.Flags().StringVarP(
		&flagConfPath,
		"config",
		"c",
		"",
		"Config path",
	)
	cmd.Flags().StringVarP(
		&flagLogLevel,
		"log-level",
		"l",
		"info",
		"Log level: debug, info, warn, error, panic, fatal",
	)
	cmd.Flags().StringVar(
		&flagLogFormat,
		"log-format",
		"console",
		"Log format: console, json",
	)
	cmd.Flags().IntVar(
		&conf.RPC.Port,
		"rpc-port",
		server.DefaultRPCPort,
		"RPC port",
	)
	cmd.Flags().StringVar(
		&conf.RPC.CertFile,
		"rpc-cert-file",
		"",
		"RPC certification file's path",
	)
	cmd.Flags().StringVar(
		&conf.RPC.KeyFile,
		"rpc-key-file",
		"",
		"RPC key file's path",
	)
	cmd.Flags().Int64Var(
		&conf.RPC.MaxRequestBytes,
		"rpc-max-request-bytes",
		server.DefaultRPCMaxRequestBytes,
		"Maximum client request size in bytes the server will accept.",
	)
	cmd.Flags().DurationVar(
		&rpcReadHeaderTimeout,
		"rpc-read-header-timeout",
		server.DefaultRPCReadHeaderTimeout,
		"Amount of time allowed to read request headers.",
	)
	cmd.Flags().Float64Var(
		&conf.RPC.RequestsPerSecond,
		"rpc-requests-per-second",
		server.DefaultRPCRequestsPerSecond,
		"Steady rate of requests allowed per client. Zero disables rate limiting.",
	)
	cmd.Flags().IntVar(
		&conf.RPC.RequestBurst,
		"rpc-request-burst",
		server.DefaultRPCRequestBurst,
		"Number of requests a client may send at once.",
	)
	cmd.Flags().IntVar(
		&conf.RPC.LimiterCacheSize,
		"rpc-limiter-cache-size",
		server.DefaultRPCLimiterCacheSize,
		"Number of clients whose rate limiters are kept.",
	)
	cmd.Flags().IntVar(
		&conf.Profiling.Port,
		"profiling-port",
		server.DefaultProfilingPort,
		"Profiling port",
	)
	cmd.Flags().BoolVar(
		&conf.Profiling.EnablePprof,
		"enable-pprof",
		false,
		"Enable runtime profiling data via HTTP server.",
	)
	cmd.Flags().DurationVar(
		&housekeepingInterval,
		"housekeeping-interval",
		server.DefaultHousekeepingInterval,
		"housekeeping interval between housekeeping runs",
	)
	cmd.Flags().IntVar(
		&conf.Housekeeping.CandidatesLimit,
		"housekeeping-candidates-limit",
		server.DefaultHousekeepingCandidatesLimit,
		"expired reviews finalized in a single housekeeping run",
	)
	cmd.Flags().IntVar(
		&conf.Housekeeping.Concurrency,
		"housekeeping-concurrency",
		server.DefaultHousekeepingConcurrency,
		"expired reviews finalized at the same time",
	)
	cmd.Flags().DurationVar(
		&reviewWindow,
		"backend-review-window",
		server.DefaultReviewWindow,
		"How long a review stays open.",
	)
	cmd.Flags().DurationVar(
		&countdownTickInterval,
		"backend-countdown-tick-interval",
		server.DefaultCountdownTickInterval,
		"Interval between countdown ticks sent to watchers.",
	)
	cmd.Flags().IntVar(
		&conf.Backend.MaxWatchersPerReview,
		"backend-max-watchers-per-review",
		server.DefaultMaxWatchersPerReview,
		"Maximum number of watchers of a single review.",
	)
	cmd.Flags().StringVar(
		&mongoConnectionURI,
		"mongo-connection-uri",
		"",
		"MongoDB's connection URI",
	)
	cmd.Flags().DurationVar(
		&mongoConnectionTimeout,
		"mongo-connection-timeout",
		server.DefaultMongoConnectionTimeout,
		"Mongo DB's connection timeout",
	)
	cmd.Flags().StringVar(
		&mongoQuillDatabase,
		"mongo-quill-database",
		server.DefaultMongoQuillDatabase,
		"Quill's database name in MongoDB",
	)
	cmd.Flags().DurationVar(
		&mongoPingTimeout,
		"mongo-ping-timeout",
		server.DefaultMongoPingTimeout,
		"Mongo DB's ping timeout",
	)
	cmd.Flags().IntVar(
		&mongoReviewCacheSize,
		"mongo-review-cache-size",
		server.DefaultMongoReviewCacheSize,
		"Number of review sessions cached in front of MongoDB",
	)

	rootCmd.AddCommand(cmd)
}
