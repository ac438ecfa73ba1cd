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
	"errors"
	"fmt"
	"os"
	"time"
)

var (
	// ErrInvalidRPCPort occurs when the port in the config is invalid.
	ErrInvalidRPCPort = errors.New("invalid port number for RPC server")
	// ErrInvalidCertFile occurs when the certificate file is invalid.
	ErrInvalidCertFile = errors.New("invalid cert file for RPC server")
	// ErrInvalidKeyFile occurs when the key file is invalid.
	ErrInvalidKeyFile = errors.New("invalid key file for RPC server")
	// ErrInvalidReadHeaderTimeout occurs when the read header timeout is invalid.
	ErrInvalidReadHeaderTimeout = errors.New("invalid read header timeout for RPC server")
	// ErrInvalidRateLimit occurs when the rate limit of the RPC server is invalid.
	ErrInvalidRateLimit = errors.New("invalid rate limit for RPC server")
)

// Config is the configuration for creating a Server instance.
type Config struct {
	// Port is the port number for the RPC server.
	Port int `yaml:"Port"`

	// CertFile is the path to the certificate file.
	CertFile string `yaml:"CertFile"`

	// KeyFile is the path to the key file.
	KeyFile string `yaml:"KeyFile"`

	// MaxRequestBytes is the maximum client request size in bytes the server will accept.
	MaxRequestBytes int64 `yaml:"MaxRequestBytes"`

	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout string `yaml:"ReadHeaderTimeout"`

	// RequestsPerSecond is the steady rate of requests allowed per client.
	// Zero disables rate limiting.
	RequestsPerSecond float64 `yaml:"RequestsPerSecond"`

	// RequestBurst is the number of requests a client may send at once.
	RequestBurst int `yaml:"RequestBurst"`

	// LimiterCacheSize is the number of clients whose limiters are kept.
	LimiterCacheSize int `yaml:"LimiterCacheSize"`
}

// Validate validates the port number, the files for certification and the
// rate limit.
func (c *Config) Validate() error {
	if c.Port < 1 || 65535 < c.Port {
		return fmt.Errorf("must be between 1 and 65535, given %d: %w", c.Port, ErrInvalidRPCPort)
	}

	// when specific cert or key file are configured
	if c.CertFile != "" {
		if _, err := os.Stat(c.CertFile); err != nil {
			return fmt.Errorf("%s: %w", c.CertFile, ErrInvalidCertFile)
		}
	}

	if c.KeyFile != "" {
		if _, err := os.Stat(c.KeyFile); err != nil {
			return fmt.Errorf("%s: %w", c.KeyFile, ErrInvalidKeyFile)
		}
	}

	if _, err := time.ParseDuration(c.ReadHeaderTimeout); err != nil {
		return fmt.Errorf("%s: %w", c.ReadHeaderTimeout, ErrInvalidReadHeaderTimeout)
	}

	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second %v: %w", c.RequestsPerSecond, ErrInvalidRateLimit)
	}
	if c.RequestsPerSecond > 0 && (c.RequestBurst < 1 || c.LimiterCacheSize < 1) {
		return fmt.Errorf(
			"burst %d and limiter cache size %d must be positive: %w",
			c.RequestBurst,
			c.LimiterCacheSize,
			ErrInvalidRateLimit,
		)
	}

	return nil
}
