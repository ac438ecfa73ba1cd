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
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/cmd/quill/config"
	"github.com/quill-wiki/quill/internal/version"
)

var flagCheckServer bool

// versionInfo is the version of the CLI and, when checked, the server.
type versionInfo struct {
	version.Info `yaml:",inline"`
	ServerStatus string `json:"serverStatus,omitempty" yaml:"serverStatus,omitempty"`
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print the version number of Quill",
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{Info: version.Get()}

			if flagCheckServer {
				info.ServerStatus = checkServer()
			}

			return config.Print(cmd, info, func() string {
				text := info.Info.String()
				if info.ServerStatus != "" {
					text += fmt.Sprintf("\nServer: %s", info.ServerStatus)
				}
				return text
			})
		},
	}
}

func checkServer() string {
	cli, err := config.Dial()
	if err != nil {
		return err.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cli.Health(ctx); err != nil {
		return err.Error()
	}
	return "ok"
}

func init() {
	cmd := newVersionCmd()
	cmd.Flags().BoolVar(
		&flagCheckServer,
		"check-server",
		false,
		"Check the health of the server as well",
	)
	rootCmd.AddCommand(cmd)
}
