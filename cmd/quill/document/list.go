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

package document

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

var (
	previousID string
	pageSize   int
	isForward  bool
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Short:   "List documents",
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}

			ctx := context.Background()
			documents, err := cli.ListDocuments(ctx, types.ID(previousID), pageSize, isForward)
			if err != nil {
				return err
			}

			return printDocuments(cmd, documents)
		},
	}
}

func init() {
	cmd := newListCommand()
	cmd.Flags().StringVar(
		&previousID,
		"previous-id",
		"",
		"The previous document ID to start from",
	)
	cmd.Flags().IntVar(
		&pageSize,
		"size",
		10,
		"The number of document to output per page",
	)
	cmd.Flags().BoolVar(
		&isForward,
		"forward",
		false,
		"Whether to search forward or backward",
	)
	SubCmd.AddCommand(cmd)
}
