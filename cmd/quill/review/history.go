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

package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

func newHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "history [document ID]",
		Short:   "Show the review sessions of a document",
		Args:    requireID(errors.New("document ID is required")),
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}

			entries, err := cli.ReviewHistory(context.Background(), types.ID(args[0]))
			if err != nil {
				return err
			}

			return config.Print(cmd, entries, func() string {
				tw := config.NewTable()
				tw.AppendHeader(table.Row{
					"REVIEW",
					"STATUS",
					"STARTED AT",
					"REMAINING",
					"PROGRESS",
					"REVISIONS",
				})
				for _, entry := range entries {
					tw.AppendRow(table.Row{
						entry.Session.ID,
						entry.Session.Status,
						entry.Session.StartedAt.Local().Format(time.DateTime),
						entry.Countdown,
						fmt.Sprintf("%.0f%%", entry.Progress*100),
						entry.RevisionCount,
					})
				}
				return tw.Render()
			})
		},
	}
}

func init() {
	SubCmd.AddCommand(newHistoryCommand())
}
