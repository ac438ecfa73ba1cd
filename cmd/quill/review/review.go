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

// Package review provides the review command and its subcommands.
package review

import (
	"errors"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

var (
	// SubCmd represents the review command.
	SubCmd = &cobra.Command{
		Use:   "review",
		Short: "Manage review sessions of documents",
	}

	errReviewIDRequired = errors.New("review ID is required")
)

// requireID is the argument validator of commands taking a single ID.
func requireID(err error) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return err
		}
		return nil
	}
}

func printSession(cmd *cobra.Command, session *types.ReviewSession) error {
	return config.Print(cmd, session, func() string {
		tw := config.NewTable()
		tw.AppendRow(table.Row{"REVIEW", session.ID})
		tw.AppendRow(table.Row{"DOCUMENT", session.DocumentID})
		tw.AppendRow(table.Row{"STATUS", session.Status})
		tw.AppendRow(table.Row{"STARTED AT", session.StartedAt.Local().Format(time.DateTime)})
		tw.AppendRow(table.Row{"DEADLINE", session.Deadline.Local().Format(time.DateTime)})
		if session.WinningRevisionID != "" {
			tw.AppendRow(table.Row{"WINNER", session.WinningRevisionID})
		}
		return tw.Render()
	})
}

func printRevisions(cmd *cobra.Command, revisions []*types.Revision) error {
	return config.Print(cmd, revisions, func() string {
		tw := config.NewTable()
		tw.AppendHeader(table.Row{
			"RANK",
			"ID",
			"TITLE",
			"AUTHOR",
			"STATUS",
			"VOTES",
			"COMMENTS",
			"SUBMITTED AT",
		})
		for i, revision := range revisions {
			tw.AppendRow(table.Row{
				i + 1,
				revision.ID,
				revision.Title,
				revision.Username,
				revision.Status,
				revision.Votes.Net(),
				len(revision.Comments),
				revision.CreatedAt.Local().Format(time.DateTime),
			})
		}
		return tw.Render()
	})
}
