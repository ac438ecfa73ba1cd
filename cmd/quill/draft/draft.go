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

// Package draft provides the commands of the annotation pass a reviewer
// builds before submitting a revision.
package draft

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

var (
	// SubCmd represents the draft command.
	SubCmd = &cobra.Command{
		Use:   "draft",
		Short: "Annotate a document under review and submit a revision",
	}

	errReviewIDRequired = errors.New("review ID is required")
)

func printComments(cmd *cobra.Command, comments []*types.ReviewComment) error {
	return config.Print(cmd, comments, func() string {
		tw := config.NewTable()
		tw.AppendHeader(table.Row{
			"ID",
			"LINES",
			"TYPE",
			"CONTENT",
			"SUGGESTION",
		})
		for _, comment := range comments {
			suggestion := ""
			if comment.HasSuggestion() {
				suggestion = *comment.SuggestedChange
			}
			tw.AppendRow(table.Row{
				comment.ID,
				fmt.Sprintf("%d-%d", comment.LineStart, comment.LineEnd),
				comment.Type,
				comment.Content,
				suggestion,
			})
		}
		return tw.Render()
	})
}
