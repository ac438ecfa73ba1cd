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

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

func newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [document ID]",
		Short: "Show a document and its body",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errDocumentIDRequired
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}

			ctx := context.Background()
			doc, err := cli.GetDocument(ctx, types.ID(args[0]))
			if err != nil {
				return err
			}

			return config.Print(cmd, doc, func() string {
				tw := config.NewTable()
				tw.AppendRow(table.Row{"TITLE", doc.Title})
				tw.AppendRow(table.Row{"STATUS", doc.Status})
				tw.AppendRow(table.Row{"UPVOTES", doc.Upvotes})
				tw.AppendRow(table.Row{"DOWNVOTES", doc.Downvotes})
				if doc.VerificationEndAt != nil {
					tw.AppendRow(table.Row{"REVIEW ENDS AT", doc.VerificationEndAt.Local()})
				}
				return tw.Render() + "\n\n" + doc.Body
			})
		},
	}
}

func init() {
	SubCmd.AddCommand(newGetCommand())
}
