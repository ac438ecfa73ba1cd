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

// Package document provides the document command and its subcommands.
package document

import (
	"errors"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

var (
	// SubCmd represents the document command.
	SubCmd = &cobra.Command{
		Use:   "document",
		Short: "Manage documents",
	}

	errDocumentIDRequired = errors.New("document ID is required")
)

func printDocuments(cmd *cobra.Command, documents []*types.Document) error {
	return config.Print(cmd, documents, func() string {
		tw := config.NewTable()
		tw.AppendHeader(table.Row{
			"ID",
			"TITLE",
			"STATUS",
			"VOTES",
			"REVIEW",
			"UPDATED AT",
		})
		for _, doc := range documents {
			tw.AppendRow(table.Row{
				doc.ID,
				doc.Title,
				doc.Status,
				doc.Upvotes - doc.Downvotes,
				doc.ReviewID,
				doc.UpdatedAt.Local().Format(time.DateTime),
			})
		}
		return tw.Render()
	})
}
