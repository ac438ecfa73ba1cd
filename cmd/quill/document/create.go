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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

var (
	body     string
	bodyFile string
)

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create [title]",
		Short: "Create a new document",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := body
			if bodyFile != "" {
				data, err := os.ReadFile(filepath.Clean(bodyFile))
				if err != nil {
					return fmt.Errorf("read body file: %w", err)
				}
				text = string(data)
			}

			cli, err := config.Dial()
			if err != nil {
				return err
			}

			ctx := context.Background()
			doc, err := cli.CreateDocument(ctx, types.DocumentFields{
				Title: args[0],
				Body:  text,
			})
			if err != nil {
				return fmt.Errorf("create document: %w", err)
			}

			cmd.Printf("Document created: %s (%s)\n", doc.Title, doc.ID)
			return nil
		},
	}
}

func init() {
	cmd := newCreateCommand()
	cmd.Flags().StringVar(
		&body,
		"body",
		"",
		"Body of the document",
	)
	cmd.Flags().StringVar(
		&bodyFile,
		"body-file",
		"",
		"Path of a file holding the body of the document",
	)
	SubCmd.AddCommand(cmd)
}
