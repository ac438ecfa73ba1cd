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

package draft

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

var description string

func newPreviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [review ID]",
		Short: "Show the document with the suggestions applied",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errReviewIDRequired
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}

			preview, err := cli.Preview(context.Background(), types.ID(args[0]))
			if err != nil {
				return err
			}

			return config.Print(cmd, types.PreviewResponse{Preview: preview}, func() string {
				return preview
			})
		},
	}
}

func newSubmitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "submit [review ID] [title]",
		Short: "Submit the annotation pass as a revision",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires review ID and title")
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}

			revision, err := cli.SubmitRevision(context.Background(), types.ID(args[0]), types.RevisionFields{
				Title:       args[1],
				Description: description,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Revision submitted: %s (%d changes)\n", revision.ID, len(revision.Changes))
			return nil
		},
	}
}

func init() {
	SubCmd.AddCommand(newPreviewCommand())

	cmd := newSubmitCommand()
	cmd.Flags().StringVarP(
		&description,
		"description",
		"d",
		"",
		"Description of the revision",
	)
	SubCmd.AddCommand(cmd)
}
