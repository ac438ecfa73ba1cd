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

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

func newVoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "vote [document ID] [up|down]",
		Short: "Vote on a document under review",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires document ID and direction")
			}
			if !types.VoteDirection(args[1]).Valid() {
				return errors.New("direction must be 'up' or 'down'")
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
			doc, err := cli.VoteDocument(ctx, types.ID(args[0]), types.VoteDirection(args[1]))
			if err != nil {
				return err
			}

			cmd.Printf("Voted %s on %s: %d up, %d down\n", args[1], doc.ID, doc.Upvotes, doc.Downvotes)
			return nil
		},
	}
}

func init() {
	SubCmd.AddCommand(newVoteCommand())
}
