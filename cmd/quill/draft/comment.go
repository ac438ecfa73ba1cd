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
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

var (
	commentType string
	suggestion  string
)

func newCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comment [review ID] [content]",
		Short: "Comment on the selected lines",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires review ID and content")
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := types.CommentFields{
				Type:    types.CommentType(commentType),
				Content: args[1],
			}
			if cmd.Flags().Changed("suggestion") {
				fields.SuggestedChange = &suggestion
			}

			cli, err := config.Dial()
			if err != nil {
				return err
			}

			comment, err := cli.AddComment(context.Background(), types.ID(args[0]), fields)
			if err != nil {
				return err
			}

			return printComments(cmd, []*types.ReviewComment{comment})
		},
	}
}

func newDeleteCommentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uncomment [review ID] [comment ID]",
		Short: "Remove a comment from the annotation pass",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires review ID and comment ID")
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}

			return cli.DeleteComment(context.Background(), types.ID(args[0]), types.ID(args[1]))
		},
	}
}

func newTouchingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "touching [review ID] [line]",
		Short: "List the comments covering a line",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires review ID and line number")
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}

			cli, err := config.Dial()
			if err != nil {
				return err
			}

			comments, err := cli.Touching(context.Background(), types.ID(args[0]), line)
			if err != nil {
				return err
			}

			return printComments(cmd, comments)
		},
	}
}

func init() {
	cmd := newCommentCommand()
	cmd.Flags().StringVarP(
		&commentType,
		"type",
		"t",
		string(types.CommentQuestion),
		"Comment type: accurate, inaccurate, improvement, question",
	)
	cmd.Flags().StringVarP(
		&suggestion,
		"suggestion",
		"s",
		"",
		"Replacement text for the selected lines",
	)
	SubCmd.AddCommand(cmd)
	SubCmd.AddCommand(newDeleteCommentCommand())
	SubCmd.AddCommand(newTouchingCommand())
}
