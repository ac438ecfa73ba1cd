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
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

func newSelectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "select [review ID] [line] [line]",
		Short: "Select a range of lines to comment on",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return errors.New("requires review ID and two line numbers")
			}
			return nil
		},
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse line %s: %w", args[1], err)
			}
			b, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("parse line %s: %w", args[2], err)
			}

			cli, err := config.Dial()
			if err != nil {
				return err
			}

			resp, err := cli.Select(context.Background(), types.ID(args[0]), a, b)
			if err != nil {
				return err
			}

			return config.Print(cmd, resp, func() string {
				return fmt.Sprintf("Selected lines %d-%d:\n%s", resp.LineStart, resp.LineEnd, resp.DefaultSuggestion)
			})
		},
	}
}

func newCancelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel [review ID]",
		Short: "Clear the current selection",
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

			return cli.CancelSelection(context.Background(), types.ID(args[0]))
		},
	}
}

func init() {
	SubCmd.AddCommand(newSelectCommand())
	SubCmd.AddCommand(newCancelCommand())
}
