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

	"github.com/spf13/cobra"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/cmd/quill/config"
)

func newCountdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "countdown [review ID]",
		Short:   "Show the time left in a review",
		Args:    requireID(errReviewIDRequired),
		PreRunE: config.Preload,
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := config.Dial()
			if err != nil {
				return err
			}

			resp, err := cli.Countdown(context.Background(), types.ID(args[0]))
			if err != nil {
				return err
			}

			return config.Print(cmd, resp, func() string {
				return resp.Text
			})
		},
	}
}

func init() {
	SubCmd.AddCommand(newCountdownCommand())
}
