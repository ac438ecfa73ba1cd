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

package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quill-wiki/quill/cmd/quill/config"
	"github.com/quill-wiki/quill/cmd/quill/document"
	"github.com/quill-wiki/quill/cmd/quill/draft"
	"github.com/quill-wiki/quill/cmd/quill/review"
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Review and verification workflow for community tech wikis",
}

// Run executes CLI.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}

	return 0
}

func init() {
	rootCmd.AddCommand(document.SubCmd)
	rootCmd.AddCommand(review.SubCmd)
	rootCmd.AddCommand(draft.SubCmd)

	rootCmd.PersistentFlags().String("rpc-addr", "localhost:8080", "Address of the Quill server")
	rootCmd.PersistentFlags().StringP("user", "u", "", "Name of the acting reviewer")
	rootCmd.PersistentFlags().StringP("output", "o", "", "One of 'yaml' or 'json'.")
	_ = viper.BindPFlag(config.KeyRPCAddr, rootCmd.PersistentFlags().Lookup("rpc-addr"))
	_ = viper.BindPFlag(config.KeyUser, rootCmd.PersistentFlags().Lookup("user"))
	_ = viper.BindPFlag(config.KeyOutput, rootCmd.PersistentFlags().Lookup("output"))

	// QUILL_RPC_ADDR and QUILL_USER stand in for the flags.
	viper.SetEnvPrefix("quill")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
