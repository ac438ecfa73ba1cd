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

// Package config provides the settings shared by the commands of the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quill-wiki/quill/client"
)

// Below are the keys of the settings in viper.
const (
	KeyRPCAddr = "rpc-addr"
	KeyUser    = "user"
	KeyOutput  = "output"
)

// ErrInvalidOutput is returned when the output format is not supported.
var ErrInvalidOutput = errors.New(`--output must be 'yaml' or 'json'`)

// Preload validates the shared settings before a command runs.
func Preload(_ *cobra.Command, _ []string) error {
	switch viper.GetString(KeyOutput) {
	case "", "yaml", "json":
		return nil
	default:
		return ErrInvalidOutput
	}
}

// Dial creates a client of the configured server acting as the configured
// user.
func Dial() (*client.Client, error) {
	cli, err := client.Dial(viper.GetString(KeyRPCAddr), client.WithUser(viper.GetString(KeyUser)))
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", viper.GetString(KeyRPCAddr), err)
	}
	return cli, nil
}

// NewTable creates a table writer in the style of the CLI.
func NewTable() table.Writer {
	tw := table.NewWriter()
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateColumns = false
	tw.Style().Options.SeparateFooter = false
	tw.Style().Options.SeparateHeader = false
	tw.Style().Options.SeparateRows = false
	return tw
}

// Print prints v in the configured output format. render returns the text
// printed when no format is given.
func Print(cmd *cobra.Command, v any, render func() string) error {
	switch output := viper.GetString(KeyOutput); output {
	case "":
		cmd.Println(render())
	case "json":
		jsonOutput, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		cmd.Println(string(jsonOutput))
	case "yaml":
		yamlOutput, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal YAML: %w", err)
		}
		cmd.Println(string(yamlOutput))
	default:
		return fmt.Errorf("unknown output format %s: %w", output, ErrInvalidOutput)
	}

	return nil
}
