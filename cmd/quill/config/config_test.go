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

package config_test

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"

	"github.com/quill-wiki/quill/cmd/quill/config"
)

func TestPrint(t *testing.T) {
	value := map[string]string{"title": "Go"}
	render := func() string { return "TITLE Go" }

	run := func(output string) (string, error) {
		viper.Set(config.KeyOutput, output)
		defer viper.Set(config.KeyOutput, "")

		var buf bytes.Buffer
		cmd := &cobra.Command{}
		cmd.SetOut(&buf)
		err := config.Print(cmd, value, render)
		return buf.String(), err
	}

	t.Run("table output test", func(t *testing.T) {
		out, err := run("")
		assert.NoError(t, err)
		assert.Equal(t, "TITLE Go\n", out)
	})

	t.Run("json output test", func(t *testing.T) {
		out, err := run("json")
		assert.NoError(t, err)
		assert.JSONEq(t, `{"title":"Go"}`, out)
	})

	t.Run("yaml output test", func(t *testing.T) {
		out, err := run("yaml")
		assert.NoError(t, err)
		assert.Contains(t, out, "title: Go")
	})

	t.Run("unknown output test", func(t *testing.T) {
		_, err := run("xml")
		assert.ErrorIs(t, err, config.ErrInvalidOutput)

		viper.Set(config.KeyOutput, "xml")
		defer viper.Set(config.KeyOutput, "")
		assert.ErrorIs(t, config.Preload(nil, nil), config.ErrInvalidOutput)
	})
}

func TestDial(t *testing.T) {
	viper.Set(config.KeyRPCAddr, "http://")
	defer viper.Set(config.KeyRPCAddr, "")

	_, err := config.Dial()
	assert.Error(t, err)
}
