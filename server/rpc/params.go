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

package rpc

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/errors"
)

// UserHeader names the reviewer acting in a request.
const UserHeader = "X-Quill-User"

// ErrMalformedBody is returned when a request body is not the expected JSON.
var ErrMalformedBody = errors.InvalidArgument("malformed request body").WithCode("ErrMalformedBody")

// userOf returns the reviewer acting in the request. An empty name is
// rejected by the operations that need one.
func userOf(c *gin.Context) string {
	return c.GetHeader(UserHeader)
}

// clientKeyOf identifies the client for rate limiting.
func clientKeyOf(c *gin.Context) string {
	if user := userOf(c); user != "" {
		return "user:" + user
	}
	return "ip:" + c.ClientIP()
}

func idParam(c *gin.Context, name string) (types.ID, error) {
	id := types.ID(c.Param(name))
	if err := id.Validate(); err != nil {
		return "", err
	}
	return id, nil
}

func intQuery(c *gin.Context, name string) (int, bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, false, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, types.NewValidationError(name, fmt.Sprintf("%s must be an integer", name))
	}
	return n, true, nil
}

func bindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), ErrMalformedBody)
	}
	return nil
}
