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

// Package client provides the client of the Quill HTTP API. It is used by
// the CLI and by anything that drives reviews from Go.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/history"
)

const (
	// userHeader names the reviewer acting in a request.
	userHeader = "X-Quill-User"

	defaultMaxRetries        = 3
	defaultBaseRetryInterval = 100 * time.Millisecond
	defaultMaxRetryInterval  = 2 * time.Second
)

// ErrInvalidAddr is returned when the address of the server cannot be parsed.
var ErrInvalidAddr = errors.New("invalid server address")

// StatusError is returned when the server answers with an error.
type StatusError struct {
	StatusCode int
	Response   types.ErrorResponse
}

// Error returns the code and the message of the server error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Response.Code, e.Response.Message)
}

// CodeOf returns the error code sent by the server, or "" if err did not
// come from the server.
func CodeOf(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Response.Code
	}
	return ""
}

// Client is a client of the Quill HTTP API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	options    Options
	logger     *zap.Logger
}

// Dial creates an instance of Client for the server at rpcAddr. rpcAddr is
// either a host:port pair or a URL.
func Dial(rpcAddr string, opts ...Option) (*Client, error) {
	options := Options{
		MaxRetries:        defaultMaxRetries,
		BaseRetryInterval: defaultBaseRetryInterval,
		MaxRetryInterval:  defaultMaxRetryInterval,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if !strings.Contains(rpcAddr, "://") {
		rpcAddr = "http://" + rpcAddr
	}
	baseURL, err := url.Parse(rpcAddr)
	if err != nil || baseURL.Host == "" {
		return nil, fmt.Errorf("%s: %w", rpcAddr, ErrInvalidAddr)
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		options:    options,
		logger:     logger,
	}, nil
}

// Health checks that the server is serving.
func (c *Client) Health(ctx context.Context) error {
	var resp types.HealthResponse
	return c.get(ctx, "/healthz", nil, &resp)
}

// CreateDocument creates a new document.
func (c *Client) CreateDocument(ctx context.Context, fields types.DocumentFields) (*types.Document, error) {
	var doc types.Document
	if err := c.send(ctx, http.MethodPost, "/v1/documents", fields, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListDocuments returns a page of documents starting after offset.
func (c *Client) ListDocuments(
	ctx context.Context,
	offset types.ID,
	pageSize int,
	isForward bool,
) ([]*types.Document, error) {
	query := url.Values{}
	if offset != "" {
		query.Set("offset", offset.String())
	}
	if pageSize > 0 {
		query.Set("size", strconv.Itoa(pageSize))
	}
	query.Set("forward", strconv.FormatBool(isForward))

	var docs []*types.Document
	if err := c.get(ctx, "/v1/documents", query, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetDocument returns the document of the given ID.
func (c *Client) GetDocument(ctx context.Context, id types.ID) (*types.Document, error) {
	var doc types.Document
	if err := c.get(ctx, "/v1/documents/"+id.String(), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// VoteDocument votes on the document under review.
func (c *Client) VoteDocument(
	ctx context.Context,
	id types.ID,
	direction types.VoteDirection,
) (*types.Document, error) {
	var doc types.Document
	path := "/v1/documents/" + id.String() + "/votes"
	if err := c.send(ctx, http.MethodPost, path, types.VoteFields{Direction: direction}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// StartReview puts the document under review.
func (c *Client) StartReview(ctx context.Context, docID types.ID) (*types.ReviewSession, error) {
	var session types.ReviewSession
	if err := c.send(ctx, http.MethodPost, "/v1/documents/"+docID.String()+"/reviews", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ReviewHistory returns the review sessions of the document, oldest first.
func (c *Client) ReviewHistory(ctx context.Context, docID types.ID) ([]history.Entry, error) {
	var entries []history.Entry
	if err := c.get(ctx, "/v1/documents/"+docID.String()+"/reviews", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ListRevisions returns the revisions of the review in rank order.
func (c *Client) ListRevisions(ctx context.Context, docID, reviewID types.ID) ([]*types.Revision, error) {
	var revisions []*types.Revision
	path := "/v1/documents/" + docID.String() + "/reviews/" + reviewID.String() + "/revisions"
	if err := c.get(ctx, path, nil, &revisions); err != nil {
		return nil, err
	}
	return revisions, nil
}

// GetReview returns the review session of the given ID.
func (c *Client) GetReview(ctx context.Context, reviewID types.ID) (*types.ReviewSession, error) {
	var session types.ReviewSession
	if err := c.get(ctx, "/v1/reviews/"+reviewID.String(), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CompleteReview closes the review with its winning revision.
func (c *Client) CompleteReview(ctx context.Context, reviewID types.ID) (*types.ReviewResult, error) {
	var result types.ReviewResult
	if err := c.send(ctx, http.MethodPost, "/v1/reviews/"+reviewID.String()+"/complete", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Countdown returns the time left in the review.
func (c *Client) Countdown(ctx context.Context, reviewID types.ID) (*types.CountdownResponse, error) {
	var resp types.CountdownResponse
	if err := c.get(ctx, "/v1/reviews/"+reviewID.String()+"/countdown", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Select selects the lines a to b, in either order, in the annotation pass
// of the user.
func (c *Client) Select(ctx context.Context, reviewID types.ID, a, b int) (*types.SelectResponse, error) {
	var resp types.SelectResponse
	path := "/v1/reviews/" + reviewID.String() + "/draft/selection"
	if err := c.send(ctx, http.MethodPost, path, types.SelectRequest{LineStart: a, LineEnd: b}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CancelSelection clears the selection of the annotation pass.
func (c *Client) CancelSelection(ctx context.Context, reviewID types.ID) error {
	return c.send(ctx, http.MethodDelete, "/v1/reviews/"+reviewID.String()+"/draft/selection", nil, nil)
}

// AddComment anchors a comment to the current selection.
func (c *Client) AddComment(
	ctx context.Context,
	reviewID types.ID,
	fields types.CommentFields,
) (*types.ReviewComment, error) {
	var comment types.ReviewComment
	if err := c.send(ctx, http.MethodPost, "/v1/reviews/"+reviewID.String()+"/draft/comments", fields, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment of the annotation pass.
func (c *Client) DeleteComment(ctx context.Context, reviewID, commentID types.ID) error {
	path := "/v1/reviews/" + reviewID.String() + "/draft/comments/" + commentID.String()
	return c.send(ctx, http.MethodDelete, path, nil, nil)
}

// Touching returns the comments of the annotation pass covering line.
func (c *Client) Touching(ctx context.Context, reviewID types.ID, line int) ([]*types.ReviewComment, error) {
	var comments []*types.ReviewComment
	query := url.Values{"line": {strconv.Itoa(line)}}
	if err := c.get(ctx, "/v1/reviews/"+reviewID.String()+"/draft", query, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// Preview returns the document with the suggestions of the annotation pass
// applied.
func (c *Client) Preview(ctx context.Context, reviewID types.ID) (string, error) {
	var resp types.PreviewResponse
	query := url.Values{"view": {"preview"}}
	if err := c.get(ctx, "/v1/reviews/"+reviewID.String()+"/draft", query, &resp); err != nil {
		return "", err
	}
	return resp.Preview, nil
}

// SubmitRevision submits the annotation pass as a revision.
func (c *Client) SubmitRevision(
	ctx context.Context,
	reviewID types.ID,
	fields types.RevisionFields,
) (*types.Revision, error) {
	var revision types.Revision
	if err := c.send(ctx, http.MethodPost, "/v1/reviews/"+reviewID.String()+"/revisions", fields, &revision); err != nil {
		return nil, err
	}
	return &revision, nil
}

// VoteRevision votes on a revision.
func (c *Client) VoteRevision(
	ctx context.Context,
	revisionID types.ID,
	direction types.VoteDirection,
) (*types.Revision, error) {
	var revision types.Revision
	path := "/v1/revisions/" + revisionID.String() + "/votes"
	if err := c.send(ctx, http.MethodPost, path, types.VoteFields{Direction: direction}, &revision); err != nil {
		return nil, err
	}
	return &revision, nil
}

// get sends a read request. It is retried on retryable failures.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.withExponentialBackoff(ctx, func() (int, error) {
		return c.do(ctx, http.MethodGet, path, query, nil, out)
	})
}

// send sends a mutating request. It is never retried, as the server may
// have applied it.
func (c *Client) send(ctx context.Context, method, path string, in, out any) error {
	_, err := c.do(ctx, method, path, nil, in, out)
	return err
}

func (c *Client) do(
	ctx context.Context,
	method, path string,
	query url.Values,
	in, out any,
) (int, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL.JoinPath(path)
	target.RawQuery = query.Encode()
	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.options.User != "" {
		req.Header.Set(userHeader, c.options.User)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("close response body", zap.Error(err))
		}
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(&statusErr.Response); err != nil {
			statusErr.Response.Message = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, statusErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}

	return resp.StatusCode, nil
}
