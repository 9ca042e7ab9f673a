// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AccelByte/extend-spotlight-session/pkg/common"
)

const maxErrorBody = 4 << 10

// Client talks to the Spotlight JSON API.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	Cookie     string
}

// NewClient creates a client. cookie is sent verbatim in the Cookie header.
func NewClient(httpClient *http.Client, baseURL, cookie string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		HTTPClient: httpClient,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Cookie:     cookie,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	scope := common.NewScope(ctx, method+" "+path)
	defer scope.Finish()
	scope.SetAttributes("http.method", method)
	scope.SetAttributes("http.path", path)

	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(scope.Ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Cookie != "" {
		req.Header.Set("Cookie", c.Cookie)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		scope.TraceError(err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	scope.SetAttributes("http.status_code", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeError(path, resp)
		scope.TraceError(apiErr)
		scope.Log.Debugf("%s %s failed: %v", method, path, apiErr)
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		scope.TraceError(err)
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func decodeError(path string, resp *http.Response) *Error {
	apiErr := &Error{Status: resp.StatusCode, Endpoint: path}

	var payload struct {
		Error  string `json:"error"`
		Status string `json:"status"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Unmarshal(data, &payload) == nil {
		apiErr.Code = payload.Error
		if apiErr.Code == "" {
			// send_request reports already_sent under "status"
			apiErr.Code = payload.Status
		}
	}
	if apiErr.Code == "" && resp.StatusCode == http.StatusUnauthorized {
		apiErr.Code = CodeUnauthorized
	}
	return apiErr
}
