// Package store implements the HTTP clients for the two remote
// collaborators that own the data: the transaction store and the fiscal
// book store. Clients are constructed values carrying their base URL and
// timeout explicitly; there is no ambient singleton.
package store

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

	apperrors "fiscalbook/internal/errors"
	"fiscalbook/internal/logger"
)

// Client is a thin JSON client over the finance backend. Calls are never
// retried; any failure is translated to a REMOTE_FAILURE exactly once, here.
type Client struct {
	base string
	http *http.Client
}

// NewClient creates a client for the given base URL. The timeout applies to
// the whole request including the response body.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

// remoteError is the error envelope the backend responds with.
type remoteError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// doJSON issues a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Named("store").Errorw("request failed", "method", method, "path", path, "error", err.Error())
		return apperrors.Wrap(apperrors.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Named("store").Errorw("response read failed", "method", method, "path", path, "error", err.Error())
		return apperrors.Wrap(apperrors.ErrRemoteFailure, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return apperrors.WithMessage(apperrors.ErrNotFound, remoteMessage(raw, apperrors.ErrNotFound.Message))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := remoteMessage(raw, fmt.Sprintf("request failed with status %d", resp.StatusCode))
		logger.Named("store").Errorw("remote error", "method", method, "path", path, "status", resp.StatusCode, "message", msg)
		return apperrors.WithMessage(apperrors.ErrRemoteFailure, msg)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperrors.Wrap(apperrors.ErrRemoteFailure, err)
		}
	}
	return nil
}

// doRaw issues a request and returns the raw response body, for endpoints
// that stream files rather than JSON.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, out *[]byte) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Named("store").Errorw("request failed", "method", method, "path", path, "error", err.Error())
		return apperrors.Wrap(apperrors.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrRemoteFailure, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg := remoteMessage(raw, fmt.Sprintf("request failed with status %d", resp.StatusCode))
		return apperrors.WithMessage(apperrors.ErrRemoteFailure, msg)
	}

	*out = raw
	return nil
}

// remoteMessage extracts the user-facing message from an error response,
// falling back through: server-provided message, then the given default.
func remoteMessage(raw []byte, fallback string) string {
	var envelope remoteError
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error.Message != "" {
			return envelope.Error.Message
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fallback
}
