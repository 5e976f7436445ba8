package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/NamanBalaji/payouts/internal/common"
)

const (
	commissionsPath = "/api/commissions"
	programsPath    = "/api/programs"

	maxErrorBody = 64 << 10
)

// Client talks to the partner-payouts API.
type Client struct {
	client *http.Client
	base   *url.URL
	config ClientConfig
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type markDuplicateRequest struct {
	WorkspaceID string `json:"workspaceId"`
}

func NewClient(config *ClientConfig) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", config.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", config.BaseURL)
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          config.MaxIdleConns,
		MaxIdleConnsPerHost:   config.MaxIdleConnsPerHost,
		IdleConnTimeout:       config.IdleConnTimeout,
		TLSHandshakeTimeout:   config.TLSHandshakeTimeout,
		ResponseHeaderTimeout: config.ResponseHeaderTimeout,

		DialContext: (&net.Dialer{
			Timeout: config.DialTimeout,
		}).DialContext,
	}

	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   config.RequestTimeout,
		},
		base:   base,
		config: *config,
	}, nil
}

// CommissionsKey is the request path of a program's commission list. It is
// also the cache key for that list.
func CommissionsKey(workspaceID, programID string) string {
	q := url.Values{}
	q.Set("workspaceId", workspaceID)
	q.Set("programId", programID)

	return commissionsPath + "?" + q.Encode()
}

// PayoutsKey is the request path of a program's payout list.
func PayoutsKey(workspaceID, programID string) string {
	q := url.Values{}
	q.Set("workspaceId", workspaceID)

	return PayoutsPrefix(programID) + "?" + q.Encode()
}

// CommissionsPrefix covers every cached commission query.
func CommissionsPrefix() string {
	return commissionsPath
}

// PayoutsPrefix covers every cached payout query of a program.
func PayoutsPrefix(programID string) string {
	return programsPath + "/" + url.PathEscape(programID) + "/payouts"
}

// MarkCommissionDuplicate marks a commission as a duplicate, which removes it
// from any upcoming payouts. An empty idempotencyKey is replaced by a new one.
func (c *Client) MarkCommissionDuplicate(ctx context.Context, workspaceID, commissionID, idempotencyKey string) error {
	const op = "markCommissionDuplicate"

	if workspaceID == "" || commissionID == "" {
		return newValidationError(op, ErrEmptyID)
	}

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	path := commissionsPath + "/" + url.PathEscape(commissionID) + "/duplicate"
	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	return c.do(ctx, op, http.MethodPost, path, markDuplicateRequest{WorkspaceID: workspaceID}, headers, nil)
}

// ListCommissions returns the commissions of a program.
func (c *Client) ListCommissions(ctx context.Context, workspaceID, programID string) ([]common.Commission, error) {
	const op = "listCommissions"

	if workspaceID == "" || programID == "" {
		return nil, newValidationError(op, ErrEmptyID)
	}

	var out []common.Commission
	if err := c.do(ctx, op, http.MethodGet, CommissionsKey(workspaceID, programID), nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ListPayouts returns the payouts of a program.
func (c *Client) ListPayouts(ctx context.Context, workspaceID, programID string) ([]common.Payout, error) {
	const op = "listPayouts"

	if workspaceID == "" || programID == "" {
		return nil, newValidationError(op, ErrEmptyID)
	}

	var out []common.Payout
	if err := c.do(ctx, op, http.MethodGet, PayoutsKey(workspaceID, programID), nil, nil, &out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, pathAndQuery string, body any, headers map[string]string, out any) error {
	ref, err := url.Parse(pathAndQuery)
	if err != nil {
		return newValidationError(op, err)
	}
	urlStr := c.base.ResolveReference(ref).String()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return newValidationError(op, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}

	c.applyHeaders(req, headers)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return newNetworkError(op, urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(op, urlStr, resp.StatusCode, readErrorBody(resp))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newStatusError(op, urlStr, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

func (c *Client) applyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range c.config.DefaultHeaders {
		req.Header.Set(k, v)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	req.Header.Set("Accept", "application/json")

	if c.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.Token)
	}
}

func readErrorBody(resp *http.Response) error {
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(b) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	var er errorResponse
	if json.Unmarshal(b, &er) == nil && er.Error.Message != "" {
		return errors.New(er.Error.Message)
	}

	return errors.New(strings.TrimSpace(string(b)))
}
