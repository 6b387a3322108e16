// Package lingo implements the translation provider contract against a
// Lingo.dev-style localization HTTP API.
package lingo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"translingo/internal/infra"
)

const defaultBaseURL = "https://engine.lingo.dev"

// Options controls how the localization client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a thin facade over the localization API. It reports errors
// to its caller as-is; the degrade-to-no-op policy lives in the
// translate.Adapter wrapping it.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient validates options and builds a Client.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     opts.Logger,
	}, nil
}

type localizeRequest struct {
	SourceLocale string         `json:"sourceLocale"`
	TargetLocale string         `json:"targetLocale"`
	Text         string         `json:"text,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

type localizeResponse struct {
	Text string         `json:"text"`
	Data map[string]any `json:"data"`
}

type recognizeRequest struct {
	Text string `json:"text"`
}

type recognizeResponse struct {
	Locale string `json:"locale"`
}

// LocalizeText translates a single text fragment.
func (c *Client) LocalizeText(ctx context.Context, text, sourceLocale, targetLocale string) (string, error) {
	var resp localizeResponse
	err := c.post(ctx, "/localize/text", localizeRequest{
		SourceLocale: sourceLocale,
		TargetLocale: targetLocale,
		Text:         text,
	}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// RecognizeLocale detects the locale of the given text.
func (c *Client) RecognizeLocale(ctx context.Context, text string) (string, error) {
	var resp recognizeResponse
	if err := c.post(ctx, "/recognize/locale", recognizeRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	if resp.Locale == "" {
		return "", fmt.Errorf("lingo: recognize returned empty locale")
	}
	return resp.Locale, nil
}

// LocalizeObject deep-translates the string leaf values of obj.
func (c *Client) LocalizeObject(ctx context.Context, obj map[string]any, sourceLocale, targetLocale string) (map[string]any, error) {
	var resp localizeResponse
	err := c.post(ctx, "/localize/object", localizeRequest{
		SourceLocale: sourceLocale,
		TargetLocale: targetLocale,
		Data:         obj,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("lingo: localize object returned no data")
	}
	return resp.Data, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("lingo: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("lingo: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lingo: %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("lingo: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if c.logger != nil {
			c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("lingo: non-200 response")
		}
		return fmt.Errorf("lingo: %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("lingo: decode response: %w", err)
	}
	return nil
}
