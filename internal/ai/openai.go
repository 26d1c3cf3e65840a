// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultVisionModel = "gpt-4o"

	textTimeout   = 60 * time.Second
	visionTimeout = 90 * time.Second
)

// APIError is a non-2xx response from the completion API. Transient
// failures (502/503) are retried by the pipeline; everything else is
// terminal for the current attempt.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("completion API error: %d - %s", e.Status, e.Body)
}

// Transient reports whether the status is worth retrying
func (e *APIError) Transient() bool {
	return e.Status == http.StatusBadGateway || e.Status == http.StatusServiceUnavailable
}

// OpenAIClient talks to an OpenAI-compatible chat completions endpoint.
// It is injected into the pipeline rather than accessed as a global so
// tests can swap in a scripted implementation.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	visionModel string
	httpClient  *http.Client
}

// NewOpenAIClient creates a client for the given API key. Empty model
// names fall back to sensible defaults; an empty base URL targets the
// OpenAI API.
func NewOpenAIClient(apiKey, baseURL, model, visionModel string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if visionModel == "" {
		visionModel = defaultVisionModel
	}
	return &OpenAIClient{
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		model:       model,
		visionModel: visionModel,
		httpClient:  &http.Client{Timeout: visionTimeout},
	}, nil
}

// Complete sends a text prompt and returns the raw model output
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{
				"role":    "system",
				"content": "You are a resume parsing assistant. You respond with valid JSON only, no markdown fences, no commentary.",
			},
			{
				"role":    "user",
				"content": prompt,
			},
		},
		"temperature": 0.1, // Low temperature for consistent extraction
	}
	return c.chatCompletion(ctx, payload, textTimeout)
}

// CompleteWithImage sends a prompt plus a page image as a data URL
func (c *OpenAIClient) CompleteWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	payload := map[string]interface{}{
		"model": c.visionModel,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "text", "text": prompt},
					{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
				},
			},
		},
		"temperature": 0.1,
	}
	return c.chatCompletion(ctx, payload, visionTimeout)
}

func (c *OpenAIClient) chatCompletion(ctx context.Context, payload map[string]interface{}, timeout time.Duration) (string, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	// Bound the call even when the caller passed a background context
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}

	return result.Choices[0].Message.Content, nil
}
