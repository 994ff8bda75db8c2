// Package llmclient sends chat-completion requests to an
// OpenRouter-compatible LLM endpoint and normalizes the response text.
package llmclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gabkaclassic/repomaintindex/internal/mojibake"
	"github.com/gabkaclassic/repomaintindex/pkg/apierror"
	"github.com/gabkaclassic/repomaintindex/pkg/httpclient"
)

const (
	defaultModel       = "openai/gpt-4o-mini"
	defaultTemperature = 0.2
	defaultMaxTokens   = 800
	refererHeader      = "https://github.com/gabkaclassic/repomaintindex"
	titleHeader        = "repomaintindex"
)

// Client sends chat-completion requests.
type Client struct {
	http  *httpclient.Client
	model string
}

// NewClient builds a Client posting to baseURL with the given API key
// and model. baseURL is the full chat-completions endpoint, not a root.
func NewClient(baseURL, apiKey, model string, timeout time.Duration, maxRetries int) *Client {
	if model == "" {
		model = defaultModel
	}

	headers := httpclient.Headers{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + apiKey,
		"HTTP-Referer":  refererHeader,
		"X-Title":       titleHeader,
	}

	http := httpclient.NewClient(
		httpclient.BaseURL(baseURL),
		httpclient.Timeout(timeout),
		httpclient.MaxRetries(maxRetries),
		httpclient.HeadersOption(headers),
	)

	return &Client{http: http, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// Analyze sends prompt as the sole user message and returns the
// mojibake-normalized response content plus tokens consumed.
func (c *Client) Analyze(ctx context.Context, prompt string) (string, int, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, apierror.NewLLMError("marshal-request", err)
	}

	resp, err := c.http.Post(ctx, "", &httpclient.RequestOptions{Body: bytes.NewReader(payload)})
	if err != nil {
		return "", 0, apierror.NewLLMError("transport", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, apierror.NewLLMError("read-response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", 0, apierror.NewLLMError("status", fmt.Errorf("llm returned status %d: %s", resp.StatusCode, string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", 0, apierror.NewLLMError("parse-response", err)
	}

	if len(parsed.Choices) == 0 {
		return "", 0, apierror.NewLLMError("parse-response", fmt.Errorf("no choices in response"))
	}

	content := mojibake.Normalize(parsed.Choices[0].Message.Content)

	return content, parsed.Usage.TotalTokens, nil
}
