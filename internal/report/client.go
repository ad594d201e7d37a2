package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultEndpoint = "https://api.openai.com/v1"
	DefaultModel    = "gpt-4o-mini"

	diagnosticPrompt = `Return this exact JSON: {"emailText": "Diagnostic OK", "htmlDashboard": "<div>OK</div>"}`

	systemPrompt = "You are an expert inventory analyst. Reply with a single JSON object " +
		`with the string fields "emailText" and "htmlDashboard" and nothing else.`

	synthesisPrompt = `Analyze the following inventory risk data:

%s

Tasks:
1. Write a professional executive summary email (emailText) to the Supply Chain Director.
2. Create a clean HTML dashboard (htmlDashboard) styled with Tailwind CSS that visualizes
   the "summary" counts and the "criticalItems" list.`
)

// Result is a synthesized report.
type Result struct {
	EmailText     string `json:"emailText"`
	HTMLDashboard string `json:"htmlDashboard"`
}

// Config holds what is needed to reach the model.
type Config struct {
	Endpoint string // Base URL, e.g. "https://api.openai.com/v1"
	APIKey   string
	Model    string
}

// Client writes reports through an OpenAI-compatible chat endpoint.
type Client struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewClient builds a client. An empty APIKey is rejected with
// ErrNotConfigured.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger.With("component", "report"),
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Synthesize writes the executive email and dashboard for rc.
func (c *Client) Synthesize(ctx context.Context, rc Context) (Result, error) {
	payload, err := json.MarshalIndent(rc, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode report context: %w", err)
	}

	c.logger.Info("report synthesis started",
		"critical_items", len(rc.CriticalItems),
		"total_items", rc.Summary.TotalItems)

	return c.complete(ctx, fmt.Sprintf(synthesisPrompt, payload), 0.2)
}

// Diagnose sends a minimal probe that checks the endpoint, key and model
// without generating a full report.
func (c *Client) Diagnose(ctx context.Context) (Result, error) {
	c.logger.Info("report diagnostic probe started")
	return c.complete(ctx, diagnosticPrompt, 0)
}

func (c *Client) complete(ctx context.Context, prompt string, temperature float32) (Result, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		c.logger.Error("report request failed",
			"model", c.model,
			"elapsed", time.Since(start),
			"error", err)
		return Result{}, classifyError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.logger.Error("report request returned no content", "model", c.model)
		return Result{}, ErrEmptyResponse
	}
	reply := resp.Choices[0].Message.Content

	c.logger.Info("report request completed",
		"model", c.model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed", time.Since(start))

	obj, ok := extractJSON(reply)
	if !ok {
		c.logger.Error("report reply is not json", "reply_len", len(reply))
		return Result{}, ErrParseResponse
	}

	var result Result
	if err := json.Unmarshal([]byte(obj), &result); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrParseResponse, err)
	}
	return result, nil
}
