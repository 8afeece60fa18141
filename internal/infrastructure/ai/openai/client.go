// Package openai provides the chat-completion client for recipe generation
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/recetaria/v1/internal/infrastructure/config"
	"github.com/recetaria/v1/internal/ports/outbound"
	apperrors "github.com/recetaria/v1/pkg/errors"
	"go.uber.org/zap"
)

// Client implements the CompletionClient interface against an
// OpenAI-compatible chat-completions endpoint.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	client      *http.Client
	logger      *zap.Logger
}

// NewClient creates a new completion client. The HTTP client is owned by the
// process lifecycle and shared safely across concurrent requests; its timeout
// bounds the upstream round trip.
func NewClient(cfg *config.Config, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second,
		}
	}

	return &Client{
		apiKey:      cfg.AI.APIKey,
		baseURL:     cfg.AI.BaseURL,
		model:       cfg.AI.Model,
		maxTokens:   cfg.AI.MaxTokens,
		temperature: cfg.AI.Temperature,
		client:      httpClient,
		logger:      logger.Named("openai-client"),
	}
}

// Chat completion API structures

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Message Message `json:"message"`
}

var _ outbound.CompletionClient = (*Client)(nil)

// Complete sends the prompt pair to the completion endpoint and returns the
// first choice's generated text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		c.logger.Error("Completion API key not configured")
		return "", apperrors.NewMissingCredentialError()
	}

	reqBody := ChatCompletionRequest{
		Model: c.model,
		Messages: []Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", apperrors.NewInternalError("failed to marshal completion request").WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", apperrors.NewInternalError("failed to create completion request").WithCause(err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Completion request failed", zap.Error(err))
		return "", apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Completion API returned an error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return "", apperrors.NewUpstreamError(resp.StatusCode, string(body))
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		c.logger.Error("Failed to parse completion response", zap.Error(err))
		return "", apperrors.NewMalformedResponseError(err)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		c.logger.Error("Completion response contained no usable content")
		return "", apperrors.NewEmptyResponseError()
	}

	return chatResp.Choices[0].Message.Content, nil
}
