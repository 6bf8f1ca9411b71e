// Package llm wraps Groq's OpenAI-compatible chat API for online answer
// enrichment. The retrieval core never depends on it: retrieval output is
// passed in as reference context, and every failure mode degrades to a
// friendly string that carries the offline answer.
package llm

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
	maxContextLen  = 800
)

const systemPrompt = `You are Kisan Sahayak, an expert AI agricultural assistant for Indian farmers.
You have deep expertise in:
- Indian crop cultivation and farming practices
- Plant diseases, pest identification and control
- Fertilizer recommendations and soil management
- Government agricultural schemes (PM-KISAN, PMFBY, KCC, etc.)
- Weather-based farming advisory
- Market prices and crop economics

Guidelines:
- Always respond in the language specified
- Be practical and specific to Indian agriculture
- Use simple language suitable for rural farmers
- Include specific product names, dosages when relevant
- Always mention safety precautions for chemicals
- Recommend consulting local agricultural officers for critical decisions
- Structure responses clearly with numbered points or sections`

// Config configures the Groq client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client is a Groq chat client.
type Client struct {
	api    *openai.Client
	model  string
	logger *zap.Logger
}

// New creates a Groq client. With no API key the client stays usable but
// Answer returns a setup notice instead of calling out.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	var api *openai.Client
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		clientConfig.BaseURL = cfg.BaseURL
		api = openai.NewClientWithConfig(clientConfig)
	}
	return &Client{api: api, model: cfg.Model, logger: logger}
}

// Available reports whether an API key was configured.
func (c *Client) Available() bool { return c.api != nil }

// Answer asks the model, feeding the offline retrieval output as reference
// context. It never returns an error: every failure maps to a displayable
// string that still carries the offline answer.
func (c *Client) Answer(ctx context.Context, query, language, offlineContext string) string {
	if c.api == nil {
		msg := "Groq API key not configured. Set GROQ_API_KEY in your .env file to enable online answers."
		if offlineContext != "" {
			msg += "\n\nOffline Answer:\n" + offlineContext
		}
		return msg
	}

	if language == "" {
		language = "English"
	}
	trimmed := offlineContext
	if r := []rune(trimmed); len(r) > maxContextLen {
		trimmed = string(r[:maxContextLen])
	}
	userContent := query
	if trimmed != "" {
		userContent += "\n\n[Reference data: " + trimmed + "]"
	}
	userContent += "\n\nIMPORTANT: Respond ONLY in " + language + ". Do not use any other language."

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userContent},
		},
		MaxTokens:   1500,
		Temperature: 0.4,
		TopP:        0.9,
	})
	if err != nil {
		return c.fallback(err, offlineContext)
	}
	if len(resp.Choices) == 0 {
		return c.fallback(errors.New("empty completion"), offlineContext)
	}
	return resp.Choices[0].Message.Content
}

func (c *Client) fallback(err error, offlineContext string) string {
	c.logger.Warn("groq request failed", zap.Error(err))

	var apiErr *openai.APIError
	var msg string
	switch {
	case errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 401:
		msg = "Invalid Groq API key. Create a new key at console.groq.com and update GROQ_API_KEY in .env."
	case errors.As(err, &apiErr) && apiErr.HTTPStatusCode == 429:
		msg = "Rate limit reached. Wait a minute and try again."
	case strings.Contains(err.Error(), "context deadline exceeded"):
		msg = "Request timed out. Please try again."
	default:
		msg = "No internet connection or the AI service is unreachable."
	}
	if offlineContext != "" {
		msg += "\n\nOffline Answer:\n" + offlineContext
	}
	return msg
}
