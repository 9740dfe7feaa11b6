package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/johnquangdev/sponsor-digest/pkg/config"
)

const (
	defaultGroqURL   = "https://api.groq.com"
	defaultGroqModel = "llama-3.3-70b-versatile"
)

// GroqClient is a minimal client for Groq chat completions
type GroqClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

// NewGroqClient creates a Groq client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewGroqClient(cfg *config.GroqConfig) *GroqClient {
	g := &GroqClient{
		baseURL:     defaultGroqURL,
		model:       defaultGroqModel,
		temperature: 0.3,
		maxTokens:   1024,
		client:      &http.Client{Timeout: 60 * time.Second},
	}

	if cfg != nil {
		g.apiKey = cfg.APIKey
		if cfg.BaseURL != "" {
			g.baseURL = cfg.BaseURL
		}
		if cfg.Model != "" {
			g.model = cfg.Model
		}
		g.temperature = cfg.Temperature
		if cfg.MaxTokens > 0 {
			g.maxTokens = cfg.MaxTokens
		}
		if cfg.Timeout > 0 {
			g.client.Timeout = cfg.Timeout
		}
	}
	if g.apiKey == "" {
		g.apiKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg == nil {
		if base := os.Getenv("GROQ_API_URL"); base != "" {
			g.baseURL = base
		}
	}
	g.baseURL = strings.TrimSuffix(g.baseURL, "/")

	return g
}

// ChatMessage is one message of a chat completion
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// StatusError carries the HTTP status of a failed Groq call so callers can
// decide whether to retry.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("groq returned status %d: %s", e.StatusCode, e.Body)
}

// GenerateSummary sends prompt as a single user message and returns the
// assistant content
func (g *GroqClient) GenerateSummary(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:       g.model,
		Messages:    []ChatMessage{{Role: "user", Content: prompt}},
		Temperature: g.temperature,
		MaxTokens:   g.maxTokens,
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var body bytes.Buffer
		body.ReadFrom(resp.Body) //nolint:errcheck
		return "", &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(body.String())}
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", err
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty response from groq")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
