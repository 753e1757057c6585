package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/kotashimizu/care-plan/internal/config"
	"github.com/kotashimizu/care-plan/internal/logger"
)

// Client wraps one chat-completion call. At most one attempt per
// invocation: retry policy belongs to the operator, not the gateway.
type Client interface {
	CompleteJSON(ctx context.Context, req ChatRequest) (json.RawMessage, error)
}

type ChatRequest struct {
	Model       string
	System      string
	User        string
	Temperature float64
	MaxTokens   int
	JSONMode    bool
	Timeout     time.Duration
}

type client struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	orgID      string
	httpClient *http.Client
}

func NewClient(log *logger.Logger, cfg config.OpenAIConfig) Client {
	return &client{
		log:     log.With("service", "LLMClient"),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		orgID:   cfg.OrgID,
		// Per-request deadlines come from the context; no transport-level
		// timeout on top.
		httpClient: &http.Client{},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *client) CompleteJSON(ctx context.Context, req ChatRequest) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, newError(KindConfig, "OpenAI API キーが設定されていません", nil)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	var messages []chatMessage
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.User})

	body := chatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		body.ResponseFormat = map[string]any{"type": "json_object"}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	if c.orgID != "" {
		httpReq.Header.Set("OpenAI-Organization", c.orgID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || (ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded)) {
			return nil, newError(KindTimeout, "リクエストがタイムアウトしました", err)
		}
		return nil, newError(KindUpstream, "AI APIでエラーが発生しました", err)
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, newError(KindUpstream, "AI APIでエラーが発生しました", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := "AI APIでエラーが発生しました"
		var pe providerError
		if json.Unmarshal(raw, &pe) == nil && pe.Error.Message != "" {
			msg = "AI API Error: " + pe.Error.Message
		}
		c.log.Error("Upstream call failed", "status", resp.StatusCode, "model", req.Model)
		return nil, newError(KindUpstream, msg, nil)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, newError(KindUpstream, "AI APIでエラーが発生しました", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return nil, newError(KindEmptyReply, "AIからの応答が取得できませんでした", nil)
	}

	return ExtractJSON(parsed.Choices[0].Message.Content)
}
