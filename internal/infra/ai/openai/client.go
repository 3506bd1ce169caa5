package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/osintmap/internal/domain/ai"
	"github.com/bryanwahyu/osintmap/internal/domain/findings"
	"github.com/bryanwahyu/osintmap/internal/infra/ai/prompt"
)

const maxTokens = 1024

type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// NewClientWithConfig allows pointing at a compatible endpoint (tests, proxies).
func NewClientWithConfig(cfg openai.ClientConfig, model string) *Client {
	return &Client{Client: openai.NewClientWithConfig(cfg), Model: model}
}

func (c *Client) Brief(ctx context.Context, items []findings.Finding) (ai.Brief, error) {
	model := c.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: prompt.GetUserPrompt(items)},
		},
	}
	// reasoning models only accept MaxCompletionTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return ai.Brief{}, fmt.Errorf("%w: %s", ai.ErrQuotaExceeded, apiErr.Message)
		}
		return ai.Brief{}, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ai.Brief{}, errors.New("empty completion")
	}

	b, err := prompt.ParseBrief(resp.Choices[0].Message.Content)
	if err != nil {
		return ai.Brief{}, err
	}
	b.Model = resp.Model
	n := len(items)
	if n > prompt.MaxItems {
		n = prompt.MaxItems
	}
	b.Findings = n
	return b, nil
}
